package gongo

import "testing"

func playLegal(t *testing.T, b *Board, pl Player, v Vertex) {
	t.Helper()
	if !b.IsLegal(pl, v) {
		t.Fatalf("expected %v at %d to be legal, wasn't", pl, v)
	}
	b.PlayLegal(pl, v)
}

func playIllegal(t *testing.T, b *Board, pl Player, v Vertex) {
	t.Helper()
	if b.IsLegal(pl, v) {
		t.Fatalf("expected %v at %d to be illegal, was legal", pl, v)
	}
}

func vAt(row, col int) Vertex { return vertexFromCoords(row, col) }

func TestNewBoardRejectsOutOfRangeSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for zero-size board")
		}
	}()
	NewBoard(0, 9)
}

func TestClearProducesEmptyBoard(t *testing.T) {
	b := NewBoard(5, 5)
	if b.EmptyVertexCount() != 25 {
		t.Fatalf("expected 25 empty vertices, got %d", b.EmptyVertexCount())
	}
	if b.ActPlayer() != Black {
		t.Fatalf("expected black to move first, got %v", b.ActPlayer())
	}
	if b.BothPlayerPass() {
		t.Fatal("a freshly cleared board should not already be over")
	}
}

func TestSimplePlayUpdatesCounts(t *testing.T) {
	b := NewBoard(9, 9)
	playLegal(t, b, Black, vAt(4, 4))
	if b.ColorAt(vAt(4, 4)) != ColorBlack {
		t.Fatal("expected black stone at played vertex")
	}
	if b.EmptyVertexCount() != 9*9-1 {
		t.Fatalf("expected one fewer empty vertex, got %d", b.EmptyVertexCount())
	}
	if b.LastVertex() != vAt(4, 4) {
		t.Fatal("expected LastVertex to report the just-played vertex")
	}
}

func TestSuicideIsIllegal(t *testing.T) {
	b := NewBoard(9, 9)
	// Surround (0,0) with black, then white may not play in the corner.
	playLegal(t, b, Black, vAt(0, 1))
	playLegal(t, b, White, vAt(8, 8))
	playLegal(t, b, Black, vAt(1, 0))
	playLegal(t, b, White, vAt(8, 7))
	playIllegal(t, b, White, vAt(0, 0))
}

func TestCaptureRemovesChainAndSetsKo(t *testing.T) {
	b := NewBoard(9, 9)
	// Classic single-stone ko: white at (4,4) surrounded on three sides
	// by black, (4,5) surrounded on three sides by white, then black
	// plays (4,5) to capture, leaving a lone black stone whose only
	// liberty is (4,4).
	playLegal(t, b, Black, vAt(3, 4))
	playLegal(t, b, White, vAt(4, 4))
	playLegal(t, b, Black, vAt(5, 4))
	playLegal(t, b, White, vAt(3, 5))
	playLegal(t, b, Black, vAt(4, 3))
	playLegal(t, b, White, vAt(5, 5))
	playLegal(t, b, Black, vAt(0, 0))
	playLegal(t, b, White, vAt(4, 6))
	playLegal(t, b, Black, vAt(4, 5))

	if b.ColorAt(vAt(4, 4)) != ColorEmpty {
		t.Fatal("expected captured white stone to be removed")
	}
	if b.KoVertex() != vAt(4, 4) {
		t.Fatalf("expected ko at (4,4), got vertex %d", b.KoVertex())
	}
	playIllegal(t, b, White, vAt(4, 4))
}

func TestAtariBitReflectsSingleLiberty(t *testing.T) {
	b := NewBoard(9, 9)
	// Black stone at (4,4) with white on three of its four cardinal
	// neighbors: its only remaining liberty is (3,4), approached from
	// the south, so that vertex's hash3x3 should report a black
	// neighbor in atari to the south.
	playLegal(t, b, Black, vAt(4, 4))
	playLegal(t, b, White, vAt(5, 4))
	playLegal(t, b, Black, vAt(8, 8))
	playLegal(t, b, White, vAt(4, 3))
	playLegal(t, b, Black, vAt(0, 0))
	playLegal(t, b, White, vAt(4, 5))

	h := b.Hash3x3At(vAt(3, 4))
	if !h.IsInAtari(DirS) {
		t.Fatal("expected the liberty vertex to see the black stone to its south in atari")
	}
	if b.ColorAt(vAt(4, 4)) != ColorBlack {
		t.Fatal("expected black stone at (4,4) to survive, only in atari")
	}
}

func TestBothPlayerPassEndsPlayout(t *testing.T) {
	b := NewBoard(9, 9)
	playLegal(t, b, Black, VertexPass)
	if b.BothPlayerPass() {
		t.Fatal("one pass should not end the playout")
	}
	playLegal(t, b, White, VertexPass)
	if !b.BothPlayerPass() {
		t.Fatal("two consecutive passes should end the playout")
	}
}

func TestPlayoutWinnerAppliesKomi(t *testing.T) {
	b := NewBoard(9, 9)
	b.SetKomi(0.5)
	playLegal(t, b, Black, VertexPass)
	playLegal(t, b, White, VertexPass)
	// Passed-out empty board: no stones, no eyes, score is
	// ceil(-0.5) == 0, and PlayoutWinner favors White on a non-positive
	// score.
	if got := b.PlayoutScore(); got != 0 {
		t.Fatalf("expected score 0 on an empty passed-out board, got %d", got)
	}
	if b.PlayoutWinner() != White {
		t.Fatalf("expected White to win a zero-score playout, got %v", b.PlayoutWinner())
	}
}

func TestLoadRestoresFullState(t *testing.T) {
	empty := NewBoard(9, 9)
	b := NewBoard(9, 9)
	playLegal(t, b, Black, vAt(4, 4))
	playLegal(t, b, White, vAt(3, 3))

	b.Load(empty)

	if b.EmptyVertexCount() != 9*9 {
		t.Fatalf("expected board restored to empty, got %d empties", b.EmptyVertexCount())
	}
	if b.ActPlayer() != Black {
		t.Fatal("expected restored board to have black to move")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewBoard(9, 9)
	playLegal(t, b, Black, vAt(4, 4))
	clone := b.Clone()

	playLegal(t, b, White, vAt(3, 3))

	if clone.ColorAt(vAt(3, 3)) != ColorEmpty {
		t.Fatal("mutating the original should not affect the clone")
	}
}

func TestTrompTaylorScoreAgreesWithPlayoutScoreAtZeroKomi(t *testing.T) {
	// At komi 0 with a single stone and no territory to speak of, the
	// two scoring methods' stone-counting terms coincide exactly; this
	// is not true in general once komi's ceiling rounding diverges from
	// Tromp-Taylor's direct addition (see TrompTaylorScore).
	b := NewBoard(9, 9)
	b.SetKomi(0)
	playLegal(t, b, Black, vAt(4, 4))
	playLegal(t, b, White, VertexPass)

	if got := b.PlayoutScore(); got != 1 {
		t.Fatalf("expected playout score 1, got %d", got)
	}
	if got := b.TrompTaylorScore(); got != 1 {
		t.Fatalf("expected Tromp-Taylor score 1, got %v", got)
	}
}
