package gongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash3x3ColorAtRoundTrips(t *testing.T) {
	var h Hash3x3
	h.SetColorAt(DirN, ColorBlack)
	h.SetColorAt(DirE, ColorWhite)
	h.SetColorAt(DirNW, ColorOffBoard)

	assert.Equal(t, ColorBlack, h.ColorAt(DirN))
	assert.Equal(t, ColorWhite, h.ColorAt(DirE))
	assert.Equal(t, ColorOffBoard, h.ColorAt(DirNW))
	assert.Equal(t, ColorEmpty, h.ColorAt(DirS))
}

func TestHash3x3AtariBits(t *testing.T) {
	var h Hash3x3
	h.SetAtariBits(true, false, true, false)
	assert.True(t, h.IsInAtari(DirN))
	assert.False(t, h.IsInAtari(DirE))
	assert.True(t, h.IsInAtari(DirS))
	assert.False(t, h.IsInAtari(DirW))

	h.UnsetAtariBits(true, false, false, false)
	assert.False(t, h.IsInAtari(DirN))
	assert.True(t, h.IsInAtari(DirS))

	h.ResetAtariBits()
	for _, d := range []Dir{DirN, DirE, DirS, DirW} {
		assert.False(t, h.IsInAtari(d))
	}
}

func TestHash3x3IsLegalEmptyNeighbor(t *testing.T) {
	var h Hash3x3
	assert.True(t, h.IsLegal(Black))
	assert.True(t, h.IsLegal(White))
}

func TestHash3x3IsLegalSelfSurroundedNoAtari(t *testing.T) {
	var h Hash3x3
	for i := 0; i < 4; i++ {
		h.SetColorAt(Dir(i), ColorBlack)
	}
	// All four cardinal neighbors are black and none are in atari:
	// playing black here connects to strings that keep a liberty.
	assert.True(t, h.IsLegal(Black))
	// White has no liberties and no black neighbor in atari either:
	// also suicide.
	assert.False(t, h.IsLegal(White))
}

func TestHash3x3IsLegalCaptureIsLegal(t *testing.T) {
	var h Hash3x3
	for i := 0; i < 4; i++ {
		h.SetColorAt(Dir(i), ColorWhite)
	}
	h.SetAtariBits(true, false, false, false)
	// One white neighbor is in atari: black may play here to capture.
	assert.True(t, h.IsLegal(Black))
}

func TestHash3x3IsEyelikeAllOwnColor(t *testing.T) {
	var h Hash3x3
	for i := 0; i < 4; i++ {
		h.SetColorAt(Dir(i), ColorBlack)
	}
	assert.True(t, h.IsEyelike(Black))
	assert.False(t, h.IsEyelike(White))
}

func TestHash3x3IsEyelikeTwoEnemyDiagonalsBreaksIt(t *testing.T) {
	var h Hash3x3
	for i := 0; i < 4; i++ {
		h.SetColorAt(Dir(i), ColorBlack)
	}
	h.SetColorAt(DirNW, ColorWhite)
	h.SetColorAt(DirNE, ColorWhite)
	assert.False(t, h.IsEyelike(Black))
}

func TestHash3x3IsEyelikeOneEnemyDiagonalStillEye(t *testing.T) {
	var h Hash3x3
	for i := 0; i < 4; i++ {
		h.SetColorAt(Dir(i), ColorBlack)
	}
	h.SetColorAt(DirNW, ColorWhite)
	assert.True(t, h.IsEyelike(Black))
}

func TestZobristIsDeterministicAndDense(t *testing.T) {
	z1 := zobrist()
	z2 := zobrist()
	require.Same(t, z1, z2, "zobrist table must be a process-wide singleton")

	seen := make(map[PositionHash]bool)
	collisions := 0
	for pl := 0; pl < PlayerCount; pl++ {
		for vi := 0; vi < VertexCount; vi++ {
			w := z1.of(Player(pl), Vertex(vi))
			if seen[w] {
				collisions++
			}
			seen[w] = true
		}
	}
	assert.Zero(t, collisions)
}

func TestPositionHashXorIsSelfInverse(t *testing.T) {
	var h PositionHash = 0xdeadbeef
	orig := h
	w := zobrist().of(Black, vertexFromCoords(0, 0))
	h.xor(w)
	h.xor(w)
	assert.Equal(t, orig, h)
}
