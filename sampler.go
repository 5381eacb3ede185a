package gongo

// Sampler holds a running, per-player weighted distribution over every
// empty vertex, kept in lockstep with a Board's 3x3 fingerprints so a
// move can be drawn in O(empty) without rescanning the whole board,
// plus a local-neighborhood proximity bonus around the last move.
type Sampler struct {
	actGamma    [][PlayerCount]float64
	actGammaSum [PlayerCount]float64

	// proximityBonus[dir.Proximity()]: multiplicative bonus applied to
	// a neighbor of the last move, cardinal index 0, diagonal index 1.
	proximityBonus [2]float64

	isInLocal     []bool
	localVertices []Vertex
	localGamma    []float64
	totalNonLocalGamma float64
	totalLocalGamma    float64

	koV Vertex
}

// NewSampler builds a sampler sized for the full Vertex domain. Its
// running sums are empty until NewPlayout is called.
func NewSampler() *Sampler {
	return &Sampler{
		actGamma:       make([][PlayerCount]float64, VertexCount),
		proximityBonus: [2]float64{10.0, 10.0},
		isInLocal:      make([]bool, VertexCount),
		localVertices:  make([]Vertex, 0, 100),
		localGamma:     make([]float64, VertexCount),
		koV:            VertexNone,
	}
}

// NewPlayout rebuilds the running gamma sums from scratch for a fresh
// board position -- the one full-board pass per playout, everything
// after this is incremental.
func (s *Sampler) NewPlayout(board *Board, gammas *Gammas) {
	for pl := 0; pl < PlayerCount; pl++ {
		p := Player(pl)
		s.actGammaSum[pl] = 0
		for v := 0; v < VertexCount; v++ {
			s.actGamma[v][pl] = 0
		}
		for ii := 0; ii < board.EmptyVertexCount(); ii++ {
			v := board.EmptyVertex(ii)
			w := gammas.Get(board.Hash3x3At(v), p)
			s.actGamma[v][pl] = w
			s.actGammaSum[pl] += w
		}
	}

	actPl := board.ActPlayer()
	s.koV = board.KoVertex()
	if s.koV != VertexNone {
		s.actGammaSum[actPl] -= s.actGamma[s.koV][actPl]
		s.actGamma[s.koV][actPl] = 0
	}
}

// MovePlayed updates the running sums after board.PlayLegal has just
// been called, using only the vertices board reports as changed.
func (s *Sampler) MovePlayed(board *Board, gammas *Gammas) {
	lastPl := board.LastPlayer()
	lastV := board.LastVertex()

	// Restore the gamma of the vertex the ko ban just lifted from, for
	// the player it was restricted against.
	if s.koV != VertexNone {
		hash := board.Hash3x3At(s.koV)
		newGamma := gammas.Get(hash, lastPl)
		s.actGamma[s.koV][lastPl] = newGamma
		s.actGammaSum[lastPl] += newGamma
	}

	for pl := 0; pl < PlayerCount; pl++ {
		// The just-played vertex is no longer empty for either player.
		s.actGammaSum[pl] -= s.actGamma[lastV][pl]
		s.actGamma[lastV][pl] = 0

		n := board.Hash3x3ChangedCount()
		for ii := 0; ii < n; ii++ {
			v := board.Hash3x3Changed(ii)
			s.actGammaSum[pl] -= s.actGamma[v][pl]
			w := gammas.Get(board.Hash3x3At(v), Player(pl))
			s.actGamma[v][pl] = w
			s.actGammaSum[pl] += w
		}
	}

	actPl := board.ActPlayer()
	s.koV = board.KoVertex()
	if s.koV != VertexNone {
		s.actGammaSum[actPl] -= s.actGamma[s.koV][actPl]
		s.actGamma[s.koV][actPl] = 0
	}
}

// SampleMove draws one move for the board's active player, weighted
// by the current gammas with a local-window bonus around the
// previous move. Returns VertexPass once the active player's total
// weight underflows GammasAccuracy -- how a playout terminates.
func (s *Sampler) SampleMove(board *Board, random *FastRandom) Vertex {
	pl := board.ActPlayer()

	if s.actGammaSum[pl] < GammasAccuracy {
		return VertexPass
	}

	s.calculateLocalGammas(board)

	totalGamma := s.totalNonLocalGamma + s.totalLocalGamma
	sample := random.NextDouble(totalGamma)

	if sample < s.totalLocalGamma {
		return s.sampleLocalMove(sample)
	}
	return s.sampleNonLocalMove(board, sample-s.totalLocalGamma)
}

// calculateLocalGammas builds the local window around the previous
// move: each of its eight neighbors, cardinals multiplied by
// proximityBonus[0], diagonals by proximityBonus[1]. A vertex
// reachable as both only gets the bonus of the first direction
// enumerated (cardinals first), since ensureLocal only seeds a vertex
// once.
func (s *Sampler) calculateLocalGammas(board *Board) {
	pl := board.ActPlayer()

	for _, v := range s.localVertices {
		s.isInLocal[v] = false
	}
	s.localVertices = s.localVertices[:0]
	s.totalNonLocalGamma = s.actGammaSum[pl]
	s.totalLocalGamma = 0

	lastV := board.LastVertex()

	if board.ColorAt(lastV) != ColorOffBoard {
		for _, d := range allDirs {
			nbr := vertexNbr(lastV, d)
			s.ensureLocal(nbr, pl)
			s.localGamma[nbr] *= s.proximityBonus[d.Proximity()]
		}
	}

	for _, v := range s.localVertices {
		s.totalLocalGamma += s.localGamma[v]
	}
}

func (s *Sampler) ensureLocal(v Vertex, pl Player) {
	if s.isInLocal[v] {
		return
	}
	s.isInLocal[v] = true
	s.localVertices = append(s.localVertices, v)
	s.localGamma[v] = s.actGamma[v][pl]
	s.totalNonLocalGamma -= s.actGamma[v][pl]
}

func (s *Sampler) sampleLocalMove(sample float64) Vertex {
	sum := 0.0
	for _, v := range s.localVertices {
		sum += s.localGamma[v]
		if sum >= sample {
			return v
		}
	}
	panic("sampleLocalMove: ran out of local vertices before reaching sample")
}

func (s *Sampler) sampleNonLocalMove(board *Board, sample float64) Vertex {
	pl := board.ActPlayer()
	sum := 0.0
	for ii := 0; ii < board.EmptyVertexCount(); ii++ {
		v := board.EmptyVertex(ii)
		if s.isInLocal[v] {
			continue
		}
		sum += s.actGamma[v][pl]
		if sum > sample {
			return v
		}
	}
	return VertexPass
}
