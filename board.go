package gongo

import (
	"fmt"
	"math"
)

// kArea bounds the number of on-board vertices of the largest legal
// board: the empty-vertex list and the 3x3-changed scratch list are
// sized to it.
const kArea = MaxBoardSize * MaxBoardSize

// nbrCounter packs (black_neighbor_count, white_neighbor_count,
// empty_neighbor_count) into 4-bit fields. The off-board padding ring
// increments both player counts simultaneously, so player_cnt_is_max
// is true iff every neighbor (on or off board) is that player's color
// or off-board -- exactly the eye-score test.
type nbrCounter uint32

// These are declared as vars, not consts: the derived tables below
// combine them with subtraction that wraps through unsigned underflow
// by design, which Go's compile-time constant-overflow check would
// otherwise reject.
var (
	nbrCounterMax uint32 = 4
	nbrShiftBlack uint32 = 0
	nbrShiftWhite uint32 = 4
	nbrShiftEmpty uint32 = 8
)

// nbrPlayerIncTab[pl] is the bitfield delta that increments pl's count
// and decrements the empty count by one, expressed so it also works as
// a wrapping subtraction when negated via unsigned underflow.
var nbrPlayerIncTab = [PlayerCount]uint32{
	(uint32(1) << nbrShiftBlack) - (uint32(1) << nbrShiftEmpty),
	(uint32(1) << nbrShiftWhite) - (uint32(1) << nbrShiftEmpty),
}

var nbrPlayerMaxMask = [PlayerCount]uint32{
	nbrCounterMax << nbrShiftBlack,
	nbrCounterMax << nbrShiftWhite,
}

var nbrOffBoardIncVal = (uint32(1) << nbrShiftBlack) + (uint32(1) << nbrShiftWhite) - (uint32(1) << nbrShiftEmpty)

func nbrCounterEmpty() nbrCounter { return nbrCounter(nbrCounterMax << nbrShiftEmpty) }

func (n *nbrCounter) playerInc(pl Player) { *n = nbrCounter(uint32(*n) + nbrPlayerIncTab[pl]) }
func (n *nbrCounter) playerDec(pl Player) { *n = nbrCounter(uint32(*n) - nbrPlayerIncTab[pl]) }
func (n *nbrCounter) offBoardInc()        { *n = nbrCounter(uint32(*n) + nbrOffBoardIncVal) }

func (n nbrCounter) emptyCnt() uint32 { return uint32(n) >> nbrShiftEmpty }

func (n nbrCounter) playerCntIsMax(pl Player) bool {
	mask := nbrPlayerMaxMask[pl]
	return uint32(n)&mask == mask
}

// chainState is the liberty record kept at a string's canonical
// vertex. Liberties are never materialised as a set: lib_cnt, lib_sum
// and lib_sum2 are the count, sum and sum-of-squares of liberty vertex
// ids, maintained additively under merge and capture. By
// Cauchy-Schwarz, lib_cnt*lib_sum2 == lib_sum*lib_sum exactly when
// there is one liberty (atari), and that liberty's id is then
// lib_sum/lib_cnt -- a branch-free atari test that needs no set.
//
// All three accumulators use unsigned wraparound arithmetic on
// purpose: sub_lib must be the exact inverse of add_lib for the same
// vertex even when the running sums have wrapped.
type chainState struct {
	libCnt  uint32
	libSum  uint32
	libSum2 uint32
	size    uint32
	atariV  Vertex
}

func (c *chainState) reset() {
	*c = chainState{atariV: VertexNone}
}

// resetOffBoard bootstraps the chain record kept at an off-board
// vertex so that liberty subtraction and capture tests applied to it
// are well-defined and never mistake the padding ring for a real,
// capturable string.
func (c *chainState) resetOffBoard() {
	*c = chainState{libCnt: 2, libSum: 1, libSum2: 1, size: 100, atariV: VertexNone}
}

func (c *chainState) addLib(v Vertex) {
	c.libCnt++
	c.libSum += uint32(v)
	c.libSum2 += uint32(v) * uint32(v)
}

func (c *chainState) subLib(v Vertex) {
	c.libCnt--
	c.libSum -= uint32(v)
	c.libSum2 -= uint32(v) * uint32(v)
}

func (c *chainState) merge(other *chainState) {
	c.libCnt += other.libCnt
	c.libSum += other.libSum
	c.libSum2 += other.libSum2
	c.size += other.size
}

func (c *chainState) isCaptured() bool { return c.libCnt == 0 }

func (c *chainState) isInAtari() bool { return c.libCnt*c.libSum2 == c.libSum*c.libSum }

// Board is the incremental Go board: string/liberty/ko/atari state and
// the 3x3 pattern fingerprint of every vertex, all kept in sync on
// every play_legal call so a playout never recomputes anything from
// scratch.
type Board struct {
	moveNo      int
	komi        float64
	colorAt     []Color
	koV         Vertex
	lastPlayer  Player
	lastPlay    [PlayerCount]Vertex
	boardWidth  int
	boardHeight int

	hash PositionHash

	playerVCnt [PlayerCount]uint32
	chainNextV []Vertex
	chainID    []Vertex
	chain      []chainState

	nbrCnt []nbrCounter

	emptyVCnt int
	emptyV    []Vertex
	emptyPos  []int

	playCount []int

	hash3x3        []Hash3x3
	hash3x3Changed []Vertex
	tmpVertexSet   []bool
}

// NewBoard builds a width x height board and clears it. Both
// dimensions must be in [1, MaxBoardSize].
func NewBoard(width, height int) *Board {
	if width <= 0 || width > MaxBoardSize {
		panic(fmt.Sprintf("board width must be between 1 and %d, got %d", MaxBoardSize, width))
	}
	if height <= 0 || height > MaxBoardSize {
		panic(fmt.Sprintf("board height must be between 1 and %d, got %d", MaxBoardSize, height))
	}

	b := &Board{
		komi:        6.5,
		boardWidth:  width,
		boardHeight: height,
		colorAt:     make([]Color, VertexCount),
		chainNextV:  make([]Vertex, VertexCount),
		chainID:     make([]Vertex, VertexCount),
		chain:       make([]chainState, VertexCount),
		nbrCnt:      make([]nbrCounter, VertexCount),
		emptyV:      make([]Vertex, kArea),
		emptyPos:    make([]int, VertexCount),
		playCount:   make([]int, VertexCount),
		hash3x3:     make([]Hash3x3, VertexCount),
		hash3x3Changed: make([]Vertex, 0, kArea),
		tmpVertexSet:   make([]bool, VertexCount),
	}
	b.Clear()
	return b
}

// NewDefaultBoard returns a 9x9 board, the engine's default size.
func NewDefaultBoard() *Board { return NewBoard(9, 9) }

// Clear resets the board to an empty position: padding filled with
// OffBoard, every neighbor counter, 3x3 fingerprint and the Zobrist
// hash rebuilt.
func (b *Board) Clear() {
	b.moveNo = 0
	b.lastPlayer = White
	b.koV = VertexNone

	for v := 0; v < VertexCount; v++ {
		b.colorAt[v] = ColorOffBoard
		b.chainNextV[v] = Vertex(v)
		b.chainID[v] = Vertex(v)
		b.nbrCnt[v] = nbrCounterEmpty()
		b.playCount[v] = 0
		b.emptyPos[v] = 0
		b.chain[v].resetOffBoard()
	}

	b.emptyVCnt = 0

	for v := 0; v < VertexCount; v++ {
		vv := Vertex(v)
		if b.isWithinBoard(vv) {
			b.colorAt[v] = ColorEmpty
			b.chain[v].reset()

			b.emptyPos[v] = b.emptyVCnt
			b.emptyV[b.emptyVCnt] = vv
			b.emptyVCnt++
		}
	}

	for v := 0; v < VertexCount; v++ {
		if b.colorAt[v] == ColorEmpty {
			b.nbrCnt[v] = nbrCounterEmpty()
			vv := Vertex(v)
			for _, nbr := range cardinalNbrs(vv) {
				if b.colorAt[nbr] == ColorOffBoard {
					c := b.nbrCnt[v]
					c.offBoardInc()
					b.nbrCnt[v] = c
				}
			}
		}
	}

	b.playerVCnt[Black] = 0
	b.playerVCnt[White] = 0
	b.lastPlay[Black] = VertexNone
	b.lastPlay[White] = VertexNone

	for v := 0; v < VertexCount; v++ {
		vv := Vertex(v)
		b.hash3x3[v] = hash3x3OfBoard(func(x Vertex) Color { return b.colorAt[x] }, vv)
	}
	b.hash3x3Changed = b.hash3x3Changed[:0]

	b.hash = b.recalcHash()
}

// cardinalNbrs returns v's four cardinal neighbors in the fixed order
// up, left, right, down, matching the reference implementation's
// enumeration.
func cardinalNbrs(v Vertex) [4]Vertex {
	return [4]Vertex{v.up(), v.left(), v.right(), v.down()}
}

func (b *Board) isWithinBoard(v Vertex) bool {
	row := v.row() + 1
	col := v.column() + 1
	return row > 0 && row <= b.boardHeight && col > 0 && col <= b.boardWidth
}

// ActPlayer is the opponent of the last mover (Black moves first from
// an empty board).
func (b *Board) ActPlayer() Player { return b.lastPlayer.Opponent() }

func (b *Board) ColorAt(v Vertex) Color { return b.colorAt[v] }

func (b *Board) EmptyVertexCount() int { return b.emptyVCnt }

func (b *Board) EmptyVertex(i int) Vertex { return b.emptyV[i] }

func (b *Board) MoveCount() int { return b.moveNo }

func (b *Board) KoVertex() Vertex { return b.koV }

func (b *Board) LastPlayer() Player { return b.lastPlayer }

// LastVertex is the last vertex played by LastPlayer, or VertexNone
// before the first move.
func (b *Board) LastVertex() Vertex {
	if b.moveNo == 0 {
		return VertexNone
	}
	return b.lastPlay[b.lastPlayer]
}

func (b *Board) Hash3x3At(v Vertex) Hash3x3 { return b.hash3x3[v] }

func (b *Board) Hash3x3ChangedCount() int { return len(b.hash3x3Changed) }

func (b *Board) Hash3x3Changed(i int) Vertex { return b.hash3x3Changed[i] }

func (b *Board) PositionalHash() PositionHash { return b.hash }

func (b *Board) recalcHash() PositionHash {
	var h PositionHash
	z := zobrist()
	for v := 0; v < VertexCount; v++ {
		if colorIsPlayer(b.colorAt[v]) {
			h.xor(z.of(colorToPlayer(b.colorAt[v]), Vertex(v)))
		}
	}
	return h
}

// BothPlayerPass is true once each player's last move was a pass --
// the playout termination condition.
func (b *Board) BothPlayerPass() bool {
	return b.lastPlay[Black] == VertexPass && b.lastPlay[White] == VertexPass
}

// IsLegal is a pure predicate: it does not mutate the board.
// Pass is always legal. A non-empty or ko-forbidden target is not.
// Otherwise it's legal unless placing there would be suicide.
func (b *Board) IsLegal(player Player, v Vertex) bool {
	if v == VertexPass {
		return true
	}
	if b.colorAt[v] != ColorEmpty || v == b.koV {
		return false
	}
	if b.nbrCnt[v].emptyCnt() > 0 {
		return true
	}

	// Decrement once per neighbor, not per chain: if the same enemy
	// chain touches v at two of its stones, it legitimately loses the
	// liberty v twice in this tally.
	var tempLibs [VertexCount]int32
	nbrs := cardinalNbrs(v)

	for _, nbr := range nbrs {
		cid := b.chainID[nbr]
		if tempLibs[cid] == 0 {
			tempLibs[cid] = int32(b.chain[cid].libCnt)
		}
	}
	for _, nbr := range nbrs {
		tempLibs[b.chainID[nbr]]--
	}

	notSuicide := false
	for _, nbr := range nbrs {
		if colorIsPlayer(b.colorAt[nbr]) {
			cid := b.chainID[nbr]
			atari := tempLibs[cid] == 0
			sameColor := colorToPlayer(b.colorAt[nbr]) == player
			notSuicide = notSuicide || (atari != sameColor)
		}
	}
	return notSuicide
}

// PlayLegal applies a move known to be legal (pass, or an empty
// non-ko, non-suicide vertex). It does not validate its precondition;
// callers that need validation must call IsLegal first.
func (b *Board) PlayLegal(player Player, v Vertex) {
	for i := range b.tmpVertexSet {
		b.tmpVertexSet[i] = false
	}
	b.hash3x3Changed = b.hash3x3Changed[:0]

	b.lastPlay[player] = v
	b.lastPlayer = player
	b.moveNo++

	if v == VertexPass {
		b.koV = VertexNone
		return
	}

	b.playCount[v]++
	b.placeStone(player, v)

	color := colorOf(player)
	capturedCnt := uint32(0)
	lastCapturedV := VertexNone

	for _, nbr := range cardinalNbrs(v) {
		nbrColor := b.colorAt[nbr]
		if !colorIsPlayer(nbrColor) {
			continue
		}
		if nbrColor != color {
			nbrChainID := b.chainID[nbr]
			if b.chain[nbrChainID].isCaptured() {
				capturedCnt += b.chain[nbrChainID].size
				lastCapturedV = nbr
				b.removeChain(nbr)
			} else {
				b.maybeInAtari(nbr)
			}
		} else {
			nbrChainID := b.chainID[nbr]
			if b.chainID[v] != nbrChainID {
				if b.chain[b.chainID[v]].size > b.chain[nbrChainID].size {
					b.mergeChains(v, nbr)
				} else {
					b.mergeChains(nbr, v)
				}
			}
		}
	}

	if capturedCnt == 1 && b.chain[b.chainID[v]].size == 1 && b.chain[b.chainID[v]].libCnt == 1 {
		b.koV = lastCapturedV
	} else {
		b.koV = VertexNone
	}

	b.maybeInAtari(v)
}

func (b *Board) markHash3x3Changed(v Vertex) {
	if !b.tmpVertexSet[v] {
		b.tmpVertexSet[v] = true
		b.hash3x3Changed = append(b.hash3x3Changed, v)
	}
}

func (b *Board) placeStone(player Player, v Vertex) {
	if b.colorAt[v] != ColorEmpty {
		panic(fmt.Sprintf("trying to place a %v stone at %d,%d which has color %v",
			player, v.row()+1, v.column()+1, b.colorAt[v]))
	}

	// Remove v from the empty list by swapping in the last entry.
	b.emptyVCnt--
	lastEmpty := b.emptyV[b.emptyVCnt]
	b.emptyPos[lastEmpty] = b.emptyPos[v]
	b.emptyV[b.emptyPos[v]] = lastEmpty

	color := colorOf(player)
	b.colorAt[v] = color
	b.playerVCnt[player]++

	b.hash.xor(zobrist().of(player, v))

	for _, dir := range allDirs {
		nbr := vertexNbr(v, dir)
		h := b.hash3x3[nbr]
		h.SetColorAt(dir.Opposite(), color)
		b.hash3x3[nbr] = h
		if b.colorAt[nbr] == ColorEmpty {
			b.markHash3x3Changed(nbr)
		}
	}

	b.chainID[v] = v
	b.chainNextV[v] = v
	b.chain[v].reset()
	b.chain[v].size = 1

	for _, nbr := range cardinalNbrs(v) {
		nbrColor := b.colorAt[nbr]

		nc := b.nbrCnt[nbr]
		nc.playerInc(player)
		b.nbrCnt[nbr] = nc

		if nbrColor == ColorEmpty {
			b.chain[v].addLib(nbr)
		} else if colorIsPlayer(nbrColor) {
			b.chain[b.chainID[nbr]].subLib(v)
		} else if nbrColor == ColorOffBoard {
			b.chain[nbr].subLib(v)
		}
	}
}

// mergeChains absorbs the add string into the base string: base's
// record accumulates add's size/lib moments, chain_id is rewritten
// along add's circular list, and the two circular lists are spliced
// by swapping chain_next at the join points.
func (b *Board) mergeChains(vBase, vAdd Vertex) {
	baseID := b.chainID[vBase]
	addID := b.chainID[vAdd]
	if baseID == addID {
		return
	}

	addChain := b.chain[addID]
	b.chain[baseID].merge(&addChain)

	current := vAdd
	for {
		b.chainID[current] = baseID
		current = b.chainNextV[current]
		if current == vAdd {
			break
		}
	}

	baseNext := b.chainNextV[vBase]
	addNext := b.chainNextV[vAdd]
	b.chainNextV[vBase] = addNext
	b.chainNextV[vAdd] = baseNext
}

// maybeInAtari checks whether v's chain now has exactly one liberty
// and, if so, records and flags it. Called right after that chain's
// liberty count could have dropped.
func (b *Board) maybeInAtari(v Vertex) {
	if b.colorAt[v] == ColorEmpty || b.colorAt[v] == ColorOffBoard {
		return
	}
	cid := b.chainID[v]
	if !b.chain[cid].isInAtari() {
		return
	}

	c := b.chain[cid]
	if c.libSum%c.libCnt != 0 {
		panic("lib_sum % lib_cnt should be 0")
	}
	av := Vertex(c.libSum / c.libCnt)
	if b.colorAt[av] != ColorEmpty {
		return
	}

	b.chain[cid].atariV = av

	h := b.hash3x3[av]
	h.SetAtariBits(
		b.chainID[vertexNbr(av, DirN)] == cid,
		b.chainID[vertexNbr(av, DirE)] == cid,
		b.chainID[vertexNbr(av, DirS)] == cid,
		b.chainID[vertexNbr(av, DirW)] == cid,
	)
	b.hash3x3[av] = h

	b.markHash3x3Changed(av)
}

// maybeInAtariEnd is maybeInAtari's inverse, used while removing a
// captured chain: it must run before the freed vertex is added back
// as a liberty, or the atari flag would desync against the chain's
// about-to-change moments.
func (b *Board) maybeInAtariEnd(v Vertex) {
	if !colorIsPlayer(b.colorAt[v]) {
		return
	}
	cid := b.chainID[v]
	if b.chain[cid].isCaptured() {
		return
	}
	if !b.chain[cid].isInAtari() {
		return
	}

	c := b.chain[cid]
	if c.libSum%c.libCnt != 0 {
		panic("lib_sum % lib_cnt should be 0")
	}
	av := Vertex(c.libSum / c.libCnt)
	if b.colorAt[av] != ColorEmpty {
		return
	}

	b.chain[cid].atariV = VertexNone

	h := b.hash3x3[av]
	h.UnsetAtariBits(
		b.chainID[vertexNbr(av, DirN)] == cid,
		b.chainID[vertexNbr(av, DirE)] == cid,
		b.chainID[vertexNbr(av, DirS)] == cid,
		b.chainID[vertexNbr(av, DirW)] == cid,
	)
	b.hash3x3[av] = h

	b.markHash3x3Changed(av)
}

// removeChain takes any vertex of a captured chain and deletes every
// stone in it, in two passes: the first strips stones and updates
// neighbor counts and 3x3 hashes; the second restores liberties to
// neighboring chains, calling maybeInAtariEnd before each restore so
// an atari flag that no longer holds is cleared before lib_cnt rises.
func (b *Board) removeChain(v Vertex) {
	color := b.colorAt[v]
	if !colorIsPlayer(color) {
		panic("removeChain: vertex is not a player stone")
	}
	player := colorToPlayer(color)

	current := v
	for {
		actV := current

		b.emptyPos[actV] = b.emptyVCnt
		b.emptyV[b.emptyVCnt] = actV
		b.emptyVCnt++

		b.colorAt[actV] = ColorEmpty
		b.chainID[actV] = actV
		b.playerVCnt[player]--

		b.hash.xor(zobrist().of(player, actV))

		h := b.hash3x3[actV]
		h.ResetAtariBits()
		b.hash3x3[actV] = h
		b.markHash3x3Changed(actV)

		for _, dir := range allDirs {
			nbr := vertexNbr(actV, dir)
			hn := b.hash3x3[nbr]
			hn.SetColorAt(dir.Opposite(), ColorEmpty)
			b.hash3x3[nbr] = hn
			if b.colorAt[nbr] == ColorEmpty {
				b.markHash3x3Changed(nbr)
			}
		}

		for _, nbr := range cardinalNbrs(actV) {
			nc := b.nbrCnt[nbr]
			nc.playerDec(player)
			b.nbrCnt[nbr] = nc
		}

		current = b.chainNextV[current]
		if current == v {
			break
		}
	}

	current = v
	for {
		actV := current

		for _, nbr := range cardinalNbrs(actV) {
			b.maybeInAtariEnd(nbr)
			b.chain[b.chainID[nbr]].addLib(actV)
		}

		next := b.chainNextV[current]
		b.chainNextV[current] = current
		current = next
		if current == v {
			break
		}
	}
}

// PlayoutWinner returns the winner under the stones+eyes scoring
// proxy: Black if the score is positive, White otherwise (a
// non-positive score, including exact ties, favors White).
func (b *Board) PlayoutWinner() Player {
	if b.PlayoutScore() <= 0 {
		return White
	}
	return Black
}

// PlayoutScore is ceil(-komi) + black_stones - white_stones + eye
// score, the fast scoring proxy playouts use in place of full area
// scoring.
func (b *Board) PlayoutScore() int {
	return b.stoneScore() + b.calculateEyeScore()
}

func (b *Board) stoneScore() int {
	komiInverse := int(math.Ceil(-b.komi))
	return komiInverse + int(b.playerVCnt[Black]) - int(b.playerVCnt[White])
}

func (b *Board) calculateEyeScore() int {
	score := 0
	for i := 0; i < b.emptyVCnt; i++ {
		score += b.eyeScore(b.emptyV[i])
	}
	return score
}

func (b *Board) eyeScore(v Vertex) int {
	blackEye := b.nbrCnt[v].playerCntIsMax(Black)
	whiteEye := b.nbrCnt[v].playerCntIsMax(White)
	switch {
	case blackEye && !whiteEye:
		return 1
	case whiteEye && !blackEye:
		return -1
	default:
		return 0
	}
}

// Load overwrites the board with a full snapshot of source. Every
// field is a plain value or slice of POD, so this is a bulk copy; the
// per-move scratch (tmpVertexSet, hash3x3Changed) is left for the next
// PlayLegal to repopulate rather than copied.
func (b *Board) Load(source *Board) {
	b.moveNo = source.moveNo
	b.komi = source.komi
	copy(b.colorAt, source.colorAt)
	b.koV = source.koV
	b.lastPlayer = source.lastPlayer
	b.lastPlay = source.lastPlay
	b.boardWidth = source.boardWidth
	b.boardHeight = source.boardHeight
	b.hash = source.hash
	b.playerVCnt = source.playerVCnt
	copy(b.chainNextV, source.chainNextV)
	copy(b.chainID, source.chainID)
	copy(b.chain, source.chain)
	copy(b.nbrCnt, source.nbrCnt)
	b.emptyVCnt = source.emptyVCnt
	copy(b.emptyV, source.emptyV)
	copy(b.emptyPos, source.emptyPos)
	copy(b.playCount, source.playCount)
	copy(b.hash3x3, source.hash3x3)
	b.hash3x3Changed = b.hash3x3Changed[:0]
	for i := range b.tmpVertexSet {
		b.tmpVertexSet[i] = false
	}
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	c := NewBoard(b.boardWidth, b.boardHeight)
	c.Load(b)
	return c
}

// SetKomi overrides the default 6.5 komi. Playout scoring reads komi
// only through PlayoutScore/PlayoutWinner.
func (b *Board) SetKomi(komi float64) { b.komi = komi }

// TrompTaylorScore is an informational area score, independent of the
// faster stones+eyes proxy playouts actually use: Black stones minus
// White stones minus komi, plus one for each empty vertex whose
// cardinal neighbors include a Black stone and no White stone, minus
// one for the reverse. Empty regions are not flood-filled, so an empty
// vertex with no stone among its cardinal neighbors counts for neither
// player.
func (b *Board) TrompTaylorScore() float64 {
	score := -b.komi
	for v := 0; v < VertexCount; v++ {
		vv := Vertex(v)
		if !b.isWithinBoard(vv) {
			continue
		}
		switch b.colorAt[v] {
		case ColorBlack:
			score++
		case ColorWhite:
			score--
		case ColorEmpty:
			blackNbr, whiteNbr := false, false
			for _, nbr := range cardinalNbrs(vv) {
				switch b.colorAt[nbr] {
				case ColorBlack:
					blackNbr = true
				case ColorWhite:
					whiteNbr = true
				}
			}
			if blackNbr && !whiteNbr {
				score++
			} else if whiteNbr && !blackNbr {
				score--
			}
		}
	}
	return score
}
