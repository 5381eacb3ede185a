package gongo

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Config configures a playout run. The zero value is usable: every
// field other than Komi falls back to a documented default when left
// unset, matching the
// teacher's "if config.X > 0 { ... } else { default }" idiom.
type Config struct {
	// BoardSize is the width and height of the board, in [1,MaxBoardSize].
	// Zero means 9.
	BoardSize int

	// Komi is the compensation added to White's score. Zero is a valid
	// komi value in its own right, so normalized() leaves it untouched;
	// callers that want the engine's 6.5 default must set it explicitly
	// (cmd/gongo's --komi flag defaults to 6.5 for this reason).
	Komi float64

	// Seed seeds the PRNG driving move sampling. Zero means 123, the
	// seed used by this engine's documented deterministic test vectors.
	Seed uint32

	// ProximityBonus overrides the sampler's [cardinal, diagonal]
	// local-move multipliers. Zero value means {10.0, 10.0}.
	ProximityBonus [2]float64

	// Log is the structured logger carried with the configuration for
	// callers' diagnostics; nothing in this package writes to it. Nil
	// means a no-op logger.
	Log *zap.Logger
}

const (
	defaultBoardSize   = 9
	defaultSeed        = uint32(123)
	defaultProximityLo = float64(10.0)
	defaultProximityHi = float64(10.0)
)

// normalized returns a copy of c with every zero-valued field replaced
// by its default.
func (c Config) normalized() Config {
	if c.BoardSize <= 0 {
		c.BoardSize = defaultBoardSize
	}
	if c.Seed == 0 {
		c.Seed = defaultSeed
	}
	if c.ProximityBonus == ([2]float64{}) {
		c.ProximityBonus = [2]float64{defaultProximityLo, defaultProximityHi}
	}
	if c.Log == nil {
		c.Log = zap.NewNop()
	}
	return c
}

// NewBoardFromConfig builds an empty board from c, wrapping any
// construction failure (an out-of-range board size) so callers get a
// traceable error instead of a bare panic.
func NewBoardFromConfig(c Config) (board *Board, err error) {
	c = c.normalized()
	defer func() {
		if r := recover(); r != nil {
			board = nil
			err = errors.Errorf("gongo: NewBoardFromConfig: %v", r)
		}
	}()
	b := NewBoard(c.BoardSize, c.BoardSize)
	b.SetKomi(c.Komi)
	return b, nil
}

// NewSamplerFromConfig builds a sampler with c's proximity bonus
// already applied.
func NewSamplerFromConfig(c Config) *Sampler {
	c = c.normalized()
	s := NewSampler()
	s.proximityBonus = c.ProximityBonus
	return s
}
