// Command gongo runs a batch of Monte Carlo Go playouts and reports a
// one-line summary. It is a thin wrapper over the gongo library: no
// GTP protocol, no wall-clock benchmarking, no hardware performance
// counters.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/skybrian/gongo"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var (
		boardSize = pflag.IntP("board-size", "b", 9, "board width and height")
		playouts  = pflag.IntP("playouts", "n", 1000, "number of playouts to run")
		seed      = pflag.Uint32P("seed", "s", 123, "PRNG seed")
		komi      = pflag.Float64P("komi", "k", 6.5, "komi added to White's score")
		parallel  = pflag.BoolP("parallel", "p", false, "spread playouts across GOMAXPROCS workers")
		verbose   = pflag.BoolP("verbose", "v", false, "enable debug logging")
	)
	pflag.Parse()

	logLevel := zap.NewAtomicLevelAt(zap.InfoLevel)
	if *verbose {
		logLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logCfg := zap.NewProductionConfig()
	logCfg.Level = logLevel
	logger, err := logCfg.Build()
	if err != nil {
		return errors.Wrap(err, "gongo: building logger")
	}
	defer logger.Sync()

	cfg := gongo.Config{
		BoardSize: *boardSize,
		Komi:      *komi,
		Seed:      *seed,
		Log:       logger,
	}

	board, err := gongo.NewBoardFromConfig(cfg)
	if err != nil {
		return errors.Wrap(err, "gongo: building board")
	}
	board.Clear()
	gammas := gongo.NewGammas()

	logger.Debug("starting playouts",
		zap.Int("board_size", cfg.BoardSize),
		zap.Int("playouts", *playouts),
		zap.Uint32("seed", cfg.Seed),
		zap.Bool("parallel", *parallel),
	)

	var stats gongo.PlayoutStats
	if *parallel {
		stats = gongo.RunPlayoutsParallel(board, gammas, cfg.Seed, *playouts)
	} else {
		stats = gongo.RunPlayouts(board, gammas, cfg.Seed, *playouts)
	}

	logger.Info("playouts complete",
		zap.Int("playouts", *playouts),
		zap.Int("total_moves", stats.MoveCount),
		zap.Int("black_wins", stats.Wins[gongo.Black]),
		zap.Int("white_wins", stats.Wins[gongo.White]),
	)
	fmt.Printf("%d playouts, %d total moves, black %d - white %d\n",
		*playouts, stats.MoveCount, stats.Wins[gongo.Black], stats.Wins[gongo.White])
	return nil
}
