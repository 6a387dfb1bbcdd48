package main

import (
	"flag"
	"fmt"
	"hash/maphash"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/every-minesweeper/internal/config"
	"github.com/vancomm/every-minesweeper/internal/mines"
)

var log = logrus.New()

var (
	size    int
	mineCnt int
	seedStr string
	code    string
	rngSeed uint64
	logPath string
)

func init() {
	flag.IntVar(&size, "size", 0, "board size (default BOARD_SIZE or 9)")
	flag.IntVar(&mineCnt, "mines", 0, "mine count (default BOARD_MINES or 10)")
	flag.StringVar(&seedStr, "seed", "", "comma separated seed to play")
	flag.StringVar(&code, "code", "", "share code to play")
	flag.Uint64Var(&rngSeed, "rng", 0, "random source seed, 0 picks one")
	flag.StringVar(&logPath, "log", "sweep.log", "log file, empty disables logging")
}

// setupLogging keeps the terminal for the board: entries only reach the
// rotating file hook.
func setupLogging(path string) error {
	level := logrus.InfoLevel
	if config.Development() {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
	log.SetOutput(io.Discard)
	if path == "" {
		return nil
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   path,
		MaxSize:    5,
		MaxBackups: 3,
		MaxAge:     28,
		Level:      level,
		Formatter:  &logrus.JSONFormatter{TimestampFormat: time.RFC3339},
	})
	if err != nil {
		return err
	}
	log.AddHook(hook)
	return nil
}

func createRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(
			new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
		))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

func main() {
	flag.Parse()
	_ = godotenv.Load()

	if err := setupLogging(logPath); err != nil {
		fmt.Fprintln(os.Stderr, "unable to set up logging:", err)
		os.Exit(1)
	}

	defaults, err := config.NewBoard()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	params := gameParams{
		Size:  size,
		Mines: mineCnt,
		Seed:  seedStr,
		Code:  code,
	}
	params.applyDefaults(*defaults)

	boardSize, s, err := params.resolve(createRand(rngSeed))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	game, err := mines.NewGame(boardSize, s)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log.WithFields(logrus.Fields{
		"size":  boardSize,
		"mines": s.Mines(),
		"seed":  s.String(),
	}).Info("game started")

	if err := play(os.Stdin, os.Stdout, game); err != nil {
		log.WithError(err).Error("input failed")
		os.Exit(1)
	}
}
