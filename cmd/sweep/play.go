package main

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/every-minesweeper/internal/command"
	"github.com/vancomm/every-minesweeper/internal/config"
	"github.com/vancomm/every-minesweeper/internal/mines"
	"github.com/vancomm/every-minesweeper/internal/seed"
)

const help = `commands:
  o ROW COL  reveal a cell
  f ROW COL  toggle a flag
  c ROW COL  click (reveal, or flag in flag mode)
  m          toggle flag mode
  r          restart with the same seed
  g          redraw
  q          quit`

type gameParams struct {
	Size  int
	Mines int
	Seed  string
	Code  string
}

func (p *gameParams) applyDefaults(d config.Board) {
	if p.Size == 0 {
		p.Size = d.Size
	}
	if p.Mines == 0 && p.Seed == "" {
		p.Mines = d.Mines
	}
}

// resolve prefers an explicit seed, then a share code, and generates one
// otherwise.
func (p gameParams) resolve(rnd *rand.Rand) (int, seed.Seed, error) {
	switch {
	case p.Seed != "":
		s, err := seed.Parse(p.Seed)
		if err != nil {
			return 0, nil, err
		}
		if p.Mines != 0 && p.Mines != s.Mines() {
			return 0, nil, fmt.Errorf("seed holds %d mines, expected %d", s.Mines(), p.Mines)
		}
		return p.Size, s, nil
	case p.Code != "":
		s, err := seed.FromCode(p.Code, p.Size, p.Mines)
		return p.Size, s, err
	}
	s, err := seed.Generate(p.Size, p.Mines, rnd)
	return p.Size, s, err
}

func printGame(out io.Writer, game *mines.Game) {
	snap := game.Snapshot()
	mode := "reveal"
	if snap.FlagMode {
		mode = "flag"
	}
	fmt.Fprintf(out, "mines: %d  mode: %s  state: %s\n", snap.MinesRemaining, mode, snap.State)
	fmt.Fprint(out, snap.String())
	if !snap.State.Over() {
		return
	}
	fmt.Fprintf(out, "seed: %s\n", snap.Seed)
	if c, err := snap.Seed.Code(); err == nil {
		fmt.Fprintf(out, "code: %s\n", c)
	}
}

func play(in io.Reader, out io.Writer, game *mines.Game) error {
	scanner := bufio.NewScanner(in)
	printGame(out, game)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "q":
			return nil
		case "h", "?":
			fmt.Fprintln(out, help)
			continue
		}

		before := game.State()
		if err := command.Execute(game, line); err != nil {
			log.WithError(err).WithField("line", line).Warn("rejected command")
			fmt.Fprintln(out, "error:", err)
			continue
		}
		log.WithField("line", line).Debug("executed command")

		if after := game.State(); after != before && after.Over() {
			log.WithFields(logrus.Fields{"state": after.String()}).Info("game over")
		}
		printGame(out, game)
	}
	return scanner.Err()
}
