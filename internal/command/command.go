package command

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/vancomm/every-minesweeper/internal/mines"
)

type Command string

const (
	Noop     Command = "g"
	Open     Command = "o"
	Flag     Command = "f"
	Click    Command = "c"
	FlagMode Command = "m"
	Reset    Command = "r"
)

// Maps known commands to number of arguments
var commandNargs = map[Command]int{
	Noop:     0,
	Open:     2,
	Flag:     2,
	Click:    2,
	FlagMode: 0,
	Reset:    0,
}

var (
	ErrUnknown     = errors.New("unknown command")
	ErrNargs       = errors.New("invalid number of arguments")
	ErrCoordinates = errors.New("invalid square coordinates")
)

func parseRowCol(args []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(args[0]); err != nil {
		err = fmt.Errorf("%w: row must be an int", ErrCoordinates)
		return
	}
	if col, err = strconv.Atoi(args[1]); err != nil {
		err = fmt.Errorf("%w: column must be an int", ErrCoordinates)
		return
	}
	return
}

// Execute runs a single command line against g.
func Execute(g *mines.Game, line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return fmt.Errorf("%w: empty line", ErrUnknown)
	}
	cmd, args := Command(parts[0]), parts[1:]
	nargs, ok := commandNargs[cmd]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknown, parts[0])
	}
	if nargs != len(args) {
		return fmt.Errorf("%w: %q takes %d, got %d", ErrNargs, cmd, nargs, len(args))
	}

	switch cmd {
	case Noop:
		return nil
	case FlagMode:
		g.ToggleFlagMode()
		return nil
	case Reset:
		g.Reset()
		return nil
	}

	row, col, err := parseRowCol(args)
	if err != nil {
		return err
	}
	if !g.InBounds(row, col) {
		return fmt.Errorf("%w: (%d, %d)", ErrCoordinates, row, col)
	}

	switch cmd {
	case Open:
		g.Reveal(row, col)
	case Flag:
		g.ToggleFlag(row, col)
	case Click:
		g.Click(row, col)
	}
	return nil
}

// ExecuteAll runs every non-blank line of text in order. It stops at the
// first error or as soon as the game is won or lost.
func ExecuteAll(g *mines.Game, text string) error {
	for i, line := range Lines(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := Execute(g, line); err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		if g.State().Over() {
			return nil
		}
	}
	return nil
}

func Lines(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}
