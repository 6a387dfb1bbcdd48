package mines

import (
	"sync"

	"github.com/vancomm/every-minesweeper/internal/seed"
)

// Game owns a single board and serializes every action on it. Reset swaps
// in a freshly built board under the same lock, so an action never lands on
// a board that has already been discarded.
type Game struct {
	mu       sync.Mutex
	board    *Board
	flagMode bool
}

func NewGame(size int, s seed.Seed) (*Game, error) {
	board, err := NewBoard(size, s)
	if err != nil {
		return nil, err
	}
	return &Game{board: board}, nil
}

func (g *Game) Reveal(row, col int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.board.Reveal(row, col)
}

func (g *Game) ToggleFlag(row, col int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.board.ToggleFlag(row, col)
}

// Click reveals or flags depending on the flag mode. Clicks on revealed
// cells and clicks outside of play are ignored.
func (g *Game) Click(row, col int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.board.state != Play {
		return
	}
	if c, ok := g.board.Cell(row, col); !ok || c.State == Revealed {
		return
	}
	if g.flagMode {
		g.board.ToggleFlag(row, col)
	} else {
		g.board.Reveal(row, col)
	}
}

// Reset rebuilds the board from the original size and seed. Flag mode is
// left as is.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.board = buildBoard(g.board.size, g.board.seed)
}

func (g *Game) ToggleFlagMode() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.flagMode = !g.flagMode
	return g.flagMode
}

func (g *Game) FlagMode() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.flagMode
}

func (g *Game) State() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.state
}

func (g *Game) InBounds(row, col int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.InBounds(row, col)
}

// Snapshot is a read-only copy of a game at one point in time.
type Snapshot struct {
	Size           int
	TotalMines     int
	MinesRemaining int
	State          GameState
	FlagMode       bool
	Seed           seed.Seed
	Rows           [][]Cell
}

func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	b := g.board
	return Snapshot{
		Size:           b.size,
		TotalMines:     b.TotalMines(),
		MinesRemaining: b.minesRemaining,
		State:          b.state,
		FlagMode:       g.flagMode,
		Seed:           b.Seed(),
		Rows:           b.Rows(),
	}
}

// Snapshot implements [fmt.Stringer]
func (s Snapshot) String() string {
	return render(s.Rows)
}
