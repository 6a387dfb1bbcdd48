package mines

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vancomm/every-minesweeper/internal/seed"
)

// Board is a square minefield built from a seed. Cells are stored row-major.
type Board struct {
	size           int
	seed           seed.Seed
	cells          []Cell
	state          GameState
	minesRemaining int
}

func NewBoard(size int, s seed.Seed) (*Board, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size must be positive, got %d",
			ErrInvalidBoard, size)
	}
	if len(s) == 0 {
		return nil, fmt.Errorf("%w: empty seed", ErrInvalidBoard)
	}
	return buildBoard(size, s), nil
}

func buildBoard(size int, s seed.Seed) *Board {
	b := &Board{
		size:  size,
		seed:  slices.Clone(s),
		cells: make([]Cell, size*size),
		state: Setup,
	}
	b.placeMines()
	b.countNeighbors()
	b.state = Play
	b.minesRemaining = b.TotalMines()
	return b
}

/*
 * The seed is consumed as run lengths: seed[0] safe cells, a mine, seed[1]
 * safe cells, a mine, and so on. Non-positive runs place the mine at once.
 * Placement stops after the last mine, so the trailing run is never read.
 */
func (b *Board) placeMines() {
	total := b.TotalMines()
	seedIndex, counter, placed := 0, 0, 0
	for i := range b.cells {
		if placed >= total {
			break
		}
		if counter >= b.seed[seedIndex] {
			b.cells[i].Mine = true
			placed++
			seedIndex++
			counter = 0
		} else {
			counter++
		}
	}
}

func (b *Board) countNeighbors() {
	for row := range b.size {
		for col := range b.size {
			c := &b.cells[b.index(row, col)]
			if c.Mine {
				continue
			}
			c.NeighborMines = 0
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					if b.InBounds(row+dr, col+dc) && b.cells[b.index(row+dr, col+dc)].Mine {
						c.NeighborMines++
					}
				}
			}
		}
	}
}

func (b *Board) index(row, col int) int {
	return row*b.size + col
}

func (b *Board) InBounds(row, col int) bool {
	return 0 <= row && row < b.size && 0 <= col && col < b.size
}

func (b *Board) Size() int {
	return b.size
}

// TotalMines is the mine count the seed asks for. Fewer may have been
// placed if the runs overflow the board, see [Board.PlacedMines].
func (b *Board) TotalMines() int {
	return b.seed.Mines()
}

func (b *Board) PlacedMines() (n int) {
	for _, c := range b.cells {
		if c.Mine {
			n++
		}
	}
	return
}

func (b *Board) Seed() seed.Seed {
	return slices.Clone(b.seed)
}

func (b *Board) State() GameState {
	return b.state
}

// MinesRemaining is total mines minus placed flags. It is not clamped and
// goes negative when the player over-flags.
func (b *Board) MinesRemaining() int {
	return b.minesRemaining
}

func (b *Board) Cell(row, col int) (Cell, bool) {
	if !b.InBounds(row, col) {
		return Cell{}, false
	}
	return b.cells[b.index(row, col)], true
}

// Rows returns a copy of the grid.
func (b *Board) Rows() [][]Cell {
	rows := make([][]Cell, b.size)
	for row := range b.size {
		rows[row] = slices.Clone(b.cells[row*b.size : (row+1)*b.size])
	}
	return rows
}

type point struct {
	row, col int
}

func (b *Board) Reveal(row, col int) {
	if b.state != Play || !b.InBounds(row, col) {
		return
	}
	start := &b.cells[b.index(row, col)]
	if start.State != Hidden {
		return
	}

	if start.Mine {
		for i := range b.cells {
			if b.cells[i].Mine {
				b.cells[i].State = Revealed
			}
		}
		b.state = Loss
		return
	}

	/*
	 * Breadth-first flood fill. Neighbours are queued unfiltered and
	 * checked when they come off the queue; the visited set bounds the
	 * work to one visit per coordinate.
	 */
	queue := []point{{row, col}}
	visited := make(map[point]struct{})
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		if _, ok := visited[p]; ok {
			continue
		}
		visited[p] = struct{}{}

		if !b.InBounds(p.row, p.col) {
			continue
		}
		c := &b.cells[b.index(p.row, p.col)]
		if c.State != Hidden || c.Mine {
			continue
		}

		c.State = Revealed

		if c.NeighborMines == 0 {
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					if dr != 0 || dc != 0 {
						queue = append(queue, point{p.row + dr, p.col + dc})
					}
				}
			}
		}
	}

	b.checkWin()
}

func (b *Board) checkWin() {
	for _, c := range b.cells {
		if !c.Mine && c.State != Revealed {
			return
		}
	}
	b.state = Win
}

func (b *Board) ToggleFlag(row, col int) {
	if b.state != Play || !b.InBounds(row, col) {
		return
	}
	c := &b.cells[b.index(row, col)]
	switch c.State {
	case Hidden:
		c.State = Flagged
		b.minesRemaining--
	case Flagged:
		c.State = Hidden
		b.minesRemaining++
	}
}

// Board implements [fmt.Stringer]
func (b *Board) String() string {
	return render(b.Rows())
}

func render(rows [][]Cell) string {
	var sb strings.Builder
	for _, row := range rows {
		for col, c := range row {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(c.symbol())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
