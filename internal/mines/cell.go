package mines

import (
	"fmt"
	"strconv"
)

type CellState uint8

const (
	Hidden CellState = iota
	Revealed
	Flagged
)

var cellStateNames = [...]string{
	Hidden:   "hidden",
	Revealed: "revealed",
	Flagged:  "flagged",
}

// CellState implements [fmt.Stringer]
func (s CellState) String() string {
	if int(s) < len(cellStateNames) {
		return cellStateNames[s]
	}
	return "CellState(" + strconv.Itoa(int(s)) + ")"
}

// CellState implements [encoding.TextMarshaler]
func (s CellState) MarshalText() ([]byte, error) {
	if int(s) >= len(cellStateNames) {
		return nil, fmt.Errorf("unknown cell state %d", s)
	}
	return []byte(s.String()), nil
}

type Cell struct {
	Mine          bool
	NeighborMines int /* unused for mines */
	State         CellState
}

// symbol is the single character used by text renderings of a board.
func (c Cell) symbol() string {
	switch {
	case c.State == Flagged:
		return "F"
	case c.State == Hidden:
		return "-"
	case c.Mine:
		return "*"
	case c.NeighborMines == 0:
		return "."
	default:
		return strconv.Itoa(c.NeighborMines)
	}
}
