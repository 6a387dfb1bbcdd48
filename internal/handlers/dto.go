package handlers

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/gorilla/schema"

	"github.com/vancomm/every-minesweeper/internal/mines"
	"github.com/vancomm/every-minesweeper/internal/repository"
	"github.com/vancomm/every-minesweeper/internal/seed"
	"github.com/vancomm/every-minesweeper/internal/session"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

func decodeQuery[T any](query url.Values) (T, error) {
	var dto T
	err := decoder.Decode(&dto, query)
	return dto, err
}

// NewGameDTO picks the seed source: seed_id, then code, then an explicit
// seed, otherwise a freshly generated one. Zero size or mines fall back to
// the configured defaults.
type NewGameDTO struct {
	Size   int    `schema:"size"`
	Mines  int    `schema:"mines"`
	Seed   string `schema:"seed"`
	Code   string `schema:"code"`
	SeedID int64  `schema:"seed_id"`
}

type BoardParamsDTO struct {
	Size  int `schema:"size"`
	Mines int `schema:"mines"`
}

type Move string

const (
	MoveReveal Move = "reveal"
	MoveFlag   Move = "flag"
	MoveClick  Move = "click"
)

func ParseMove(s string) (Move, error) {
	switch m := Move(s); m {
	case MoveReveal, MoveFlag, MoveClick:
		return m, nil
	}
	return "", fmt.Errorf("unknown move %q", s)
}

type MoveDTO struct {
	Move string `schema:"move,required"`
	Row  int    `schema:"row,required"`
	Col  int    `schema:"col,required"`
}

// CellDTO only carries mine and count data once a cell is revealed.
type CellDTO struct {
	State         mines.CellState `json:"state"`
	Mine          bool            `json:"mine,omitempty"`
	NeighborMines *int            `json:"neighbor_mines,omitempty"`
}

func NewCellDTO(c mines.Cell) CellDTO {
	dto := CellDTO{State: c.State}
	if c.State != mines.Revealed {
		return dto
	}
	if c.Mine {
		dto.Mine = true
	} else {
		n := c.NeighborMines
		dto.NeighborMines = &n
	}
	return dto
}

type GameSessionDTO struct {
	GameSessionID  string          `json:"game_session_id"`
	SeedID         *int64          `json:"seed_id,omitempty"`
	Size           int             `json:"size"`
	MineCount      int             `json:"mine_count"`
	MinesRemaining int             `json:"mines_remaining"`
	State          mines.GameState `json:"state"`
	FlagMode       bool            `json:"flag_mode"`
	Cells          [][]CellDTO     `json:"cells"`
	Seed           string          `json:"seed,omitempty"`
	StartedAt      int64           `json:"started_at"`
}

// NewGameSessionDTO hides the seed until the game is over, since it
// encodes every mine position.
func NewGameSessionDTO(s *session.Session) *GameSessionDTO {
	snap := s.Game.Snapshot()
	cells := make([][]CellDTO, len(snap.Rows))
	for i, row := range snap.Rows {
		cells[i] = make([]CellDTO, len(row))
		for j, c := range row {
			cells[i][j] = NewCellDTO(c)
		}
	}
	dto := &GameSessionDTO{
		GameSessionID:  strconv.FormatInt(s.ID, 10),
		SeedID:         s.SeedID,
		Size:           snap.Size,
		MineCount:      snap.TotalMines,
		MinesRemaining: snap.MinesRemaining,
		State:          snap.State,
		FlagMode:       snap.FlagMode,
		Cells:          cells,
		StartedAt:      s.StartedAt.UnixMilli(),
	}
	if snap.State.Over() {
		dto.Seed = snap.Seed.String()
	}
	return dto
}

type SeedDTO struct {
	SeedID    *int64 `json:"seed_id,omitempty"`
	Size      int    `json:"size"`
	MineCount int    `json:"mine_count"`
	Seed      string `json:"seed"`
	Code      string `json:"code"`
	CreatedAt *int64 `json:"created_at,omitempty"`
}

func NewSeedDTO(b *repository.BoardSeed) *SeedDTO {
	id, createdAt := b.SeedID, b.CreatedAt.UnixMilli()
	return &SeedDTO{
		SeedID:    &id,
		Size:      b.Size,
		MineCount: b.MineCount,
		Seed:      b.Seed().String(),
		Code:      b.Code,
		CreatedAt: &createdAt,
	}
}

func newUncataloguedSeedDTO(size int, s seed.Seed, code string) *SeedDTO {
	return &SeedDTO{
		Size:      size,
		MineCount: s.Mines(),
		Seed:      s.String(),
		Code:      code,
	}
}
