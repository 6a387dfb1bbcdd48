package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vancomm/every-minesweeper/internal/seed"
)

type BoardSeed struct {
	SeedID    int64     `db:"seed_id"`
	Size      int       `db:"size"`
	MineCount int       `db:"mine_count"`
	Buckets   []int64   `db:"buckets"`
	Code      string    `db:"code"`
	CreatedAt time.Time `db:"created_at"`
}

func (b BoardSeed) Seed() seed.Seed {
	s := make(seed.Seed, len(b.Buckets))
	for i, v := range b.Buckets {
		s[i] = int(v)
	}
	return s
}

type CreateBoardSeedParams struct {
	Size int
	Seed seed.Seed
	Code string
}

func (q *Queries) CreateBoardSeed(
	ctx context.Context, params CreateBoardSeedParams,
) (*BoardSeed, error) {
	buckets := make([]int64, len(params.Seed))
	for i, v := range params.Seed {
		buckets[i] = int64(v)
	}
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO board_seed (size, mine_count, buckets, code)
		VALUES (@size, @mine_count, @buckets, @code)
		RETURNING *;`,
		pgx.NamedArgs{
			"size":       params.Size,
			"mine_count": params.Seed.Mines(),
			"buckets":    buckets,
			"code":       params.Code,
		},
	)
	boardSeed, err := pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[BoardSeed],
	)
	return boardSeed, mapError(err)
}

func (q *Queries) FetchBoardSeed(ctx context.Context, seedID int64) (*BoardSeed, error) {
	rows, _ := q.db.Query(
		ctx, "SELECT * FROM board_seed WHERE seed_id = $1", seedID,
	)
	boardSeed, err := pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[BoardSeed],
	)
	return boardSeed, mapError(err)
}

func (q *Queries) FetchBoardSeedByCode(
	ctx context.Context, size, mineCount int, code string,
) (*BoardSeed, error) {
	rows, _ := q.db.Query(
		ctx,
		`SELECT * FROM board_seed
		WHERE size = @size AND mine_count = @mine_count AND code = @code`,
		pgx.NamedArgs{
			"size":       size,
			"mine_count": mineCount,
			"code":       code,
		},
	)
	boardSeed, err := pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[BoardSeed],
	)
	return boardSeed, mapError(err)
}
