package main

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/every-minesweeper/internal/config"
	"github.com/vancomm/every-minesweeper/internal/mines"
	"github.com/vancomm/every-minesweeper/internal/seed"
)

func TestResolve(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))
	corners := seed.Seed{0, 7, 0}
	code, err := corners.Code()
	require.NoError(t, err)

	tests := []struct {
		name    string
		params  gameParams
		want    seed.Seed
		wantErr bool
	}{
		{"explicit", gameParams{Size: 3, Seed: "0,7,0"}, corners, false},
		{"explicit with matching mines", gameParams{Size: 3, Mines: 2, Seed: "0,7,0"}, corners, false},
		{"explicit mismatch", gameParams{Size: 3, Mines: 3, Seed: "0,7,0"}, nil, true},
		{"malformed", gameParams{Size: 3, Seed: "x"}, nil, true},
		{"code", gameParams{Size: 3, Mines: 2, Code: code}, corners, false},
		{"bad code", gameParams{Size: 3, Mines: 2, Code: "?"}, nil, true},
		{"too many mines", gameParams{Size: 3, Mines: 9}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size, s, err := tt.params.resolve(rnd)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.params.Size, size)
			assert.Equal(t, tt.want, s)
		})
	}

	size, s, err := gameParams{Size: 9, Mines: 10}.resolve(rnd)
	require.NoError(t, err)
	assert.Equal(t, 9, size)
	assert.Equal(t, 71, s.Sum())
}

func TestApplyDefaults(t *testing.T) {
	d := config.Board{Size: 9, Mines: 10}

	p := gameParams{}
	p.applyDefaults(d)
	assert.Equal(t, gameParams{Size: 9, Mines: 10}, p)

	p = gameParams{Seed: "0,7,0"}
	p.applyDefaults(d)
	assert.Equal(t, 0, p.Mines)
}

func TestPlay(t *testing.T) {
	game, err := mines.NewGame(3, seed.Seed{0, 7, 0})
	require.NoError(t, err)

	in := strings.NewReader("f 0 0\n\nbogus\no 1 1\no 2 2\nq\no 0 1\n")
	var out strings.Builder
	require.NoError(t, play(in, &out, game))

	text := out.String()
	assert.Contains(t, text, "mines: 2  mode: reveal  state: play\n- - -\n- - -\n- - -\n")
	assert.Contains(t, text, "mines: 1  mode: reveal  state: play\nF - -\n")
	assert.Contains(t, text, "error: unknown command")
	assert.Contains(t, text, "F - -\n- 2 -\n- - -\n")
	assert.Contains(t, text, "state: loss")
	assert.Contains(t, text, "seed: 0,7,0\ncode: ")

	// input after q is never read
	assert.Equal(t, mines.Loss, game.State())
	assert.Equal(t, mines.Hidden, game.Snapshot().Rows[0][1].State)
}

func TestPlayHelpAndEOF(t *testing.T) {
	game, err := mines.NewGame(3, seed.Seed{0, 7, 0})
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, play(strings.NewReader("h\n"), &out, game))
	assert.Contains(t, out.String(), "o ROW COL  reveal a cell")
}
