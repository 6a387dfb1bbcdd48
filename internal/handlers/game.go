package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vancomm/every-minesweeper/internal/config"
	"github.com/vancomm/every-minesweeper/internal/middleware"
	"github.com/vancomm/every-minesweeper/internal/mines"
	"github.com/vancomm/every-minesweeper/internal/repository"
	"github.com/vancomm/every-minesweeper/internal/seed"
	"github.com/vancomm/every-minesweeper/internal/session"
)

const MaxBoardSize = 128

type SeedRepository interface {
	CreateBoardSeed(ctx context.Context, params repository.CreateBoardSeedParams) (*repository.BoardSeed, error)
	FetchBoardSeed(ctx context.Context, seedID int64) (*repository.BoardSeed, error)
	FetchBoardSeedByCode(ctx context.Context, size, mineCount int, code string) (*repository.BoardSeed, error)
}

type GameHandler struct {
	logger *slog.Logger
	store  *session.Store
	repo   SeedRepository
	ws     *config.WebSocket
	board  config.Board
	seeds  *SeedSource
}

// NewGameHandler accepts a nil repo, in which case games can only be
// started from generated, explicit or coded seeds.
func NewGameHandler(
	logger *slog.Logger,
	store *session.Store,
	repo SeedRepository,
	ws *config.WebSocket,
	board config.Board,
	seeds *SeedSource,
) *GameHandler {
	return &GameHandler{
		logger: logger,
		store:  store,
		repo:   repo,
		ws:     ws,
		board:  board,
		seeds:  seeds,
	}
}

func checkBoardSize(size int) error {
	if size > MaxBoardSize {
		return badRequest(fmt.Errorf("board size must not exceed %d", MaxBoardSize))
	}
	return nil
}

func fetchSeed(ctx context.Context, repo SeedRepository, seedID int64) (*repository.BoardSeed, error) {
	if repo == nil {
		return nil, unavailable(errNoDatabase)
	}
	boardSeed, err := repo.FetchBoardSeed(ctx, seedID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound(fmt.Errorf("seed %d not found", seedID))
	}
	if err != nil {
		return nil, fmt.Errorf("unable to fetch seed: %w", err)
	}
	return boardSeed, nil
}

func (g *GameHandler) resolveSeed(
	ctx context.Context, dto NewGameDTO,
) (size int, s seed.Seed, seedID *int64, err error) {
	size, mineCount := dto.Size, dto.Mines
	if size == 0 {
		size = g.board.Size
	}
	if mineCount == 0 && dto.Seed == "" {
		mineCount = g.board.Mines
	}
	if err := checkBoardSize(size); err != nil {
		return 0, nil, nil, err
	}

	switch {
	case dto.SeedID != 0:
		boardSeed, err := fetchSeed(ctx, g.repo, dto.SeedID)
		if err != nil {
			return 0, nil, nil, err
		}
		id := boardSeed.SeedID
		return boardSeed.Size, boardSeed.Seed(), &id, nil

	case dto.Code != "":
		s, err = seed.FromCode(dto.Code, size, mineCount)
		if err != nil {
			return 0, nil, nil, badRequest(err)
		}
		return size, s, nil, nil

	case dto.Seed != "":
		s, err = seed.Parse(dto.Seed)
		if err != nil {
			return 0, nil, nil, badRequest(err)
		}
		if mineCount != 0 && mineCount != s.Mines() {
			return 0, nil, nil, badRequest(fmt.Errorf(
				"seed holds %d mines, expected %d", s.Mines(), mineCount,
			))
		}
		return size, s, nil, nil
	}

	s, err = g.seeds.Generate(size, mineCount)
	if err != nil {
		return 0, nil, nil, badRequest(err)
	}
	return size, s, nil, nil
}

func (g *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClientClaims(r.Context())
	if !ok {
		SendErrorOrLog(w, g.logger, http.StatusUnauthorized, errNoClient)
		return
	}

	dto, err := decodeQuery[NewGameDTO](r.URL.Query())
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	size, s, seedID, err := g.resolveSeed(r.Context(), dto)
	if err != nil {
		fail(w, g.logger, "unable to resolve seed", err)
		return
	}

	game, err := mines.NewGame(size, s)
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	sess := g.store.Create(claims.ClientID, game, seedID)
	g.logger.Debug(
		"created game session",
		slog.Int64("gameSessionId", sess.ID),
		slog.Int("size", size),
		slog.Int("mines", s.Mines()),
	)

	SendJSONOrLog(w, g.logger, http.StatusOK, NewGameSessionDTO(sess))
}

// ownedSession resolves the {id} path value to a session created by the
// requesting client.
func (g *GameHandler) ownedSession(r *http.Request) (*session.Session, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return nil, badRequest(fmt.Errorf("invalid game session id"))
	}
	sess, err := g.store.Get(id)
	if errors.Is(err, session.ErrNotFound) {
		return nil, notFound(err)
	}
	if err != nil {
		return nil, err
	}
	claims, ok := middleware.ClientClaims(r.Context())
	if !ok {
		return nil, unauthorized(errNoClient)
	}
	if claims.ClientID != sess.OwnerID {
		return nil, unauthorized(errNotOwner)
	}
	return sess, nil
}

func (g *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	sess, err := g.ownedSession(r)
	if err != nil {
		fail(w, g.logger, "unable to fetch game session", err)
		return
	}
	SendJSONOrLog(w, g.logger, http.StatusOK, NewGameSessionDTO(sess))
}

func (g *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	dto, err := decodeQuery[MoveDTO](r.URL.Query())
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}
	move, err := ParseMove(dto.Move)
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	sess, err := g.ownedSession(r)
	if err != nil {
		fail(w, g.logger, "unable to fetch game session", err)
		return
	}

	game := sess.Game
	if !game.InBounds(dto.Row, dto.Col) {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, fmt.Errorf("invalid cell position"))
		return
	}

	before := game.State()
	switch move {
	case MoveReveal:
		game.Reveal(dto.Row, dto.Col)
	case MoveFlag:
		game.ToggleFlag(dto.Row, dto.Col)
	case MoveClick:
		game.Click(dto.Row, dto.Col)
	}
	if after := game.State(); after != before && after.Over() {
		g.logger.Info(
			"game over",
			slog.Int64("gameSessionId", sess.ID),
			slog.String("state", after.String()),
		)
	}

	SendJSONOrLog(w, g.logger, http.StatusOK, NewGameSessionDTO(sess))
}

func (g *GameHandler) FlagMode(w http.ResponseWriter, r *http.Request) {
	sess, err := g.ownedSession(r)
	if err != nil {
		fail(w, g.logger, "unable to fetch game session", err)
		return
	}
	sess.Game.ToggleFlagMode()
	SendJSONOrLog(w, g.logger, http.StatusOK, NewGameSessionDTO(sess))
}

func (g *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sess, err := g.ownedSession(r)
	if err != nil {
		fail(w, g.logger, "unable to fetch game session", err)
		return
	}
	sess.Game.Reset()
	SendJSONOrLog(w, g.logger, http.StatusOK, NewGameSessionDTO(sess))
}

// Abandon drops the game from the store. Later requests for it get 404.
func (g *GameHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	sess, err := g.ownedSession(r)
	if err != nil {
		fail(w, g.logger, "unable to fetch game session", err)
		return
	}
	g.store.Delete(sess.ID)
	g.logger.Debug("abandoned game session", slog.Int64("gameSessionId", sess.ID))
	w.WriteHeader(http.StatusNoContent)
}
