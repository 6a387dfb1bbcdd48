package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vancomm/every-minesweeper/internal/config"
	"github.com/vancomm/every-minesweeper/internal/repository"
	"github.com/vancomm/every-minesweeper/internal/seed"
)

type SeedHandler struct {
	logger *slog.Logger
	repo   SeedRepository
	board  config.Board
	seeds  *SeedSource
}

func NewSeedHandler(
	logger *slog.Logger,
	repo SeedRepository,
	board config.Board,
	seeds *SeedSource,
) *SeedHandler {
	return &SeedHandler{
		logger: logger,
		repo:   repo,
		board:  board,
		seeds:  seeds,
	}
}

func (h *SeedHandler) params(dto BoardParamsDTO) (size, mineCount int, err error) {
	size, mineCount = dto.Size, dto.Mines
	if size == 0 {
		size = h.board.Size
	}
	if mineCount == 0 {
		mineCount = h.board.Mines
	}
	if err := checkBoardSize(size); err != nil {
		return 0, 0, err
	}
	if err := seed.Validate(size, mineCount); err != nil {
		return 0, 0, badRequest(err)
	}
	return size, mineCount, nil
}

// Create generates a seed and stores it in the catalog under its share
// code.
func (h *SeedHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		SendErrorOrLog(w, h.logger, http.StatusServiceUnavailable, errNoDatabase)
		return
	}

	dto, err := decodeQuery[BoardParamsDTO](r.URL.Query())
	if err != nil {
		SendErrorOrLog(w, h.logger, http.StatusBadRequest, err)
		return
	}
	size, mineCount, err := h.params(dto)
	if err != nil {
		fail(w, h.logger, "invalid seed parameters", err)
		return
	}

	s, err := h.seeds.Generate(size, mineCount)
	if err != nil {
		SendErrorOrLog(w, h.logger, http.StatusBadRequest, err)
		return
	}
	code, err := s.Code()
	if err != nil {
		internalError(w, h.logger, "unable to encode generated seed", err)
		return
	}

	boardSeed, err := h.repo.CreateBoardSeed(r.Context(), repository.CreateBoardSeedParams{
		Size: size,
		Seed: s,
		Code: code,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		SendErrorOrLog(w, h.logger, http.StatusConflict, fmt.Errorf("seed %s is already catalogued", code))
		return
	}
	if err != nil {
		internalError(w, h.logger, "unable to store seed", err)
		return
	}

	h.logger.Debug("stored seed", slog.Int64("seedId", boardSeed.SeedID), slog.String("code", code))
	SendJSONOrLog(w, h.logger, http.StatusCreated, NewSeedDTO(boardSeed))
}

func (h *SeedHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	seedID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		SendErrorOrLog(w, h.logger, http.StatusBadRequest, fmt.Errorf("invalid seed id"))
		return
	}
	boardSeed, err := fetchSeed(r.Context(), h.repo, seedID)
	if err != nil {
		fail(w, h.logger, "unable to fetch seed", err)
		return
	}
	SendJSONOrLog(w, h.logger, http.StatusOK, NewSeedDTO(boardSeed))
}

// DecodeCode works without a database. When one is present and the code is
// catalogued, the catalog entry is returned instead.
func (h *SeedHandler) DecodeCode(w http.ResponseWriter, r *http.Request) {
	dto, err := decodeQuery[BoardParamsDTO](r.URL.Query())
	if err != nil {
		SendErrorOrLog(w, h.logger, http.StatusBadRequest, err)
		return
	}
	size, mineCount, err := h.params(dto)
	if err != nil {
		fail(w, h.logger, "invalid seed parameters", err)
		return
	}

	s, err := seed.FromCode(r.PathValue("code"), size, mineCount)
	if err != nil {
		SendErrorOrLog(w, h.logger, http.StatusBadRequest, err)
		return
	}
	// normalized form of the code, without padding or upper case
	code, err := s.Code()
	if err != nil {
		internalError(w, h.logger, "unable to encode decoded seed", err)
		return
	}

	if h.repo != nil {
		boardSeed, err := h.repo.FetchBoardSeedByCode(r.Context(), size, mineCount, code)
		switch {
		case err == nil:
			SendJSONOrLog(w, h.logger, http.StatusOK, NewSeedDTO(boardSeed))
			return
		case !errors.Is(err, repository.ErrNotFound):
			h.logger.Warn("unable to look up seed code", slog.Any("error", err))
		}
	}

	SendJSONOrLog(w, h.logger, http.StatusOK, newUncataloguedSeedDTO(size, s, code))
}
