package app

import (
	"hash/maphash"
	"math/rand/v2"

	"github.com/vancomm/every-minesweeper/internal/handlers"
	"github.com/vancomm/every-minesweeper/internal/repository"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	var (
		repo   handlers.SeedRepository
		pinger handlers.Pinger
	)
	if a.db != nil {
		repo = repository.New(a.db)
		pinger = a.db
	}
	seeds := handlers.NewSeedSource(createRand())

	health := handlers.NewHealthHandler(a.logger, pinger)
	a.router.HandleFunc("GET /ping", health.Ping)
	a.router.HandleFunc("GET /health/db", health.Database)

	game := handlers.NewGameHandler(a.logger, a.store, repo, a.ws, a.board, seeds)
	a.router.HandleFunc("POST /game", game.NewGame)
	a.router.HandleFunc("GET /game/{id}", game.Fetch)
	a.router.HandleFunc("DELETE /game/{id}", game.Abandon)
	a.router.HandleFunc("POST /game/{id}/move", game.Move)
	a.router.HandleFunc("POST /game/{id}/flagmode", game.FlagMode)
	a.router.HandleFunc("POST /game/{id}/reset", game.Reset)
	a.router.HandleFunc("GET /game/{id}/connect", game.ConnectWS)

	seed := handlers.NewSeedHandler(a.logger, repo, a.board, seeds)
	a.router.HandleFunc("POST /seed", seed.Create)
	a.router.HandleFunc("GET /seed/{id}", seed.Fetch)
	a.router.HandleFunc("GET /seed/code/{code}", seed.DecodeCode)
}
