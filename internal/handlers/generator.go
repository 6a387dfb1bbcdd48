package handlers

import (
	"math/rand/v2"
	"sync"

	"github.com/vancomm/every-minesweeper/internal/seed"
)

// SeedSource shares one random source between handlers. *rand.Rand is not
// safe for concurrent use.
type SeedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewSeedSource(rnd *rand.Rand) *SeedSource {
	return &SeedSource{rnd: rnd}
}

func (s *SeedSource) Generate(boardSize, mines int) (seed.Seed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return seed.Generate(boardSize, mines, s.rnd)
}
