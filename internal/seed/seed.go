package seed

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
)

var Log *slog.Logger = slog.Default()

var (
	ErrInvalidParams = errors.New("invalid seed parameters")
	ErrMalformed     = errors.New("malformed seed")
)

// Seed holds the run lengths of safe cells preceding each mine, in row-major
// order, followed by one trailing run. A seed for n mines has n+1 entries.
type Seed []int

func (s Seed) Mines() int {
	return len(s) - 1
}

func (s Seed) Sum() (sum int) {
	for _, v := range s {
		sum += v
	}
	return
}

// Seed implements [fmt.Stringer]
func (s Seed) String() string {
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// Parse reads a comma separated list of integers as produced by
// [Seed.String].
func Parse(str string) (Seed, error) {
	str = strings.TrimSpace(str)
	if str == "" {
		return nil, fmt.Errorf("%w: empty", ErrMalformed)
	}
	parts := strings.Split(str, ",")
	s := make(Seed, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrMalformed, i, err)
		}
		s[i] = v
	}
	return s, nil
}

func Validate(boardSize, mines int) error {
	if boardSize <= 0 {
		return fmt.Errorf("%w: board size must be positive, got %d",
			ErrInvalidParams, boardSize)
	}
	if mines <= 0 || mines >= boardSize*boardSize {
		return fmt.Errorf("%w: mine count must be in (0, %d), got %d",
			ErrInvalidParams, boardSize*boardSize, mines)
	}
	return nil
}

// Generate distributes the boardSize² - mines safe cells over mines+1
// buckets. Every bucket starts near the mean with ±50% jitter, then single
// cells are moved in or out of random buckets until the sum is exact.
// Buckets never drop below zero.
func Generate(boardSize, mines int, r *rand.Rand) (Seed, error) {
	if err := Validate(boardSize, mines); err != nil {
		return nil, err
	}

	capacity := boardSize*boardSize - mines
	mean := float64(capacity) / float64(mines)

	s := make(Seed, mines+1)
	total := 0
	for i := range s {
		s[i] = int(math.Round(mean * (r.Float64() + 0.5)))
		total += s[i]
	}

	Log.Debug("seed before correction",
		slog.String("seed", s.String()), slog.Int("total", total),
		slog.Int("capacity", capacity))

	for diff := capacity - total; diff != 0; {
		i := r.IntN(len(s))
		if diff > 0 {
			s[i]++
			diff--
		} else if s[i] > 0 {
			s[i]--
			diff++
		}
	}

	Log.Debug("seed after correction", slog.String("seed", s.String()))

	return s, nil
}
