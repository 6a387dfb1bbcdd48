package seed

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

var (
	ErrInvalidCode    = errors.New("invalid seed code")
	ErrNegativeBucket = errors.New("seed has a negative bucket")
)

/*
 * A seed with non-negative buckets is a composition of n safe cells into
 * k = mines+1 parts. Compositions map one-to-one onto the ways of placing
 * k-1 bars among n+k-1 slots (stars and bars), and those combinations are
 * ranked in lexicographic order. The rank is the seed's index; its base 36
 * form is the share code.
 */

const codeBase = 36

// Count returns how many distinct seeds exist for a board.
func Count(boardSize, mines int) (*big.Int, error) {
	if err := Validate(boardSize, mines); err != nil {
		return nil, err
	}
	n := boardSize*boardSize - mines
	return compositions(n, mines+1), nil
}

func compositions(n, k int) *big.Int {
	return new(big.Int).Binomial(int64(n+k-1), int64(k-1))
}

func binomial(n, k int) *big.Int {
	if k < 0 || n < k {
		return new(big.Int)
	}
	return new(big.Int).Binomial(int64(n), int64(k))
}

// stepDown turns c = C(n, k) into C(n-1, k).
func stepDown(c, scratch *big.Int, n, k int) {
	c.Mul(c, scratch.SetInt64(int64(n-k)))
	c.Quo(c, scratch.SetInt64(int64(n)))
}

// stepDiagonal turns c = C(n, k) into C(n-1, k-1).
func stepDiagonal(c, scratch *big.Int, n, k int) {
	c.Mul(c, scratch.SetInt64(int64(k)))
	c.Quo(c, scratch.SetInt64(int64(n)))
}

// Index ranks s among all seeds with the same length and sum. The running
// binomial is stepped one slot at a time rather than recomputed.
func (s Seed) Index() (*big.Int, error) {
	if len(s) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrMalformed)
	}
	for i, v := range s {
		if v < 0 {
			return nil, fmt.Errorf("%w: bucket %d is %d", ErrNegativeBucket, i, v)
		}
	}

	slots := s.Sum() + len(s) - 1
	bars := len(s) - 1

	index := new(big.Int)
	if bars == 0 {
		return index, nil
	}

	// c is C(slots-1-p, bars-1-i)
	c, scratch := binomial(slots-1, bars-1), new(big.Int)
	p, cumulative := 0, 0
	for i := range bars {
		k := bars - 1 - i
		cumulative += s[i]
		bar := cumulative + i
		for ; p < bar; p++ {
			index.Add(index, c)
			stepDown(c, scratch, slots-1-p, k)
		}
		if k > 0 {
			stepDiagonal(c, scratch, slots-1-bar, k)
		}
		p = bar + 1
	}
	return index, nil
}

// FromIndex is the inverse of [Seed.Index] for a board of the given
// dimensions.
func FromIndex(index *big.Int, boardSize, mines int) (Seed, error) {
	total, err := Count(boardSize, mines)
	if err != nil {
		return nil, err
	}
	if index.Sign() < 0 || index.Cmp(total) >= 0 {
		return nil, fmt.Errorf("%w: index out of range [0, %s)",
			ErrInvalidCode, total.String())
	}

	// n safe cells plus mines bars
	slots := boardSize * boardSize
	bars := mines

	rest := new(big.Int).Set(index)
	c, scratch := binomial(slots-1, bars-1), new(big.Int)
	s := make(Seed, mines+1)
	prev, pos := -1, 0
	for i := range bars {
		k := bars - 1 - i
		for c.Sign() > 0 && rest.Cmp(c) >= 0 {
			rest.Sub(rest, c)
			stepDown(c, scratch, slots-1-pos, k)
			pos++
		}
		s[i] = pos - prev - 1
		prev = pos
		if k > 0 {
			stepDiagonal(c, scratch, slots-1-pos, k)
		}
		pos++
	}
	s[mines] = slots - 1 - prev
	return s, nil
}

func (s Seed) Code() (string, error) {
	index, err := s.Index()
	if err != nil {
		return "", err
	}
	return index.Text(codeBase), nil
}

func FromCode(code string, boardSize, mines int) (Seed, error) {
	index, ok := new(big.Int).SetString(strings.ToLower(strings.TrimSpace(code)), codeBase)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a base %d number",
			ErrInvalidCode, code, codeBase)
	}
	return FromIndex(index, boardSize, mines)
}
