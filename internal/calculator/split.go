package calculator

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/shopspring/decimal"
)

// Shuffler picks which participants absorb the leftover cents.
// *rand.Rand from math/rand/v2 satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

// DefaultShuffler uses the process-wide random source.
var DefaultShuffler Shuffler = globalShuffler{}

var (
	ErrNoSplitParticipants = errors.New("must have at least one participant")
	ErrNegativeTotal       = errors.New("total cannot be negative")
	ErrTotalOutOfRange     = errors.New("total does not fit in integer cents")
)

// SplitCents divides totalCents among n participants as evenly as possible.
// Everyone gets floor(totalCents/n); the remaining cents go one each to
// participants chosen by r, so the same bill does not always overweight the
// same person. The returned shares always add up to totalCents.
func SplitCents(totalCents int64, n int, r Shuffler) ([]int64, error) {
	if n <= 0 {
		return nil, ErrNoSplitParticipants
	}
	if totalCents < 0 {
		return nil, ErrNegativeTotal
	}
	if r == nil {
		r = DefaultShuffler
	}

	base := totalCents / int64(n)
	remainder := totalCents - base*int64(n)

	shares := make([]int64, n)
	for i := range shares {
		shares[i] = base
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	r.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })

	for i := int64(0); i < remainder; i++ {
		shares[order[i]]++
	}
	return shares, nil
}

// SplitEqually splits a decimal total among n participants. The total is
// rounded to whole cents first and the work is done in integer cents.
func SplitEqually(total decimal.Decimal, n int, r Shuffler) ([]decimal.Decimal, error) {
	rounded := total.Shift(2).Round(0)
	if !rounded.BigInt().IsInt64() {
		return nil, fmt.Errorf("failed to split %s: %w", total.StringFixed(2), ErrTotalOutOfRange)
	}
	cents := rounded.IntPart()
	shares, err := SplitCents(cents, n, r)
	if err != nil {
		return nil, fmt.Errorf("failed to split %s: %w", total.StringFixed(2), err)
	}

	out := make([]decimal.Decimal, len(shares))
	for i, c := range shares {
		out[i] = decimal.New(c, -2)
	}
	return out, nil
}
