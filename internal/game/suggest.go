package game

import (
	"fmt"
	"strconv"

	"github.com/robalobadob/numbergenie/internal/rng"
)

// Suggestions returns up to count distinct numbers, as strings, that the
// player could try next. The range is narrowed by the hint: above prev when
// the answer is higher, below prev when it is lower. It never leaves
// [min, max], whatever prev is. An empty range yields an empty slice.
func Suggestions(min, max int, hint Hint, prev *int, count int, src rng.Source) ([]string, error) {
	if hint != HintNone && prev == nil {
		return nil, fmt.Errorf("%w: hint %q without a previous guess", ErrInvalidSession, hint)
	}
	lo, hi := min, max
	switch hint {
	case HintHigher:
		if *prev >= hi {
			return []string{}, nil
		}
		lo = maxInt(lo, *prev+1)
	case HintLower:
		if *prev <= lo {
			return []string{}, nil
		}
		hi = minInt(hi, *prev-1)
	}
	if count <= 0 || lo > hi {
		return []string{}, nil
	}

	all := make([]string, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		all = append(all, strconv.Itoa(v))
	}
	src.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	if len(all) > count {
		all = all[:count]
	}
	return all, nil
}

// Suggestions returns next-turn chips for the session's current state.
func (s *Session) Suggestions(count int, src rng.Source) ([]string, error) {
	return Suggestions(s.Min, s.Max, s.Hint, s.PreviousGuess, count, src)
}

// min and max are parameter names above, so the builtins are shadowed.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
