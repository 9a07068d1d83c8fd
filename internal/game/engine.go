// internal/game/engine.go
//
// Guess evaluation for a single Number Genie session.
// Responsibilities:
//   - Create and restart sessions (target roll, counter reset).
//   - Classify a guess into exactly one Category, in a fixed rule order.
//   - Maintain the hint, repeat counter and steam-sound countdown.
//   - Track the unrecognized-input (fallback) policy.
//
// Rule order in Evaluate is part of the contract:
//   duplicate → hint violation → boundary → distance → directional → correct.

package game

import (
	"errors"
	"fmt"

	"github.com/robalobadob/numbergenie/internal/rng"
)

const (
	coldDistance     = 75 // d > 75
	warmDistance     = 10 // 4 < d <= 10
	hotDistance      = 4  // d == 4
	veryHotDistance  = 3  // d == 3
	nearMissDistance = 2  // d <= 2 with a confirming hint

	steamSoundReset = 5
	manyTries       = 10
	maxDuplicates   = 2
)

// ErrInvalidSession reports a caller contract violation: the session is not
// in a state any rule can apply to.
var ErrInvalidSession = errors.New("invalid session")

// NewSession starts a game with bounds [min, max] and a random target.
func NewSession(min, max int, src rng.Source) (*Session, error) {
	if min >= max {
		return nil, fmt.Errorf("%w: min %d must be below max %d", ErrInvalidSession, min, max)
	}
	s := &Session{Min: min, Max: max}
	s.Restart(src)
	return s, nil
}

// Restart re-rolls the target and zeroes volatile counters.
// Min and Max are kept.
func (s *Session) Restart(src rng.Source) {
	s.Answer = src.IntRange(s.Min, s.Max)
	s.GuessCount = 0
	s.FallbackCount = 0
	s.DuplicateCount = 0
	s.SteamSoundCount = 0
	s.Hint = HintNone
	s.PreviousGuess = nil
	s.Daily = ""
	s.DailyStart = 0
}

// Fallback records an unrecognized input and reports whether the caller
// should reprompt (true) or end the conversation (false).
func (s *Session) Fallback() (reprompt bool) {
	s.FallbackCount++
	return s.FallbackCount <= 1
}

// InBounds reports whether v lies in [lo, hi].
func InBounds(v, lo, hi int) bool { return v >= lo && v <= hi }

func (s *Session) validate() error {
	if s.Min >= s.Max {
		return fmt.Errorf("%w: min %d must be below max %d", ErrInvalidSession, s.Min, s.Max)
	}
	if !InBounds(s.Answer, s.Min, s.Max) {
		return fmt.Errorf("%w: answer %d outside [%d, %d]", ErrInvalidSession, s.Answer, s.Min, s.Max)
	}
	if s.Hint != HintNone && s.PreviousGuess == nil {
		return fmt.Errorf("%w: hint %q without a previous guess", ErrInvalidSession, s.Hint)
	}
	return nil
}

// Evaluate classifies guess against the session and applies the resulting
// state changes to s. The first matching rule wins:
//
//  1. guess == previous guess        → DuplicateGuess
//  2. guess moves against the hint   → HintViolationHigher / HintViolationLower
//  3. guess is min or max (≠ answer) → MinBoundary / MaxBoundary
//  4. distance d = |guess - answer|:
//     d > 75 Cold, d == 4 Hot, d == 3 VeryHot, 4 < d <= 10 Warm,
//     otherwise TooLow / TooHigh, or Correct when d == 0.
func (s *Session) Evaluate(guess int) (Outcome, error) {
	if err := s.validate(); err != nil {
		return Outcome{}, err
	}
	out := Outcome{Guess: guess, Answer: s.Answer, Previous: copyInt(s.PreviousGuess)}
	s.FallbackCount = 0

	// 1. Same number twice in a row.
	if s.PreviousGuess != nil && *s.PreviousGuess == guess {
		s.DuplicateCount++
		out.Category = CategoryDuplicateGuess
		out.Hint = s.Hint
		if s.DuplicateCount >= maxDuplicates {
			out.EndGame = true
		} else {
			out.ExplainHint = s.Hint != HintNone
		}
		return out, nil
	}
	s.DuplicateCount = 0

	// 2. Player ignored the last hint. State is left untouched.
	if s.PreviousGuess != nil {
		prev := *s.PreviousGuess
		switch {
		case s.Hint == HintHigher && guess <= prev:
			out.Category, out.Hint = CategoryHintViolationHigher, s.Hint
			return out, nil
		case s.Hint == HintLower && guess >= prev:
			out.Category, out.Hint = CategoryHintViolationLower, s.Hint
			return out, nil
		}
	}

	// 3. Accepted.
	s.PreviousGuess = &guess
	if guess == s.Answer {
		out.Category = CategoryCorrect
		if s.GuessCount >= manyTries {
			out.Category = CategoryCorrectManyTries
		}
		out.Tries = s.GuessCount + 1
		s.Hint = HintNone
		s.PreviousGuess = nil
		s.GuessCount = 0
		out.Hint = HintNone
		return out, nil
	}
	s.GuessCount++

	switch guess {
	case s.Min:
		out.Category, out.Bound = CategoryMinBoundary, s.Min
		s.Hint = HintHigher
		out.Hint = s.Hint
		return out, nil
	case s.Max:
		out.Category, out.Bound = CategoryMaxBoundary, s.Max
		s.Hint = HintLower
		out.Hint = s.Hint
		return out, nil
	}

	// 4. Distance bands. 4 and 3 are exact matches, not ranges.
	d := abs(guess - s.Answer)
	dir := directionOf(s.Answer, guess)
	switch {
	case d > coldDistance:
		out.Category = CategoryCold
		s.Hint = dir
	case d == hotDistance:
		out.Category = CategoryHot
		s.Hint = HintNone
	case d == veryHotDistance:
		out.Category = CategoryVeryHot
		s.Hint = dir
		out.PlayCue = s.tickSteamSound()
	case d > hotDistance && d <= warmDistance:
		out.Category = CategoryWarm
		s.Hint = dir
	default:
		out.Category = CategoryTooHigh
		if dir == HintHigher {
			out.Category = CategoryTooLow
		}
		if s.Hint == dir && d <= nearMissDistance {
			out.NearMiss = true
			out.PlayCue = s.tickSteamSound()
		}
		s.Hint = dir
	}
	out.Hint = s.Hint
	return out, nil
}

// tickSteamSound advances the 5→0 countdown and reports whether the cue
// plays this turn. Reaching zero plays the cue and resets to 5.
func (s *Session) tickSteamSound() bool {
	n := s.SteamSoundCount - 1
	if n <= 0 {
		s.SteamSoundCount = steamSoundReset
		return true
	}
	s.SteamSoundCount = n
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
