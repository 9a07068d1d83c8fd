// internal/game/types.go
//
// Core type definitions for the number-guessing engine.
// Defines:
//   - Hint: the remembered direction the next guess must move in.
//   - Category: the mutually exclusive outcome of one guess.
//   - Session: per-conversation state that survives across turns.
//   - Outcome: a Category plus the sub-parameters the prompt layer needs.

package game

import (
	"encoding/json"
	"fmt"
)

// Hint is the direction the player was last told to move.
// HintHigher means the answer is higher than the previous guess.
type Hint int

const (
	HintNone Hint = iota
	HintHigher
	HintLower
)

func (h Hint) String() string {
	switch h {
	case HintHigher:
		return "higher"
	case HintLower:
		return "lower"
	default:
		return ""
	}
}

// MarshalText encodes the hint as "", "higher" or "lower".
func (h Hint) MarshalText() ([]byte, error) {
	if h < HintNone || h > HintLower {
		return nil, fmt.Errorf("game: invalid hint %d", int(h))
	}
	return []byte(h.String()), nil
}

func (h *Hint) UnmarshalText(b []byte) error {
	switch string(b) {
	case "":
		*h = HintNone
	case "higher":
		*h = HintHigher
	case "lower":
		*h = HintLower
	default:
		return fmt.Errorf("game: unknown hint %q", string(b))
	}
	return nil
}

// directionOf returns the hint a player needs after guessing guess.
func directionOf(answer, guess int) Hint {
	if answer > guess {
		return HintHigher
	}
	return HintLower
}

// Category is the classified result of a single guess.
// Exactly one applies per guess; see Evaluate for the selection order.
type Category int

const (
	CategoryDuplicateGuess Category = iota + 1
	CategoryHintViolationHigher
	CategoryHintViolationLower
	CategoryMinBoundary
	CategoryMaxBoundary
	CategoryCold
	CategoryHot
	CategoryVeryHot
	CategoryWarm
	CategoryTooLow  // answer > guess
	CategoryTooHigh // answer < guess
	CategoryCorrect
	CategoryCorrectManyTries
)

var categoryNames = map[Category]string{
	CategoryDuplicateGuess:      "duplicate_guess",
	CategoryHintViolationHigher: "hint_violation_higher",
	CategoryHintViolationLower:  "hint_violation_lower",
	CategoryMinBoundary:         "min_boundary",
	CategoryMaxBoundary:         "max_boundary",
	CategoryCold:                "cold",
	CategoryHot:                 "hot",
	CategoryVeryHot:             "very_hot",
	CategoryWarm:                "warm",
	CategoryTooLow:              "too_low",
	CategoryTooHigh:             "too_high",
	CategoryCorrect:             "correct",
	CategoryCorrectManyTries:    "correct_many_tries",
}

func (c Category) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Won reports whether the category ends the round with a win.
func (c Category) Won() bool {
	return c == CategoryCorrect || c == CategoryCorrectManyTries
}

// Session holds the state of one conversation's game.
// Min and Max are fixed at game start; Answer is re-rolled on restart.
type Session struct {
	Answer          int    `json:"answer"`
	Min             int    `json:"min"`
	Max             int    `json:"max"`
	GuessCount      int    `json:"guessCount"`
	FallbackCount   int    `json:"fallbackCount"`
	DuplicateCount  int    `json:"duplicateCount"`
	SteamSoundCount int    `json:"steamSoundCount"`
	Hint            Hint   `json:"hint"`
	PreviousGuess   *int   `json:"previousGuess,omitempty"`
	Daily           string `json:"daily,omitempty"`      // date key while the daily number is in play
	DailyStart      int64  `json:"dailyStart,omitempty"` // unix millis when the daily round began

	// LastResponse is the most recent prompt, kept opaque for "repeat".
	LastResponse json.RawMessage `json:"lastResponse,omitempty"`
}

// Outcome is the result of evaluating one guess.
type Outcome struct {
	Category Category
	Guess    int
	Answer   int

	// Previous is the guess the player was told to move away from
	// (hint violations) or the previous accepted guess otherwise.
	Previous *int
	// Bound is the boundary value hit for Min/MaxBoundary.
	Bound int
	// Hint is the session hint after evaluation (before it for duplicates).
	Hint Hint

	ExplainHint bool // DuplicateGuess: first repeat while a hint is set
	EndGame     bool // DuplicateGuess: second consecutive repeat
	PlayCue     bool // VeryHot / near-miss: play the special audio cue
	NearMiss    bool // TooLow / TooHigh: hot-direction variant
	Tries       int  // Correct / CorrectManyTries: guesses used this round
}
