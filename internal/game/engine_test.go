package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/numbergenie/internal/rng"
)

func intp(v int) *int { return &v }

func session(answer int) *Session {
	return &Session{Answer: answer, Min: 1, Max: 100}
}

func TestNewSessionRollsWithinBounds(t *testing.T) {
	src := rng.NewSeeded(3)
	for i := 0; i < 200; i++ {
		s, err := NewSession(1, 100, src)
		require.NoError(t, err)
		assert.True(t, InBounds(s.Answer, 1, 100))
		assert.Zero(t, s.GuessCount)
		assert.Nil(t, s.PreviousGuess)
	}

	_, err := NewSession(10, 10, src)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestRestartKeepsBounds(t *testing.T) {
	s := &Session{Answer: 5, Min: 1, Max: 10, GuessCount: 7, FallbackCount: 1,
		DuplicateCount: 1, SteamSoundCount: 3, Hint: HintLower, PreviousGuess: intp(8), Daily: "2024-01-01"}
	s.Restart(rng.NewSeeded(9))

	assert.Equal(t, 1, s.Min)
	assert.Equal(t, 10, s.Max)
	assert.True(t, InBounds(s.Answer, 1, 10))
	assert.Zero(t, s.GuessCount)
	assert.Zero(t, s.FallbackCount)
	assert.Zero(t, s.DuplicateCount)
	assert.Zero(t, s.SteamSoundCount)
	assert.Equal(t, HintNone, s.Hint)
	assert.Nil(t, s.PreviousGuess)
	assert.Empty(t, s.Daily)
}

func TestCorrectGuess(t *testing.T) {
	cases := []struct {
		name       string
		guessCount int
		want       Category
	}{
		{"first try", 0, CategoryCorrect},
		{"nine before", 9, CategoryCorrect},
		{"ten before", 10, CategoryCorrectManyTries},
		{"many", 25, CategoryCorrectManyTries},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := session(42)
			s.GuessCount = tc.guessCount
			s.Hint = HintHigher
			s.PreviousGuess = intp(30)

			out, err := s.Evaluate(42)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out.Category)
			assert.Equal(t, tc.guessCount+1, out.Tries)
			assert.Equal(t, HintNone, s.Hint)
			assert.Nil(t, s.PreviousGuess)
			assert.Zero(t, s.GuessCount)
		})
	}
}

func TestCorrectAtBoundaryIsNotBoundary(t *testing.T) {
	s := session(1)
	out, err := s.Evaluate(1)
	require.NoError(t, err)
	assert.Equal(t, CategoryCorrect, out.Category)

	s = session(100)
	out, err = s.Evaluate(100)
	require.NoError(t, err)
	assert.Equal(t, CategoryCorrect, out.Category)
}

func TestDuplicateGuess(t *testing.T) {
	s := session(50)
	out, err := s.Evaluate(20)
	require.NoError(t, err)
	require.Equal(t, CategoryTooLow, out.Category)
	count := s.GuessCount

	out, err = s.Evaluate(20)
	require.NoError(t, err)
	assert.Equal(t, CategoryDuplicateGuess, out.Category)
	assert.True(t, out.ExplainHint)
	assert.False(t, out.EndGame)
	assert.Equal(t, HintHigher, out.Hint)
	assert.Equal(t, count, s.GuessCount)

	out, err = s.Evaluate(20)
	require.NoError(t, err)
	assert.Equal(t, CategoryDuplicateGuess, out.Category)
	assert.True(t, out.EndGame)
	assert.Equal(t, 2, s.DuplicateCount)
}

func TestDuplicateWithoutHintIsPlain(t *testing.T) {
	s := session(50)
	_, err := s.Evaluate(54) // Hot clears the hint
	require.NoError(t, err)

	out, err := s.Evaluate(54)
	require.NoError(t, err)
	assert.Equal(t, CategoryDuplicateGuess, out.Category)
	assert.False(t, out.ExplainHint)
	assert.False(t, out.EndGame)
}

func TestDuplicateCountResetsOnNewGuess(t *testing.T) {
	s := session(50)
	_, _ = s.Evaluate(20)
	_, _ = s.Evaluate(20)
	require.Equal(t, 1, s.DuplicateCount)

	_, err := s.Evaluate(30)
	require.NoError(t, err)
	assert.Zero(t, s.DuplicateCount)
}

func TestFallbackCountResetOnAnyGuess(t *testing.T) {
	s := session(50)
	s.FallbackCount = 1
	_, _ = s.Evaluate(20)
	assert.Zero(t, s.FallbackCount)

	s.FallbackCount = 1
	_, _ = s.Evaluate(20) // duplicate
	assert.Zero(t, s.FallbackCount)

	s.FallbackCount = 1
	_, _ = s.Evaluate(10) // hint violation
	assert.Zero(t, s.FallbackCount)
}

func TestHintViolation(t *testing.T) {
	t.Run("higher", func(t *testing.T) {
		s := session(50)
		s.Hint = HintHigher
		s.PreviousGuess = intp(40)
		s.GuessCount = 3

		out, err := s.Evaluate(35)
		require.NoError(t, err)
		assert.Equal(t, CategoryHintViolationHigher, out.Category)
		assert.Equal(t, 40, *s.PreviousGuess)
		assert.Equal(t, 40, *out.Previous)
		assert.Equal(t, 3, s.GuessCount)
		assert.Equal(t, HintHigher, s.Hint)
	})
	t.Run("lower", func(t *testing.T) {
		s := session(50)
		s.Hint = HintLower
		s.PreviousGuess = intp(60)

		out, err := s.Evaluate(61)
		require.NoError(t, err)
		assert.Equal(t, CategoryHintViolationLower, out.Category)
		assert.Equal(t, 60, *s.PreviousGuess)
	})
	t.Run("following the hint is accepted", func(t *testing.T) {
		s := session(50)
		s.Hint = HintHigher
		s.PreviousGuess = intp(40)

		out, err := s.Evaluate(41)
		require.NoError(t, err)
		assert.Equal(t, CategoryWarm, out.Category)
		assert.Equal(t, 41, *s.PreviousGuess)
	})
}

func TestBoundaries(t *testing.T) {
	s := session(50)
	out, err := s.Evaluate(1)
	require.NoError(t, err)
	assert.Equal(t, CategoryMinBoundary, out.Category)
	assert.Equal(t, 1, out.Bound)
	assert.Equal(t, HintHigher, s.Hint)
	assert.Equal(t, 1, s.GuessCount)

	s = session(50)
	out, err = s.Evaluate(100)
	require.NoError(t, err)
	assert.Equal(t, CategoryMaxBoundary, out.Category)
	assert.Equal(t, 100, out.Bound)
	assert.Equal(t, HintLower, s.Hint)
}

func TestDistanceThresholds(t *testing.T) {
	cases := []struct {
		guess int
		want  Category
		hint  Hint
	}{
		{125, CategoryTooHigh, HintLower}, // d=75 is not cold
		{126, CategoryCold, HintLower},    // d=76
		{54, CategoryHot, HintNone},       // d=4
		{53, CategoryVeryHot, HintLower},  // d=3
		{47, CategoryVeryHot, HintHigher}, // d=3
		{45, CategoryWarm, HintHigher},    // d=5
		{60, CategoryWarm, HintLower},     // d=10
		{61, CategoryTooHigh, HintLower},  // d=11
		{49, CategoryTooLow, HintHigher},  // d=1, no prior hint
		{52, CategoryTooHigh, HintLower},  // d=2, no prior hint
		{30, CategoryTooLow, HintHigher},  // d=20
	}
	for _, tc := range cases {
		s := &Session{Answer: 50, Min: 1, Max: 200}
		out, err := s.Evaluate(tc.guess)
		require.NoError(t, err)
		assert.Equal(t, tc.want, out.Category, "guess %d", tc.guess)
		assert.Equal(t, tc.hint, s.Hint, "guess %d", tc.guess)
		assert.False(t, out.NearMiss, "guess %d", tc.guess)
		assert.Equal(t, 1, s.GuessCount)
	}
}

func TestColdLow(t *testing.T) {
	s := &Session{Answer: 150, Min: 1, Max: 200}
	out, err := s.Evaluate(20)
	require.NoError(t, err)
	assert.Equal(t, CategoryCold, out.Category)
	assert.Equal(t, HintHigher, s.Hint)
}

func TestNearMiss(t *testing.T) {
	t.Run("confirming hint", func(t *testing.T) {
		s := session(50)
		s.Hint = HintHigher
		s.PreviousGuess = intp(40)

		out, err := s.Evaluate(48)
		require.NoError(t, err)
		assert.Equal(t, CategoryTooLow, out.Category)
		assert.True(t, out.NearMiss)
		assert.True(t, out.PlayCue)
		assert.Equal(t, HintHigher, s.Hint)
		assert.Equal(t, steamSoundReset, s.SteamSoundCount)
	})
	t.Run("from above", func(t *testing.T) {
		s := session(50)
		s.Hint = HintLower
		s.PreviousGuess = intp(70)

		out, err := s.Evaluate(51)
		require.NoError(t, err)
		assert.Equal(t, CategoryTooHigh, out.Category)
		assert.True(t, out.NearMiss)
	})
	t.Run("no prior hint", func(t *testing.T) {
		s := session(50)
		out, err := s.Evaluate(48)
		require.NoError(t, err)
		assert.Equal(t, CategoryTooLow, out.Category)
		assert.False(t, out.NearMiss)
		assert.False(t, out.PlayCue)
		assert.Zero(t, s.SteamSoundCount)
	})
	t.Run("distance too large", func(t *testing.T) {
		s := session(50)
		s.Hint = HintHigher
		s.PreviousGuess = intp(10)

		out, err := s.Evaluate(30)
		require.NoError(t, err)
		assert.False(t, out.NearMiss)
	})
}

func TestSteamSoundCadence(t *testing.T) {
	s := session(50)
	var cues []bool
	for i := 0; i < 7; i++ {
		s.Hint = HintNone
		s.PreviousGuess = nil
		out, err := s.Evaluate(47)
		require.NoError(t, err)
		require.Equal(t, CategoryVeryHot, out.Category)
		cues = append(cues, out.PlayCue)
	}
	assert.Equal(t, []bool{true, false, false, false, false, true, false}, cues)
}

func TestSteamSoundSharedWithNearMiss(t *testing.T) {
	s := session(50)
	out, err := s.Evaluate(47) // VeryHot, cue, counter 5
	require.NoError(t, err)
	require.True(t, out.PlayCue)

	out, err = s.Evaluate(49) // near miss in the same direction
	require.NoError(t, err)
	assert.True(t, out.NearMiss)
	assert.False(t, out.PlayCue)
	assert.Equal(t, 4, s.SteamSoundCount)
}

func TestInvalidSession(t *testing.T) {
	cases := map[string]*Session{
		"zero value":       {},
		"answer too big":   {Answer: 101, Min: 1, Max: 100},
		"hint without one": {Answer: 5, Min: 1, Max: 100, Hint: HintHigher},
	}
	for name, s := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.Evaluate(3)
			assert.ErrorIs(t, err, ErrInvalidSession)
		})
	}
}

func TestFallbackPolicy(t *testing.T) {
	s := session(50)
	assert.True(t, s.Fallback())
	assert.False(t, s.Fallback())
	assert.Equal(t, 2, s.FallbackCount)
}

func TestSessionJSON(t *testing.T) {
	s := session(50)
	s.Hint = HintLower
	s.PreviousGuess = intp(70)
	s.LastResponse = json.RawMessage(`{"x":1}`)

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"hint":"lower"`)

	var back Session
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, *s, back)

	var bad Hint
	assert.Error(t, bad.UnmarshalText([]byte("sideways")))
}
