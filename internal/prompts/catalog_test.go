package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/numbergenie/internal/game"
	"github.com/robalobadob/numbergenie/internal/l10n"
	"github.com/robalobadob/numbergenie/internal/media"
	"github.com/robalobadob/numbergenie/internal/rng"
)

func realCatalog(t *testing.T) *Catalog {
	t.Helper()
	strs, err := l10n.Load("", "en-US")
	require.NoError(t, err)
	res, err := media.New("https://genie.example.com")
	require.NoError(t, err)
	return NewCatalog(strs, res)
}

func fullArgs() Args {
	prev := 40
	return Args{Locale: "en-US", Guess: 45, Answer: 50, Min: 1, Max: 100, Bound: 1,
		Previous: &prev, Hint: game.HintHigher, PlayCue: true}
}

func TestEveryKindResolvesAndBuilds(t *testing.T) {
	c := realCatalog(t)
	a := NewAssembler(rng.NewSeeded(1))
	for _, k := range Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			spec, err := c.Resolve(k, fullArgs())
			require.NoError(t, err)
			assert.Equal(t, k, spec.Kind)

			p, err := a.Build(spec.Blocks, nil, spec.Card)
			require.NoError(t, err)
			assert.NotEmpty(t, p.DisplayText())
			assert.NotContains(t, p.DisplayText(), "%!")
		})
	}
	assert.Len(t, Kinds(), len(templates))
}

func TestResolveBindsArguments(t *testing.T) {
	c := realCatalog(t)
	a := NewAssembler(rng.NewSeeded(1))

	spec, err := c.Resolve(KindStart, Args{Locale: "en-US", Min: 1, Max: 100})
	require.NoError(t, err)
	p, err := a.Build(spec.Blocks, nil, spec.Card)
	require.NoError(t, err)
	assert.Contains(t, p.DisplayText(), "from 1 to 100")
	card, ok := p.Card()
	require.True(t, ok)
	assert.Equal(t, "https://genie.example.com/images/INTRO.gif", card.URL)
	assert.Equal(t, ChipsNumbers, spec.Chips)

	spec, err = c.Resolve(KindSameGuessHint, Args{Locale: "en-US", Guess: 30, Hint: game.HintLower})
	require.NoError(t, err)
	p, err = a.Build(spec.Blocks, nil, spec.Card)
	require.NoError(t, err)
	assert.Contains(t, p.DisplayText(), "30")
	assert.Contains(t, p.DisplayText(), "lower")

	spec, err = c.Resolve(KindSameGuessEnd, Args{Locale: "en-US", Guess: 30, Answer: 77})
	require.NoError(t, err)
	p, err = a.Build(spec.Blocks, nil, spec.Card)
	require.NoError(t, err)
	assert.Contains(t, p.DisplayText(), "77")
	assert.Equal(t, ChipsNone, spec.Chips)
}

func TestResolveCueOnlyWhenFlagged(t *testing.T) {
	c := realCatalog(t)
	a := NewAssembler(rng.NewSeeded(1))
	for _, k := range []Kind{KindVeryHotHigher, KindVeryHotLower, KindHotHigher, KindHotLower} {
		args := fullArgs()

		args.PlayCue = true
		spec, err := c.Resolve(k, args)
		require.NoError(t, err)
		p, err := a.Build(spec.Blocks, nil, nil)
		require.NoError(t, err)
		assert.Contains(t, p.SpeechText(), "<audio src=", k.String())
		assert.NotContains(t, p.DisplayText(), "<audio", k.String())

		args.PlayCue = false
		spec, err = c.Resolve(k, args)
		require.NoError(t, err)
		p, err = a.Build(spec.Blocks, nil, nil)
		require.NoError(t, err)
		assert.NotContains(t, p.SpeechText(), "<audio", k.String())
	}

	spec, err := c.Resolve(KindHotHigher, Args{Locale: "en-US", PlayCue: true})
	require.NoError(t, err)
	p, err := a.Build(spec.Blocks, nil, nil)
	require.NoError(t, err)
	assert.Contains(t, p.SpeechText(), "Earcon_Steam.wav")

	spec, err = c.Resolve(KindWin, Args{Locale: "en-US", Answer: 3})
	require.NoError(t, err)
	p, err = a.Build(spec.Blocks, nil, nil)
	require.NoError(t, err)
	assert.Contains(t, p.SpeechText(), "Earcon_YouWin.wav")
}

type mapStrings map[string]string

func (m mapStrings) String(_, key string) (string, error) {
	if s, ok := m[key]; ok {
		return s, nil
	}
	return "", l10n.ErrMissingKey
}

func TestResolveRejectsArgumentMismatch(t *testing.T) {
	res, err := media.New("https://genie.example.com")
	require.NoError(t, err)
	strs := mapStrings{
		"greeting_1": "Hi", "greeting_2": "Hi", "greeting_3": "Hi",
		"invocation":       "Between %s and %s and %s",
		"invocation_guess": "Guess",
	}
	_, err = NewCatalog(strs, res).Resolve(KindStart, Args{Min: 1, Max: 10})
	assert.ErrorIs(t, err, ErrArgCount)
}

func TestResolveFailsFast(t *testing.T) {
	c := realCatalog(t)

	_, err := c.Resolve(Kind(999), Args{})
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = c.Resolve(KindStillHigher, Args{Locale: "en-US"})
	assert.Error(t, err, "previous guess is required")

	_, err = c.Resolve(KindSameGuessHint, Args{Locale: "en-US", Guess: 3})
	assert.Error(t, err, "hint is required")

	res, err := media.New("https://genie.example.com")
	require.NoError(t, err)
	_, err = NewCatalog(mapStrings{}, res).Resolve(KindExit, Args{})
	assert.ErrorIs(t, err, l10n.ErrMissingKey)
}

func TestChips(t *testing.T) {
	c := realCatalog(t)
	yesNo, err := c.ConfirmChips("en-US")
	require.NoError(t, err)
	assert.Equal(t, []string{"Yes", "No"}, yesNo)

	done, err := c.DoneChip("en-US")
	require.NoError(t, err)
	assert.NotEmpty(t, done)
}

func TestKindFor(t *testing.T) {
	cases := []struct {
		out  game.Outcome
		want Kind
	}{
		{game.Outcome{Category: game.CategoryDuplicateGuess}, KindSameGuess},
		{game.Outcome{Category: game.CategoryDuplicateGuess, ExplainHint: true}, KindSameGuessHint},
		{game.Outcome{Category: game.CategoryDuplicateGuess, EndGame: true}, KindSameGuessEnd},
		{game.Outcome{Category: game.CategoryHintViolationHigher}, KindStillHigher},
		{game.Outcome{Category: game.CategoryHintViolationLower}, KindStillLower},
		{game.Outcome{Category: game.CategoryMinBoundary}, KindMin},
		{game.Outcome{Category: game.CategoryMaxBoundary}, KindMax},
		{game.Outcome{Category: game.CategoryCold, Hint: game.HintHigher}, KindColdHigher},
		{game.Outcome{Category: game.CategoryCold, Hint: game.HintLower}, KindColdLower},
		{game.Outcome{Category: game.CategoryHot}, KindHot},
		{game.Outcome{Category: game.CategoryVeryHot, Hint: game.HintHigher}, KindVeryHotHigher},
		{game.Outcome{Category: game.CategoryVeryHot, Hint: game.HintLower}, KindVeryHotLower},
		{game.Outcome{Category: game.CategoryWarm, Hint: game.HintHigher}, KindWarmHigher},
		{game.Outcome{Category: game.CategoryWarm, Hint: game.HintLower}, KindWarmLower},
		{game.Outcome{Category: game.CategoryTooLow}, KindHigher},
		{game.Outcome{Category: game.CategoryTooLow, NearMiss: true}, KindHotHigher},
		{game.Outcome{Category: game.CategoryTooHigh}, KindLower},
		{game.Outcome{Category: game.CategoryTooHigh, NearMiss: true}, KindHotLower},
		{game.Outcome{Category: game.CategoryCorrect}, KindWin},
		{game.Outcome{Category: game.CategoryCorrectManyTries}, KindWinManyTries},
	}
	for _, tc := range cases {
		got, err := KindFor(tc.out)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, tc.out.Category.String())
	}

	_, err := KindFor(game.Outcome{})
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestKindForEvaluatedOutcomes(t *testing.T) {
	c := realCatalog(t)
	s := &game.Session{Answer: 50, Min: 1, Max: 100}
	for _, guess := range []int{10, 10, 1, 60, 54, 47, 49} {
		out, err := s.Evaluate(guess)
		require.NoError(t, err)
		k, err := KindFor(out)
		require.NoError(t, err)
		_, err = c.Resolve(k, OutcomeArgs(out, "en-US", s.Min, s.Max))
		require.NoError(t, err, "guess %d → %s", guess, k)
	}
}
