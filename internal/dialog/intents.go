// internal/dialog/intents.go
//
// One handler per platform intent. Handlers mutate the turn's session and
// pick a prompt kind; they never build prompts themselves.

package dialog

import (
	"context"
	"encoding/json"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/numbergenie/internal/daily"
	"github.com/robalobadob/numbergenie/internal/game"
	"github.com/robalobadob/numbergenie/internal/prompts"
)

// Intent names as sent by the platform.
const (
	IntentStart           = "start_game"
	IntentDaily           = "daily_game"
	IntentQuit            = "quit_game"
	IntentGuess           = "provide_guess"
	IntentPlayAgainYes    = "play_again_yes"
	IntentPlayAgainNo     = "play_again_no"
	IntentFallback        = "Default Fallback Intent"
	IntentFallbackAlias   = "fallback"
	IntentUnknownDeeplink = "unknown_deeplink"
	IntentDeeplinkNumber  = "deeplink_number"
	IntentDoneYes         = "done_yes"
	IntentDoneNo          = "done_no"
	IntentRepeat          = "repeat"
	IntentCancel          = "cancel"
	IntentNoInput         = "no_input"
)

const (
	gameLifespan  = 1
	yesNoLifespan = 5
)

type handler func(ctx context.Context, t *turn) error

func (a *App) routes() map[string]handler {
	return map[string]handler{
		IntentStart:           a.start,
		IntentDaily:           a.startDaily,
		IntentQuit:            a.quit,
		IntentGuess:           a.guess,
		IntentPlayAgainYes:    a.playAgainYes,
		IntentPlayAgainNo:     a.exit,
		IntentFallback:        a.fallback,
		IntentFallbackAlias:   a.fallback,
		IntentUnknownDeeplink: a.unknownDeeplink,
		IntentDeeplinkNumber:  a.deeplinkNumber,
		IntentDoneYes:         a.exit,
		IntentDoneNo:          a.doneNo,
		IntentRepeat:          a.repeat,
		IntentCancel:          a.cancel,
		IntentNoInput:         a.noInput,
	}
}

// Intents lists the intent names Handle accepts.
func (a *App) Intents() []string {
	out := make([]string, 0, len(a.handlers))
	for k := range a.handlers {
		out = append(out, k)
	}
	return out
}

func (a *App) start(_ context.Context, t *turn) error {
	s, err := a.newGame()
	if err != nil {
		return err
	}
	t.s = s
	t.say(prompts.KindStart)
	return nil
}

func (a *App) startDaily(_ context.Context, t *turn) error {
	s, err := a.newGame()
	if err != nil {
		return err
	}
	now := a.now()
	target, err := daily.Target(now, a.opts.DailySalt, s.Min, s.Max)
	if err != nil {
		return err
	}
	s.Answer = target
	s.Daily = daily.DateKey(now)
	s.DailyStart = now.UnixMilli()
	t.s = s
	t.say(prompts.KindDailyStart)
	return nil
}

func (a *App) quit(_ context.Context, t *turn) error {
	t.say(prompts.KindQuit)
	t.end = true
	return nil
}

func (a *App) guess(ctx context.Context, t *turn) error {
	if t.req.Guess == nil {
		return ErrMissingGuess
	}
	out, err := t.s.Evaluate(*t.req.Guess)
	if err != nil {
		return err
	}
	kind, err := prompts.KindFor(out)
	if err != nil {
		return err
	}
	log.Debug().
		Str("session", t.req.SessionID).
		Int("guess", out.Guess).
		Str("category", out.Category.String()).
		Msg("guess evaluated")

	t.kind = kind
	t.args = prompts.OutcomeArgs(out, t.locale, t.s.Min, t.s.Max)
	t.end = out.EndGame
	if out.Category.Won() {
		t.open(ContextYesNo, yesNoLifespan)
		if t.s.Daily != "" {
			a.recordDaily(ctx, t, out.Tries)
		}
	}
	return nil
}

// recordDaily stores a daily win. Failures are logged, not returned: the
// player has already won.
func (a *App) recordDaily(ctx context.Context, t *turn, tries int) {
	date := t.s.Daily
	elapsed := a.now().UnixMilli() - t.s.DailyStart
	t.s.Daily, t.s.DailyStart = "", 0
	if a.daily == nil {
		return
	}
	played, err := a.daily.AlreadyPlayed(ctx, t.req.SessionID, date)
	if err != nil {
		log.Warn().Err(err).Str("session", t.req.SessionID).Msg("daily lookup")
		return
	}
	if played {
		return
	}
	err = a.daily.InsertResult(ctx, daily.Result{
		SessionID: t.req.SessionID,
		Date:      date,
		Target:    t.s.Answer,
		Guesses:   tries,
		ElapsedMs: elapsed,
	})
	if err != nil {
		log.Warn().Err(err).Str("session", t.req.SessionID).Msg("daily insert")
	}
}

func (a *App) playAgainYes(_ context.Context, t *turn) error {
	t.s.Restart(a.src)
	t.say(prompts.KindPlayAgain)
	return nil
}

func (a *App) exit(_ context.Context, t *turn) error {
	t.say(prompts.KindExit)
	t.end = true
	t.open(ContextGame, gameLifespan)
	return nil
}

func (a *App) cancel(_ context.Context, t *turn) error {
	t.say(prompts.KindExit)
	t.end = true
	return nil
}

func (a *App) fallback(_ context.Context, t *turn) error {
	if t.s.Fallback() {
		t.say(prompts.KindConfirmationFallback)
		t.open(ContextDoneYesNo, yesNoLifespan)
		return nil
	}
	t.say(prompts.KindFallback)
	t.end = true
	return nil
}

// unknownDeeplink starts a game and compares the length of what the user
// said with the new target.
func (a *App) unknownDeeplink(ctx context.Context, t *turn) error {
	s, err := a.newGame()
	if err != nil {
		return err
	}
	t.s = s
	if t.req.RawText == "" {
		return a.fallback(ctx, t)
	}
	t.open(ContextGame, gameLifespan)
	switch n := utf8.RuneCountInString(t.req.RawText); {
	case n < s.Answer:
		t.say(prompts.KindDeeplinkHigher)
	case n > s.Answer:
		t.say(prompts.KindDeeplinkLower)
	default:
		t.say(prompts.KindDeeplinkWin)
		t.open(ContextYesNo, yesNoLifespan)
	}
	return nil
}

// deeplinkNumber starts a game whose target is the number the user named,
// or a random one when it is out of range.
func (a *App) deeplinkNumber(_ context.Context, t *turn) error {
	if t.req.Number == nil {
		return ErrMissingNumber
	}
	s, err := a.newGame()
	if err != nil {
		return err
	}
	t.s = s
	t.open(ContextGame, gameLifespan)
	if !game.InBounds(*t.req.Number, s.Min, s.Max) {
		t.say(prompts.KindDeeplinkOutOfBounds)
		return nil
	}
	s.Answer = *t.req.Number
	t.say(prompts.KindStart)
	return nil
}

func (a *App) doneNo(_ context.Context, t *turn) error {
	t.s.FallbackCount = 0
	t.say(prompts.KindPlayAnother)
	return nil
}

func (a *App) repeat(_ context.Context, t *turn) error {
	if len(t.s.LastResponse) > 0 {
		var p prompts.Prompt
		err := json.Unmarshal(t.s.LastResponse, &p)
		if err == nil {
			t.replay = &p
			return nil
		}
		log.Warn().Err(err).Str("session", t.req.SessionID).Msg("discarding cached prompt")
	}
	t.say(prompts.KindAnother)
	return nil
}

func (a *App) noInput(_ context.Context, t *turn) error {
	switch {
	case t.req.RepromptCount <= 0:
		t.say(prompts.KindNoInput)
	case t.req.RepromptCount == 1:
		t.say(prompts.KindNoInputAgain)
	default:
		t.say(prompts.KindNoInputFinal)
		t.end = true
	}
	return nil
}
