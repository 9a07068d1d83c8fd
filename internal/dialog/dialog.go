// internal/dialog/dialog.go
//
// Conversation layer between the transport and the game core.
// One call to App.Handle is one turn:
//
//	load session → intent handler (may Evaluate) → resolve prompt kind
//	→ suggestion chips → assemble → cache as lastResponse → save
//
// Intent handlers live in intents.go. They only decide the prompt kind,
// its arguments, whether the conversation ends and which follow-up
// contexts to open; finish() does the rest.

package dialog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/numbergenie/internal/daily"
	"github.com/robalobadob/numbergenie/internal/game"
	"github.com/robalobadob/numbergenie/internal/prompts"
	"github.com/robalobadob/numbergenie/internal/rng"
	"github.com/robalobadob/numbergenie/internal/session"
)

var (
	ErrMissingSession = errors.New("missing session id")
	ErrMissingGuess   = errors.New("missing guess")
	ErrMissingNumber  = errors.New("missing number")
	ErrUnknownIntent  = errors.New("unknown intent")
)

// Follow-up contexts opened for the platform's intent matcher.
const (
	ContextGame      = "game"
	ContextYesNo     = "yes_no"
	ContextDoneYesNo = "done_yes_no"
)

// Request is one inbound turn.
type Request struct {
	SessionID     string `json:"sessionId"`
	Intent        string `json:"intent"`
	Locale        string `json:"locale,omitempty"`
	RawText       string `json:"rawText,omitempty"`
	Guess         *int   `json:"guess,omitempty"`
	Number        *int   `json:"number,omitempty"`
	RepromptCount int    `json:"repromptCount,omitempty"`
}

// Context is an output context with its lifespan in turns.
type Context struct {
	Name     string `json:"name"`
	Lifespan int    `json:"lifespan"`
}

// Response is one outbound turn.
type Response struct {
	SessionID       string        `json:"sessionId"`
	Kind            string        `json:"kind"`
	DisplayText     string        `json:"displayText"`
	Speech          string        `json:"speech"`
	Card            *prompts.Card `json:"card,omitempty"`
	Suggestions     []string      `json:"suggestions"`
	EndConversation bool          `json:"endConversation"`
	Contexts        []Context     `json:"contexts,omitempty"`
}

// Options are the game parameters the dialog needs from configuration.
type Options struct {
	Min           int
	Max           int
	Suggestions   int
	DefaultLocale string
	DailySalt     string
}

// Recorder stores finished daily rounds. *daily.Store satisfies it.
type Recorder interface {
	AlreadyPlayed(ctx context.Context, sessionID, date string) (bool, error)
	InsertResult(ctx context.Context, r daily.Result) error
}

// App handles turns for every conversation.
type App struct {
	opts     Options
	catalog  *prompts.Catalog
	asm      *prompts.Assembler
	sessions session.Store
	src      rng.Source
	daily    Recorder
	now      func() time.Time
	handlers map[string]handler
}

// Option customizes an App.
type Option func(*App)

// WithDailyRecorder records daily wins to r.
func WithDailyRecorder(r Recorder) Option { return func(a *App) { a.daily = r } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(a *App) { a.now = now } }

// New wires an App. src drives target rolls, chip shuffles and variant picks.
func New(opts Options, cat *prompts.Catalog, sessions session.Store, src rng.Source, options ...Option) *App {
	a := &App{
		opts:     opts,
		catalog:  cat,
		asm:      prompts.NewAssembler(src),
		sessions: sessions,
		src:      src,
		now:      time.Now,
	}
	a.handlers = a.routes()
	for _, o := range options {
		o(a)
	}
	return a
}

// turn is the working state of one Handle call.
type turn struct {
	req      Request
	locale   string
	s        *game.Session
	kind     prompts.Kind
	args     prompts.Args
	end      bool
	contexts []Context
	replay   *prompts.Prompt
}

func (t *turn) open(name string, lifespan int) {
	t.contexts = append(t.contexts, Context{Name: name, Lifespan: lifespan})
}

// say selects the prompt kind with the session's default arguments.
func (t *turn) say(k prompts.Kind) {
	t.kind = k
	t.args = prompts.Args{
		Locale: t.locale,
		Min:    t.s.Min,
		Max:    t.s.Max,
		Answer: t.s.Answer,
		Hint:   t.s.Hint,
	}
}

// Handle processes one turn.
func (a *App) Handle(ctx context.Context, req Request) (Response, error) {
	if req.SessionID == "" {
		return Response{}, ErrMissingSession
	}
	h, ok := a.handlers[req.Intent]
	if !ok {
		return Response{}, fmt.Errorf("%w: %q", ErrUnknownIntent, req.Intent)
	}
	log.Info().Str("intent", req.Intent).Str("session", req.SessionID).Msg("intent handler")

	s, err := a.load(ctx, req.SessionID)
	if err != nil {
		return Response{}, err
	}
	t := &turn{req: req, s: s, locale: req.Locale}
	if t.locale == "" {
		t.locale = a.opts.DefaultLocale
	}
	if err := h(ctx, t); err != nil {
		return Response{}, err
	}
	return a.finish(ctx, t)
}

// load returns the stored session, or a fresh game when there is none.
func (a *App) load(ctx context.Context, id string) (*game.Session, error) {
	s, err := a.sessions.Get(ctx, id)
	if errors.Is(err, session.ErrNotFound) {
		return a.newGame()
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return s, nil
}

func (a *App) newGame() (*game.Session, error) {
	return game.NewSession(a.opts.Min, a.opts.Max, a.src)
}

func (a *App) finish(ctx context.Context, t *turn) (Response, error) {
	p := t.replay
	if p == nil {
		spec, err := a.catalog.Resolve(t.kind, t.args)
		if err != nil {
			return Response{}, fmt.Errorf("resolve %s: %w", t.kind, err)
		}
		chips, err := a.chips(spec.Chips, t)
		if err != nil {
			return Response{}, fmt.Errorf("chips for %s: %w", t.kind, err)
		}
		built, err := a.asm.Build(spec.Blocks, chips, spec.Card)
		if err != nil {
			return Response{}, fmt.Errorf("build %s: %w", t.kind, err)
		}
		raw, err := json.Marshal(built)
		if err != nil {
			return Response{}, fmt.Errorf("cache %s: %w", t.kind, err)
		}
		t.s.LastResponse = raw
		p = &built
	}

	if t.end {
		if err := a.sessions.Delete(ctx, t.req.SessionID); err != nil {
			return Response{}, err
		}
	} else if err := a.sessions.Save(ctx, t.req.SessionID, t.s); err != nil {
		return Response{}, err
	}

	kind := t.kind.String()
	if t.replay != nil {
		kind = IntentRepeat
	}
	res := Response{
		SessionID:       t.req.SessionID,
		Kind:            kind,
		DisplayText:     p.DisplayText(),
		Speech:          p.SpeechText(),
		Suggestions:     p.Suggestions(),
		EndConversation: t.end,
		Contexts:        t.contexts,
	}
	if c, ok := p.Card(); ok {
		res.Card = &c
	}
	return res, nil
}

func (a *App) chips(mode prompts.ChipMode, t *turn) ([]string, error) {
	switch mode {
	case prompts.ChipsNumbers:
		return t.s.Suggestions(a.opts.Suggestions, a.src)
	case prompts.ChipsNumbersAndDone:
		nums, err := t.s.Suggestions(a.opts.Suggestions, a.src)
		if err != nil {
			return nil, err
		}
		done, err := a.catalog.DoneChip(t.locale)
		if err != nil {
			return nil, err
		}
		return append(nums, done), nil
	case prompts.ChipsConfirm:
		return a.catalog.ConfirmChips(t.locale)
	}
	return nil, nil
}
