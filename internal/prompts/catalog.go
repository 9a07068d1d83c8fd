// internal/prompts/catalog.go
//
// Prompt template catalog: static data mapping every prompt Kind to its
// blocks, image card and chip mode, plus the resolution step that turns a
// Kind into concrete Blocks for one locale.
//
// Strings and media URLs come from collaborators (Strings, Media); this
// file only names keys and logical asset names.

package prompts

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/robalobadob/numbergenie/internal/game"
	"github.com/robalobadob/numbergenie/internal/media"
)

// Strings looks up a localized template by key.
type Strings interface {
	String(locale, key string) (string, error)
}

// Media resolves logical asset names to URLs.
type Media interface {
	Image(name string) (string, error)
	Audio(name string) (string, error)
}

// ErrUnknownKind is returned for a Kind with no template.
var ErrUnknownKind = errors.New("unknown prompt kind")

// Kind identifies one prompt template.
type Kind int

const (
	KindStart Kind = iota + 1
	KindDailyStart
	KindSameGuess
	KindSameGuessHint
	KindSameGuessEnd
	KindStillHigher
	KindStillLower
	KindMin
	KindMax
	KindColdHigher
	KindColdLower
	KindHot
	KindVeryHotHigher
	KindVeryHotLower
	KindWarmHigher
	KindWarmLower
	KindHotHigher
	KindHotLower
	KindHigher
	KindLower
	KindWin
	KindWinManyTries
	KindQuit
	KindPlayAgain
	KindPlayAnother
	KindAnother
	KindExit
	KindConfirmationFallback
	KindFallback
	KindNoInput
	KindNoInputAgain
	KindNoInputFinal
	KindDeeplinkHigher
	KindDeeplinkLower
	KindDeeplinkWin
	KindDeeplinkOutOfBounds
)

var kindNames = map[Kind]string{
	KindStart: "start", KindDailyStart: "daily_start",
	KindSameGuess: "same_guess", KindSameGuessHint: "same_guess_hint", KindSameGuessEnd: "same_guess_end",
	KindStillHigher: "still_higher", KindStillLower: "still_lower",
	KindMin: "min", KindMax: "max",
	KindColdHigher: "cold_higher", KindColdLower: "cold_lower",
	KindHot: "hot", KindVeryHotHigher: "very_hot_higher", KindVeryHotLower: "very_hot_lower",
	KindWarmHigher: "warm_higher", KindWarmLower: "warm_lower",
	KindHotHigher: "hot_higher", KindHotLower: "hot_lower",
	KindHigher: "higher", KindLower: "lower",
	KindWin: "win", KindWinManyTries: "win_many_tries",
	KindQuit: "quit", KindPlayAgain: "play_again", KindPlayAnother: "play_another",
	KindAnother: "another", KindExit: "exit",
	KindConfirmationFallback: "confirmation_fallback", KindFallback: "fallback",
	KindNoInput: "no_input", KindNoInputAgain: "no_input_again", KindNoInputFinal: "no_input_final",
	KindDeeplinkHigher: "deeplink_higher", KindDeeplinkLower: "deeplink_lower",
	KindDeeplinkWin: "deeplink_win", KindDeeplinkOutOfBounds: "deeplink_out_of_bounds",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Kinds lists every catalog entry.
func Kinds() []Kind {
	out := make([]Kind, 0, len(templates))
	for k := KindStart; k <= KindDeeplinkOutOfBounds; k++ {
		out = append(out, k)
	}
	return out
}

// ChipMode says which suggestion chips accompany a prompt.
type ChipMode int

const (
	ChipsNone ChipMode = iota
	ChipsNumbers
	ChipsNumbersAndDone
	ChipsConfirm
)

// Arg names a runtime value bound into a template.
type Arg int

const (
	ArgGuess Arg = iota
	ArgAnswer
	ArgMin
	ArgMax
	ArgBound
	ArgPrevious
	ArgHint // localized "higher" / "lower"
)

// Args carries the runtime values a template may bind.
type Args struct {
	Locale   string
	Guess    int
	Answer   int
	Min      int
	Max      int
	Bound    int
	Previous *int
	Hint     game.Hint
	PlayCue  bool
}

type elementTmpl struct {
	keys    []string
	args    []Arg
	audio   string
	cueOnly bool // audio plays only when Args.PlayCue
}

type template struct {
	blocks [][]elementTmpl
	card   string
	chips  ChipMode
}

func text(keys []string, args ...Arg) elementTmpl { return elementTmpl{keys: keys, args: args} }
func one(key string, args ...Arg) elementTmpl     { return text([]string{key}, args...) }
func sound(name string) elementTmpl               { return elementTmpl{audio: name} }
func cue(name string) elementTmpl                 { return elementTmpl{audio: name, cueOnly: true} }
func blocks(b ...[]elementTmpl) [][]elementTmpl   { return b }
func block(e ...elementTmpl) []elementTmpl        { return e }

// variants returns prefix_1 .. prefix_n.
func variants(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = prefix + "_" + strconv.Itoa(i+1)
	}
	return out
}

var (
	greetings = variants("greeting", 3)
	another   = variants("another", 3)
	again     = variants("again", 3)
	re        = variants("re", 6)
)

var templates = map[Kind]template{
	KindStart: {
		blocks: blocks(block(text(greetings), one("invocation", ArgMin, ArgMax)), block(one("invocation_guess"))),
		card:   media.ImageIntro, chips: ChipsNumbers,
	},
	KindDailyStart: {
		blocks: blocks(block(text(variants("daily", 2)), one("invocation", ArgMin, ArgMax)), block(one("invocation_guess"))),
		card:   media.ImageIntro, chips: ChipsNumbers,
	},
	KindSameGuess:     {blocks: blocks(block(one("same_guess_3", ArgGuess))), chips: ChipsNumbers},
	KindSameGuessHint: {blocks: blocks(block(one("same_guess_1", ArgGuess, ArgHint))), chips: ChipsNumbers},
	KindSameGuessEnd:  {blocks: blocks(block(one("same_guess_2", ArgGuess, ArgAnswer)))},
	KindStillHigher: {
		blocks: blocks(block(text(variants("wrong_higher", 2), ArgPrevious))),
		card:   media.ImageCool, chips: ChipsNumbers,
	},
	KindStillLower: {
		blocks: blocks(block(text(variants("wrong_lower", 2), ArgPrevious))),
		card:   media.ImageCool, chips: ChipsNumbers,
	},
	KindMin: {blocks: blocks(block(one("min")), block(one("min_follow", ArgBound))), chips: ChipsNumbers},
	KindMax: {blocks: blocks(block(one("max")), block(one("max_follow", ArgBound))), chips: ChipsNumbers},
	KindColdHigher: {
		blocks: blocks(block(text(variants("cold_high", 2), ArgGuess))),
		card:   media.ImageCold, chips: ChipsNumbers,
	},
	KindColdLower: {
		blocks: blocks(block(text(variants("cold_low", 2), ArgGuess))),
		card:   media.ImageCold, chips: ChipsNumbers,
	},
	KindHot: {blocks: blocks(block(one("close"))), card: media.ImageHot, chips: ChipsNumbers},
	KindVeryHotHigher: {
		blocks: blocks(block(cue(media.AudioSteamOnly), text(variants("highest", 3)))),
		card:   media.ImageHot, chips: ChipsNumbers,
	},
	KindVeryHotLower: {
		blocks: blocks(block(cue(media.AudioSteamOnly), text(variants("lowest", 3)))),
		card:   media.ImageHot, chips: ChipsNumbers,
	},
	KindWarmHigher: {
		blocks: blocks(block(text(variants("higher", 3), ArgGuess)), block(text(another))),
		card:   media.ImageWarm, chips: ChipsNumbers,
	},
	KindWarmLower: {
		blocks: blocks(block(text(variants("lower", 3), ArgGuess)), block(text(another))),
		card:   media.ImageWarm, chips: ChipsNumbers,
	},
	KindHotHigher: {
		blocks: blocks(block(cue(media.AudioSteam), text(variants("hot_high", 4)))),
		card:   media.ImageHot, chips: ChipsNumbers,
	},
	KindHotLower: {
		blocks: blocks(block(cue(media.AudioSteam), text(variants("hot_low", 4)))),
		card:   media.ImageHot, chips: ChipsNumbers,
	},
	KindHigher: {blocks: blocks(block(one("high", ArgGuess)), block(text(another))), chips: ChipsNumbers},
	KindLower:  {blocks: blocks(block(one("low", ArgGuess)), block(text(another))), chips: ChipsNumbers},
	KindWin: {
		blocks: blocks(block(sound(media.AudioWin), text(variants("correct", 3), ArgAnswer)), block(text(again))),
		card:   media.ImageWin, chips: ChipsConfirm,
	},
	KindWinManyTries: {
		blocks: blocks(block(sound(media.AudioWin), text(variants("many_tries", 2), ArgAnswer)), block(one("many_tries_again"))),
		card:   media.ImageWin, chips: ChipsConfirm,
	},
	KindQuit: {blocks: blocks(block(text(variants("reveal", 2), ArgAnswer)), block(text(variants("reveal_bye", 2))))},
	KindPlayAgain: {
		blocks: blocks(block(text(re), one("reinvocation", ArgMin, ArgMax)), block(one("reinvocation_guess"))),
		chips:  ChipsNumbersAndDone,
	},
	KindPlayAnother:          {blocks: blocks(block(text(re)), block(text(another))), chips: ChipsNumbersAndDone},
	KindAnother:              {blocks: blocks(block(text(another))), chips: ChipsNumbersAndDone},
	KindExit:                 {blocks: blocks(block(text(variants("quit", 4))))},
	KindConfirmationFallback: {blocks: blocks(block(one("fallback_1"))), chips: ChipsConfirm},
	KindFallback:             {blocks: blocks(block(one("fallback_2")))},
	KindNoInput:              {blocks: blocks(block(one("no_input_1")))},
	KindNoInputAgain:         {blocks: blocks(block(one("no_input_2")))},
	KindNoInputFinal:         {blocks: blocks(block(one("no_input_3")))},
	KindDeeplinkHigher: {
		blocks: blocks(block(text(greetings)), block(text([]string{"deeplink_1", "deeplink_2"}))),
		chips:  ChipsNumbers,
	},
	KindDeeplinkLower: {
		blocks: blocks(block(text(greetings)), block(text([]string{"deeplink_3", "deeplink_4"}))),
		chips:  ChipsNumbers,
	},
	KindDeeplinkWin: {
		blocks: blocks(block(sound(media.AudioWin), text([]string{"deeplink_5", "deeplink_6"})), block(text(again))),
		chips:  ChipsConfirm,
	},
	KindDeeplinkOutOfBounds: {
		blocks: blocks(block(one("out_of_bounds"), one("invocation", ArgMin, ArgMax)), block(one("invocation_guess"))),
		card:   media.ImageIntro, chips: ChipsNumbersAndDone,
	},
}

// Spec is a resolved template, ready for an Assembler.
type Spec struct {
	Kind   Kind
	Blocks []Block
	Card   *CardSpec
	Chips  ChipMode
}

// Catalog resolves Kinds against localized strings and hosted media.
type Catalog struct {
	strings Strings
	media   Media
}

// NewCatalog wires a catalog to its collaborators.
func NewCatalog(s Strings, m Media) *Catalog {
	return &Catalog{strings: s, media: m}
}

// Resolve looks up every string and asset kind needs and binds args.
// It fails if a key or asset is missing, or if any variant's placeholder
// count differs from the number of bound arguments.
func (c *Catalog) Resolve(kind Kind, a Args) (Spec, error) {
	tmpl, ok := templates[kind]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
	spec := Spec{Kind: kind, Chips: tmpl.chips}
	for _, bt := range tmpl.blocks {
		var b Block
		for _, et := range bt {
			el, ok, err := c.element(et, a)
			if err != nil {
				return Spec{}, fmt.Errorf("%s: %w", kind, err)
			}
			if ok {
				b.Elements = append(b.Elements, el)
			}
		}
		spec.Blocks = append(spec.Blocks, b)
	}
	if tmpl.card != "" {
		card, err := c.card(tmpl.card, a.Locale)
		if err != nil {
			return Spec{}, fmt.Errorf("%s: %w", kind, err)
		}
		spec.Card = card
	}
	return spec, nil
}

func (c *Catalog) element(et elementTmpl, a Args) (Element, bool, error) {
	if et.audio != "" {
		if et.cueOnly && !a.PlayCue {
			return nil, false, nil
		}
		u, err := c.media.Audio(et.audio)
		if err != nil {
			return nil, false, err
		}
		return AudioElement{URL: u}, true, nil
	}

	vs := make([]string, 0, len(et.keys))
	for _, k := range et.keys {
		s, err := c.strings.String(a.Locale, k)
		if err != nil {
			return nil, false, err
		}
		vs = append(vs, s)
	}
	args := make([]string, 0, len(et.args))
	for _, arg := range et.args {
		v, err := c.bind(arg, a)
		if err != nil {
			return nil, false, err
		}
		args = append(args, v)
	}
	el, err := NewText(vs, args...)
	if err != nil {
		return nil, false, fmt.Errorf("keys %v: %w", et.keys, err)
	}
	return el, true, nil
}

func (c *Catalog) bind(arg Arg, a Args) (string, error) {
	switch arg {
	case ArgGuess:
		return strconv.Itoa(a.Guess), nil
	case ArgAnswer:
		return strconv.Itoa(a.Answer), nil
	case ArgMin:
		return strconv.Itoa(a.Min), nil
	case ArgMax:
		return strconv.Itoa(a.Max), nil
	case ArgBound:
		return strconv.Itoa(a.Bound), nil
	case ArgPrevious:
		if a.Previous == nil {
			return "", errors.New("previous guess required")
		}
		return strconv.Itoa(*a.Previous), nil
	case ArgHint:
		if a.Hint == game.HintNone {
			return "", errors.New("hint required")
		}
		return c.strings.String(a.Locale, "hint_"+a.Hint.String())
	}
	return "", fmt.Errorf("unknown argument %d", int(arg))
}

func (c *Catalog) card(name, locale string) (*CardSpec, error) {
	u, err := c.media.Image(name)
	if err != nil {
		return nil, err
	}
	prefix := strings.ToLower(name)
	alt, err := c.strings.String(locale, prefix+"_alt_text")
	if err != nil {
		return nil, err
	}
	card := &CardSpec{URL: u, Alt: alt}
	for _, k := range variants(prefix+"_text", 3) {
		s, err := c.strings.String(locale, k)
		if err != nil {
			return nil, err
		}
		card.Captions = append(card.Captions, s)
	}
	return card, nil
}

// ConfirmChips returns the localized yes / no chips.
func (c *Catalog) ConfirmChips(locale string) ([]string, error) {
	yes, err := c.strings.String(locale, "confirm_yes")
	if err != nil {
		return nil, err
	}
	no, err := c.strings.String(locale, "confirm_no")
	if err != nil {
		return nil, err
	}
	return []string{yes, no}, nil
}

// DoneChip returns the localized "done" chip.
func (c *Catalog) DoneChip(locale string) (string, error) {
	return c.strings.String(locale, "done")
}

// KindFor maps a guess outcome (category plus sub-parameters) to its prompt.
func KindFor(o game.Outcome) (Kind, error) {
	higher := o.Hint == game.HintHigher
	switch o.Category {
	case game.CategoryDuplicateGuess:
		switch {
		case o.EndGame:
			return KindSameGuessEnd, nil
		case o.ExplainHint:
			return KindSameGuessHint, nil
		}
		return KindSameGuess, nil
	case game.CategoryHintViolationHigher:
		return KindStillHigher, nil
	case game.CategoryHintViolationLower:
		return KindStillLower, nil
	case game.CategoryMinBoundary:
		return KindMin, nil
	case game.CategoryMaxBoundary:
		return KindMax, nil
	case game.CategoryCold:
		return pick(higher, KindColdHigher, KindColdLower), nil
	case game.CategoryHot:
		return KindHot, nil
	case game.CategoryVeryHot:
		return pick(higher, KindVeryHotHigher, KindVeryHotLower), nil
	case game.CategoryWarm:
		return pick(higher, KindWarmHigher, KindWarmLower), nil
	case game.CategoryTooLow:
		return pick(o.NearMiss, KindHotHigher, KindHigher), nil
	case game.CategoryTooHigh:
		return pick(o.NearMiss, KindHotLower, KindLower), nil
	case game.CategoryCorrect:
		return KindWin, nil
	case game.CategoryCorrectManyTries:
		return KindWinManyTries, nil
	}
	return 0, fmt.Errorf("%w: no prompt for category %s", ErrUnknownKind, o.Category)
}

func pick(cond bool, a, b Kind) Kind {
	if cond {
		return a
	}
	return b
}

// OutcomeArgs collects the template arguments for a guess outcome.
func OutcomeArgs(o game.Outcome, locale string, min, max int) Args {
	return Args{
		Locale:   locale,
		Guess:    o.Guess,
		Answer:   o.Answer,
		Min:      min,
		Max:      max,
		Bound:    o.Bound,
		Previous: o.Previous,
		Hint:     o.Hint,
		PlayCue:  o.PlayCue,
	}
}
