// internal/prompts/prompt.go
//
// Prompt is the sealed, outbound result of one turn: resolved text and
// speech per element, suggestion chips and an optional image card.
// Accessors return copies so a cached prompt can be re-served unchanged.

package prompts

import (
	"encoding/json"
	"strings"
)

// Part is one resolved element.
type Part struct {
	Display string `json:"display,omitempty"`
	Speech  string `json:"speech,omitempty"`
}

// Card is a resolved image card.
type Card struct {
	URL     string `json:"url"`
	Alt     string `json:"alt"`
	Caption string `json:"caption"`
}

// Prompt is immutable once built by an Assembler.
type Prompt struct {
	blocks      [][]Part
	suggestions []string
	card        *Card
}

// IsZero reports whether p was never built.
func (p Prompt) IsZero() bool { return len(p.blocks) == 0 }

// DisplayText joins every non-empty display part with single spaces.
func (p Prompt) DisplayText() string {
	return p.join(func(pt Part) string { return pt.Display })
}

// SpeechText is the speech-side text wrapped in a <speak> envelope.
func (p Prompt) SpeechText() string {
	return "<speak>" + p.join(func(pt Part) string { return pt.Speech }) + "</speak>"
}

func (p Prompt) join(pick func(Part) string) string {
	var words []string
	for _, block := range p.blocks {
		for _, pt := range block {
			if s := strings.TrimSpace(pick(pt)); s != "" {
				words = append(words, s)
			}
		}
	}
	return strings.Join(words, " ")
}

// Suggestions returns a copy of the chips, in order.
func (p Prompt) Suggestions() []string {
	return append([]string{}, p.suggestions...)
}

// Card returns the image card, if any.
func (p Prompt) Card() (Card, bool) {
	if p.card == nil {
		return Card{}, false
	}
	return *p.card, true
}

// Blocks returns a copy of the resolved parts, block by block.
func (p Prompt) Blocks() [][]Part {
	out := make([][]Part, len(p.blocks))
	for i, b := range p.blocks {
		out[i] = append([]Part(nil), b...)
	}
	return out
}

type promptJSON struct {
	Blocks      [][]Part `json:"blocks"`
	Suggestions []string `json:"suggestions"`
	Card        *Card    `json:"card,omitempty"`
}

func (p Prompt) MarshalJSON() ([]byte, error) {
	return json.Marshal(promptJSON{Blocks: p.blocks, Suggestions: p.Suggestions(), Card: p.card})
}

func (p *Prompt) UnmarshalJSON(b []byte) error {
	var w promptJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if len(w.Blocks) == 0 {
		return ErrEmpty
	}
	*p = Prompt{blocks: w.Blocks, suggestions: w.Suggestions, card: w.Card}
	return nil
}
