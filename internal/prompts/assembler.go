package prompts

import (
	"fmt"

	"github.com/robalobadob/numbergenie/internal/rng"
)

// Assembler resolves blocks into a sealed Prompt. Variant selection is
// uniform and independent per element, drawn from the injected source.
type Assembler struct {
	src rng.Source
}

// NewAssembler returns an assembler drawing randomness from src.
func NewAssembler(src rng.Source) *Assembler {
	return &Assembler{src: src}
}

// Build resolves every element of every block in order, attaches the
// suggestions unchanged and picks one caption for the card.
func (a *Assembler) Build(blocks []Block, suggestions []string, card *CardSpec) (Prompt, error) {
	if len(blocks) == 0 {
		return Prompt{}, fmt.Errorf("%w: no blocks", ErrEmpty)
	}
	resolved := make([][]Part, 0, len(blocks))
	for i, b := range blocks {
		if len(b.Elements) == 0 {
			return Prompt{}, fmt.Errorf("%w: block %d has no elements", ErrEmpty, i)
		}
		parts := make([]Part, 0, len(b.Elements))
		for _, el := range b.Elements {
			pt, err := el.resolve(a.src)
			if err != nil {
				return Prompt{}, fmt.Errorf("block %d: %w", i, err)
			}
			parts = append(parts, pt)
		}
		resolved = append(resolved, parts)
	}

	p := Prompt{blocks: resolved, suggestions: append([]string{}, suggestions...)}
	if card != nil {
		if len(card.Captions) == 0 {
			return Prompt{}, fmt.Errorf("%w: card has no captions", ErrEmpty)
		}
		p.card = &Card{
			URL:     card.URL,
			Alt:     card.Alt,
			Caption: card.Captions[a.src.IntRange(0, len(card.Captions)-1)],
		}
	}
	return p, nil
}
