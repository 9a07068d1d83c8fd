// internal/prompts/element.go
//
// Building blocks of a prompt before variant selection.
//   - TextElement: equally weighted format-string variants + bound arguments.
//   - AudioElement: an audio cue; speech only, no display text.
//   - Block: an ordered group of elements.
//   - CardSpec: an image card with caption variants.
//
// Argument binding is checked against every variant's placeholder count;
// a mismatch is a configuration error (ErrArgCount).

package prompts

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/robalobadob/numbergenie/internal/rng"
)

var (
	// ErrArgCount reports a template whose placeholders do not match its arguments.
	ErrArgCount = errors.New("template argument count mismatch")
	// ErrBadTemplate reports a malformed format string.
	ErrBadTemplate = errors.New("malformed template")
	// ErrEmpty reports a prompt, block or element with nothing in it.
	ErrEmpty = errors.New("empty prompt content")
)

// Speech is SSML, so markup characters coming from templates or arguments
// must be escaped. Display text stays as written.
var (
	ssmlText = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	ssmlAttr = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

// Element is one part of a Block.
type Element interface {
	resolve(src rng.Source) (Part, error)
}

// TextElement picks one of Variants and formats it with Args.
type TextElement struct {
	Variants []string
	Args     []string
}

// NewText builds a text element and checks every variant against args.
func NewText(variants []string, args ...string) (TextElement, error) {
	t := TextElement{Variants: variants, Args: args}
	return t, t.validate()
}

func (t TextElement) validate() error {
	if len(t.Variants) == 0 {
		return fmt.Errorf("%w: text element has no variants", ErrEmpty)
	}
	for _, v := range t.Variants {
		n, err := countArgs(v)
		if err != nil {
			return err
		}
		if n != len(t.Args) {
			return fmt.Errorf("%w: %q wants %d, got %d", ErrArgCount, v, n, len(t.Args))
		}
	}
	return nil
}

func (t TextElement) resolve(src rng.Source) (Part, error) {
	if err := t.validate(); err != nil {
		return Part{}, err
	}
	v := t.Variants[src.IntRange(0, len(t.Variants)-1)]
	args := make([]any, len(t.Args))
	for i, a := range t.Args {
		args[i] = a
	}
	var s string
	if len(args) > 0 {
		s = fmt.Sprintf(v, args...)
	} else {
		s = strings.ReplaceAll(v, "%%", "%")
	}
	return Part{Display: s, Speech: ssmlText.Replace(s)}, nil
}

// AudioElement plays a sound. It contributes no display text.
type AudioElement struct {
	URL string
}

func (a AudioElement) resolve(rng.Source) (Part, error) {
	if a.URL == "" {
		return Part{}, fmt.Errorf("%w: audio element has no url", ErrEmpty)
	}
	return Part{Speech: `<audio src="` + ssmlAttr.Replace(a.URL) + `"/>`}, nil
}

// Block is an ordered group of elements resolved together.
type Block struct {
	Elements []Element
}

// NewBlock is shorthand for Block{Elements: elems}.
func NewBlock(elems ...Element) Block { return Block{Elements: elems} }

// CardSpec describes an image card; one caption is chosen at build time.
type CardSpec struct {
	URL      string
	Alt      string
	Captions []string
}

// countArgs returns the number of arguments a fmt format string consumes.
// Explicit indexes ("%[2]s") are honoured; "*" widths are rejected.
func countArgs(format string) (int, error) {
	next, used := 0, 0
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		i++
		if i >= len(format) {
			return 0, fmt.Errorf("%w: %q ends with %%", ErrBadTemplate, format)
		}
		if format[i] == '%' {
			continue
		}
		for i < len(format) && strings.IndexByte("+-# 0", format[i]) >= 0 {
			i++
		}
		if i < len(format) && format[i] == '[' {
			end := strings.IndexByte(format[i:], ']')
			if end < 0 {
				return 0, fmt.Errorf("%w: %q has an unclosed index", ErrBadTemplate, format)
			}
			n, err := strconv.Atoi(format[i+1 : i+end])
			if err != nil || n < 1 {
				return 0, fmt.Errorf("%w: %q has a bad index", ErrBadTemplate, format)
			}
			next = n - 1
			i += end + 1
		}
		for i < len(format) && (format[i] == '.' || (format[i] >= '0' && format[i] <= '9')) {
			i++
		}
		if i >= len(format) {
			return 0, fmt.Errorf("%w: %q is missing a verb", ErrBadTemplate, format)
		}
		if format[i] == '*' {
			return 0, fmt.Errorf("%w: %q uses a * width", ErrBadTemplate, format)
		}
		next++
		if next > used {
			used = next
		}
	}
	return used, nil
}
