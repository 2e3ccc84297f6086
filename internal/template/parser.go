// Package template parses and resolves path templates.
//
// A template is a "/"-separated relative path whose segments may contain
// {name} placeholders, for example "levels/{region}/dungeon_{id}.map".
// Placeholder names match [A-Za-z0-9_]+ and are unique within a template.
// There is no escape syntax: a brace outside a placeholder is an error.
//
// Templates are always written with "/" regardless of the host platform.
package template

import (
	"fmt"
	"strings"

	"github.com/conneroisu/pathreg/internal/errors"
	"github.com/conneroisu/pathreg/internal/validation"
)

// Separator is the platform-neutral separator used in templates.
const Separator = "/"

// Template is a parsed, immutable path template.
type Template struct {
	source       string
	segments     []Segment
	placeholders []string
}

// Source returns the template as it was written.
func (t *Template) Source() string {
	return t.source
}

// String renders the template in template syntax, with literal segments in
// their normalized form.
func (t *Template) String() string {
	parts := make([]string, len(t.segments))
	for i, seg := range t.segments {
		parts[i] = seg.String()
	}
	return strings.Join(parts, Separator)
}

// Segments returns a copy of the parsed segments.
func (t *Template) Segments() []Segment {
	segments := make([]Segment, len(t.segments))
	for i, seg := range t.segments {
		tokens := make([]Token, len(seg.Tokens))
		copy(tokens, seg.Tokens)
		segments[i] = Segment{Tokens: tokens}
	}
	return segments
}

// Placeholders returns placeholder names in order of appearance.
func (t *Template) Placeholders() []string {
	names := make([]string, len(t.placeholders))
	copy(names, t.placeholders)
	return names
}

// IsStatic reports whether the template has no placeholders.
func (t *Template) IsStatic() bool {
	return len(t.placeholders) == 0
}

// MustParse is like Parse but panics on error. Intended for templates that
// are compile-time constants.
func MustParse(source string) *Template {
	t, err := Parse(source)
	if err != nil {
		panic(fmt.Sprintf("template: MustParse(%q): %v", source, err))
	}
	return t
}

// Parse parses a template and validates every literal segment.
func Parse(source string) (*Template, error) {
	if source == "" {
		return nil, errors.NewTemplateError(errors.ErrCodeEmptyTemplate, "template cannot be empty")
	}
	if strings.HasPrefix(source, Separator) {
		return nil, errors.NewTemplateError(
			errors.ErrCodeAbsoluteTemplate,
			"template must be relative, but starts with a separator",
		).WithTemplate(source)
	}
	if strings.HasPrefix(source, "~") {
		return nil, errors.NewValidationError(
			errors.ErrCodeHomeRelative,
			"template cannot start with a tilde",
		).WithTemplate(source).WithSegment(0, strings.SplitN(source, Separator, 2)[0])
	}

	raw := strings.Split(source, Separator)
	t := &Template{
		source:   source,
		segments: make([]Segment, 0, len(raw)),
	}
	seen := make(map[string]struct{})

	for i, part := range raw {
		seg, err := parseSegment(part)
		if err != nil {
			return nil, err.WithTemplate(source).WithSegment(i, part)
		}

		for _, tok := range seg.Tokens {
			if tok.Kind != TokenPlaceholder {
				continue
			}
			if _, dup := seen[tok.Value]; dup {
				return nil, errors.NewTemplateError(
					errors.ErrCodeDuplicatePlaceholder,
					"placeholder {"+tok.Value+"} appears more than once",
				).WithTemplate(source).WithSegment(i, part).WithPlaceholder(tok.Value)
			}
			seen[tok.Value] = struct{}{}
			t.placeholders = append(t.placeholders, tok.Value)
		}

		if seg.IsStatic() {
			normalized, err := validation.ValidateSegment(seg.literal())
			if err != nil {
				return nil, annotate(err, source, i, part)
			}
			seg = Segment{Tokens: []Token{Literal(normalized)}}
		} else if err := checkFragments(seg); err != nil {
			return nil, err.WithTemplate(source).WithSegment(i, part)
		}

		t.segments = append(t.segments, seg)
	}

	return t, nil
}

// parseSegment splits one segment into literal and placeholder tokens.
func parseSegment(raw string) (Segment, *errors.PathError) {
	var (
		tokens []Token
		lit    strings.Builder
	)

	flush := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, Literal(lit.String()))
			lit.Reset()
		}
	}

	for i := 0; i < len(raw); {
		switch raw[i] {
		case '{':
			end := strings.IndexByte(raw[i+1:], '}')
			if end < 0 {
				return Segment{}, malformed("unclosed '{'")
			}
			name := raw[i+1 : i+1+end]
			if name == "" {
				return Segment{}, malformed("empty placeholder '{}'")
			}
			if !isPlaceholderName(name) {
				return Segment{}, malformed(fmt.Sprintf("invalid placeholder name %q", name)).
					WithPlaceholder(name)
			}
			flush()
			tokens = append(tokens, Placeholder(name))
			i += end + 2
		case '}':
			return Segment{}, malformed("unmatched '}'")
		default:
			lit.WriteByte(raw[i])
			i++
		}
	}
	flush()

	if len(tokens) == 0 {
		tokens = []Token{Literal("")}
	}

	return Segment{Tokens: tokens}, nil
}

// checkFragments rejects forbidden characters in the literal parts of a
// segment that also holds placeholders. The full segment is validated once
// values are known.
func checkFragments(seg Segment) *errors.PathError {
	for _, tok := range seg.Tokens {
		if tok.Kind != TokenLiteral {
			continue
		}
		if r, ok := validation.ForbiddenRune(tok.Value); ok {
			return errors.NewValidationError(
				errors.ErrCodeIllegalCharacter,
				fmt.Sprintf("segment contains illegal character %q", r),
			).WithContext("rune", string(r))
		}
	}
	return nil
}

func isPlaceholderName(name string) bool {
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		default:
			return false
		}
	}
	return name != ""
}

func malformed(message string) *errors.PathError {
	return errors.NewTemplateError(errors.ErrCodeMalformedPlaceholder, message)
}

// annotate attaches the template position to a validator error.
func annotate(err error, source string, index int, segment string) error {
	pe := errors.Root(err)
	if pe == nil {
		return errors.WrapInternal(err, "unexpected validator error")
	}
	return pe.WithTemplate(source).WithSegment(index, segment)
}
