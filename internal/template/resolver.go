package template

import (
	"fmt"
	"sort"
	"strings"

	"github.com/conneroisu/pathreg/internal/errors"
	"github.com/conneroisu/pathreg/internal/validation"
)

// Values maps placeholder names to substitution values.
type Values map[string]string

// Resolve substitutes values into the template and returns the validated
// relative path joined with Separator.
//
// Values that no placeholder refers to are ignored. Each value is opaque: a
// value containing a separator is rejected, never split into segments.
func (t *Template) Resolve(values Values) (string, error) {
	segments, err := t.ResolveSegments(values)
	if err != nil {
		return "", err
	}
	return strings.Join(segments, Separator), nil
}

// ResolveSegments is like Resolve but returns the validated segments.
func (t *Template) ResolveSegments(values Values) ([]string, error) {
	out := make([]string, len(t.segments))

	for i, seg := range t.segments {
		if seg.IsStatic() {
			// Validated and normalized by Parse.
			out[i] = seg.literal()
			continue
		}

		var b strings.Builder
		for _, tok := range seg.Tokens {
			switch tok.Kind {
			case TokenLiteral:
				b.WriteString(tok.Value)
			case TokenPlaceholder:
				value, ok := values[tok.Value]
				if !ok {
					return nil, errors.ErrMissingValueFor(tok.Value).
						WithTemplate(t.source).
						WithSegment(i, seg.String())
				}
				b.WriteString(value)
			default:
				panic(fmt.Sprintf("template: corrupted token kind %d in %q", tok.Kind, t.source))
			}
		}

		resolved, err := validation.ValidateSegment(b.String())
		if err != nil {
			return nil, annotate(err, t.source, i, b.String())
		}
		out[i] = resolved
	}

	return out, nil
}

// Unused returns the sorted names in values that the template does not
// reference. Resolve ignores them.
func (t *Template) Unused(values Values) []string {
	var unused []string
	for name := range values {
		if !t.has(name) {
			unused = append(unused, name)
		}
	}
	sort.Strings(unused)
	return unused
}

func (t *Template) has(name string) bool {
	for _, p := range t.placeholders {
		if p == name {
			return true
		}
	}
	return false
}
