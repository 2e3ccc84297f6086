package template

import "strings"

// TokenKind distinguishes literal text from placeholders.
type TokenKind int

const (
	TokenLiteral TokenKind = iota
	TokenPlaceholder
)

// String returns the string representation of the token kind
func (k TokenKind) String() string {
	switch k {
	case TokenLiteral:
		return "literal"
	case TokenPlaceholder:
		return "placeholder"
	default:
		return "unknown"
	}
}

// Token is one piece of a segment. For placeholders Value is the name.
type Token struct {
	Kind  TokenKind
	Value string
}

// Literal returns a literal token.
func Literal(text string) Token {
	return Token{Kind: TokenLiteral, Value: text}
}

// Placeholder returns a placeholder token.
func Placeholder(name string) Token {
	return Token{Kind: TokenPlaceholder, Value: name}
}

// String renders the token in template syntax.
func (t Token) String() string {
	if t.Kind == TokenPlaceholder {
		return "{" + t.Value + "}"
	}
	return t.Value
}

// Segment is the token sequence between two separators.
type Segment struct {
	Tokens []Token
}

// IsStatic reports whether the segment has no placeholders.
func (s Segment) IsStatic() bool {
	for _, tok := range s.Tokens {
		if tok.Kind == TokenPlaceholder {
			return false
		}
	}
	return true
}

// String renders the segment in template syntax.
func (s Segment) String() string {
	var b strings.Builder
	for _, tok := range s.Tokens {
		b.WriteString(tok.String())
	}
	return b.String()
}

func (s Segment) literal() string {
	var b strings.Builder
	for _, tok := range s.Tokens {
		b.WriteString(tok.Value)
	}
	return b.String()
}
