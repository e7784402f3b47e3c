package tokenizer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/aretw0/levelance/pkg/domain"
)

// bodyLexer splits a body into single-character lexemes.
// Other catches everything outside the alphabet so the scanner can report it.
var bodyLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Symbol", Pattern: `[A-Z]`},
	{Name: "Delimiter", Pattern: `\.`},
	{Name: "Other", Pattern: `[\s\S]`},
})

var (
	symbolType    = bodyLexer.Symbols()["Symbol"]
	delimiterType = bodyLexer.Symbols()["Delimiter"]
)

// Tokenizer converts raw input into a token stream.
type Tokenizer struct {
	delimiters bool
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithDelimiters toggles support for the pass-through delimiter.
// When disabled, '.' is an ordinary invalid character.
func WithDelimiters(enabled bool) Option {
	return func(t *Tokenizer) {
		t.delimiters = enabled
	}
}

// New creates a tokenizer. Delimiter support is on by default.
func New(opts ...Option) *Tokenizer {
	t := &Tokenizer{delimiters: true}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Delimiters reports whether delimiter support is enabled.
func (t *Tokenizer) Delimiters() bool {
	return t.delimiters
}

// Tokenize validates the envelope and splits the body into groups and
// delimiter markers.
func (t *Tokenizer) Tokenize(input string) (domain.Stream, error) {
	stripped := input
	if t.delimiters {
		stripped = strings.ReplaceAll(input, string(domain.Delimiter), "")
	}
	total := utf8.RuneCountInString(stripped)

	if total < domain.MinLength {
		return domain.Stream{}, &domain.LengthError{Input: input, Length: total, Minimum: domain.MinLength}
	}
	if !strings.HasPrefix(input, domain.StartMarker) || !strings.HasSuffix(input, domain.EndMarker) {
		return domain.Stream{}, &domain.EnvelopeError{Input: input}
	}

	body := input[len(domain.StartMarker) : len(input)-len(domain.EndMarker)]
	if err := t.checkSpans(body); err != nil {
		return domain.Stream{}, err
	}

	tokens, err := t.scan(body)
	if err != nil {
		return domain.Stream{}, err
	}
	return domain.Stream{Tokens: tokens, TotalLength: total}, nil
}

func (t *Tokenizer) checkSpans(body string) error {
	spans := []string{body}
	if t.delimiters {
		spans = strings.Split(body, string(domain.Delimiter))
	}

	var bad []string
	for _, span := range spans {
		if utf8.RuneCountInString(span)%domain.GroupSize != 0 {
			bad = append(bad, span)
		}
	}
	if len(bad) > 0 {
		return &domain.GroupLengthError{Spans: bad}
	}
	return nil
}

func (t *Tokenizer) scan(body string) ([]domain.Token, error) {
	lex, err := bodyLexer.LexString("", body)
	if err != nil {
		return nil, fmt.Errorf("lex body: %w", err)
	}
	lexemes, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, fmt.Errorf("lex body: %w", err)
	}

	var (
		tokens  []domain.Token
		pending bool
		buf     [domain.GroupSize]domain.Symbol
		n       int
	)
	offset := len(domain.StartMarker)

	for _, lx := range lexemes {
		if lx.EOF() {
			break
		}
		switch {
		case lx.Type == delimiterType && t.delimiters:
			if pending {
				tokens = append(tokens, domain.Token{Kind: domain.TokenDelimiter})
			}
			pending = true
		case lx.Type == symbolType:
			r, _ := utf8.DecodeRuneInString(lx.Value)
			s, _ := domain.ParseSymbol(r)
			buf[n] = s
			n++
			if n == domain.GroupSize {
				tokens = append(tokens, domain.Token{
					Kind:  domain.TokenGroup,
					Group: domain.Group{Symbols: buf, Delimited: pending},
				})
				n = 0
				pending = false
			}
		default:
			r, _ := utf8.DecodeRuneInString(lx.Value)
			return nil, &domain.SymbolError{Char: r, Offset: offset + lx.Pos.Offset}
		}
	}

	if pending {
		tokens = append(tokens, domain.Token{Kind: domain.TokenDelimiter})
	}
	return tokens, nil
}
