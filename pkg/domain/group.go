package domain

import "strconv"

// GroupSize is the number of symbols decoded together into one digit.
const GroupSize = 3

// Group is a triple of symbols, optionally preceded by a delimiter.
type Group struct {
	Symbols   [GroupSize]Symbol
	Delimited bool
}

func (g Group) String() string {
	b := make([]byte, 0, GroupSize)
	for _, s := range g.Symbols {
		b = append(b, byte(s))
	}
	return string(b)
}

// Step records one symbol application within a group.
type Step struct {
	Symbol   string `json:"symbol"`
	Position int    `json:"position"`
	Before   int    `json:"before"`
	After    int    `json:"after"`
	Flag     string `json:"flag,omitempty"`
}

// Trace is the full evaluation record of a group.
type Trace struct {
	Group       string `json:"group"`
	TotalLength int    `json:"total_length"`
	Steps       []Step `json:"steps"`
	Even        bool   `json:"even"`
	Bonus       int    `json:"bonus"`
	Digit       int    `json:"digit"`
}

// Trace evaluates the group and keeps every intermediate value.
func (g Group) Trace(totalLength int) Trace {
	t := Trace{
		Group:       g.String(),
		TotalLength: totalLength,
		Steps:       make([]Step, 0, GroupSize),
	}

	acc := 0
	var flags [GroupSize]Flag
	for i, s := range g.Symbols {
		before := acc
		acc, flags[i] = s.Apply(acc, i, totalLength)
		t.Steps = append(t.Steps, Step{
			Symbol:   s.String(),
			Position: i,
			Before:   before,
			After:    acc,
			Flag:     flags[i].String(),
		})
	}

	// Parity is frozen before any flag applies.
	t.Even = acc%2 == 0
	for _, f := range flags {
		switch f {
		case FlagBonusIfEven:
			if t.Even {
				t.Bonus += 5
			}
		case FlagBonusIfOdd:
			if !t.Even {
				t.Bonus++
			}
		case FlagNone:
		}
	}
	acc += t.Bonus

	digit := acc % 10
	if digit < 0 {
		digit = -digit
	}
	t.Digit = digit
	return t
}

// Evaluate reduces the group to a single digit in 0..9.
func (g Group) Evaluate(totalLength int) int {
	return g.Trace(totalLength).Digit
}

// Delimiter is the pass-through separator character.
const Delimiter = '.'

// TokenKind distinguishes groups from standalone delimiters.
type TokenKind int

const (
	TokenGroup TokenKind = iota
	TokenDelimiter
)

// Token is one element of a tokenized body.
type Token struct {
	Kind  TokenKind
	Group Group
}

// Stream is the tokenizer's output.
type Stream struct {
	Tokens      []Token
	TotalLength int
}

// Groups returns only the group tokens, in order.
func (s Stream) Groups() []Group {
	groups := make([]Group, 0, len(s.Tokens))
	for _, tok := range s.Tokens {
		if tok.Kind == TokenGroup {
			groups = append(groups, tok.Group)
		}
	}
	return groups
}

// Piece is the rendered result of a single token.
type Piece struct {
	Kind      TokenKind
	Digit     int
	Delimited bool
}

// Render returns the text a piece contributes to the output.
func (p Piece) Render() string {
	if p.Kind == TokenDelimiter {
		return string(Delimiter)
	}
	if p.Delimited {
		return string(Delimiter) + strconv.Itoa(p.Digit)
	}
	return strconv.Itoa(p.Digit)
}

// Decoded is the ordered result of decoding one input.
// It holds exactly one piece per token.
type Decoded struct {
	Pieces      []Piece
	TotalLength int
}

func (d Decoded) String() string {
	var b []byte
	for _, p := range d.Pieces {
		b = append(b, p.Render()...)
	}
	return string(b)
}

// Digits returns the group digits without delimiters.
func (d Decoded) Digits() []int {
	digits := make([]int, 0, len(d.Pieces))
	for _, p := range d.Pieces {
		if p.Kind == TokenGroup {
			digits = append(digits, p.Digit)
		}
	}
	return digits
}
