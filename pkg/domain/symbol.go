package domain

import "fmt"

// Symbol is one of the 26 letters a Levelance body may contain.
type Symbol byte

const (
	SymbolA Symbol = 'A' + iota
	SymbolB
	SymbolC
	SymbolD
	SymbolE
	SymbolF
	SymbolG
	SymbolH
	SymbolI
	SymbolJ
	SymbolK
	SymbolL
	SymbolM
	SymbolN
	SymbolO
	SymbolP
	SymbolQ
	SymbolR
	SymbolS
	SymbolT
	SymbolU
	SymbolV
	SymbolW
	SymbolX
	SymbolY
	SymbolZ
)

// Flag is a deferred post-pass adjustment raised by a symbol.
type Flag int

const (
	FlagNone Flag = iota
	// FlagBonusIfEven adds 5 when the group parity is even.
	FlagBonusIfEven
	// FlagBonusIfOdd adds 1 when the group parity is odd.
	FlagBonusIfOdd
)

func (f Flag) String() string {
	switch f {
	case FlagBonusIfEven:
		return "bonus-if-even"
	case FlagBonusIfOdd:
		return "bonus-if-odd"
	default:
		return ""
	}
}

// ParseSymbol maps a character to its Symbol.
func ParseSymbol(r rune) (Symbol, bool) {
	if r < 'A' || r > 'Z' {
		return 0, false
	}
	return Symbol(r), true
}

// Symbols returns the full alphabet in order.
func Symbols() []Symbol {
	all := make([]Symbol, 0, 26)
	for s := SymbolA; s <= SymbolZ; s++ {
		all = append(all, s)
	}
	return all
}

func (s Symbol) String() string {
	return string(rune(s))
}

// Apply runs the symbol's rule against acc.
// position is the 0-based slot within the group and must be 0, 1 or 2.
func (s Symbol) Apply(acc, position, totalLength int) (int, Flag) {
	pos := position + 1
	revPos := 3 - position

	switch s {
	case SymbolA:
		return acc + 1, FlagNone
	case SymbolB:
		return acc, FlagNone
	case SymbolC:
		return acc - 1, FlagNone
	case SymbolD:
		return acc * 2, FlagNone
	case SymbolE:
		return acc * acc, FlagNone
	case SymbolF:
		if position == 0 {
			return acc - 1, FlagNone
		}
		return acc + 1, FlagNone
	case SymbolG:
		return acc + 5, FlagNone
	case SymbolH:
		return 5, FlagNone
	case SymbolI:
		return acc + pos, FlagNone
	case SymbolJ:
		return acc + totalLength, FlagNone
	case SymbolK:
		return acc - totalLength, FlagNone
	case SymbolL:
		return pos + acc - totalLength, FlagNone
	case SymbolM:
		return acc * totalLength, FlagNone
	case SymbolN:
		return acc + 2, FlagNone
	case SymbolO:
		return acc - pos, FlagNone
	case SymbolP:
		return acc + revPos, FlagNone
	case SymbolQ:
		return acc - revPos, FlagNone
	case SymbolR:
		return acc + revPos + totalLength, FlagNone
	case SymbolS:
		return acc + revPos - totalLength, FlagNone
	case SymbolT:
		return acc + pos + 1, FlagNone
	case SymbolU:
		// Single form; ABU and NUB vectors rule out the doubled accumulator.
		return acc + (revPos - totalLength), FlagNone
	case SymbolV:
		return acc - 7, FlagNone
	case SymbolW:
		return acc + 1, FlagBonusIfEven
	case SymbolX:
		return acc + 1, FlagBonusIfOdd
	case SymbolY:
		if acc == 0 {
			return 9, FlagNone
		}
		return 0, FlagNone
	case SymbolZ:
		return 0, FlagNone
	}
	panic(fmt.Sprintf("levelance: symbol %q outside alphabet", rune(s)))
}

// Rule describes a symbol's effect in human terms.
type Rule struct {
	Symbol string `json:"symbol"`
	Effect string `json:"effect"`
	Flag   string `json:"flag,omitempty"`
}

// Rules returns the rule table, one entry per symbol.
func Rules() []Rule {
	rules := make([]Rule, 0, 26)
	for _, s := range Symbols() {
		_, flag := s.Apply(0, 0, 0)
		rules = append(rules, Rule{Symbol: s.String(), Effect: ruleEffects[s-SymbolA], Flag: flag.String()})
	}
	return rules
}

var ruleEffects = [26]string{
	"+1",
	"no change",
	"-1",
	"x2",
	"square",
	"-1 at position 0, else +1",
	"+5",
	"set to 5",
	"+pos",
	"+total",
	"-total",
	"set to pos + acc - total",
	"x total",
	"+2",
	"-pos",
	"+revPos",
	"-revPos",
	"+(revPos + total)",
	"+(revPos - total)",
	"+(pos + 1)",
	"set to acc + (revPos - total)",
	"-7",
	"+1",
	"+1",
	"9 if acc is 0, else 0",
	"set to 0",
}
