package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/levelance/pkg/domain"
)

func group(s string) domain.Group {
	var g domain.Group
	for i := range g.Symbols {
		g.Symbols[i] = domain.Symbol(s[i])
	}
	return g
}

func TestGroupEvaluate(t *testing.T) {
	// A bare group inside the envelope has TotalLength 8.
	tests := map[string]int{
		"AAA": 3,
		"BBB": 0,
		"ZZZ": 0,
		"AXW": 4,
		"WWB": 2,
		"XXB": 2,
		"XAX": 5,
		"WAB": 7,
		"WXB": 7,
		"ABU": 6,
		"NUB": 4,
		"GNV": 0,
		"AYY": 9,
		"YVA": 3,
	}

	for symbols, want := range tests {
		t.Run(symbols, func(t *testing.T) {
			assert.Equal(t, want, group(symbols).Evaluate(8))
		})
	}
}

func TestGroupTrace(t *testing.T) {
	tr := group("WXB").Trace(8)

	assert.Equal(t, "WXB", tr.Group)
	assert.Len(t, tr.Steps, 3)
	assert.Equal(t, 0, tr.Steps[0].Before)
	assert.Equal(t, 1, tr.Steps[0].After)
	assert.Equal(t, "bonus-if-even", tr.Steps[0].Flag)
	assert.Equal(t, "bonus-if-odd", tr.Steps[1].Flag)
	assert.Empty(t, tr.Steps[2].Flag)
	// acc is 2 after the arithmetic pass; only the even bonus fires.
	assert.True(t, tr.Even)
	assert.Equal(t, 5, tr.Bonus)
	assert.Equal(t, 7, tr.Digit)
}

func TestGroupEvaluate_BonusesStack(t *testing.T) {
	// W W B: acc 2, even, two +5 bonuses -> 12 -> 2.
	tr := group("WWB").Trace(8)
	assert.Equal(t, 10, tr.Bonus)
	assert.Equal(t, 2, tr.Digit)
}

func TestGroupEvaluate_DigitRange(t *testing.T) {
	symbols := domain.Symbols()
	for _, a := range symbols {
		for _, b := range symbols {
			for _, c := range symbols {
				g := domain.Group{Symbols: [3]domain.Symbol{a, b, c}}
				for _, total := range []int{5, 8, 11, 29} {
					d := g.Evaluate(total)
					if d < 0 || d > 9 {
						t.Fatalf("%s with total %d gave %d", g, total, d)
					}
				}
			}
		}
	}
}

func TestDecodedRender(t *testing.T) {
	d := domain.Decoded{Pieces: []domain.Piece{
		{Kind: domain.TokenDelimiter},
		{Kind: domain.TokenGroup, Digit: 3},
		{Kind: domain.TokenGroup, Digit: 0, Delimited: true},
		{Kind: domain.TokenDelimiter},
	}}

	assert.Equal(t, ".3.0.", d.String())
	assert.Equal(t, []int{3, 0}, d.Digits())
}
