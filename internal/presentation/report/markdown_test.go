package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/levelance/pkg/domain"
)

func TestMarkdown(t *testing.T) {
	g := domain.Group{Symbols: [3]domain.Symbol{domain.SymbolA, domain.SymbolX, domain.SymbolW}}
	md := Markdown("LPSAXWLP", "4", []domain.Trace{g.Trace(8)})

	assert.Contains(t, md, "# `LPSAXWLP`")
	assert.Contains(t, md, "Output: `4`")
	assert.Contains(t, md, "Total length: **8**")
	assert.Contains(t, md, "## Group 1: `AXW` -> 4")
	assert.Contains(t, md, "| 1 | X | 1 | 2 | bonus-if-odd |")
	assert.Contains(t, md, "| 0 | A | 0 | 1 | - |")
	assert.Contains(t, md, "Parity: odd, bonus: +1, digit: **4**")
}

func TestMarkdown_Empty(t *testing.T) {
	md := Markdown("LPS..LP", "..", nil)
	assert.Contains(t, md, "_No symbol groups._")
}
