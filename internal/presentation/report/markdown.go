package report

import (
	"fmt"
	"strings"

	"github.com/aretw0/levelance/pkg/domain"
)

// Markdown renders the evaluation traces of input as a markdown document:
// one section per group with a table of symbol steps.
func Markdown(input, output string, traces []domain.Trace) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# `%s`\n\n", input)
	fmt.Fprintf(&sb, "Output: `%s`\n\n", output)
	if len(traces) == 0 {
		sb.WriteString("_No symbol groups._\n")
		return sb.String()
	}
	fmt.Fprintf(&sb, "Total length: **%d**\n\n", traces[0].TotalLength)

	for i, tr := range traces {
		fmt.Fprintf(&sb, "## Group %d: `%s` -> %d\n\n", i+1, tr.Group, tr.Digit)
		sb.WriteString("| Pos | Symbol | Before | After | Flag |\n")
		sb.WriteString("|---|---|---|---|---|\n")
		for _, st := range tr.Steps {
			flag := st.Flag
			if flag == "" {
				flag = "-"
			}
			fmt.Fprintf(&sb, "| %d | %s | %d | %d | %s |\n", st.Position, st.Symbol, st.Before, st.After, flag)
		}

		parity := "odd"
		if tr.Even {
			parity = "even"
		}
		fmt.Fprintf(&sb, "\nParity: %s, bonus: +%d, digit: **%d**\n\n", parity, tr.Bonus, tr.Digit)
	}
	return sb.String()
}
