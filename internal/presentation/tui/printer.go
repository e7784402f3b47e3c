package tui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/muesli/termenv"
)

// Printer writes decode results and failures to a terminal.
type Printer struct {
	out   *termenv.Output
	w     io.Writer
	quote bool
}

// NewPrinter creates a printer for w. quote prints outputs as Go-quoted
// strings.
func NewPrinter(w io.Writer, noColor, quote bool) *Printer {
	return &Printer{out: NewOutput(w, noColor), w: w, quote: quote}
}

// Result prints a decoded output on its own line.
func (p *Printer) Result(output string) {
	if p.quote {
		output = strconv.Quote(output)
	}
	fmt.Fprintln(p.w, p.out.String(output).Bold())
}

// Check prints the outcome of validating one input.
func (p *Printer) Check(input string, err error) {
	if err != nil {
		mark := p.out.String("✗").Foreground(p.out.Color("#f87171"))
		fmt.Fprintf(p.w, "%s %s: %v\n", mark, input, err)
		return
	}
	mark := p.out.String("✓").Foreground(p.out.Color("#4ade80"))
	fmt.Fprintf(p.w, "%s %s\n", mark, input)
}

// Error prints a failure message.
func (p *Printer) Error(err error) {
	fmt.Fprintln(p.w, p.out.String("Error: "+err.Error()).Foreground(p.out.Color("#f87171")))
}
