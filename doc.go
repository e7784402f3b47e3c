/*
Package levelance decodes strings in the Levelance envelope format into
decimal digits.

A Levelance string is a body wrapped in the fixed markers "LPS" and "LP". The
body is a sequence of three-letter symbol groups, optionally separated by the
pass-through delimiter '.'. Every group is run through a per-letter arithmetic
rule table and reduced to one digit; delimiters are copied to the output.

	LPSAAA.BBBLP  ->  3.0

# Concept

Decoding is a pure function of the input. The Engine adds the infrastructure a
host usually wants around it: structured logging, lifecycle hooks for
metrics, and an optional result cache (in memory or Redis). Adapters expose the
same engine over HTTP (pkg/adapters/http) and the Model Context Protocol
(pkg/adapters/mcp).

# Key Features

  - Deterministic Decoding: the same input always yields the same output.
  - Typed Failures: every error unwraps to one of domain.ErrTooShort,
    domain.ErrBadEnvelope, domain.ErrBadGroupLength or domain.ErrInvalidSymbol.
  - Strict Mode: WithStrict(true) disables delimiter support.
  - Explain: Engine.Explain returns the step by step evaluation of every group.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/levelance"
	)

	func main() {
		eng := levelance.New()

		res, err := eng.Decode(context.Background(), "LPS.AAA..LP")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(res.Output) // .3..
	}
*/
package levelance
