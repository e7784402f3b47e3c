/*
Package domain contains the core model of the Levelance decoder.

It defines the symbol alphabet and its arithmetic rules, the three-symbol
Group and its evaluation to a digit, the token stream produced by the
tokenizer and the decoded result. The package is pure: no I/O, no logging,
no global mutable state.

# Key Entities

  - Symbol: one of 26 letters, each with a fixed rule (see Symbol.Apply).
  - Group: three symbols reduced to a single digit (see Group.Evaluate).
  - Stream: ordered groups and delimiter markers plus the input's TotalLength.
  - Decoded: one rendered piece per token, in input order.
*/
package domain
