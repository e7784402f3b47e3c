package runtime

import (
	"log/slog"

	"github.com/aretw0/levelance/internal/logging"
	"github.com/aretw0/levelance/internal/tokenizer"
	"github.com/aretw0/levelance/pkg/domain"
)

// Decoder runs the tokenizer and evaluates every group it produces.
type Decoder struct {
	tokenizer *tokenizer.Tokenizer
	logger    *slog.Logger
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) DecoderOption {
	return func(d *Decoder) {
		d.logger = logger
	}
}

// WithTokenizer replaces the default (delimiter-aware) tokenizer.
func WithTokenizer(t *tokenizer.Tokenizer) DecoderOption {
	return func(d *Decoder) {
		d.tokenizer = t
	}
}

// NewDecoder creates a decoder with the given options.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{
		tokenizer: tokenizer.New(),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Mode reports which tokenizer configuration the decoder uses.
func (d *Decoder) Mode() domain.Mode {
	if d.tokenizer.Delimiters() {
		return domain.ModeDelimited
	}
	return domain.ModeStrict
}

// Decode tokenizes input and renders one piece per token.
// Tokenizer errors are returned unchanged.
func (d *Decoder) Decode(input string) (domain.Decoded, error) {
	stream, err := d.tokenizer.Tokenize(input)
	if err != nil {
		d.logger.Debug("tokenize failed", "input_len", len(input), "error", err)
		return domain.Decoded{}, err
	}

	pieces := make([]domain.Piece, 0, len(stream.Tokens))
	for _, tok := range stream.Tokens {
		switch tok.Kind {
		case domain.TokenDelimiter:
			pieces = append(pieces, domain.Piece{Kind: domain.TokenDelimiter})
		case domain.TokenGroup:
			pieces = append(pieces, domain.Piece{
				Kind:      domain.TokenGroup,
				Digit:     tok.Group.Evaluate(stream.TotalLength),
				Delimited: tok.Group.Delimited,
			})
		}
	}

	d.logger.Debug("decoded",
		"input_len", len(input),
		"total_length", stream.TotalLength,
		"tokens", len(stream.Tokens),
	)
	return domain.Decoded{Pieces: pieces, TotalLength: stream.TotalLength}, nil
}

// Explain returns the evaluation trace of every group in input order.
func (d *Decoder) Explain(input string) ([]domain.Trace, error) {
	stream, err := d.tokenizer.Tokenize(input)
	if err != nil {
		return nil, err
	}

	groups := stream.Groups()
	traces := make([]domain.Trace, 0, len(groups))
	for _, g := range groups {
		traces = append(traces, g.Trace(stream.TotalLength))
	}
	return traces, nil
}

// DecodeDigits returns only the group digits of input, in order.
func (d *Decoder) DecodeDigits(input string) ([]int, error) {
	decoded, err := d.Decode(input)
	if err != nil {
		return nil, err
	}
	return decoded.Digits(), nil
}
