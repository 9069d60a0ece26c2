package io

import (
	"io"
	"iter"
	"maps"
)

const hexDigits = "0123456789ABCDEF"

// Tape is an output only stream of hex digits, one per value, wrapping
// an io.Writer. Digits are followed by Separator, if non-zero.
type Tape struct {
	Output    io.Writer
	Separator byte

	written int
}

var _ Channel = (*Tape)(nil)

// Defines returns an iter of defines for the channel.
func (tc *Tape) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{})
}

// Rewind is not possible on a tape.
func (tc *Tape) Rewind() {
}

// Written returns the number of values written to the tape.
func (tc *Tape) Written() int {
	return tc.written
}

// Receive yields nothing, there is no tape input.
func (tc *Tape) Receive() iter.Seq[uint8] {
	return func(yield func(value uint8) bool) {}
}

// Send writes a value as a hex digit to the output stream.
// Values are discarded if no output is attached.
func (tc *Tape) Send(value uint8) (err error) {
	if tc.Output == nil {
		return
	}

	out := []byte{hexDigits[value&NIBBLE_MASK]}
	if tc.Separator != 0 {
		out = append(out, tc.Separator)
	}

	_, err = tc.Output.Write(out)
	if err != nil {
		return
	}

	tc.written++

	return
}
