// Package io provides board-side channel implementations for the nibble emulator.
// It includes an operand ROM (Rom) presented on the input pins during fetch,
// a bounded capture buffer (Temporary), and a hex digit stream (Tape).
package io

import (
	"iter"
)

// NIBBLE_MASK is the mask of the bits a channel carries.
const NIBBLE_MASK = uint8(0xf)

// Channel defines the interface for all board channels in the nibble system.
// Channels carry 4-bit values.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Receive returns an iterator that yields values from the channel.
	Receive() iter.Seq[uint8]
	// Send writes a single value to the channel.
	Send(value uint8) error
}
