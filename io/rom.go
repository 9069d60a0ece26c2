package io

import (
	"iter"
	"maps"
	"strconv"
)

// ROM_SIZE is the number of operands a Rom can present.
const ROM_SIZE = 16

// Rom is a read-only operand store, addressed by the program counter.
type Rom struct {
	Data [ROM_SIZE]uint8
}

var _ Channel = (*Rom)(nil)

// Defines returns an iter of defines for the channel.
func (rc *Rom) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"ROM_SIZE": strconv.Itoa(ROM_SIZE),
	})
}

// Rewind is not required on a rom.
func (rc *Rom) Rewind() {
}

// Fetch returns the operand at an address. The address wraps.
func (rc *Rom) Fetch(addr uint8) uint8 {
	return rc.Data[int(addr)%ROM_SIZE] & NIBBLE_MASK
}

// Receive returns an iterator that yields every operand in address order.
func (rc *Rom) Receive() iter.Seq[uint8] {
	return func(yield func(value uint8) bool) {
		for addr := range ROM_SIZE {
			if !yield(rc.Fetch(uint8(addr))) {
				return
			}
		}
	}
}

// Send is not possible on a rom.
func (rc *Rom) Send(value uint8) error {
	return ErrChannelFull
}
