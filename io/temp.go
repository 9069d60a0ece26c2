package io

import (
	"iter"
	"maps"
	"strconv"
)

// Temporary is a bounded FIFO of captured values.
// Values are truncated to a nibble on Send.
type Temporary struct {
	Capacity int // Maximum number of values held.

	head   int
	size   int
	buffer []uint8
}

var _ Channel = (*Temporary)(nil)

// Defines returns an iter of defines for the channel.
func (temp *Temporary) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"TEMP_CAPACITY": strconv.Itoa(temp.Capacity),
	})
}

// Len returns the number of values waiting to be received.
func (temp *Temporary) Len() int {
	return temp.size
}

// Rewind empties the buffer, and resizes it to Capacity.
func (temp *Temporary) Rewind() {
	temp.head = 0
	temp.size = 0
	if len(temp.buffer) != temp.Capacity {
		temp.buffer = make([]uint8, temp.Capacity)
	}
}

// Peek returns the oldest value without removing it.
func (temp *Temporary) Peek() (value uint8, ok bool) {
	if temp.size == 0 {
		return
	}

	value = temp.buffer[temp.head]
	ok = true

	return
}

// Receive returns an iterator that removes values, oldest first, until empty.
func (temp *Temporary) Receive() iter.Seq[uint8] {
	return func(yield func(value uint8) bool) {
		for temp.size > 0 {
			value := temp.buffer[temp.head]
			temp.head = (temp.head + 1) % len(temp.buffer)
			temp.size--
			if !yield(value) {
				return
			}
		}
	}
}

// Send appends a value.
// Returns ErrChannelFull if Capacity values are already held.
func (temp *Temporary) Send(value uint8) (err error) {
	if temp.size >= temp.Capacity {
		err = ErrChannelFull
		return
	}

	if len(temp.buffer) != temp.Capacity {
		temp.Rewind()
	}

	tail := (temp.head + temp.size) % len(temp.buffer)
	temp.buffer[tail] = value & NIBBLE_MASK
	temp.size++

	return
}
