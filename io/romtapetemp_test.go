package io

import (
	"bytes"
	"errors"
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRom_Fetch(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{}
	rom.Data[0] = 5
	rom.Data[1] = 3
	rom.Data[15] = 0xfa

	assert.Equal(uint8(5), rom.Fetch(0))
	assert.Equal(uint8(3), rom.Fetch(1))
	assert.Equal(uint8(0), rom.Fetch(2))
	assert.Equal(uint8(0xa), rom.Fetch(15))

	// Addresses wrap.
	assert.Equal(uint8(5), rom.Fetch(16))
	assert.Equal(uint8(3), rom.Fetch(17))
}

func TestRom_Receive(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{}
	for n := range ROM_SIZE {
		rom.Data[n] = uint8(ROM_SIZE - 1 - n)
	}

	values := slices.Collect(rom.Receive())
	assert.Len(values, ROM_SIZE)
	assert.Equal(uint8(15), values[0])
	assert.Equal(uint8(0), values[15])
}

func TestRom_Receive_EarlyStop(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{}

	count := 0
	for range rom.Receive() {
		count++
		if count == 10 {
			break
		}
	}

	assert.Equal(10, count)
}

func TestRom_Send(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{}
	err := rom.Send(1)
	assert.Equal(ErrChannelFull, err)
}

func TestTape_Send(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	tape := &Tape{Output: output}

	for _, value := range []uint8{0, 8, 0xa, 0x1f} {
		err := tape.Send(value)
		assert.NoError(err)
	}

	assert.Equal("08AF", output.String())
	assert.Equal(4, tape.Written())
}

func TestTape_Send_Separator(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	tape := &Tape{Output: output, Separator: '\n'}

	tape.Send(1)
	tape.Send(2)

	assert.Equal("1\n2\n", output.String())
}

func TestTape_Send_NoOutput(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{}
	err := tape.Send(7)
	assert.NoError(err)
	assert.Equal(0, tape.Written())
}

type failWriter struct{}

var errFail = errors.New("write failed")

func (failWriter) Write(p []byte) (int, error) {
	return 0, errFail
}

func TestTape_Send_WriteError(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Output: failWriter{}}
	err := tape.Send(7)
	assert.ErrorIs(err, errFail)
	assert.Equal(0, tape.Written())
}

func TestTape_Receive(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{}
	tape.Rewind()
	assert.Empty(slices.Collect(tape.Receive()))
}

func TestTemporary_Rewind(t *testing.T) {
	assert := assert.New(t)

	temp := &Temporary{Capacity: 4}
	temp.Rewind()
	assert.NoError(temp.Send(1))
	assert.NoError(temp.Send(2))
	assert.Equal(2, temp.Len())

	temp.Rewind()
	assert.Equal(0, temp.Len())
	assert.Empty(slices.Collect(temp.Receive()))

	// Capacity changes take effect on rewind.
	temp.Capacity = 1
	temp.Rewind()
	assert.NoError(temp.Send(3))
	assert.Equal(ErrChannelFull, temp.Send(4))
}

func TestTemporary_Send_Receive(t *testing.T) {
	assert := assert.New(t)

	temp := &Temporary{Capacity: 8}
	temp.Rewind()

	for _, value := range []uint8{8, 0, 0x1f, 3} {
		err := temp.Send(value)
		assert.NoError(err)
	}

	assert.Equal(4, temp.Len())

	values := slices.Collect(temp.Receive())
	assert.Equal([]uint8{8, 0, 0xf, 3}, values)
	assert.Equal(0, temp.Len())
}

func TestTemporary_Send_NoRewind(t *testing.T) {
	assert := assert.New(t)

	temp := &Temporary{Capacity: 2}
	err := temp.Send(4)
	assert.NoError(err)
	assert.Equal([]uint8{4}, slices.Collect(temp.Receive()))
}

func TestTemporary_Send_CapacityFull(t *testing.T) {
	assert := assert.New(t)

	temp := &Temporary{Capacity: 3}
	temp.Rewind()

	assert.NoError(temp.Send(1))
	assert.NoError(temp.Send(2))
	assert.NoError(temp.Send(3))

	err := temp.Send(4)
	assert.Equal(ErrChannelFull, err)
	assert.Equal(3, temp.Len())
}

func TestTemporary_ZeroCapacity(t *testing.T) {
	assert := assert.New(t)

	temp := &Temporary{}
	temp.Rewind()
	assert.Equal(ErrChannelFull, temp.Send(1))
}

func TestTemporary_Peek(t *testing.T) {
	assert := assert.New(t)

	temp := &Temporary{Capacity: 2}
	temp.Rewind()

	_, ok := temp.Peek()
	assert.False(ok)

	temp.Send(9)
	value, ok := temp.Peek()
	assert.True(ok)
	assert.Equal(uint8(9), value)
	assert.Equal(1, temp.Len())
}

func TestTemporary_WrapAround(t *testing.T) {
	assert := assert.New(t)

	temp := &Temporary{Capacity: 4}
	temp.Rewind()

	temp.Send(1)
	temp.Send(2)
	temp.Send(3)
	temp.Send(4)

	pull, stop := iter.Pull(temp.Receive())
	value, ok := pull()
	assert.True(ok)
	assert.Equal(uint8(1), value)
	value, ok = pull()
	assert.True(ok)
	assert.Equal(uint8(2), value)
	stop()

	assert.NoError(temp.Send(5))
	assert.NoError(temp.Send(6))
	assert.Equal(4, temp.Len())

	values := slices.Collect(temp.Receive())
	assert.Equal([]uint8{3, 4, 5, 6}, values)
}

func TestTemporary_Receive_EarlyStop(t *testing.T) {
	assert := assert.New(t)

	temp := &Temporary{Capacity: 8}
	temp.Rewind()

	temp.Send(1)
	temp.Send(2)
	temp.Send(3)
	temp.Send(4)

	count := 0
	for range temp.Receive() {
		count++
		if count == 2 {
			break
		}
	}

	assert.Equal(2, count)
	assert.Equal(2, temp.Len())
}
