package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOp_String(t *testing.T) {
	assert := assert.New(t)

	names := []string{
		"nop", "load", "add", "sub", "and", "or", "xor", "shl",
		"shr", "cmp", "jmp", "jz", "store", "loam", "out", "halt",
	}
	for n, name := range names {
		assert.Equal(name, CodeOp(n).String())
	}
	assert.Equal("CodeOp(16)", CodeOp(16).String())
}

func TestPhase_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("fetch", PHASE_FETCH.String())
	assert.Equal("decode", PHASE_DECODE.String())
	assert.Equal("execute", PHASE_EXECUTE.String())
	assert.Equal("writeback", PHASE_WRITEBACK.String())
	assert.Equal("Phase(4)", Phase(4).String())
}

func TestCode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		code  Code
		value uint8
		text  string
	}){
		{Code{OP_LOAD, 5}, 0x51, "load 5"},
		{Code{OP_ADD, 3}, 0x32, "add 3"},
		{Code{OP_JZ, 15}, 0xfb, "jz 15"},
		{Code{OP_OUT, 0}, 0x0e, "out"},
		{Code{OP_HALT, 0}, 0x0f, "halt"},
		{Code{OP_SHL, 4}, 0x47, "shl"},
	}

	for _, entry := range table {
		assert.Equal(entry.value, entry.code.Byte(), entry.text)
		assert.Equal(entry.code, DecodeCode(entry.value), entry.text)
		assert.Equal(entry.text, entry.code.String())
	}
}

func TestMakeCode(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(Code{OP_STORE, 2}, MakeCode(OP_STORE, 0x12))
	assert.Equal(Code{OP_LOAD, 0}, MakeCode(CodeOp(0x11), 0x10))
	assert.Equal(Nibble(0xd), MakeNibble(0xfd))
}

func TestCodeOp_UsesOperand(t *testing.T) {
	assert := assert.New(t)

	for _, op := range []CodeOp{OP_NOP, OP_SHL, OP_SHR, OP_OUT, OP_HALT} {
		assert.False(op.UsesOperand(), op.String())
	}
	for _, op := range []CodeOp{OP_LOAD, OP_ADD, OP_SUB, OP_AND, OP_OR, OP_XOR, OP_CMP, OP_JMP, OP_JZ, OP_STORE, OP_LOAM} {
		assert.True(op.UsesOperand(), op.String())
	}
}
