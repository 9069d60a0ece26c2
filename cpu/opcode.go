package cpu

import (
	"fmt"
)

// Nibble is a 4-bit value. It is the data, address and opcode width.
type Nibble uint8

const (
	NIBBLE_MASK = Nibble(0xf) // Mask of the valid nibble bits.
	MEMORY_SIZE = 16          // Number of words of internal memory.
)

// MakeNibble truncates a value to 4 bits.
func MakeNibble(value uint) Nibble {
	return Nibble(value) & NIBBLE_MASK
}

// CodeOp is an instruction opcode.
type CodeOp uint8

//go:generate go tool stringer -linecomment -type=CodeOp
const (
	OP_NOP   = CodeOp(0b0000) // nop
	OP_LOAD  = CodeOp(0b0001) // load
	OP_ADD   = CodeOp(0b0010) // add
	OP_SUB   = CodeOp(0b0011) // sub
	OP_AND   = CodeOp(0b0100) // and
	OP_OR    = CodeOp(0b0101) // or
	OP_XOR   = CodeOp(0b0110) // xor
	OP_SHL   = CodeOp(0b0111) // shl
	OP_SHR   = CodeOp(0b1000) // shr
	OP_CMP   = CodeOp(0b1001) // cmp
	OP_JMP   = CodeOp(0b1010) // jmp
	OP_JZ    = CodeOp(0b1011) // jz
	OP_STORE = CodeOp(0b1100) // store
	OP_LOAM  = CodeOp(0b1101) // loam
	OP_OUT   = CodeOp(0b1110) // out
	OP_HALT  = CodeOp(0b1111) // halt
)

// UsesOperand returns true if the opcode consumes the data register.
func (op CodeOp) UsesOperand() bool {
	switch op {
	case OP_LOAD, OP_ADD, OP_SUB, OP_AND, OP_OR, OP_XOR, OP_CMP,
		OP_JMP, OP_JZ, OP_STORE, OP_LOAM:
		return true
	}
	return false
}

// Phase is a pipeline phase.
type Phase uint8

//go:generate go tool stringer -linecomment -type=Phase
const (
	PHASE_FETCH     = Phase(0) // fetch
	PHASE_DECODE    = Phase(1) // decode
	PHASE_EXECUTE   = Phase(2) // execute
	PHASE_WRITEBACK = Phase(3) // writeback
)

// Code is a single instruction: an opcode and its operand.
type Code struct {
	Op      CodeOp
	Operand Nibble
}

// MakeCode creates an instruction, masking both fields to 4 bits.
func MakeCode(op CodeOp, operand uint) Code {
	return Code{
		Op:      CodeOp(MakeNibble(uint(op))),
		Operand: MakeNibble(operand),
	}
}

// DecodeCode splits an instruction byte, as presented on the input pins.
func DecodeCode(value uint8) Code {
	return Code{
		Op:      CodeOp(value & 0xf),
		Operand: Nibble(value>>4) & NIBBLE_MASK,
	}
}

// Byte returns the instruction byte, operand in the upper nibble.
func (code Code) Byte() uint8 {
	return (uint8(code.Operand&NIBBLE_MASK) << 4) | (uint8(code.Op) & 0xf)
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	if !code.Op.UsesOperand() {
		return code.Op.String()
	}
	return fmt.Sprintf("%v %d", code.Op, code.Operand)
}

// Opcode represents a line of assembled code with its source location and generated instruction.
type Opcode struct {
	LineNo    int
	Ip        int
	Words     []string
	Code      Code
	LinkLabel string
}
