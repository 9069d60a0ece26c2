package cpu

import (
	"iter"
)

// Program is an assembled listing for the internal memory.
type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
}

// Debug returns the opcode assembled at an address, if any.
func (prog *Program) Debug(ip Nibble) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if int(ip) == op.Ip {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
			}
			break
		}
	}

	return
}

// Binary returns the memory image. Unused words are NOPs.
func (prog *Program) Binary() (mem [MEMORY_SIZE]Nibble) {
	for ip, code := range prog.Codes() {
		mem[ip] = Nibble(code.Op) & NIBBLE_MASK
	}

	return
}

// Operands returns the operand to present at fetch for each address.
func (prog *Program) Operands() (operands [MEMORY_SIZE]Nibble) {
	for ip, code := range prog.Codes() {
		operands[ip] = code.Operand
	}

	return
}

// Codes iterates over the address and instruction of every opcode.
func (prog *Program) Codes() iter.Seq2[Nibble, Code] {
	return func(yield func(ip Nibble, code Code) bool) {
		for _, op := range prog.Opcodes {
			if op.Ip < 0 || op.Ip >= MEMORY_SIZE {
				continue
			}
			if !yield(Nibble(op.Ip), op.Code) {
				return
			}
		}
	}
}
