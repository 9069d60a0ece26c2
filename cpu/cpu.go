// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
)

// DemoProgram is the memory image installed by every reset:
// load, add, out, halt, followed by nops.
var DemoProgram = [MEMORY_SIZE]Nibble{
	Nibble(OP_LOAD), Nibble(OP_ADD), Nibble(OP_OUT), Nibble(OP_HALT),
}

var _cpu_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("%v", MEMORY_SIZE),
	"NIBBLE_MASK": fmt.Sprintf("0x%x", NIBBLE_MASK),
}

// Inputs are the control inputs sampled on each clock edge.
type Inputs struct {
	Opcode  CodeOp // Instruction injected in interactive mode.
	Operand Nibble // Operand, always sampled live at fetch.

	LoadInstruction bool // Fetch from Opcode instead of memory.
	SingleStep      bool // Release the writeback hold for one instruction.
	SoftReset       bool // Reset registers, flags, and memory.
	RunMode         bool // Release the writeback hold continuously.

	Disable bool // Enable line deasserted; the core holds all state.
}

// Registers is the architectural state of the core.
// It is reset independently of the pipeline phase.
type Registers struct {
	Acc Nibble // Accumulator.
	Pc  Nibble // Program counter.
	Ir  Nibble // Instruction register.
	Dr  Nibble // Data register.

	Zero   bool // Last relevant result was zero.
	Carry  bool // Carry out, borrow, or compare less-than.
	Halted bool // HALT executed; frozen until reset.

	Memory [MEMORY_SIZE]Nibble // Internal memory.
}

// Reset restores the registers, flags and memory to their power-on values.
func (regs *Registers) Reset() {
	*regs = Registers{
		Memory: DemoProgram,
	}
}

// Cpu is the simulation context for the processor core.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Phase Phase // Current pipeline phase.
	Registers

	Ticks int // Clock ticks counter.
}

// NewCpu creates a new CPU in its power-on state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset performs a hard reset of the pipeline and the registers.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Phase = PHASE_FETCH
	cpu.Registers.Reset()
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"phase",
		"acc", "pc", "ir", "dr",
		"flags",
		"mem",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "phase":
			strval = cpu.Phase.String()
		case "acc":
			strval = fmt.Sprintf("%X (%04b)", cpu.Acc, cpu.Acc)
		case "pc":
			strval = fmt.Sprintf("%X", cpu.Pc)
		case "ir":
			strval = fmt.Sprintf("%X (%v)", cpu.Ir, CodeOp(cpu.Ir))
		case "dr":
			strval = fmt.Sprintf("%X", cpu.Dr)
		case "flags":
			strval = ""
			for _, flag := range []struct {
				name string
				set  bool
			}{{"z", cpu.Zero}, {"c", cpu.Carry}, {"h", cpu.Halted}} {
				if flag.set {
					strval += flag.name
				} else {
					strval += "-"
				}
			}
		case "mem":
			for n, word := range cpu.Memory {
				if n == MEMORY_SIZE/2 {
					strval += "_"
				}
				strval += fmt.Sprintf("%X", word)
			}
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// Outputs returns the output vector for the current state.
func (cpu *Cpu) Outputs() (out Outputs) {
	out.Status = uint8(cpu.Acc & NIBBLE_MASK)
	if cpu.Zero {
		out.Status |= STATUS_ZERO
	}
	if cpu.Carry {
		out.Status |= STATUS_CARRY
	}
	if cpu.Halted {
		out.Status |= STATUS_HALT
	}
	if cpu.Phase == PHASE_EXECUTE {
		out.Status |= STATUS_EXECUTE
	}

	out.Address = (uint8(cpu.Ir&NIBBLE_MASK) << 4) | uint8(cpu.Pc&NIBBLE_MASK)

	return
}

// holding returns true if the pipeline must stay in writeback.
func (cpu *Cpu) holding(in Inputs) bool {
	return cpu.Halted || !(in.RunMode || in.SingleStep)
}

// nextPhase returns the phase that follows the current one.
func (cpu *Cpu) nextPhase(in Inputs) Phase {
	switch cpu.Phase {
	case PHASE_FETCH:
		return PHASE_DECODE
	case PHASE_DECODE:
		return PHASE_EXECUTE
	case PHASE_EXECUTE:
		return PHASE_WRITEBACK
	case PHASE_WRITEBACK:
		if cpu.holding(in) {
			return PHASE_WRITEBACK
		}
		return PHASE_FETCH
	}

	return PHASE_FETCH
}

// Tick advances the core by one clock edge.
//
// A hard reset reinitializes the pipeline phase and the registers.
// A soft reset reinitializes only the registers; the phase advances as usual.
// Both take precedence over the enable gate.
func (cpu *Cpu) Tick(hardReset bool, in Inputs) (out Outputs) {
	cpu.Ticks += 1

	// Sample the next phase from the pre-edge state.
	next := cpu.nextPhase(in)

	switch {
	case hardReset || in.SoftReset:
		if cpu.Verbose {
			log.Printf("cpu: reset (hard:%v soft:%v)", hardReset, in.SoftReset)
		}
		cpu.Registers.Reset()
	case in.Disable:
		// pass
	default:
		cpu.step(in)
	}

	switch {
	case hardReset:
		cpu.Phase = PHASE_FETCH
	case in.Disable:
		// pass
	default:
		cpu.Phase = next
	}

	return cpu.Outputs()
}

// step executes the current pipeline phase.
func (cpu *Cpu) step(in Inputs) {
	switch cpu.Phase {
	case PHASE_FETCH:
		if in.LoadInstruction {
			cpu.Ir = Nibble(in.Opcode) & NIBBLE_MASK
		} else {
			cpu.Ir = cpu.Memory[cpu.Pc&NIBBLE_MASK]
		}
		cpu.Dr = in.Operand & NIBBLE_MASK
		if cpu.Verbose {
			log.Printf("cpu: %X: %v", cpu.Pc, Code{Op: CodeOp(cpu.Ir), Operand: cpu.Dr})
		}
	case PHASE_DECODE:
		// Decode is folded into execute.
	case PHASE_EXECUTE:
		cpu.Execute(Code{Op: CodeOp(cpu.Ir), Operand: cpu.Dr})
	case PHASE_WRITEBACK:
		if cpu.holding(in) {
			return
		}
		cpu.Writeback()
	}
}

// Execute performs the execute phase of an instruction on the registers.
// Unused encodings behave as NOP.
func (cpu *Cpu) Execute(code Code) {
	operand := code.Operand & NIBBLE_MASK

	switch code.Op {
	case OP_NOP:
		// pass
	case OP_LOAD:
		cpu.Acc = operand
		cpu.Zero = cpu.Acc == 0
	case OP_ADD, OP_SUB, OP_AND, OP_OR, OP_XOR, OP_SHL, OP_SHR:
		cpu.Acc, cpu.Carry = doAlu(code.Op, cpu.Acc, operand)
		cpu.Zero = cpu.Acc == 0
	case OP_CMP:
		cpu.Zero = cpu.Acc == operand
		cpu.Carry = cpu.Acc < operand
	case OP_JMP:
		cpu.Pc = operand
	case OP_JZ:
		if cpu.Zero {
			cpu.Pc = operand
		}
	case OP_STORE:
		cpu.Memory[operand] = cpu.Acc
	case OP_LOAM:
		cpu.Acc = cpu.Memory[operand]
		cpu.Zero = cpu.Acc == 0
	case OP_OUT:
		// The accumulator is always visible on the status pins.
	case OP_HALT:
		cpu.Halted = true
	default:
		// pass
	}
}

// Writeback advances the program counter, unless the instruction
// already set it or the core is halted.
func (cpu *Cpu) Writeback() {
	if cpu.Halted {
		return
	}

	switch CodeOp(cpu.Ir) {
	case OP_JMP:
		return
	case OP_JZ:
		if cpu.Zero {
			return
		}
	}

	cpu.Pc = (cpu.Pc + 1) & NIBBLE_MASK
}

// doAlu performs the requested ALU action, and returns the output value and carry.
func doAlu(op CodeOp, input Nibble, value Nibble) (output Nibble, carry bool) {
	switch op {
	case OP_ADD: // add
		sum := uint(input) + uint(value)
		output = MakeNibble(sum)
		carry = sum > uint(NIBBLE_MASK)
	case OP_SUB: // sub, carry is borrow
		output = (input - value) & NIBBLE_MASK
		carry = input < value
	case OP_AND: // and
		output = input & value
	case OP_OR: // or
		output = input | value
	case OP_XOR: // xor
		output = input ^ value
	case OP_SHL: // shl
		output = (input << 1) & NIBBLE_MASK
		carry = (input & 0b1000) != 0
	case OP_SHR: // shr
		output = input >> 1
		carry = (input & 0b0001) != 0
	}

	return
}
