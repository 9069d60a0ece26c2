package cpu

// Control byte bits.
const (
	CTRL_LOAD_INSTRUCTION = uint8(1 << 0) // Fetch from the instruction byte.
	CTRL_SINGLE_STEP      = uint8(1 << 1) // Step one instruction.
	CTRL_SOFT_RESET       = uint8(1 << 2) // Reset registers and memory.
	CTRL_RUN_MODE         = uint8(1 << 3) // Run continuously.
)

// Status byte bits. The low nibble is the accumulator.
const (
	STATUS_ACC_MASK = uint8(0x0f)
	STATUS_ZERO     = uint8(1 << 4)
	STATUS_CARRY    = uint8(1 << 5)
	STATUS_HALT     = uint8(1 << 6)
	STATUS_EXECUTE  = uint8(1 << 7)
)

// Outputs is the output vector of the core.
type Outputs struct {
	Status  uint8 // Accumulator and flags.
	Address uint8 // Program counter (low) and instruction register (high).
}

// Accumulator returns the accumulator from the status byte.
func (out Outputs) Accumulator() Nibble {
	return Nibble(out.Status & STATUS_ACC_MASK)
}

// Zero returns the zero flag.
func (out Outputs) Zero() bool {
	return (out.Status & STATUS_ZERO) != 0
}

// Carry returns the carry flag.
func (out Outputs) Carry() bool {
	return (out.Status & STATUS_CARRY) != 0
}

// Halted returns the halted flag.
func (out Outputs) Halted() bool {
	return (out.Status & STATUS_HALT) != 0
}

// Executing returns true if the core is in the execute phase.
func (out Outputs) Executing() bool {
	return (out.Status & STATUS_EXECUTE) != 0
}

// ProgramCounter returns the program counter from the address byte.
func (out Outputs) ProgramCounter() Nibble {
	return Nibble(out.Address) & NIBBLE_MASK
}

// Instruction returns the instruction register from the address byte.
func (out Outputs) Instruction() CodeOp {
	return CodeOp(out.Address >> 4)
}

// UnpackInputs decodes the instruction byte and the control byte.
func UnpackInputs(instruction uint8, control uint8) (in Inputs) {
	code := DecodeCode(instruction)
	in = Inputs{
		Opcode:          code.Op,
		Operand:         code.Operand,
		LoadInstruction: (control & CTRL_LOAD_INSTRUCTION) != 0,
		SingleStep:      (control & CTRL_SINGLE_STEP) != 0,
		SoftReset:       (control & CTRL_SOFT_RESET) != 0,
		RunMode:         (control & CTRL_RUN_MODE) != 0,
	}

	return
}

// Pack encodes the inputs as an instruction byte and a control byte.
// The enable gate is not part of either byte.
func (in Inputs) Pack() (instruction uint8, control uint8) {
	instruction = Code{Op: in.Opcode, Operand: in.Operand}.Byte()

	if in.LoadInstruction {
		control |= CTRL_LOAD_INSTRUCTION
	}
	if in.SingleStep {
		control |= CTRL_SINGLE_STEP
	}
	if in.SoftReset {
		control |= CTRL_SOFT_RESET
	}
	if in.RunMode {
		control |= CTRL_RUN_MODE
	}

	return
}

// Clock drives the core from its pins for one rising edge.
// rstN is the active-low hard reset, ena the enable line.
func (cpu *Cpu) Clock(rstN bool, ena bool, instruction uint8, control uint8) (status uint8, address uint8) {
	in := UnpackInputs(instruction, control)
	in.Disable = !ena

	out := cpu.Tick(!rstN, in)

	return out.Status, out.Address
}
