// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/nibble/cpu"
	"github.com/ezrec/nibble/internal"
	"github.com/ezrec/nibble/io"
)

const (
	TICKS_PER_INSTRUCTION = 4    // Clock ticks of one pipeline cycle.
	TICK_LIMIT            = 4096 // Default tick limit of Run.
	TEMP_CAPACITY         = 256  // Default capacity of the OUT capture buffer.
)

var _emulator_defines = map[string]string{
	"TICKS_PER_INSTRUCTION": fmt.Sprintf("%v", TICKS_PER_INSTRUCTION),
}

// Emulator state. CPU + operand ROM + OUT channels.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program listing.

	TickLimit int // Maximum ticks for Run, zero for no limit.

	Rom       io.Rom       // Operand ROM, presented on the input pins at fetch.
	Temporary io.Temporary // Capture of OUT values.
	Tape      io.Tape      // Hex digit stream of OUT values.

	channels []io.Channel
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:       cpu.NewCpu(),
		Program:   &cpu.Program{},
		TickLimit: TICK_LIMIT,
	}

	emu.Temporary.Capacity = TEMP_CAPACITY
	emu.Temporary.Rewind()

	emu.channels = []io.Channel{&emu.Temporary, &emu.Tape}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Rom.Defines(),
		emu.Temporary.Defines(),
		emu.Tape.Defines(),
	)
}

// Reset performs a hard reset, and loads the program into memory.
//
// An empty program leaves the reset memory image in place. Otherwise every
// word is written by injecting a LOAD and STORE pair, followed by LOAD 0 and
// JMP 0. The loader leaves the accumulator at zero with the zero flag set.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = false

	emu.Cpu.Tick(true, cpu.Inputs{})

	for _, channel := range emu.channels {
		channel.Rewind()
	}

	emu.Rom.Data = [io.ROM_SIZE]uint8{}
	if emu.Program != nil && len(emu.Program.Opcodes) != 0 {
		for ip, operand := range emu.Program.Operands() {
			emu.Rom.Data[ip] = uint8(operand)
		}

		for ip, word := range emu.Program.Binary() {
			err = emu.Inject(cpu.Code{Op: cpu.OP_LOAD, Operand: word})
			if err != nil {
				return
			}
			err = emu.Inject(cpu.Code{Op: cpu.OP_STORE, Operand: cpu.Nibble(ip)})
			if err != nil {
				return
			}
		}

		err = emu.Inject(cpu.Code{Op: cpu.OP_LOAD, Operand: 0})
		if err != nil {
			return
		}
		err = emu.Inject(cpu.Code{Op: cpu.OP_JMP, Operand: 0})
		if err != nil {
			return
		}
	}

	// Reset statistics.
	emu.Cpu.Ticks = 0

	emu.Cpu.Verbose = emu.Verbose

	if emu.Verbose {
		log.Printf("emulator: reset, memory %v", emu.Cpu.Memory)
	}

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Code returns the instruction at the program counter, as the core will fetch it.
func (emu *Emulator) Code() cpu.Code {
	pc := emu.Cpu.Pc
	return cpu.Code{
		Op:      cpu.CodeOp(emu.Cpu.Memory[pc]),
		Operand: cpu.Nibble(emu.Rom.Fetch(uint8(pc))),
	}
}

// LineNo returns the source line number for the program counter.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// drain completes any instruction in flight, leaving the pipeline at fetch.
func (emu *Emulator) drain(in cpu.Inputs) (err error) {
	for n := 0; emu.Cpu.Phase != cpu.PHASE_FETCH; n++ {
		if emu.Cpu.Halted {
			err = ErrHalted
			return
		}
		if n == TICKS_PER_INSTRUCTION {
			err = ErrPipelineStuck
			return
		}
		emu.Cpu.Tick(false, in)
	}

	return
}

// Inject executes a single instruction in interactive mode.
func (emu *Emulator) Inject(code cpu.Code) (err error) {
	if emu.Cpu.Halted {
		err = ErrHalted
		return
	}

	if emu.Cpu.Verbose {
		log.Printf("emulator: inject %v", code)
	}

	in := cpu.Inputs{
		Opcode:     code.Op,
		Operand:    code.Operand,
		SingleStep: true,
	}

	err = emu.drain(in)
	if err != nil {
		return
	}

	in.LoadInstruction = true
	err = emu.run(in)

	return
}

// run executes one pipeline cycle from fetch, and delivers OUT values.
func (emu *Emulator) run(in cpu.Inputs) (err error) {
	for range TICKS_PER_INSTRUCTION {
		emu.Cpu.Tick(false, in)
	}

	if cpu.CodeOp(emu.Cpu.Ir) == cpu.OP_OUT {
		for _, channel := range emu.channels {
			err = channel.Send(uint8(emu.Cpu.Acc))
			if err != nil {
				return
			}
		}
	}

	return
}

// step executes a single stored-program instruction.
func (emu *Emulator) step(runMode bool) (done bool, err error) {
	if emu.Cpu.Halted {
		done = true
		return
	}

	in := cpu.Inputs{
		SingleStep: !runMode,
		RunMode:    runMode,
	}

	err = emu.drain(in)
	if errors.Is(err, ErrHalted) {
		done = true
		err = nil
		return
	}
	if err != nil {
		return
	}

	// Present the operand for the address being fetched.
	in.Operand = cpu.Nibble(emu.Rom.Fetch(uint8(emu.Cpu.Pc)))
	err = emu.run(in)
	if err != nil {
		return
	}

	done = emu.Cpu.Halted

	return
}

// Step performs a single stored-program instruction of the emulator.
func (emu *Emulator) Step() (done bool, err error) {
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	done, err = emu.step(false)

	return
}

// Run executes the stored program in run mode, until HALT or the tick limit.
func (emu *Emulator) Run() (err error) {
	var lineno int
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	for {
		lineno = emu.LineNo()

		var done bool
		done, err = emu.step(true)
		if err != nil || done {
			return
		}

		if emu.TickLimit > 0 && emu.Cpu.Ticks >= emu.TickLimit {
			err = ErrTickLimit
			return
		}
	}
}

// Output drains the values captured from OUT instructions.
func (emu *Emulator) Output() (values []cpu.Nibble) {
	for value := range emu.Temporary.Receive() {
		values = append(values, cpu.Nibble(value))
	}

	return
}
