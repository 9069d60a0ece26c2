// Package cpu implements the processor core and assembler for the nibble system.
//
// The core is a 4-bit accumulator machine: an accumulator, a program counter,
// an instruction register and a data register, three status flags (zero,
// carry and halted), and sixteen words of internal memory. Execution is driven
// by a four phase pipeline (fetch, decode, execute, writeback) that advances
// exactly once per call to Tick.
//
// Instructions are either injected from the input pins (interactive mode) or
// fetched from memory at the program counter (stored-program mode). In both
// modes the operand is always sampled live from the input pins.
//
// The assembler provides a small assembly language for the sixteen opcodes,
// supporting labels, equates, and compile-time expression evaluation.
package cpu
