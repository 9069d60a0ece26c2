// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ezrec/nibble/cpu"
	"github.com/ezrec/nibble/emulator"
	"github.com/ezrec/nibble/internal"
)

func main() {
	var compile string
	var output string
	var interactive bool
	var limit int
	var state bool
	var defines bool
	var verbose bool

	flag.StringVar(&compile, "c", "", ".s file to assemble")
	flag.StringVar(&output, "o", "-", "OUT tape output")
	flag.BoolVar(&interactive, "i", false, "Interactive mode, inject instructions from stdin")
	flag.IntVar(&limit, "n", emulator.TICK_LIMIT, "Tick limit, 0 for none")
	flag.BoolVar(&state, "s", false, "Print the final CPU state")
	flag.BoolVar(&defines, "d", false, "List the assembler predefines and exit")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.TickLimit = limit
	if limit > 0 {
		emu.Temporary.Capacity = limit/emulator.TICKS_PER_INSTRUCTION + 1
	}

	asm := &cpu.Assembler{Verbose: verbose}
	for key, value := range internal.IterSeq2Sorted(emu.Defines()) {
		asm.Predefine(key, value)
		if defines {
			fmt.Printf(".equ %v %v\n", key, value)
		}
	}
	if defines {
		return
	}

	// Assemble a new memory image.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		emu.Program, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	if output == "-" {
		emu.Tape.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		emu.Tape.Output = ouf
	}
	emu.Tape.Separator = '\n'

	err := emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	if interactive {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if len(line) == 0 {
				continue
			}
			prog, err := asm.Parse(strings.NewReader(line))
			if err != nil {
				log.Print(err)
				continue
			}
			for _, code := range prog.Codes() {
				err = emu.Inject(code)
				if err != nil {
					log.Print(err)
				}
			}
			fmt.Fprint(os.Stderr, emu.Cpu.String())
		}
		if err := scanner.Err(); err != nil {
			log.Fatal(err)
		}
	} else {
		err = emu.Run()
		if err != nil {
			log.Fatal(err)
		}
	}

	if state {
		fmt.Fprint(os.Stderr, emu.Cpu.String())
		fmt.Fprintf(os.Stderr, "ticks: %v\n", emu.Ticks())
	}
}
