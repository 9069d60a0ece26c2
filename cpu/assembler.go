// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":      "0",
	"MEMORY_SIZE": fmt.Sprintf("%v", MEMORY_SIZE),
	"NIBBLE_MASK": fmt.Sprintf("%#x", uint8(NIBBLE_MASK)),
}

// opMap is a map of mnemonics to opcodes.
var opMap = func() map[string]CodeOp {
	ops := make(map[string]CodeOp, MEMORY_SIZE)
	for n := range MEMORY_SIZE {
		op := CodeOp(n)
		ops[op.String()] = op
	}
	return ops
}()

var (
	reLabel = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
	reParen = regexp.MustCompile(`\$\([^\$]*\)`)
)

// Assembler is a single pass assembler for the nibble system.
// Label references are resolved once the whole input has been read.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of jump labels to addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the nibble value of a simple word.
func (asm *Assembler) valueOf(word string) (value Nibble, err error) {
	invert := false
	text := word
	if strings.HasPrefix(text, "~") {
		invert = true
		text = text[1:]
	}

	v64, err := strconv.ParseUint(text, 0, 8)
	if err != nil || v64 > uint64(NIBBLE_MASK) {
		err = ErrParseNumber(word)
		return
	}

	value = Nibble(v64)
	if invert {
		value = ^value & NIBBLE_MASK
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "expr"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	for key, ip := range asm.Label {
		pred[key] = starlark.MakeInt(ip)
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	return
}

// parseLine expands a single line, and handles equates and labels.
// The remaining words, if any, are an instruction.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = nil
		return
	}

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		asm.Label[label] = asm.currentIp()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	return
}

// parseWords assembles the words of an instruction.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	if len(words) == 0 {
		return
	}

	mnemonic := strings.ToLower(words[0])
	args := words[1:]
	if len(args) > 1 {
		err = ErrOpcodeExtraArgs
		return
	}

	var code Code
	var link string

	switch mnemonic {
	case ".data":
		if len(args) != 1 {
			err = ErrDataSyntax
			return
		}
		var value Nibble
		value, err = asm.valueOf(args[0])
		if err != nil {
			return
		}
		code = Code{Op: CodeOp(value)}
	default:
		op, ok := opMap[mnemonic]
		if !ok {
			err = ErrOpcodeInvalid
			return
		}
		code.Op = op
		if len(args) == 0 {
			if op.UsesOperand() {
				err = ErrOpcodeValueMissing
			}
			break
		}
		code.Operand, err = asm.valueOf(args[0])
		if err != nil && reLabel.MatchString(args[0]) {
			link = args[0]
			err = nil
		}
		if err != nil {
			return
		}
	}

	if asm.currentIp() >= MEMORY_SIZE {
		err = ErrProgramSize
		return
	}

	opcode := Opcode{
		LineNo:    lineno,
		Ip:        asm.currentIp(),
		Words:     slices.Clone(words),
		Code:      code,
		LinkLabel: link,
	}

	if asm.Verbose {
		log.Printf("%X: %v", opcode.Ip, opcode.Code)
	}

	asm.Opcode = append(asm.Opcode, opcode)

	return
}

// currentIp gets the current Ip
func (asm *Assembler) currentIp() int {
	return len(asm.Opcode)
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Opcode = asm.Opcode[:0]
	asm.Label = make(map[string]int, MEMORY_SIZE)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Link labels
	for n := range asm.Opcode {
		op := &asm.Opcode[n]
		if len(op.LinkLabel) == 0 {
			continue
		}
		ip, ok := asm.Label[op.LinkLabel]
		if !ok {
			lineno = op.LineNo
			line = strings.Join(op.Words, " ")
			err = ErrLabelMissing(op.LinkLabel)
			return
		}
		op.Code.Operand = MakeNibble(uint(ip))
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}
