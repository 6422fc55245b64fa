// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
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
	"LINENO":         "0",
	"REGISTER_COUNT": fmt.Sprintf("%d", REGISTER_COUNT),
}

var parenRegexp = regexp.MustCompile(`\$\([^\$]*\)`)

// Assembler is a single pass assembler for duet programs.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string // Predefines
	Equate    map[string]string // Map of equates.
}

// CheckEquate verifies that a name can be defined as an equate.
// Registers, mnemonics and numbers cannot be redefined.
func CheckEquate(name string) (err error) {
	if len(name) == 0 || strings.ContainsAny(name, " \t;$()") || strings.ContainsAny(name[:1], "+-0123456789") {
		err = ErrEquateSyntax
		return
	}

	_, is_op := opMap[name]
	_, reg_err := ParseRegister(name)
	_, num_err := strconv.ParseInt(name, 0, 64)
	if is_op || reg_err == nil || num_err == nil {
		err = ErrEquateSyntax
		return
	}

	return
}

// Predefine defines a new equate or redefines an existing equate,
// applied at the start of every Parse.
func (asm *Assembler) Predefine(equ string, value string) (err error) {
	err = CheckEquate(equ)
	if err != nil {
		return
	}

	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, err := strconv.ParseInt(str, 0, 64)
		if err != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
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

// parseLine expands a single line into words.
// Directives are consumed here, and return no words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	line = parenRegexp.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = slices.DeleteFunc(strings.Split(line, " "), func(a string) bool { return len(a) == 0 })

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		err = CheckEquate(words[1])
		if err != nil {
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	// Operands may name equates.
	for n, word := range words[1:] {
		equate, ok := asm.Equate[word]
		if ok {
			words[1+n] = equate
		}
	}

	return
}

// parseWords decodes an instruction from its words.
func (asm *Assembler) parseWords(words []string, lineno int) (ins Instruction, err error) {
	op, ok := opMap[words[0]]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	args := words[1:]
	if len(args) < op.Args() {
		err = ErrOpcodeValueMissing
		return
	}
	if len(args) > op.Args() {
		err = ErrOpcodeExtraArgs
		return
	}

	operands := make([]Operand, len(args))
	for n, word := range args {
		if n == 0 && op.Writable() {
			var reg Register
			reg, err = ParseRegister(word)
			if err != nil {
				return
			}
			operands[n] = MakeRegister(reg)
			continue
		}
		operands[n], err = parseOperand(word)
		if err != nil {
			return
		}
	}

	ins = MakeInstruction(op, operands...)
	ins.LineNo = lineno

	return
}

// Parse parses an input stream into a Program.
// Parsing stops at the first error, which is an *ErrSyntax.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			prog = nil
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	prog = &Program{}

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

		if len(words) == 0 {
			continue
		}

		var ins Instruction
		ins, err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}

		prog.Instructions = append(prog.Instructions, ins)
	}

	err = scanner.Err()

	return
}
