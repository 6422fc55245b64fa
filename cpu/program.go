package cpu

import (
	"iter"
	"strings"
)

// Program is an immutable instruction listing, shared by every Cpu that
// runs it.
type Program struct {
	Instructions []Instruction
}

// Len returns the number of instructions.
func (prog *Program) Len() int {
	if prog == nil {
		return 0
	}
	return len(prog.Instructions)
}

// Fetch returns the instruction at pc, or false if pc is outside the program.
func (prog *Program) Fetch(pc int64) (ins Instruction, ok bool) {
	if pc < 0 || pc >= int64(prog.Len()) {
		return
	}

	return prog.Instructions[pc], true
}

// LineNo returns the source line of the instruction at pc, or 0.
func (prog *Program) LineNo(pc int64) int {
	ins, ok := prog.Fetch(pc)
	if !ok {
		return 0
	}
	return ins.LineNo
}

// Listing iterates over each program counter and its instruction.
func (prog *Program) Listing() iter.Seq2[int64, Instruction] {
	return func(yield func(pc int64, ins Instruction) bool) {
		for pc := range int64(prog.Len()) {
			if !yield(pc, prog.Instructions[pc]) {
				return
			}
		}
	}
}

// String disassembles the program, one instruction per line.
func (prog *Program) String() string {
	var text strings.Builder
	for _, ins := range prog.Listing() {
		text.WriteString(ins.String())
		text.WriteByte('\n')
	}
	return text.String()
}
