package cpu

import (
	"fmt"
)

// Op is an instruction operation.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_SND = Op(0) // snd
	OP_SET = Op(1) // set
	OP_ADD = Op(2) // add
	OP_MUL = Op(3) // mul
	OP_MOD = Op(4) // mod
	OP_RCV = Op(5) // rcv
	OP_JGZ = Op(6) // jgz
)

// opMap is a map of mnemonics to operations.
var opMap = map[string]Op{
	"snd": OP_SND,
	"set": OP_SET,
	"add": OP_ADD,
	"mul": OP_MUL,
	"mod": OP_MOD,
	"rcv": OP_RCV,
	"jgz": OP_JGZ,
}

// Args returns the number of operands the operation takes.
func (op Op) Args() int {
	switch op {
	case OP_SND, OP_RCV:
		return 1
	}
	return 2
}

// Writable returns true if the first operand is a destination register.
func (op Op) Writable() bool {
	switch op {
	case OP_SET, OP_ADD, OP_MUL, OP_MOD, OP_RCV:
		return true
	}
	return false
}

// Signal is the control outcome of executing one instruction.
type Signal int

//go:generate go tool stringer -linecomment -type=Signal
const (
	SIGNAL_CONTINUE = Signal(0) // continue
	SIGNAL_HALTED   = Signal(1) // halted
	SIGNAL_SENT     = Signal(2) // sent
	SIGNAL_BLOCKED  = Signal(3) // blocked
)

// Instruction is a single decoded line of a program.
type Instruction struct {
	Op     Op
	X      Operand
	Y      Operand // Unused by snd and rcv.
	LineNo int     // Source line, or 0 if not assembled.
}

// MakeInstruction creates an instruction from an operation and its operands.
func MakeInstruction(op Op, args ...Operand) (ins Instruction) {
	ins.Op = op
	if len(args) > 0 {
		ins.X = args[0]
	}
	if len(args) > 1 {
		ins.Y = args[1]
	}
	return
}

// String returns the assembly language representation of this instruction.
func (ins Instruction) String() string {
	if ins.Op.Args() == 1 {
		return fmt.Sprintf("%v %v", ins.Op, ins.X)
	}
	return fmt.Sprintf("%v %v %v", ins.Op, ins.X, ins.Y)
}
