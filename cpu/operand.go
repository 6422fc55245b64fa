package cpu

import (
	"strconv"
)

// OperandKind selects how an Operand is resolved.
type OperandKind int

//go:generate go tool stringer -linecomment -type=OperandKind
const (
	OPERAND_LITERAL  = OperandKind(0) // literal
	OPERAND_REGISTER = OperandKind(1) // register
)

// Operand is either a literal value or a register reference.
type Operand struct {
	Kind     OperandKind
	Literal  int64
	Register Register
}

// MakeLiteral creates a literal operand.
func MakeLiteral(value int64) Operand {
	return Operand{Kind: OPERAND_LITERAL, Literal: value}
}

// MakeRegister creates a register reference operand.
func MakeRegister(reg Register) Operand {
	return Operand{Kind: OPERAND_REGISTER, Register: reg}
}

// IsRegister returns true for a register reference.
func (op Operand) IsRegister() bool {
	return op.Kind == OPERAND_REGISTER
}

// parseOperand parses a register letter or a signed decimal integer.
func parseOperand(word string) (op Operand, err error) {
	reg, err := ParseRegister(word)
	if err == nil {
		op = MakeRegister(reg)
		return
	}

	value, err := strconv.ParseInt(word, 10, 64)
	if err != nil {
		err = ErrParseValue(word)
		return
	}

	op = MakeLiteral(value)
	return
}

func (op Operand) String() string {
	switch op.Kind {
	case OPERAND_LITERAL:
		return strconv.FormatInt(op.Literal, 10)
	case OPERAND_REGISTER:
		return op.Register.String()
	}

	return op.Kind.String()
}
