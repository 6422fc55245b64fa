package cpu

import (
	"errors"

	"github.com/ezrec/duet/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrOperandInvalid = errors.New(f("operand invalid"))
	ErrOpcodeInvalid  = errors.New(f("opcode invalid"))
	ErrModuloZero     = errors.New(f("modulo by zero"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
)

// ErrOperand is an operand that cannot be used where it appears.
type ErrOperand Operand

func (eo ErrOperand) Error() string {
	return f("operand %v (%v) invalid", Operand(eo).String(), eo.Kind.String())
}

func (eo ErrOperand) Unwrap() error {
	return ErrOperandInvalid
}

// ErrSyntax is a parse failure at a specific line of program text.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseValue string

func (err ErrParseValue) Error() string {
	return f("'%v' is not a value or register", string(err))
}

type ErrParseRegister string

func (err ErrParseRegister) Error() string {
	return f("'%v' is not a register", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
