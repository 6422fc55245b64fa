package cpu

import (
	"fmt"
)

const (
	REGISTER_COUNT = 26 // Registers 'a' through 'z'.
)

// Register is the index of a register in the register bank.
type Register uint8

// ParseRegister converts a single lowercase letter to a Register.
func ParseRegister(word string) (reg Register, err error) {
	if len(word) != 1 || word[0] < 'a' || word[0] > 'z' {
		err = ErrParseRegister(word)
		return
	}

	reg = Register(word[0] - 'a')
	return
}

// Valid returns true if the register is in the register bank.
func (reg Register) Valid() bool {
	return reg < REGISTER_COUNT
}

func (reg Register) String() string {
	if !reg.Valid() {
		return fmt.Sprintf("Register(%d)", uint8(reg))
	}
	return string(rune('a' + reg))
}
