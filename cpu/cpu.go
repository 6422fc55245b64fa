// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"log"
	"strings"

	"github.com/ezrec/duet/channel"
)

// Cpu is the simulation context for a single register machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Program *Program // Shared program listing. Never modified.

	Pc       int64                 // Program counter.
	Register [REGISTER_COUNT]int64 // Register bank, 'a' through 'z'.
	Input    channel.Queue         // Values waiting for rcv.
	Output   channel.Queue         // Values produced by snd.

	Ticks int // Steps taken since reset, including blocked receives.
}

// NewCpu creates a new CPU running a program.
func NewCpu(prog *Program) (cpu *Cpu) {
	cpu = &Cpu{
		Program: prog,
	}

	return
}

// Reset the CPU state.
// - Clears the registers and program counter.
// - Empties both queues.
// - Zeros the tick counter.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Register[:])
	cpu.Pc = 0
	cpu.Input.Reset()
	cpu.Output.Reset()
	cpu.Ticks = 0
}

// String returns the program counter and all registers.
func (cpu *Cpu) String() string {
	var text strings.Builder
	fmt.Fprintf(&text, "pc:%d", cpu.Pc)
	for n, value := range cpu.Register {
		fmt.Fprintf(&text, " %v:%d", Register(n), value)
	}
	return text.String()
}

// Halted returns true if the program counter is outside the program.
func (cpu *Cpu) Halted() bool {
	_, ok := cpu.Program.Fetch(cpu.Pc)
	return !ok
}

// Get returns the value of a register.
func (cpu *Cpu) Get(reg Register) (value int64, err error) {
	if !reg.Valid() {
		err = ErrOperand(MakeRegister(reg))
		return
	}

	value = cpu.Register[reg]
	return
}

// Set stores a value into a register.
func (cpu *Cpu) Set(reg Register, value int64) (err error) {
	if !reg.Valid() {
		err = ErrOperand(MakeRegister(reg))
		return
	}

	cpu.Register[reg] = value
	return
}

// Evaluate resolves an operand against the register bank.
func (cpu *Cpu) Evaluate(op Operand) (value int64, err error) {
	switch op.Kind {
	case OPERAND_LITERAL:
		value = op.Literal
	case OPERAND_REGISTER:
		value, err = cpu.Get(op.Register)
	default:
		err = ErrOperand(op)
	}

	return
}

// target returns the destination register named by an operand.
func (cpu *Cpu) target(op Operand) (reg Register, err error) {
	if !op.IsRegister() || !op.Register.Valid() {
		err = ErrOperand(op)
		return
	}

	reg = op.Register
	return
}

// Tick executes the instruction at the program counter.
// A program counter outside the program is SIGNAL_HALTED, and nothing
// executes.
func (cpu *Cpu) Tick() (sig Signal, err error) {
	ins, ok := cpu.Program.Fetch(cpu.Pc)
	if !ok {
		if cpu.Verbose {
			log.Printf("%03d: halted", cpu.Pc)
		}
		sig = SIGNAL_HALTED
		return
	}

	sig, err = cpu.Execute(ins)
	if err == nil {
		cpu.Ticks++
	}

	return
}

// Execute a single instruction.
// On error the machine state is unchanged.
func (cpu *Cpu) Execute(ins Instruction) (sig Signal, err error) {
	if cpu.Verbose {
		log.Printf("%03d: %v", cpu.Pc, ins)
	}

	sig = SIGNAL_CONTINUE

	switch ins.Op {
	case OP_SND:
		var value int64
		value, err = cpu.Evaluate(ins.X)
		if err != nil {
			return
		}
		err = cpu.Output.Send(value)
		if err != nil {
			return
		}
		sig = SIGNAL_SENT
	case OP_SET, OP_ADD, OP_MUL, OP_MOD:
		var reg Register
		reg, err = cpu.target(ins.X)
		if err != nil {
			return
		}
		var value int64
		value, err = cpu.Evaluate(ins.Y)
		if err != nil {
			return
		}
		var output int64
		output, err = doAlu(ins.Op, cpu.Register[reg], value)
		if err != nil {
			return
		}
		cpu.Register[reg] = output
	case OP_RCV:
		var reg Register
		reg, err = cpu.target(ins.X)
		if err != nil {
			return
		}
		value, ok := cpu.Input.Pop()
		if !ok {
			// Retry on the next tick.
			sig = SIGNAL_BLOCKED
			return
		}
		cpu.Register[reg] = value
	case OP_JGZ:
		var cond int64
		cond, err = cpu.Evaluate(ins.X)
		if err != nil {
			return
		}
		if cond > 0 {
			var offset int64
			offset, err = cpu.Evaluate(ins.Y)
			if err != nil {
				return
			}
			cpu.Pc += offset
			return
		}
	default:
		err = ErrOpcodeInvalid
		return
	}

	cpu.Pc++

	return
}

// doAlu applies an arithmetic operation to a register's value.
// mod is a truncating remainder, so the result takes the sign of input.
func doAlu(op Op, input int64, value int64) (output int64, err error) {
	switch op {
	case OP_SET:
		output = value
	case OP_ADD:
		output = input + value
	case OP_MUL:
		output = input * value
	case OP_MOD:
		if value == 0 {
			err = ErrModuloZero
			return
		}
		output = input % value
	default:
		err = ErrOpcodeInvalid
	}

	return
}
