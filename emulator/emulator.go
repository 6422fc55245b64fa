// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator runs two copies of a program in lock-step, routing the
// values each one sends into the other's input queue.
package emulator

import (
	"log"

	"github.com/ezrec/duet/cpu"
)

const (
	MACHINE_COUNT = 2                       // Number of communicating machines.
	ID_REGISTER   = cpu.Register('p' - 'a') // Holds each machine's index at reset.
)

// State is the outcome of a round.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_RUNNING  = State(0) // running
	STATE_DEADLOCK = State(1) // dead lock
	STATE_HALTED   = State(2) // stopped
)

// Emulator state. Two CPUs sharing one program.
type Emulator struct {
	Verbose bool         // If set, logs every machine's state after each step.
	Program *cpu.Program // Program run by every machine.

	QueueCapacity int // Input queue limit for each machine, or 0 for unbounded.

	Cpu    [MACHINE_COUNT]*cpu.Cpu
	Sent   [MACHINE_COUNT]int // Values routed out of each machine.
	Rounds int                // Rounds completed since reset.
}

// NewEmulator creates a new emulator for a program, ready to run.
func NewEmulator(prog *cpu.Program) (emu *Emulator) {
	emu = &Emulator{
		Program: prog,
	}

	emu.Reset()

	return
}

// Reset both machines, seeding ID_REGISTER with the machine index.
// Existing machines are reused, and pick up Program and QueueCapacity.
func (emu *Emulator) Reset() {
	for id, machine := range emu.Cpu {
		if machine == nil {
			machine = cpu.NewCpu(emu.Program)
			emu.Cpu[id] = machine
		}
		machine.Program = emu.Program
		machine.Verbose = emu.Verbose
		machine.Reset()
		machine.Input.Capacity = emu.QueueCapacity
		err := machine.Set(ID_REGISTER, int64(id))
		if err != nil {
			panic(err)
		}
	}

	clear(emu.Sent[:])
	emu.Rounds = 0
}

// Result returns the number of values machine 1 has sent to machine 0.
func (emu *Emulator) Result() int {
	return emu.Sent[1]
}

// Tick performs a single round: one step of each machine, in order, then
// routing of every sent value to the partner machine.
func (emu *Emulator) Tick() (state State, err error) {
	var sig [MACHINE_COUNT]cpu.Signal

	for id, machine := range emu.Cpu {
		lineno := emu.Program.LineNo(machine.Pc)

		machine.Verbose = emu.Verbose
		sig[id], err = machine.Tick()
		if err != nil {
			err = &ErrRuntime{Machine: id, LineNo: lineno, Err: err}
			return
		}

		if emu.Verbose {
			log.Printf("%d: %v %v", id, sig[id], machine)
		}
	}

	emu.Rounds++

	for id, machine := range emu.Cpu {
		partner := emu.Cpu[(id+1)%MACHINE_COUNT]
		for value := range machine.Output.Receive() {
			err = partner.Input.Send(value)
			if err != nil {
				err = &ErrRuntime{Machine: (id + 1) % MACHINE_COUNT, Err: err}
				return
			}
			emu.Sent[id]++
		}
	}

	blocked := true
	halted := false
	for _, s := range sig {
		blocked = blocked && s == cpu.SIGNAL_BLOCKED
		halted = halted || s == cpu.SIGNAL_HALTED
	}

	switch {
	case blocked:
		state = STATE_DEADLOCK
	case halted:
		state = STATE_HALTED
	default:
		state = STATE_RUNNING
	}

	if emu.Verbose && state != STATE_RUNNING {
		log.Printf("emulator: %v after %d rounds", state, emu.Rounds)
	}

	return
}

// Run ticks until both machines are blocked, or either has halted.
func (emu *Emulator) Run() (state State, err error) {
	for state == STATE_RUNNING {
		state, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
