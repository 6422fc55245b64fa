package emulator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/duet/channel"
	"github.com/ezrec/duet/cpu"
)

func assemble(t *testing.T, program []string) *cpu.Program {
	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}
	return prog
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, []string{"snd p"})
	emu := NewEmulator(prog)

	assert.False(emu.Verbose)
	for id, machine := range emu.Cpu {
		assert.NotNil(machine)
		assert.Equal(prog, machine.Program)
		assert.Equal(int64(id), machine.Register[ID_REGISTER])
		assert.Equal(int64(0), machine.Pc)
	}
	assert.Equal(0, emu.Result())
}

func TestEmulator_Exchange(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(assemble(t, []string{
		"snd 1",
		"snd 2",
		"snd p",
		"rcv a",
		"rcv b",
		"rcv c",
		"rcv d",
	}))

	state, err := emu.Run()
	assert.NoError(err)
	assert.Equal(STATE_DEADLOCK, state)
	assert.Equal(3, emu.Result())
	assert.Equal(3, emu.Sent[0])
	assert.Equal(7, emu.Rounds)

	// Machine 0 received exactly what machine 1 sent, in order.
	zero := emu.Cpu[0]
	assert.Equal([]int64{1, 2, 1}, []int64{zero.Register[0], zero.Register[1], zero.Register[2]})
	one := emu.Cpu[1]
	assert.Equal([]int64{1, 2, 0}, []int64{one.Register[0], one.Register[1], one.Register[2]})

	// Both are stuck on the last receive.
	assert.Equal(int64(6), zero.Pc)
	assert.Equal(int64(6), one.Pc)
}

func TestEmulator_Halt(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(assemble(t, []string{"set a 1"}))

	state, err := emu.Tick()
	assert.NoError(err)
	assert.Equal(STATE_RUNNING, state)

	state, err = emu.Tick()
	assert.NoError(err)
	assert.Equal(STATE_HALTED, state)

	for _, machine := range emu.Cpu {
		assert.Equal(int64(1), machine.Register[0])
		assert.True(machine.Halted())
	}
	assert.Equal(0, emu.Result())
}

func TestEmulator_Deadlock(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(assemble(t, []string{"rcv a", "rcv b"}))

	state, err := emu.Tick()
	assert.NoError(err)
	assert.Equal(STATE_DEADLOCK, state)
	assert.Equal(1, emu.Rounds)

	for _, machine := range emu.Cpu {
		assert.Equal(int64(0), machine.Pc)
		assert.Equal(int64(0), machine.Register[0])
	}
}

func TestEmulator_OneSided(t *testing.T) {
	assert := assert.New(t)

	// Machine 1 skips straight to the receives; machine 0 feeds it.
	emu := NewEmulator(assemble(t, []string{
		"jgz p 3",
		"snd 5",
		"snd 6",
		"rcv a",
		"rcv b",
	}))

	state, err := emu.Run()
	assert.NoError(err)
	assert.Equal(STATE_HALTED, state)
	assert.Equal(5, emu.Rounds)
	assert.Equal(0, emu.Result())
	assert.Equal(2, emu.Sent[0])
	assert.Equal(int64(5), emu.Cpu[1].Register[0])
	assert.Equal(int64(6), emu.Cpu[1].Register[1])
	assert.True(emu.Cpu[1].Halted())
	assert.Equal(int64(3), emu.Cpu[0].Pc)
}

func TestEmulator_HaltBeatsBlock(t *testing.T) {
	assert := assert.New(t)

	// Machine 0 blocks while machine 1 runs off the end.
	emu := NewEmulator(assemble(t, []string{
		"jgz p 2",
		"rcv a",
	}))

	state, err := emu.Tick()
	assert.NoError(err)
	assert.Equal(STATE_RUNNING, state)

	state, err = emu.Tick()
	assert.NoError(err)
	assert.Equal(STATE_HALTED, state)
}

func TestEmulator_Countdown(t *testing.T) {
	assert := assert.New(t)

	// Each machine sends a countdown, receiving the partner's value
	// after every send.
	emu := NewEmulator(assemble(t, []string{
		"set i 3",
		"snd i",
		"rcv a",
		"add i -1",
		"jgz i -3",
	}))

	state, err := emu.Run()
	assert.NoError(err)
	assert.Equal(STATE_HALTED, state)
	assert.Equal(14, emu.Rounds)
	assert.Equal(3, emu.Result())
	assert.Equal(3, emu.Sent[0])
	for _, machine := range emu.Cpu {
		assert.Equal(int64(1), machine.Register[0])
		assert.True(machine.Input.Empty())
	}
}

func TestEmulator_Reset(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(assemble(t, []string{"snd 1", "rcv a"}))
	machines := emu.Cpu
	_, err := emu.Run()
	assert.NoError(err)
	assert.NotEqual(0, emu.Rounds)

	emu.Cpu[1].Input.Send(9)
	emu.Cpu[0].Register[3] = 4

	emu.QueueCapacity = 2
	emu.Reset()
	assert.Equal(0, emu.Rounds)
	assert.Equal(0, emu.Result())
	for id, machine := range emu.Cpu {
		assert.Equal(int64(0), machine.Pc)
		assert.Equal(int64(id), machine.Register[ID_REGISTER])
		assert.Same(machines[id], machine)
		assert.Equal(int64(0), machine.Register[3])
		assert.True(machine.Input.Empty())
		assert.Equal(2, machine.Input.Capacity)
		assert.Equal(0, machine.Ticks)
	}

	state, err := emu.Run()
	assert.NoError(err)
	assert.Equal(STATE_HALTED, state)
	assert.Equal(1, emu.Result())
}

func TestEmulator_RuntimeError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(assemble(t, []string{
		"set a 1",
		"mod a p",
	}))

	_, err := emu.Run()
	assert.ErrorIs(err, cpu.ErrModuloZero)

	var rt *ErrRuntime
	if assert.True(errors.As(err, &rt)) {
		assert.Equal(0, rt.Machine)
		assert.Equal(2, rt.LineNo)
	}
}

func TestEmulator_QueueCapacity(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(assemble(t, []string{
		"snd 1",
		"jgz 1 -1",
	}))
	emu.QueueCapacity = 4
	emu.Reset()

	_, err := emu.Run()
	assert.ErrorIs(err, channel.ErrChannelFull)

	var rt *ErrRuntime
	if assert.True(errors.As(err, &rt)) {
		assert.Equal(1, rt.Machine)
	}
	assert.Equal(4, emu.Sent[0])
}

func TestState_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("running", STATE_RUNNING.String())
	assert.Equal("dead lock", STATE_DEADLOCK.String())
	assert.Equal("stopped", STATE_HALTED.String())
}
