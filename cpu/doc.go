// Package cpu implements the register machine and assembler for duet.
//
// A Cpu has a program counter, twenty-six 64-bit registers (a-z), and an
// input and output queue of values. It executes a shared, read-only Program
// of seven instructions: snd, set, add, mul, mod, rcv and jgz. Each step
// reports a Signal so that a driver can interleave several machines and
// route their queues.
//
// The assembler reads one instruction per line, with ';' comments, .equ
// constants, and $(...) compile-time expressions.
package cpu
