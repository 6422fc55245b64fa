// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ezrec/duet/config"
	"github.com/ezrec/duet/cpu"
	"github.com/ezrec/duet/emulator"
	"github.com/ezrec/duet/translate"
)

func main() {
	var conf string

	flag.StringVar(&conf, "c", "", ".toml configuration file")
	config.DefineFlags(flag.CommandLine)

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	cfg := config.Default()
	if len(conf) != 0 {
		var err error
		cfg, err = config.Load(conf)
		if err != nil {
			log.Fatal(err)
		}
	}

	// Flags on the command line override the configuration file.
	err := cfg.Override(flag.CommandLine)
	if err != nil {
		log.Fatal(err)
	}

	inf, err := os.Open(cfg.Input)
	if err != nil {
		log.Fatalf("%v: %v", cfg.Input, err)
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: cfg.Verbose}
	for name, value := range cfg.Define {
		err = asm.Predefine(name, fmt.Sprintf("%d", value))
		if err != nil {
			log.Fatalf("%v: %v", name, err)
		}
	}

	prog, err := asm.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", cfg.Input, err)
	}

	emu := emulator.NewEmulator(prog)
	emu.Verbose = cfg.Verbose
	emu.QueueCapacity = cfg.QueueCapacity
	emu.Reset()

	state, err := emu.Run()
	if err != nil {
		log.Fatalf("%v: %v", cfg.Input, err)
	}

	switch state {
	case emulator.STATE_DEADLOCK:
		err = translate.Fprintln(os.Stdout, "dead lock")
	case emulator.STATE_HALTED:
		err = translate.Fprintln(os.Stdout, "Both programs stopped normally")
	}
	if err != nil {
		log.Fatal(err)
	}

	err = translate.Fprintln(os.Stdout, "Result: %d", emu.Result())
	if err != nil {
		log.Fatal(err)
	}
}
