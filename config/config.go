// Package config loads duet run settings from a TOML file.
//
// Example:
//
//	input = "day18.txt"
//	verbose = false
//	queue-capacity = 100000
//
//	[define]
//	ROUNDS = 127
package config

import (
	"flag"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/duet/cpu"
)

const (
	DEFAULT_INPUT = "input.txt" // Program file used when none is configured.

	FLAG_INPUT    = "i" // Flag overriding Input.
	FLAG_VERBOSE  = "v" // Flag overriding Verbose.
	FLAG_CAPACITY = "q" // Flag overriding QueueCapacity.
)

// Config holds the settings for a run.
type Config struct {
	Input         string           `toml:"input"`          // Program text file.
	Verbose       bool             `toml:"verbose"`        // Log each step.
	QueueCapacity int              `toml:"queue-capacity"` // Input queue limit, 0 for unbounded.
	Define        map[string]int64 `toml:"define"`         // Assembler predefines.
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Input: DEFAULT_INPUT,
	}
}

// Decode reads TOML settings over the defaults.
// Unknown keys are an error.
func Decode(r io.Reader) (cfg *Config, err error) {
	cfg = Default()

	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		cfg = nil
		return
	}

	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		cfg = nil
		err = ErrConfigKey(undecoded[0].String())
		return
	}

	err = cfg.Validate()
	if err != nil {
		cfg = nil
	}

	return
}

// Load reads the settings in a TOML file.
func Load(path string) (cfg *Config, err error) {
	defer func() {
		if err != nil {
			err = &ErrConfig{Path: path, Err: err}
		}
	}()

	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	return Decode(inf)
}

// Validate checks the settings are usable.
func (cfg *Config) Validate() (err error) {
	if len(cfg.Input) == 0 {
		err = ErrInputMissing
		return
	}

	if cfg.QueueCapacity < 0 {
		err = ErrQueueCapacity
		return
	}

	for name := range cfg.Define {
		if cpu.CheckEquate(name) != nil {
			err = ErrDefineInvalidName
			return
		}
	}

	return
}

// DefineFlags adds the flags that can override a configuration.
func DefineFlags(fs *flag.FlagSet) {
	fs.String(FLAG_INPUT, DEFAULT_INPUT, "Program input")
	fs.Bool(FLAG_VERBOSE, false, "Verbose mode, logs every step")
	fs.Int(FLAG_CAPACITY, 0, "Input queue capacity, 0 for unbounded")
}

// Override replaces settings with the flags set on the command line.
// Flags left at their defaults do not change the configuration.
func (cfg *Config) Override(fs *flag.FlagSet) (err error) {
	fs.Visit(func(fl *flag.Flag) {
		getter, ok := fl.Value.(flag.Getter)
		if !ok {
			return
		}
		switch fl.Name {
		case FLAG_INPUT:
			if value, ok := getter.Get().(string); ok {
				cfg.Input = value
			}
		case FLAG_VERBOSE:
			if value, ok := getter.Get().(bool); ok {
				cfg.Verbose = value
			}
		case FLAG_CAPACITY:
			if value, ok := getter.Get().(int); ok {
				cfg.QueueCapacity = value
			}
		}
	})

	return cfg.Validate()
}
