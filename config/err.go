package config

import (
	"errors"

	"github.com/ezrec/duet/translate"
)

var f = translate.From

var (
	ErrInputMissing      = errors.New(f("input file missing"))
	ErrQueueCapacity     = errors.New(f("queue capacity negative"))
	ErrDefineInvalidName = errors.New(f("define name invalid"))
)

// ErrConfigKey is a key in the configuration that is not understood.
type ErrConfigKey string

func (err ErrConfigKey) Error() string {
	return f("unknown key '%v'", string(err))
}

// ErrConfig indicates the configuration file that failed to load.
type ErrConfig struct {
	Path string
	Err  error
}

func (err *ErrConfig) Error() string {
	return f("%v: %v", err.Path, err.Err)
}

func (err *ErrConfig) Unwrap() error {
	return err.Err
}
