package channel

import (
	"errors"

	"github.com/ezrec/duet/translate"
)

var f = translate.From

var (
	// Queue errors
	ErrChannelFull = errors.New(f("channel full"))
)
