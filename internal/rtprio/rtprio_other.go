//go:build !linux

package rtprio

import "errors"

var errUnsupported = errors.New("rtprio: not supported on this platform")

// Raise does nothing outside Linux and reports that.
func Raise() error {
	return errUnsupported
}

