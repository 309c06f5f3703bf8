//go:build !linux

package gpio

import "errors"

// RealIO is not available on non-Linux platforms.
type RealIO struct{}

// NewRealIO returns an error on non-Linux platforms.
func NewRealIO(pinCooktop, pinHood, pinWarn, pinStatus int) (*RealIO, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Read is not implemented on non-Linux platforms.
func (r *RealIO) Read() (bool, bool, error) {
	return false, false, errors.New("gpio: not supported")
}

// Write is not implemented on non-Linux platforms.
func (r *RealIO) Write(warn, status bool) error {
	return errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (r *RealIO) Close() error {
	return nil
}
