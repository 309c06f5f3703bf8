package gpio

import "errors"

// FakeIO is a test double that returns scripted input levels and records
// every output write.
type FakeIO struct {
	// Samples contains scripted raw (cooktop, hood) levels to return.
	// Each call to Read() consumes the next sample.
	Samples []Sample

	// Writes records every (warn, status) pair passed to Write.
	Writes []OutputWrite

	// index tracks current position in Samples
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error

	// WriteError, if set, will be returned by Write()
	WriteError error
}

// Sample represents a single reading of the two input pins (raw levels).
type Sample struct {
	Cooktop bool
	Hood    bool
}

// OutputWrite records one Write call.
type OutputWrite struct {
	Warn   bool
	Status bool
}

// NewFakeIO creates a FakeIO with the given samples.
func NewFakeIO(samples []Sample) *FakeIO {
	return &FakeIO{Samples: samples}
}

// Read returns the next scripted sample.
// If samples are exhausted, returns the last sample repeatedly.
func (f *FakeIO) Read() (bool, bool, error) {
	if f.ReadError != nil {
		return false, false, f.ReadError
	}

	if len(f.Samples) == 0 {
		return false, false, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}

	return sample.Cooktop, sample.Hood, nil
}

// Write records the output levels.
func (f *FakeIO) Write(warn, status bool) error {
	if f.WriteError != nil {
		return f.WriteError
	}
	f.Writes = append(f.Writes, OutputWrite{Warn: warn, Status: status})
	return nil
}

// LastWrite returns the most recent write and whether any write happened.
func (f *FakeIO) LastWrite() (OutputWrite, bool) {
	if len(f.Writes) == 0 {
		return OutputWrite{}, false
	}
	return f.Writes[len(f.Writes)-1], true
}

// Close marks the fake as closed.
func (f *FakeIO) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the fake to the beginning of samples and clears writes.
func (f *FakeIO) Reset() {
	f.index = 0
	f.Writes = nil
	f.Closed = false
}
