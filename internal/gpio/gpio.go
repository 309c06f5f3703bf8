// Package gpio provides GPIO access with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
//
// Raw pin levels cross this boundary unmodified; signal polarity is the
// business of the logic layer.
package gpio

// Reader reads the raw input levels.
type Reader interface {
	// Read returns the raw levels of the cooktop and hood sense pins.
	// Returns (cooktop, hood, error).
	Read() (bool, bool, error)

	// Close releases GPIO resources.
	Close() error
}

// Writer drives the two indicator pins.
type Writer interface {
	// Write sets the warning and status indicator levels.
	Write(warn, status bool) error
}

// Default pin assignments (BCM numbering).
const (
	DefaultPinCooktop = 26 // cooktop power sense (input)
	DefaultPinHood    = 16 // hood ventilation sense (input)
	DefaultPinWarn    = 20 // warning indicator (output)
	DefaultPinStatus  = 21 // status indicator (output)
)
