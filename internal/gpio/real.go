//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealIO reads and drives GPIO on actual hardware using the Linux GPIO
// character device. It implements both Reader and Writer.
type RealIO struct {
	chip       *gpiocdev.Chip
	cooktopPin *gpiocdev.Line
	hoodPin    *gpiocdev.Line
	warnPin    *gpiocdev.Line
	statusPin  *gpiocdev.Line
}

// NewRealIO opens gpiochip0 and requests the two sense pins as inputs and
// the two indicator pins as outputs (initially low).
func NewRealIO(pinCooktop, pinHood, pinWarn, pinStatus int) (*RealIO, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	r := &RealIO{chip: chip}

	// Request inputs with pull-down to match Pi boot defaults. This keeps
	// behavior consistent with external optocoupler modules.
	r.cooktopPin, err = chip.RequestLine(pinCooktop, gpiocdev.AsInput, gpiocdev.WithPullDown)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("request cooktop pin %d: %w", pinCooktop, err)
	}

	r.hoodPin, err = chip.RequestLine(pinHood, gpiocdev.AsInput, gpiocdev.WithPullDown)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("request hood pin %d: %w", pinHood, err)
	}

	r.warnPin, err = chip.RequestLine(pinWarn, gpiocdev.AsOutput(0))
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("request warn pin %d: %w", pinWarn, err)
	}

	r.statusPin, err = chip.RequestLine(pinStatus, gpiocdev.AsOutput(0))
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("request status pin %d: %w", pinStatus, err)
	}

	return r, nil
}

// Read returns the raw levels of the cooktop and hood sense pins.
func (r *RealIO) Read() (bool, bool, error) {
	cooktopRaw, err := r.cooktopPin.Value()
	if err != nil {
		return false, false, fmt.Errorf("read cooktop pin: %w", err)
	}

	hoodRaw, err := r.hoodPin.Value()
	if err != nil {
		return false, false, fmt.Errorf("read hood pin: %w", err)
	}

	return cooktopRaw != 0, hoodRaw != 0, nil
}

// Write sets the warning and status indicator levels.
func (r *RealIO) Write(warn, status bool) error {
	if err := r.warnPin.SetValue(level(warn)); err != nil {
		return fmt.Errorf("write warn pin: %w", err)
	}
	if err := r.statusPin.SetValue(level(status)); err != nil {
		return fmt.Errorf("write status pin: %w", err)
	}
	return nil
}

func level(on bool) int {
	if on {
		return 1
	}
	return 0
}

// Close releases GPIO resources. Indicator pins are driven low and all pins
// reconfigured to input with pull-down (matching Pi boot defaults) before
// closing, so the indicators do not stay lit across a restart.
func (r *RealIO) Close() error {
	var errs []error

	for _, out := range []*gpiocdev.Line{r.warnPin, r.statusPin} {
		if out == nil {
			continue
		}
		if err := out.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("clear output: %w", err))
		}
	}

	for _, line := range []*gpiocdev.Line{r.cooktopPin, r.hoodPin, r.warnPin, r.statusPin} {
		if line == nil {
			continue
		}
		if err := line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure pin: %w", err))
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close pin: %w", err))
		}
	}

	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
