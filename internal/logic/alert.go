package logic

import "time"

// Alerter decides the warning indicator level from the two debounced states.
// The warning condition is "cooktop on AND hood off"; while it holds the
// indicator blinks with a fixed half-period, and the moment it clears the
// indicator is forced off with no final blink.
type Alerter struct {
	halfPeriod time.Duration

	// lastToggle is only meaningful while the warning condition holds. It
	// goes stale while the indicator is off, so the first Update after the
	// condition returns will almost always toggle immediately instead of
	// waiting a full half-period. Intentional: the indicator reacts at
	// once when the warning re-arms.
	lastToggle time.Time

	active bool
	level  bool
}

// NewAlerter creates an Alerter blinking at the given half-period (the
// indicator spends halfPeriod on, then halfPeriod off).
func NewAlerter(halfPeriod time.Duration) *Alerter {
	return &Alerter{halfPeriod: halfPeriod}
}

// Update evaluates the warning condition for one tick and returns the new
// indicator level.
func (a *Alerter) Update(cooktopOn, hoodOn bool, now time.Time) bool {
	a.active = cooktopOn && !hoodOn

	if !a.active {
		a.level = false
		return false
	}

	if now.Sub(a.lastToggle) >= a.halfPeriod {
		a.level = !a.level
		a.lastToggle = now
	}
	return a.level
}

// Active reports whether the warning condition held at the last Update.
func (a *Alerter) Active() bool {
	return a.active
}

// Level returns the indicator level set by the last Update.
func (a *Alerter) Level() bool {
	return a.level
}
