package logic

import "time"

// Debouncer filters one bounce-prone binary input into a stable logical
// state. Transitions into ON and into OFF are confirmed over separate
// stability windows, so a signal can be quick to engage but slow to release
// (or vice versa).
//
// A new instance starts in the OFF state, matching the real-world idle
// default, and is fed exactly one raw sample per polling tick.
type Debouncer struct {
	// Raw pin level that counts as "on" for this signal.
	activeLevel bool

	// Current accepted state.
	stable State

	// When the still-unconfirmed departure from stable was first seen.
	// nil while no transition is in progress. A pointer rather than a
	// zero-time sentinel: a genuine sample at the zero time must not
	// read as "not pending".
	pendingSince *time.Time

	// Stability windows for transitions into ON and into OFF.
	onStable  time.Duration
	offStable time.Duration
}

// NewDebouncer creates a debouncer for a signal whose raw "on" level is
// activeLevel. The initial stable state is OFF.
func NewDebouncer(activeLevel bool, onStable, offStable time.Duration) *Debouncer {
	return &Debouncer{
		activeLevel: activeLevel,
		stable:      StateOff,
		onStable:    onStable,
		offStable:   offStable,
	}
}

// Update consumes one raw sample at the given time and returns the (possibly
// unchanged) stable state.
//
// The pending timer starts when the signal first departs from the settled
// state and is NOT re-armed on later samples in the same direction; only a
// return to the original stable level cancels it.
func (d *Debouncer) Update(raw bool, now time.Time) State {
	on := raw == d.activeLevel

	if on == (d.stable == StateOn) {
		// At the settled level: either nothing happened, or a pending
		// transition bounced back before it could be confirmed.
		d.pendingSince = nil
		return d.stable
	}

	if d.pendingSince == nil {
		t := now
		d.pendingSince = &t
		return d.stable
	}

	window := d.offStable
	if on {
		window = d.onStable
	}
	if now.Sub(*d.pendingSince) >= window {
		if on {
			d.stable = StateOn
		} else {
			d.stable = StateOff
		}
		d.pendingSince = nil
	}
	return d.stable
}

// Stable returns the current accepted state without consuming a sample.
func (d *Debouncer) Stable() State {
	return d.stable
}

// Settling reports whether a transition is currently awaiting confirmation.
func (d *Debouncer) Settling() bool {
	return d.pendingSince != nil
}
