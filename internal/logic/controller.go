package logic

import "time"

// Controller runs the per-tick pipeline: raw samples in, indicator levels
// and transition events out. It owns the two debouncers and the alerter;
// nothing else reads or writes them.
type Controller struct {
	cooktop *Debouncer
	hood    *Debouncer
	alert   *Alerter

	eventCounts   EventCounts
	startTime     time.Time
	lastHeartbeat time.Time
}

// NewController creates a controller with the given fixed configuration.
// The startTime is used for calculating uptime in heartbeat events.
func NewController(cfg Config, startTime time.Time) *Controller {
	return &Controller{
		cooktop:       NewDebouncer(cfg.CooktopActiveLevel, cfg.CooktopOnStable, cfg.CooktopOffStable),
		hood:          NewDebouncer(cfg.HoodActiveLevel, cfg.HoodStable, cfg.HoodStable),
		alert:         NewAlerter(cfg.BlinkHalfPeriod),
		startTime:     startTime,
		lastHeartbeat: startTime,
	}
}

// Tick processes one sample of both inputs and returns the output levels
// plus any events to be emitted. Cooktop is always evaluated before hood,
// so simultaneous transitions report the cooktop event first.
func (c *Controller) Tick(in Input) (Outputs, []Event) {
	prevCooktop := c.cooktop.Stable()
	prevHood := c.hood.Stable()
	prevWarn := c.alert.Active()

	cooktop := c.cooktop.Update(in.Cooktop, in.Time)
	hood := c.hood.Update(in.Hood, in.Time)
	warn := c.alert.Update(cooktop == StateOn, hood == StateOn, in.Time)

	var events []Event
	emit := func(t EventType) {
		events = append(events, Event{
			Timestamp: in.Time,
			Type:      t,
			Cooktop:   cooktop,
			Hood:      hood,
			Warning:   c.alert.Active(),
		})
	}

	if cooktop != prevCooktop {
		if cooktop == StateOn {
			emit(EventCooktopOn)
			c.eventCounts.CooktopOn++
		} else {
			emit(EventCooktopOff)
			c.eventCounts.CooktopOff++
		}
	}
	if hood != prevHood {
		if hood == StateOn {
			emit(EventHoodOn)
			c.eventCounts.HoodOn++
		} else {
			emit(EventHoodOff)
			c.eventCounts.HoodOff++
		}
	}
	if c.alert.Active() != prevWarn {
		if c.alert.Active() {
			emit(EventWarnOn)
			c.eventCounts.WarnOn++
		} else {
			emit(EventWarnOff)
			c.eventCounts.WarnOff++
		}
	}

	out := Outputs{Warn: warn, Status: warn}
	if c.Settling() {
		out.Status = true
	}
	return out, events
}

// CurrentState returns the current stable states.
func (c *Controller) CurrentState() (cooktop, hood State) {
	return c.cooktop.Stable(), c.hood.Stable()
}

// Warning reports whether the warning condition held at the last tick.
func (c *Controller) Warning() bool {
	return c.alert.Active()
}

// Settling reports whether either input is awaiting confirmation of a
// transition.
func (c *Controller) Settling() bool {
	return c.cooktop.Settling() || c.hood.Settling()
}

// EventCountsSnapshot returns a copy of the event counts since startup.
func (c *Controller) EventCountsSnapshot() EventCounts {
	return c.eventCounts
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since
// the last heartbeat (or startup). Returns nil if the interval has not
// elapsed or if interval is <= 0 (disabled).
func (c *Controller) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}

	if now.Sub(c.lastHeartbeat) < interval {
		return nil
	}

	c.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(c.startTime),
		Counts:    c.eventCounts,
	}
}
