// Package logic contains pure business logic for the cooktop warning
// controller. This package has NO external dependencies (no GPIO, MQTT, OS,
// or time.Sleep). Time is always injectable via time.Time parameters.
package logic

import "time"

// State represents the logical state of a monitored signal.
type State string

const (
	StateOn  State = "ON"
	StateOff State = "OFF"
)

// EventType represents a state transition event.
type EventType string

const (
	EventCooktopOn  EventType = "COOKTOP_ON"
	EventCooktopOff EventType = "COOKTOP_OFF"
	EventHoodOn     EventType = "HOOD_ON"
	EventHoodOff    EventType = "HOOD_OFF"
	EventWarnOn     EventType = "WARN_ON"
	EventWarnOff    EventType = "WARN_OFF"
)

// Event represents a state transition to be published.
type Event struct {
	Timestamp time.Time
	Type      EventType
	Cooktop   State
	Hood      State
	Warning   bool
}

// Input is a single tick's worth of raw samples. Cooktop and Hood carry the
// raw pin levels; polarity is applied by the debouncers.
type Input struct {
	Cooktop bool
	Hood    bool
	Time    time.Time
}

// Outputs are the levels to drive on the two indicator pins after a tick.
// Status is forced high while either input is settling, and mirrors Warn
// otherwise.
type Outputs struct {
	Warn   bool
	Status bool
}

// Config holds the fixed controller parameters. All values are set once at
// startup and never change.
type Config struct {
	// Raw pin level that means "on" for each input.
	CooktopActiveLevel bool
	HoodActiveLevel    bool

	// How long a candidate cooktop transition must persist before it is
	// accepted, separately for transitions into ON and into OFF.
	CooktopOnStable  time.Duration
	CooktopOffStable time.Duration

	// Hood uses one stability window in both directions.
	HoodStable time.Duration

	// Half the blink period of the warning indicator.
	BlinkHalfPeriod time.Duration
}

// EventCounts tracks the number of each event type since startup.
type EventCounts struct {
	CooktopOn  int
	CooktopOff int
	HoodOn     int
	HoodOff    int
	WarnOn     int
	WarnOff    int
}

// HeartbeatData contains information for a heartbeat event.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Counts    EventCounts
}
