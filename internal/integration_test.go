package internal

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sweeney/cooktop-guard/internal/gpio"
	"github.com/sweeney/cooktop-guard/internal/logic"
	"github.com/sweeney/cooktop-guard/internal/mqtt"
)

func guardConfig() logic.Config {
	return logic.Config{
		CooktopActiveLevel: true,
		HoodActiveLevel:    true,
		CooktopOnStable:    100 * time.Millisecond,
		CooktopOffStable:   3 * time.Second,
		HoodStable:         time.Second,
		BlinkHalfPeriod:    250 * time.Millisecond,
	}
}

// TestIntegrationWarningScenario runs the full pipeline with fakes through a
// cooking session: the cooktop comes on at t=0 and the hood only at t=700ms.
//
// Expected timeline (50ms polling):
//   t=100    cooktop debounced on, warning starts blinking (first toggle)
//   t=350    blink low, t=600 high, ... (250ms half-period)
//   t=700    hood raw goes active (confirms after 1s)
//   t=1700   hood debounced on, warning forced off
func TestIntegrationWarningScenario(t *testing.T) {
	const step = 50 * time.Millisecond
	start := time.Date(2026, 1, 1, 18, 0, 0, 0, time.UTC)

	var samples []gpio.Sample
	for ms := 0; ms <= 2000; ms += 50 {
		samples = append(samples, gpio.Sample{
			Cooktop: true,
			Hood:    ms >= 700,
		})
	}

	io := gpio.NewFakeIO(samples)
	publisher := mqtt.NewFakePublisher()
	ctrl := logic.NewController(guardConfig(), start)

	for i := range samples {
		cooktopRaw, hoodRaw, err := io.Read()
		if err != nil {
			t.Fatalf("sample %d: gpio read error: %v", i, err)
		}

		now := start.Add(time.Duration(i) * step)
		out, events := ctrl.Tick(logic.Input{Cooktop: cooktopRaw, Hood: hoodRaw, Time: now})

		if err := io.Write(out.Warn, out.Status); err != nil {
			t.Fatalf("sample %d: gpio write error: %v", i, err)
		}
		for _, event := range events {
			if err := publisher.Publish(event); err != nil {
				t.Fatalf("sample %d: publish error: %v", i, err)
			}
		}
	}

	// Warn level per tick: blinking [100,1700) with toggles every 250ms
	// starting at t=100, dark before and after.
	expectWarn := func(ms int) bool {
		if ms < 100 || ms >= 1700 {
			return false
		}
		return ((ms-100)/250)%2 == 0
	}
	// Status: forced high while settling (cooktop [0,100), hood [700,1700)),
	// mirrors warn otherwise.
	expectStatus := func(ms int) bool {
		if ms < 100 || (ms >= 700 && ms < 1700) {
			return true
		}
		return expectWarn(ms)
	}

	if len(io.Writes) != len(samples) {
		t.Fatalf("expected %d writes, got %d", len(samples), len(io.Writes))
	}
	for i, w := range io.Writes {
		ms := i * 50
		if w.Warn != expectWarn(ms) {
			t.Errorf("t=%dms: warn got %v, want %v", ms, w.Warn, expectWarn(ms))
		}
		if w.Status != expectStatus(ms) {
			t.Errorf("t=%dms: status got %v, want %v", ms, w.Status, expectStatus(ms))
		}
	}

	// Events: cooktop on + warning on at t=100, hood on + warning off at t=1700
	if len(publisher.Events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(publisher.Events))
	}

	wantEvents := []struct {
		typ logic.EventType
		ms  int
	}{
		{logic.EventCooktopOn, 100},
		{logic.EventWarnOn, 100},
		{logic.EventHoodOn, 1700},
		{logic.EventWarnOff, 1700},
	}
	for i, want := range wantEvents {
		e := publisher.Events[i]
		if e.Type != want.typ {
			t.Errorf("event %d: got %s, want %s", i, e.Type, want.typ)
		}
		wantTime := start.Add(time.Duration(want.ms) * time.Millisecond)
		if !e.Timestamp.Equal(wantTime) {
			t.Errorf("event %d: got timestamp %v, want %v", i, e.Timestamp, wantTime)
		}
	}

	// Payloads are valid JSON with the envelope fields set
	for i, payload := range publisher.Payloads {
		var parsed mqtt.Payload
		if err := json.Unmarshal(payload, &parsed); err != nil {
			t.Errorf("payload %d: invalid JSON: %v", i, err)
		}
		if parsed.Guard.Timestamp == "" {
			t.Errorf("payload %d: missing timestamp", i)
		}
		if parsed.Guard.Event == "" {
			t.Errorf("payload %d: missing event", i)
		}
	}
}

// TestIntegrationBounceRejection verifies bounces shorter than the stability
// window never reach the outputs or the broker.
func TestIntegrationBounceRejection(t *testing.T) {
	samples := []gpio.Sample{
		{Cooktop: false, Hood: false},
		{Cooktop: true, Hood: false}, // bounce
		{Cooktop: false, Hood: false},
		{Cooktop: false, Hood: false},
	}

	io := gpio.NewFakeIO(samples)
	publisher := mqtt.NewFakePublisher()
	start := time.Date(2026, 1, 1, 18, 0, 0, 0, time.UTC)
	ctrl := logic.NewController(guardConfig(), start)

	for i := range samples {
		cooktopRaw, hoodRaw, _ := io.Read()
		now := start.Add(time.Duration(i) * 50 * time.Millisecond)
		out, events := ctrl.Tick(logic.Input{Cooktop: cooktopRaw, Hood: hoodRaw, Time: now})
		io.Write(out.Warn, out.Status)
		for _, event := range events {
			publisher.Publish(event)
		}
	}

	if len(publisher.Events) != 0 {
		t.Errorf("expected no events for bounce, got %d", len(publisher.Events))
	}
	for i, w := range io.Writes {
		if w.Warn {
			t.Errorf("write %d: warn must stay low", i)
		}
	}
}

// TestIntegrationHoodOnFirst verifies the warning never arms when the hood is
// already running before the cooktop comes on.
func TestIntegrationHoodOnFirst(t *testing.T) {
	var samples []gpio.Sample
	// Hood on from the start, cooktop joins at t=1500
	for ms := 0; ms <= 3000; ms += 50 {
		samples = append(samples, gpio.Sample{
			Cooktop: ms >= 1500,
			Hood:    true,
		})
	}

	io := gpio.NewFakeIO(samples)
	publisher := mqtt.NewFakePublisher()
	start := time.Date(2026, 1, 1, 18, 0, 0, 0, time.UTC)
	ctrl := logic.NewController(guardConfig(), start)

	for i := range samples {
		cooktopRaw, hoodRaw, _ := io.Read()
		now := start.Add(time.Duration(i) * 50 * time.Millisecond)
		out, events := ctrl.Tick(logic.Input{Cooktop: cooktopRaw, Hood: hoodRaw, Time: now})
		io.Write(out.Warn, out.Status)
		for _, event := range events {
			publisher.Publish(event)
		}
	}

	for i, w := range io.Writes {
		if w.Warn {
			t.Errorf("write %d: warn must never fire with the hood running", i)
		}
	}

	// HOOD_ON at t=1000, COOKTOP_ON at t=1600; no warning events
	if len(publisher.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(publisher.Events))
	}
	if publisher.Events[0].Type != logic.EventHoodOn {
		t.Errorf("event 0: got %s, want HOOD_ON", publisher.Events[0].Type)
	}
	if publisher.Events[1].Type != logic.EventCooktopOn {
		t.Errorf("event 1: got %s, want COOKTOP_ON", publisher.Events[1].Type)
	}
}
