package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string       `json:"event,omitempty"`
	Reason        string       `json:"reason,omitempty"`
	Cooktop       string       `json:"cooktop"`
	Hood          string       `json:"hood"`
	Warning       bool         `json:"warning"`
	Settling      bool         `json:"settling"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	StartTime     string       `json:"start_time"`
	Timestamp     string       `json:"timestamp"`
	MQTT          MQTTStatus   `json:"mqtt"`
	Counts        CountsJSON   `json:"event_counts"`
	Network       *NetworkJSON `json:"network,omitempty"`
	Config        ConfigJSON   `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	CooktopOn  int `json:"cooktop_on"`
	CooktopOff int `json:"cooktop_off"`
	HoodOn     int `json:"hood_on"`
	HoodOff    int `json:"hood_off"`
	WarnOn     int `json:"warn_on"`
	WarnOff    int `json:"warn_off"`
}

// NetworkJSON is the JSON representation of network info.
type NetworkJSON struct {
	Type       string `json:"type"`
	IP         string `json:"ip"`
	Status     string `json:"status"`
	Gateway    string `json:"gateway"`
	WifiStatus string `json:"wifi_status"`
	SSID       string `json:"ssid"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs       int64  `json:"poll_ms"`
	CooktopOnMs  int64  `json:"cooktop_on_stable_ms"`
	CooktopOffMs int64  `json:"cooktop_off_stable_ms"`
	HoodMs       int64  `json:"hood_stable_ms"`
	BlinkMs      int64  `json:"blink_half_period_ms"`
	HeartbeatMs  int64  `json:"heartbeat_ms"`
	Broker       string `json:"broker"`
	HTTPAddr     string `json:"http_addr"`
	WSBroker     string `json:"ws_broker,omitempty"`
}

func buildInner(snap Snapshot) StatusInner {
	cooktop := string(snap.Cooktop)
	if cooktop == "" {
		cooktop = "UNKNOWN"
	}
	hood := string(snap.Hood)
	if hood == "" {
		hood = "UNKNOWN"
	}

	return StatusInner{
		Cooktop:       cooktop,
		Hood:          hood,
		Warning:       snap.Warning,
		Settling:      snap.Settling,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			CooktopOn:  snap.Counts.CooktopOn,
			CooktopOff: snap.Counts.CooktopOff,
			HoodOn:     snap.Counts.HoodOn,
			HoodOff:    snap.Counts.HoodOff,
			WarnOn:     snap.Counts.WarnOn,
			WarnOff:    snap.Counts.WarnOff,
		},
		Config: ConfigJSON{
			PollMs:       snap.Config.PollMs,
			CooktopOnMs:  snap.Config.CooktopOnMs,
			CooktopOffMs: snap.Config.CooktopOffMs,
			HoodMs:       snap.Config.HoodMs,
			BlinkMs:      snap.Config.BlinkMs,
			HeartbeatMs:  snap.Config.HeartbeatMs,
			Broker:       snap.Config.Broker,
			HTTPAddr:     snap.Config.HTTPAddr,
			WSBroker:     snap.Config.WSBroker,
		},
	}
}

func buildNetwork(snap Snapshot, inner *StatusInner) {
	if snap.Network != nil {
		inner.Network = &NetworkJSON{
			Type:       snap.Network.Type,
			IP:         snap.Network.IP,
			Status:     snap.Network.Status,
			Gateway:    snap.Network.Gateway,
			WifiStatus: snap.Network.WifiStatus,
			SSID:       snap.Network.SSID,
		}
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	inner := buildInner(snap)
	buildNetwork(snap, &inner)

	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason
	buildNetwork(snap, &inner)

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
