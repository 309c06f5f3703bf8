package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sweeney/cooktop-guard/internal/logic"
	"github.com/sweeney/cooktop-guard/internal/status"
)

func newTestServer(t *testing.T) (*httptest.Server, *status.Tracker) {
	t.Helper()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := status.Config{
		PollMs:       50,
		CooktopOnMs:  100,
		CooktopOffMs: 3000,
		HoodMs:       1000,
		BlinkMs:      250,
		HeartbeatMs:  900000,
		Broker:       "tcp://192.168.1.200:1883",
		HTTPAddr:     ":80",
	}
	tr := status.NewTracker(start, cfg)
	srv := New(":0", tr)
	ts := httptest.NewServer(srv.httpServer.Handler)
	t.Cleanup(ts.Close)
	return ts, tr
}

func TestJSONEndpoint(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.Update(logic.StateOn, logic.StateOff, true, false, logic.EventCounts{CooktopOn: 5, WarnOn: 3})
	tr.SetMQTTConnected(true)

	resp, err := http.Get(ts.URL + "/index.json")
	if err != nil {
		t.Fatalf("GET /index.json: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}

	var sj status.StatusJSON
	if err := json.NewDecoder(resp.Body).Decode(&sj); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}

	if sj.Status.Cooktop != "ON" {
		t.Errorf("cooktop: got %q, want ON", sj.Status.Cooktop)
	}
	if sj.Status.Hood != "OFF" {
		t.Errorf("hood: got %q, want OFF", sj.Status.Hood)
	}
	if !sj.Status.Warning {
		t.Error("expected warning=true")
	}
	if !sj.Status.MQTT.Connected {
		t.Error("expected MQTT.Connected=true")
	}
	if sj.Status.MQTT.Broker != "tcp://192.168.1.200:1883" {
		t.Errorf("MQTT.Broker: got %q, want tcp://192.168.1.200:1883", sj.Status.MQTT.Broker)
	}
	if sj.Status.Counts.CooktopOn != 5 {
		t.Errorf("Counts.CooktopOn: got %d, want 5", sj.Status.Counts.CooktopOn)
	}
	if sj.Status.Counts.WarnOn != 3 {
		t.Errorf("Counts.WarnOn: got %d, want 3", sj.Status.Counts.WarnOn)
	}
	if sj.Status.Config.PollMs != 50 {
		t.Errorf("Config.PollMs: got %d, want 50", sj.Status.Config.PollMs)
	}
}

func TestJSONUnknownStateBeforeFirstTick(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/index.json")
	if err != nil {
		t.Fatalf("GET /index.json: %v", err)
	}
	defer resp.Body.Close()

	var sj status.StatusJSON
	json.NewDecoder(resp.Body).Decode(&sj)

	if sj.Status.Cooktop != "UNKNOWN" {
		t.Errorf("cooktop before first tick: got %q, want UNKNOWN", sj.Status.Cooktop)
	}
	if sj.Status.Hood != "UNKNOWN" {
		t.Errorf("hood before first tick: got %q, want UNKNOWN", sj.Status.Hood)
	}
}

func TestIndexPage(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.Update(logic.StateOn, logic.StateOff, true, true, logic.EventCounts{})

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type: got %q, want text/html", ct)
	}

	body, _ := io.ReadAll(resp.Body)
	html := string(body)

	if !strings.Contains(html, "Cooktop Guard") {
		t.Error("page should contain the title")
	}
	if !strings.Contains(html, "BLINKING") {
		t.Error("page should show the warning as blinking")
	}
	if !strings.Contains(html, "Settling") {
		t.Error("page should show the settling row")
	}
}

func TestIndexPageNotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/nope")
	if err != nil {
		t.Fatalf("GET /nope: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 404 {
		t.Errorf("status: got %d, want 404", resp.StatusCode)
	}
}

func TestJSONNetworkInfo(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.SetNetwork(&status.NetworkInfo{
		Type:   "wifi",
		IP:     "192.168.1.42",
		Status: "connected",
		SSID:   "MyNet",
	})

	resp, err := http.Get(ts.URL + "/index.json")
	if err != nil {
		t.Fatalf("GET /index.json: %v", err)
	}
	defer resp.Body.Close()

	var sj status.StatusJSON
	json.NewDecoder(resp.Body).Decode(&sj)

	if sj.Status.Network == nil {
		t.Fatal("expected network info")
	}
	if sj.Status.Network.IP != "192.168.1.42" {
		t.Errorf("network.ip: got %q", sj.Status.Network.IP)
	}
	if sj.Status.Network.SSID != "MyNet" {
		t.Errorf("network.ssid: got %q", sj.Status.Network.SSID)
	}
}
