// Command cooktop-guard monitors the cooktop and hood sense inputs and
// drives the warning indicator when the cooktop runs without ventilation.
// State changes are published to MQTT and exposed on an HTTP status page.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/cooktop-guard/internal/gpio"
	"github.com/sweeney/cooktop-guard/internal/logic"
	"github.com/sweeney/cooktop-guard/internal/mqtt"
	"github.com/sweeney/cooktop-guard/internal/status"
	"github.com/sweeney/cooktop-guard/internal/web"
)

// options collects the parsed flag values.
type options struct {
	poll       time.Duration
	cfg        logic.Config
	broker     string
	heartbeat  time.Duration
	pinCooktop int
	pinHood    int
	pinWarn    int
	pinStatus  int
	printState bool
	httpAddr   string
	wsBroker   string
}

func main() {
	poll := flag.Duration("poll", 50*time.Millisecond, "GPIO polling interval")
	cooktopOn := flag.Duration("cooktop-on-stable", 100*time.Millisecond, "Stability window for cooktop turning on")
	cooktopOff := flag.Duration("cooktop-off-stable", 3*time.Second, "Stability window for cooktop turning off")
	hoodStable := flag.Duration("hood-stable", time.Second, "Stability window for hood transitions (both directions)")
	blink := flag.Duration("blink-half-period", 250*time.Millisecond, "Warning indicator blink half-period")
	cooktopActiveLow := flag.Bool("cooktop-active-low", false, "Cooktop sense is active-low")
	hoodActiveLow := flag.Bool("hood-active-low", false, "Hood sense is active-low")
	broker := flag.String("broker", "tcp://192.168.1.200:1883", "MQTT broker address")
	heartbeat := flag.Duration("heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	pinCooktop := flag.Int("pin-cooktop", gpio.DefaultPinCooktop, "BCM pin number for cooktop sense")
	pinHood := flag.Int("pin-hood", gpio.DefaultPinHood, "BCM pin number for hood sense")
	pinWarn := flag.Int("pin-warn", gpio.DefaultPinWarn, "BCM pin number for warning indicator")
	pinStatus := flag.Int("pin-status", gpio.DefaultPinStatus, "BCM pin number for status indicator")
	printState := flag.Bool("print-state", false, "Print current state and exit")
	httpAddr := flag.String("http", ":80", "HTTP status address (empty to disable)")
	wsBroker := flag.String("ws-broker", "=broker", `MQTT websocket URL for live UI ("=broker" derives from --broker, "off" disables)`)

	flag.Parse()

	opts := options{
		poll: *poll,
		cfg: logic.Config{
			CooktopActiveLevel: !*cooktopActiveLow,
			HoodActiveLevel:    !*hoodActiveLow,
			CooktopOnStable:    *cooktopOn,
			CooktopOffStable:   *cooktopOff,
			HoodStable:         *hoodStable,
			BlinkHalfPeriod:    *blink,
		},
		broker:     *broker,
		heartbeat:  *heartbeat,
		pinCooktop: *pinCooktop,
		pinHood:    *pinHood,
		pinWarn:    *pinWarn,
		pinStatus:  *pinStatus,
		printState: *printState,
		httpAddr:   *httpAddr,
		wsBroker:   resolveWSBroker(*wsBroker, *broker),
	}

	if err := run(opts); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(opts options) error {
	// Initialize GPIO
	io, err := gpio.NewRealIO(opts.pinCooktop, opts.pinHood, opts.pinWarn, opts.pinStatus)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer io.Close()

	// Print state mode
	if opts.printState {
		cooktopRaw, hoodRaw, err := io.Read()
		if err != nil {
			return fmt.Errorf("read gpio: %w", err)
		}
		cooktop := stateString(cooktopRaw == opts.cfg.CooktopActiveLevel)
		hood := stateString(hoodRaw == opts.cfg.HoodActiveLevel)
		fmt.Printf("Cooktop: %s, Hood: %s\n", cooktop, hood)
		return nil
	}

	// Initialize MQTT
	publisher := mqtt.NewRealPublisher(opts.broker)
	defer publisher.Close()

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:       opts.poll.Milliseconds(),
		CooktopOnMs:  opts.cfg.CooktopOnStable.Milliseconds(),
		CooktopOffMs: opts.cfg.CooktopOffStable.Milliseconds(),
		HoodMs:       opts.cfg.HoodStable.Milliseconds(),
		BlinkMs:      opts.cfg.BlinkHalfPeriod.Milliseconds(),
		HeartbeatMs:  opts.heartbeat.Milliseconds(),
		Broker:       opts.broker,
		HTTPAddr:     opts.httpAddr,
		WSBroker:     opts.wsBroker,
	})
	if net := readNetworkInfo(); net != nil {
		tracker.SetNetwork(net)
	}

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}

	// Start HTTP status server
	if opts.httpAddr != "" {
		srv := web.New(opts.httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", opts.httpAddr)
	}

	log.Printf("started: poll=%v cooktop-on=%v cooktop-off=%v hood=%v blink=%v broker=%s heartbeat=%v",
		opts.poll, opts.cfg.CooktopOnStable, opts.cfg.CooktopOffStable, opts.cfg.HoodStable,
		opts.cfg.BlinkHalfPeriod, opts.broker, opts.heartbeat)

	ticker := time.NewTicker(opts.poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(io, io, publisher, publisher, tracker, opts.cfg, opts.heartbeat, time.Now, ticker.C, sigCh)
}

func runLoop(reader gpio.Reader, writer gpio.Writer, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, cfg logic.Config, heartbeat time.Duration, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	startTime := now()
	ctrl := logic.NewController(cfg, startTime)

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				snap := tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			// Leave the indicators dark rather than frozen mid-blink.
			if err := writer.Write(false, false); err != nil {
				log.Printf("gpio write error: %v", err)
			}
			return nil

		case <-tick:
			t := now()
			cooktopRaw, hoodRaw, err := reader.Read()
			if err != nil {
				log.Printf("gpio read error: %v", err)
				continue
			}

			out, events := ctrl.Tick(logic.Input{
				Cooktop: cooktopRaw,
				Hood:    hoodRaw,
				Time:    t,
			})

			if err := writer.Write(out.Warn, out.Status); err != nil {
				log.Printf("gpio write error: %v", err)
				// Don't crash on write failure
			}

			for _, event := range events {
				log.Printf("event: %s (cooktop=%s hood=%s warning=%v)", event.Type, event.Cooktop, event.Hood, event.Warning)
				if err := publisher.Publish(event); err != nil {
					log.Printf("publish error: %v", err)
					// Don't crash on publish failure
				}
			}

			// Check for heartbeat
			if hbData := ctrl.CheckHeartbeat(t, heartbeat); hbData != nil {
				log.Printf("heartbeat: uptime=%v cooktop_on=%d cooktop_off=%d hood_on=%d hood_off=%d warn_on=%d warn_off=%d",
					hbData.Uptime, hbData.Counts.CooktopOn, hbData.Counts.CooktopOff,
					hbData.Counts.HoodOn, hbData.Counts.HoodOff, hbData.Counts.WarnOn, hbData.Counts.WarnOff)

				hbEvent := mqtt.SystemEvent{
					Timestamp: hbData.Timestamp,
					Event:     "HEARTBEAT",
				}
				if tracker != nil {
					if mqttStatus != nil {
						tracker.SetMQTTConnected(mqttStatus.IsConnected())
					}
					// Refresh network info for heartbeat
					if net := readNetworkInfo(); net != nil {
						tracker.SetNetwork(net)
					}
					cooktop, hood := ctrl.CurrentState()
					tracker.Update(cooktop, hood, ctrl.Warning(), ctrl.Settling(), ctrl.EventCountsSnapshot())
					snap := tracker.Snapshot()
					hbEvent.RawPayload = status.FormatStatusEvent(snap, "HEARTBEAT", "")
				}
				if err := publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}

			// Update status tracker for HTTP consumers
			if tracker != nil {
				cooktop, hood := ctrl.CurrentState()
				tracker.Update(cooktop, hood, ctrl.Warning(), ctrl.Settling(), ctrl.EventCountsSnapshot())
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}
		}
	}
}

// pi-helper env var names (written to /run/pi-helper.env).
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

func readNetworkInfo() *status.NetworkInfo {
	s := os.Getenv(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       os.Getenv(envNetworkType),
		IP:         os.Getenv(envNetworkIP),
		Status:     s,
		Gateway:    os.Getenv(envNetworkGateway),
		WifiStatus: os.Getenv(envNetworkWifiStatus),
		SSID:       os.Getenv(envNetworkWifiSSID),
	}
}

func stateString(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}

// resolveWSBroker converts the --ws-broker flag value into a concrete URL.
// "=broker" derives ws://host:9001 from the TCP broker address; "off" disables.
func resolveWSBroker(ws, broker string) string {
	if ws == "off" {
		return ""
	}
	if ws != "=broker" {
		return ws
	}
	u, err := url.Parse(broker)
	if err != nil {
		log.Printf("ws-broker: cannot parse --broker %q: %v", broker, err)
		return ""
	}
	u.Scheme = "ws"
	u.Host = u.Hostname() + ":9001"
	return u.String()
}
