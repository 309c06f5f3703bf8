package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/cooktop-guard/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"stateOrUnknown": func(s string) string {
		if s == "" {
			return "UNKNOWN"
		}
		return s
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Cooktop Guard</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.on { color: green; font-weight: bold; }
.off { color: #888; }
.unknown { color: orange; }
.warning { color: red; font-weight: bold; }
.connected { color: green; }
.disconnected { color: red; }
.live-dot { display: inline-block; width: 8px; height: 8px; border-radius: 50%; margin-left: 6px; vertical-align: middle; }
.live-dot.ok { background: green; }
.live-dot.err { background: red; }
.live-dot.pending { background: orange; }
</style>
</head>
<body>
<h1>Cooktop Guard{{if .Config.WSBroker}}<span id="live-dot" class="live-dot pending" title="connecting"></span>{{end}}</h1>

<h2>State</h2>
<table>
<tr><th>Cooktop</th><td id="cooktop-state" class="{{if eq (stateOrUnknown (printf "%s" .Cooktop)) "ON"}}on{{else if eq (stateOrUnknown (printf "%s" .Cooktop)) "OFF"}}off{{else}}unknown{{end}}">{{stateOrUnknown (printf "%s" .Cooktop)}}</td></tr>
<tr><th>Hood</th><td id="hood-state" class="{{if eq (stateOrUnknown (printf "%s" .Hood)) "ON"}}on{{else if eq (stateOrUnknown (printf "%s" .Hood)) "OFF"}}off{{else}}unknown{{end}}">{{stateOrUnknown (printf "%s" .Hood)}}</td></tr>
<tr><th>Warning</th><td id="warn-state" class="{{if .Warning}}warning{{else}}off{{end}}">{{if .Warning}}BLINKING{{else}}off{{end}}</td></tr>
<tr><th>Settling</th><td>{{if .Settling}}yes{{else}}no{{end}}</td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
{{if .Network}}<tr><th>Network</th><td>{{.Network.Status}} ({{.Network.Type}}{{if .Network.SSID}} — {{.Network.SSID}}{{end}})</td></tr>
<tr><th>IP</th><td>{{.Network.IP}}</td></tr>{{end}}
</table>

<h2>Event Counts</h2>
<table>
<tr><th>Cooktop ON</th><td>{{.Counts.CooktopOn}}</td></tr>
<tr><th>Cooktop OFF</th><td>{{.Counts.CooktopOff}}</td></tr>
<tr><th>Hood ON</th><td>{{.Counts.HoodOn}}</td></tr>
<tr><th>Hood OFF</th><td>{{.Counts.HoodOff}}</td></tr>
<tr><th>Warn ON</th><td>{{.Counts.WarnOn}}</td></tr>
<tr><th>Warn OFF</th><td>{{.Counts.WarnOff}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}}ms</td></tr>
<tr><th>Cooktop on-stable</th><td>{{.Config.CooktopOnMs}}ms</td></tr>
<tr><th>Cooktop off-stable</th><td>{{.Config.CooktopOffMs}}ms</td></tr>
<tr><th>Hood stable</th><td>{{.Config.HoodMs}}ms</td></tr>
<tr><th>Blink half-period</th><td>{{.Config.BlinkMs}}ms</td></tr>
<tr><th>Heartbeat</th><td>{{if eq .Config.HeartbeatMs 0}}disabled{{else}}{{.Config.HeartbeatMs}}ms{{end}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
{{if .Config.WSBroker}}
<script src="/mqtt.min.js"></script>
<script>
(function() {
  var broker = "{{.Config.WSBroker}}";
  var topic = "kitchen/cooktop-guard/events";
  var dot = document.getElementById("live-dot");
  var cooktopEl = document.getElementById("cooktop-state");
  var hoodEl = document.getElementById("hood-state");
  var warnEl = document.getElementById("warn-state");

  function setState(el, state) {
    el.textContent = state;
    el.className = state === "ON" ? "on" : state === "OFF" ? "off" : "unknown";
  }

  function setWarning(on) {
    warnEl.textContent = on ? "BLINKING" : "off";
    warnEl.className = on ? "warning" : "off";
  }

  function setDot(cls, title) {
    dot.className = "live-dot " + cls;
    dot.title = title;
  }

  var client = mqtt.connect(broker, { reconnectPeriod: 5000 });

  client.on("connect", function() {
    setDot("ok", "live");
    client.subscribe(topic);
  });

  client.on("reconnect", function() {
    setDot("pending", "reconnecting");
  });

  client.on("offline", function() {
    setDot("err", "offline");
  });

  client.on("error", function() {
    setDot("err", "error");
  });

  client.on("message", function(t, payload) {
    try {
      var msg = JSON.parse(payload.toString());
      if (msg.cooktop_guard) {
        setState(cooktopEl, msg.cooktop_guard.cooktop.state);
        setState(hoodEl, msg.cooktop_guard.hood.state);
        setWarning(msg.cooktop_guard.warning);
      }
    } catch (e) {}
  });
})();
</script>
{{end}}
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	indexTmpl.Execute(w, data)
}
