package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/smile-booth-go/config"
	"github.com/soocke/smile-booth-go/ui/form"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel encapsulates the configuration form widgets and apply logic.
// It owns its widgets and writes back into *config.Config on ApplyChanges.
// Changes take effect on the next start of the application.
type ConfigPanel interface {
	Build(startRow int) (endRow int) // constructs widgets starting at startRow, returns next free row
	SetEditable(enabled bool)
	ApplyChanges() // parses widget text into underlying config and persists
}

type configPanel struct {
	cfg      *config.Config
	cfgPath  string
	logger   *slog.Logger
	applyBtn *ButtonWidget
	widgets  map[string]*TextWidget // keyed by field id
}

func NewConfigPanel(cfg *config.Config, cfgPath string, logger *slog.Logger) ConfigPanel {
	return &configPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, widgets: make(map[string]*TextWidget)}
}

func (v *configPanel) Build(startRow int) (row int) {
	c := v.cfg
	row = startRow
	makeRow := func(id, label, value string) {
		lbl := Label(Txt(label), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(20))
		Grid(w, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	makeRow("timeUnit", "Time Unit (e.g. 1s)", c.Timing.TimeUnit.String())
	makeRow("countdownStep", "Countdown Step (units)", fmt.Sprintf("%.2f", c.Timing.CountdownStep))
	makeRow("captureInterval", "Capture Interval (units)", fmt.Sprintf("%.2f", c.Timing.CaptureInterval))
	makeRow("playbackInterval", "Playback Interval (units)", fmt.Sprintf("%.2f", c.Timing.PlaybackInterval))
	makeRow("cooldown", "Cool-down (units)", fmt.Sprintf("%.2f", c.Timing.Cooldown))
	makeRow("reviewHold", "Review Hold (units)", fmt.Sprintf("%.2f", c.Timing.ReviewHold))
	makeRow("countdownMessages", "Countdown (comma separated)", strings.Join(c.Timing.CountdownMessages, ","))
	makeRow("fps", "Camera FPS", strconv.Itoa(c.Camera.FPS))
	makeRow("minDetection", "Min Detection Confidence", fmt.Sprintf("%.2f", c.Detector.MinDetectionConfidence))
	makeRow("minTracking", "Min Tracking Confidence", fmt.Sprintf("%.2f", c.Detector.MinTrackingConfidence))
	makeRow("noFace", "No Face Text", c.Messages.NoFace)
	makeRow("lookingForFace", "Cool-down Text", c.Messages.LookingForFace)
	v.applyBtn = Button(Txt("Apply Changes"), Command(func() { v.ApplyChanges() }))
	Grid(v.applyBtn, Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	return row
}

func (v *configPanel) SetEditable(enabled bool) {
	state := "disabled"
	if enabled {
		state = "normal"
	}
	for _, w := range v.widgets {
		if w != nil {
			w.Configure(State(state))
		}
	}
	if v.applyBtn != nil {
		v.applyBtn.Configure(State(state))
	}
}

func (v *configPanel) text(id string) (string, bool) {
	w := v.widgets[id]
	if w == nil {
		return "", false
	}
	s := strings.TrimSpace(strings.Join(w.Get("1.0", END), ""))
	return s, s != ""
}

func (v *configPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	cfg := *v.cfg
	assignFloat := func(id string, dst *float64) {
		if s, ok := v.text(id); ok {
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				*dst = f
			}
		}
	}
	assignFloat("countdownStep", &cfg.Timing.CountdownStep)
	assignFloat("captureInterval", &cfg.Timing.CaptureInterval)
	assignFloat("playbackInterval", &cfg.Timing.PlaybackInterval)
	assignFloat("cooldown", &cfg.Timing.Cooldown)
	assignFloat("reviewHold", &cfg.Timing.ReviewHold)
	assignFloat("minDetection", &cfg.Detector.MinDetectionConfidence)
	assignFloat("minTracking", &cfg.Detector.MinTrackingConfidence)
	if s, ok := v.text("timeUnit"); ok {
		if d, err := form.ParseDuration(s); err == nil {
			cfg.Timing.TimeUnit = d
		}
	}
	if s, ok := v.text("countdownMessages"); ok {
		cfg.Timing.CountdownMessages = form.SplitList(s)
	}
	if s, ok := v.text("fps"); ok {
		if i, err := strconv.Atoi(s); err == nil {
			cfg.Camera.FPS = i
		}
	}
	if s, ok := v.text("noFace"); ok {
		cfg.Messages.NoFace = s
	}
	if s, ok := v.text("lookingForFace"); ok {
		cfg.Messages.LookingForFace = s
	}
	if err := cfg.Validate(); err != nil {
		return
	}
	*v.cfg = cfg
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
		return
	}
	if v.logger != nil {
		v.logger.Info("config saved", "path", v.cfgPath)
	}
}
