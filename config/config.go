package config

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/soocke/smile-booth-go/assets"
	"github.com/soocke/smile-booth-go/domain/booth"
	"github.com/soocke/smile-booth-go/domain/detect"
)

// EnvPrefix prefixes every environment override, e.g. BOOTH_TIMING_COOLDOWN.
const EnvPrefix = "BOOTH_"

const (
	SourceScreen    = "screen"
	SourceSynthetic = "synthetic"

	DetectorCascade = "cascade"
	DetectorScript  = "script"
)

// Config holds runtime configuration for the booth. Values come from the
// embedded defaults, an optional YAML file and BOOTH_* environment variables,
// in that order.
type Config struct {
	Debug    bool           `yaml:"debug" env:"DEBUG"`
	Camera   CameraConfig   `yaml:"camera" envPrefix:"CAMERA_"`
	Detector DetectorConfig `yaml:"detector" envPrefix:"DETECTOR_"`
	Timing   TimingConfig   `yaml:"timing" envPrefix:"TIMING_"`
	Messages MessageConfig  `yaml:"messages" envPrefix:"MESSAGES_"`
	Playback PlaybackConfig `yaml:"playback" envPrefix:"PLAYBACK_"`
}

type CameraConfig struct {
	Source string `yaml:"source" env:"SOURCE"`
	X      int    `yaml:"x" env:"X"`
	Y      int    `yaml:"y" env:"Y"`
	Width  int    `yaml:"width" env:"WIDTH"`
	Height int    `yaml:"height" env:"HEIGHT"`
	FPS    int    `yaml:"fps" env:"FPS"`
}

type DetectorConfig struct {
	Kind                   string  `yaml:"kind" env:"KIND"`
	CascadePath            string  `yaml:"cascade_path" env:"CASCADE_PATH"`
	MaxFaces               int     `yaml:"max_faces" env:"MAX_FACES"`
	MinDetectionConfidence float64 `yaml:"min_detection_confidence" env:"MIN_DETECTION_CONFIDENCE"`
	MinTrackingConfidence  float64 `yaml:"min_tracking_confidence" env:"MIN_TRACKING_CONFIDENCE"`
	Script                 []int   `yaml:"script" env:"SCRIPT" envSeparator:","`
}

// TimingConfig expresses every delay as a multiple of TimeUnit.
type TimingConfig struct {
	TimeUnit          time.Duration `yaml:"time_unit" env:"TIME_UNIT"`
	CountdownStep     float64       `yaml:"countdown_step" env:"COUNTDOWN_STEP"`
	CaptureInterval   float64       `yaml:"capture_interval" env:"CAPTURE_INTERVAL"`
	PlaybackInterval  float64       `yaml:"playback_interval" env:"PLAYBACK_INTERVAL"`
	Cooldown          float64       `yaml:"cooldown" env:"COOLDOWN"`
	ReviewHold        float64       `yaml:"review_hold" env:"REVIEW_HOLD"`
	CountdownMessages []string      `yaml:"countdown_messages" env:"COUNTDOWN_MESSAGES" envSeparator:","`
}

type MessageConfig struct {
	NoFace             string `yaml:"no_face" env:"NO_FACE"`
	LookingForFace     string `yaml:"looking_for_face" env:"LOOKING_FOR_FACE"`
	InsufficientFrames string `yaml:"insufficient_frames" env:"INSUFFICIENT_FRAMES"`
}

type PlaybackConfig struct {
	Width  int `yaml:"width" env:"WIDTH"`
	Height int `yaml:"height" env:"HEIGHT"`
}

// DefaultConfig returns the embedded defaults. It panics if the embedded
// YAML is malformed.
func DefaultConfig() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	_ = cfg.Validate()
	return cfg
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.Camera.Source != SourceScreen && c.Camera.Source != SourceSynthetic {
		c.Camera.Source = SourceScreen
	}
	if c.Camera.Width <= 0 {
		c.Camera.Width = 640
	}
	if c.Camera.Height <= 0 {
		c.Camera.Height = 480
	}
	if c.Camera.FPS <= 0 || c.Camera.FPS > 120 {
		c.Camera.FPS = 30
	}

	if c.Detector.Kind != DetectorCascade && c.Detector.Kind != DetectorScript {
		c.Detector.Kind = detect.DefaultKind
	}
	if c.Detector.MaxFaces <= 0 {
		c.Detector.MaxFaces = 1
	}
	if c.Detector.MinDetectionConfidence < 0 || c.Detector.MinDetectionConfidence > 1 {
		c.Detector.MinDetectionConfidence = 0.5
	}
	if c.Detector.MinTrackingConfidence < 0 || c.Detector.MinTrackingConfidence > 1 {
		c.Detector.MinTrackingConfidence = 0.5
	}

	t := &c.Timing
	if t.TimeUnit <= 0 {
		t.TimeUnit = time.Second
	}
	if t.CountdownStep <= 0 {
		t.CountdownStep = 1
	}
	if t.CaptureInterval <= 0 {
		t.CaptureInterval = 0.5
	}
	if t.PlaybackInterval <= 0 {
		t.PlaybackInterval = 0.2
	}
	if t.Cooldown <= 0 {
		t.Cooldown = 1
	}
	if t.ReviewHold < 0 {
		t.ReviewHold = 0
	}
	if len(t.CountdownMessages) == 0 {
		t.CountdownMessages = []string{"2", "1", "Go!"}
	}

	if c.Messages.NoFace == "" {
		c.Messages.NoFace = "No face detected"
	}
	if c.Messages.LookingForFace == "" {
		c.Messages.LookingForFace = "Looking for face..."
	}
	if c.Messages.InsufficientFrames == "" {
		c.Messages.InsufficientFrames = "Not enough frames."
	}

	if c.Playback.Width <= 0 {
		c.Playback.Width = 320
	}
	if c.Playback.Height <= 0 {
		c.Playback.Height = 240
	}
	return nil
}

// Load reads the YAML file at path over the embedded defaults and applies
// environment overrides. A missing file is not an error. On a decode error
// it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, err
		default:
			dec := yaml.NewDecoder(bytes.NewReader(data))
			if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
				return DefaultConfig(), fmt.Errorf("config: decode %s: %w", path, err)
			}
		}
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("config: environment: %w", err)
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in YAML format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

func (t TimingConfig) unit(v float64) time.Duration {
	return time.Duration(v * float64(t.TimeUnit))
}

// BoothTiming converts the unit-based settings into engine timing.
func (c *Config) BoothTiming() booth.Timing {
	t := c.Timing
	return booth.Timing{
		CountdownStep:     t.unit(t.CountdownStep),
		CaptureInterval:   t.unit(t.CaptureInterval),
		PlaybackInterval:  t.unit(t.PlaybackInterval),
		Cooldown:          t.unit(t.Cooldown),
		ReviewHold:        t.unit(t.ReviewHold),
		CountdownMessages: append([]string(nil), t.CountdownMessages...),
	}
}

func (c *Config) BoothMessages() booth.Messages {
	return booth.Messages{NoFace: c.Messages.NoFace, LookingForFace: c.Messages.LookingForFace}
}

// Region is the screen rectangle the camera grabs.
func (c *Config) Region() image.Rectangle {
	return image.Rect(c.Camera.X, c.Camera.Y, c.Camera.X+c.Camera.Width, c.Camera.Y+c.Camera.Height)
}

// SetRegion stores r as the camera origin and size.
func (c *Config) SetRegion(r image.Rectangle) {
	if r.Empty() {
		return
	}
	c.Camera.X, c.Camera.Y = r.Min.X, r.Min.Y
	c.Camera.Width, c.Camera.Height = r.Dx(), r.Dy()
}

func (c *Config) DetectOptions() detect.Options {
	return detect.Options{
		MaxFaces:               c.Detector.MaxFaces,
		MinDetectionConfidence: c.Detector.MinDetectionConfidence,
		MinTrackingConfidence:  c.Detector.MinTrackingConfidence,
	}
}

// Scale returns a copy of c with TimeUnit multiplied by factor.
func (c *Config) Scale(factor float64) *Config {
	clone := *c
	if factor > 0 {
		clone.Timing.TimeUnit = time.Duration(float64(c.Timing.TimeUnit) * factor)
	}
	clone.Timing.CountdownMessages = append([]string(nil), c.Timing.CountdownMessages...)
	clone.Detector.Script = append([]int(nil), c.Detector.Script...)
	return &clone
}
