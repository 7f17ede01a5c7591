// Package config loads the runtime settings of the keypad programs from
// TOML.
//
// Settings cover timing, GPIO pin names, the output backend and logging.
// The key layout itself is not configurable; it is [keymap.Default].
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/ardnew/softkeypad/engine"
	"github.com/ardnew/softkeypad/keymap"
	"github.com/ardnew/softkeypad/pkg"
)

// Output backends.
const (
	BackendUinput = "uinput" // Linux virtual keyboard
	BackendHIDG   = "hidg"   // Linux USB gadget HID endpoint
	BackendLog    = "log"    // Log keystrokes only
)

type Config struct {
	Timing  TimingConfig  `toml:"timing"`
	GPIO    GPIOConfig    `toml:"gpio"`
	Output  OutputConfig  `toml:"output"`
	Logging LoggingConfig `toml:"logging"`
}

type TimingConfig struct {
	TickPeriod   string `toml:"tick_period"`
	Debounce     uint32 `toml:"debounce"`
	FirstRepeat  uint32 `toml:"first_repeat"`
	NextRepeat   uint32 `toml:"next_repeat"`
	PollInterval string `toml:"poll_interval"`
}

type GPIOConfig struct {
	Rows []string `toml:"rows"`
	Cols []string `toml:"cols"`
	LEDs []string `toml:"leds"`
}

type OutputConfig struct {
	Backend string `toml:"backend"`
	Device  string `toml:"device"`
	Name    string `toml:"name"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the reference configuration: 5 ms ticks, 2/100/1 tick
// thresholds and a Raspberry Pi header pinout.
func Default() Config {
	th := engine.DefaultThresholds()
	return Config{
		Timing: TimingConfig{
			TickPeriod:   engine.DefaultTickPeriod.String(),
			Debounce:     th.Debounce,
			FirstRepeat:  th.FirstRepeat,
			NextRepeat:   th.NextRepeat,
			PollInterval: time.Millisecond.String(),
		},
		GPIO: GPIOConfig{
			Rows: []string{"GPIO4", "GPIO17", "GPIO27", "GPIO22"},
			Cols: []string{"GPIO5", "GPIO6", "GPIO13", "GPIO19"},
			LEDs: []string{"GPIO16", "GPIO20", "GPIO21"},
		},
		Output: OutputConfig{
			Backend: BackendUinput,
			Device:  "/dev/uinput",
			Name:    "softkeypad",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads the file at path over the defaults. A missing file yields the
// defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		pkg.LogInfo(pkg.ComponentConfig, "config file not found, using defaults", "path", path)
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses TOML from r over the defaults and validates the result.
// Unknown keys are rejected.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("%w: %s", pkg.ErrInvalidConfig, strict.String())
		}
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate checks every value for range and consistency.
func (c Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{pkg.ErrInvalidConfig}, args...)...))
	}

	if d, err := time.ParseDuration(c.Timing.TickPeriod); err != nil || d <= 0 {
		invalid("timing.tick_period %q must be a positive duration", c.Timing.TickPeriod)
	}
	if d, err := time.ParseDuration(c.Timing.PollInterval); err != nil || d < 0 {
		invalid("timing.poll_interval %q must be a non-negative duration", c.Timing.PollInterval)
	}
	if c.Timing.FirstRepeat == 0 {
		invalid("timing.first_repeat must be at least 1")
	}
	if c.Timing.NextRepeat == 0 {
		invalid("timing.next_repeat must be at least 1")
	}
	if len(c.GPIO.Rows) != keymap.Rows {
		invalid("gpio.rows has %d pins, want %d", len(c.GPIO.Rows), keymap.Rows)
	}
	if len(c.GPIO.Cols) != keymap.Cols {
		invalid("gpio.cols has %d pins, want %d", len(c.GPIO.Cols), keymap.Cols)
	}
	if len(c.GPIO.LEDs) > 3 {
		invalid("gpio.leds has %d pins, want at most 3", len(c.GPIO.LEDs))
	}
	switch c.Output.Backend {
	case BackendUinput, BackendHIDG:
		if strings.TrimSpace(c.Output.Device) == "" {
			invalid("output.device is required for backend %q", c.Output.Backend)
		}
	case BackendLog:
	default:
		invalid("output.backend %q is not one of uinput, hidg, log", c.Output.Backend)
	}
	if _, ok := pkg.ParseLogLevel(c.Logging.Level); !ok {
		invalid("logging.level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json", "":
	default:
		invalid("logging.format %q is not text or json", c.Logging.Format)
	}
	return errors.Join(errs...)
}

// Thresholds returns the engine tick thresholds.
func (c Config) Thresholds() engine.Thresholds {
	return engine.Thresholds{
		Debounce:    c.Timing.Debounce,
		FirstRepeat: c.Timing.FirstRepeat,
		NextRepeat:  c.Timing.NextRepeat,
	}
}

// TickPeriod returns the engine tick period, or the default if unparsable.
func (c Config) TickPeriod() time.Duration {
	d, err := time.ParseDuration(c.Timing.TickPeriod)
	if err != nil || d <= 0 {
		return engine.DefaultTickPeriod
	}
	return d
}

// PollInterval returns the pause between dispatch iterations.
func (c Config) PollInterval() time.Duration {
	d, err := time.ParseDuration(c.Timing.PollInterval)
	if err != nil || d < 0 {
		return time.Millisecond
	}
	return d
}

// SlogLevel returns the configured log level.
func (c Config) SlogLevel() slog.Level {
	level, _ := pkg.ParseLogLevel(c.Logging.Level)
	return level
}

// LogFormat returns the configured log format.
func (c Config) LogFormat() pkg.LogFormat {
	if c.Logging.Format == "json" {
		return pkg.LogFormatJSON
	}
	return pkg.LogFormatText
}
