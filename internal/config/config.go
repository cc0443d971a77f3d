// Package config reads the ambient settings of the timer from the
// environment. The timer durations themselves are asked for interactively.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sadopc/pomo/internal/pomodoro"
	"github.com/sadopc/pomo/internal/tui"
)

const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
	MinTick          = 10 * time.Millisecond
)

type UIMode string

const (
	UILine UIMode = "line"
	UIForm UIMode = "form"
)

// AppConfig holds the ambient settings.
type AppConfig struct {
	LogLevel   string
	LogFormat  string // text or json
	Tick       time.Duration
	BarWidth   int
	CancelMode pomodoro.CancelMode
	UI         UIMode
	Sound      bool
	Summary    bool
	ExportPath string // empty disables export
}

func Default() *AppConfig {
	return &AppConfig{
		LogLevel:   DefaultLogLevel,
		LogFormat:  DefaultLogFormat,
		Tick:       pomodoro.DefaultTick,
		BarWidth:   tui.DefaultBarWidth,
		CancelMode: pomodoro.CancelAbort,
		UI:         UILine,
		Sound:      true,
		Summary:    true,
	}
}

// Load reads configuration from environment variables and a .env file (if
// present). Existing environment variables win over the file.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()
	return LoadFrom(os.Getenv)
}

// LoadFrom never returns a nil config. Every invalid variable keeps its
// default and contributes one error to the joined result.
func LoadFrom(getenv func(string) string) (*AppConfig, error) {
	cfg := Default()
	var errs []error

	if v := strings.ToLower(getenv("POMODORO_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}

	switch v := strings.ToLower(getenv("POMODORO_LOG_FORMAT")); v {
	case "":
	case "text", "json":
		cfg.LogFormat = v
	default:
		errs = append(errs, fmt.Errorf("invalid POMODORO_LOG_FORMAT %q", v))
	}

	if v := getenv("POMODORO_TICK"); v != "" {
		d, err := time.ParseDuration(v)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("invalid POMODORO_TICK: %w", err))
		case d < MinTick:
			errs = append(errs, fmt.Errorf("POMODORO_TICK %s is below %s", d, MinTick))
		default:
			cfg.Tick = d
		}
	}

	if v := getenv("POMODORO_BAR_WIDTH"); v != "" {
		n, err := strconv.Atoi(v)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("invalid POMODORO_BAR_WIDTH: %w", err))
		case n < 1:
			errs = append(errs, fmt.Errorf("POMODORO_BAR_WIDTH must be positive, got %d", n))
		default:
			cfg.BarWidth = n
		}
	}

	if v := getenv("POMODORO_CANCEL_MODE"); v != "" {
		mode, err := pomodoro.ParseCancelMode(v)
		if err != nil {
			errs = append(errs, err)
		} else {
			cfg.CancelMode = mode
		}
	}

	switch v := UIMode(strings.ToLower(getenv("POMODORO_UI"))); v {
	case "":
	case UILine, UIForm:
		cfg.UI = v
	default:
		errs = append(errs, fmt.Errorf("invalid POMODORO_UI %q", v))
	}

	var err error
	if cfg.Sound, err = parseSwitch("POMODORO_SOUND", getenv("POMODORO_SOUND"), cfg.Sound); err != nil {
		errs = append(errs, err)
	}
	if cfg.Summary, err = parseSwitch("POMODORO_SUMMARY", getenv("POMODORO_SUMMARY"), cfg.Summary); err != nil {
		errs = append(errs, err)
	}

	cfg.ExportPath = strings.TrimSpace(getenv("POMODORO_EXPORT"))

	return cfg, errors.Join(errs...)
}

func parseSwitch(name, v string, def bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "":
		return def, nil
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return def, fmt.Errorf("invalid %s %q", name, v)
}
