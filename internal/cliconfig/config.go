package cliconfig

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bft-labs/xhspost/internal/domain"
)

// Defaults for the Brave browser on macOS and the Xiaohongshu creator portal.
const (
	DefaultBrowserApp = "Brave Browser"
	DefaultTargetURL  = "https://creator.xiaohongshu.com/publish/publish?source=&published=true"
	DefaultTargetHost = "creator.xiaohongshu.com"
	DefaultTitleTopic = "英语学习打卡"
)

// Config holds CLI configuration for xhspost.
type Config struct {
	BrowserApp   string
	BrowserPath  string
	ProcessMatch string

	DebugPort     int
	PortScanStart int
	PortScanEnd   int

	TargetURL     string
	TargetHost    string
	TitleTopic    string
	DefaultTopics []string
	SelectorsFile string
	StateDir      string

	LaunchSettle      time.Duration
	StartupWait       time.Duration
	PageLoadWait      time.Duration
	PageSettle        time.Duration
	QuitWait          time.Duration
	NavigateTimeout   time.Duration
	UploadTimeout     time.Duration
	SuggestionTimeout time.Duration
	TypeDelay         time.Duration
	ExtraTypeDelay    time.Duration
	ConnectTimeout    time.Duration

	LogLevel string
	NoColor  bool
	DryRun   bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		BrowserApp:        DefaultBrowserApp,
		DebugPort:         domain.DefaultDebugPort,
		PortScanStart:     9223,
		PortScanEnd:       9299,
		TargetURL:         DefaultTargetURL,
		TargetHost:        DefaultTargetHost,
		TitleTopic:        DefaultTitleTopic,
		DefaultTopics:     append([]string(nil), domain.DefaultTopics...),
		StateDir:          DefaultStateDir(),
		LaunchSettle:      3 * time.Second,
		StartupWait:       5 * time.Second,
		PageLoadWait:      5 * time.Second,
		PageSettle:        2 * time.Second,
		QuitWait:          2 * time.Second,
		NavigateTimeout:   60 * time.Second,
		UploadTimeout:     5 * time.Minute,
		SuggestionTimeout: 5 * time.Second,
		TypeDelay:         100 * time.Millisecond,
		ExtraTypeDelay:    50 * time.Millisecond,
		ConnectTimeout:    10 * time.Second,
		LogLevel:          "info",
	}
}

// BrowserExecutable returns the executable inside a standard macOS
// application bundle for app.
func BrowserExecutable(app string) string {
	return "/Applications/" + app + ".app/Contents/MacOS/" + app
}

// ProcessName returns the first word of app. lsof truncates command names,
// so "Brave Browser" is listed as "Brave".
func ProcessName(app string) string {
	if f := strings.Fields(app); len(f) > 0 {
		return f[0]
	}
	return app
}

// Validate checks the configuration for errors and fills BrowserPath and
// ProcessMatch from BrowserApp when they are unset.
func (c *Config) Validate() error {
	var errs []error

	if c.BrowserApp == "" {
		errs = append(errs, errors.New("browser-app is required"))
	} else {
		if c.BrowserPath == "" {
			c.BrowserPath = BrowserExecutable(c.BrowserApp)
		}
		if c.ProcessMatch == "" {
			c.ProcessMatch = ProcessName(c.BrowserApp)
		}
	}

	for name, port := range map[string]int{
		"debug-port":      c.DebugPort,
		"port-scan-start": c.PortScanStart,
		"port-scan-end":   c.PortScanEnd,
	} {
		if port < 1 || port > 65535 {
			errs = append(errs, fmt.Errorf("%s %d out of range", name, port))
		}
	}
	if c.PortScanStart > c.PortScanEnd {
		errs = append(errs, fmt.Errorf("port-scan-start %d is after port-scan-end %d", c.PortScanStart, c.PortScanEnd))
	}

	if c.TargetURL == "" {
		errs = append(errs, errors.New("target-url is required"))
	}
	if c.TargetHost == "" {
		errs = append(errs, errors.New("target-host is required"))
	} else if c.TargetURL != "" && !strings.Contains(c.TargetURL, c.TargetHost) {
		errs = append(errs, fmt.Errorf("target-url %q does not contain target-host %q", c.TargetURL, c.TargetHost))
	}
	if c.TitleTopic == "" {
		errs = append(errs, errors.New("title-topic is required"))
	}
	if len(c.DefaultTopics) == 0 {
		errs = append(errs, errors.New("default-topics must not be empty"))
	}

	if c.NavigateTimeout <= 0 {
		errs = append(errs, errors.New("navigate-timeout must be positive"))
	}
	if c.UploadTimeout <= 0 {
		errs = append(errs, errors.New("upload-timeout must be positive"))
	}
	if c.SuggestionTimeout <= 0 {
		errs = append(errs, errors.New("suggestion-timeout must be positive"))
	}
	for name, d := range map[string]time.Duration{
		"launch-settle":    c.LaunchSettle,
		"startup-wait":     c.StartupWait,
		"page-load-wait":   c.PageLoadWait,
		"page-settle":      c.PageSettle,
		"quit-wait":        c.QuitWait,
		"type-delay":       c.TypeDelay,
		"extra-type-delay": c.ExtraTypeDelay,
		"connect-timeout":  c.ConnectTimeout,
	} {
		if d < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative", name))
		}
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log-level %q must be one of debug, info, warn, error", c.LogLevel))
	}

	return errors.Join(errs...)
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setList sets a list if it has entries and flag not changed.
func (s *configSetter) setList(flag string, value []string, dst *[]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = append([]string(nil), value...)
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
