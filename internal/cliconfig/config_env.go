package cliconfig

import (
	"os"
	"time"

	"github.com/bft-labs/xhspost/internal/domain"
)

// EnvPrefix prefixes every environment variable xhspost reads.
const EnvPrefix = "XHSPOST_"

// ApplyEnvConfig applies configuration from environment variables (XHSPOST_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)
	env := func(key string) string { return os.Getenv(EnvPrefix + key) }

	s.setString("browser-app", env("BROWSER_APP"), &cfg.BrowserApp)
	s.setString("browser-path", env("BROWSER_PATH"), &cfg.BrowserPath)
	s.setString("process-match", env("PROCESS_MATCH"), &cfg.ProcessMatch)
	s.setString("target-url", env("TARGET_URL"), &cfg.TargetURL)
	s.setString("target-host", env("TARGET_HOST"), &cfg.TargetHost)
	s.setString("title-topic", env("TITLE_TOPIC"), &cfg.TitleTopic)
	s.setString("selectors", env("SELECTORS_FILE"), &cfg.SelectorsFile)
	s.setString("state-dir", env("STATE_DIR"), &cfg.StateDir)
	s.setString("log-level", env("LOG_LEVEL"), &cfg.LogLevel)
	s.setList("default-topics", domain.ParseTopics(env("DEFAULT_TOPICS")), &cfg.DefaultTopics)

	if err := s.setIntFromString("debug-port", env("DEBUG_PORT"), &cfg.DebugPort); err != nil {
		return err
	}
	if err := s.setIntFromString("port-scan-start", env("PORT_SCAN_START"), &cfg.PortScanStart); err != nil {
		return err
	}
	if err := s.setIntFromString("port-scan-end", env("PORT_SCAN_END"), &cfg.PortScanEnd); err != nil {
		return err
	}

	durations := []struct {
		flag string
		key  string
		dst  *time.Duration
	}{
		{"launch-settle", "LAUNCH_SETTLE", &cfg.LaunchSettle},
		{"startup-wait", "STARTUP_WAIT", &cfg.StartupWait},
		{"page-load-wait", "PAGE_LOAD_WAIT", &cfg.PageLoadWait},
		{"page-settle", "PAGE_SETTLE", &cfg.PageSettle},
		{"quit-wait", "QUIT_WAIT", &cfg.QuitWait},
		{"navigate-timeout", "NAVIGATE_TIMEOUT", &cfg.NavigateTimeout},
		{"upload-timeout", "UPLOAD_TIMEOUT", &cfg.UploadTimeout},
		{"suggestion-timeout", "SUGGESTION_TIMEOUT", &cfg.SuggestionTimeout},
		{"type-delay", "TYPE_DELAY", &cfg.TypeDelay},
		{"extra-type-delay", "EXTRA_TYPE_DELAY", &cfg.ExtraTypeDelay},
		{"connect-timeout", "CONNECT_TIMEOUT", &cfg.ConnectTimeout},
	}
	for _, d := range durations {
		if err := s.setDuration(d.flag, env(d.key), d.dst); err != nil {
			return err
		}
	}

	s.setBoolFromString("no-color", env("NO_COLOR"), &cfg.NoColor)

	return nil
}
