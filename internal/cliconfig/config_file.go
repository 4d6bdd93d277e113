package cliconfig

import (
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	BrowserApp        string   `toml:"browser_app"`
	BrowserPath       string   `toml:"browser_path"`
	ProcessMatch      string   `toml:"process_match"`
	DebugPort         int      `toml:"debug_port"`
	PortScanStart     int      `toml:"port_scan_start"`
	PortScanEnd       int      `toml:"port_scan_end"`
	TargetURL         string   `toml:"target_url"`
	TargetHost        string   `toml:"target_host"`
	TitleTopic        string   `toml:"title_topic"`
	DefaultTopics     []string `toml:"default_topics"`
	SelectorsFile     string   `toml:"selectors_file"`
	StateDir          string   `toml:"state_dir"`
	LaunchSettle      string   `toml:"launch_settle"`
	StartupWait       string   `toml:"startup_wait"`
	PageLoadWait      string   `toml:"page_load_wait"`
	PageSettle        string   `toml:"page_settle"`
	QuitWait          string   `toml:"quit_wait"`
	NavigateTimeout   string   `toml:"navigate_timeout"`
	UploadTimeout     string   `toml:"upload_timeout"`
	SuggestionTimeout string   `toml:"suggestion_timeout"`
	TypeDelay         string   `toml:"type_delay"`
	ExtraTypeDelay    string   `toml:"extra_type_delay"`
	ConnectTimeout    string   `toml:"connect_timeout"`
	LogLevel          string   `toml:"log_level"`
	NoColor           *bool    `toml:"no_color"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultStateDir returns ~/.xhspost, or "" when the home directory is unknown.
func DefaultStateDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".xhspost")
	}
	return ""
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.xhspost/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if dir := DefaultStateDir(); dir != "" {
		return filepath.Join(dir, "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("browser-app", fc.BrowserApp, &cfg.BrowserApp)
	s.setString("browser-path", fc.BrowserPath, &cfg.BrowserPath)
	s.setString("process-match", fc.ProcessMatch, &cfg.ProcessMatch)
	s.setString("target-url", fc.TargetURL, &cfg.TargetURL)
	s.setString("target-host", fc.TargetHost, &cfg.TargetHost)
	s.setString("title-topic", fc.TitleTopic, &cfg.TitleTopic)
	s.setString("selectors", fc.SelectorsFile, &cfg.SelectorsFile)
	s.setString("state-dir", fc.StateDir, &cfg.StateDir)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setList("default-topics", fc.DefaultTopics, &cfg.DefaultTopics)

	s.setInt("debug-port", fc.DebugPort, &cfg.DebugPort)
	s.setInt("port-scan-start", fc.PortScanStart, &cfg.PortScanStart)
	s.setInt("port-scan-end", fc.PortScanEnd, &cfg.PortScanEnd)

	durations := []struct {
		flag  string
		value string
		dst   *time.Duration
	}{
		{"launch-settle", fc.LaunchSettle, &cfg.LaunchSettle},
		{"startup-wait", fc.StartupWait, &cfg.StartupWait},
		{"page-load-wait", fc.PageLoadWait, &cfg.PageLoadWait},
		{"page-settle", fc.PageSettle, &cfg.PageSettle},
		{"quit-wait", fc.QuitWait, &cfg.QuitWait},
		{"navigate-timeout", fc.NavigateTimeout, &cfg.NavigateTimeout},
		{"upload-timeout", fc.UploadTimeout, &cfg.UploadTimeout},
		{"suggestion-timeout", fc.SuggestionTimeout, &cfg.SuggestionTimeout},
		{"type-delay", fc.TypeDelay, &cfg.TypeDelay},
		{"extra-type-delay", fc.ExtraTypeDelay, &cfg.ExtraTypeDelay},
		{"connect-timeout", fc.ConnectTimeout, &cfg.ConnectTimeout},
	}
	for _, d := range durations {
		if err := s.setDuration(d.flag, d.value, d.dst); err != nil {
			return err
		}
	}

	s.setBool("no-color", fc.NoColor, &cfg.NoColor)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
