package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/xhspost/internal/adapters/console"
	"github.com/bft-labs/xhspost/internal/adapters/fs"
	devtools "github.com/bft-labs/xhspost/internal/adapters/http"
	logAdapter "github.com/bft-labs/xhspost/internal/adapters/log"
	"github.com/bft-labs/xhspost/internal/adapters/osascript"
	"github.com/bft-labs/xhspost/internal/adapters/proc"
	"github.com/bft-labs/xhspost/internal/adapters/pwcdp"
	"github.com/bft-labs/xhspost/internal/app"
	"github.com/bft-labs/xhspost/internal/catalog"
	"github.com/bft-labs/xhspost/internal/cliconfig"
	"github.com/bft-labs/xhspost/internal/domain"
	"github.com/bft-labs/xhspost/internal/ports"
)

const helpDescription = `
Publish a video to the Xiaohongshu creator portal through your own browser.

xhspost attaches to a running Brave (or other Chromium) browser over its
remote-debugging port, opens the creator publish page, uploads the file,
fills in the title and topic tags, and clicks publish. Anything it cannot
automate is handed back to you with instructions.

Config: ~/.xhspost/config.toml, XHSPOST_* environment variables, or flags.
`

var exampleUsage = strings.TrimSpace(`
  xhspost ~/Movies/2024-05-01.mp4
  xhspost ~/Movies/20240501.mp4 "英语学习打卡,anki,口语" "今天练习了连读"
  xhspost ~/Movies/clip.mp4 --browser-app "Google Chrome" --dry-run
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdin io.ReadCloser, stdout, stderr io.Writer) int {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	boot, _ := logAdapter.NewConsole(logAdapter.Options{Out: stderr})

	root := &cobra.Command{
		Use:     "xhspost <video-file-path> [comma-separated-topics] [extra-text]",
		Short:   "Publish a video to the Xiaohongshu creator portal",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args:    cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var filePath, topicsArg, extraText string
			switch len(args) {
			case 3:
				extraText = args[2]
				fallthrough
			case 2:
				topicsArg = args[1]
				fallthrough
			case 1:
				filePath = args[0]
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
				boot.Warn("load .env failed", ports.Err(err))
			}

			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}
			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			req, err := domain.NewUploadRequest(filePath, topicsArg, extraText, cfg.DefaultTopics)
			if err != nil {
				fmt.Fprint(stderr, cmd.UsageString())
				return err
			}

			runID := uuid.NewString()
			logger, err := logAdapter.NewConsole(logAdapter.Options{
				Level:   cfg.LogLevel,
				NoColor: cfg.NoColor,
				RunID:   runID,
				Out:     stderr,
			})
			if err != nil {
				return err
			}
			logger.Debug("configuration", ports.Any("config", cfg), ports.String("config_file", cfgFile))

			selectors, err := catalog.Load(cfg.SelectorsFile)
			if err != nil {
				return err
			}

			presenter := console.NewPresenter(stdout, cfg.BrowserApp, cfg.NoColor)
			if cfg.DryRun {
				presenter.Plan(req)
				logger.Info("dry run, stopping before touching the browser")
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			started := time.Now()
			rep, runErr := publish(ctx, cfg, selectors, req, stdin, stdout, presenter, logger)
			saveRecord(ctx, fs.NewRecordFile(cfg.StateDir), cfg.StateDir, runID, req, rep, runErr, started, logger)

			if runErr != nil {
				if errors.Is(runErr, domain.ErrUnexpected) {
					return runErr
				}
				// Environment failures end with manual instructions, not an error exit.
				logger.Error("run did not complete", ports.Err(runErr), ports.String("state", rep.State.String()))
				presenter.Notice("自动化未完成，请按照上述说明手动完成发布")
				return nil
			}
			if len(rep.SoftFailures) > 0 {
				presenter.Notice("部分步骤需要手动完成: " + strings.Join(rep.SoftFailures, "; "))
			} else {
				presenter.Notice("发布流程完成")
			}
			return nil
		},
	}
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SilenceUsage = true
	root.SilenceErrors = true

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.xhspost/config.toml)")
	root.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "validate inputs and print the plan without touching the browser")

	root.Flags().StringVar(&cfg.BrowserApp, "browser-app", cfg.BrowserApp, "browser application name")
	root.Flags().StringVar(&cfg.BrowserPath, "browser-path", cfg.BrowserPath, "browser executable path (defaults to the browser-app bundle)")
	root.Flags().StringVar(&cfg.ProcessMatch, "process-match", cfg.ProcessMatch, "substring identifying browser processes (defaults to the first word of browser-app)")
	root.Flags().IntVar(&cfg.DebugPort, "debug-port", cfg.DebugPort, "default remote-debugging port")
	root.Flags().IntVar(&cfg.PortScanStart, "port-scan-start", cfg.PortScanStart, "first port tried when the default port is busy")
	root.Flags().IntVar(&cfg.PortScanEnd, "port-scan-end", cfg.PortScanEnd, "last port tried when the default port is busy")

	root.Flags().StringVar(&cfg.TargetURL, "target-url", cfg.TargetURL, "creator publish page URL")
	root.Flags().StringVar(&cfg.TargetHost, "target-host", cfg.TargetHost, "host substring identifying the creator tab")
	root.Flags().StringVar(&cfg.TitleTopic, "title-topic", cfg.TitleTopic, "topic used in the post title")
	root.Flags().StringSliceVar(&cfg.DefaultTopics, "default-topics", cfg.DefaultTopics, "topics used when none are given")
	root.Flags().StringVar(&cfg.SelectorsFile, "selectors", cfg.SelectorsFile, "YAML file overriding the built-in selector catalog")
	root.Flags().StringVar(&cfg.StateDir, "state-dir", cfg.StateDir, "directory for last_run.json (empty disables)")
	for _, name := range []string{"target-url", "target-host", "selectors"} {
		if err := root.Flags().MarkHidden(name); err != nil {
			boot.Info("failed to hide flag", ports.String("flag", name), ports.Err(err))
		}
	}

	root.Flags().DurationVar(&cfg.LaunchSettle, "launch-settle", cfg.LaunchSettle, "wait after launching the browser")
	root.Flags().DurationVar(&cfg.StartupWait, "startup-wait", cfg.StartupWait, "wait after starting a browser that was not running")
	root.Flags().DurationVar(&cfg.PageLoadWait, "page-load-wait", cfg.PageLoadWait, "wait after opening the creator tab")
	root.Flags().DurationVar(&cfg.PageSettle, "page-settle", cfg.PageSettle, "wait after navigating")
	root.Flags().DurationVar(&cfg.QuitWait, "quit-wait", cfg.QuitWait, "wait after quitting the browser for a relaunch")
	root.Flags().DurationVar(&cfg.NavigateTimeout, "navigate-timeout", cfg.NavigateTimeout, "navigation timeout")
	root.Flags().DurationVar(&cfg.UploadTimeout, "upload-timeout", cfg.UploadTimeout, "upper bound on waiting for the upload to finish")
	root.Flags().DurationVar(&cfg.SuggestionTimeout, "suggestion-timeout", cfg.SuggestionTimeout, "wait for the topic suggestion list")
	root.Flags().DurationVar(&cfg.TypeDelay, "type-delay", cfg.TypeDelay, "per-key delay when typing topics")
	root.Flags().DurationVar(&cfg.ExtraTypeDelay, "extra-type-delay", cfg.ExtraTypeDelay, "per-key delay when typing extra text")
	root.Flags().DurationVar(&cfg.ConnectTimeout, "connect-timeout", cfg.ConnectTimeout, "timeout per connection attempt")

	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	root.Flags().BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colour and borders")

	if err := root.Execute(); err != nil {
		boot.Error("xhspost", ports.Err(err))
		return 1
	}
	return 0
}

// newRunner wires the adapters into an app.Runner.
func newRunner(
	cfg cliconfig.Config,
	selectors domain.Selectors,
	dialer ports.BrowserDialer,
	prompter ports.Prompter,
	presenter ports.Presenter,
	logger ports.Logger,
) *app.Runner {
	timings := app.DefaultTimings()
	timings.LaunchSettle = cfg.LaunchSettle
	timings.StartupWait = cfg.StartupWait
	timings.PageLoadWait = cfg.PageLoadWait
	timings.PageSettle = cfg.PageSettle
	timings.QuitWait = cfg.QuitWait
	timings.NavigateTimeout = cfg.NavigateTimeout
	timings.UploadTimeout = cfg.UploadTimeout
	timings.SuggestionTimeout = cfg.SuggestionTimeout
	timings.TypeDelay = cfg.TypeDelay
	timings.ExtraTypeDelay = cfg.ExtraTypeDelay

	window := osascript.NewWindowController(osascript.NewRunner("osascript", ""), cfg.BrowserApp)
	inspector := proc.NewInspector()
	versions := devtools.NewVersionClient(&http.Client{Timeout: cfg.ConnectTimeout}, logger)
	fallback := app.NewFallback(prompter, presenter, logger)

	return app.NewRunner(
		window,
		app.NewDiscovery(inspector, cfg.ProcessMatch, cfg.DebugPort, logger),
		app.NewLauncher(proc.NewStarter(), inspector, app.LaunchOptions{
			App:         cfg.BrowserApp,
			ExecPath:    cfg.BrowserPath,
			Match:       cfg.ProcessMatch,
			DefaultPort: cfg.DebugPort,
			ScanStart:   cfg.PortScanStart,
			ScanEnd:     cfg.PortScanEnd,
			Settle:      cfg.LaunchSettle,
		}, logger),
		app.NewConnector(dialer, app.DefaultStrategies(versions), logger),
		app.NewLocator(cfg.TargetHost, logger),
		app.NewPublisher(selectors, app.PublisherOptions{
			TargetURL:      cfg.TargetURL,
			TitleTopic:     cfg.TitleTopic,
			FallbackTopics: cfg.DefaultTopics,
			Timings:        timings,
		}, fallback, logger),
		fallback,
		presenter,
		logger,
		app.RunnerOptions{
			TargetURL:   cfg.TargetURL,
			TargetHost:  cfg.TargetHost,
			ExecPath:    cfg.BrowserPath,
			DefaultPort: cfg.DebugPort,
			Timings:     timings,
		},
	)
}

// publish drives one run against the real browser. Tests replace it.
var publish = func(
	ctx context.Context,
	cfg cliconfig.Config,
	selectors domain.Selectors,
	req domain.UploadRequest,
	stdin io.ReadCloser,
	stdout io.Writer,
	presenter ports.Presenter,
	logger ports.Logger,
) (app.Report, error) {
	prompter, err := console.NewPrompter(stdin, stdout)
	if err != nil {
		return app.Report{}, fmt.Errorf("open prompt: %w", err)
	}
	defer prompter.Close()

	dialer := pwcdp.NewDialer(cfg.ConnectTimeout, logger)
	defer dialer.Close()

	return newRunner(cfg, selectors, dialer, prompter, presenter, logger).Run(ctx, req)
}

// saveRecord writes the run outcome; failures are only logged.
func saveRecord(
	ctx context.Context,
	recorder ports.RunRecorder,
	dir, runID string,
	req domain.UploadRequest,
	rep app.Report,
	runErr error,
	started time.Time,
	logger ports.Logger,
) {
	if dir == "" {
		return
	}
	rec := domain.RunRecord{
		RunID:        runID,
		FilePath:     req.FilePath(),
		Topics:       req.Topics(),
		State:        rep.State.String(),
		Strategy:     rep.Strategy,
		UploadStatus: rep.UploadStatus,
		SoftFailures: rep.SoftFailures,
		StartedAt:    started,
		FinishedAt:   time.Now(),
	}
	if runErr != nil {
		rec.Error = runErr.Error()
	}
	// The run context may already be cancelled by Ctrl-C.
	if err := recorder.Save(context.WithoutCancel(ctx), rec); err != nil {
		logger.Warn("save run record failed", ports.Err(err))
	}
}
