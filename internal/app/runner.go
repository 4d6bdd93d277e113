package app

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/bft-labs/xhspost/internal/domain"
	"github.com/bft-labs/xhspost/internal/ports"
)

// RunnerOptions configures the orchestration around the publisher.
type RunnerOptions struct {
	TargetURL   string
	TargetHost  string
	ExecPath    string
	DefaultPort int
	Timings     Timings
}

// Runner executes one publish run end to end.
type Runner struct {
	window    ports.WindowController
	discovery *Discovery
	launcher  *Launcher
	connector *Connector
	locator   *Locator
	publisher *Publisher
	fallback  *Fallback
	presenter ports.Presenter
	logger    ports.Logger
	opts      RunnerOptions
}

// NewRunner wires a runner from its collaborators.
func NewRunner(
	window ports.WindowController,
	discovery *Discovery,
	launcher *Launcher,
	connector *Connector,
	locator *Locator,
	publisher *Publisher,
	fallback *Fallback,
	presenter ports.Presenter,
	logger ports.Logger,
	opts RunnerOptions,
) *Runner {
	return &Runner{
		window:    window,
		discovery: discovery,
		launcher:  launcher,
		connector: connector,
		locator:   locator,
		publisher: publisher,
		fallback:  fallback,
		presenter: presenter,
		logger:    logger,
		opts:      opts,
	}
}

// Run publishes req. The returned report is always populated, even on error.
// Panics are recovered and returned as ErrUnexpected after the browser
// session has been released.
func (r *Runner) Run(ctx context.Context, req domain.UploadRequest) (rep Report, err error) {
	tracker := NewStateTracker(r.logger)
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("panic during run", ports.Any("panic", p), ports.String("stack", string(debug.Stack())))
			err = fmt.Errorf("%w: %v", domain.ErrUnexpected, p)
		}
		rep.State = tracker.State()
		r.summarize(rep, err)
	}()

	r.presenter.Plan(req)
	if err := r.window.SetClipboard(ctx, req.FilePath()); err != nil {
		r.logger.Warn("copy path to clipboard failed", ports.Err(err))
	} else {
		r.presenter.Notice("文件路径已复制到剪贴板")
	}

	if err := r.focusBrowser(ctx); err != nil {
		return rep, err
	}

	port, err := r.debugPort(ctx)
	if err != nil {
		return rep, err
	}

	session, strategy, err := r.connector.Connect(ctx, port)
	if err != nil {
		r.fallback.LaunchHelp(r.opts.ExecPath, r.opts.DefaultPort)
		return rep, err
	}
	defer func() {
		if rerr := session.Release(); rerr != nil {
			r.logger.Warn("release session failed", ports.Err(rerr))
		} else {
			r.logger.Info("disconnected, browser left open")
		}
	}()
	rep.Strategy = strategy
	if err := tracker.Advance(domain.StateConnected, "via "+strategy); err != nil {
		return rep, err
	}

	page, err := r.locator.Find(ctx, session)
	if err != nil {
		return rep, err
	}
	if page == nil {
		if page, err = session.NewPage(ctx); err != nil {
			return rep, fmt.Errorf("open page: %w", err)
		}
	}

	err = r.publisher.Publish(ctx, page, req, tracker, &rep)
	return rep, err
}

// focusBrowser starts or activates the browser and shows the creator tab.
func (r *Runner) focusBrowser(ctx context.Context) error {
	t := r.opts.Timings

	running, err := r.window.IsRunning(ctx)
	if err != nil {
		r.logger.Warn("cannot query browser state", ports.Err(err))
	}
	if !running {
		r.logger.Info("browser not running, launching")
		if _, err := r.launcher.Launch(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.logger.Warn("launch failed", ports.Err(err))
		}
		if err := sleep(ctx, t.StartupWait); err != nil {
			return err
		}
	} else if err := r.window.Activate(ctx); err != nil {
		r.logger.Warn("activate browser failed", ports.Err(err))
	}

	hasTab, err := r.window.HasTab(ctx, r.opts.TargetHost)
	if err != nil {
		r.logger.Warn("cannot list tabs", ports.Err(err))
	}
	if hasTab {
		if err := r.window.ActivateTab(ctx, r.opts.TargetHost); err != nil {
			r.logger.Warn("activate tab failed", ports.Err(err))
		}
	} else if err := r.window.OpenURL(ctx, r.opts.TargetURL); err != nil {
		r.logger.Warn("open creator url failed", ports.Err(err))
	}

	r.logger.Info("waiting for page to load", ports.Duration("wait", t.PageLoadWait))
	return sleep(ctx, t.PageLoadWait)
}

// debugPort discovers the port, offering a relaunch when none is found.
func (r *Runner) debugPort(ctx context.Context) (int, error) {
	port, err := r.discovery.Discover(ctx)
	if err == nil {
		return port, nil
	}
	if !errors.Is(err, domain.ErrBrowserNotRunning) {
		return 0, err
	}

	r.logger.Error("no debugging port found", ports.Err(err))
	relaunch, perr := r.fallback.OfferRelaunch(r.opts.ExecPath, r.opts.DefaultPort)
	if perr != nil {
		return 0, fmt.Errorf("relaunch prompt: %w", perr)
	}
	if !relaunch {
		return 0, err
	}

	if qerr := r.window.Quit(ctx); qerr != nil {
		r.logger.Warn("quit browser failed", ports.Err(qerr))
	}
	if err := sleep(ctx, r.opts.Timings.QuitWait); err != nil {
		return 0, err
	}
	port, lerr := r.launcher.Launch(ctx)
	if lerr != nil {
		r.presenter.Notice("无法启动带调试端口的浏览器，请按照上述说明手动启动，然后重新运行")
		return 0, lerr
	}
	r.logger.Info("browser relaunched", ports.Int("port", port))
	return port, nil
}

func (r *Runner) summarize(rep Report, err error) {
	fields := []ports.Field{
		ports.String("state", rep.State.String()),
		ports.Bool("file_attached", rep.FileAttached),
		ports.Bool("manual_upload", rep.ManualUpload),
		ports.Strings("topics_confirmed", rep.TopicsConfirmed),
		ports.Strings("topics_literal", rep.TopicsLiteral),
		ports.Strings("soft_failures", rep.SoftFailures),
	}
	if err != nil {
		r.logger.Error("run ended early", append(fields, ports.Err(err))...)
		return
	}
	r.logger.Info("run finished", fields...)
}
