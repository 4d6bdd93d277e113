package app

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/bft-labs/xhspost/internal/domain"
	"github.com/bft-labs/xhspost/internal/ports"
)

// editorReset is the empty Quill document.
const editorReset = "<p><br></p>"

// Report summarises a run. Soft failures are the operator-facing reasons
// for steps that degraded.
type Report struct {
	State           domain.PublishState
	Strategy        string
	FileAttached    bool
	ManualUpload    bool
	UploadConfirmed bool
	TopicsConfirmed []string
	TopicsLiteral   []string
	PublishFinder   string
	Returned        bool
	UploadStatus    string
	SoftFailures    []string
}

func (r *Report) fail(reason string) {
	r.SoftFailures = append(r.SoftFailures, reason)
}

// PublisherOptions carries the page-independent inputs of the publisher.
type PublisherOptions struct {
	TargetURL      string
	TitleTopic     string
	FallbackTopics []string
	Timings        Timings
	Now            func() time.Time
}

// Publisher drives the creator page from navigation to the final cleanup.
type Publisher struct {
	sel      domain.Selectors
	opts     PublisherOptions
	fallback *Fallback
	logger   ports.Logger
}

// NewPublisher creates a publisher.
func NewPublisher(sel domain.Selectors, opts PublisherOptions, fallback *Fallback, logger ports.Logger) *Publisher {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Publisher{sel: sel, opts: opts, fallback: fallback, logger: logger}
}

// Publish runs steps PageReady through Returned on page. Missing elements
// are recorded in the report and the flow continues; only navigation,
// context and fallback prompt errors are returned.
func (p *Publisher) Publish(ctx context.Context, page ports.Page, req domain.UploadRequest, tracker *StateTracker, rep *Report) error {
	if err := p.prepare(ctx, page, tracker); err != nil {
		return err
	}
	if err := p.upload(ctx, page, req, tracker, rep); err != nil {
		return err
	}
	if err := p.fill(ctx, page, req, tracker, rep); err != nil {
		return err
	}
	if err := p.publish(ctx, page, tracker, rep); err != nil {
		return err
	}
	if err := p.cleanup(ctx, page); err != nil {
		return err
	}
	// Let a dismissed dialog close before reading the upload status.
	if err := sleep(ctx, p.opts.Timings.BeforeStatus); err != nil {
		return err
	}
	status, err := p.uploadStatus(ctx, page)
	if err != nil {
		return err
	}
	rep.UploadStatus = status
	p.logger.Info("upload status", ports.String("status", status))
	return nil
}

// prepare navigates to the publish page and brings it to the front.
func (p *Publisher) prepare(ctx context.Context, page ports.Page, tracker *StateTracker) error {
	p.logger.Info("navigating", ports.String("url", p.opts.TargetURL))
	if err := page.Navigate(ctx, p.opts.TargetURL, p.opts.Timings.NavigateTimeout); err != nil {
		return err
	}
	if err := page.BringToFront(ctx); err != nil {
		p.logger.Warn("bring to front failed", ports.Err(err))
	}
	if err := sleep(ctx, p.opts.Timings.PageSettle); err != nil {
		return err
	}
	return tracker.Advance(domain.StatePageReady, "navigated")
}

func (p *Publisher) upload(ctx context.Context, page ports.Page, req domain.UploadRequest, tracker *StateTracker, rep *Report) error {
	p.logDiagnostics(ctx, page)

	clicked, err := page.Activate(ctx, p.sel.UploadTrigger)
	if err := softErr(ctx, err); err != nil {
		return err
	}
	if !clicked {
		rep.fail("未找到上传按钮")
		p.logger.Warn("upload trigger not found", ports.String("selector", p.sel.UploadTrigger.Selector), ports.Err(err))
	}
	if err := tracker.Advance(domain.StateUploading, "upload trigger"); err != nil {
		return err
	}
	if err := sleep(ctx, p.opts.Timings.FileDialog); err != nil {
		return err
	}

	n, err := page.Count(ctx, p.sel.FileInput)
	if err := softErr(ctx, err); err != nil {
		return err
	}
	if n > 0 {
		p.logger.Info("file inputs found", ports.Int("count", n))
		if err := page.SetInputFiles(ctx, p.sel.FileInput, req.FilePath()); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			rep.fail("设置文件失败")
			p.logger.Error("set input files failed", ports.Err(err))
		} else {
			rep.FileAttached = true
		}
	}

	if rep.FileAttached {
		p.logger.Info("waiting for upload to finish", ports.Duration("timeout", p.opts.Timings.UploadTimeout))
		done, err := page.WaitForText(ctx, p.sel.UploadDone, p.opts.Timings.UploadTimeout)
		if err := softErr(ctx, err); err != nil {
			return err
		}
		rep.UploadConfirmed = done
		if !done {
			rep.fail("等待上传完成超时")
			p.logger.Warn("upload completion not detected, continuing", ports.Err(err))
		}
	} else {
		if err := p.fallback.ManualUpload(); err != nil {
			return fmt.Errorf("manual upload prompt: %w", err)
		}
		rep.ManualUpload = true
	}

	return tracker.Advance(domain.StateUploaded, uploadReason(rep))
}

func uploadReason(rep *Report) string {
	switch {
	case rep.UploadConfirmed:
		return "upload confirmed"
	case rep.FileAttached:
		return "upload wait timed out"
	default:
		return "manual file selection"
	}
}

// fill writes the title, the topic tags and the extra text.
func (p *Publisher) fill(ctx context.Context, page ports.Page, req domain.UploadRequest, tracker *StateTracker, rep *Report) error {
	t := p.opts.Timings

	date := domain.DisplayDate(req.FilePath(), p.opts.Now())
	title := domain.Title(date, p.opts.TitleTopic)
	if err := page.SetValue(ctx, p.sel.TitleInput, title); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		rep.fail("未找到标题输入框")
		p.logger.Warn("title not set", ports.Err(err))
	} else {
		p.logger.Info("title set", ports.String("title", title))
	}

	if err := page.SetHTML(ctx, p.sel.Editor, editorReset, true); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		rep.fail("未找到正文编辑器")
		p.logger.Warn("editor not reset", ports.Err(err))
	}

	for i, topic := range req.Topics() {
		confirmed, err := p.addTopic(ctx, page, topic)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.logger.Warn("add topic failed", ports.Int("index", i), ports.String("topic", topic), ports.Err(err))
		}
		if confirmed {
			rep.TopicsConfirmed = append(rep.TopicsConfirmed, topic)
		} else {
			rep.TopicsLiteral = append(rep.TopicsLiteral, topic)
		}
	}

	if req.HasExtraText() {
		if err := page.Type(ctx, p.sel.Editor, " "+req.ExtraText(), t.ExtraTypeDelay); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			rep.fail("额外内容添加失败")
			p.logger.Warn("extra text not typed", ports.Err(err))
		}
	}

	text, err := page.Text(ctx, p.sel.Editor)
	if err := softErr(ctx, err); err != nil {
		return err
	}
	if text == "" {
		caption := captionHTML(p.opts.FallbackTopics)
		p.logger.Warn("editor empty, forcing fallback caption", ports.String("html", caption))
		if err := page.SetHTML(ctx, p.sel.Editor, caption, false); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			rep.fail("无法设置正文内容")
		}
	}

	return tracker.Advance(domain.StateContentFilled, fmt.Sprintf("%d/%d topics confirmed", len(rep.TopicsConfirmed), len(req.Topics())))
}

// addTopic types #topic and confirms the suggestion when the mention list
// appears. It reports whether the topic became a tag.
func (p *Publisher) addTopic(ctx context.Context, page ports.Page, topic string) (bool, error) {
	t := p.opts.Timings

	if err := page.Type(ctx, p.sel.Editor, "#"+topic, t.TypeDelay); err != nil {
		return false, err
	}

	visible, err := page.WaitVisible(ctx, p.sel.MentionList, t.SuggestionTimeout)
	if err != nil {
		return false, err
	}
	if !visible {
		p.logger.Warn("topic suggestion list did not appear, leaving text literal", ports.String("topic", topic))
		return false, nil
	}

	if err := sleep(ctx, t.SuggestionSettle); err != nil {
		return false, err
	}
	if err := page.Press(ctx, "Enter"); err != nil {
		return false, err
	}
	if err := sleep(ctx, t.AfterConfirm); err != nil {
		return false, err
	}

	tags, _ := page.Count(ctx, p.sel.TagToken)
	text, _ := page.Text(ctx, p.sel.Editor)
	p.logger.Debug("editor after topic", ports.String("topic", topic), ports.Int("tags", tags), ports.String("text", text))

	if err := page.Type(ctx, p.sel.Editor, " ", 0); err != nil {
		return true, err
	}
	return true, sleep(ctx, t.AfterSpace)
}

// publish clicks the publish button and then the return button.
func (p *Publisher) publish(ctx context.Context, page ports.Page, tracker *StateTracker, rep *Report) error {
	t := p.opts.Timings

	if err := sleep(ctx, t.BeforePublish); err != nil {
		return err
	}
	f, ok, err := firstMatch(ctx, page, p.sel.PublishButtons, p.logger)
	if err != nil {
		return err
	}
	if !ok {
		rep.fail("未找到发布按钮")
		p.logger.Warn("publish button not found")
		return nil
	}
	rep.PublishFinder = f.Name
	if err := tracker.Advance(domain.StatePublished, "clicked "+f.Name); err != nil {
		return err
	}
	if err := sleep(ctx, t.AfterPublish); err != nil {
		return err
	}

	if err := sleep(ctx, t.BeforeReturn); err != nil {
		return err
	}
	rf, ok, err := firstMatch(ctx, page, p.sel.ReturnButtons, p.logger)
	if err != nil {
		return err
	}
	if !ok {
		p.logger.Info("return button not found, page may have returned already")
	} else {
		rep.Returned = true
		if err := tracker.Advance(domain.StateReturned, "clicked "+rf.Name); err != nil {
			return err
		}
	}
	return sleep(ctx, t.AfterReturn)
}

// cleanup dismisses any dialog left open. Results are only logged.
func (p *Publisher) cleanup(ctx context.Context, page ports.Page) error {
	if err := sleep(ctx, p.opts.Timings.BeforeCleanup); err != nil {
		return err
	}
	f, ok, err := firstMatch(ctx, page, p.sel.CloseControls, p.logger)
	if err != nil {
		return err
	}
	if ok {
		p.logger.Info("dismissed dialog", ports.String("finder", f.Name))
	} else {
		p.logger.Debug("no dialog to dismiss")
	}
	return nil
}

// uploadStatus reports the first status probe that matches.
func (p *Publisher) uploadStatus(ctx context.Context, page ports.Page) (string, error) {
	for _, probe := range p.sel.StatusProbes {
		n, err := page.Count(ctx, probe.Selector)
		if err := softErr(ctx, err); err != nil {
			return "", err
		}
		if n == 0 {
			continue
		}
		if probe.WithText {
			if text, _ := page.Text(ctx, probe.Selector); text != "" {
				return probe.Status + ": " + text, nil
			}
		}
		return probe.Status, nil
	}
	return "上传完成", nil
}

func (p *Publisher) logDiagnostics(ctx context.Context, page ports.Page) {
	buttons, err := page.Count(ctx, p.sel.Buttons)
	if err != nil {
		return
	}
	triggers, _ := page.Count(ctx, p.sel.UploadTrigger.Selector)
	p.logger.Info("page diagnostics", ports.Int("buttons", buttons), ports.Int("upload_triggers", triggers))
}

// captionHTML renders topics as a single paragraph of #tags.
func captionHTML(topics []string) string {
	tags := make([]string, len(topics))
	for i, t := range topics {
		tags[i] = "#" + html.EscapeString(t)
	}
	return "<p>" + strings.Join(tags, " ") + "</p>"
}

// softErr returns err only when the context is done. Other errors are
// treated as "not found" by the caller.
func softErr(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, domain.ErrPageClosed) {
		return err
	}
	return nil
}
