package app

import (
	"context"
	"errors"
	"html"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/bft-labs/xhspost/internal/domain"
	"github.com/bft-labs/xhspost/internal/ports"
)

const creatorPage = `<html><body>
<button class="el-button upload-button">上传视频</button>
<input type="file">
<input class="d-text" value="">
<div id="quillEditor"><div class="ql-editor"><p><br></p></div></div>
<button class="d-button custom-button red publishBtn">发布</button>
<div class="btn">立即返回</div>
</body></html>`

// fakePage implements ports.Page against an in-memory HTML document.
// Typing "#topic" shows the mention list when suggest[topic] is set and
// Enter turns the pending text into a .mention token.
type fakePage struct {
	doc    *goquery.Document
	url    string
	urlErr error

	suggest        map[string]bool
	completeUpload bool
	dropTyping     bool
	panicOnURL     bool

	navigated []string
	clicked   []string
	typed     []string
	pressed   []string
	files     []string
	pending   string
}

func newFakePage(t *testing.T, url, page string) *fakePage {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return &fakePage{doc: doc, url: url, suggest: map[string]bool{}}
}

func (p *fakePage) first(selector string) (*goquery.Selection, error) {
	s := p.doc.Find(selector).First()
	if s.Length() == 0 {
		return nil, domain.ErrElementNotFound
	}
	return s, nil
}

func (p *fakePage) URL(ctx context.Context) (string, error) {
	if p.panicOnURL {
		panic("page crashed")
	}
	return p.url, p.urlErr
}

func (p *fakePage) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	p.navigated = append(p.navigated, url)
	p.url = url
	return nil
}

func (p *fakePage) BringToFront(ctx context.Context) error { return nil }

func (p *fakePage) Count(ctx context.Context, selector string) (int, error) {
	return p.doc.Find(selector).Length(), nil
}

func (p *fakePage) Activate(ctx context.Context, f domain.Finder) (bool, error) {
	s := p.doc.Find(f.Selector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return f.Matches(s.Text())
	})
	if s.Length() == 0 {
		return false, nil
	}
	p.clicked = append(p.clicked, f.Name)
	return true, nil
}

func (p *fakePage) SetInputFiles(ctx context.Context, selector, path string) error {
	if _, err := p.first(selector); err != nil {
		return err
	}
	p.files = append(p.files, path)
	if p.completeUpload {
		p.doc.Find("body").AppendHtml(`<div class="status">上传成功 视频时长 00:42</div>`)
	}
	return nil
}

func (p *fakePage) SetValue(ctx context.Context, selector, value string) error {
	s, err := p.first(selector)
	if err != nil {
		return err
	}
	s.SetAttr("value", value)
	return nil
}

func (p *fakePage) SetHTML(ctx context.Context, selector, markup string, focus bool) error {
	s, err := p.first(selector)
	if err != nil {
		return err
	}
	s.SetHtml(markup)
	return nil
}

func (p *fakePage) Type(ctx context.Context, selector, text string, delay time.Duration) error {
	s, err := p.first(selector)
	if err != nil {
		return err
	}
	p.typed = append(p.typed, text)
	if p.dropTyping {
		return nil
	}
	target := s.Find("p").Last()
	if target.Length() == 0 {
		target = s
	}
	target.AppendHtml(html.EscapeString(text))

	if strings.HasPrefix(text, "#") && p.suggest[strings.TrimPrefix(text, "#")] {
		p.pending = text
		p.doc.Find("body").AppendHtml(`<div id="quill-mention-list"><li>` + html.EscapeString(text) + `</li></div>`)
	}
	return nil
}

func (p *fakePage) Press(ctx context.Context, key string) error {
	p.pressed = append(p.pressed, key)
	if key != "Enter" || p.pending == "" {
		return nil
	}
	para := p.doc.Find("#quillEditor .ql-editor p").Last()
	inner, _ := para.Html()
	escaped := html.EscapeString(p.pending)
	if i := strings.LastIndex(inner, escaped); i >= 0 {
		inner = inner[:i] + `<span class="mention">` + escaped + `</span>` + inner[i+len(escaped):]
		para.SetHtml(inner)
	}
	p.doc.Find("#quill-mention-list").Remove()
	p.pending = ""
	return nil
}

func (p *fakePage) Text(ctx context.Context, selector string) (string, error) {
	return strings.TrimSpace(p.doc.Find(selector).First().Text()), nil
}

func (p *fakePage) WaitVisible(ctx context.Context, selector string, timeout time.Duration) (bool, error) {
	return p.doc.Find(selector).Length() > 0, nil
}

func (p *fakePage) WaitForText(ctx context.Context, cond domain.TextCondition, timeout time.Duration) (bool, error) {
	return cond.Satisfied(p.doc.Find("body").Text()), nil
}

func (p *fakePage) titleValue() string {
	v, _ := p.doc.Find("input.d-text").Attr("value")
	return v
}

func (p *fakePage) editorText() string {
	return strings.TrimSpace(p.doc.Find("#quillEditor .ql-editor").Text())
}

func (p *fakePage) editorHTML() string {
	h, _ := p.doc.Find("#quillEditor .ql-editor").Html()
	return h
}

// fakeSession implements ports.BrowserSession.
type fakeSession struct {
	pages    []ports.Page
	newPage  *fakePage
	opened   int
	releases int
	pagesErr error
}

func (s *fakeSession) Pages(ctx context.Context) ([]ports.Page, error) {
	return s.pages, s.pagesErr
}

func (s *fakeSession) NewPage(ctx context.Context) (ports.Page, error) {
	s.opened++
	if s.newPage == nil {
		return nil, errors.New("no page")
	}
	return s.newPage, nil
}

func (s *fakeSession) Release() error {
	s.releases++
	return nil
}

// fakeDialer implements ports.BrowserDialer. Endpoints listed in fail error.
type fakeDialer struct {
	session ports.BrowserSession
	fail    map[string]bool
	dialed  []string
}

func (d *fakeDialer) Dial(ctx context.Context, endpoint string) (ports.BrowserSession, error) {
	d.dialed = append(d.dialed, endpoint)
	if d.fail[endpoint] {
		return nil, errors.New("connection refused")
	}
	return d.session, nil
}

// fakeResolver implements EndpointResolver.
type fakeResolver struct {
	ws    string
	err   error
	calls int
}

func (r *fakeResolver) ControlEndpoint(ctx context.Context, endpoint domain.DebugEndpoint) (string, error) {
	r.calls++
	return r.ws, r.err
}

// fakeInspector implements ports.ProcessInspector.
type fakeInspector struct {
	listings map[int]string
	procs    string
	listErr  error
	procsErr error
	probed   []int
}

func (i *fakeInspector) ListeningOn(ctx context.Context, port int) (string, error) {
	i.probed = append(i.probed, port)
	return i.listings[port], i.listErr
}

func (i *fakeInspector) ProcessList(ctx context.Context) (string, error) {
	return i.procs, i.procsErr
}

// fakeStarter implements ports.ProcessStarter.
type fakeStarter struct {
	missing  bool
	openErr  error
	opened   [][]string
	detached [][]string
}

func (s *fakeStarter) OpenApp(ctx context.Context, app string, args []string) error {
	s.opened = append(s.opened, append([]string{app}, args...))
	return s.openErr
}

func (s *fakeStarter) StartDetached(path string, args []string) error {
	s.detached = append(s.detached, append([]string{path}, args...))
	return nil
}

func (s *fakeStarter) Exists(path string) bool { return !s.missing }

// fakeWindow implements ports.WindowController.
type fakeWindow struct {
	running   bool
	hasTab    bool
	calls     []string
	clipboard string
}

func (w *fakeWindow) IsRunning(ctx context.Context) (bool, error) {
	w.calls = append(w.calls, "is-running")
	return w.running, nil
}

func (w *fakeWindow) Activate(ctx context.Context) error {
	w.calls = append(w.calls, "activate")
	return nil
}

func (w *fakeWindow) OpenURL(ctx context.Context, url string) error {
	w.calls = append(w.calls, "open-url")
	return nil
}

func (w *fakeWindow) HasTab(ctx context.Context, substr string) (bool, error) {
	w.calls = append(w.calls, "has-tab")
	return w.hasTab, nil
}

func (w *fakeWindow) ActivateTab(ctx context.Context, substr string) error {
	w.calls = append(w.calls, "activate-tab")
	return nil
}

func (w *fakeWindow) Quit(ctx context.Context) error {
	w.calls = append(w.calls, "quit")
	return nil
}

func (w *fakeWindow) SetClipboard(ctx context.Context, text string) error {
	w.calls = append(w.calls, "clipboard")
	w.clipboard = text
	return nil
}

func (w *fakeWindow) called(name string) bool {
	for _, c := range w.calls {
		if c == name {
			return true
		}
	}
	return false
}

// fakePrompter implements ports.Prompter with canned answers.
type fakePrompter struct {
	answers []string
	asked   []string
}

func (p *fakePrompter) Ask(prompt string) (string, error) {
	p.asked = append(p.asked, prompt)
	if len(p.answers) == 0 {
		return "", nil
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

func (p *fakePrompter) Close() error { return nil }

// fakePresenter implements ports.Presenter.
type fakePresenter struct {
	plans        int
	launchHelp   int
	manualUpload int
	notices      []string
}

func (p *fakePresenter) Plan(req domain.UploadRequest)        { p.plans++ }
func (p *fakePresenter) LaunchHelp(execPath string, port int) { p.launchHelp++ }
func (p *fakePresenter) ManualUploadHelp()                    { p.manualUpload++ }
func (p *fakePresenter) Notice(msg string)                    { p.notices = append(p.notices, msg) }
