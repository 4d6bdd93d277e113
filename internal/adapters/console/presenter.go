package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bft-labs/xhspost/internal/domain"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F43F5E"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6B7280")).
			Padding(0, 1)
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FBBF24")).Bold(true)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
)

// Presenter implements ports.Presenter on a terminal.
type Presenter struct {
	out     io.Writer
	browser string
	plain   bool
}

// NewPresenter creates a presenter. With plain set, text is written without
// borders or colour.
func NewPresenter(out io.Writer, browserApp string, plain bool) *Presenter {
	return &Presenter{out: out, browser: browserApp, plain: plain}
}

func (p *Presenter) block(title string, lines []string) {
	body := strings.Join(lines, "\n")
	if p.plain {
		fmt.Fprintf(p.out, "\n===== %s =====\n%s\n\n", title, body)
		return
	}
	fmt.Fprintln(p.out, boxStyle.Render(titleStyle.Render(title)+"\n"+body))
}

func (p *Presenter) key(s string) string {
	if p.plain {
		return s
	}
	return keyStyle.Render(s)
}

// Plan shows the file, topics and extra text.
func (p *Presenter) Plan(req domain.UploadRequest) {
	lines := []string{
		"文件: " + req.FilePath(),
		"话题: " + strings.Join(req.Topics(), ", "),
	}
	if req.HasExtraText() {
		lines = append(lines, "额外内容: "+req.ExtraText())
	}
	lines = append(lines,
		"",
		"将自动:",
		"1. 检查并激活 "+p.browser,
		"2. 查找或打开小红书创作者中心",
		"3. 上传视频并填写标题和话题",
		"4. 点击发布",
	)
	p.block("准备上传", lines)
}

// LaunchHelp explains how to relaunch the browser with a debugging port.
func (p *Presenter) LaunchHelp(execPath string, port int) {
	escaped := strings.ReplaceAll(execPath, " ", `\ `)
	p.block("手动启动带调试端口的 "+p.browser, []string{
		"1. 关闭所有 " + p.browser + " 窗口",
		"2. 打开终端，运行以下命令:",
		fmt.Sprintf("   %s --remote-debugging-port=%d", escaped, port),
		"3. 等待浏览器启动",
		"4. 在浏览器中登录小红书",
		"5. 重新运行此程序",
	})
}

// ManualUploadHelp explains the macOS file dialog shortcuts.
func (p *Presenter) ManualUploadHelp() {
	p.block("自动上传文件失败，请手动操作", []string{
		"1. 如果文件选择对话框已打开:",
		"   a. 按 " + p.key("Command+Shift+G") + " 打开\"前往文件夹\"对话框",
		"   b. 按 " + p.key("Command+V") + " 粘贴文件路径（已自动复制）",
		"   c. 按" + p.key("回车键") + "确认路径",
		"   d. 再次按" + p.key("回车键") + "确认选择文件",
		"2. 如果文件选择对话框未打开:",
		"   a. 点击页面上的上传按钮",
		"   b. 然后按照上述步骤操作",
	})
}

// Notice prints msg on its own line.
func (p *Presenter) Notice(msg string) {
	if p.plain {
		fmt.Fprintln(p.out, msg)
		return
	}
	fmt.Fprintln(p.out, noticeStyle.Render(msg))
}
