package app

import (
	"strings"

	"github.com/bft-labs/xhspost/internal/ports"
)

// Prompts shown to the operator.
const (
	promptManualUpload = "完成文件选择后按回车键继续..."
	promptRelaunch     = "是否要尝试手动启动带调试端口的浏览器? (y/n): "
)

// Fallback hands dead ends to the operator.
type Fallback struct {
	prompter  ports.Prompter
	presenter ports.Presenter
	logger    ports.Logger
}

// NewFallback creates a fallback.
func NewFallback(prompter ports.Prompter, presenter ports.Presenter, logger ports.Logger) *Fallback {
	return &Fallback{prompter: prompter, presenter: presenter, logger: logger}
}

// ManualUpload explains how to pick the file by hand and blocks until the
// operator confirms.
func (f *Fallback) ManualUpload() error {
	f.presenter.ManualUploadHelp()
	_, err := f.prompter.Ask(promptManualUpload)
	if err != nil {
		return err
	}
	f.logger.Info("operator confirmed manual file selection")
	return nil
}

// OfferRelaunch shows launch instructions and asks whether to relaunch the
// browser. Only an answer of "y" counts as yes.
func (f *Fallback) OfferRelaunch(execPath string, port int) (bool, error) {
	f.presenter.LaunchHelp(execPath, port)
	answer, err := f.prompter.Ask(promptRelaunch)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y"), nil
}

// LaunchHelp shows launch instructions without prompting.
func (f *Fallback) LaunchHelp(execPath string, port int) {
	f.presenter.LaunchHelp(execPath, port)
}
