package domain

import (
	"fmt"
	"os"
	"strings"
)

// DefaultTopics are used when the caller supplies no topics.
var DefaultTopics = []string{"英语学习打卡", "anki"}

// UploadRequest describes one video to publish.
// It is immutable after construction; accessors return copies.
type UploadRequest struct {
	filePath  string
	topics    []string
	extraText string
}

// NewUploadRequest validates the CLI input and builds a request.
// topicsArg is a comma-separated list; when it is blank, defaults are used.
func NewUploadRequest(filePath, topicsArg, extraText string, defaults []string) (UploadRequest, error) {
	if strings.TrimSpace(filePath) == "" {
		return UploadRequest{}, ErrMissingFilePath
	}
	info, err := os.Stat(filePath)
	if err != nil {
		return UploadRequest{}, fmt.Errorf("%w: %s", ErrFileNotFound, filePath)
	}
	if info.IsDir() {
		return UploadRequest{}, fmt.Errorf("%w: %s is a directory", ErrFileNotFound, filePath)
	}

	topics := ParseTopics(topicsArg)
	if len(topics) == 0 {
		topics = append([]string(nil), defaults...)
	}

	return UploadRequest{
		filePath:  filePath,
		topics:    topics,
		extraText: extraText,
	}, nil
}

// ParseTopics splits a comma-separated topic list, trimming whitespace and a
// leading '#'. Empty entries are dropped; order is preserved.
func ParseTopics(arg string) []string {
	var topics []string
	for _, part := range strings.Split(arg, ",") {
		t := strings.TrimSpace(part)
		t = strings.TrimSpace(strings.TrimPrefix(t, "#"))
		if t == "" {
			continue
		}
		topics = append(topics, t)
	}
	return topics
}

// FilePath returns the path of the video file.
func (r UploadRequest) FilePath() string { return r.filePath }

// Topics returns the topics in display order.
func (r UploadRequest) Topics() []string { return append([]string(nil), r.topics...) }

// ExtraText returns the optional free text appended after the topics.
func (r UploadRequest) ExtraText() string { return r.extraText }

// HasExtraText reports whether extra text was supplied.
func (r UploadRequest) HasExtraText() bool { return r.extraText != "" }
