package domain

import (
	"fmt"
	"path/filepath"
	"regexp"
	"time"
)

var (
	dashedDate  = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`)
	compactDate = regexp.MustCompile(`(\d{4})(\d{2})(\d{2})`)
)

// DisplayDate derives the date shown in the post title from a file name.
// It tries YYYY-MM-DD, then YYYYMMDD, and falls back to now's local date.
func DisplayDate(filePath string, now time.Time) string {
	name := filepath.Base(filePath)
	if m := dashedDate.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	if m := compactDate.FindStringSubmatch(name); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3])
	}
	return now.Format("2006-01-02")
}

// Title builds the post title: "<date> #<topic>".
func Title(date, topic string) string {
	return fmt.Sprintf("%s #%s", date, topic)
}
