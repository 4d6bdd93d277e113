package domain

import "strings"

// Finder is one element lookup strategy. A page resolves it by matching
// Selector and, when Contains is set, keeping only elements whose text
// content (including descendants) includes one of the needles.
type Finder struct {
	// Name identifies the strategy in logs.
	Name string `yaml:"name"`

	// Selector is a CSS selector.
	Selector string `yaml:"selector"`

	// Contains lists text needles; any one matching is enough.
	Contains []string `yaml:"contains,omitempty"`

	// FoldCase compares trimmed, lower-cased text.
	FoldCase bool `yaml:"fold_case,omitempty"`
}

// TextCondition is satisfied when the page text contains every All needle
// and at least one Any needle (Any may be empty).
type TextCondition struct {
	All []string `yaml:"all"`
	Any []string `yaml:"any"`
}

// Selectors is the catalog of page lookups used by the publisher.
type Selectors struct {
	UploadTrigger  Finder        `yaml:"upload_trigger"`
	FileInput      string        `yaml:"file_input"`
	UploadDone     TextCondition `yaml:"upload_done"`
	TitleInput     string        `yaml:"title_input"`
	Editor         string        `yaml:"editor"`
	MentionList    string        `yaml:"mention_list"`
	TagToken       string        `yaml:"tag_token"`
	Buttons        string        `yaml:"buttons"`
	PublishButtons []Finder      `yaml:"publish_buttons"`
	ReturnButtons  []Finder      `yaml:"return_buttons"`
	CloseControls  []Finder      `yaml:"close_controls"`
	StatusProbes   []StatusProbe `yaml:"status_probes"`
}

// StatusProbe maps a selector to the upload status it indicates.
// With WithText set, the matched element's text is appended to Status.
type StatusProbe struct {
	Selector string `yaml:"selector"`
	Status   string `yaml:"status"`
	WithText bool   `yaml:"with_text,omitempty"`
}

// Matches reports whether text satisfies the finder's Contains needles.
func (f Finder) Matches(text string) bool {
	if len(f.Contains) == 0 {
		return true
	}
	text = strings.TrimSpace(text)
	if f.FoldCase {
		text = strings.ToLower(text)
	}
	for _, needle := range f.Contains {
		if f.FoldCase {
			needle = strings.ToLower(needle)
		}
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}

// Satisfied reports whether text meets the condition.
func (c TextCondition) Satisfied(text string) bool {
	for _, needle := range c.All {
		if !strings.Contains(text, needle) {
			return false
		}
	}
	if len(c.Any) == 0 {
		return true
	}
	for _, needle := range c.Any {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}
