package domain

import (
	"testing"
	"time"
)

func TestDisplayDate(t *testing.T) {
	now := time.Date(2025, 3, 9, 22, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		path string
		want string
	}{
		{"dashed", "/videos/2024-05-01_clip.mp4", "2024-05-01"},
		{"compact", "/videos/20240501_clip.mp4", "2024-05-01"},
		{"dashed wins over compact", "20230101-2024-05-01.mp4", "2024-05-01"},
		{"no date uses now", "/videos/clip.mp4", "2025-03-09"},
		{"directory digits ignored", "/2024-05-01/clip.mp4", "2025-03-09"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayDate(tt.path, now); got != tt.want {
				t.Errorf("DisplayDate(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestTitle(t *testing.T) {
	if got := Title("2024-05-01", "英语学习打卡"); got != "2024-05-01 #英语学习打卡" {
		t.Errorf("Title() = %q", got)
	}
}

func TestDebugEndpoint_URLs(t *testing.T) {
	e := DebugEndpoint{Host: HostLoopback, Port: 9222}

	if got := e.HTTPURL(); got != "http://127.0.0.1:9222" {
		t.Errorf("HTTPURL() = %q", got)
	}
	if got := e.VersionURL(); got != "http://127.0.0.1:9222/json/version" {
		t.Errorf("VersionURL() = %q", got)
	}
	if got := e.String(); got != "127.0.0.1:9222" {
		t.Errorf("String() = %q", got)
	}
}

func TestPublishState_String(t *testing.T) {
	tests := []struct {
		state PublishState
		want  string
	}{
		{StateIdle, "Idle"},
		{StateConnected, "Connected"},
		{StatePageReady, "PageReady"},
		{StateUploading, "Uploading"},
		{StateUploaded, "Uploaded"},
		{StateContentFilled, "ContentFilled"},
		{StatePublished, "Published"},
		{StateReturned, "Returned"},
		{PublishState(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("PublishState(%d).String() = %s, want %s", tt.state, got, tt.want)
		}
	}
}
