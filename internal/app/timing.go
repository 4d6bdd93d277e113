package app

import (
	"context"
	"time"
)

// Timings holds every fixed delay and bound used by a run.
type Timings struct {
	LaunchSettle time.Duration
	StartupWait  time.Duration
	PageLoadWait time.Duration
	PageSettle   time.Duration
	QuitWait     time.Duration

	FileDialog       time.Duration
	SuggestionSettle time.Duration
	AfterConfirm     time.Duration
	AfterSpace       time.Duration
	BeforePublish    time.Duration
	AfterPublish     time.Duration
	BeforeReturn     time.Duration
	AfterReturn      time.Duration
	BeforeCleanup    time.Duration
	BeforeStatus     time.Duration

	NavigateTimeout   time.Duration
	UploadTimeout     time.Duration
	SuggestionTimeout time.Duration
	TypeDelay         time.Duration
	ExtraTypeDelay    time.Duration
}

// DefaultTimings returns the delays the creator page is known to need.
func DefaultTimings() Timings {
	return Timings{
		LaunchSettle: 3 * time.Second,
		StartupWait:  5 * time.Second,
		PageLoadWait: 5 * time.Second,
		PageSettle:   2 * time.Second,
		QuitWait:     2 * time.Second,

		FileDialog:       time.Second,
		SuggestionSettle: time.Second,
		AfterConfirm:     500 * time.Millisecond,
		AfterSpace:       500 * time.Millisecond,
		BeforePublish:    2 * time.Second,
		AfterPublish:     2 * time.Second,
		BeforeReturn:     time.Second,
		AfterReturn:      time.Second,
		BeforeCleanup:    2 * time.Second,
		BeforeStatus:     2 * time.Second,

		NavigateTimeout:   60 * time.Second,
		UploadTimeout:     5 * time.Minute,
		SuggestionTimeout: 5 * time.Second,
		TypeDelay:         100 * time.Millisecond,
		ExtraTypeDelay:    50 * time.Millisecond,
	}
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
