package app

import (
	"errors"
	"sync"
	"testing"

	"github.com/bft-labs/xhspost/internal/domain"
	"github.com/bft-labs/xhspost/internal/ports"
)

// mockLogger implements ports.Logger for testing.
type mockLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

type logEntry struct {
	level string
	msg   string
}

func (m *mockLogger) record(level, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, logEntry{level, msg})
}

func (m *mockLogger) Debug(msg string, fields ...ports.Field) { m.record("debug", msg) }
func (m *mockLogger) Info(msg string, fields ...ports.Field)  { m.record("info", msg) }
func (m *mockLogger) Warn(msg string, fields ...ports.Field)  { m.record("warn", msg) }
func (m *mockLogger) Error(msg string, fields ...ports.Field) { m.record("error", msg) }

func (m *mockLogger) has(level, msg string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.level == level && e.msg == msg {
			return true
		}
	}
	return false
}

func TestNewStateTracker(t *testing.T) {
	tr := NewStateTracker(&mockLogger{})

	if tr.State() != domain.StateIdle {
		t.Errorf("initial state = %v, want Idle", tr.State())
	}
	if len(tr.History()) != 0 {
		t.Errorf("initial history = %v, want empty", tr.History())
	}
}

func TestStateTracker_Advance(t *testing.T) {
	tests := []struct {
		name    string
		steps   []domain.PublishState
		wantErr bool
		final   domain.PublishState
	}{
		{
			name: "full forward path",
			steps: []domain.PublishState{
				domain.StateConnected, domain.StatePageReady, domain.StateUploading,
				domain.StateUploaded, domain.StateContentFilled, domain.StatePublished,
				domain.StateReturned,
			},
			final: domain.StateReturned,
		},
		{
			name:  "skip ahead",
			steps: []domain.PublishState{domain.StateConnected, domain.StateUploaded},
			final: domain.StateUploaded,
		},
		{
			name:    "backwards rejected",
			steps:   []domain.PublishState{domain.StateUploaded, domain.StatePageReady},
			wantErr: true,
			final:   domain.StateUploaded,
		},
		{
			name:    "repeat rejected",
			steps:   []domain.PublishState{domain.StateConnected, domain.StateConnected},
			wantErr: true,
			final:   domain.StateConnected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewStateTracker(&mockLogger{})
			var err error
			for _, s := range tt.steps {
				if err = tr.Advance(s, "test"); err != nil {
					break
				}
			}
			if (err != nil) != tt.wantErr {
				t.Fatalf("Advance() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, domain.ErrInvalidTransition) {
				t.Errorf("error = %v, want ErrInvalidTransition", err)
			}
			if tr.State() != tt.final {
				t.Errorf("State() = %v, want %v", tr.State(), tt.final)
			}
		})
	}
}

func TestStateTracker_HistoryAndLogging(t *testing.T) {
	logger := &mockLogger{}
	tr := NewStateTracker(logger)

	_ = tr.Advance(domain.StateConnected, "connected via localhost")
	_ = tr.Advance(domain.StatePageReady, "navigated")

	h := tr.History()
	if len(h) != 2 {
		t.Fatalf("len(History()) = %d, want 2", len(h))
	}
	if h[0].From != domain.StateIdle || h[0].To != domain.StateConnected || h[0].Reason != "connected via localhost" {
		t.Errorf("History()[0] = %+v", h[0])
	}
	if !logger.has("info", "state transition") {
		t.Error("transition was not logged")
	}
}

func TestStateTracker_RejectedAdvanceLeavesHistory(t *testing.T) {
	tr := NewStateTracker(&mockLogger{})
	_ = tr.Advance(domain.StateUploaded, "upload confirmed")

	if err := tr.Advance(domain.StateConnected, "late connect"); err == nil {
		t.Fatal("Advance() backwards succeeded")
	}
	h := tr.History()
	if len(h) != 1 || tr.State() != domain.StateUploaded {
		t.Errorf("history = %+v, state = %v", h, tr.State())
	}

	h[0].Reason = "edited"
	if tr.History()[0].Reason != "upload confirmed" {
		t.Error("History() exposes the tracker's backing slice")
	}
}
