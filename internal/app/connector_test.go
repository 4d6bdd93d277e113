package app

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/bft-labs/xhspost/internal/domain"
)

const handshakeWS = "ws://localhost:9222/devtools/browser/abc"

func TestConnector_Connect(t *testing.T) {
	tests := []struct {
		name         string
		fail         map[string]bool
		resolverErr  error
		wantStrategy string
		wantDialed   []string
		wantErr      error
	}{
		{
			name:         "first strategy wins",
			wantStrategy: "localhost",
			wantDialed:   []string{"http://localhost:9222"},
		},
		{
			name:         "falls through to loopback",
			fail:         map[string]bool{"http://localhost:9222": true},
			wantStrategy: "127.0.0.1",
			wantDialed:   []string{"http://localhost:9222", "http://127.0.0.1:9222"},
		},
		{
			name: "handshake last",
			fail: map[string]bool{
				"http://localhost:9222": true,
				"http://127.0.0.1:9222": true,
			},
			wantStrategy: "handshake",
			wantDialed:   []string{"http://localhost:9222", "http://127.0.0.1:9222", handshakeWS},
		},
		{
			name: "exhausted",
			fail: map[string]bool{
				"http://localhost:9222": true,
				"http://127.0.0.1:9222": true,
				handshakeWS:             true,
			},
			wantDialed: []string{"http://localhost:9222", "http://127.0.0.1:9222", handshakeWS},
			wantErr:    domain.ErrConnectExhausted,
		},
		{
			name: "handshake unavailable",
			fail: map[string]bool{
				"http://localhost:9222": true,
				"http://127.0.0.1:9222": true,
			},
			resolverErr: domain.ErrNoEndpoint,
			wantDialed:  []string{"http://localhost:9222", "http://127.0.0.1:9222"},
			wantErr:     domain.ErrConnectExhausted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := &fakeSession{}
			dialer := &fakeDialer{session: session, fail: tt.fail}
			resolver := &fakeResolver{ws: handshakeWS, err: tt.resolverErr}
			c := NewConnector(dialer, DefaultStrategies(resolver), &mockLogger{})

			got, strategy, err := c.Connect(context.Background(), 9222)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Connect() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && got != session {
				t.Errorf("Connect() session = %v, want fake session", got)
			}
			if strategy != tt.wantStrategy {
				t.Errorf("strategy = %q, want %q", strategy, tt.wantStrategy)
			}
			if !reflect.DeepEqual(dialer.dialed, tt.wantDialed) {
				t.Errorf("dialed = %v, want %v", dialer.dialed, tt.wantDialed)
			}
		})
	}
}

func TestConnector_ResolverOnlyCalledWhenNeeded(t *testing.T) {
	resolver := &fakeResolver{ws: handshakeWS}
	c := NewConnector(&fakeDialer{session: &fakeSession{}}, DefaultStrategies(resolver), &mockLogger{})

	if _, _, err := c.Connect(context.Background(), 9222); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	if resolver.calls != 0 {
		t.Errorf("resolver calls = %d, want 0", resolver.calls)
	}
}

func TestConnector_StopsOnCancel(t *testing.T) {
	dialer := &fakeDialer{session: &fakeSession{}}
	c := NewConnector(dialer, DefaultStrategies(&fakeResolver{}), &mockLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := c.Connect(ctx, 9222); !errors.Is(err, context.Canceled) {
		t.Errorf("Connect() error = %v, want context.Canceled", err)
	}
	if len(dialer.dialed) != 0 {
		t.Errorf("dialed = %v, want none", dialer.dialed)
	}
}
