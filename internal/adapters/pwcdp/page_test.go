package pwcdp

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/bft-labs/xhspost/internal/domain"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		in   interface{}
		want int
	}{
		{3, 3},
		{int64(4), 4},
		{float64(5), 5},
		{"6", 0},
		{nil, 0},
	}
	for _, tt := range tests {
		if got := toInt(tt.in); got != tt.want {
			t.Errorf("toInt(%#v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTranslate(t *testing.T) {
	timeout := fmt.Errorf("locator: %w", playwright.ErrTimeout)
	if err := translate(timeout); !errors.Is(err, domain.ErrTimeout) {
		t.Errorf("translate(timeout) = %v, want ErrTimeout", err)
	}

	other := errors.New("detached")
	if err := translate(other); err != other {
		t.Errorf("translate(other) = %v, want passthrough", err)
	}
}

func TestFirstMatching(t *testing.T) {
	tests := []struct {
		name   string
		texts  []string
		finder domain.Finder
		want   int
	}{
		{
			name:   "no needles takes first",
			texts:  []string{"a", "b"},
			finder: domain.Finder{Selector: "button"},
			want:   0,
		},
		{
			name:   "no elements",
			finder: domain.Finder{Selector: "button"},
			want:   -1,
		},
		{
			name:   "needle skips earlier buttons",
			texts:  []string{"  存草稿 ", "\n 发布\n"},
			finder: domain.Finder{Selector: "button", Contains: []string{"发布"}},
			want:   1,
		},
		{
			name:   "fold case",
			texts:  []string{"Cancel", " PUBLISH "},
			finder: domain.Finder{Selector: "button", Contains: []string{"publish"}, FoldCase: true},
			want:   1,
		},
		{
			name:   "case sensitive miss",
			texts:  []string{"PUBLISH"},
			finder: domain.Finder{Selector: "button", Contains: []string{"publish"}},
			want:   -1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstMatching(tt.texts, tt.finder); got != tt.want {
				t.Errorf("firstMatching() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPollText(t *testing.T) {
	done := domain.TextCondition{All: []string{"上传成功"}, Any: []string{"重新上传", "替换视频"}}

	t.Run("satisfied after a few reads", func(t *testing.T) {
		pages := []string{"上传中 30%", "上传中 90%", "上传成功 重新上传"}
		reads := 0
		read := func() (string, error) {
			text := pages[reads]
			if reads < len(pages)-1 {
				reads++
			}
			return text, nil
		}
		ok, err := pollText(context.Background(), read, done, time.Second, time.Millisecond)
		if err != nil || !ok {
			t.Fatalf("pollText() = %v, %v, want true, nil", ok, err)
		}
		if reads != 2 {
			t.Errorf("reads = %d, want 2", reads)
		}
	})

	t.Run("timeout is soft", func(t *testing.T) {
		read := func() (string, error) { return "上传成功", nil }
		ok, err := pollText(context.Background(), read, done, 20*time.Millisecond, time.Millisecond)
		if err != nil || ok {
			t.Errorf("pollText() = %v, %v, want false, nil", ok, err)
		}
	})

	t.Run("read error", func(t *testing.T) {
		read := func() (string, error) { return "", domain.ErrPageClosed }
		_, err := pollText(context.Background(), read, done, time.Second, time.Millisecond)
		if !errors.Is(err, domain.ErrPageClosed) {
			t.Errorf("pollText() error = %v, want ErrPageClosed", err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		read := func() (string, error) { return "", nil }
		_, err := pollText(ctx, read, done, time.Second, time.Hour)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("pollText() error = %v, want context.Canceled", err)
		}
	})
}
