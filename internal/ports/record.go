package ports

import (
	"context"

	"github.com/bft-labs/xhspost/internal/domain"
)

// RunRecorder persists the outcome of the last run.
type RunRecorder interface {
	Load(ctx context.Context) (domain.RunRecord, error)
	Save(ctx context.Context, rec domain.RunRecord) error
}
