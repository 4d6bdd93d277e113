package app

import (
	"context"

	"github.com/bft-labs/xhspost/internal/domain"
	"github.com/bft-labs/xhspost/internal/ports"
)

// firstMatch activates the first finder that matches an element.
// A finder that errors is logged and skipped; only context errors stop the scan.
func firstMatch(ctx context.Context, page ports.Page, finders []domain.Finder, logger ports.Logger) (domain.Finder, bool, error) {
	for _, f := range finders {
		clicked, err := page.Activate(ctx, f)
		if err != nil {
			if ctx.Err() != nil {
				return domain.Finder{}, false, ctx.Err()
			}
			logger.Debug("finder failed", ports.String("finder", f.Name), ports.Err(err))
			continue
		}
		if clicked {
			logger.Debug("finder matched", ports.String("finder", f.Name), ports.String("selector", f.Selector))
			return f, true, nil
		}
	}
	return domain.Finder{}, false, nil
}
