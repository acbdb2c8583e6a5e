package cli

import (
	"context"
	"fmt"

	"github.com/rshade/pagefeed/internal/config"
	"github.com/rshade/pagefeed/internal/controller"
	"github.com/rshade/pagefeed/internal/fetch"
	"github.com/rshade/pagefeed/internal/logging"
)

// newClient validates cfg and builds the fetch client it describes.
func newClient(ctx context.Context, cfg *config.Config) (*fetch.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return fetch.New(cfg.API.BaseURL,
		fetch.WithRateLimit(cfg.API.RateLimit),
		fetch.WithUserAgent(cfg.API.UserAgent),
		fetch.WithLogger(*logging.FromContext(ctx)),
	)
}

// newController builds a view controller over fetcher using the view settings in cfg.
func newController(ctx context.Context, fetcher fetch.PageFetcher, cfg *config.Config) (*controller.Controller, error) {
	return controller.New(fetcher, cfg.API.PageSize,
		controller.WithScrollThreshold(cfg.View.ScrollThreshold),
		controller.WithResetOnLoad(cfg.View.ResetOnLoad),
		controller.WithLogger(*logging.FromContext(ctx)),
	)
}
