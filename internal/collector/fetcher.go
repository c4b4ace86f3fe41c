package collector

import (
	"context"

	"PeerLens/internal/model"
)

// Fetcher fetches raw per-ticker series from the data backend. FetchSeries
// must honor ctx cancellation: the compare view cancels superseded requests.
type Fetcher interface {
	FetchSeries(ctx context.Context, tickers []string) ([]model.RawSeries, error)
	Name() string
}
