package collector

import (
	"context"
	"sync"
	"time"

	"PeerLens/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Series map[string]model.RawSeries
	Err    error
	Delay  time.Duration

	mu    sync.Mutex
	calls int
}

func (m *MockFetcher) Name() string { return "mock" }

// CallCount reports how many fetches were issued.
func (m *MockFetcher) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockFetcher) FetchSeries(ctx context.Context, tickers []string) ([]model.RawSeries, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]model.RawSeries, 0, len(tickers))
	for _, t := range tickers {
		if s, ok := m.Series[t]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}
