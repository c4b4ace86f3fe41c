package compare

import (
	"context"
	"errors"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"PeerLens/internal/collector"
	"PeerLens/internal/model"
	"PeerLens/internal/palette"
	"PeerLens/internal/series"
	"PeerLens/internal/summary"
)

// State is the compare view's lifecycle state.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

// Snapshot is the fully recomputed render input for one view state: derived
// series per ticker, merged chart tables, the clipped P/E axis domain,
// summary rows, and the color assignment. It is rebuilt wholesale on every
// relevant change; there is no incremental update path.
type Snapshot struct {
	State      State                 `json:"state"`
	Error      string                `json:"error,omitempty"`
	Descriptor model.Descriptor      `json:"descriptor"`
	Query      string                `json:"query"`
	Series     []model.DerivedSeries `json:"series"`
	PriceTable []model.MergedRow     `json:"priceTable"`
	PETable    []model.MergedRow     `json:"peTable"`
	PEDomain   model.Domain          `json:"peDomain"`
	Summary    []summary.Row         `json:"summary"`
	Colors     map[string]string     `json:"colors"`
	Hidden     []string              `json:"hidden,omitempty"`
	AsOf       time.Time             `json:"asOf"`
}

// View owns the compare descriptor and the raw data fetched for it. All
// derived state is recomputed in full from (raw, descriptor) on every change;
// a new (tickers, range) selection cancels any fetch still in flight for the
// superseded parameters, and stale resolutions are discarded by generation.
type View struct {
	// Now returns the current time. Tests substitute a fixed clock. Set
	// before first use.
	Now func() time.Time
	// OnDescriptorChange, if set, receives the encoded descriptor after
	// every state change (the URL-replacement hook). Set before first use.
	OnDescriptorChange func(url.Values)

	mu      sync.Mutex
	fetcher collector.Fetcher
	colors  *palette.Allocator

	desc   model.Descriptor
	hidden map[string]bool
	state  State
	errMsg string
	raw    []model.RawSeries

	generation uint64
	cancel     context.CancelFunc
}

// NewView creates an idle view with the default descriptor.
func NewView(fetcher collector.Fetcher, colors *palette.Allocator) *View {
	return &View{
		Now:     time.Now,
		fetcher: fetcher,
		colors:  colors,
		desc:    model.Descriptor{Range: model.DefaultRange},
		hidden:  make(map[string]bool),
		state:   StateIdle,
	}
}

// Apply normalizes and installs a descriptor. A change to (tickers, range)
// moves the view to Loading and fetches; a clip-toggle-only change recomputes
// from the data already held. Returns ErrSuperseded when a newer Apply
// replaced this one while its fetch was in flight; fetch failures are not
// returned as errors but surfaced in the snapshot, with the last Ready data
// preserved.
func (v *View) Apply(ctx context.Context, desc model.Descriptor) (Snapshot, error) {
	desc = NormalizeDescriptor(desc)

	v.mu.Lock()
	// An unchanged (tickers, range) selection only recomputes, unless the
	// view is Idle (nothing fetched yet) or Error (a re-apply retries).
	if sameSelection(v.desc, desc) && (v.state == StateReady || v.state == StateLoading) {
		v.desc = desc
		snap := v.snapshotLocked()
		q := EncodeDescriptor(v.desc)
		v.mu.Unlock()
		v.notify(q)
		return snap, nil
	}
	v.mu.Unlock()

	return v.fetch(ctx, desc)
}

// Restore decodes query parameters and applies them; the initial-load path.
func (v *View) Restore(ctx context.Context, params url.Values) (Snapshot, error) {
	return v.Apply(ctx, DecodeDescriptor(params))
}

// Refresh re-fetches the current (tickers, range) snapshot on demand.
func (v *View) Refresh(ctx context.Context) (Snapshot, error) {
	v.mu.Lock()
	desc := v.desc
	v.mu.Unlock()
	return v.fetch(ctx, desc)
}

// SetVisible toggles one series' visibility. Hidden tickers keep their color
// and summary row but drop out of the merged tables and the pooled clip
// domain.
func (v *View) SetVisible(ticker string, visible bool) Snapshot {
	t := strings.ToUpper(strings.TrimSpace(ticker))

	v.mu.Lock()
	if visible {
		delete(v.hidden, t)
	} else {
		v.hidden[t] = true
	}
	snap := v.snapshotLocked()
	q := EncodeDescriptor(v.desc)
	v.mu.Unlock()
	v.notify(q)
	return snap
}

// Snapshot recomputes and returns the current render input.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

// Descriptor returns the current descriptor.
func (v *View) Descriptor() model.Descriptor {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.desc
}

func (v *View) fetch(ctx context.Context, desc model.Descriptor) (Snapshot, error) {
	v.mu.Lock()
	v.generation++
	gen := v.generation
	if v.cancel != nil {
		v.cancel() // supersede any in-flight fetch
	}
	fctx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.desc = desc
	v.state = StateLoading
	q := EncodeDescriptor(desc)
	v.mu.Unlock()
	v.notify(q)

	raw, err := v.fetcher.FetchSeries(fctx, desc.Tickers)

	v.mu.Lock()
	if gen != v.generation {
		// A newer selection replaced this fetch: discard its resolution,
		// success or error, so stale data is never applied out of order.
		cancel()
		snap := v.snapshotLocked()
		v.mu.Unlock()
		return snap, ErrSuperseded
	}
	cancel()
	v.cancel = nil

	if err != nil {
		if errors.Is(err, context.Canceled) {
			snap := v.snapshotLocked()
			v.mu.Unlock()
			return snap, ErrSuperseded
		}
		v.state = StateError
		v.errMsg = err.Error()
	} else {
		v.raw = raw
		v.state = StateReady
		v.errMsg = ""
	}
	snap := v.snapshotLocked()
	q = EncodeDescriptor(v.desc)
	v.mu.Unlock()
	v.notify(q)
	return snap, nil
}

// snapshotLocked runs the whole derivation pipeline. Callers hold v.mu.
func (v *View) snapshotLocked() Snapshot {
	now := v.Now()
	derived := series.DeriveAll(v.raw, v.desc.Range, now)

	visible := make([]model.DerivedSeries, 0, len(derived))
	for _, s := range derived {
		if !v.hidden[s.Ticker] {
			visible = append(visible, s)
		}
	}

	var hidden []string
	for t := range v.hidden {
		hidden = append(hidden, t)
	}
	sort.Strings(hidden)

	return Snapshot{
		State:      v.state,
		Error:      v.errMsg,
		Descriptor: v.desc,
		Query:      EncodeDescriptor(v.desc).Encode(),
		Series:     derived,
		PriceTable: series.Merge(visible, series.FieldPriceIndex),
		PETable:    series.Merge(visible, series.FieldPE),
		PEDomain:   series.ClipDomain(series.PoolPE(visible), v.desc.ClipOutliers),
		Summary:    summary.Compute(derived, now),
		Colors:     v.colors.Assign(v.desc.Tickers),
		Hidden:     hidden,
		AsOf:       now,
	}
}

func (v *View) notify(q url.Values) {
	if v.OnDescriptorChange != nil {
		v.OnDescriptorChange(q)
	}
}

func sameSelection(a, b model.Descriptor) bool {
	if a.Range != b.Range || len(a.Tickers) != len(b.Tickers) {
		return false
	}
	for i := range a.Tickers {
		if a.Tickers[i] != b.Tickers[i] {
			return false
		}
	}
	return true
}
