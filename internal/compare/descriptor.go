package compare

import (
	"net/url"
	"strings"

	"PeerLens/internal/model"
)

// Query parameter names of the restorable view descriptor.
const (
	paramTickers = "tickers"
	paramRange   = "range"
	paramClipPE  = "clipPE"
)

// NormalizeTickers uppercases and trims symbols, de-duplicates them keeping
// insertion order, and clamps the result to model.MaxCompareTickers.
func NormalizeTickers(tickers []string) []string {
	out := make([]string, 0, len(tickers))
	seen := make(map[string]bool, len(tickers))
	for _, t := range tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
		if len(out) == model.MaxCompareTickers {
			break
		}
	}
	return out
}

// NormalizeDescriptor applies the ticker rules and the range fallback to an
// arbitrary descriptor.
func NormalizeDescriptor(d model.Descriptor) model.Descriptor {
	d.Tickers = NormalizeTickers(d.Tickers)
	if !model.ValidCompareRange(d.Range) {
		d.Range = model.DefaultRange
	}
	return d
}

// EncodeDescriptor serializes a descriptor to the query parameters that make
// a comparison view shareable and restorable.
func EncodeDescriptor(d model.Descriptor) url.Values {
	v := url.Values{}
	v.Set(paramTickers, strings.Join(d.Tickers, ","))
	v.Set(paramRange, string(d.Range))
	if d.ClipOutliers {
		v.Set(paramClipPE, "true")
	} else {
		v.Set(paramClipPE, "false")
	}
	return v
}

// DecodeDescriptor restores a descriptor from query parameters. Absent or
// invalid parameters fall back to the defaults: no tickers, range 1Y, clip
// off. The ticker list is clamped to model.MaxCompareTickers.
func DecodeDescriptor(v url.Values) model.Descriptor {
	var tickers []string
	if raw := v.Get(paramTickers); raw != "" {
		tickers = strings.Split(raw, ",")
	}
	return NormalizeDescriptor(model.Descriptor{
		Tickers:      tickers,
		Range:        model.Range(v.Get(paramRange)),
		ClipOutliers: v.Get(paramClipPE) == "true",
	})
}
