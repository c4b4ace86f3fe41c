package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"PeerLens/internal/model"
)

// StocksAPIFetcher implements Fetcher against the stocks backend REST API.
type StocksAPIFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewStocksAPIFetcher creates a new fetcher with optional proxy support.
func NewStocksAPIFetcher(baseURL, apiKey, proxyURL string, timeout time.Duration) *StocksAPIFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &StocksAPIFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (f *StocksAPIFetcher) Name() string { return "stocks-api" }

// wirePoint is one observation as the backend serializes it. Dates may carry
// a time suffix; only the calendar day is kept.
type wirePoint struct {
	Date  string   `json:"date"`
	Close *float64 `json:"close"`
	PE    *float64 `json:"pe"`
	EPS   *float64 `json:"eps"`
}

type wirePayload struct {
	Ticker string      `json:"ticker"`
	Prices []wirePoint `json:"prices"`
	model.GrowthStats
}

// FetchSeries requests the given tickers in one batch. The backend answers
// with either an array of payloads or an object keyed by ticker; both are
// normalized to the array form before processing.
func (f *StocksAPIFetcher) FetchSeries(ctx context.Context, tickers []string) ([]model.RawSeries, error) {
	if len(tickers) == 0 {
		return nil, nil
	}

	q := url.Values{}
	for _, t := range tickers {
		q.Add("tickers", t)
	}
	endpoint := fmt.Sprintf("%s/api/stocks?%s", f.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch series: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read series body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch series: status %d, body: %s", resp.StatusCode, string(body))
	}

	payloads, err := decodePayloads(body, tickers)
	if err != nil {
		return nil, fmt.Errorf("decode series: %w", err)
	}

	out := make([]model.RawSeries, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, toRawSeries(p))
	}
	return out, nil
}

// decodePayloads accepts both response encodings. The object form is ordered
// by the requested ticker list so downstream output stays deterministic.
func decodePayloads(body []byte, tickers []string) ([]wirePayload, error) {
	var asArray []wirePayload
	if err := json.Unmarshal(body, &asArray); err == nil {
		return asArray, nil
	}

	var asMap map[string]wirePayload
	if err := json.Unmarshal(body, &asMap); err != nil {
		return nil, fmt.Errorf("response is neither array nor object keyed by ticker: %w", err)
	}
	out := make([]wirePayload, 0, len(asMap))
	for _, t := range tickers {
		if p, ok := asMap[t]; ok {
			if p.Ticker == "" {
				p.Ticker = t
			}
			out = append(out, p)
		}
	}
	return out, nil
}

func toRawSeries(p wirePayload) model.RawSeries {
	points := make([]model.RawPoint, 0, len(p.Prices))
	for _, wp := range p.Prices {
		points = append(points, model.RawPoint{
			Date:  parseDay(wp.Date),
			Close: wp.Close,
			PE:    wp.PE,
			EPS:   wp.EPS,
		})
	}
	return model.RawSeries{
		Ticker: p.Ticker,
		Points: points,
		Growth: p.GrowthStats,
	}
}

// parseDay parses a calendar date, tolerating timestamp suffixes. The zero
// time marks an unparseable date; the range filter excludes those points.
func parseDay(s string) time.Time {
	if len(s) > len(model.DateFormat) {
		s = s[:len(model.DateFormat)]
	}
	t, err := time.Parse(model.DateFormat, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
