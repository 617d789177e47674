package baseline

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const (
	worldBankLatestURL = "https://api.worldbank.org/v2/country/%s/indicator/%s?format=json"
	worldBankAllURL    = "https://api.worldbank.org/v2/country/all/indicator/%s?format=json&per_page=20000"
)

// observation is the latest reported value for one indicator in one country.
type observation struct {
	Value *float64 `json:"value"`
	Year  string   `json:"year"`
}

type wbClient struct {
	http *http.Client
}

func newWBClient(timeout time.Duration) *wbClient {
	return &wbClient{http: &http.Client{Timeout: timeout}}
}

// wbEntry mirrors one row of the World Bank v2 response. The payload is a
// two-element array: [pagination, rows].
type wbEntry struct {
	Value   *float64 `json:"value"`
	Date    string   `json:"date"`
	Country struct {
		ID string `json:"id"`
	} `json:"country"`
}

func (c *wbClient) fetch(ctx context.Context, url string) ([]wbEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("world bank api status %d", resp.StatusCode)
	}

	var payload []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode world bank payload: %w", err)
	}
	if len(payload) < 2 {
		return nil, fmt.Errorf("unexpected world bank payload shape")
	}

	var entries []wbEntry
	if err := json.Unmarshal(payload[1], &entries); err != nil {
		return nil, fmt.Errorf("decode world bank rows: %w", err)
	}
	return entries, nil
}

// latest returns the most recent non-null value for one country/indicator.
func (c *wbClient) latest(ctx context.Context, countryCode, indicatorCode string) (observation, error) {
	entries, err := c.fetch(ctx, fmt.Sprintf(worldBankLatestURL, countryCode, indicatorCode))
	if err != nil {
		return observation{}, err
	}
	for _, entry := range entries {
		if entry.Value != nil {
			v := *entry.Value
			return observation{Value: &v, Year: entry.Date}, nil
		}
	}
	return observation{}, nil
}

// allLatest returns the latest value per country code across all reporting
// countries, used for global percentile normalization.
func (c *wbClient) allLatest(ctx context.Context, indicatorCode string) (map[string]float64, error) {
	entries, err := c.fetch(ctx, fmt.Sprintf(worldBankAllURL, indicatorCode))
	if err != nil {
		return nil, err
	}
	latest := make(map[string]float64)
	for _, entry := range entries {
		if entry.Value == nil || entry.Country.ID == "" {
			continue
		}
		if _, seen := latest[entry.Country.ID]; seen {
			continue
		}
		latest[entry.Country.ID] = *entry.Value
	}
	return latest, nil
}

type cacheEnvelope struct {
	Timestamp int64           `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// readCache loads a JSON cache file into out when it exists and is younger
// than ttl.
func readCache(path string, ttl time.Duration, out interface{}) bool {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var envelope cacheEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return false
	}
	if time.Since(time.Unix(envelope.Timestamp, 0)) > ttl {
		return false
	}
	return json.Unmarshal(envelope.Data, out) == nil
}

func writeCache(path string, data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	envelope := cacheEnvelope{Timestamp: time.Now().Unix(), Data: raw}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, payload, 0o644)
}
