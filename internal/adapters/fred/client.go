package fred

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/apetrov/econ-tracker/internal/adapters/config"
	"github.com/apetrov/econ-tracker/pkg/logger"
)

// Observation is one dated value as returned by the FRED API
type Observation struct {
	Date  time.Time
	Value decimal.Decimal
}

// Client fetches series observations from the FRED API
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewClient creates new FRED API client
func NewClient(cfg *config.FredConfig) *Client {
	return &Client{
		client:  &http.Client{Timeout: cfg.RequestTimeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}
}

type observationsResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

// FetchObservations returns all observations for a series starting at observationStart.
// FRED reports missing samples with a "." value; those are skipped.
func (c *Client) FetchObservations(ctx context.Context, seriesName, observationStart string) ([]Observation, error) {
	q := url.Values{}
	q.Set("series_id", seriesName)
	q.Set("api_key", c.apiKey)
	q.Set("file_type", "json")
	q.Set("observation_start", observationStart)

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("FRED API error %d: %s", resp.StatusCode, string(body))
	}

	var parsed observationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	observations := make([]Observation, 0, len(parsed.Observations))
	skipped := 0
	for _, obs := range parsed.Observations {
		if obs.Value == "." {
			skipped++
			continue
		}

		value, err := decimal.NewFromString(obs.Value)
		if err != nil {
			skipped++
			continue
		}

		date, err := time.Parse("2006-01-02", obs.Date)
		if err != nil {
			skipped++
			continue
		}

		observations = append(observations, Observation{Date: date, Value: value})
	}

	if skipped > 0 {
		logger.Debug("skipped unparsable FRED observations",
			zap.String("series", seriesName),
			zap.Int("skipped", skipped),
		)
	}

	return observations, nil
}
