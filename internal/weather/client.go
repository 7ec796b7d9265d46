package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the Visual Crossing timeline endpoint.
	DefaultBaseURL = "https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services/timeline"

	defaultTimeout = 10 * time.Second
)

// Config configures a Client.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// FetchError reports a failed forecast request. StatusCode is zero when no
// HTTP response was received.
type FetchError struct {
	Location   string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("weather fetch for %s: status %d", e.Location, e.StatusCode)
	}
	return fmt.Sprintf("weather fetch for %s: %v", e.Location, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client fetches daily forecasts from the Visual Crossing timeline API.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	log     *slog.Logger
}

// NewClient constructs a Client. Empty BaseURL and zero Timeout fall back to defaults.
func NewClient(cfg Config, log *slog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// endpoint builds {base}/{location}/{start}/{end} with the metric, day-granularity query.
func (c *Client) endpoint(location, startDate, endDate string) string {
	q := url.Values{}
	q.Set("unitGroup", "metric")
	q.Set("include", "days")
	q.Set("key", c.apiKey)
	q.Set("contentType", "json")

	return c.baseURL + "/" + url.PathEscape(location) + "/" + url.PathEscape(startDate) + "/" +
		url.PathEscape(endDate) + "?" + q.Encode()
}

// Fetch retrieves the forecast for location over [startDate, endDate].
// Every failure is returned as a *FetchError. There are no retries.
func (c *Client) Fetch(ctx context.Context, location, startDate, endDate string) (*Report, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(location, startDate, endDate), nil)
	if err != nil {
		return nil, &FetchError{Location: location, Err: fmt.Errorf("creating request: %w", err)}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		// The url.Error carries the full URL, including the API key.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, &FetchError{Location: location, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			Location:   location,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	var report Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, &FetchError{Location: location, Err: fmt.Errorf("decoding response: %w", err)}
	}

	return &report, nil
}

// Lookup is Fetch with failures logged and reported as a nil Report.
func (c *Client) Lookup(ctx context.Context, location, startDate, endDate string) *Report {
	report, err := c.Fetch(ctx, location, startDate, endDate)
	if err != nil {
		c.log.Warn("weather fetch failed", "location", location, "start", startDate, "end", endDate, "err", err)
		return nil
	}
	return report
}
