// Package api implements the REST transport the polling coordinator and the
// best-effort side channels read from and write to.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"chargecast/core/model"
	"chargecast/infra/logger"
)

// Config defines the upstream endpoint.
type Config struct {
	BaseURL        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 10
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	return nil
}

// Client talks to the station telemetry API.
type Client struct {
	base   string
	client *http.Client
	log    logger.Logger
}

// New creates a Client from the configuration.
func New(cfg Config) *Client {
	cfg.SetDefaults()
	return &Client{
		base:   cfg.BaseURL,
		client: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		log:    logger.New("api-client"),
	}
}

// FetchStationList returns the summaries matching the query string, which
// encodes map bounds and filter selections.
func (c *Client) FetchStationList(ctx context.Context, query string) ([]model.StationSummary, error) {
	u := c.base + "/api/stations"
	if query != "" {
		u += "?" + query
	}
	var list []model.StationSummary
	if err := c.getJSON(ctx, u, &list); err != nil {
		return nil, fmt.Errorf("station list: %w", err)
	}
	return list, nil
}

// FetchStationBrief returns the summary of one station. The server counts
// this fetch as a viewer-count increment.
func (c *Client) FetchStationBrief(ctx context.Context, id string) (*model.StationSummary, error) {
	var sum model.StationSummary
	if err := c.getJSON(ctx, c.stationURL(id, ""), &sum); err != nil {
		return nil, fmt.Errorf("station brief %s: %w", id, err)
	}
	return &sum, nil
}

// FetchStationDetail returns the full station payload including charger
// units.
func (c *Client) FetchStationDetail(ctx context.Context, id string) (*model.StationDetail, error) {
	var detail model.StationDetail
	if err := c.getJSON(ctx, c.stationURL(id, "brief=no"), &detail); err != nil {
		return nil, fmt.Errorf("station detail %s: %w", id, err)
	}
	return &detail, nil
}

// PostDepartureEvent records that a user requested navigation to the station.
// Fire and forget on the caller's side; the error is returned for logging
// only.
func (c *Client) PostDepartureEvent(ctx context.Context, id string, departAt time.Time) error {
	body, err := json.Marshal(map[string]string{
		"depart_time": departAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	u := c.stationURL(id, "") + "/departs"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

// DecrementViewerCount sends the best-effort viewer-count decrement.
func (c *Client) DecrementViewerCount(ctx context.Context, id string) error {
	u := c.stationURL(id, "") + "/view-num/down"
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, nil)
	if err != nil {
		return err
	}
	return c.do(req)
}

func (c *Client) stationURL(id, query string) string {
	u := c.base + "/api/stations/" + url.PathEscape(id)
	if query != "" {
		u += "?" + query
	}
	return u
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Warnf("close response body: %v", cerr)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) do(req *http.Request) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	if err := resp.Body.Close(); err != nil {
		c.log.Warnf("close response body: %v", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
