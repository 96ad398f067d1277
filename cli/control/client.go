package control

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"gator/domain"
	"net/http"
	"time"
)

type Client struct {
	addr string
	http *http.Client
}

func NewClient(addr string) *Client {
	return &Client{addr: addr, http: &http.Client{Timeout: 5 * time.Second}}
}

// SetInterval asks the running aggregator to poll every interval and
// returns the previous and new periods.
func (c *Client) SetInterval(ctx context.Context, interval string) (old, cur time.Duration, err error) {
	body, err := json.Marshal(setIntervalRequest{Interval: interval})
	if err != nil {
		return 0, 0, err
	}
	var r setIntervalResponse
	if err := c.do(ctx, http.MethodPost, "/set-interval", body, &r); err != nil {
		return 0, 0, err
	}
	if old, err = time.ParseDuration(r.Old); err != nil {
		return 0, 0, fmt.Errorf("could not read old interval: %w", err)
	}
	if cur, err = time.ParseDuration(r.New); err != nil {
		return 0, 0, fmt.Errorf("could not read new interval: %w", err)
	}
	return old, cur, nil
}

func (c *Client) Status(ctx context.Context) (domain.AggregatorStatus, error) {
	var r statusResponse
	if err := c.do(ctx, http.MethodGet, "/status", nil, &r); err != nil {
		return domain.AggregatorStatus{}, err
	}
	interval, err := time.ParseDuration(r.Interval)
	if err != nil {
		return domain.AggregatorStatus{}, fmt.Errorf("could not read interval: %w", err)
	}
	return domain.AggregatorStatus{
		Running:     r.Running,
		Interval:    interval,
		Cycles:      r.Cycles,
		LastCycleAt: r.LastCycleAt,
		LastFeed:    r.LastFeed,
		LastResult:  domain.IngestResult{Saved: r.LastResult.Saved, Skipped: r.LastResult.Skipped, Failed: r.LastResult.Failed},
		LastError:   r.LastError,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, "http://"+c.addr+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("could not reach aggregator at %s (is `gator agg` running?): %w", c.addr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var e errorResponse
		if json.NewDecoder(resp.Body).Decode(&e) == nil && e.Error != "" {
			return fmt.Errorf("aggregator: %s", e.Error)
		}
		return fmt.Errorf("aggregator: %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
