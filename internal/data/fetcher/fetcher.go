package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/BerlinP/chutes-helper/internal/core/model"
	"github.com/BerlinP/chutes-helper/internal/util"
)

const (
	DefaultBaseURL = "https://api.chutes.ai"

	nodeDetailsPath  = "/nodes/?detailed=true"
	miningStatsPath  = "/miner/stats?per_chute=true"
	defaultUserAgent = "chutes-helper/1"
)

var (
	// ErrMalformedResponse is returned when a body is not the expected JSON document
	ErrMalformedResponse = errors.New("malformed response")

	// ErrUnexpectedStatus is returned for any non-2xx response
	ErrUnexpectedStatus = errors.New("unexpected status code")
)

// Client fetches the node listing and mining statistics from the Chutes API.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	userAgent  string
}

// NewClient creates a client for baseURL. A zero timeout keeps the http.Client default of no timeout.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    base,
		userAgent:  defaultUserAgent,
	}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Fetch retrieves both documents, one after the other. Either failing fails the whole fetch.
func (c *Client) Fetch(ctx context.Context) (*model.Snapshot, error) {
	var nodes map[string]model.NodeDetail
	if err := c.getJSON(ctx, nodeDetailsPath, &nodes); err != nil {
		return nil, fmt.Errorf("failed to fetch node details: %w", err)
	}
	if nodes == nil {
		return nil, fmt.Errorf("failed to fetch node details: %w: expected an object keyed by node id", ErrMalformedResponse)
	}
	if err := validateNodes(nodes); err != nil {
		return nil, fmt.Errorf("failed to fetch node details: %w", err)
	}

	var stats model.MiningStats
	if err := c.getJSON(ctx, miningStatsPath, &stats); err != nil {
		return nil, fmt.Errorf("failed to fetch mining stats: %w", err)
	}
	if stats.PastDay == nil {
		return nil, fmt.Errorf("failed to fetch mining stats: %w: missing past_day section", ErrMalformedResponse)
	}

	util.LogDebug("Fetched chutes data",
		util.F("nodes", len(nodes)),
		util.F("compute_unit_entries", len(stats.PastDay.ComputeUnits)))

	return &model.Snapshot{Nodes: nodes, Stats: stats}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	u := c.baseURL.String() + path
	util.LogDebug("Requesting chutes endpoint", util.F("url", u))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, resp.StatusCode, u)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	util.LogDebug("Received chutes response",
		util.F("url", u),
		util.F("bytes", len(body)),
		util.F("duration", time.Since(start)))

	if err := sonic.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w from %s: %w", ErrMalformedResponse, u, err)
	}
	return nil
}

// validateNodes rejects provisioned items that cannot be attributed to a chute.
func validateNodes(nodes map[string]model.NodeDetail) error {
	for nodeID, node := range nodes {
		for i, item := range node.Provisioned {
			if item.Chute.ChuteID == "" {
				return fmt.Errorf("%w: node %s provisioned[%d] has no chute_id", ErrMalformedResponse, nodeID, i)
			}
		}
	}
	return nil
}
