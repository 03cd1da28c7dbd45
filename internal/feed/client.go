package feed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/californiaroad/cwwp-catalog/internal/domain"
)

// ErrUpstream marks a pull that failed before decoding: a transport error,
// a non-OK status, or an error page served in place of the document.
var ErrUpstream = errors.New("upstream feed unavailable")

// Client pulls status documents from the CWWP endpoint. Decoded envelopes
// are held in a TTL cache so bursts of catalog builds and per-feed API reads
// don't multiply load on the upstream.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *gocache.Cache
	logger     *slog.Logger
}

// NewClient creates a feed client. cacheTTL bounds how stale a served
// envelope may be; zero disables caching.
func NewClient(baseURL string, timeout, cacheTTL time.Duration, logger *slog.Logger) *Client {
	var c *gocache.Cache
	if cacheTTL > 0 {
		c = gocache.New(cacheTTL, 2*cacheTTL)
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cache:  c,
		logger: logger,
	}
}

// Pull fetches and decodes the status document for one (type, district)
// feed. Decode failures come back wrapping ErrParse, everything upstream of
// decoding wraps ErrUpstream.
func (c *Client) Pull(ctx context.Context, id domain.DataType, district int) (Envelope, error) {
	key := fmt.Sprintf("%s-d%s", id, domain.DistrictID(district))
	if c.cache != nil {
		if cached, ok := c.cache.Get(key); ok {
			return cached.(Envelope), nil
		}
	}

	url := domain.FeedURL(c.baseURL, id, district)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Envelope{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Envelope{}, fmt.Errorf("%w: status %d for %s", ErrUpstream, resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: read body: %v", ErrUpstream, err)
	}

	// The upstream serves HTML maintenance pages with a 200 status.
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] == '<' {
		return Envelope{}, fmt.Errorf("%w: non-JSON body for %s", ErrUpstream, url)
	}

	env, err := Decode(body)
	if err != nil {
		return Envelope{}, err
	}

	c.logger.Debug("feed pulled",
		"type", string(id),
		"district", district,
		"items", len(env.Data),
	)

	if c.cache != nil {
		c.cache.Set(key, env, gocache.DefaultExpiration)
	}
	return env, nil
}
