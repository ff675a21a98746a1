package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tubebenders/backend/internal/domain"
	"github.com/tubebenders/backend/internal/logging"
)

const maxAttempts = 3

// Client reads the catalog from a remote tube bender service
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	backoff     func(attempt int) time.Duration
}

// NewClient creates a remote catalog client. requestsPerSecond throttles
// outbound calls with a burst of 5.
func NewClient(baseURL string, timeout time.Duration, requestsPerSecond float64) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     strings.TrimRight(baseURL, "/"),
		rateLimiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 5),
		backoff:     linearBackoff,
	}
}

// linearBackoff waits 500ms per attempt already made
func linearBackoff(attempt int) time.Duration {
	return time.Duration(attempt*500) * time.Millisecond
}

// List fetches every product
func (c *Client) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.fetch(ctx, "/api/tube-benders", &products); err != nil {
		return nil, err
	}
	logging.Debug().Int("count", len(products)).Msg("fetched remote catalog")
	return products, nil
}

// Get fetches a single product
func (c *Client) Get(ctx context.Context, id int) (*domain.Product, error) {
	var product domain.Product
	if err := c.fetch(ctx, fmt.Sprintf("/api/tube-benders/%d", id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// fetch GETs path and decodes the JSON body into dest, retrying transient failures
func (c *Client) fetch(ctx context.Context, path string, dest interface{}) error {
	reqURL := c.baseURL + path
	log := logging.With().Str("component", "catalog-client").Str("url", reqURL).Logger()

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, c.backoff(attempt-1)); err != nil {
				return err
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		body, status, err := c.doRequest(ctx, reqURL)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Msg("catalog request failed")
			lastErr = err
			if ctx.Err() != nil {
				return lastErr
			}
			continue
		}

		switch {
		case status == http.StatusOK:
			if err := json.Unmarshal(body, dest); err != nil {
				return fmt.Errorf("%w: decode response: %v", domain.ErrCatalogUnavailable, err)
			}
			return nil
		case status == http.StatusNotFound:
			return domain.ErrProductNotFound
		case status == http.StatusTooManyRequests || status >= 500:
			log.Warn().Int("status", status).Int("attempt", attempt).Msg("catalog service error")
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, status)
		default:
			return fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, status)
		}
	}

	log.Error().Err(lastErr).Msg("all catalog retries failed")
	return lastErr
}

// doRequest executes an HTTP GET request and returns the body
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "TubeBenders/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: read body: %v", domain.ErrCatalogUnavailable, err)
	}
	return body, resp.StatusCode, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
