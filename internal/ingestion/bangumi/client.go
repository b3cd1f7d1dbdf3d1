package bangumi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.bgm.tv"

	// Rate limiting: stay well under Bangumi's informal limits
	rateLimit = 2
	rateBurst = 4

	// Retry configuration (sync paths only; auth never retries)
	maxRetries   = 5
	initialDelay = 1 * time.Second
	maxDelay     = 32 * time.Second

	userAgent = "medialog/1.0 (https://bgm.tv)"
)

// Client handles Bangumi v0 API requests with rate limiting and retry logic
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

// NewClient creates a new Bangumi API client. An empty baseURL selects the
// public API.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), rateBurst),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// GetMe resolves a bearer token to its account. No retries: this sits on the
// request path of the import endpoint, where a slow verification must fail,
// not hang.
func (c *Client) GetMe(ctx context.Context, token string) (*User, error) {
	var user User
	if err := c.doRequest(ctx, "/v0/me", nil, token, &user, 0); err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}
	return &user, nil
}

// GetUserCollections fetches one page of a user's collection, newest first.
// The API caps limit at 50.
func (c *Client) GetUserCollections(ctx context.Context, username string, limit, offset int) (*CollectionPage, error) {
	params := url.Values{}
	params.Set("limit", fmt.Sprintf("%d", limit))
	params.Set("offset", fmt.Sprintf("%d", offset))

	endpoint := fmt.Sprintf("/v0/users/%s/collections", url.PathEscape(username))

	var page CollectionPage
	if err := c.doRequest(ctx, endpoint, params, "", &page, maxRetries); err != nil {
		return nil, fmt.Errorf("failed to fetch collections: %w", err)
	}
	return &page, nil
}

// GetSubject fetches subject detail, mainly for the platform hint.
func (c *Client) GetSubject(ctx context.Context, id int) (*Subject, error) {
	var subject Subject
	endpoint := fmt.Sprintf("/v0/subjects/%d", id)
	if err := c.doRequest(ctx, endpoint, nil, "", &subject, maxRetries); err != nil {
		return nil, fmt.Errorf("failed to fetch subject %d: %w", id, err)
	}
	return &subject, nil
}

// doRequest performs a GET with rate limiting and up to retries retries on
// 429/5xx or transport errors.
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, token string, result interface{}, retries int) error {
	fullURL := c.baseURL + endpoint
	if params != nil {
		fullURL += "?" + params.Encode()
	}

	var lastErr error
	delay := initialDelay

	for attempt := 0; attempt <= retries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", userAgent)
		if token != "" {
			req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if attempt < retries {
				log.Printf("[Bangumi] Request failed (attempt %d/%d): %v, retrying in %v...",
					attempt+1, retries, err, delay)
				time.Sleep(delay)
				delay = minDuration(delay*2, maxDelay)
				continue
			}
			return fmt.Errorf("request failed: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			bodyBytes, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			bodyStr := string(bodyBytes)

			if shouldRetry(resp.StatusCode) && attempt < retries {
				lastErr = fmt.Errorf("HTTP %d: %s", resp.StatusCode, bodyStr)
				log.Printf("[Bangumi] HTTP %d (attempt %d/%d), retrying in %v...",
					resp.StatusCode, attempt+1, retries, delay)
				time.Sleep(delay)
				delay = minDuration(delay*2, maxDelay)
				continue
			}
			return fmt.Errorf("HTTP %d: %s", resp.StatusCode, bodyStr)
		}

		err = json.NewDecoder(resp.Body).Decode(result)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
		return nil
	}

	return fmt.Errorf("request failed after %d attempts: %w", retries, lastErr)
}

// shouldRetry determines if an HTTP status code warrants a retry
func shouldRetry(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests ||
		statusCode >= 500
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
