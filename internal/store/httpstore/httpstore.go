// Package httpstore implements the remote profile store contract over
// HTTP, against the record API served by internal/server.
package httpstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httputil"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	"github.com/gvpusca/profilesync/internal/profile"
	"github.com/gvpusca/profilesync/internal/store"
)

// Client talks to a remote record API. It satisfies store.Store.
type Client struct {
	baseURL    string
	http       *http.Client
	maxElapsed time.Duration // retry budget for idempotent reads; 0 = no retry
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithDebugLogging wraps the transport with request/response dumping.
func WithDebugLogging() Option {
	return func(c *Client) {
		base := c.http.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		c.http.Transport = &debugTransport{base: base}
	}
}

// WithReadRetry enables exponential-backoff retries for idempotent
// reads (status, get, list) up to the given elapsed budget. Writes are
// never retried here.
func WithReadRetry(maxElapsed time.Duration) Option {
	return func(c *Client) { c.maxElapsed = maxElapsed }
}

// New constructs a Client for the given base URL.
func New(base string, opts ...Option) *Client {
	c := &Client{
		baseURL: base,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	if os.Getenv("PROFILESYNC_DEBUG") == "true" {
		opts = append(opts, WithDebugLogging())
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// debugTransport dumps HTTP round trips at debug level.
type debugTransport struct{ base http.RoundTripper }

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if dump, err := httputil.DumpRequestOut(req, true); err == nil {
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", string(dump)).Msg("HTTP request")
	}
	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		log.Debug().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}
	if dump, err := httputil.DumpResponse(resp, true); err == nil {
		log.Debug().Int("status_code", resp.StatusCode).Str("url", req.URL.String()).Str("response_dump", string(dump)).Msg("HTTP response")
	}
	return resp, nil
}

// retryRead runs op with exponential backoff when a retry budget is
// configured. store.ErrNotFound is a permanent outcome, not a failure.
func (c *Client) retryRead(ctx context.Context, op func() error) error {
	if c.maxElapsed == 0 {
		return op()
	}
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = c.maxElapsed
	return backoff.Retry(func() error {
		err := op()
		if err == nil || errors.Is(err, store.ErrNotFound) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(bo, ctx))
}

type statusResponse struct {
	Status string `json:"status"`
}

type listResponse struct {
	Records []store.Record `json:"records"`
}

func (c *Client) CheckStatus(ctx context.Context) (store.AccountStatus, error) {
	var out statusResponse
	err := c.retryRead(ctx, func() error {
		return c.getJSON(ctx, c.baseURL+"/v1/status", &out)
	})
	if err != nil {
		return store.StatusUndetermined, err
	}
	return store.ParseAccountStatus(out.Status), nil
}

func (c *Client) Get(ctx context.Context, id profile.ProfileID) (store.Record, error) {
	var rec store.Record
	err := c.retryRead(ctx, func() error {
		return c.getJSON(ctx, fmt.Sprintf("%s/v1/records/%s", c.baseURL, id), &rec)
	})
	if err != nil {
		return store.Record{}, err
	}
	return rec, nil
}

func (c *Client) Put(ctx context.Context, rec store.Record) (store.Record, error) {
	url := fmt.Sprintf("%s/v1/records/%s", c.baseURL, rec.ID)
	return c.writeRecord(ctx, http.MethodPut, url, rec, http.StatusOK)
}

func (c *Client) Create(ctx context.Context, rec store.Record) (store.Record, error) {
	return c.writeRecord(ctx, http.MethodPost, c.baseURL+"/v1/records", rec, http.StatusCreated)
}

func (c *Client) ListAll(ctx context.Context, kind string) ([]store.Record, error) {
	var out listResponse
	err := c.retryRead(ctx, func() error {
		return c.getJSON(ctx, c.baseURL+"/v1/records?kind="+kind, &out)
	})
	if err != nil {
		return nil, err
	}
	return out.Records, nil
}

func (c *Client) Delete(ctx context.Context, id profile.ProfileID) error {
	url := fmt.Sprintf("%s/v1/records/%s", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusNoContent, http.StatusOK:
		return nil
	case http.StatusNotFound:
		return store.ErrNotFound
	default:
		return fmt.Errorf("delete record: status %d", resp.StatusCode)
	}
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
		return json.NewDecoder(resp.Body).Decode(out)
	case http.StatusNotFound:
		return store.ErrNotFound
	default:
		return fmt.Errorf("get %s: status %d", url, resp.StatusCode)
	}
}

func (c *Client) writeRecord(ctx context.Context, method, url string, rec store.Record, want int) (store.Record, error) {
	body, err := json.Marshal(rec)
	if err != nil {
		return store.Record{}, err
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewBuffer(body))
	if err != nil {
		return store.Record{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return store.Record{}, err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case want:
		var saved store.Record
		if err := json.NewDecoder(resp.Body).Decode(&saved); err != nil {
			return store.Record{}, err
		}
		return saved, nil
	case http.StatusNotFound:
		return store.Record{}, store.ErrNotFound
	default:
		return store.Record{}, fmt.Errorf("%s record: status %d", method, resp.StatusCode)
	}
}
