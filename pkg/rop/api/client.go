package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/ib-77/ropmatch/pkg/rop/codec"
	"github.com/ib-77/ropmatch/pkg/rop/config"
)

// Client issues the requests behind the presets. It keeps cookies across
// requests and accepts gzip and zstd encoded bodies.
type Client struct {
	base    *url.URL
	http    *http.Client
	headers map[string]string
	logger  *slog.Logger
}

func NewClient(cfg config.Client, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	c := &Client{headers: cfg.Headers, logger: logger}
	if cfg.BaseURL != "" {
		base, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("parsing base url: %w", err)
		}
		c.base = base
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}
	c.http = &http.Client{Jar: jar, Timeout: cfg.Timeout.Std()}

	return c, nil
}

// Get returns a call that fetches target; the pipeline argument is ignored.
func (c *Client) Get(target string) APICall {
	return func(ctx context.Context, _ any) (Response, error) {
		return c.Do(ctx, http.MethodGet, target, nil)
	}
}

// Post returns a call that posts the pipeline argument as JSON.
func (c *Client) Post(target string) APICall {
	return func(ctx context.Context, data any) (Response, error) {
		return c.Do(ctx, http.MethodPost, target, data)
	}
}

// Do sends one request. A non-nil data is encoded as the JSON body.
func (c *Client) Do(ctx context.Context, method, target string, data any) (*Reply, error) {
	endpoint, err := c.resolve(target)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if data != nil {
		encoded, err := codec.EncodeJSON(data)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", codec.ContentTypeJSON)
	}
	req.Header.Set("Accept", codec.ContentTypeJSON+", "+codec.ContentTypeCBOR)
	req.Header.Set("Accept-Encoding", "zstd, gzip")
	for name, value := range c.headers {
		req.Header.Set(name, value)
	}

	start := time.Now()
	c.logger.Debug("api request", "method", method, "url", endpoint)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("api request failed", "method", method, "url", endpoint, "error", err)
		return nil, err
	}

	if err := decompress(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}

	reply, err := FromHTTP(resp)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("api response",
		"method", method,
		"url", endpoint,
		"status", reply.Status(),
		"bytes", len(reply.Body),
		"duration", time.Since(start),
	)
	return reply, nil
}

func (c *Client) resolve(target string) (string, error) {
	ref, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("parsing url %q: %w", target, err)
	}
	if c.base == nil || ref.IsAbs() {
		return ref.String(), nil
	}
	return c.base.ResolveReference(ref).String(), nil
}

type decodedBody struct {
	io.Reader
	close func() error
}

func (b decodedBody) Close() error {
	return b.close()
}

// decompress swaps resp.Body for a reader of the decoded content.
func decompress(resp *http.Response) error {
	raw := resp.Body
	encoding := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding")))

	switch encoding {
	case "", "identity":
		return nil
	case "gzip":
		zr, err := gzip.NewReader(raw)
		if err != nil {
			return fmt.Errorf("opening gzip body: %w", err)
		}
		resp.Body = decodedBody{Reader: zr, close: func() error {
			zr.Close()
			return raw.Close()
		}}
	case "zstd":
		zr, err := zstd.NewReader(raw)
		if err != nil {
			return fmt.Errorf("opening zstd body: %w", err)
		}
		resp.Body = decodedBody{Reader: zr, close: func() error {
			zr.Close()
			return raw.Close()
		}}
	default:
		return fmt.Errorf("unsupported content encoding %q", encoding)
	}

	resp.Header.Del("Content-Encoding")
	return nil
}
