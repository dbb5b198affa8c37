// Package carmd is a thin client for the CarMD vehicle-data REST API (v2.0).
// It authenticates requests and builds endpoint URLs; response bodies are
// handed back raw for the caller to parse.
package carmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/openmotive/carmd-go/pkg/httpclient"
)

// DefaultBaseURL is the CarMD v2.0 API root.
const DefaultBaseURL = "http://api2.carmd.com/v2.0/"

const defaultTimeout = 15 * time.Second

// Environment variables consulted when ClientConfig credentials are empty.
const (
	EnvKey    = "CARMD_KEY"
	EnvSecret = "CARMD_SECRET"
)

// ClientConfig holds construction-time settings for a Client.
type ClientConfig struct {
	// BaseURL overrides DefaultBaseURL when set.
	BaseURL string
	// Key is the authorization key, sent as the `authorization` header.
	// Looks like "Basic eadafacaADWADAWFAXwadawfawgawga=".
	Key string
	// Secret is the partner token, sent as the `partner-token` header.
	// Looks like "XXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXX".
	Secret string
	// HTTP lets callers inject a transport. Defaults to a resty client
	// with a 15s timeout.
	HTTP httpclient.Client
}

// Client issues authenticated requests against the CarMD API. Configuration
// is immutable for the client's lifetime; calls are otherwise stateless, one
// outbound request per call.
type Client struct {
	baseURL string
	key     string
	secret  string
	http    httpclient.Client
}

// NewClient builds a Client from cfg. Missing credentials fall back to the
// CARMD_KEY and CARMD_SECRET environment variables; construction fails when
// either is still empty.
func NewClient(cfg ClientConfig) (*Client, error) {
	key := strings.TrimSpace(cfg.Key)
	if key == "" {
		key = strings.TrimSpace(os.Getenv(EnvKey))
	}
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		secret = strings.TrimSpace(os.Getenv(EnvSecret))
	}
	if key == "" || secret == "" {
		return nil, fmt.Errorf("carmd: key and secret are required (set %s and %s or pass them in ClientConfig)", EnvKey, EnvSecret)
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	transport := cfg.HTTP
	if transport == nil {
		transport = httpclient.NewRestyClient(defaultTimeout)
	}

	return &Client{
		baseURL: baseURL,
		key:     key,
		secret:  secret,
		http:    transport,
	}, nil
}

// Response is the raw outcome of an API call. The client never parses the
// body; non-2xx statuses are returned here, never as errors.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports whether the response carries a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// get performs a single authenticated GET against the named service path.
func (c *Client) get(ctx context.Context, service string, params map[string]string) (*Response, error) {
	url := c.baseURL + service
	headers := map[string]string{
		"authorization": c.key,
		"partner-token": c.secret,
	}

	resp, err := c.http.Get(ctx, url, headers, params)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}

	return &Response{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.Body(),
	}, nil
}
