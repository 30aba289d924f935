package segmind

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/reusedev/segmind-go/internal/consts"
	"github.com/reusedev/segmind-go/internal/modules/http_client"
	"github.com/reusedev/segmind-go/internal/modules/logs"
	"github.com/reusedev/segmind-go/tools"
)

// Params is the JSON body material for one call. Optional parameters that the
// caller did not supply must be absent from the map, not set to nil: the
// service distinguishes "unset" from "explicitly null".
type Params map[string]any

// mergeParams layers extras first so that explicitly named fields win on name
// collisions.
func mergeParams(explicit, extra Params) Params {
	merged := make(Params, len(explicit)+len(extra))
	for k, v := range extra {
		merged[k] = v
	}
	for k, v := range explicit {
		merged[k] = v
	}
	return merged
}

// RawResponse is one HTTP exchange before classification. Consumed immediately
// by classify, never retained.
type RawResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

type Client struct {
	apiKey  string
	baseURL string
	http    *http_client.HttpClient
	retry   *RetryPolicy
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.http = http_client.NewWithTimeout(timeout)
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = &http_client.HttpClient{HttpClient: hc}
	}
}

// WithRetry opts the client's model calls into backoff-and-retry on rate
// limiting. The raw Dispatch path never retries on its own.
func WithRetry(maxRetries int, initialDelay time.Duration) Option {
	return func(c *Client) {
		c.retry = NewRetryPolicy(maxRetries, initialDelay)
	}
}

// New resolves the credential once: the explicit argument wins, else the
// SEGMIND_API_KEY environment variable. Neither being set is a construction
// failure, not a deferred one.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		apiKey = os.Getenv(consts.APIKeyEnv)
	}
	if apiKey == "" {
		return nil, &ConfigurationError{
			Reason: "API key must be provided either as an argument or as " + consts.APIKeyEnv + " environment variable",
		}
	}
	c := &Client{
		apiKey:  apiKey,
		baseURL: consts.SegmindBaseURL,
		http:    http_client.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Dispatch performs one synchronous POST to <base>/<endpoint> with the
// credential header and a JSON body. It does not interpret the response body.
func (c *Client) Dispatch(ctx context.Context, endpoint string, params Params) (*RawResponse, error) {
	req, err := c.http.NewRequest(
		http.MethodPost,
		tools.FullURL(c.baseURL, endpoint),
		http_client.WithHeader(consts.HeaderAPIKey, c.apiKey),
		http_client.WithHeader("Content-Type", "application/json"),
		http_client.WithBody(params),
		http_client.WithContext(ctx),
	)
	if err != nil {
		return nil, err
	}
	requestID := uuid.New().String()
	reqAt := time.Now()
	resp, err := c.http.Do(req)
	respAt := time.Now()
	if err != nil {
		logs.Logger.Err(err).
			Str("request_id", requestID).
			Str("endpoint", endpoint).
			Msg("segmind request")
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	logs.Logger.Info().
		Str("request_id", requestID).
		Str("endpoint", endpoint).
		Str("method", req.Method).
		Int("status_code", resp.StatusCode).
		Dur("req_consume_ms", respAt.Sub(reqAt)).
		Msg("segmind request")
	return &RawResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// invoke is the dispatch+classify pipeline every model call funnels through,
// wrapped by the retry policy when the client opted in.
func (c *Client) invoke(ctx context.Context, endpoint string, params Params, binary bool) (*Result, error) {
	op := func() (*Result, error) {
		raw, err := c.Dispatch(ctx, endpoint, params)
		if err != nil {
			return nil, err
		}
		return classify(raw, binary)
	}
	if c.retry != nil {
		return c.retry.Do(ctx, op)
	}
	return op()
}
