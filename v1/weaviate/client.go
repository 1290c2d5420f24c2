package weaviate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/fx"
	"golang.org/x/time/rate"

	"github.com/Aleph-Alpha/weaviate/v1/logger"
	"github.com/Aleph-Alpha/weaviate/v1/tracer"
)

// Client talks to a Weaviate server over its REST and GraphQL endpoints.
// Safe for concurrent use.
type Client struct {
	cfg     *Config
	http    *http.Client
	log     *logger.Logger
	trc     *tracer.Tracer
	obs     *Observer
	limiter *rate.Limiter
	baseURL string
}

// ClientParams collects the client's dependencies for uber/fx. Logger, tracer
// and observer are optional; absent ones degrade to no-ops.
type ClientParams struct {
	fx.In

	Config   *Config
	Logger   *logger.Logger `optional:"true"`
	Tracer   *tracer.Tracer `optional:"true"`
	Observer *Observer      `optional:"true"`
}

// NewClientFromParams adapts NewClient for fx injection.
func NewClientFromParams(p ClientParams) (*Client, error) {
	return NewClient(p.Config, p.Logger, p.Tracer, p.Observer)
}

// NewClient validates the config and connects to the server. Unless
// SkipReadyCheck is set, construction fails with ErrNotReady when the server
// does not pass its readiness probe within ConnectTimeout.
//
// log, trc and obs may be nil.
func NewClient(cfg *Config, log *logger.Logger, trc *tracer.Tracer, obs *Observer) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewNopLogger()
	}

	c := &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		log:     log,
		trc:     trc,
		obs:     obs,
		baseURL: cfg.baseURL(),
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}

	if !cfg.SkipReadyCheck {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
		defer cancel()
		if err := c.Ready(ctx); err != nil {
			return nil, err
		}
	}

	log.Info("connected to weaviate", nil, map[string]interface{}{
		"endpoint": c.baseURL,
	})
	return c, nil
}

// Ready probes the server's readiness endpoint.
func (c *Client) Ready(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/.well-known/ready", nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotReady, err)
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotReady, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: readiness probe returned %d", ErrNotReady, resp.StatusCode)
	}
	return nil
}

// Close releases idle connections. The client must not be used afterwards.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// startOp opens a span and a timer for one client operation. The returned
// done function must be called with the operation's final error.
func (c *Client) startOp(ctx context.Context, op string) (context.Context, func(error)) {
	start := time.Now()

	if c.trc == nil {
		return ctx, func(err error) {
			c.obs.ObserveOperation(op, time.Since(start), err)
		}
	}

	ctx, span := c.trc.StartSpan(ctx, "weaviate."+op)
	return ctx, func(err error) {
		if err != nil {
			c.trc.RecordErrorOnSpan(span, err)
		}
		span.End()
		c.obs.ObserveOperation(op, time.Since(start), err)
	}
}

// do issues one JSON request against the REST API and decodes the response
// into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %v", ErrRequest, err)
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode body: %v", ErrRequest, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequest, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequest, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrRequest, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s %s", ErrNotFound, method, path)
	case resp.StatusCode == http.StatusUnprocessableEntity || resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrServerValidation, serverMessage(data))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: %s %s returned %d: %s", ErrRequest, method, path, resp.StatusCode, serverMessage(data))
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: decode response: %v", ErrRequest, err)
		}
	}
	return nil
}

// graphql posts one query to the GraphQL endpoint and returns the data
// document. GraphQL errors arrive with HTTP 200 and are mapped to
// ErrServerValidation.
func (c *Client) graphql(ctx context.Context, query string) (map[string]json.RawMessage, error) {
	var resp struct {
		Data   map[string]json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/graphql", map[string]string{"query": query}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrServerValidation, resp.Errors[0].Message)
	}
	return resp.Data, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.cfg.ApiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.ApiKey)
	}
}

// serverMessage digs the human-readable message out of a Weaviate error body.
func serverMessage(data []byte) string {
	var body struct {
		Error []struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if len(body.Error) > 0 && body.Error[0].Message != "" {
			return body.Error[0].Message
		}
		if body.Message != "" {
			return body.Message
		}
	}
	if len(data) == 0 {
		return "no error body"
	}
	return string(data)
}
