// Package gateway issues JSON requests to the shortener API and classifies
// the outcome as success, application failure or transport failure.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Tokebay/shorty/internal/logger"
	"github.com/Tokebay/shorty/internal/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const maxResponseBytes = 1 << 20

type Kind int

const (
	// KindNetwork covers unreachable hosts, timeouts and responses that
	// cannot be decoded.
	KindNetwork Kind = iota + 1
	// KindApplication is a non-2xx response carrying a JSON body.
	KindApplication
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindApplication:
		return "application"
	default:
		return "unknown"
	}
}

// Failure describes a request that did not succeed. Message is the text
// meant for the user; for application failures it is the server's error
// text and may be empty.
type Failure struct {
	Kind       Kind
	Message    string
	StatusCode int
}

func (f *Failure) Error() string {
	if f.StatusCode != 0 {
		return fmt.Sprintf("%s failure (%d): %s", f.Kind, f.StatusCode, f.Message)
	}
	return fmt.Sprintf("%s failure: %s", f.Kind, f.Message)
}

type Request struct {
	Method string
	Path   string
	Body   any
	Token  string
}

// Result is either a success carrying the response payload or a Failure.
type Result struct {
	StatusCode int
	Payload    json.RawMessage
	Failure    *Failure
}

func (r Result) OK() bool {
	return r.Failure == nil
}

type Gateway interface {
	Issue(ctx context.Context, req Request) Result
}

type Client struct {
	baseURL        string
	http           *http.Client
	timeout        time.Duration
	networkMessage string
}

type Option func(*Client)

// WithNetworkMessage sets the text reported for every transport failure.
func WithNetworkMessage(msg string) Option {
	return func(c *Client) {
		c.networkMessage = msg
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout bounds each request. A client passed with WithHTTPClient is
// copied, never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: logger.NewTransport(nil),
			Timeout:   10 * time.Second,
		},
		networkMessage: "Network error",
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

func (c *Client) Issue(ctx context.Context, req Request) Result {
	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return c.networkFailure(req, err)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return c.networkFailure(req, errors.Wrap(err, "send request"))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return c.networkFailure(req, errors.Wrap(err, "read response"))
	}
	if !json.Valid(data) {
		return c.networkFailure(req, errors.Errorf("response is not JSON (status %d)", resp.StatusCode))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var body models.ErrorResponse
		// a JSON body without a string "error" field yields an empty message
		_ = json.Unmarshal(data, &body)
		logger.Log.Info("Request rejected",
			zap.String("path", req.Path),
			zap.Int("status_code", resp.StatusCode),
			zap.String("error", body.Error),
		)
		return Result{
			StatusCode: resp.StatusCode,
			Failure: &Failure{
				Kind:       KindApplication,
				Message:    body.Error,
				StatusCode: resp.StatusCode,
			},
		}
	}

	return Result{StatusCode: resp.StatusCode, Payload: data}
}

func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, errors.Wrap(err, "encode request body")
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+req.Path, body)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}
	return httpReq, nil
}

func (c *Client) networkFailure(req Request, err error) Result {
	logger.Log.Error("Error issuing request",
		zap.String("method", req.Method),
		zap.String("path", req.Path),
		zap.Error(err),
	)
	return Result{
		Failure: &Failure{
			Kind:    KindNetwork,
			Message: c.networkMessage,
		},
	}
}
