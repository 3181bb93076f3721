// Package client posts GraphQL payloads to the report results API.
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/mcncl/rrapi/internal/errors"
	"github.com/mcncl/rrapi/internal/logger"
)

// RequestIDHeader carries a fresh id on every request for correlating logs.
const RequestIDHeader = "X-Request-ID"

// Config holds what the client needs to reach the API.
type Config struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
	Logger   *logger.Logger
}

// Response is the raw result of a POST.
type Response struct {
	Body       string
	StatusCode int
	Status     string
	Elapsed    time.Duration
	RequestID  string
}

// Client sends requests to a single endpoint.
type Client struct {
	http     *resty.Client
	endpoint string
	apiKey   string
	log      *logger.Logger
}

// New creates a Client for cfg.Endpoint.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}

	return &Client{
		http:     resty.New().SetTimeout(cfg.Timeout).SetLogger(restyLogger{cfg.Logger}),
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		log:      cfg.Logger,
	}
}

// Post sends body as JSON. The API key is passed through verbatim in the
// Authorization header.
//
// A transport failure returns a nil Response. A non-2xx status returns both
// the Response, so the body can still be shown, and an error.
func (c *Client) Post(ctx context.Context, body string) (*Response, error) {
	requestID := uuid.NewString()
	c.log.Debug().
		Str("endpoint", c.endpoint).
		Str("request_id", requestID).
		Int("bytes", len(body)).
		Msg("posting query")

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader(RequestIDHeader, requestID).
		SetBody([]byte(body)).
		Post(c.endpoint)
	if err != nil {
		return nil, errors.NewTransportError(c.endpoint, err)
	}

	out := &Response{
		Body:       string(resp.Body()),
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Elapsed:    resp.Time(),
		RequestID:  requestID,
	}

	c.log.Debug().
		Str("request_id", requestID).
		Int("status", out.StatusCode).
		Dur("elapsed", out.Elapsed).
		Msg("response received")

	if out.StatusCode < 200 || out.StatusCode > 299 {
		return out, errors.NewTransportError(c.endpoint,
			fmt.Errorf("%w: %s", errors.ErrHTTPStatus, out.Status))
	}
	return out, nil
}

// restyLogger routes resty's internal messages through the application logger.
type restyLogger struct {
	log *logger.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.log.Debug().Str("source", "resty").Msgf(format, v...)
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.log.Debug().Str("source", "resty").Msgf(format, v...)
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.log.Debug().Str("source", "resty").Msgf(format, v...)
}
