package form

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/carlmjohnson/requests"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultEndpoint = "http://localhost:3000/bfhl"

// Client posts submissions to the collaborator endpoint.
type Client struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
	logger     *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(cl *http.Client) Option {
	return func(c *Client) { c.httpClient = cl }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:  endpoint,
		userAgent: "bfhl-form",
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// Send performs one round trip. Every error it returns is a *SubmitError.
func (c *Client) Send(ctx context.Context, req Request) (*Result, error) {
	id := uuid.NewString()
	start := time.Now()

	res, err := c.send(ctx, id, req)

	fields := []zap.Field{
		zap.String("request_id", id),
		zap.Duration("duration", time.Since(start)),
	}
	if err != nil {
		se := Classify(err)
		fields = append(fields, zap.Stringer("kind", se.Kind), zap.Int("status", se.Status))
		c.logger.Debug("submission failed", fields...)
		return nil, se
	}
	c.logger.Debug("submission succeeded", fields...)
	return res, nil
}

func (c *Client) send(ctx context.Context, id string, req Request) (*Result, error) {
	if _, err := url.Parse(c.endpoint); err != nil {
		return nil, &SubmitError{Kind: KindRequest, Err: err}
	}

	var body bytes.Buffer
	request := requests.URL(c.endpoint).
		Post().
		BodyBytes(req).
		ContentType("application/json").
		Header("Accept", "application/json").
		Header("X-Request-ID", id).
		UserAgent(c.userAgent).
		AddValidator(checkStatus).
		ToBytesBuffer(&body)
	if c.httpClient != nil {
		request.Client(c.httpClient)
	}

	if err := request.Fetch(ctx); err != nil {
		return nil, err
	}

	res, err := DecodeResult(body.Bytes())
	if err != nil {
		return nil, &SubmitError{Kind: KindMalformedResponse, Err: err}
	}
	return res, nil
}

func checkStatus(res *http.Response) error {
	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return nil
	}
	return statusError(res)
}

// Submit runs a whole submission against s: parse, send, record. The
// returned error is ErrBusy, or the *SubmitError also stored in s.Err.
func (c *Client) Submit(ctx context.Context, s *State) error {
	req, err := s.Begin()
	if err != nil {
		return err
	}
	s.Apply(c.Send(ctx, req))
	if s.Err != nil {
		return s.Err
	}
	return nil
}
