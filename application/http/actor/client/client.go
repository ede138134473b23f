package client

import (
	"context"
	"fmt"
	"log/slog"

	"httpclient/application/http"
	"httpclient/application/util/uri"
	"httpclient/transport"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Client performs one request per call, each over its own connection.
// It keeps no state between calls.
type Client struct {
	roundTripper *transport.RoundTripper

	opts   Options
	logger *slog.Logger
}

func New(
	d transport.ConnDialer,
	logger *slog.Logger,
	clock clock.Clock,
	opts Options,
) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		roundTripper: transport.NewRoundTripper(d, clock, opts.Transport),
		opts:         opts,
		logger:       logger,
	}
}

// Command sends a POST when method is exactly "POST", and a GET otherwise.
// form is only used by POST.
func (c *Client) Command(ctx context.Context, rawURL, method string, form uri.Form) (*http.Response, error) {
	if method == http.MethodPost {
		return c.Post(ctx, rawURL, form)
	}
	return c.Get(ctx, rawURL)
}

func (c *Client) Get(ctx context.Context, rawURL string) (*http.Response, error) {
	target, err := uri.Decompose(rawURL)
	if err != nil {
		return nil, errors.Wrap(err, "decomposing URL")
	}

	return c.send(ctx, target, http.NewGetRequest(target.Path, target.Host))
}

// Post sends form url-encoded. An empty form sends an empty body.
func (c *Client) Post(ctx context.Context, rawURL string, form uri.Form) (*http.Response, error) {
	target, err := uri.Decompose(rawURL)
	if err != nil {
		return nil, errors.Wrap(err, "decomposing URL")
	}

	return c.send(ctx, target, http.NewPostRequest(target.Path, target.Host, form))
}

func (c *Client) send(ctx context.Context, target uri.Target, request http.Request) (*http.Response, error) {
	logger := c.logger.With(
		slog.String("request_id", uuid.NewString()),
		slog.String("method", request.Method),
		slog.String("addr", target.Addr()),
		slog.String("target", request.Target),
	)

	raw, err := http.EncodeRequest(request)
	if err != nil {
		return nil, errors.Wrap(err, "encoding request")
	}

	logger.Debug("sending request", slog.Int("bytes", len(raw)))

	data, err := c.roundTripper.RoundTrip(ctx, target.Addr(), raw)
	if err != nil {
		logger.Debug("roundtrip failed", slog.Any("error", err))
		return nil, errors.Wrap(err, "error while request-response roundtrip")
	}

	if data == "" {
		logger.Debug("connection closed without data")
	}

	response, err := http.ParseResponse(data)
	if err != nil {
		return nil, errors.Wrap(err, "parsing response")
	}

	logger.Debug("response received",
		slog.Int("bytes", len(data)),
		slog.Int("status", response.StatusCode),
	)

	if data != "" {
		c.dump(response)
	}

	return &response, nil
}

func (c *Client) dump(response http.Response) {
	if c.opts.Dump == nil {
		return
	}

	_, err := fmt.Fprintf(c.opts.Dump, "Full result:\n%s\nStatus code: %d\nBody: %s\n\n",
		response.Raw, response.StatusCode, response.Body,
	)
	if err != nil {
		c.logger.Warn("writing response dump", slog.Any("error", err))
	}
}
