// Package tradeapi reads trades from the journal's REST service
// (GET /trades and GET /trades/{id}).
package tradeapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/rustyeddy/tradejournal/journal"
)

// ErrNotFound wraps journal.ErrNotFound for a 404 from the service.
var ErrNotFound = fmt.Errorf("tradeapi: %w", journal.ErrNotFound)

// StatusError is returned for any other non-2xx response.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.Code, http.StatusText(e.Code))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Observer receives one call per completed request. op is "list" or "get";
// status is the HTTP code, or 0 when no response arrived.
type Observer interface {
	ObserveRequest(op string, status int, elapsed time.Duration)
}

// Client talks to the trade service. The zero value is not usable; build one
// with New.
type Client struct {
	BaseURL  *url.URL
	HTTP     *http.Client
	Limiter  *rate.Limiter
	Token    string
	Location *time.Location
	Logger   *slog.Logger
	Observer Observer

	tracer trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.HTTP = h } }

func WithToken(token string) Option { return func(c *Client) { c.Token = token } }

func WithLogger(l *slog.Logger) Option { return func(c *Client) { c.Logger = l } }

func WithObserver(o Observer) Option { return func(c *Client) { c.Observer = o } }

// WithLocation sets the zone used for timestamps sent without one.
func WithLocation(loc *time.Location) Option { return func(c *Client) { c.Location = loc } }

// WithRateLimit caps outgoing requests; rps <= 0 disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.Limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.Limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// New returns a client for the service rooted at baseURL, for example
// "http://localhost:5000/api".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		BaseURL:  u,
		HTTP:     &http.Client{Timeout: 30 * time.Second},
		Location: time.UTC,
		Logger:   slog.Default(),
		tracer:   otel.Tracer("github.com/rustyeddy/tradejournal/tradeapi"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListTrades fetches every trade.
func (c *Client) ListTrades(ctx context.Context) ([]journal.Trade, error) {
	var trades []journal.Trade
	err := c.do(ctx, "list", "/trades", func(body io.Reader) error {
		var err error
		trades, err = journal.DecodeTrades(body, c.Location)
		return err
	})
	if err != nil {
		return nil, err
	}
	return trades, nil
}

// GetTrade fetches one trade with its screenshot references.
func (c *Client) GetTrade(ctx context.Context, tradeID string) (journal.Trade, error) {
	var t journal.Trade
	err := c.do(ctx, "get", "/trades/"+url.PathEscape(tradeID), func(body io.Reader) error {
		var err error
		t, err = journal.DecodeTrade(body, c.Location)
		return err
	})
	if err != nil {
		if errors.Is(err, journal.ErrNotFound) {
			return journal.Trade{}, fmt.Errorf("trade %q: %w", tradeID, err)
		}
		return journal.Trade{}, err
	}
	return t, nil
}

// Snapshot lists the trades and stamps them with a fresh snapshot ID.
func (c *Client) Snapshot(ctx context.Context) (journal.Snapshot, error) {
	return journal.TakeSnapshot(ctx, c)
}

func (c *Client) do(ctx context.Context, op, path string, decode func(io.Reader) error) (err error) {
	u := c.BaseURL.JoinPath(path)

	ctx, span := c.tracer.Start(ctx, "tradeapi."+op, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(
		attribute.String("http.request.method", http.MethodGet),
		attribute.String("url.full", u.String()),
	)
	start := time.Now()
	status := 0
	defer func() {
		elapsed := time.Since(start)
		if c.Observer != nil {
			c.Observer.ObserveRequest(op, status, elapsed)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.Logger.WarnContext(ctx, "trade api request failed",
				"op", op, "url", u.String(), "status", status, "elapsed", elapsed, "error", err)
		} else {
			c.Logger.DebugContext(ctx, "trade api request",
				"op", op, "url", u.String(), "status", status, "elapsed", elapsed)
		}
		span.End()
	}()

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", u, err)
	}
	defer resp.Body.Close()

	status = resp.StatusCode
	span.SetAttributes(attribute.Int("http.response.status_code", status))

	switch {
	case status == http.StatusNotFound:
		return ErrNotFound
	case status < 200 || status > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Method: http.MethodGet, URL: u.String(), Code: status, Body: strings.TrimSpace(string(body))}
	}

	if err := decode(resp.Body); err != nil {
		return fmt.Errorf("decode %s: %w", u, err)
	}
	return nil
}
