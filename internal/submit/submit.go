// Package submit sends finished scores to the leaderboard endpoint.
package submit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Status messages shown by the game-over form.
const (
	StatusSubmitting    = "Submitting..."
	StatusSuccess       = "Score submitted successfully! Check the leaderboard!"
	StatusFailed        = "Error submitting score. Please try again."
	StatusMissingFields = "Please fill out all fields."
	StatusNotConfigured = "Score submission is not configured."
)

var (
	// ErrMissingFields is returned when a required entry field is blank.
	ErrMissingFields = errors.New("missing required fields")
	// ErrNotConfigured is returned when no endpoint URL is set.
	ErrNotConfigured = errors.New("submission endpoint not configured")
	// ErrRejected is returned when the endpoint answers with a non-2xx status.
	ErrRejected = errors.New("submission rejected")
)

// DefaultTimeout bounds a single submission request.
const DefaultTimeout = 10 * time.Second

// Entry is one leaderboard submission. Field names match the form
// parameters the endpoint expects.
type Entry struct {
	Name      string
	Email     string
	TimeScore string // Survived seconds with one decimal place
}

// Validate reports ErrMissingFields if any field is blank.
func (e Entry) Validate() error {
	if strings.TrimSpace(e.Name) == "" || strings.TrimSpace(e.Email) == "" || strings.TrimSpace(e.TimeScore) == "" {
		return ErrMissingFields
	}
	return nil
}

func (e Entry) form() url.Values {
	v := url.Values{}
	v.Set("Name", strings.TrimSpace(e.Name))
	v.Set("Email", strings.TrimSpace(e.Email))
	v.Set("TimeScore", strings.TrimSpace(e.TimeScore))
	return v
}

// Client posts entries to a form endpoint.
type Client struct {
	url    string
	http   *http.Client
	logger *log.Logger
}

// NewClient creates a client for endpoint. A zero timeout uses DefaultTimeout;
// a nil logger uses the default logger.
func NewClient(endpoint string, timeout time.Duration, logger *log.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		url:    endpoint,
		http:   &http.Client{Timeout: timeout},
		logger: logger.WithPrefix("submit"),
	}
}

// Configured reports whether the client has an endpoint to post to.
func (c *Client) Configured() bool {
	return c != nil && c.url != ""
}

// Submit validates the entry and posts it as a urlencoded form.
func (c *Client) Submit(ctx context.Context, e Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if !c.Configured() {
		return ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(e.form().Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("submission failed", "err", err)
		return fmt.Errorf("post score: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("submission rejected", "status", resp.StatusCode)
		return fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}

	c.logger.Info("score submitted", "name", e.Name, "score", e.TimeScore)
	return nil
}

// SubmitAsync runs Submit on its own goroutine. The returned channel
// receives exactly one result and is then closed.
func (c *Client) SubmitAsync(ctx context.Context, e Entry) <-chan error {
	ch := make(chan error, 1)
	go func() {
		defer close(ch)
		ch <- c.Submit(ctx, e)
	}()
	return ch
}

// StatusFor maps a submission result to the message shown to the player.
func StatusFor(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, ErrMissingFields):
		return StatusMissingFields
	case errors.Is(err, ErrNotConfigured):
		return StatusNotConfigured
	default:
		return StatusFailed
	}
}
