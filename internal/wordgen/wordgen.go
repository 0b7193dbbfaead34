// internal/wordgen/wordgen.go
// Package wordgen fetches practice words from an external generator service.
package wordgen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"
)

const (
	// DefaultFallback is the target used when the generator cannot supply one.
	// PARIS is the standard Morse timing reference word.
	DefaultFallback = "PARIS"
	// DefaultTimeout bounds a single generator request
	DefaultTimeout = 10 * time.Second
)

// Response is the generator's wire format. A non-null error field signals the
// caller to use the fallback; it is never fatal.
type Response struct {
	Value string `json:"value"`
	Error string `json:"error"`
}

// Client requests practice targets from the generator endpoint.
type Client struct {
	endpoint   string
	fallback   string
	httpClient *http.Client
}

// NewClient creates a generator client. An empty fallback selects
// DefaultFallback; a zero timeout selects DefaultTimeout.
func NewClient(endpoint, fallback string, timeout time.Duration) *Client {
	if fallback == "" {
		fallback = DefaultFallback
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		endpoint:   endpoint,
		fallback:   fallback,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fallback returns the configured fallback target.
func (c *Client) Fallback() string {
	return c.fallback
}

// FetchTarget requests one practice target. It always returns a usable target:
// any transport failure or invalid payload degrades to the fallback, with a
// diagnostic warning for the UI. The warning is "" on success.
func (c *Client) FetchTarget(ctx context.Context) (target, warning string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, http.NoBody)
	if err != nil {
		return c.fallback, fmt.Sprintf("word service request failed (%v); using %q", err, c.fallback)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fallback, fmt.Sprintf("word service unavailable (%v); using %q", err, c.fallback)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return c.fallback, fmt.Sprintf("word service returned %s; using %q", resp.Status, c.fallback)
	}

	var payload Response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return c.fallback, fmt.Sprintf("word service sent an unreadable response (%v); using %q", err, c.fallback)
	}

	if payload.Error != "" {
		return c.fallback, serviceErrorWarning(payload.Error, c.fallback)
	}

	if !ValidTarget(payload.Value) {
		return c.fallback, fmt.Sprintf("word service sent an invalid word %q; using %q", payload.Value, c.fallback)
	}

	return strings.ToUpper(payload.Value), ""
}

// serviceErrorWarning distinguishes auth-type failures from general service
// errors where the message allows it.
func serviceErrorWarning(msg, fallback string) string {
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "key") || strings.Contains(lower, "auth") || strings.Contains(lower, "credential") {
		return fmt.Sprintf("word service rejected the API key (%s); using %q", msg, fallback)
	}
	return fmt.Sprintf("word service error (%s); using %q", msg, fallback)
}

// ValidTarget reports whether a generator payload is usable as a practice
// target: non-empty, letters only, no embedded whitespace.
func ValidTarget(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
