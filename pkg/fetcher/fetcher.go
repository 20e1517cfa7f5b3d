// Package fetcher retrieves profile pages for harvesting. Implement the
// Fetcher interface to plug in custom authentication or anti-bot handling.
package fetcher

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Fetcher abstracts page fetching strategies.
type Fetcher interface {
	// Fetch retrieves page content from a URL.
	Fetch(ctx context.Context, url string, opts Options) (Content, error)

	// Close releases any resources (browser instances, etc.).
	Close() error

	// Type returns a string identifying the fetcher type (e.g., "static", "dynamic").
	Type() string
}

// Options controls fetching behavior.
type Options struct {
	UserAgent       string
	Timeout         time.Duration
	WaitForSelector string        // CSS selector to wait for (dynamic fetchers)
	WaitDuration    time.Duration // Additional wait after load
	Headers         map[string]string
	Cookies         []Cookie
}

// Cookie represents an HTTP cookie.
type Cookie struct {
	Name   string
	Value  string
	Domain string
}

// Content represents a fetched profile page.
type Content struct {
	URL         string
	HTML        string
	Text        string // Extracted readable text
	Title       string
	StatusCode  int
	ContentType string
	FetchedAt   time.Time
	Links       []string // Links found on the page
}

// Error types for distinguishing failure reasons.
// Check with errors.Is(err, fetcher.ErrAuthWall).
var (
	// ErrAuthWall indicates the site served a login wall instead of the
	// profile. Harvesting the content would yield a stub page.
	ErrAuthWall = errors.New("auth wall detected")
	// ErrAntiBot indicates the site's anti-bot protection blocked the request.
	ErrAntiBot = errors.New("anti-bot protection detected")
)

// authWallMarkers are page-title fragments that identify a login wall.
var authWallMarkers = []string{
	"sign in", "sign up", "log in", "join now", "authwall",
}

// detectAuthWall reports whether the fetched page is a login wall rather
// than profile content.
func detectAuthWall(c Content) bool {
	title := strings.ToLower(c.Title)
	for _, marker := range authWallMarkers {
		if strings.Contains(title, marker) {
			return true
		}
	}
	return c.StatusCode == 999 // LinkedIn-style bot rejection status
}
