package atlas

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultHTTPTimeout = 60 * time.Second

var (
	// ErrNotConfigured is returned by New when the endpoint or token is missing.
	ErrNotConfigured = errors.New("atlas: endpoint and token are required")
	// ErrMalformedResponse wraps bodies that do not decode into a Response.
	ErrMalformedResponse = errors.New("atlas: malformed response")
	// ErrRejected is returned when the endpoint answers with ok=false.
	ErrRejected = errors.New("atlas: request rejected")
)

// StatusError reports a non-2xx answer from the chat endpoint.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("atlas API error: %s", e.Status)
	}
	return fmt.Sprintf("atlas API error: %s (%s)", e.Status, e.Body)
}

// Config describes how to reach the chat endpoint.
type Config struct {
	Endpoint   string
	Token      string
	HTTPClient *http.Client
}

// Client sends one question to the chat endpoint and returns its answer.
type Client interface {
	Chat(ctx context.Context, message string) (Response, error)
	Name() string
}

// Source is a citation reference attached to an answer.
type Source struct {
	Index        int    `json:"index"`
	Title        string `json:"title"`
	Manufacturer string `json:"manufacturer"`
	URL          string `json:"url,omitempty"`
	PageNumber   *int   `json:"pageNumber,omitempty"`
	Snippet      string `json:"snippet,omitempty"`
}

// Label renders the source the way the sources list shows it.
func (s Source) Label() string {
	var b strings.Builder
	b.WriteString(s.Manufacturer)
	if s.Title != "" {
		if b.Len() > 0 {
			b.WriteString(" — ")
		}
		b.WriteString(s.Title)
	}
	if s.PageNumber != nil && *s.PageNumber > 0 {
		fmt.Fprintf(&b, " (p.%d)", *s.PageNumber)
	}
	return b.String()
}

// Response is the decoded answer payload.
type Response struct {
	OK                      bool     `json:"ok"`
	Answer                  string   `json:"answer"`
	Sources                 []Source `json:"sources"`
	ManufacturersReferenced []string `json:"manufacturersReferenced"`
}

// New builds an HTTP-backed client.
func New(cfg Config) (Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	token := strings.TrimSpace(cfg.Token)
	if endpoint == "" || token == "" {
		return nil, ErrNotConfigured
	}
	return &httpClient{
		endpoint: endpoint,
		token:    token,
		client:   pickHTTPClient(cfg.HTTPClient),
	}, nil
}

func pickHTTPClient(custom *http.Client) *http.Client {
	if custom != nil {
		return custom
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}
