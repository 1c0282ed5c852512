// Package oembed resolves YouTube links into preview metadata via the
// public oEmbed endpoint. Preview only, no playback.
package oembed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	defaultEndpoint = "https://www.youtube.com/oembed"
	thumbnailBase   = "https://img.youtube.com/vi"

	defaultTimeout = 10 * time.Second
)

// ErrNoVideoID is returned when a URL does not contain a recognizable
// YouTube video identifier.
var ErrNoVideoID = errors.New("no video id in url")

var videoIDRe = regexp.MustCompile(`(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?)/|.*[?&]v=)|youtu\.be/)([^"&?/\\ ]{11})`)

// ExtractVideoID pulls the 11-character video identifier out of any of
// the common YouTube URL forms (watch, embed, short link). It returns
// ErrNoVideoID when none is found.
func ExtractVideoID(rawURL string) (string, error) {
	m := videoIDRe.FindStringSubmatch(rawURL)
	if m == nil {
		return "", ErrNoVideoID
	}
	return m[1], nil
}

// Preview is the metadata shown for a video link.
type Preview struct {
	Title        string
	ThumbnailURL string
}

// Client looks up video metadata.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithEndpoint overrides the oEmbed endpoint, used in tests.
func WithEndpoint(endpoint string) Option {
	return func(cl *Client) { cl.endpoint = endpoint }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup fetches the title for the given video ID. The thumbnail URL is
// derived from the ID directly so it is filled in even when the oEmbed
// call cannot resolve a title.
func (c *Client) Lookup(ctx context.Context, videoID string) (*Preview, error) {
	preview := &Preview{
		ThumbnailURL: fmt.Sprintf("%s/%s/mqdefault.jpg", thumbnailBase, videoID),
	}

	watchURL := "https://www.youtube.com/watch?v=" + videoID
	reqURL := c.endpoint + "?url=" + url.QueryEscape(watchURL) + "&format=json"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating oembed request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oembed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("oembed request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding oembed response: %w", err)
	}

	preview.Title = payload.Title
	return preview, nil
}
