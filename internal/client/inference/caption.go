// Package inference holds the clients for the two hosted image-inference
// backends: the primary captioner and the secondary description service.
// Both accept a raw image and return text; neither belongs to the Visual
// Caption backend proper.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const defaultHTTPTimeout = 60 * time.Second

// ErrUnrecognizedShape reports a caption response that matches none of the
// known shapes. It is an explicit failure, never silently stringified.
var ErrUnrecognizedShape = errors.New("unrecognized caption response shape")

// CaptionClient calls the primary image-to-caption inference endpoint.
type CaptionClient struct {
	endpoint   string
	httpClient *http.Client
}

// Option customizes an inference client.
type Option func(*http.Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *http.Client) {
		if client != nil {
			*c = *client
		}
	}
}

// NewCaptionClient constructs a caption client for the given endpoint URL.
func NewCaptionClient(endpoint string, opts ...Option) *CaptionClient {
	hc := &http.Client{Timeout: defaultHTTPTimeout}
	for _, opt := range opts {
		opt(hc)
	}
	return &CaptionClient{endpoint: strings.TrimSpace(endpoint), httpClient: hc}
}

// Caption sends the image and returns the extracted caption text.
func (c *CaptionClient) Caption(ctx context.Context, filename string, image []byte) (string, error) {
	body, err := postImage(ctx, c.httpClient, c.endpoint, filename, image)
	if err != nil {
		return "", fmt.Errorf("caption request: %w", err)
	}
	caption, err := ExtractCaption(body)
	if err != nil {
		return "", fmt.Errorf("caption response: %w", err)
	}
	return caption, nil
}

// ExtractCaption decodes the caption text out of a response body. The known
// shapes are tried in priority order:
//
//  1. an object whose "data" field is a list (the first element is taken);
//  2. an object whose "data" field is a scalar string;
//  3. a string body, either a JSON string or raw text.
//
// Anything else is ErrUnrecognizedShape.
func ExtractCaption(body []byte) (string, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return "", ErrUnrecognizedShape
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err == nil && len(envelope.Data) > 0 {
		var list []string
		if err := json.Unmarshal(envelope.Data, &list); err == nil {
			if len(list) == 0 {
				return "", ErrUnrecognizedShape
			}
			return list[0], nil
		}
		var scalar string
		if err := json.Unmarshal(envelope.Data, &scalar); err == nil {
			return scalar, nil
		}
		return "", ErrUnrecognizedShape
	}

	var str string
	if err := json.Unmarshal(trimmed, &str); err == nil {
		return str, nil
	}

	// Not JSON at all: a raw text body.
	if json.Valid(trimmed) {
		return "", ErrUnrecognizedShape
	}
	return string(trimmed), nil
}

// postImage performs a multipart "file" upload and returns the raw response
// body. Non-2xx statuses are errors carrying the trimmed body.
func postImage(ctx context.Context, hc *http.Client, endpoint, filename string, image []byte) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build multipart: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("write multipart: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
