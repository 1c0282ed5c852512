package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// DescriptionClient calls the secondary inference endpoint that produces a
// longer descriptive narrative for an image. Callers treat it as best-effort
// enrichment; the orchestrator never surfaces its failures to the user.
type DescriptionClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewDescriptionClient constructs a description client for the endpoint URL.
func NewDescriptionClient(endpoint string, opts ...Option) *DescriptionClient {
	hc := &http.Client{Timeout: defaultHTTPTimeout}
	for _, opt := range opts {
		opt(hc)
	}
	return &DescriptionClient{endpoint: strings.TrimSpace(endpoint), httpClient: hc}
}

// Describe sends the image and returns the descriptive text. An empty field
// in a successful response yields "".
func (c *DescriptionClient) Describe(ctx context.Context, filename string, image []byte) (string, error) {
	body, err := postImage(ctx, c.httpClient, c.endpoint, filename, image)
	if err != nil {
		return "", fmt.Errorf("description request: %w", err)
	}

	var resp struct {
		DestinationInfo string `json:"destination_info"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("description response: %w", err)
	}
	return resp.DestinationInfo, nil
}
