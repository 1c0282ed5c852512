package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/visualcaption/vcap/internal/client/models"
	"github.com/visualcaption/vcap/internal/logging"
)

const defaultHTTPTimeout = 30 * time.Second

// CredentialSource supplies the persisted bearer credential. An empty string
// means "not logged in" and no Authorization header is attached.
// localstate.Store satisfies this interface.
type CredentialSource interface {
	Credential(ctx context.Context) (string, error)
}

// HTTPClient implements Client over the backend's REST surface.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	creds      CredentialSource
	log        logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// Option customizes the HTTP client.
type Option func(*HTTPClient)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *HTTPClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(log logging.Logger) Option {
	return func(c *HTTPClient) {
		if log != nil {
			c.log = log
		}
	}
}

// NewHTTPClient constructs a backend client rooted at baseURL.
func NewHTTPClient(baseURL string, creds CredentialSource, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		creds:      creds,
		log:        logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs one request and decodes a JSON response into out (skipped when
// out is nil). Transport failures map to ErrUnavailable, 401/403 to
// ErrUnauthorized, 404 to ErrNotFound; other non-2xx statuses yield an error
// carrying the trimmed response body.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("build url: %w", err)
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.creds != nil {
		cred, err := c.creds.Credential(ctx)
		if err != nil {
			c.log.Warn(ctx, "reading credential failed", "error", err)
		} else if cred != "" {
			req.Header.Set("Authorization", "Bearer "+cred)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s %s", ErrUnauthorized, method, path)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s %s", ErrNotFound, method, path)
	case resp.StatusCode >= http.StatusMultipleChoices:
		return fmt.Errorf("%s %s: http %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) Register(ctx context.Context, email, password string) error {
	q := url.Values{"email": {email}, "password": {password}}
	return c.do(ctx, http.MethodPost, "/api/auth/register", q, nil, "", nil)
}

func (c *HTTPClient) SendOTP(ctx context.Context, email string) error {
	q := url.Values{"email": {email}}
	return c.do(ctx, http.MethodPost, "/api/auth/send-otp", q, nil, "", nil)
}

func (c *HTTPClient) VerifyOTP(ctx context.Context, email, otp string) error {
	q := url.Values{"email": {email}, "otp": {otp}}
	return c.do(ctx, http.MethodPost, "/api/auth/verify-otp", q, nil, "", nil)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	q := url.Values{"email": {email}, "password": {password}}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", q, nil, "", &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("login: backend returned no token")
	}
	return resp.Token, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, "", nil)
}

func (c *HTTPClient) GenerateVideoTitle(ctx context.Context, videoURL string) (string, error) {
	payload, err := json.Marshal(map[string]string{"url": videoURL})
	if err != nil {
		return "", fmt.Errorf("encode video url: %w", err)
	}
	var resp struct {
		Title string `json:"title"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/caption/video", nil, bytes.NewReader(payload), "application/json", &resp); err != nil {
		return "", err
	}
	return resp.Title, nil
}

func (c *HTTPClient) SubmitFeedback(ctx context.Context, userID, content string, rating int) error {
	payload, err := json.Marshal(map[string]any{"content": content, "rating": rating})
	if err != nil {
		return fmt.Errorf("encode feedback: %w", err)
	}
	path := "/api/auth/users/" + url.PathEscape(userID) + "/feedback"
	return c.do(ctx, http.MethodPost, path, nil, bytes.NewReader(payload), "application/json", nil)
}

func (c *HTTPClient) History(ctx context.Context, userID string) ([]models.Upload, error) {
	var resp struct {
		Uploads []models.Upload `json:"uploads"`
	}
	path := "/uploads/uploads/" + url.PathEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, "", &resp); err != nil {
		return nil, err
	}
	// Newest first, whatever order the backend chose.
	sort.SliceStable(resp.Uploads, func(i, j int) bool {
		return resp.Uploads[i].UploadedAt.After(resp.Uploads[j].UploadedAt)
	})
	return resp.Uploads, nil
}

func (c *HTTPClient) UploadImage(ctx context.Context, filename string, data []byte) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("build multipart: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("write multipart: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart: %w", err)
	}

	var resp struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/image/upload", nil, &buf, mw.FormDataContentType(), &resp); err != nil {
		return "", err
	}
	if resp.URL == "" {
		return "", fmt.Errorf("upload image: backend returned no url")
	}
	return resp.URL, nil
}

func (c *HTTPClient) SaveUpload(ctx context.Context, userID, fileURL, fileType, caption string) error {
	q := url.Values{
		"user_id":   {userID},
		"file_url":  {fileURL},
		"file_type": {fileType},
		"caption":   {caption},
	}
	return c.do(ctx, http.MethodPost, "/uploads/upload", q, nil, "", nil)
}

func (c *HTTPClient) Users(ctx context.Context, search string, status *bool) ([]models.User, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if status != nil {
		q.Set("status", strconv.FormatBool(*status))
	}
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/admin/users", q, nil, "", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) ToggleUserStatus(ctx context.Context, userID string) error {
	path := "/api/auth/admin/users/" + url.PathEscape(userID) + "/status"
	return c.do(ctx, http.MethodPatch, path, nil, nil, "", nil)
}

func (c *HTTPClient) DeleteUser(ctx context.Context, userID string) error {
	path := "/api/auth/admin/users/" + url.PathEscape(userID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, "", nil)
}

func (c *HTTPClient) Captions(ctx context.Context, query CaptionQuery) ([]models.Upload, error) {
	q := url.Values{}
	if query.Search != "" {
		q.Set("search", query.Search)
	}
	if query.Type != "" {
		q.Set("type", query.Type)
	}
	if query.Sort != "" {
		q.Set("sort", query.Sort)
	}
	if query.Limit > 0 {
		q.Set("limit", strconv.Itoa(query.Limit))
	}
	var captions []models.Upload
	if err := c.do(ctx, http.MethodGet, "/api/auth/admin/captions", q, nil, "", &captions); err != nil {
		return nil, err
	}
	return captions, nil
}

func (c *HTTPClient) DeleteCaption(ctx context.Context, captionID string) error {
	// The caption store lives outside the /api prefix.
	path := "/uploads/admin/captions/" + url.PathEscape(captionID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, "", nil)
}

func (c *HTTPClient) Feedback(ctx context.Context, query FeedbackQuery) ([]models.Feedback, error) {
	q := url.Values{}
	if query.Search != "" {
		q.Set("content", query.Search)
	}
	if query.Rating > 0 {
		q.Set("rating", strconv.Itoa(query.Rating))
	}
	if query.Sort != "" {
		q.Set("sort", query.Sort)
	}
	if query.Limit > 0 {
		q.Set("limit", strconv.Itoa(query.Limit))
	}
	var feedback []models.Feedback
	if err := c.do(ctx, http.MethodGet, "/api/auth/admin/feedback", q, nil, "", &feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

func (c *HTTPClient) RespondFeedback(ctx context.Context, feedbackID, response string) error {
	q := url.Values{"response": {response}}
	path := "/api/auth/admin/feedback/" + url.PathEscape(feedbackID) + "/response"
	return c.do(ctx, http.MethodPost, path, q, nil, "", nil)
}

func (c *HTTPClient) ResolveFeedback(ctx context.Context, feedbackID string) error {
	path := "/api/auth/admin/feedback/" + url.PathEscape(feedbackID) + "/status"
	return c.do(ctx, http.MethodPatch, path, nil, nil, "", nil)
}

func (c *HTTPClient) Stats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	if err := c.do(ctx, http.MethodGet, "/api/auth/admin/stats", nil, nil, "", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
