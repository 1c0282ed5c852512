// Package api is the client for the Visual Caption REST backend: auth,
// feedback, history and the admin management surface. The inference
// endpoints live in the inference package; this one only talks to the
// backend proper.
package api

import (
	"context"

	"github.com/visualcaption/vcap/internal/client/models"
)

// CaptionQuery filters the admin captions listing. Zero values mean
// "no filter".
type CaptionQuery struct {
	Search string
	Type   string
	Sort   string
	Limit  int
}

// FeedbackQuery filters the admin feedback listing. Rating 0 means
// "any rating".
type FeedbackQuery struct {
	Search string
	Rating int
	Sort   string
	Limit  int
}

// Client defines every backend operation the terminal UI needs.
//
// All methods honor context cancellation. Authenticated calls attach the
// persisted bearer credential; the backend decides whether it is acceptable.
type Client interface {
	// Auth.
	Register(ctx context.Context, email, password string) error
	SendOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) error
	// Login returns the bearer credential on success. Persisting it is the
	// caller's job.
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context) error

	// User features.
	// GenerateVideoTitle asks the backend to generate a title for the
	// video at the given URL.
	GenerateVideoTitle(ctx context.Context, url string) (string, error)
	SubmitFeedback(ctx context.Context, userID, content string, rating int) error
	// History returns the user's upload records sorted by UploadedAt
	// descending, newest first, regardless of the order the backend
	// returned them in.
	History(ctx context.Context, userID string) ([]models.Upload, error)
	// UploadImage sends the raw image to the backend, which stores it in
	// object storage and returns the public URL.
	UploadImage(ctx context.Context, filename string, data []byte) (string, error)
	SaveUpload(ctx context.Context, userID, fileURL, fileType, caption string) error

	// Admin.
	Users(ctx context.Context, search string, status *bool) ([]models.User, error)
	ToggleUserStatus(ctx context.Context, userID string) error
	DeleteUser(ctx context.Context, userID string) error
	Captions(ctx context.Context, q CaptionQuery) ([]models.Upload, error)
	DeleteCaption(ctx context.Context, captionID string) error
	Feedback(ctx context.Context, q FeedbackQuery) ([]models.Feedback, error)
	RespondFeedback(ctx context.Context, feedbackID, response string) error
	ResolveFeedback(ctx context.Context, feedbackID string) error
	Stats(ctx context.Context) (*models.Stats, error)
}
