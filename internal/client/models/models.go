// Package models defines the read models the client receives from the
// Visual Caption backend. The backend owns these entities; the client treats
// them as opaque records and never mutates them locally.
package models

import "time"

// Upload is one history record: an image the user captioned, stored in object
// storage by the backend together with the generated caption.
type Upload struct {
	UploadID   string    `json:"upload_id"`
	UserID     string    `json:"user_id"`
	FileURL    string    `json:"file_url"`
	FileType   string    `json:"file_type"`
	Caption    string    `json:"caption"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Feedback is a user-submitted rating with optional admin response.
type Feedback struct {
	FeedbackID    string    `json:"feedback_id"`
	UserID        string    `json:"user_id"`
	Content       string    `json:"content"`
	Rating        int       `json:"rating"`
	CreatedAt     time.Time `json:"created_at"`
	AdminResponse string    `json:"response,omitempty"`
	Resolved      bool      `json:"resolved"`
}

// User is the admin view of an account.
type User struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Active   bool   `json:"is_active"`
}

// Stats is the aggregate snapshot shown on the admin dashboard.
type Stats struct {
	TotalUsers    int `json:"total_users"`
	TotalCaptions int `json:"total_captions"`
	TotalFeedback int `json:"total_feedback"`
}
