// Package generate orchestrates a single caption run: read the image,
// call the inference backends, and optionally persist the result into
// the signed-in user's history.
package generate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/visualcaption/vcap/internal/client/session"
	"github.com/visualcaption/vcap/internal/logging"
)

// ErrNoFileSelected is returned when Generate is called without an image path.
var ErrNoFileSelected = errors.New("no file selected")

// ErrCaptionFailed wraps a caption backend error; the returned Result
// may still carry a description. Match with errors.Is.
var ErrCaptionFailed = errors.New("caption generation failed")

// Outcome describes how an optional step of a generation run ended.
type Outcome int

const (
	// OutcomeSkipped means the step was never attempted.
	OutcomeSkipped Outcome = iota
	// OutcomeOK means the step completed.
	OutcomeOK
	// OutcomeFailed means the step was attempted and failed.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeFailed:
		return "failed"
	default:
		return "skipped"
	}
}

// Result is what a single Generate run produced. Caption failure is the
// only error surfaced to the caller; description and persistence are
// best-effort and reported through their Outcome fields.
type Result struct {
	Caption     string
	Description string

	DescriptionOutcome Outcome
	PersistOutcome     Outcome
}

// Captioner produces a caption for an image.
type Captioner interface {
	Caption(ctx context.Context, filename string, image []byte) (string, error)
}

// Describer produces a free-text description for an image.
type Describer interface {
	Describe(ctx context.Context, filename string, image []byte) (string, error)
}

// Uploader persists a finished generation into the user's history.
type Uploader interface {
	UploadImage(ctx context.Context, filename string, data []byte) (string, error)
	SaveUpload(ctx context.Context, userID, fileURL, fileType, caption string) error
}

// SessionReader reports the current authentication state.
type SessionReader interface {
	Snapshot() session.State
}

// Orchestrator runs the caption pipeline. Both inference calls are always
// attempted; persistence only happens for a signed-in user whose run
// produced a non-empty caption.
type Orchestrator struct {
	captioner Captioner
	describer Describer
	uploader  Uploader
	session   SessionReader
	log       logging.Logger
}

func New(captioner Captioner, describer Describer, uploader Uploader, sess SessionReader, log logging.Logger) *Orchestrator {
	return &Orchestrator{
		captioner: captioner,
		describer: describer,
		uploader:  uploader,
		session:   sess,
		log:       log,
	}
}

// Generate runs one caption pipeline for the image at path.
//
// A caption failure is returned to the caller but does not stop the
// description call. Description and persistence failures never surface
// as errors; they are logged and recorded in the Result.
func (o *Orchestrator) Generate(ctx context.Context, path string) (*Result, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrNoFileSelected
	}

	image, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	filename := filepath.Base(path)

	result := &Result{}

	caption, captionErr := o.captioner.Caption(ctx, filename, image)
	if captionErr != nil {
		o.log.Warn(ctx, "caption generation failed", "error", captionErr)
	} else {
		result.Caption = FormatCaption(caption)
	}

	description, err := o.describer.Describe(ctx, filename, image)
	if err != nil {
		o.log.Warn(ctx, "description generation failed", "error", err)
		result.DescriptionOutcome = OutcomeFailed
	} else {
		result.Description = description
		result.DescriptionOutcome = OutcomeOK
	}

	o.persist(ctx, filename, image, result, captionErr)

	if captionErr != nil {
		return result, fmt.Errorf("%w: %w", ErrCaptionFailed, captionErr)
	}
	return result, nil
}

func (o *Orchestrator) persist(ctx context.Context, filename string, image []byte, result *Result, captionErr error) {
	st := o.session.Snapshot()
	if !st.LoggedIn || captionErr != nil || result.Caption == "" {
		result.PersistOutcome = OutcomeSkipped
		return
	}

	url, err := o.uploader.UploadImage(ctx, filename, image)
	if err != nil {
		o.log.Warn(ctx, "image upload failed, history entry not saved", "error", err)
		result.PersistOutcome = OutcomeFailed
		return
	}

	fileType := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if err := o.uploader.SaveUpload(ctx, st.UserID, url, fileType, result.Caption); err != nil {
		o.log.Warn(ctx, "saving history entry failed", "error", err)
		result.PersistOutcome = OutcomeFailed
		return
	}

	result.PersistOutcome = OutcomeOK
}
