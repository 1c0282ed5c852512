package generate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/visualcaption/vcap/internal/client/session"
	"github.com/visualcaption/vcap/internal/logging"
)

type fakeCaptioner struct {
	caption string
	err     error
	calls   int
}

func (f *fakeCaptioner) Caption(_ context.Context, _ string, _ []byte) (string, error) {
	f.calls++
	return f.caption, f.err
}

type fakeDescriber struct {
	description string
	err         error
	calls       int
}

func (f *fakeDescriber) Describe(_ context.Context, _ string, _ []byte) (string, error) {
	f.calls++
	return f.description, f.err
}

type fakeUploader struct {
	url       string
	uploadErr error
	saveErr   error

	uploadCalls int
	saveCalls   int

	savedUserID   string
	savedFileURL  string
	savedFileType string
	savedCaption  string
}

func (f *fakeUploader) UploadImage(_ context.Context, _ string, _ []byte) (string, error) {
	f.uploadCalls++
	return f.url, f.uploadErr
}

func (f *fakeUploader) SaveUpload(_ context.Context, userID, fileURL, fileType, caption string) error {
	f.saveCalls++
	f.savedUserID = userID
	f.savedFileURL = fileURL
	f.savedFileType = fileType
	f.savedCaption = caption
	return f.saveErr
}

type fakeSession struct {
	state session.State
}

func (f *fakeSession) Snapshot() session.State { return f.state }

func writeImage(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("fake image bytes"), 0o600))
	return path
}

func TestGenerate_NoFileSelected(t *testing.T) {
	t.Parallel()

	o := New(&fakeCaptioner{}, &fakeDescriber{}, &fakeUploader{}, &fakeSession{}, logging.NewNopLogger())

	for _, path := range []string{"", "   "} {
		result, err := o.Generate(context.Background(), path)
		require.ErrorIs(t, err, ErrNoFileSelected)
		require.Nil(t, result)
	}
}

func TestGenerate_UnreadableFile(t *testing.T) {
	t.Parallel()

	captioner := &fakeCaptioner{}
	o := New(captioner, &fakeDescriber{}, &fakeUploader{}, &fakeSession{}, logging.NewNopLogger())

	_, err := o.Generate(context.Background(), filepath.Join(t.TempDir(), "missing.jpg"))
	require.Error(t, err)
	require.Zero(t, captioner.calls)
}

func TestGenerate_AnonymousNeverPersists(t *testing.T) {
	t.Parallel()

	uploader := &fakeUploader{}
	o := New(
		&fakeCaptioner{caption: "a dog"},
		&fakeDescriber{description: "a dog on a beach"},
		uploader,
		&fakeSession{},
		logging.NewNopLogger(),
	)

	result, err := o.Generate(context.Background(), writeImage(t, "dog.jpg"))
	require.NoError(t, err)
	require.Equal(t, "A dog", result.Caption)
	require.Equal(t, "a dog on a beach", result.Description)
	require.Equal(t, OutcomeOK, result.DescriptionOutcome)
	require.Equal(t, OutcomeSkipped, result.PersistOutcome)
	require.Zero(t, uploader.uploadCalls)
	require.Zero(t, uploader.saveCalls)
}

func TestGenerate_CaptionFailureStillDescribes(t *testing.T) {
	t.Parallel()

	captionErr := errors.New("model overloaded")
	describer := &fakeDescriber{description: "sunset over hills"}
	uploader := &fakeUploader{}
	o := New(
		&fakeCaptioner{err: captionErr},
		describer,
		uploader,
		&fakeSession{state: session.State{LoggedIn: true, UserID: "u1"}},
		logging.NewNopLogger(),
	)

	result, err := o.Generate(context.Background(), writeImage(t, "sunset.png"))
	require.ErrorIs(t, err, ErrCaptionFailed)
	require.ErrorIs(t, err, captionErr)
	require.NotNil(t, result)
	require.Empty(t, result.Caption)
	require.Equal(t, 1, describer.calls)
	require.Equal(t, "sunset over hills", result.Description)
	require.Equal(t, OutcomeOK, result.DescriptionOutcome)

	// Failed caption means nothing is saved, even for a signed-in user.
	require.Equal(t, OutcomeSkipped, result.PersistOutcome)
	require.Zero(t, uploader.uploadCalls)
}

func TestGenerate_DescriptionFailureIsNonFatal(t *testing.T) {
	t.Parallel()

	o := New(
		&fakeCaptioner{caption: "a cat"},
		&fakeDescriber{err: errors.New("timeout")},
		&fakeUploader{url: "https://cdn.example.com/cat.jpg"},
		&fakeSession{state: session.State{LoggedIn: true, UserID: "u1"}},
		logging.NewNopLogger(),
	)

	result, err := o.Generate(context.Background(), writeImage(t, "cat.jpg"))
	require.NoError(t, err)
	require.Equal(t, "A cat", result.Caption)
	require.Equal(t, OutcomeFailed, result.DescriptionOutcome)
	require.Equal(t, OutcomeOK, result.PersistOutcome)
}

func TestGenerate_LoggedInPersists(t *testing.T) {
	t.Parallel()

	uploader := &fakeUploader{url: "https://cdn.example.com/beach.jpg"}
	o := New(
		&fakeCaptioner{caption: "a_day at_the beach ."},
		&fakeDescriber{description: "shoreline"},
		uploader,
		&fakeSession{state: session.State{LoggedIn: true, UserID: "user-42"}},
		logging.NewNopLogger(),
	)

	result, err := o.Generate(context.Background(), writeImage(t, "beach.JPG"))
	require.NoError(t, err)
	require.Equal(t, OutcomeOK, result.PersistOutcome)
	require.Equal(t, 1, uploader.uploadCalls)
	require.Equal(t, 1, uploader.saveCalls)
	require.Equal(t, "user-42", uploader.savedUserID)
	require.Equal(t, "https://cdn.example.com/beach.jpg", uploader.savedFileURL)
	require.Equal(t, "jpg", uploader.savedFileType)
	require.Equal(t, "A day at the beach.", uploader.savedCaption)
}

func TestGenerate_UploadFailureIsNonFatal(t *testing.T) {
	t.Parallel()

	uploader := &fakeUploader{uploadErr: errors.New("storage unavailable")}
	o := New(
		&fakeCaptioner{caption: "a boat"},
		&fakeDescriber{description: "harbor"},
		uploader,
		&fakeSession{state: session.State{LoggedIn: true, UserID: "u1"}},
		logging.NewNopLogger(),
	)

	result, err := o.Generate(context.Background(), writeImage(t, "boat.jpg"))
	require.NoError(t, err)
	require.Equal(t, "A boat", result.Caption)
	require.Equal(t, OutcomeFailed, result.PersistOutcome)
	require.Zero(t, uploader.saveCalls)
}

func TestGenerate_SaveFailureIsNonFatal(t *testing.T) {
	t.Parallel()

	uploader := &fakeUploader{url: "https://cdn.example.com/x.jpg", saveErr: errors.New("db down")}
	o := New(
		&fakeCaptioner{caption: "a tree"},
		&fakeDescriber{description: "forest"},
		uploader,
		&fakeSession{state: session.State{LoggedIn: true, UserID: "u1"}},
		logging.NewNopLogger(),
	)

	result, err := o.Generate(context.Background(), writeImage(t, "tree.jpg"))
	require.NoError(t, err)
	require.Equal(t, OutcomeFailed, result.PersistOutcome)
}

func TestFormatCaption(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"underscores and spacing", "a_dog, sitting .", "A dog, sitting."},
		{"already clean", "A dog, sitting.", "A dog, sitting."},
		{"only underscores", "___", "   "},
		{"unicode first rune", "über cool", "Über cool"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatCaption(tt.in)
			require.Equal(t, tt.want, got)
			// Idempotent.
			require.Equal(t, got, FormatCaption(got))
		})
	}
}
