package cli

import (
	"context"
	"errors"
	"os"

	"github.com/visualcaption/vcap/internal/client/generate"
	"github.com/visualcaption/vcap/internal/client/oembed"
	"github.com/visualcaption/vcap/internal/client/routeguard"
)

// Caption prompts for an image path and runs the caption pipeline. Signed-in
// users get the result saved to their history automatically; anonymous users
// just see the caption.
func (a *App) Caption(ctx context.Context) error {
	if !a.navigate(routeguard.ScreenHome) {
		return nil
	}

	path, err := getSimpleText(a.reader, "Path to image file", os.Stdout)
	if err != nil {
		return err
	}

	result, err := a.generator.Generate(ctx, path)
	if err != nil {
		if errors.Is(err, generate.ErrNoFileSelected) {
			printlnFn("No file selected.")
			return nil
		}
		if !errors.Is(err, generate.ErrCaptionFailed) || result == nil {
			printlnFn("Error:", err.Error())
			return err
		}
		printlnFn("Caption generation failed:", err.Error())
	}

	if result.Caption != "" {
		printlnFn("Caption:", result.Caption)
	}
	if result.Description != "" {
		printlnFn("Description:", result.Description)
	}
	switch result.PersistOutcome {
	case generate.OutcomeOK:
		printlnFn("Saved to your history.")
	case generate.OutcomeFailed:
		printlnFn("Could not save to history, the caption is shown above.")
	}
	return nil
}

// Video prompts for a video link, shows its preview metadata and asks the
// backend to generate a title for it. The preview is best-effort; the
// generated title is the primary result.
func (a *App) Video(ctx context.Context) error {
	if !a.navigate(routeguard.ScreenHome) {
		return nil
	}

	url, err := getSimpleText(a.reader, "Video URL", os.Stdout)
	if err != nil {
		return err
	}

	videoID, err := oembed.ExtractVideoID(url)
	if err != nil {
		printlnFn("Not a recognizable video link.")
		return err
	}

	preview, err := a.previewer.Lookup(ctx, videoID)
	if err != nil {
		a.log.Warn(ctx, "video preview lookup failed", "error", err)
		printlnFn("Preview unavailable.")
	} else {
		if preview.Title != "" {
			printlnFn("Current title:", preview.Title)
		}
		printlnFn("Thumbnail:", preview.ThumbnailURL)
	}

	title, err := a.api.GenerateVideoTitle(ctx, url)
	if err != nil {
		printlnFn("Failed to generate title. Please try again.")
		return err
	}
	printlnFn("Generated title:", title)
	return nil
}
