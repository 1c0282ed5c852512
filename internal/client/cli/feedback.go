package cli

import (
	"context"
	"os"
	"strconv"

	"github.com/visualcaption/vcap/internal/client/routeguard"
	"github.com/visualcaption/vcap/internal/client/validate"
)

// panelFeedback is the "next panel" hint stored when an anonymous user asks
// for the feedback panel. It is honored once, right after the next sign-in.
const panelFeedback = "feedback"

// Feedback collects a rating and a message and submits them. When the user
// is anonymous the intent is remembered and replayed after sign-in.
func (a *App) Feedback(ctx context.Context) error {
	st := a.session.Snapshot()
	if !st.LoggedIn {
		if err := a.store.SetNextPanel(ctx, panelFeedback); err != nil {
			a.log.Warn(ctx, "storing next panel hint", "error", err)
		}
		printlnFn("Sign in to leave feedback. It will open right after.")
		a.navigate(routeguard.ScreenSignIn)
		return nil
	}

	ratingText, err := getSimpleText(a.reader, "Rating (1-5)", os.Stdout)
	if err != nil {
		return err
	}
	rating, err := strconv.Atoi(ratingText)
	if err != nil {
		printlnFn("Rating must be a number from 1 to 5.")
		return err
	}
	if err := validate.FeedbackRating(rating); err != nil {
		printlnFn(err.Error())
		return err
	}

	content, err := GetMultiline(a.reader, "Your feedback", os.Stdout)
	if err != nil {
		return err
	}
	if err := validate.FeedbackContent(content); err != nil {
		printlnFn(err.Error())
		return err
	}

	if err := a.api.SubmitFeedback(ctx, st.UserID, content, rating); err != nil {
		printlnFn("Could not submit feedback:", err.Error())
		return err
	}

	printlnFn("Thanks for the feedback!")
	return nil
}
