package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/visualcaption/vcap/internal/client/api"
	"github.com/visualcaption/vcap/internal/client/routeguard"
)

// Stats shows the dashboard totals.
func (a *App) Stats(ctx context.Context) error {
	if !a.navigate(routeguard.ScreenAdminDashboard) {
		return nil
	}

	stats, err := a.api.Stats(ctx)
	if err != nil {
		printlnFn("Could not load stats:", err.Error())
		return err
	}

	printlnFn(renderTable(
		[]string{"Users", "Captions", "Feedback"},
		[][]string{{
			strconv.Itoa(stats.TotalUsers),
			strconv.Itoa(stats.TotalCaptions),
			strconv.Itoa(stats.TotalFeedback),
		}},
		[]columnAlignment{alignRight, alignRight, alignRight},
	))
	return nil
}

// Users lists user accounts with an optional search filter, then offers
// toggle/delete actions on them.
func (a *App) Users(ctx context.Context) error {
	if !a.navigate(routeguard.ScreenAdminUsers) {
		return nil
	}

	search, err := getSimpleText(a.reader, "Search (empty for all)", os.Stdout)
	if err != nil {
		return err
	}

	users, err := a.api.Users(ctx, search, nil)
	if err != nil {
		printlnFn("Could not load users:", err.Error())
		return err
	}
	if len(users) == 0 {
		printlnFn("No users found.")
		return nil
	}

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		status := "inactive"
		if u.Active {
			status = "active"
		}
		rows = append(rows, []string{u.UserID, u.Username, u.Email, status})
	}
	printlnFn(renderTable([]string{"ID", "Username", "Email", "Status"}, rows, nil))

	action, err := getSimpleText(a.reader, "Action: toggle <id> | delete <id> | Enter to go back", os.Stdout)
	if err != nil {
		return err
	}
	verb, userID, _ := strings.Cut(strings.TrimSpace(action), " ")
	userID = strings.TrimSpace(userID)

	switch verb {
	case "":
		return nil
	case "toggle":
		if userID == "" {
			printlnFn("Usage: toggle <id>")
			return nil
		}
		if err := a.api.ToggleUserStatus(ctx, userID); err != nil {
			printlnFn("Toggle failed:", err.Error())
			return err
		}
		printlnFn("Status changed.")
	case "delete":
		if userID == "" {
			printlnFn("Usage: delete <id>")
			return nil
		}
		if err := a.api.DeleteUser(ctx, userID); err != nil {
			printlnFn("Delete failed:", err.Error())
			return err
		}
		printlnFn("User deleted.")
	default:
		printlnFn("Unknown action:", verb)
	}
	return nil
}

// Captions lists generated captions with filters and offers deletion.
func (a *App) Captions(ctx context.Context) error {
	if !a.navigate(routeguard.ScreenAdminCaptions) {
		return nil
	}

	search, err := getSimpleText(a.reader, "Search (empty for all)", os.Stdout)
	if err != nil {
		return err
	}

	captions, err := a.api.Captions(ctx, api.CaptionQuery{Search: search, Sort: "newest"})
	if err != nil {
		printlnFn("Could not load captions:", err.Error())
		return err
	}
	if len(captions) == 0 {
		printlnFn("No captions found.")
		return nil
	}

	rows := make([][]string, 0, len(captions))
	for _, c := range captions {
		rows = append(rows, []string{
			c.UploadID,
			c.UploadedAt.Format("2006-01-02 15:04"),
			c.FileType,
			c.Caption,
		})
	}
	printlnFn(renderTable([]string{"ID", "Uploaded", "Type", "Caption"}, rows, nil))

	action, err := getSimpleText(a.reader, "Action: delete <id> | Enter to go back", os.Stdout)
	if err != nil {
		return err
	}
	verb, captionID, _ := strings.Cut(strings.TrimSpace(action), " ")
	captionID = strings.TrimSpace(captionID)

	switch verb {
	case "":
		return nil
	case "delete":
		if captionID == "" {
			printlnFn("Usage: delete <id>")
			return nil
		}
		if err := a.api.DeleteCaption(ctx, captionID); err != nil {
			printlnFn("Delete failed:", err.Error())
			return err
		}
		printlnFn("Caption deleted.")
	default:
		printlnFn("Unknown action:", verb)
	}
	return nil
}

// ManageFeedback lists user feedback and offers respond/resolve actions.
func (a *App) ManageFeedback(ctx context.Context) error {
	if !a.navigate(routeguard.ScreenAdminFeedback) {
		return nil
	}

	search, err := getSimpleText(a.reader, "Search (empty for all)", os.Stdout)
	if err != nil {
		return err
	}

	items, err := a.api.Feedback(ctx, api.FeedbackQuery{Search: search, Sort: "newest"})
	if err != nil {
		printlnFn("Could not load feedback:", err.Error())
		return err
	}
	if len(items) == 0 {
		printlnFn("No feedback found.")
		return nil
	}

	rows := make([][]string, 0, len(items))
	for _, f := range items {
		status := "open"
		if f.Resolved {
			status = "resolved"
		}
		rows = append(rows, []string{
			f.FeedbackID,
			fmt.Sprintf("%d/5", f.Rating),
			status,
			f.Content,
			f.AdminResponse,
		})
	}
	printlnFn(renderTable([]string{"ID", "Rating", "Status", "Content", "Response"}, rows, nil))

	action, err := getSimpleText(a.reader, "Action: respond <id> | resolve <id> | Enter to go back", os.Stdout)
	if err != nil {
		return err
	}
	verb, feedbackID, _ := strings.Cut(strings.TrimSpace(action), " ")
	feedbackID = strings.TrimSpace(feedbackID)

	switch verb {
	case "":
		return nil
	case "respond":
		if feedbackID == "" {
			printlnFn("Usage: respond <id>")
			return nil
		}
		response, err := GetMultiline(a.reader, "Your response", os.Stdout)
		if err != nil {
			return err
		}
		if err := a.api.RespondFeedback(ctx, feedbackID, response); err != nil {
			printlnFn("Respond failed:", err.Error())
			return err
		}
		printlnFn("Response sent.")
	case "resolve":
		if feedbackID == "" {
			printlnFn("Usage: resolve <id>")
			return nil
		}
		if err := a.api.ResolveFeedback(ctx, feedbackID); err != nil {
			printlnFn("Resolve failed:", err.Error())
			return err
		}
		printlnFn("Marked as resolved.")
	default:
		printlnFn("Unknown action:", verb)
	}
	return nil
}
