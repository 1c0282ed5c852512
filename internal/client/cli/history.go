package cli

import (
	"context"
	"fmt"

	"github.com/visualcaption/vcap/internal/client/routeguard"
)

// History lists the signed-in user's past uploads, newest first.
func (a *App) History(ctx context.Context) error {
	st := a.session.Snapshot()
	if !st.LoggedIn {
		printlnFn("Sign in to see your history.")
		a.navigate(routeguard.ScreenSignIn)
		return nil
	}
	if !a.navigate(routeguard.ScreenHome) {
		return nil
	}

	uploads, err := a.api.History(ctx, st.UserID)
	if err != nil {
		printlnFn("Could not load history:", err.Error())
		return err
	}
	if len(uploads) == 0 {
		printlnFn("No uploads yet.")
		return nil
	}

	rows := make([][]string, 0, len(uploads))
	for _, u := range uploads {
		rows = append(rows, []string{
			u.UploadedAt.Format("2006-01-02 15:04"),
			u.FileType,
			u.Caption,
			u.FileURL,
		})
	}
	printlnFn(renderTable(
		[]string{"Uploaded", "Type", "Caption", "URL"},
		rows,
		nil,
	))
	printlnFn(fmt.Sprintf("%d upload(s)", len(uploads)))
	return nil
}
