package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/visualcaption/vcap/internal/client/bus"
	"github.com/visualcaption/vcap/internal/client/routeguard"
	"github.com/visualcaption/vcap/internal/client/session"
)

// stubInputs replaces the interactive input helpers with scripted values.
// Each call to getSimpleText pops the next text answer.
func stubInputs(t *testing.T, texts []string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(texts) {
			return "", io.EOF
		}
		v := texts[i]
		i++
		return v, nil
	}
	getPassword = func(_ *bufio.Reader, _ string, _ io.Writer) ([]byte, error) {
		return append([]byte(nil), password...), nil
	}
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func TestLogin_PersistsSessionAndNavigates(t *testing.T) {
	f := &fakeAPI{loginToken: mintCredential(t, "11111111-2222-3333-4444-555555555555")}
	app, _ := newTestApp(t, f)

	stubInputs(t, []string{"user@example.com"}, []byte("secret"))

	require.NoError(t, app.Login(context.Background()))

	st := app.session.Snapshot()
	require.True(t, st.LoggedIn)
	require.Equal(t, "11111111-2222-3333-4444-555555555555", st.UserID)
	require.Equal(t, "user@example.com", st.Email)
	require.Equal(t, routeguard.ScreenHome, app.screen)

	cred, err := app.store.Credential(context.Background())
	require.NoError(t, err)
	require.Equal(t, f.loginToken, cred)
}

func TestLogin_AdminLandsOnDashboard(t *testing.T) {
	f := &fakeAPI{loginToken: mintCredential(t, session.AdminUserID())}
	app, _ := newTestApp(t, f)

	stubInputs(t, []string{"admin@example.com"}, []byte("secret"))

	require.NoError(t, app.Login(context.Background()))
	require.True(t, app.session.Snapshot().Admin)
	// Home redirects to the dashboard for admins.
	require.Equal(t, routeguard.ScreenAdminDashboard, app.screen)
}

func TestLogin_BadCredentialsSurface(t *testing.T) {
	f := &fakeAPI{loginErr: errors.New("invalid credentials")}
	app, _ := newTestApp(t, f)

	stubInputs(t, []string{"user@example.com"}, []byte("wrong"))

	require.Error(t, app.Login(context.Background()))
	require.False(t, app.session.Snapshot().LoggedIn)
}

func TestLogin_ReplaysFeedbackPanelHint(t *testing.T) {
	f := &fakeAPI{loginToken: mintCredential(t, "11111111-2222-3333-4444-555555555555")}
	app, _ := newTestApp(t, f)

	ctx := context.Background()
	// Anonymous feedback attempt leaves the hint behind.
	require.NoError(t, app.Feedback(ctx))
	require.Equal(t, routeguard.ScreenSignIn, app.screen)

	stubInputs(t, []string{"user@example.com", "5"}, []byte("secret"))
	app.reader = bufio.NewReader(strings.NewReader("love it\n\n"))

	require.NoError(t, app.Login(ctx))
	require.Contains(t, f.calls, "submitfeedback")
	require.Equal(t, "love it", f.feedbackContent)
	require.Equal(t, 5, f.feedbackRating)

	// The hint is single use.
	panel, err := app.store.TakeNextPanel(ctx)
	require.NoError(t, err)
	require.Empty(t, panel)
}

func TestLogin_HonorsFeedbackPanelBroadcast(t *testing.T) {
	f := &fakeAPI{loginToken: mintCredential(t, "11111111-2222-3333-4444-555555555555")}
	app, _ := newTestApp(t, f)

	// No stored hint; the broadcast alone opens the panel after sign-in.
	app.bus.Publish(bus.ShowFeedbackPanel{Visible: true})
	require.True(t, app.showFeedback)

	stubInputs(t, []string{"user@example.com", "4"}, []byte("secret"))
	app.reader = bufio.NewReader(strings.NewReader("nice tool\n\n"))

	ctx := context.Background()
	require.NoError(t, app.Login(ctx))
	require.Contains(t, f.calls, "submitfeedback")
	require.Equal(t, 4, f.feedbackRating)

	// Consumed, not sticky.
	require.False(t, app.showFeedback)
}

func TestLogout_ClearsSession(t *testing.T) {
	f := &fakeAPI{loginToken: mintCredential(t, "11111111-2222-3333-4444-555555555555")}
	app, _ := newTestApp(t, f)

	stubInputs(t, []string{"user@example.com"}, []byte("secret"))
	ctx := context.Background()
	require.NoError(t, app.Login(ctx))
	require.True(t, app.isLoggedIn())

	require.NoError(t, app.Logout(ctx))
	require.False(t, app.isLoggedIn())
	require.Equal(t, routeguard.ScreenSignIn, app.screen)
	require.Contains(t, f.calls, "logout")

	cred, err := app.store.Credential(ctx)
	require.NoError(t, err)
	require.Empty(t, cred)
}

func TestLogout_NoopWhenAnonymous(t *testing.T) {
	f := &fakeAPI{}
	app, _ := newTestApp(t, f)

	require.NoError(t, app.Logout(context.Background()))
	require.NotContains(t, f.calls, "logout")
}

func TestRegister_FullFlow(t *testing.T) {
	f := &fakeAPI{}
	app, _ := newTestApp(t, f)

	stubInputs(t, []string{"new@example.com", "123456"}, []byte("secret"))

	require.NoError(t, app.Register(context.Background()))
	require.Equal(t, []string{"sendotp", "verifyotp", "register"}, f.calls)
	require.Equal(t, routeguard.ScreenSignIn, app.screen)
}

func TestRegister_InvalidEmailStopsBeforeNetwork(t *testing.T) {
	f := &fakeAPI{}
	app, _ := newTestApp(t, f)

	stubInputs(t, []string{"not-an-email"}, []byte("secret"))

	require.Error(t, app.Register(context.Background()))
	require.Empty(t, f.calls)
}

func TestRegister_RedirectedWhenLoggedIn(t *testing.T) {
	f := &fakeAPI{loginToken: mintCredential(t, "11111111-2222-3333-4444-555555555555")}
	app, _ := newTestApp(t, f)

	stubInputs(t, []string{"user@example.com"}, []byte("secret"))
	ctx := context.Background()
	require.NoError(t, app.Login(ctx))

	f.calls = nil
	require.NoError(t, app.Register(ctx))
	require.Empty(t, f.calls)
	require.Equal(t, routeguard.ScreenHome, app.screen)
}
