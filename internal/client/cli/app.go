package cli

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/visualcaption/vcap/internal/client/api"
	"github.com/visualcaption/vcap/internal/client/bus"
	"github.com/visualcaption/vcap/internal/client/config"
	"github.com/visualcaption/vcap/internal/client/generate"
	"github.com/visualcaption/vcap/internal/client/inference"
	"github.com/visualcaption/vcap/internal/client/oembed"
	"github.com/visualcaption/vcap/internal/client/repositories/localstate"
	"github.com/visualcaption/vcap/internal/client/routeguard"
	"github.com/visualcaption/vcap/internal/client/session"
	"github.com/visualcaption/vcap/internal/logging"
)

// generator runs one caption pipeline. Satisfied by *generate.Orchestrator;
// tests can provide a stub.
type generator interface {
	Generate(ctx context.Context, path string) (*generate.Result, error)
}

// previewer resolves a video ID into preview metadata. Satisfied by
// *oembed.Client.
type previewer interface {
	Lookup(ctx context.Context, videoID string) (*oembed.Preview, error)
}

// App holds everything the interactive client needs: the backend API
// client, the local session, the caption pipeline and the current screen.
type App struct {
	config    *config.Config
	api       api.Client
	generator generator
	previewer previewer
	store     *localstate.Store
	session   *session.Session
	bus       *bus.Bus
	log       logging.Logger
	reader    *bufio.Reader
	screen    routeguard.Screen
	closeDB   func() error

	// showFeedback is set by ShowFeedbackPanel broadcasts; Login consumes
	// it to open the feedback panel right after sign-in.
	showFeedback bool
	unsubscribe  func()
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, closeDB, err := localstate.Open(ctx, c.StateDBPath)
	if err != nil {
		return nil, fmt.Errorf("opening local state: %w", err)
	}

	b := bus.New(log)
	store := localstate.NewStore(db, b)
	sess := session.New(ctx, store, b, log)

	httpClient := &http.Client{Timeout: c.HTTPTimeout}
	apiClient := api.NewHTTPClient(c.BackendBaseURL, store,
		api.WithHTTPClient(httpClient), api.WithLogger(log))

	captioner := inference.NewCaptionClient(c.CaptionEndpoint)
	describer := inference.NewDescriptionClient(c.DescriptionEndpoint)

	app := &App{
		config:    c,
		api:       apiClient,
		generator: generate.New(captioner, describer, apiClient, sess, log),
		previewer: oembed.NewClient(),
		store:     store,
		session:   sess,
		bus:       b,
		log:       log,
		reader:    bufio.NewReader(os.Stdin),
		screen:    routeguard.ScreenHome,
		closeDB:   closeDB,
	}
	app.screen = routeguard.Resolve(sess.Snapshot(), routeguard.ScreenHome)
	app.watchFeedbackPanel()
	return app, nil
}

// watchFeedbackPanel subscribes the app to feedback-panel broadcasts. The
// bus delivers synchronously, so the flag is visible to the publisher as
// soon as Publish returns.
func (a *App) watchFeedbackPanel() {
	a.unsubscribe = a.bus.Subscribe(func(e bus.Event) {
		if p, ok := e.(bus.ShowFeedbackPanel); ok {
			a.showFeedback = p.Visible
		}
	})
}

// Run starts the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	printlnFn("Visual Caption CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// Close releases the bus subscriptions and the local database.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
	a.session.Close()
	if a.closeDB != nil {
		if err := a.closeDB(); err != nil {
			a.log.Warn(context.Background(), "closing local state", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().LoggedIn
}

func (a *App) isAdmin() bool {
	return a.session.Snapshot().Admin
}

func (a *App) getStatus() string {
	st := a.session.Snapshot()
	s := string(a.screen)
	if st.Email != "" {
		s = fmt.Sprintf("%s %s", st.Email, s)
	}
	return fmt.Sprintf("(%s)", s)
}

// navigate resolves target through the route guard and moves the current
// screen there. It returns true when the target itself was reached.
func (a *App) navigate(target routeguard.Screen) bool {
	resolved := routeguard.Resolve(a.session.Snapshot(), target)
	a.screen = resolved
	if resolved != target {
		printlnFn(fmt.Sprintf("Redirected to %s", resolved))
		return false
	}
	return true
}
