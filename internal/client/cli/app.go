package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrijs2005/campusevents/internal/client/api"
	"github.com/dmitrijs2005/campusevents/internal/client/config"
	"github.com/dmitrijs2005/campusevents/internal/client/credential"
	"github.com/dmitrijs2005/campusevents/internal/client/notifications"
	"github.com/dmitrijs2005/campusevents/internal/client/realtime"
	"github.com/dmitrijs2005/campusevents/internal/client/services"
	"github.com/dmitrijs2005/campusevents/internal/client/session"
	"github.com/dmitrijs2005/campusevents/internal/logging"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// App ties the client subsystems together behind the REPL.
type App struct {
	config        *config.Config
	session       *session.Manager
	channel       *realtime.Channel
	notifications *notifications.Store
	events        *services.EventService
	users         *services.UserService
	analytics     *services.AnalyticsService
	api           *api.Client
	log           logging.Logger
	db            *sql.DB
	Mode          Mode
	reader        *bufio.Reader

	// set while a realtime subscription is live
	unsubscribe func()
	rtUser      string
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := credential.InitDatabase(ctx, c.CredentialDB)
	if err != nil {
		logger.Error(ctx, "error initializing credential database", "error", err)
		return nil, err
	}

	// The adapter needs the manager's token and the manager needs the
	// adapter, so both token source and unauthorized hook bind late.
	var mgr *session.Manager

	apiClient := api.New(api.Options{
		BaseURL:     c.APIBaseURL,
		Prefix:      c.APIPrefix,
		Timeout:     c.RequestTimeout,
		MaxAttempts: c.RetryMaxAttempts,
		BaseDelay:   c.RetryBaseDelay,
		Logger:      logger,
		Token: func() string {
			if mgr == nil {
				return ""
			}
			return mgr.Token()
		},
		OnUnauthorized: func() {
			if mgr != nil {
				mgr.InvalidateToken(context.Background())
			}
		},
	})

	mgr = session.NewManager(apiClient, credential.NewSQLiteStore(db), logger)

	app := &App{
		config:        c,
		session:       mgr,
		channel:       realtime.New(c.SocketURL, logger),
		notifications: notifications.NewStore(apiClient, logger),
		events:        services.NewEventService(apiClient),
		users:         services.NewUserService(apiClient),
		analytics:     services.NewAnalyticsService(apiClient),
		api:           apiClient,
		log:           logger,
		db:            db,
		reader:        bufio.NewReader(os.Stdin),
	}

	mgr.OnChange(app.followSession)

	return app, nil
}

// followSession keeps the realtime channel in step with the session: a
// connection per authenticated user, torn down on logout.
func (a *App) followSession(st session.State) {
	switch st.Status() {
	case session.StatusAuthenticated:
		if a.rtUser == st.User.ID {
			return
		}
		if a.unsubscribe == nil {
			a.unsubscribe = a.channel.OnNotification(a.notifications.Add)
		}
		a.rtUser = st.User.ID
		a.channel.Connect(st.User.ID)
	case session.StatusAnonymous:
		if a.unsubscribe != nil {
			a.unsubscribe()
			a.unsubscribe = nil
		}
		a.rtUser = ""
		a.channel.Close()
	}
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		a.log.Info(ctx, "connectivity changed", "mode", mode)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.State().Status() == session.StatusAuthenticated
}

// Run restores the saved session, starts the connectivity watcher, and
// blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	defer a.channel.Close()

	a.session.Initialize(ctx)

	go a.StartHealthWatcher(ctx, a.config.HealthCheckInterval)

	a.Root(ctx)
}

// StartHealthWatcher probes the backend on a fixed interval and flips the
// Mode between online and offline.
func (a *App) StartHealthWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := services.Ping(probeCtx, a.api)
			cancel()

			if err != nil {
				a.setMode(ctx, ModeOffline)
			} else {
				a.setMode(ctx, ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
