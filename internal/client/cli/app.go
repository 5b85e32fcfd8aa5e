package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophprofile/internal/buildinfo"
	"github.com/dmitrijs2005/gophprofile/internal/client/client"
	"github.com/dmitrijs2005/gophprofile/internal/client/config"
	"github.com/dmitrijs2005/gophprofile/internal/client/models"
	"github.com/dmitrijs2005/gophprofile/internal/client/services"
	"github.com/dmitrijs2005/gophprofile/internal/client/session"
	"github.com/dmitrijs2005/gophprofile/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

type App struct {
	config     *config.Config
	store      session.Store
	controller *services.ProfileController
	session    services.SessionService
	logger     logging.Logger
	db         *sql.DB

	modeMu sync.RWMutex
	mode   Mode

	reader *bufio.Reader
	out    io.Writer

	unsubscribeView func()
}

// NewApp builds the application from c. When c.SessionDB is set the session
// is kept in that SQLite file, otherwise in memory.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	var (
		store session.Store
		db    *sql.DB
	)

	if c.SessionDB != "" {
		var err error
		db, err = session.OpenDatabase(ctx, c.SessionDB)
		if err != nil {
			logger.Error(ctx, "error initializing database", "error", err)
			return nil, err
		}

		store, err = session.NewSQLiteStore(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
	} else {
		store = session.NewMemoryStore(models.Identity{}, "")
	}

	apiClient := client.NewHTTPClient(c.ServerURL,
		client.WithTimeout(c.RequestTimeout),
		client.WithUserAgent("gophprofile-cli/"+buildinfo.Version),
	)

	a := newApp(c, store, apiClient, logger, os.Stdin, os.Stdout)
	a.db = db
	return a, nil
}

func newApp(c *config.Config, store session.Store, apiClient client.Client, logger logging.Logger, in io.Reader, out io.Writer) *App {
	if logger == nil {
		logger = logging.NewNop()
	}
	a := &App{
		config:     c,
		store:      store,
		controller: services.NewProfileController(store, apiClient, logger),
		session:    services.NewSessionService(apiClient, store, logger),
		logger:     logger,
		reader:     bufio.NewReader(in),
		out:        out,
	}
	a.unsubscribeView = a.controller.Subscribe(a.printStatus)
	return a
}

func (a *App) Mode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.logger.Info(context.Background(), fmt.Sprintf("Switched to %s mode", mode))
	}
}

// Run restores the session, starts the connectivity watcher and blocks in
// the REPL until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer a.Close(ctx)

	fmt.Fprintln(a.out, renderBanner("Account settings (type 'help' for commands)"))

	if a.isLoggedIn() {
		_ = a.Refresh(ctx)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

// Close releases the controller, the client and the session database.
func (a *App) Close(ctx context.Context) {
	if a.unsubscribeView != nil {
		a.unsubscribeView()
	}
	a.controller.Close()
	if err := a.session.Close(ctx); err != nil {
		a.logger.Warn(ctx, "client close", "error", err)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn(ctx, "session db close", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return !a.store.Credential().Empty()
}

func (a *App) getStatus() string {
	s := ""
	if name := a.store.Identity().DisplayName; name != "" {
		s = name + " "
	}
	if m := a.Mode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// StartOnlineStatusWatcher pings the service every interval and switches
// the mode accordingly. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.session.Ping(pingCtx)
	cancel()

	if err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}
