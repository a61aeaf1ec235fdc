package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/hhsksonu/kpcli/internal/client/api"
	"github.com/hhsksonu/kpcli/internal/client/config"
	"github.com/hhsksonu/kpcli/internal/client/repositories/history"
	"github.com/hhsksonu/kpcli/internal/client/services"
	"github.com/hhsksonu/kpcli/internal/client/session"
	"github.com/hhsksonu/kpcli/internal/client/storage"
	"github.com/hhsksonu/kpcli/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the session manager, the API client and the local cache behind
// the interactive shell.
type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	api     *api.Client
	session *session.Manager
	queries *services.QueryService
	reader  *bufio.Reader
	out     io.Writer

	// expired flips when the transport gives up on the session; the REPL
	// prints a notice and resets it on the next prompt.
	expired atomic.Bool
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, cfg.CacheDBPath)
	if err != nil {
		log.Error(ctx, "initializing local database failed", "error", err)
		return nil, err
	}

	app := &App{
		config: cfg,
		log:    log,
		db:     db,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	store := session.NewStore(db)
	apiClient := api.New(cfg.BaseURL, store,
		api.WithLogger(log),
		api.WithHTTPClient(&http.Client{
			Timeout: cfg.RequestTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}),
		api.WithSessionExpiredHandler(app.onSessionExpired),
	)

	app.api = apiClient
	app.session = session.NewManager(store, apiClient, log)
	app.queries = services.NewQueryService(apiClient, history.NewSQLiteRepository(db), log)

	return app, nil
}

func (a *App) onSessionExpired() {
	a.session.HandleSessionExpired()
	a.expired.Store(true)
}

// Run restores the persisted session and starts the shell. It blocks until
// the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	defer a.db.Close()

	if err := a.session.Initialize(ctx); err != nil {
		return err
	}
	a.Root(ctx)
	return nil
}
