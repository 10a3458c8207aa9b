package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/donseba/go-htmx"
	"github.com/joho/godotenv"
	"github.com/mkjarl/gumshoe/internal/backend"
	"github.com/mkjarl/gumshoe/internal/envstruct"
	"github.com/mkjarl/gumshoe/internal/errors"
	"github.com/mkjarl/gumshoe/internal/game"
	"github.com/mkjarl/gumshoe/internal/logging"
	"github.com/mkjarl/gumshoe/internal/pprofserver"
	"github.com/mkjarl/gumshoe/internal/repositories"
	"github.com/mkjarl/gumshoe/internal/sqlite"
)

type config struct {
	// Addr is the address the server listens on. Use port 0 to let the OS
	// pick a free port; the chosen address is logged under the "addr" key.
	Addr string `env:"GUMSHOE_ADDR" envDefault:"localhost:4000"`
	// BackendURL is the base URL of the detective solver service.
	BackendURL string `env:"GUMSHOE_BACKEND_URL" envDefault:"http://localhost:5002/api"`
	// SqliteURL is the path to the SQLite database or ":memory:".
	SqliteURL string `env:"GUMSHOE_SQLITE_URL" envDefault:"./gumshoe.sqlite"`
	// PprofAddr is the localhost pprof port, e.g. ":6060". Empty disables it.
	PprofAddr string `env:"GUMSHOE_PPROF_ADDR" envDefault:""`
}

type application struct {
	logger         *slog.Logger
	htmx           *htmx.HTMX
	sessionManager *scs.SessionManager
	games          *game.Manager
	casefiles      *repositories.CasefileRepository
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "parse config")
	}

	if cfg.PprofAddr != "" {
		pprofserver.Launch(cfg.PprofAddr, logger)
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL)
	if err != nil {
		return errors.Wrap(err, "open database", slog.String("url", cfg.SqliteURL))
	}

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(db.ReadWrite.DB, 24*time.Hour)
	sessionManager.Lifetime = 12 * time.Hour
	sessionManager.Cookie.Secure = true

	app := application{
		logger:         logger,
		htmx:           htmx.New(),
		sessionManager: sessionManager,
		games:          game.NewManager(backend.NewClient(cfg.BackendURL)),
		casefiles:      repositories.NewCasefileRepository(db, logger),
	}

	return app.configureAndStartServer(ctx, cfg.Addr)
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	}))
	logger := slog.New(loggerHandler)

	// Missing .env is fine, the defaults cover local development.
	_ = godotenv.Load()

	if err := run(context.Background(), logger, os.LookupEnv); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
