package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/cors"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/periebm/batepapo-uol-api/handlers"
	"github.com/periebm/batepapo-uol-api/pkg/router"
	"github.com/periebm/batepapo-uol-api/room"
	"github.com/periebm/batepapo-uol-api/store"
)

// App owns the process-level wiring: database, migrations, the room facade,
// the presence sweeper and the HTTP server. Every component receives its
// dependencies at construction; there are no package-level singletons.
type App struct {
	config *Config
	log    *slog.Logger
}

func New(config *Config, log *slog.Logger) *App {
	return &App{config: config, log: log}
}

// Run starts the sweeper and the HTTP server and blocks until ctx is
// cancelled, then shuts both down cleanly: in-flight requests get a grace
// period, the sweeper stops at its next select.
func (a *App) Run(ctx context.Context) error {
	db, err := sql.Open("sqlite3", "file:"+a.config.SQLite.File)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	if err := a.migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	participants := store.NewSQLiteParticipantStore(db)
	messages := store.NewSQLiteMessageStore(db)
	chatRoom := room.New(participants, messages)

	sweeper := room.NewSweeper(chatRoom, a.config.Sweep.Interval, a.config.Sweep.IdleAfter, a.log)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		// only exits with ctx; cycle errors are handled inside
		_ = sweeper.Run(ctx)
	}()

	r := router.New(router.WithLogger(a.log))
	r.Router.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.config.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", handlers.IdentityHeader},
	}))
	handlers.NewRoomHandler(chatRoom).Mount(r)

	server := &http.Server{
		Addr:    net.JoinHostPort(a.config.Hostname, fmt.Sprintf("%d", a.config.Port)),
		Handler: r,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()

		a.log.Info("server shutting down")

		exitCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()

		go func() {
			<-exitCtx.Done()
			if exitCtx.Err() == context.DeadlineExceeded {
				a.log.Error("graceful shutdown timed out, forcing exit")
				os.Exit(1)
			}
		}()

		if err := server.Shutdown(exitCtx); err != nil {
			a.log.Error("server shutdown", slog.Any("err", err))
		}
	}()

	a.log.Info("server started", slog.String("addr", server.Addr))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server exit: %w", err)
	}

	<-done
	wg.Wait()
	return nil
}

func (a *App) migrate(db *sql.DB) error {
	goose.SetBaseFS(os.DirFS(a.config.SQLite.Migrations))

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.Up(db, ".")
}
