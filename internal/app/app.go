package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/every-minesweeper/internal/config"
	"github.com/vancomm/every-minesweeper/internal/database"
	"github.com/vancomm/every-minesweeper/internal/middleware"
	"github.com/vancomm/every-minesweeper/internal/session"
)

type App struct {
	logger  *slog.Logger
	router  *http.ServeMux
	db      *pgxpool.Pool
	store   *session.Store
	cookies *config.Cookies
	ws      *config.WebSocket
	board   config.Board
}

func New(logger *slog.Logger) *App {
	return &App{
		logger: logger,
		router: http.NewServeMux(),
		store:  session.NewStore(),
	}
}

// connect leaves a.db nil when no database is configured. The seed catalog
// endpoints then answer 503.
func (a *App) connect(ctx context.Context) error {
	db, migrator, err := database.ConnectAndMigrate(ctx)
	if errors.Is(err, config.ErrNoDatabase) {
		a.logger.Warn("no database configured, seed catalog disabled")
		return nil
	}
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}
	if version, dirty, err := migrator.Version(); err == nil {
		a.logger.Info(
			"database ready",
			slog.Uint64("version", uint64(version)),
			slog.Bool("dirty", dirty),
		)
	}
	a.db = db
	return nil
}

func (a *App) configure() error {
	jwt, err := config.NewJWT()
	if err != nil {
		return fmt.Errorf("failed to read jwt config: %w", err)
	}
	if a.cookies, err = config.NewCookies(jwt); err != nil {
		return fmt.Errorf("failed to read cookies config: %w", err)
	}
	if a.ws, err = config.NewWebSocket(); err != nil {
		return fmt.Errorf("failed to read ws config: %w", err)
	}
	board, err := config.NewBoard()
	if err != nil {
		return fmt.Errorf("failed to read board config: %w", err)
	}
	a.board = *board
	return nil
}

func (a *App) handler() http.Handler {
	var h http.Handler = a.router
	if base := config.BasePath(); base != "" {
		h = http.StripPrefix(base, h)
	}
	return middleware.Wrap(
		h,
		middleware.Cors(config.AllowedOrigins()),
		middleware.Auth(a.logger, a.cookies),
		middleware.Logging(a.logger),
	)
}

const minPruneInterval = 10 * time.Millisecond

// pruneSessions drops games nobody touched within ttl until ctx is done.
// The sweep interval is a quarter of ttl, never below minPruneInterval.
func (a *App) pruneSessions(ctx context.Context, ttl time.Duration) {
	ticker := time.NewTicker(max(ttl/4, minPruneInterval))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := a.store.Prune(now.Add(-ttl)); n > 0 {
				a.logger.Info("pruned idle game sessions", slog.Int("count", n))
			}
		}
	}
}

func (a *App) Start(ctx context.Context) error {
	if err := a.configure(); err != nil {
		return err
	}
	if err := a.connect(ctx); err != nil {
		return err
	}
	if a.db != nil {
		defer a.db.Close()
	}

	a.loadRoutes()

	port := config.Port()
	server := &http.Server{
		Addr:         port,
		Handler:      a.handler(),
		ReadTimeout:  time.Second * 15,
		WriteTimeout: time.Second * 15,
		IdleTimeout:  time.Second * 60,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info(fmt.Sprintf("minesweeper server listening at http://localhost%s", port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
		defer cancel()
		return server.Shutdown(sCtx)
	})
	g.Go(func() error {
		a.pruneSessions(gCtx, config.SessionTTL())
		return nil
	})

	return g.Wait()
}
