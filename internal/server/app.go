// Package server initializes and runs the ratings backend: it connects to
// PostgreSQL, applies schema migrations, wires the services, and serves the
// REST API until the process is signalled to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"github.com/j-prt/rating-app-backend/internal/logging"
	"github.com/j-prt/rating-app-backend/internal/server/auth"
	"github.com/j-prt/rating-app-backend/internal/server/config"
	"github.com/j-prt/rating-app-backend/internal/server/repositories/repomanager"
	"github.com/j-prt/rating-app-backend/internal/server/rest"
	"github.com/j-prt/rating-app-backend/internal/server/services"
)

type App struct {
	config        *config.Config
	logger        logging.Logger
	db            *sql.DB
	userService   *services.UserService
	itemService   *services.ItemService
	ratingService *services.RatingService
	imageService  *services.ImageService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	hasher := auth.NewHasher(runtime.NumCPU(), cfg.BcryptCost)

	us := services.NewUserService(db, m, hasher, cfg)
	is := services.NewItemService(db, m)
	rs := services.NewRatingService(db, m)
	ims := services.NewImageService(db, m, cfg)

	return &App{
		config:        cfg,
		logger:        logger,
		db:            db,
		userService:   us,
		itemService:   is,
		ratingService: rs,
		imageService:  ims,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startRestServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := rest.NewRestServer(app.config, app.logger,
		app.userService, app.itemService, app.ratingService, app.imageService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startRestServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
