// Package rest exposes the ratings backend over HTTP/JSON using gin.
package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"github.com/j-prt/rating-app-backend/internal/logging"
	"github.com/j-prt/rating-app-backend/internal/server/config"
	"github.com/j-prt/rating-app-backend/internal/server/models"
)

// UserService is the identity surface the REST layer depends on.
type UserService interface {
	Register(ctx context.Context, email, username, password string, firstName, lastName *string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type ItemService interface {
	GetItem(ctx context.Context, id int64) (*models.Item, error)
}

type RatingService interface {
	CreateRating(ctx context.Context, authorID int64, draft *models.Rating) (*models.Rating, error)
	SubmitItemAndRating(ctx context.Context, authorID int64, item *models.Item, rating *models.Rating) (*models.Item, *models.Rating, error)
	ListForUser(ctx context.Context, userID int64) ([]*models.RatingWithTitle, error)
	DeleteRating(ctx context.Context, requesterID, ratingID int64) error
	DeleteItem(ctx context.Context, requesterID, itemID int64) error
}

type ImageService interface {
	GetPresignedPutUrl(ctx context.Context) (string, string, error)
	GetItemImageURL(ctx context.Context, itemID int64) (string, error)
}

type RestServer struct {
	address   string
	logger    logging.Logger
	users     UserService
	items     ItemService
	ratings   RatingService
	images    ImageService
	jwtSecret []byte
	authCache *cache.Cache
}

func NewRestServer(cfg *config.Config, l logging.Logger,
	us UserService, is ItemService, rs RatingService, ims ImageService) *RestServer {
	return &RestServer{
		address:   cfg.EndpointAddr,
		logger:    l.With("module", "rest_server"),
		users:     us,
		items:     is,
		ratings:   rs,
		images:    ims,
		jwtSecret: []byte(cfg.SecretKey),
		authCache: cache.New(cfg.AuthCacheTTL, 2*cfg.AuthCacheTTL),
	}
}

func (s *RestServer) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// Public routes
	router.POST("/token", s.token)
	router.POST("/users", s.register)
	router.GET("/users/:id", s.getUser)

	// Protected routes
	router.GET("/status", s.requireAuth, s.status)
	router.GET("/users", s.requireAuth, s.listUsers)
	router.POST("/ratings", s.requireAuth, s.createRating)
	router.GET("/ratings", s.requireAuth, s.listRatings)
	router.DELETE("/ratings/:id", s.requireAuth, s.deleteRating)
	router.GET("/item/:id", s.requireAuth, s.getItem)
	router.DELETE("/item/:id", s.requireAuth, s.deleteItem)
	router.GET("/item/:id/image", s.requireAuth, s.getItemImage)
	router.POST("/images", s.requireAuth, s.createImageUpload)

	return router
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *RestServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.setupRouter(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping REST server...")
		if err := srv.Shutdown(context.Background()); err != nil {
			s.logger.Error(ctx, err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting REST server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
