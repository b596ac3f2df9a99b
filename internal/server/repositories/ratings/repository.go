package ratings

import (
	"context"

	"github.com/j-prt/rating-app-backend/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, rating *models.Rating) (*models.Rating, error)
	GetByID(ctx context.Context, id int64) (*models.Rating, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.RatingWithTitle, error)
	ListByItem(ctx context.Context, itemID int64) ([]*models.Rating, error)
	Delete(ctx context.Context, id int64) error
	DeleteByItem(ctx context.Context, itemID int64) error
}
