package items

import (
	"context"

	"github.com/j-prt/rating-app-backend/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
	GetByID(ctx context.Context, id int64) (*models.Item, error)
	Delete(ctx context.Context, id int64) error
}
