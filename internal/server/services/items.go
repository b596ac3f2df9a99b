package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/j-prt/rating-app-backend/internal/common"
	"github.com/j-prt/rating-app-backend/internal/server/models"
	"github.com/j-prt/rating-app-backend/internal/server/repositories/repomanager"
)

// ItemService creates and reads rating items. Items are shared: any
// authenticated caller may read any item.
type ItemService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewItemService(db *sql.DB, m repomanager.RepositoryManager) *ItemService {
	return &ItemService{db: db, repomanager: m}
}

// CreateItem persists a new item owned by ownerID. The latitude/longitude
// pair must be both set or both absent; a half-set pair is rejected before
// the insert (the table CHECK constraint backstops the same rule).
func (s *ItemService) CreateItem(ctx context.Context, ownerID int64, draft *models.Item) (*models.Item, error) {

	draft.UserID = ownerID

	if !draft.HasCompleteLocation() {
		return nil, common.ErrIncompleteLocation
	}

	repo := s.repomanager.Items(s.db)

	item, err := repo.Create(ctx, draft)
	if err != nil {
		if errors.Is(err, common.ErrIncompleteLocation) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating item: %w", err)
	}

	return item, nil
}

// GetItem returns a single item or common.ErrorNotFound.
func (s *ItemService) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	repo := s.repomanager.Items(s.db)

	item, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error getting item: %w", err)
	}
	return item, nil
}
