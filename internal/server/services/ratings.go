package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/j-prt/rating-app-backend/internal/common"
	"github.com/j-prt/rating-app-backend/internal/dbx"
	"github.com/j-prt/rating-app-backend/internal/server/models"
	"github.com/j-prt/rating-app-backend/internal/server/repositories/repomanager"
)

// RatingService manages ratings and the item/rating operations that must
// stay consistent with each other (submit item+rating, delete item).
type RatingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewRatingService(db *sql.DB, m repomanager.RepositoryManager) *RatingService {
	return &RatingService{db: db, repomanager: m}
}

// CreateRating records authorID's rating of an existing item. A second
// rating of the same item by the same author surfaces as ErrDuplicateRating,
// a missing item as ErrorNotFound.
func (s *RatingService) CreateRating(ctx context.Context, authorID int64, draft *models.Rating) (*models.Rating, error) {

	draft.UserID = authorID

	repo := s.repomanager.Ratings(s.db)

	rating, err := repo.Create(ctx, draft)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateRating) || errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating rating: %w", err)
	}

	return rating, nil
}

// SubmitItemAndRating creates a new item together with its author's first
// rating in one transaction. Either both rows exist afterwards or neither
// does.
func (s *RatingService) SubmitItemAndRating(ctx context.Context, authorID int64, itemDraft *models.Item, ratingDraft *models.Rating) (*models.Item, *models.Rating, error) {

	itemDraft.UserID = authorID
	ratingDraft.UserID = authorID

	if !itemDraft.HasCompleteLocation() {
		return nil, nil, common.ErrIncompleteLocation
	}

	var (
		item   *models.Item
		rating *models.Rating
	)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error

		item, err = s.repomanager.Items(tx).Create(ctx, itemDraft)
		if err != nil {
			return err
		}

		ratingDraft.ItemID = item.ID
		rating, err = s.repomanager.Ratings(tx).Create(ctx, ratingDraft)
		return err
	})

	if err != nil {
		if errors.Is(err, common.ErrIncompleteLocation) || errors.Is(err, common.ErrDuplicateRating) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("error submitting item with rating: %w", err)
	}

	return item, rating, nil
}

// ListForUser returns every rating authored by userID, each annotated with
// the rated item's title.
func (s *RatingService) ListForUser(ctx context.Context, userID int64) ([]*models.RatingWithTitle, error) {
	repo := s.repomanager.Ratings(s.db)

	result, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing ratings: %w", err)
	}
	return result, nil
}

// DeleteRating removes a rating. Only its author may delete it; anyone
// else gets ErrForbidden.
func (s *RatingService) DeleteRating(ctx context.Context, requesterID, ratingID int64) error {
	repo := s.repomanager.Ratings(s.db)

	rating, err := repo.GetByID(ctx, ratingID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return fmt.Errorf("error getting rating: %w", err)
	}

	if rating.UserID != requesterID {
		return common.ErrForbidden
	}

	if err := repo.Delete(ctx, ratingID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return fmt.Errorf("error deleting rating: %w", err)
	}
	return nil
}

// DeleteItem removes an item the requester owns, provided nobody else has
// rated it. The requester's own lone rating is removed in the same
// transaction. An item with ratings from other users is shared and cannot
// be deleted (ErrItemShared).
func (s *RatingService) DeleteItem(ctx context.Context, requesterID, itemID int64) error {

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		itemRepo := s.repomanager.Items(tx)
		ratingRepo := s.repomanager.Ratings(tx)

		item, err := itemRepo.GetByID(ctx, itemID)
		if err != nil {
			return err
		}

		if item.UserID != requesterID {
			return common.ErrForbidden
		}

		ratings, err := ratingRepo.ListByItem(ctx, itemID)
		if err != nil {
			return err
		}

		if len(ratings) > 1 {
			return common.ErrItemShared
		}
		if len(ratings) == 1 && ratings[0].UserID != requesterID {
			return common.ErrItemShared
		}

		if len(ratings) == 1 {
			if err := ratingRepo.DeleteByItem(ctx, itemID); err != nil {
				return err
			}
		}

		return itemRepo.Delete(ctx, itemID)
	})

	if err != nil {
		if errors.Is(err, common.ErrorNotFound) ||
			errors.Is(err, common.ErrForbidden) ||
			errors.Is(err, common.ErrItemShared) {
			return err
		}
		return fmt.Errorf("error deleting item: %w", err)
	}
	return nil
}
