// Package ratings provides the PostgreSQL-backed repository for ratings.
package ratings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/j-prt/rating-app-backend/internal/common"
	"github.com/j-prt/rating-app-backend/internal/dbx"
	"github.com/j-prt/rating-app-backend/internal/server/models"
)

const itemUserConstraint = "ratings_item_user_key"

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the rating and returns it with the assigned id. The unique
// (item_id, user_id) constraint serializes concurrent inserts for the same
// pair; the losing insert surfaces as ErrDuplicateRating, never a raw
// storage error.
func (r *PostgresRepository) Create(ctx context.Context, rating *models.Rating) (*models.Rating, error) {

	query :=
		`INSERT INTO ratings (rating, description, user_id, item_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		rating.Value, rating.Description, rating.UserID, rating.ItemID).
		Scan(&rating.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch {
			case pgErr.Code == "23505" && pgErr.ConstraintName == itemUserConstraint:
				return nil, common.ErrDuplicateRating
			case pgErr.Code == "23503":
				// FK violation: the referenced item (or user) is gone.
				return nil, common.ErrorNotFound
			}
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rating, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Rating, error) {
	query :=
		`SELECT id, rating, description, user_id, item_id FROM ratings
		 WHERE id = $1
		 `

	rating := &models.Rating{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rating.ID, &rating.Value, &rating.Description, &rating.UserID, &rating.ItemID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rating, nil
}

// ListByUser returns every rating authored by userID, annotated with the
// rated item's title.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.RatingWithTitle, error) {
	query :=
		`SELECT r.id, r.rating, r.description, r.user_id, r.item_id, i.title
		 FROM ratings r
		 JOIN rating_items i ON i.id = r.item_id
		 WHERE r.user_id = $1
		 ORDER BY r.id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select ratings: %w", err)
	}
	defer rows.Close()

	var result []*models.RatingWithTitle
	for rows.Next() {
		var item models.RatingWithTitle
		if err := rows.Scan(
			&item.ID, &item.Value, &item.Description, &item.UserID, &item.ItemID,
			&item.ItemTitle,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) ListByItem(ctx context.Context, itemID int64) ([]*models.Rating, error) {
	query :=
		`SELECT id, rating, description, user_id, item_id FROM ratings
		 WHERE item_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to select ratings: %w", err)
	}
	defer rows.Close()

	var result []*models.Rating
	for rows.Next() {
		var item models.Rating
		if err := rows.Scan(
			&item.ID, &item.Value, &item.Description, &item.UserID, &item.ItemID,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM ratings WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteByItem(ctx context.Context, itemID int64) error {
	query := `DELETE FROM ratings WHERE item_id = $1`

	if _, err := r.db.ExecContext(ctx, query, itemID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
