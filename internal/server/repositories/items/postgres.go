// Package items provides the PostgreSQL-backed repository for rating items.
package items

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

const locationConstraint = "rating_items_location_check"

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the item and returns it with the assigned id and
// time_created. The location CHECK constraint acts as the storage backstop
// for the both-or-neither rule; violations surface as ErrIncompleteLocation.
func (r *PostgresRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {

	query :=
		`INSERT INTO rating_items (user_id, category, title, image, address, latitude, longitude)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, time_created
		 `

	err := r.db.QueryRowContext(ctx, query,
		item.UserID, item.Category, item.Title, item.Image, item.Address,
		item.Latitude, item.Longitude).
		Scan(&item.ID, &item.TimeCreated)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23514" && pgErr.ConstraintName == locationConstraint {
			return nil, common.ErrIncompleteLocation
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	query :=
		`SELECT id, user_id, category, title, image, address, latitude, longitude,
		        time_created, time_updated
		 FROM rating_items
		 WHERE id = $1
		 `

	item := &models.Item{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.UserID, &item.Category, &item.Title, &item.Image,
		&item.Address, &item.Latitude, &item.Longitude,
		&item.TimeCreated, &item.TimeUpdated)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

// Delete removes the item row. A foreign-key violation means ratings still
// reference the item (e.g. one committed after the caller's check) and
// surfaces as ErrItemShared rather than a raw storage error.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM rating_items WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return common.ErrItemShared
		}
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
