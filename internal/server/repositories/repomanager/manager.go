package repomanager

import (
	"context"
	"database/sql"

	"github.com/j-prt/rating-app-backend/internal/dbx"
	"github.com/j-prt/rating-app-backend/internal/server/repositories/items"
	"github.com/j-prt/rating-app-backend/internal/server/repositories/ratings"
	"github.com/j-prt/rating-app-backend/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so services can run
// the same repository code against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Items(db dbx.DBTX) items.Repository
	Ratings(db dbx.DBTX) ratings.Repository
}
