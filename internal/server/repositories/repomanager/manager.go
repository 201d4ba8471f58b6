package repomanager

import (
	"context"
	"database/sql"

	"github.com/pentalign/backend/internal/dbx"
	"github.com/pentalign/backend/internal/server/repositories/refreshtokens"
	"github.com/pentalign/backend/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX so services can run
// several repository calls inside one transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
