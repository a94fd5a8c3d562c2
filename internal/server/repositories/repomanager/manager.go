package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/voicenotes/internal/dbx"
	"github.com/dmitrijs2005/voicenotes/internal/server/repositories/notes"
	"github.com/dmitrijs2005/voicenotes/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to either the pool or a
// transaction, and applies schema migrations.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Notes(db dbx.DBTX) notes.Repository
}
