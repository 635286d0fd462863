// Package back implements the service around the rating engine: it owns the
// teams, tournaments, and match results in SQLite, recomputes the global
// rating snapshot on every write that affects it, and serves leaderboards
// and standings from the persisted snapshot.
package back

import (
	"fmt"

	"elodie/internal/config"

	"github.com/jmoiron/sqlx"
)

type Back struct {
	db     *sqlx.DB
	config *config.Config
}

func New(c *config.Config) (*Back, error) {
	// Why even bother converting names? A single greppable string across all
	// your source code is better than any odd conversion scheme you could ever
	// come up with.
	// HACK: This is global but putting this in init() makes test ugly.
	// As only the Back relies on the DB, this seems like an okay-ish place.
	sqlx.NameMapper = func(v string) string { return v }

	db, err := sqlx.Connect("sqlite3", c.Database)
	if err != nil {
		return nil, err
	}

	// A single connection means a single writer, which is all SQLite can do
	// anyway and exactly the serialization the recompute-on-write discipline
	// needs: no two recomputations can ever race for the snapshot.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		return nil, fmt.Errorf("unable to enable foreign keys: %w", err)
	}

	b := &Back{
		db:     db,
		config: c,
	}

	if err := b.transaction(createSchema); err != nil {
		return nil, fmt.Errorf("unable to create schema: %w", err)
	}

	return b, nil
}

type transactionCallback func(*sqlx.Tx) error

func (b *Back) transaction(cb transactionCallback) error {
	tx, err := b.db.Beginx()
	if err != nil {
		return err
	}

	if err := cb(tx); err != nil {
		if err2 := tx.Rollback(); err2 != nil {
			return fmt.Errorf("rollback error: %s\noriginal error: %s", err2, err)
		}

		return err
	}

	return tx.Commit()
}
