package back

import "github.com/jmoiron/sqlx"

// createSchema bootstraps an empty database, every statement is idempotent.
// Match.Seq doubles as the chronological tie-break: AUTOINCREMENT guarantees
// it is unique, monotonically increasing, and never reused, even after
// deletions. PlayedAt is stored as a "2006-01-02" string so SQL comparisons
// on it are chronological.
func createSchema(tx *sqlx.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS "Team" (
			"ID" BLOB NOT NULL PRIMARY KEY,
			"CreatedAt" INTEGER NOT NULL,
			"Name" TEXT NOT NULL UNIQUE,
			"Active" BOOLEAN NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE IF NOT EXISTS "Tournament" (
			"ID" BLOB NOT NULL PRIMARY KEY,
			"CreatedAt" INTEGER NOT NULL,
			"Name" TEXT NOT NULL UNIQUE,
			"StartDate" DATETIME,
			"EndDate" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "Match" (
			"Seq" INTEGER PRIMARY KEY AUTOINCREMENT,
			"ID" BLOB NOT NULL UNIQUE,
			"TournamentID" BLOB NOT NULL REFERENCES "Tournament" ("ID") ON DELETE CASCADE,
			"Team1ID" BLOB NOT NULL REFERENCES "Team" ("ID") ON DELETE CASCADE,
			"Team2ID" BLOB NOT NULL REFERENCES "Team" ("ID") ON DELETE CASCADE,
			"PlayedAt" DATE NOT NULL,
			"Score1" INTEGER NOT NULL CHECK ("Score1" >= 0),
			"Score2" INTEGER NOT NULL CHECK ("Score2" >= 0),
			"CreatedAt" INTEGER NOT NULL,
			CHECK ("Team1ID" <> "Team2ID")
		)`,
		`CREATE INDEX IF NOT EXISTS "MatchPlayedAtIndex" ON "Match" ("PlayedAt")`,
		`CREATE TABLE IF NOT EXISTS "GlobalRating" (
			"TeamID" BLOB NOT NULL PRIMARY KEY REFERENCES "Team" ("ID") ON DELETE CASCADE,
			"Rating" REAL NOT NULL,
			"LastUpdated" INTEGER NOT NULL
		)`,
	}

	for _, v := range stmts {
		if _, err := tx.Exec(v); err != nil {
			return err
		}
	}

	return nil
}
