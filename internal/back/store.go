package back

import (
	"context"
	"time"

	"elodie/internal/rating"
	"elodie/internal/util"

	"github.com/jmoiron/sqlx"
)

// ratingStore implements every store interface the rating engine consumes,
// bound to one transaction so a recomputation reads and writes a single
// consistent state.
type ratingStore struct {
	tx *sqlx.Tx
}

func (s ratingStore) Teams(ctx context.Context) ([]rating.Team, error) {
	var ret []rating.Team
	query := `SELECT ID, Name, Active FROM Team`
	if err := s.tx.SelectContext(ctx, &ret, query); err != nil {
		return nil, err
	}

	return ret, nil
}

func (s ratingStore) Results(ctx context.Context) ([]rating.Result, error) {
	var ret []rating.Result
	query := `SELECT Seq, Team1ID, Team2ID, PlayedAt, Score1, Score2 FROM Match`
	if err := s.tx.SelectContext(ctx, &ret, query); err != nil {
		return nil, err
	}

	return ret, nil
}

func (s ratingStore) ResultsThrough(ctx context.Context, cutoff time.Time) ([]rating.Result, error) {
	var ret []rating.Result
	query := `SELECT Seq, Team1ID, Team2ID, PlayedAt, Score1, Score2 FROM Match
        WHERE PlayedAt <= ?`
	if err := s.tx.SelectContext(ctx, &ret, query, util.NewTimeAsDate(cutoff)); err != nil {
		return nil, err
	}

	return ret, nil
}

func (s ratingStore) SaveSnapshot(ctx context.Context, snapshot rating.Snapshot) error {
	if _, err := s.tx.ExecContext(ctx, `DELETE FROM GlobalRating`); err != nil {
		return err
	}

	stmt, err := s.tx.PrepareContext(
		ctx,
		`INSERT INTO GlobalRating (TeamID, Rating, LastUpdated) VALUES (?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	computedAt := util.TimeAsTimestamp(snapshot.ComputedAt)
	for teamID, value := range snapshot.Ratings {
		if _, err := stmt.ExecContext(ctx, teamID, value, computedAt); err != nil {
			return err
		}
	}

	return nil
}

func getGlobalRatings(tx *sqlx.Tx) (map[util.UUIDAsBlob]float64, error) {
	var rows []struct {
		TeamID util.UUIDAsBlob
		Rating float64
	}
	if err := tx.Select(&rows, `SELECT TeamID, Rating FROM GlobalRating`); err != nil {
		return nil, err
	}

	ret := make(map[util.UUIDAsBlob]float64, len(rows))
	for k := range rows {
		ret[rows[k].TeamID] = rows[k].Rating
	}

	return ret, nil
}
