package back

import (
	"fmt"
	"time"

	"elodie/internal/util"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// A Match is one played result between two distinct teams. Seq is allocated
// by SQLite on insertion and orders same-day matches during recomputation,
// ID is the stable identity the outside world sees.
type Match struct {
	Seq       int64
	ID        util.UUIDAsBlob
	CreatedAt util.TimeAsTimestamp

	TournamentID util.UUIDAsBlob
	Team1ID      util.UUIDAsBlob
	Team2ID      util.UUIDAsBlob

	PlayedAt util.TimeAsDate
	Score1   int
	Score2   int
}

func NewMatch(tournament Tournament, team1, team2 Team, playedAt time.Time, score1, score2 int) Match {
	return Match{
		ID:           util.NewUUIDAsBlob(),
		CreatedAt:    util.TimeAsTimestamp(time.Now()),
		TournamentID: tournament.ID,
		Team1ID:      team1.ID,
		Team2ID:      team2.ID,
		PlayedAt:     util.NewTimeAsDate(playedAt),
		Score1:       score1,
		Score2:       score2,
	}
}

// insert writes the match and fills in its allocated Seq.
func (m *Match) insert(tx *sqlx.Tx) error {
	query, args, err := squirrel.Insert("Match").SetMap(squirrel.Eq{
		"ID":           m.ID,
		"CreatedAt":    m.CreatedAt,
		"TournamentID": m.TournamentID,
		"Team1ID":      m.Team1ID,
		"Team2ID":      m.Team2ID,
		"PlayedAt":     m.PlayedAt,
		"Score1":       m.Score1,
		"Score2":       m.Score2,
	}).ToSql()
	if err != nil {
		return err
	}

	res, err := tx.Exec(query, args...)
	if err != nil {
		return err
	}

	m.Seq, err = res.LastInsertId()
	return err
}

func getMatchBySeq(tx *sqlx.Tx, seq int64) (Match, error) {
	var ret Match
	query := `SELECT * FROM Match WHERE Match.Seq = ? LIMIT 1`
	if err := tx.Get(&ret, query, seq); err != nil {
		return Match{}, err
	}

	return ret, nil
}

func getMatchesByTournamentID(tx *sqlx.Tx, id util.UUIDAsBlob) ([]Match, error) {
	var ret []Match
	query := `SELECT * FROM Match WHERE Match.TournamentID = ?
        ORDER BY Match.PlayedAt ASC, Match.Seq ASC`
	if err := tx.Select(&ret, query, id); err != nil {
		return nil, err
	}

	return ret, nil
}

// ReportResult records a played match and folds it into the global ratings.
func (b *Back) ReportResult(
	tournamentName, team1Name, team2Name string,
	playedAt time.Time,
	score1, score2 int,
) (match Match, _ error) {
	if score1 < 0 || score2 < 0 {
		return Match{}, util.ErrPublic("scores cannot be negative")
	}

	if team1Name == team2Name {
		return Match{}, util.ErrPublic("a team cannot play against itself")
	}

	if err := b.transaction(func(tx *sqlx.Tx) error {
		tournament, err := getTournamentByName(tx, tournamentName)
		if err != nil {
			return util.ErrPublic(fmt.Sprintf("there is no tournament named `%s`", tournamentName))
		}

		team1, err := getTeamByName(tx, team1Name)
		if err != nil {
			return util.ErrPublic(fmt.Sprintf("there is no team named `%s`", team1Name))
		}

		team2, err := getTeamByName(tx, team2Name)
		if err != nil {
			return util.ErrPublic(fmt.Sprintf("there is no team named `%s`", team2Name))
		}

		if team1.ID == team2.ID {
			return util.ErrPublic("a team cannot play against itself")
		}

		match = NewMatch(tournament, team1, team2, playedAt, score1, score2)
		if err := match.insert(tx); err != nil {
			return err
		}

		return b.recompute(tx)
	}); err != nil {
		return Match{}, err
	}

	return match, nil
}

// DeleteResult removes a match from history, every rating is recomputed as
// if it never happened.
func (b *Back) DeleteResult(seq int64) error {
	return b.transaction(func(tx *sqlx.Tx) error {
		match, err := getMatchBySeq(tx, seq)
		if err != nil {
			return util.ErrPublic(fmt.Sprintf("there is no match #%d", seq))
		}

		if _, err := tx.Exec(`DELETE FROM Match WHERE Seq = ?`, match.Seq); err != nil {
			return err
		}

		return b.recompute(tx)
	})
}

func (b *Back) GetMatchBySeq(seq int64) (match Match, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) (err error) {
		match, err = getMatchBySeq(tx, seq)
		return err
	}); err != nil {
		return Match{}, err
	}

	return match, nil
}

// GetTournamentMatches returns a tournament's history in the order the
// ratings replay it.
func (b *Back) GetTournamentMatches(name string) (matches []Match, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) error {
		tournament, err := getTournamentByName(tx, name)
		if err != nil {
			return util.ErrPublic(fmt.Sprintf("there is no tournament named `%s`", name))
		}

		matches, err = getMatchesByTournamentID(tx, tournament.ID)
		return err
	}); err != nil {
		return nil, err
	}

	return matches, nil
}
