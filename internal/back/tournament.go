package back

import (
	"fmt"
	"strings"
	"time"

	"elodie/internal/util"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v4"
)

// A Tournament groups matches, nothing more: ratings are global across all
// tournaments. The dates are optional, StartDate is what the standings use
// to seed "rating entering the tournament".
type Tournament struct {
	ID        util.UUIDAsBlob
	CreatedAt util.TimeAsTimestamp
	Name      string
	StartDate null.Time
	EndDate   null.Time
}

func NewTournament(name string, start, end null.Time) Tournament {
	return Tournament{
		ID:        util.NewUUIDAsBlob(),
		CreatedAt: util.TimeAsTimestamp(time.Now()),
		Name:      name,
		StartDate: start,
		EndDate:   end,
	}
}

func (t *Tournament) insert(tx *sqlx.Tx) error {
	query, args, err := squirrel.Insert("Tournament").SetMap(squirrel.Eq{
		"ID":        t.ID,
		"CreatedAt": t.CreatedAt,
		"Name":      t.Name,
		"StartDate": t.StartDate,
		"EndDate":   t.EndDate,
	}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func getTournamentByName(tx *sqlx.Tx, name string) (Tournament, error) {
	var ret Tournament
	query := `SELECT * FROM Tournament WHERE Tournament.Name = ? LIMIT 1`
	if err := tx.Get(&ret, query, name); err != nil {
		return Tournament{}, err
	}

	return ret, nil
}

func getTournaments(tx *sqlx.Tx) ([]Tournament, error) {
	var ret []Tournament
	query := `SELECT * FROM Tournament ORDER BY Tournament.CreatedAt ASC`
	if err := tx.Select(&ret, query); err != nil {
		return nil, err
	}

	return ret, nil
}

func (b *Back) CreateTournament(name string, start, end null.Time) (tournament Tournament, _ error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Tournament{}, util.ErrPublic("a tournament needs a non-empty name")
	}

	if start.Valid && end.Valid && end.Time.Before(start.Time) {
		return Tournament{}, util.ErrPublic("a tournament cannot end before it starts")
	}

	if err := b.transaction(func(tx *sqlx.Tx) error {
		if _, err := getTournamentByName(tx, name); err == nil {
			return util.ErrPublic(fmt.Sprintf("the name `%s` is taken already", name))
		}

		tournament = NewTournament(name, start, end)
		return tournament.insert(tx)
	}); err != nil {
		return Tournament{}, err
	}

	return tournament, nil
}

// RemoveTournament hard-deletes a tournament and, through the cascade, all
// of its matches, which makes the snapshot stale.
func (b *Back) RemoveTournament(name string) error {
	return b.transaction(func(tx *sqlx.Tx) error {
		tournament, err := getTournamentByName(tx, name)
		if err != nil {
			return util.ErrPublic(fmt.Sprintf("there is no tournament named `%s`", name))
		}

		if _, err := tx.Exec(`DELETE FROM Tournament WHERE ID = ?`, tournament.ID); err != nil {
			return err
		}

		return b.recompute(tx)
	})
}

func (b *Back) GetTournaments() (tournaments []Tournament, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) (err error) {
		tournaments, err = getTournaments(tx)
		return err
	}); err != nil {
		return nil, err
	}

	return tournaments, nil
}
