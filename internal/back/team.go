package back

import (
	"fmt"
	"strings"
	"time"

	"elodie/internal/util"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// A Team is a competitor, its rating lives in GlobalRating and is derived
// from the match history, never stored on the team itself.
type Team struct {
	ID        util.UUIDAsBlob
	CreatedAt util.TimeAsTimestamp
	Name      string
	Active    bool
}

func NewTeam(name string) Team {
	return Team{
		ID:        util.NewUUIDAsBlob(),
		CreatedAt: util.TimeAsTimestamp(time.Now()),
		Name:      name,
		Active:    true,
	}
}

func (t *Team) insert(tx *sqlx.Tx) error {
	query, args, err := squirrel.Insert("Team").SetMap(squirrel.Eq{
		"ID":        t.ID,
		"CreatedAt": t.CreatedAt,
		"Name":      t.Name,
		"Active":    t.Active,
	}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func (t *Team) update(tx *sqlx.Tx) error {
	query, args, err := squirrel.Update("Team").SetMap(squirrel.Eq{
		"Name":   t.Name,
		"Active": t.Active,
	}).Where("Team.ID = ?", t.ID).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func getTeamByName(tx *sqlx.Tx, name string) (Team, error) {
	var ret Team
	query := `SELECT * FROM Team WHERE Team.Name = ? LIMIT 1`
	if err := tx.Get(&ret, query, name); err != nil {
		return Team{}, err
	}

	return ret, nil
}

func getTeams(tx *sqlx.Tx) ([]Team, error) {
	var ret []Team
	query := `SELECT * FROM Team ORDER BY Team.Name ASC`
	if err := tx.Select(&ret, query); err != nil {
		return nil, err
	}

	return ret, nil
}

func getTeamsByID(tx *sqlx.Tx) (map[util.UUIDAsBlob]Team, error) {
	teams, err := getTeams(tx)
	if err != nil {
		return nil, err
	}

	ret := make(map[util.UUIDAsBlob]Team, len(teams))
	for k := range teams {
		ret[teams[k].ID] = teams[k]
	}

	return ret, nil
}

func (b *Back) CreateTeam(name string) (team Team, _ error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Team{}, util.ErrPublic("a team needs a non-empty name")
	}

	if err := b.transaction(func(tx *sqlx.Tx) error {
		if _, err := getTeamByName(tx, name); err == nil {
			return util.ErrPublic(fmt.Sprintf("the name `%s` is taken already", name))
		}

		team = NewTeam(name)
		if err := team.insert(tx); err != nil {
			return err
		}

		// The newcomer must show up in the snapshot at the base rating.
		return b.recompute(tx)
	}); err != nil {
		return Team{}, err
	}

	return team, nil
}

// SetTeamActive hides a team from the leaderboard without touching its
// history: its matches keep counting, so no recomputation is needed.
func (b *Back) SetTeamActive(name string, active bool) error {
	return b.transaction(func(tx *sqlx.Tx) error {
		team, err := getTeamByName(tx, name)
		if err != nil {
			return util.ErrPublic(fmt.Sprintf("there is no team named `%s`", name))
		}

		if team.Active == active {
			if active {
				return util.ErrPublic("this team is active already")
			}
			return util.ErrPublic("this team is inactive already")
		}

		team.Active = active
		return team.update(tx)
	})
}

// RemoveTeam hard-deletes a team, its matches cascade away and every other
// team's rating is recomputed as if those matches never happened.
func (b *Back) RemoveTeam(name string) error {
	return b.transaction(func(tx *sqlx.Tx) error {
		team, err := getTeamByName(tx, name)
		if err != nil {
			return util.ErrPublic(fmt.Sprintf("there is no team named `%s`", name))
		}

		if _, err := tx.Exec(`DELETE FROM Team WHERE ID = ?`, team.ID); err != nil {
			return err
		}

		return b.recompute(tx)
	})
}

func (b *Back) GetTeams() (teams []Team, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) (err error) {
		teams, err = getTeams(tx)
		return err
	}); err != nil {
		return nil, err
	}

	return teams, nil
}
