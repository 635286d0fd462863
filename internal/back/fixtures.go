package back

import (
	"time"

	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v4"
)

// LoadFixtures creates default data for quick testing during development.
func (b *Back) LoadFixtures() error {
	teams := []Team{
		NewTeam("Kokiri Forest"),
		NewTeam("Goron City"),
		NewTeam("Zora's Domain"),
		NewTeam("Gerudo Valley"),
	}

	day := func(n int) time.Time {
		return time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	}

	tournament := NewTournament(
		"Spring Invitational",
		null.TimeFrom(day(0)),
		null.TimeFrom(day(7)),
	)

	matches := []Match{
		NewMatch(tournament, teams[0], teams[1], day(0), 2, 1),
		NewMatch(tournament, teams[2], teams[3], day(0), 0, 0),
		NewMatch(tournament, teams[0], teams[2], day(1), 1, 3),
		NewMatch(tournament, teams[1], teams[3], day(2), 2, 2),
	}

	return b.transaction(func(tx *sqlx.Tx) error {
		for k := range teams {
			if err := teams[k].insert(tx); err != nil {
				return err
			}
		}

		if err := tournament.insert(tx); err != nil {
			return err
		}

		for k := range matches {
			if err := matches[k].insert(tx); err != nil {
				return err
			}
		}

		return b.recompute(tx)
	})
}
