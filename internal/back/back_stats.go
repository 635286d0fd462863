package back

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"elodie/internal/util"

	"github.com/jmoiron/sqlx"
)

type LeaderboardEntry struct {
	TeamID util.UUIDAsBlob
	Name   string
	Rating float64

	Wins   int
	Draws  int
	Losses int
}

// Leaderboard returns every active team with its current global rating and
// all-time tallies, best rating first. It reads the persisted snapshot and
// recomputes nothing.
func (b *Back) Leaderboard() (leaderboard []LeaderboardEntry, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) error {
		query := `SELECT
            Team.ID AS TeamID, Team.Name AS Name, GlobalRating.Rating AS Rating,
            (
                SELECT COUNT(*) FROM Match
                WHERE (Match.Team1ID = Team.ID AND Match.Score1 > Match.Score2)
                   OR (Match.Team2ID = Team.ID AND Match.Score2 > Match.Score1)
            ) AS Wins,
            (
                SELECT COUNT(*) FROM Match
                WHERE (Match.Team1ID = Team.ID OR Match.Team2ID = Team.ID)
                  AND Match.Score1 = Match.Score2
            ) AS Draws,
            (
                SELECT COUNT(*) FROM Match
                WHERE (Match.Team1ID = Team.ID AND Match.Score1 < Match.Score2)
                   OR (Match.Team2ID = Team.ID AND Match.Score2 < Match.Score1)
            ) AS Losses
        FROM Team
        INNER JOIN GlobalRating ON (GlobalRating.TeamID = Team.ID)
        WHERE Team.Active = 1
        ORDER BY GlobalRating.Rating DESC, Team.Name ASC`

		return tx.Select(&leaderboard, query)
	}); err != nil {
		return nil, err
	}

	return leaderboard, nil
}

type StandingsEntry struct {
	TeamID util.UUIDAsBlob
	Name   string

	Wins   int
	Draws  int
	Losses int
	Points float64

	// EnteringRating is the global rating the team carried into the
	// tournament, CurrentRating its global rating right now.
	EnteringRating float64
	CurrentRating  float64
}

// TournamentStandings tallies one tournament and seeds every row with the
// team's global rating entering the tournament, so a reader can tell how the
// tournament moved the needle.
func (b *Back) TournamentStandings(name string) (standings []StandingsEntry, _ error) {
	start := time.Now()
	defer func() { log.Printf("info: computed standings in %s", time.Since(start)) }()

	if err := b.transaction(func(tx *sqlx.Tx) error {
		tournament, err := getTournamentByName(tx, name)
		if err != nil {
			return util.ErrPublic(fmt.Sprintf("there is no tournament named `%s`", name))
		}

		matches, err := getMatchesByTournamentID(tx, tournament.ID)
		if err != nil {
			return fmt.Errorf("unable to fetch matches: %w", err)
		}

		teams, err := getTeamsByID(tx)
		if err != nil {
			return fmt.Errorf("unable to fetch teams: %w", err)
		}

		current, err := getGlobalRatings(tx)
		if err != nil {
			return fmt.Errorf("unable to fetch current ratings: %w", err)
		}

		entering := make(map[util.UUIDAsBlob]float64)
		if cutoff, ok := standingsCutoff(tournament, matches); ok {
			snapshot, err := b.engine(tx).RecomputeAsOf(context.Background(), cutoff)
			if err != nil {
				return fmt.Errorf("unable to compute entering ratings: %w", err)
			}
			entering = snapshot.Ratings
		}

		standings = tallyStandings(matches, teams, entering, current, b.config.BaseRating)
		return nil
	}); err != nil {
		return nil, err
	}

	return standings, nil
}

// standingsCutoff is the last day that does not count as part of the
// tournament: the day before its start date, or the day before its first
// match when no start date was set. A tournament with neither has nothing
// entering it.
func standingsCutoff(tournament Tournament, matches []Match) (time.Time, bool) {
	if tournament.StartDate.Valid {
		return util.DayOf(tournament.StartDate.Time).AddDate(0, 0, -1), true
	}

	if len(matches) > 0 {
		return matches[0].PlayedAt.Time().AddDate(0, 0, -1), true
	}

	return time.Time{}, false
}

func tallyStandings(
	matches []Match,
	teams map[util.UUIDAsBlob]Team,
	entering, current map[util.UUIDAsBlob]float64,
	base float64,
) []StandingsEntry {
	index := make(map[util.UUIDAsBlob]*StandingsEntry)
	entry := func(id util.UUIDAsBlob) *StandingsEntry {
		e, ok := index[id]
		if !ok {
			e = &StandingsEntry{
				TeamID:         id,
				Name:           teams[id].Name,
				EnteringRating: base,
				CurrentRating:  current[id],
			}
			if v, ok := entering[id]; ok {
				e.EnteringRating = v
			}
			index[id] = e
		}

		return e
	}

	for k := range matches {
		team1, team2 := entry(matches[k].Team1ID), entry(matches[k].Team2ID)

		switch {
		case matches[k].Score1 > matches[k].Score2:
			team1.Wins++
			team2.Losses++
		case matches[k].Score1 < matches[k].Score2:
			team1.Losses++
			team2.Wins++
		default:
			team1.Draws++
			team2.Draws++
		}
	}

	ret := make([]StandingsEntry, 0, len(index))
	for _, e := range index {
		e.Points = float64(e.Wins) + 0.5*float64(e.Draws)
		ret = append(ret, *e)
	}

	sort.Slice(ret, func(i, j int) bool {
		if ret[i].CurrentRating == ret[j].CurrentRating {
			return ret[i].Name < ret[j].Name
		}
		return ret[i].CurrentRating > ret[j].CurrentRating
	})

	return ret
}
