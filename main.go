package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	"elodie/internal/back"
	"elodie/internal/config"
	"elodie/internal/util"

	_ "github.com/mattn/go-sqlite3"
	"gopkg.in/guregu/null.v4"
)

// Version holds the build-time version string.
var Version = "unknown" // nolint:gochecknoglobals

func main() {
	flag.Parse()

	if err := run(flag.Arg(0)); err != nil {
		if errors.Is(err, util.ErrPublic("")) {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			os.Exit(1)
		}

		log.Fatalf("error: %s", err)
	}
}

func run(command string) error { // nolint:funlen,gocyclo
	switch command {
	case "version":
		fmt.Fprintf(os.Stdout, "elodie %s\n", Version)
		return nil
	case "help":
		fmt.Fprint(os.Stdout, help())
		return nil
	case "":
		fmt.Fprint(os.Stderr, help())
		os.Exit(1)
	}

	conf, err := config.NewFromUserConfigDir()
	if err != nil {
		return err
	}

	b, err := back.New(conf)
	if err != nil {
		return err
	}

	switch command {
	case "dev:fixtures":
		return b.LoadFixtures()
	case "team:add":
		team, err := b.CreateTeam(flag.Arg(1))
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "created team `%s` (%s)\n", team.Name, team.ID)
		return nil
	case "team:remove":
		return b.RemoveTeam(flag.Arg(1))
	case "team:activate":
		return b.SetTeamActive(flag.Arg(1), true)
	case "team:deactivate":
		return b.SetTeamActive(flag.Arg(1), false)
	case "tournament:add":
		return addTournament(b, flag.Arg(1), flag.Arg(2), flag.Arg(3))
	case "tournament:remove":
		return b.RemoveTournament(flag.Arg(1))
	case "match:report":
		return reportMatch(b, flag.Args()[1:])
	case "match:delete":
		seq, err := strconv.ParseInt(flag.Arg(1), 10, 64)
		if err != nil {
			return util.ErrPublic("the match id must be an integer")
		}
		return b.DeleteResult(seq)
	case "recompute":
		snapshot, err := b.Recompute()
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "recomputed the ratings of %d teams\n", len(snapshot.Ratings))
		return nil
	case "leaderboard":
		return printLeaderboard(b)
	case "asof":
		return printRatingsAsOf(b, flag.Arg(1))
	case "standings":
		return printStandings(b, flag.Arg(1))
	default:
		fmt.Fprint(os.Stderr, help())
		os.Exit(1)
		return nil
	}
}

func help() string {
	return fmt.Sprintf(`
elodie keeps global Elo ratings for teams from the match results recorded
inside tournaments.

Usage: %[1]s COMMAND [ARGS…]

COMMANDS
    team:add NAME                   register a new team at the base rating
    team:remove NAME                remove a team and all its matches
    team:activate NAME              put a team back on the leaderboard
    team:deactivate NAME            hide a team from the leaderboard
    tournament:add NAME [START [END]]
                                    create a tournament, dates as 2006-01-02
    tournament:remove NAME          remove a tournament and all its matches
    match:report TOURNAMENT TEAM1 TEAM2 DATE SCORE1 SCORE2
                                    record a played match
    match:delete ID                 delete a match by its id
    leaderboard                     show the current global leaderboard
    standings TOURNAMENT            show the standings of one tournament
    asof DATE                       show the ratings as of end of that day
    recompute                       recompute and persist all ratings
    dev:fixtures                    create default data for quick testing
    help                            display this help
    version                         display the current version
`,
		os.Args[0],
	)
}

func parseDate(str string) (time.Time, error) {
	date, err := time.ParseInLocation(util.DateLayout, str, time.UTC)
	if err != nil {
		return time.Time{}, util.ErrPublic(fmt.Sprintf("`%s` is not a %s date", str, util.DateLayout))
	}

	return date, nil
}

func addTournament(b *back.Back, name, startStr, endStr string) error {
	var start, end null.Time

	if startStr != "" {
		date, err := parseDate(startStr)
		if err != nil {
			return err
		}
		start = null.TimeFrom(date)
	}

	if endStr != "" {
		date, err := parseDate(endStr)
		if err != nil {
			return err
		}
		end = null.TimeFrom(date)
	}

	tournament, err := b.CreateTournament(name, start, end)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "created tournament `%s` (%s)\n", tournament.Name, tournament.ID)

	return nil
}

func reportMatch(b *back.Back, args []string) error {
	if len(args) != 6 {
		return util.ErrPublic("expected: match:report TOURNAMENT TEAM1 TEAM2 DATE SCORE1 SCORE2")
	}

	playedAt, err := parseDate(args[3])
	if err != nil {
		return err
	}

	score1, err := strconv.Atoi(args[4])
	if err != nil {
		return util.ErrPublic("scores must be integers")
	}
	score2, err := strconv.Atoi(args[5])
	if err != nil {
		return util.ErrPublic("scores must be integers")
	}

	match, err := b.ReportResult(args[0], args[1], args[2], playedAt, score1, score2)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "recorded match #%d\n", match.Seq)

	return nil
}

func printLeaderboard(b *back.Back) error {
	leaderboard, err := b.Leaderboard()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTEAM\tRATING\tW\tD\tL")
	for k, v := range leaderboard {
		fmt.Fprintf(
			w, "%d\t%s\t%.0f\t%d\t%d\t%d\n",
			k+1, v.Name, v.Rating, v.Wins, v.Draws, v.Losses,
		)
	}

	return w.Flush()
}

func printRatingsAsOf(b *back.Back, dateStr string) error {
	cutoff, err := parseDate(dateStr)
	if err != nil {
		return err
	}

	snapshot, err := b.RatingsAsOf(cutoff)
	if err != nil {
		return err
	}

	teams, err := b.GetTeams()
	if err != nil {
		return err
	}
	sort.Slice(teams, func(i, j int) bool {
		return snapshot.Ratings[teams[i].ID] > snapshot.Ratings[teams[j].ID]
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintf(w, "TEAM\tRATING AS OF %s\n", cutoff.Format(util.DateLayout))
	for _, v := range teams {
		fmt.Fprintf(w, "%s\t%.0f\n", v.Name, snapshot.Ratings[v.ID])
	}

	return w.Flush()
}

func printStandings(b *back.Back, name string) error {
	standings, err := b.TournamentStandings(name)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTEAM\tPTS\tW\tD\tL\tENTERING\tCURRENT")
	for k, v := range standings {
		fmt.Fprintf(
			w, "%d\t%s\t%.1f\t%d\t%d\t%d\t%.0f\t%.0f\n",
			k+1, v.Name, v.Points, v.Wins, v.Draws, v.Losses,
			v.EnteringRating, v.CurrentRating,
		)
	}

	return w.Flush()
}
