package back // nolint:testpackage

import (
	"math"
	"testing"

	"elodie/pkg/elo"

	"gopkg.in/guregu/null.v4"
)

func TestLeaderboard(t *testing.T) {
	b := createTestBack(t)

	for _, name := range []string{"A", "B", "C"} {
		if _, err := b.CreateTeam(name); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := b.CreateTournament("cup", null.Time{}, null.Time{}); err != nil {
		t.Fatal(err)
	}

	if _, err := b.ReportResult("cup", "A", "B", day(0), 2, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := b.ReportResult("cup", "B", "C", day(1), 1, 0); err != nil {
		t.Fatal(err)
	}

	leaderboard, err := b.Leaderboard()
	if err != nil {
		t.Fatal(err)
	}
	if len(leaderboard) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(leaderboard))
	}

	// Replay the two matches by hand to know what to expect.
	ratingA, ratingB := elo.Update(1500, 1500, elo.Win, 32)
	ratingB, ratingC := elo.Update(ratingB, 1500, elo.Win, 32)

	expected := []struct {
		name                string
		rating              float64
		wins, draws, losses int
	}{
		{"A", ratingA, 1, 0, 0},
		{"B", ratingB, 1, 0, 1},
		{"C", ratingC, 0, 0, 1},
	}

	for k, v := range expected {
		e := leaderboard[k]
		if e.Name != v.name {
			t.Errorf("entry #%d: expected %s, got %s", k, v.name, e.Name)
			continue
		}
		if math.Abs(e.Rating-v.rating) > 1e-9 {
			t.Errorf("%s: expected rating %f, got %f", v.name, v.rating, e.Rating)
		}
		if e.Wins != v.wins || e.Draws != v.draws || e.Losses != v.losses {
			t.Errorf(
				"%s: expected %d/%d/%d, got %d/%d/%d",
				v.name, v.wins, v.draws, v.losses, e.Wins, e.Draws, e.Losses,
			)
		}
	}
}

func TestTournamentStandings(t *testing.T) {
	b := createTestBack(t)

	for _, name := range []string{"A", "B", "C"} {
		if _, err := b.CreateTeam(name); err != nil {
			t.Fatal(err)
		}
	}

	// A earns 16 points in the qualifiers, then draws C in the finals.
	if _, err := b.CreateTournament("qualifiers", null.Time{}, null.Time{}); err != nil {
		t.Fatal(err)
	}
	if _, err := b.CreateTournament("finals", null.TimeFrom(day(2)), null.TimeFrom(day(4))); err != nil {
		t.Fatal(err)
	}
	if _, err := b.ReportResult("qualifiers", "A", "B", day(0), 1, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := b.ReportResult("finals", "A", "C", day(2), 2, 2); err != nil {
		t.Fatal(err)
	}

	standings, err := b.TournamentStandings("finals")
	if err != nil {
		t.Fatal(err)
	}

	// Only the two finalists, A first (higher current rating).
	if len(standings) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(standings))
	}
	if standings[0].Name != "A" || standings[1].Name != "C" {
		t.Fatalf("expected A then C, got %s then %s", standings[0].Name, standings[1].Name)
	}

	// Entering ratings are the global state before the start date: the
	// qualifiers already happened, the finals draw did not.
	if v := standings[0].EnteringRating; math.Abs(v-1516.0) > 1e-9 {
		t.Errorf("A should enter the finals at 1516, got %f", v)
	}
	if v := standings[1].EnteringRating; math.Abs(v-1500.0) > 1e-9 {
		t.Errorf("C should enter the finals at 1500, got %f", v)
	}

	wantA, wantC := elo.Update(1516.0, 1500.0, elo.Draw, 32)
	if v := standings[0].CurrentRating; math.Abs(v-wantA) > 1e-9 {
		t.Errorf("A current rating: expected %f, got %f", wantA, v)
	}
	if v := standings[1].CurrentRating; math.Abs(v-wantC) > 1e-9 {
		t.Errorf("C current rating: expected %f, got %f", wantC, v)
	}

	for k, v := range standings {
		if v.Draws != 1 || v.Wins != 0 || v.Losses != 0 || v.Points != 0.5 {
			t.Errorf("entry #%d: expected a single draw worth 0.5 points, got %+v", k, v)
		}
	}

	// Without a start date the cutoff is the day before the first match, so
	// the qualifiers see everyone entering fresh.
	standings, err = b.TournamentStandings("qualifiers")
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range standings {
		if math.Abs(v.EnteringRating-1500.0) > 1e-9 {
			t.Errorf("%s should enter the qualifiers at 1500, got %f", v.Name, v.EnteringRating)
		}
	}
}

func TestLoadFixtures(t *testing.T) {
	b := createTestBack(t)
	if err := b.LoadFixtures(); err != nil {
		t.Fatal(err)
	}

	leaderboard, err := b.Leaderboard()
	if err != nil {
		t.Fatal(err)
	}
	if len(leaderboard) != 4 {
		t.Fatalf("expected 4 fixtured teams, got %d", len(leaderboard))
	}

	// Elo is zero-sum, the pool never gains or loses points.
	var sum float64
	for _, v := range leaderboard {
		sum += v.Rating
	}
	if math.Abs(sum-4*1500.0) > 1e-6 {
		t.Errorf("rating pool drifted to %f", sum)
	}
}
