package elo_test

import (
	"math"
	"testing"

	"elodie/pkg/elo"
)

const epsilon = 1e-9

func TestUpdateIsZeroSum(t *testing.T) {
	cases := []struct {
		a, b, outcome, k float64
	}{
		{1500, 1500, elo.Win, 32},
		{1500, 1500, elo.Draw, 32},
		{1200, 1830, elo.Win, 32},
		{1830, 1200, elo.Loss, 32},
		{1516, 1484, elo.Draw, 32},
		{1000, 2500, elo.Win, 16},
		{1742.25, 1699.75, elo.Loss, 24},
	}

	for k, v := range cases {
		newA, newB := elo.Update(v.a, v.b, v.outcome, v.k)
		if diff := math.Abs((newA + newB) - (v.a + v.b)); diff > epsilon {
			t.Errorf("case #%d: rating sum drifted by %g", k, diff)
		}
	}
}

func TestUpdateSymmetry(t *testing.T) {
	// Winning as A must be the exact mirror of losing as B.
	aWin, bLose := elo.Update(1432, 1618, elo.Win, 32)
	bLose2, aWin2 := elo.Update(1618, 1432, elo.Loss, 32)

	if math.Abs(aWin-aWin2) > epsilon || math.Abs(bLose-bLose2) > epsilon {
		t.Errorf("update is not symmetric: (%f, %f) != (%f, %f)", aWin, bLose, aWin2, bLose2)
	}
}

func TestDrawBetweenEqualsIsNeutral(t *testing.T) {
	newA, newB := elo.Update(1500, 1500, elo.Draw, 32)
	if newA != 1500 || newB != 1500 {
		t.Errorf("draw between equal ratings moved them: %f, %f", newA, newB)
	}
}

func TestOutcome(t *testing.T) {
	cases := []struct {
		score1, score2 int
		expected       float64
	}{
		{1, 0, elo.Win},
		{0, 1, elo.Loss},
		{0, 0, elo.Draw},
		{3, 3, elo.Draw},
		{10, 2, elo.Win},
		{2, 10, elo.Loss},
	}

	for k, v := range cases {
		if actual := elo.Outcome(v.score1, v.score2); actual != v.expected {
			t.Errorf("case #%d: expected %f for %d-%d, got %f", k, v.expected, v.score1, v.score2, actual)
		}
	}
}

func TestExpectedScore(t *testing.T) {
	if e := elo.ExpectedScore(1500, 1500); math.Abs(e-0.5) > epsilon {
		t.Errorf("equal ratings should give 0.5, got %f", e)
	}

	// A full Spread of advantage means 10:1 odds.
	if e := elo.ExpectedScore(1900, 1500); math.Abs(e-10.0/11.0) > epsilon {
		t.Errorf("+400 should give 10/11, got %f", e)
	}

	ea := elo.ExpectedScore(1432, 1618)
	eb := elo.ExpectedScore(1618, 1432)
	if math.Abs((ea+eb)-1.0) > epsilon {
		t.Errorf("expected scores should sum to 1, got %f", ea+eb)
	}
}

// TestKnownSeries replays the documented two-match scenario: two fresh teams
// at 1500 with K=32, A wins then they draw.
func TestKnownSeries(t *testing.T) {
	a, b := elo.Update(1500, 1500, elo.Outcome(1, 0), 32)
	if math.Abs(a-1516.0) > epsilon || math.Abs(b-1484.0) > epsilon {
		t.Fatalf("after win: expected 1516/1484, got %f/%f", a, b)
	}

	// Second match is reported B vs A, a 2-2 draw.
	b, a = elo.Update(b, a, elo.Outcome(2, 2), 32)

	wantB := 1484.0 + 32.0*(0.5-1.0/(1.0+math.Pow(10.0, (1516.0-1484.0)/400.0)))
	wantA := 1516.0 + 1484.0 - wantB

	if math.Abs(a-wantA) > epsilon || math.Abs(b-wantB) > epsilon {
		t.Errorf("after draw: expected %f/%f, got %f/%f", wantA, wantB, a, b)
	}
	if a >= 1516.0 || b <= 1484.0 {
		t.Errorf("draw should pull ratings together, got %f/%f", a, b)
	}
}
