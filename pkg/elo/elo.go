// Package elo implements the standard pairwise Elo rating update.
//
// Everything in here is pure math over IEEE-754 doubles, callers can use it
// for live "what-if" odds without touching any persisted rating.
package elo

import "math"

// Spread is the rating difference at which the stronger side is expected to
// win ten times more often than it loses.
const Spread = 400.0

// Match outcomes for the first of the two sides.
const (
	Loss = 0.0
	Draw = 0.5
	Win  = 1.0
)

// ExpectedScore returns the expected score of A against B, in ]0;1[.
func ExpectedScore(ratingA, ratingB float64) float64 {
	return 1.0 / (1.0 + math.Pow(10.0, (ratingB-ratingA)/Spread))
}

// Update returns the ratings of both sides after a match, given the outcome
// for A (one of Win, Draw, Loss) and the K-factor. The exchange is zero-sum:
// whatever A gains, B loses.
//
// k must be > 0, outcomeA must be one of the outcome constants; both come
// from trusted configuration and are not re-checked here.
func Update(ratingA, ratingB, outcomeA, k float64) (newA, newB float64) {
	ea := ExpectedScore(ratingA, ratingB)
	eb := 1.0 - ea

	newA = ratingA + k*(outcomeA-ea)
	newB = ratingB + k*((1.0-outcomeA)-eb)

	return newA, newB
}

// Outcome derives the Elo outcome for side 1 from a pair of scores.
func Outcome(score1, score2 int) float64 {
	switch {
	case score1 > score2:
		return Win
	case score1 < score2:
		return Loss
	default:
		return Draw
	}
}
