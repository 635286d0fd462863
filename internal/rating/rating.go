// Package rating derives Elo ratings from the full match history.
//
// Ratings are never patched in place: every write to the underlying data
// invalidates the snapshot and the whole history is replayed from scratch.
// This keeps retroactive edits and deletions trivially correct, at the cost
// of a recomputation that is O(M log M) in the match count, which is fine
// because it only runs on writes.
package rating

import (
	"context"
	"errors"
	"time"

	"elodie/internal/util"
)

// A Team is the roster entry the engine computes a rating for. Inactive
// teams keep their rating and their matches keep counting, they are only
// hidden from leaderboards.
type Team struct {
	ID     util.UUIDAsBlob
	Name   string
	Active bool
}

// A Result is one played match as the engine sees it: who, when, and the
// score. Seq is the insertion-order id allocated by the store, unique and
// monotonically increasing, never reused.
type Result struct {
	Seq      int64
	Team1ID  util.UUIDAsBlob
	Team2ID  util.UUIDAsBlob
	PlayedAt time.Time
	Score1   int
	Score2   int
}

// A Snapshot is the rating of every rostered team as derived from one full
// replay of the match history.
type Snapshot struct {
	Ratings    map[util.UUIDAsBlob]float64
	ComputedAt time.Time
}

type TeamStore interface {
	Teams(ctx context.Context) ([]Team, error)
}

type ResultStore interface {
	Results(ctx context.Context) ([]Result, error)

	// ResultsThrough returns the results played on or before the given day.
	ResultsThrough(ctx context.Context, cutoff time.Time) ([]Result, error)
}

type SnapshotStore interface {
	// SaveSnapshot replaces the previous snapshot in full.
	SaveSnapshot(ctx context.Context, snapshot Snapshot) error
}

// ErrSameTeam is returned when a result has a team playing against itself.
// The stores reject those at creation time, encountering one mid-replay
// means the data is corrupt and the replay must not produce a snapshot.
var ErrSameTeam = errors.New("a team cannot play against itself")

// ErrNotFinite is returned when a replayed rating stops being a finite
// float. Ratings stay well-bounded on sane inputs, a NaN or Inf means
// something upstream is broken beyond what a retry could fix.
var ErrNotFinite = errors.New("rating is not a finite number")
