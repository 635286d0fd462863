package rating

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"elodie/internal/util"
	"elodie/pkg/elo"
)

// Engine recomputes rating snapshots from the stores. It holds no state of
// its own and does nothing concurrent: the caller owns the transaction
// boundary and must not run two recomputations against the same snapshot at
// once.
type Engine struct {
	teams     TeamStore
	results   ResultStore
	snapshots SnapshotStore

	base float64
	k    float64
}

func NewEngine(
	teams TeamStore,
	results ResultStore,
	snapshots SnapshotStore,
	base, k float64,
) *Engine {
	return &Engine{
		teams:     teams,
		results:   results,
		snapshots: snapshots,
		base:      base,
		k:         k,
	}
}

// RecomputeAll replays every result ever played and overwrites the persisted
// snapshot with the outcome. Running it twice on unchanged data persists the
// same snapshot twice.
func (e *Engine) RecomputeAll(ctx context.Context) (Snapshot, error) {
	start := time.Now()

	teams, err := e.teams.Teams(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("unable to fetch teams: %w", err)
	}

	results, err := e.results.Results(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("unable to fetch results: %w", err)
	}

	snapshot, err := e.snapshot(teams, results)
	if err != nil {
		return Snapshot{}, err
	}

	if err := e.snapshots.SaveSnapshot(ctx, snapshot); err != nil {
		return Snapshot{}, fmt.Errorf("unable to persist snapshot: %w", err)
	}

	log.Printf(
		"info: recomputed ratings for %d matches and %d teams in %s",
		len(results), len(teams), time.Since(start),
	)

	return snapshot, nil
}

// RecomputeAsOf replays only the results played on or before the given day
// and returns the outcome without persisting anything. It answers "what were
// the ratings entering this date" and is, by construction, the prefix of
// what RecomputeAll computes over the full history.
func (e *Engine) RecomputeAsOf(ctx context.Context, cutoff time.Time) (Snapshot, error) {
	teams, err := e.teams.Teams(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("unable to fetch teams: %w", err)
	}

	results, err := e.results.ResultsThrough(ctx, util.DayOf(cutoff))
	if err != nil {
		return Snapshot{}, fmt.Errorf("unable to fetch results: %w", err)
	}

	return e.snapshot(teams, results)
}

func (e *Engine) snapshot(teams []Team, results []Result) (Snapshot, error) {
	ratings, err := Replay(teams, results, e.base, e.k)
	if err != nil {
		return Snapshot{}, err
	}

	// The replay may have picked up teams that are no longer (or not yet) on
	// the roster, the snapshot covers the roster and nothing else.
	snapshot := Snapshot{
		Ratings:    make(map[util.UUIDAsBlob]float64, len(teams)),
		ComputedAt: time.Now(),
	}
	for k := range teams {
		snapshot.Ratings[teams[k].ID] = ratings[teams[k].ID]
	}

	return snapshot, nil
}

// Replay folds the pairwise Elo update over the results in chronological
// order and returns the final rating of every team encountered, rostered or
// not. Every rostered team starts at base; a team referenced by a result but
// absent from the roster also starts at base on first reference, which is
// deliberate leniency, not an error.
func Replay(teams []Team, results []Result, base, k float64) (map[util.UUIDAsBlob]float64, error) {
	ratings := make(map[util.UUIDAsBlob]float64, len(teams))
	for i := range teams {
		ratings[teams[i].ID] = base
	}

	// Sort a copy, the caller's slice order is none of our business.
	ordered := make([]Result, len(results))
	copy(ordered, results)
	sort.Sort(chronological(ordered))

	for i := range ordered {
		r := &ordered[i]

		if r.Team1ID == r.Team2ID {
			return nil, fmt.Errorf("match %d: %w", r.Seq, ErrSameTeam)
		}

		a, ok := ratings[r.Team1ID]
		if !ok {
			a = base
		}
		b, ok := ratings[r.Team2ID]
		if !ok {
			b = base
		}

		a, b = elo.Update(a, b, elo.Outcome(r.Score1, r.Score2), k)
		if math.IsNaN(a) || math.IsInf(a, 0) || math.IsNaN(b) || math.IsInf(b, 0) {
			return nil, fmt.Errorf("match %d: %w", r.Seq, ErrNotFinite)
		}

		ratings[r.Team1ID] = a
		ratings[r.Team2ID] = b
	}

	return ratings, nil
}
