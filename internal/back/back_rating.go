package back

import (
	"context"
	"fmt"
	"time"

	"elodie/internal/rating"

	"github.com/jmoiron/sqlx"
)

func (b *Back) engine(tx *sqlx.Tx) *rating.Engine {
	store := ratingStore{tx: tx}
	return rating.NewEngine(store, store, store, b.config.BaseRating, b.config.KFactor)
}

// recompute regenerates the persisted snapshot. It must run in the same
// transaction as the write that staled the previous snapshot: a reader can
// then never observe ratings that disagree with the match history.
func (b *Back) recompute(tx *sqlx.Tx) error {
	if _, err := b.engine(tx).RecomputeAll(context.Background()); err != nil {
		return fmt.Errorf("unable to recompute ratings: %w", err)
	}

	return nil
}

// Recompute replays the full history and overwrites the snapshot, it is the
// repair hammer for operators and exactly what every write runs internally.
func (b *Back) Recompute() (snapshot rating.Snapshot, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) (err error) {
		snapshot, err = b.engine(tx).RecomputeAll(context.Background())
		return err
	}); err != nil {
		return rating.Snapshot{}, err
	}

	return snapshot, nil
}

// RatingsAsOf answers "what were the ratings at end of that day" without
// touching the persisted snapshot.
func (b *Back) RatingsAsOf(cutoff time.Time) (snapshot rating.Snapshot, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) (err error) {
		snapshot, err = b.engine(tx).RecomputeAsOf(context.Background(), cutoff)
		return err
	}); err != nil {
		return rating.Snapshot{}, err
	}

	return snapshot, nil
}
