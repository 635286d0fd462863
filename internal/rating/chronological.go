package rating

// chronological sorts results by (PlayedAt, Seq) ascending. Elo is
// history-dependent, replaying the same matches in another order gives
// other ratings, so the replay order has to be total and reproducible:
// dates are day-granular and collide all the time, Seq breaks the tie.
type chronological []Result

func (a chronological) Len() int {
	return len(a)
}

func (a chronological) Less(i, j int) bool {
	if a[i].PlayedAt.Equal(a[j].PlayedAt) {
		return a[i].Seq < a[j].Seq
	}

	return a[i].PlayedAt.Before(a[j].PlayedAt)
}

func (a chronological) Swap(i, j int) {
	a[i], a[j] = a[j], a[i]
}
