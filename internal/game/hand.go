package game

// HandValue scores a blackjack hand. Aces count 11 until the total
// exceeds 21, then devalue to 1 one at a time until the total fits or
// no high aces remain. Every displayed or persisted score must come
// from this function so snapshots always match recomputation.
func HandValue(hand []Card) int {
	total := 0
	aces := 0
	for _, c := range hand {
		total += c.Rank.Value()
		if c.Rank == RankAce {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}
