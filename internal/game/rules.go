package game

// DealerMustHit reports whether the dealer keeps drawing: the house
// stands on 17 and above.
func DealerMustHit(score int) bool {
	return score < 17
}

// Busted reports whether a score is over 21.
func Busted(score int) bool {
	return score > 21
}

// Settle resolves one player's result against the dealer's final
// score. A bust is sticky: the dealer's outcome never changes it.
func Settle(playerScore int, current Result, dealerScore int, dealerBusted bool) Result {
	if current == ResultBust {
		return ResultBust
	}
	if dealerBusted {
		return ResultWin
	}
	switch {
	case playerScore > dealerScore:
		return ResultWin
	case playerScore < dealerScore:
		return ResultLoss
	default:
		return ResultPush
	}
}

// ModeLabel is the metadata label for a round's player mode.
func ModeLabel(twoPlayer bool) string {
	if twoPlayer {
		return "2 Players"
	}
	return "1 Player"
}
