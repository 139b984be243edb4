package game

import "fmt"

// Rank identifies a card rank by its persisted spelling.
type Rank string

const (
	RankAce   Rank = "ACE"
	RankTwo   Rank = "TWO"
	RankThree Rank = "THREE"
	RankFour  Rank = "FOUR"
	RankFive  Rank = "FIVE"
	RankSix   Rank = "SIX"
	RankSeven Rank = "SEVEN"
	RankEight Rank = "EIGHT"
	RankNine  Rank = "NINE"
	RankTen   Rank = "TEN"
	RankJack  Rank = "JACK"
	RankQueen Rank = "QUEEN"
	RankKing  Rank = "KING"
)

// Ranks lists all thirteen ranks in deal order.
var Ranks = []Rank{
	RankAce, RankTwo, RankThree, RankFour, RankFive, RankSix, RankSeven,
	RankEight, RankNine, RankTen, RankJack, RankQueen, RankKing,
}

// Value returns the blackjack value of the rank. Aces count high here;
// HandValue devalues them as needed.
func (r Rank) Value() int {
	switch r {
	case RankAce:
		return 11
	case RankTwo:
		return 2
	case RankThree:
		return 3
	case RankFour:
		return 4
	case RankFive:
		return 5
	case RankSix:
		return 6
	case RankSeven:
		return 7
	case RankEight:
		return 8
	case RankNine:
		return 9
	case RankTen, RankJack, RankQueen, RankKing:
		return 10
	}
	return 0
}

// ParseRank maps a persisted rank name back to a Rank.
func ParseRank(s string) (Rank, error) {
	for _, r := range Ranks {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown rank %q", s)
}

// Suit identifies a card suit by its persisted spelling.
type Suit string

const (
	SuitClubs    Suit = "CLUBS"
	SuitDiamonds Suit = "DIAMONDS"
	SuitHearts   Suit = "HEARTS"
	SuitSpades   Suit = "SPADES"
)

// Suits lists all four suits.
var Suits = []Suit{SuitClubs, SuitDiamonds, SuitHearts, SuitSpades}

// Symbol returns the display glyph for the suit.
func (s Suit) Symbol() string {
	switch s {
	case SuitClubs:
		return "♣"
	case SuitDiamonds:
		return "♦"
	case SuitHearts:
		return "♥"
	case SuitSpades:
		return "♠"
	}
	return "?"
}

// ParseSuit maps a persisted suit name back to a Suit.
func ParseSuit(s string) (Suit, error) {
	for _, su := range Suits {
		if string(su) == s {
			return su, nil
		}
	}
	return "", fmt.Errorf("unknown suit %q", s)
}

// Card is an immutable rank/suit pair. Cards carry no identity beyond
// that; the deck holds exactly one of each of the 52 combinations.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

func (c Card) String() string {
	return string(c.Rank) + " " + c.Suit.Symbol()
}
