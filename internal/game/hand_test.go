package game

import "testing"

func TestHandValue(t *testing.T) {
	cases := []struct {
		name string
		hand []Card
		want int
	}{
		{"empty", nil, 0},
		{"simple", []Card{{RankTen, SuitClubs}, {RankSeven, SuitHearts}}, 17},
		{"face cards", []Card{{RankKing, SuitSpades}, {RankQueen, SuitHearts}}, 20},
		{"soft ace stays high", []Card{{RankAce, SuitClubs}, {RankSix, SuitClubs}}, 17},
		{"ace devalues once", []Card{{RankAce, SuitClubs}, {RankNine, SuitClubs}, {RankFive, SuitHearts}}, 15},
		{"blackjack", []Card{{RankAce, SuitSpades}, {RankKing, SuitSpades}}, 21},
		{"two aces and a ten devalue twice", []Card{{RankAce, SuitClubs}, {RankAce, SuitSpades}, {RankTen, SuitHearts}}, 12},
		{"four aces", []Card{{RankAce, SuitClubs}, {RankAce, SuitDiamonds}, {RankAce, SuitHearts}, {RankAce, SuitSpades}}, 14},
		{"hard bust stays busted", []Card{{RankKing, SuitClubs}, {RankQueen, SuitClubs}, {RankJack, SuitClubs}}, 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HandValue(tc.hand); got != tc.want {
				t.Fatalf("HandValue(%v) = %d, want %d", tc.hand, got, tc.want)
			}
		})
	}
}

func TestRankValues(t *testing.T) {
	wants := map[Rank]int{
		RankAce: 11, RankTwo: 2, RankSix: 6, RankNine: 9,
		RankTen: 10, RankJack: 10, RankQueen: 10, RankKing: 10,
	}
	for r, want := range wants {
		if got := r.Value(); got != want {
			t.Errorf("%s.Value() = %d, want %d", r, got, want)
		}
	}
}
