package game

import "testing"

func TestNewDeckHolds52UniqueCards(t *testing.T) {
	d := NewDeck()
	if d.Remaining() != 52 {
		t.Fatalf("new deck holds %d cards, want 52", d.Remaining())
	}
	seen := map[Card]bool{}
	for i := 0; i < 52; i++ {
		c := d.Draw()
		if seen[c] {
			t.Fatalf("duplicate card %v", c)
		}
		seen[c] = true
	}
	if len(seen) != 52 {
		t.Fatalf("drew %d unique cards, want 52", len(seen))
	}
}

func TestDrawPastExhaustionResetsSilently(t *testing.T) {
	d := NewDeck()
	for i := 0; i < 52; i++ {
		d.Draw()
	}
	if d.Remaining() != 0 {
		t.Fatalf("deck not exhausted, %d left", d.Remaining())
	}
	// The 53rd draw must not block or fail. Card counting across the
	// reshuffle is deliberately not a guaranteed property.
	c := d.Draw()
	if c.Rank.Value() == 0 {
		t.Fatalf("draw after exhaustion returned invalid card %v", c)
	}
	if d.Remaining() != 51 {
		t.Fatalf("deck should have rebuilt to 51 after one draw, got %d", d.Remaining())
	}
}

func TestStackedDeckDealsInOrder(t *testing.T) {
	want := []Card{
		{RankAce, SuitSpades},
		{RankKing, SuitHearts},
		{RankTwo, SuitClubs},
	}
	d := NewStacked(want...)
	d.Shuffle() // no-op for stacked decks
	for i, w := range want {
		if got := d.Draw(); got != w {
			t.Fatalf("draw %d = %v, want %v", i, got, w)
		}
	}
}

func TestDrawHand(t *testing.T) {
	d := NewStacked(Card{RankTen, SuitClubs}, Card{RankNine, SuitHearts})
	h := d.DrawHand()
	if len(h) != 2 {
		t.Fatalf("DrawHand returned %d cards", len(h))
	}
	if HandValue(h) != 19 {
		t.Fatalf("stacked hand value = %d, want 19", HandValue(h))
	}
}
