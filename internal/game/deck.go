package game

import "math/rand/v2"

// Deck is a mutable 52-card shoe consumed from the front. Drawing from
// an exhausted deck silently rebuilds and reshuffles a full set, so a
// draw always succeeds and callers never block on exhaustion.
type Deck struct {
	cards   []Card
	shuffle func([]Card)
}

// NewDeck returns a full ordered deck with a random shuffler.
func NewDeck() *Deck {
	d := &Deck{shuffle: randomShuffle}
	d.rebuild()
	return d
}

// NewStacked returns a deck that deals the given cards in order and
// ignores Shuffle calls. Used for deterministic deals; once the stack
// runs out, draws fall back to fresh randomly shuffled decks.
func NewStacked(cards ...Card) *Deck {
	stacked := make([]Card, len(cards))
	copy(stacked, cards)
	return &Deck{cards: stacked, shuffle: func([]Card) {}}
}

func randomShuffle(cards []Card) {
	rand.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

func (d *Deck) rebuild() {
	d.cards = d.cards[:0]
	for _, suit := range Suits {
		for _, rank := range Ranks {
			d.cards = append(d.cards, Card{Rank: rank, Suit: suit})
		}
	}
}

// Shuffle randomizes the order of all cards currently held.
func (d *Deck) Shuffle() {
	d.shuffle(d.cards)
}

// Draw removes and returns the front card, rebuilding and reshuffling
// first if the deck is empty.
func (d *Deck) Draw() Card {
	if len(d.cards) == 0 {
		d.rebuild()
		randomShuffle(d.cards)
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c
}

// DrawHand draws two cards.
func (d *Deck) DrawHand() []Card {
	return []Card{d.Draw(), d.Draw()}
}

// Remaining reports how many cards are left before the next rebuild.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
