package model

// DeckSize is the number of cards in a fresh deck.
const DeckSize = 52

// Deck is an ordered sequence of cards. A fresh deck holds all 52 distinct
// rank/suit combinations; dealing consumes from the front.
type Deck struct {
	cards []Card
}

// NewDeck returns a deck in canonical order: suit-major, rank-ascending.
// No randomness is involved.
func NewDeck() *Deck {
	cards := make([]Card, 0, 52)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}
	return &Deck{cards: cards}
}

// Shuffle permutes the remaining cards in place using Fisher-Yates driven
// by the given swap-index source. Every card stays present exactly once.
func (d *Deck) Shuffle(intn func(n int) int) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the front card. It fails with ErrEmptyDeck on
// an exhausted deck; with the standard 26/26 split this never happens in
// a running game.
func (d *Deck) Deal() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, nil
}

// CardsLeft returns the number of undealt cards.
func (d *Deck) CardsLeft() int {
	return len(d.cards)
}

// CardAt returns the card at position i without dealing it.
func (d *Deck) CardAt(i int) Card {
	return d.cards[i]
}

// Split deals the whole deck alternately into two hands. A full deck
// yields two 26-card hands.
func (d *Deck) Split() (Hand, Hand, error) {
	var first, second Hand
	for d.CardsLeft() > 0 {
		card, err := d.Deal()
		if err != nil {
			return nil, nil, err
		}
		if len(first) <= len(second) {
			first = append(first, card)
		} else {
			second = append(second, card)
		}
	}
	return first, second, nil
}
