package model

// Hand is one player's in-game card sequence. Cards are played from the
// front and winnings are appended to the back. Within a game the two
// hands always total 52 cards.
type Hand []Card

// PopFront removes and returns the top card. An empty hand here means the
// card-conservation invariant was already broken upstream.
func (h *Hand) PopFront() (Card, error) {
	if len(*h) == 0 {
		return Card{}, ErrEmptyHand
	}
	card := (*h)[0]
	*h = (*h)[1:]
	return card, nil
}

// Append adds won cards to the back of the hand.
func (h *Hand) Append(cards ...Card) {
	*h = append(*h, cards...)
}

// Size returns the number of cards held.
func (h Hand) Size() int {
	return len(h)
}
