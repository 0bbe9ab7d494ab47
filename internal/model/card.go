package model

import "fmt"

// Rank is the face value of a playing card. Ordering follows War rules:
// Two is lowest, Ace is highest.
type Rank int

const (
	RankTwo Rank = iota + 2
	RankThree
	RankFour
	RankFive
	RankSix
	RankSeven
	RankEight
	RankNine
	RankTen
	RankJack
	RankQueen
	RankKing
	RankAce
)

// String returns the rank as it appears in wire messages ("2".."10",
// "Jack", "Queen", "King", "Ace").
func (r Rank) String() string {
	switch r {
	case RankJack:
		return "Jack"
	case RankQueen:
		return "Queen"
	case RankKing:
		return "King"
	case RankAce:
		return "Ace"
	default:
		return fmt.Sprintf("%d", int(r))
	}
}

// Suit is one of the four card suits. Suits never affect comparison.
type Suit string

const (
	SuitSpades   Suit = "Spades"
	SuitHearts   Suit = "Hearts"
	SuitDiamonds Suit = "Diamonds"
	SuitClubs    Suit = "Clubs"
)

// Suits lists all suits in canonical deck order.
var Suits = []Suit{SuitSpades, SuitHearts, SuitDiamonds, SuitClubs}

// Ranks lists all ranks in ascending order.
var Ranks = []Rank{
	RankTwo, RankThree, RankFour, RankFive, RankSix, RankSeven, RankEight,
	RankNine, RankTen, RankJack, RankQueen, RankKing, RankAce,
}

// Card is an immutable rank/suit pair. Equality is by (rank, suit).
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// String renders the card for round result messages, e.g. "10 of Spades".
func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

// Compare orders two cards by rank only. It returns a negative value when
// a is lower, positive when a is higher, and zero when the ranks match.
// Suit never breaks ties; equal ranks mean war.
func Compare(a, b Card) int {
	return int(a.Rank) - int(b.Rank)
}
