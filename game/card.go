package game

import "tickets/determinize"

type Color int

const (
	Red    Color = iota // 0
	Blue                // 1
	Green               // 2
	Yellow              // 3
	Black               // 4
	Wild                // 5, pays for any color
)

// Gray routes can be paid with cards of any single color.
const Gray Color = -1

const NumColors = 6

var colorNames = [NumColors]string{"red", "blue", "green", "yellow", "black", "wild"}

func (c Color) String() string {
	if c == Gray {
		return "gray"
	}
	return colorNames[c]
}

// Hand counts cards per color.
type Hand [NumColors]int

func (h Hand) Total() int {
	total := 0
	for _, n := range h {
		total += n
	}
	return total
}

func (h *Hand) add(other Hand) {
	for c, n := range other {
		h[c] += n
	}
}

func (h *Hand) remove(other Hand) {
	for c, n := range other {
		h[c] -= n
	}
}

// payment returns the cards spent to claim a route of length with color.
// Colored cards are used first, wilds make up the rest.
func (h Hand) payment(color Color, length int) Hand {
	var paid Hand
	if color == Wild {
		paid[Wild] = length
		return paid
	}
	paid[color] = min(h[color], length)
	paid[Wild] = length - paid[color]
	return paid
}

func (h Hand) canPay(color Color, length int) bool {
	if color == Wild {
		return h[Wild] >= length
	}
	return h[color]+h[Wild] >= length
}

func newDeck(config Config) *determinize.Pool[Color] {
	deck := determinize.NewPool[Color]()
	for c := Red; c < Wild; c++ {
		addCards(deck, c, config.CardsPerColor)
	}
	addCards(deck, Wild, config.Wilds)
	return deck
}

func addCards(pool *determinize.Pool[Color], color Color, n int) {
	for i := 0; i < n; i++ {
		pool.Add(color)
	}
}

func addHand(pool *determinize.Pool[Color], hand Hand) {
	for c, n := range hand {
		addCards(pool, Color(c), n)
	}
}
