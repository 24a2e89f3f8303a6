// Package game is a route-building card game in the style of Ticket to Ride.
// Seats collect colored train cards, claim routes between cities and score
// destination tickets. Opponents' cards and tickets are hidden, so a seat
// searches over its own information set (see ObservedBy).
package game

import (
	"errors"
	"fmt"

	"tickets/meta"
)

var (
	ErrIllegalAction = errors.New("illegal action")
	ErrGameOver      = errors.New("game is over")
)

// Config holds the rule parameters of a game.
type Config struct {
	Seats         int
	Cars          int // Per seat
	HandSize      int // Cards dealt per seat
	CardsPerColor int
	Wilds         int
	TicketsDealt  int // Opening tickets per seat
	OpeningKeep   int // Opening tickets a seat must keep
	TicketsDrawn  int
	CardsDrawn    int
	FinalCars     int // A seat starting its turn with fewer cars plays the last turn
}

func DefaultConfig(seats int) Config {
	return Config{
		Seats:         seats,
		Cars:          meta.CARS,
		HandSize:      4,
		CardsPerColor: 10,
		Wilds:         12,
		TicketsDealt:  3,
		OpeningKeep:   2,
		TicketsDrawn:  3,
		CardsDrawn:    2,
		FinalCars:     3,
	}
}

// Keep masks are a uint8, so a seat never holds more pending tickets
const maxPendingTickets = 8

func (c Config) validate() error {
	switch {
	case c.Seats < MinSeats || c.Seats > MaxSeats:
		return fmt.Errorf("%w: %d seats, want %d to %d", ErrInvalidConfig, c.Seats, MinSeats, MaxSeats)
	case c.Cars <= 0 || c.HandSize < 0 || c.CardsPerColor < 0 || c.Wilds < 0 || c.CardsDrawn <= 0 || c.FinalCars < 0:
		return fmt.Errorf("%w: negative card or car counts in %+v", ErrInvalidConfig, c)
	case c.TicketsDealt < 1 || c.TicketsDealt > maxPendingTickets:
		return fmt.Errorf("%w: %d tickets dealt, want 1 to %d", ErrInvalidConfig, c.TicketsDealt, maxPendingTickets)
	case c.TicketsDrawn < 1 || c.TicketsDrawn > maxPendingTickets:
		return fmt.Errorf("%w: %d tickets drawn, want 1 to %d", ErrInvalidConfig, c.TicketsDrawn, maxPendingTickets)
	case c.OpeningKeep < 1 || c.OpeningKeep > c.TicketsDealt:
		return fmt.Errorf("%w: keeping %d of %d opening tickets", ErrInvalidConfig, c.OpeningKeep, c.TicketsDealt)
	}
	return nil
}

// Points scored for a claimed route, by length
var routePoints = map[int]int{1: 1, 2: 2, 3: 4, 4: 7}

const (
	LongestRouteBonus = 10
	GlobetrotterBonus = 15 // Most completed tickets
)
