package searcher

import (
	"errors"
	"math"

	"golang.org/x/exp/slices"
)

// Hyperparameters for MCTS

const C = math.Sqrt2 // Exploration constant

const WinCredit = 10.0 // Credit shared by the winners of one playout

// Seat identifies a player at the table.
type Seat int

// NoSeat is the last mover of a position nobody has moved into yet.
const NoSeat Seat = -1

var (
	ErrNoLegalMoves  = errors.New("root state has no legal successors")
	ErrInvalidBudget = errors.New("search budget must be positive")
)

// State is the contract any game must implement to be searched. A State is a
// value: none of the methods may change what the receiver reports afterwards.
type State interface {
	// LastMover returns the seat whose move produced this state.
	LastMover() Seat
	// LegalSuccessors returns every state reachable by one move of the acting
	// seat. It is empty when the game is over or when some of the acting
	// seat's own information is still unresolved.
	LegalSuccessors() []State
	// RandomSuccessor resolves all hidden information on a private copy and
	// then picks one of the resulting legal successors.
	RandomSuccessor() State
	// Winners is empty iff the game is not over.
	Winners() []Seat
}

// IsTerminal reports whether the state has a decided outcome.
func IsTerminal(s State) bool {
	return len(s.Winners()) > 0
}

func contains(winners []Seat, seat Seat) bool {
	return slices.Contains(winners, seat)
}
