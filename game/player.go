package game

import "golang.org/x/exp/slices"

// Player is one seat as known to the observer of a state. Cards and tickets
// the observer has not seen are only counted.
type Player struct {
	Hand           Hand
	UnknownCards   int
	Tickets        []int // Kept ticket IDs
	UnknownTickets int
	Pending        []int // Drawn ticket IDs awaiting a keep decision
	UnknownPending int
	MinKeep        int
	Cars           int
	Routes         []int // Claimed route IDs
}

func (p Player) copy() Player {
	p.Tickets = slices.Clone(p.Tickets)
	p.Pending = slices.Clone(p.Pending)
	p.Routes = slices.Clone(p.Routes)
	return p
}

// known reports whether the seat's cards and pending tickets are all resolved,
// which is what it needs to choose a move.
func (p Player) known() bool {
	return p.UnknownCards == 0 && p.UnknownPending == 0
}

func (p Player) CardCount() int {
	return p.Hand.Total() + p.UnknownCards
}

func (p Player) TicketCount() int {
	return len(p.Tickets) + p.UnknownTickets
}

func (p Player) pendingCount() int {
	return len(p.Pending) + p.UnknownPending
}
