package game

import (
	"fmt"
	"math/bits"
)

type ActionKind int

const (
	ClaimRoute ActionKind = iota
	DrawCards
	DrawTickets
	KeepTickets
)

// Action is one move of the acting seat. Only the fields of its Kind are set.
type Action struct {
	Kind  ActionKind
	Route int   // ClaimRoute
	Color Color // ClaimRoute: color paid with, Wild for an all-wild payment
	Keep  uint8 // KeepTickets: bit i keeps the i-th pending ticket
}

func (a Action) String() string {
	switch a.Kind {
	case ClaimRoute:
		return fmt.Sprintf("claim route %d with %s", a.Route, a.Color)
	case DrawCards:
		return "draw cards"
	case DrawTickets:
		return "draw tickets"
	case KeepTickets:
		return fmt.Sprintf("keep %d tickets (%03b)", bits.OnesCount8(a.Keep), a.Keep)
	default:
		return fmt.Sprintf("unknown action %d", a.Kind)
	}
}

// keepActions returns every choice of at least minKeep of n pending tickets.
func keepActions(n, minKeep int) []Action {
	var actions []Action
	for mask := 1; mask < 1<<n; mask++ {
		if bits.OnesCount(uint(mask)) >= minKeep {
			actions = append(actions, Action{Kind: KeepTickets, Keep: uint8(mask)})
		}
	}
	return actions
}

// claimActions generates every affordable claim of an unclaimed route.
func (s *GameState) claimActions() []Action {
	p := &s.Players[s.Current]
	var actions []Action
	for _, route := range s.Map.Routes {
		if s.Owners[route.ID] != NoOwner || p.Cars < route.Length {
			continue
		}
		if route.Color != Gray {
			if p.Hand.canPay(route.Color, route.Length) {
				actions = append(actions, Action{Kind: ClaimRoute, Route: route.ID, Color: route.Color})
			}
			continue
		}
		for c := Red; c < Wild; c++ {
			if p.Hand[c] > 0 && p.Hand.canPay(c, route.Length) {
				actions = append(actions, Action{Kind: ClaimRoute, Route: route.ID, Color: c})
			}
		}
		if p.Hand.canPay(Wild, route.Length) {
			actions = append(actions, Action{Kind: ClaimRoute, Route: route.ID, Color: Wild})
		}
	}
	return actions
}
