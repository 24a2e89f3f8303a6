package game

import (
	"fmt"
	"math"

	"tickets/determinize"
	"tickets/searcher"

	"golang.org/x/exp/rand"
)

// A ticket the holder can no longer complete is still possible, just unlikely.
const impossibleTicketWeight = 0.01

// resolvers fill in every hidden card, then every hidden ticket.
func (s *GameState) resolvers(rng *rand.Rand) []determinize.Resolver[*GameState] {
	return []determinize.Resolver[*GameState]{
		func(g *GameState) error { return g.resolveCards(rng) },
		func(g *GameState) error { return g.resolveTickets(rng) },
	}
}

func (s *GameState) resolve(rng *rand.Rand) error {
	for _, resolve := range s.resolvers(rng) {
		if err := resolve(s); err != nil {
			return err
		}
	}
	return nil
}

// resolveCards draws unknown cards uniformly: nothing hints at what an
// opponent holds.
func (s *GameState) resolveCards(rng *rand.Rand) error {
	policy := determinize.NewUniform[Color](rng)
	for i := range s.Players {
		p := &s.Players[i]
		if p.UnknownCards == 0 {
			continue
		}
		drawn, err := policy.Draw(s.Deck, p.UnknownCards)
		if err != nil {
			return fmt.Errorf("failed to resolve cards of seat %d: %w", i, err)
		}
		for _, c := range drawn {
			p.Hand[c]++
		}
		p.UnknownCards = 0
	}
	return nil
}

// resolveTickets draws pending tickets uniformly, since they just came off the
// stack, and kept tickets by how well they fit the holder's claimed routes.
func (s *GameState) resolveTickets(rng *rand.Rand) error {
	pending := determinize.NewUniform[int](rng)
	for i := range s.Players {
		seat := searcher.Seat(i)
		p := &s.Players[i]
		if p.UnknownTickets > 0 {
			kept := determinize.NewWeighted(s.plausibility(seat), rng)
			drawn, err := kept.Draw(s.TicketPool, p.UnknownTickets)
			if err != nil {
				return fmt.Errorf("failed to resolve tickets of seat %d: %w", i, err)
			}
			p.Tickets = append(p.Tickets, drawn...)
			p.UnknownTickets = 0
		}
		if p.UnknownPending > 0 {
			drawn, err := pending.Draw(s.TicketPool, p.UnknownPending)
			if err != nil {
				return fmt.Errorf("failed to resolve pending tickets of seat %d: %w", i, err)
			}
			p.Pending = append(p.Pending, drawn...)
			p.UnknownPending = 0
		}
	}
	return nil
}

// plausibility weighs a ticket by 1/(1+missing), where missing is the number of
// unclaimed routes seat still needs to connect it.
func (s *GameState) plausibility(seat searcher.Seat) func(ticketID int) float64 {
	return func(ticketID int) float64 {
		ticket := s.Map.Tickets[ticketID]
		missing := s.missingRoutes(seat, ticket.From, ticket.To)
		if missing < 0 {
			return impossibleTicketWeight
		}
		return 1 / float64(1+missing)
	}
}

// missingRoutes returns the fewest unclaimed routes seat needs to link from and
// to, or -1 if other seats' routes cut them apart. Routes of seat are free.
func (s *GameState) missingRoutes(seat searcher.Seat, from, to City) int {
	dist := make([]int, len(s.Map.Cities))
	for i := range dist {
		dist[i] = math.MaxInt
	}
	dist[from] = 0

	// 0-1 BFS: free routes go to the front of the queue
	queue := []City{from}
	for len(queue) > 0 {
		city := queue[0]
		queue = queue[1:]
		for _, id := range s.Map.RoutesAt(city) {
			owner := s.Owners[id]
			if owner != NoOwner && owner != seat {
				continue
			}
			cost := 1
			if owner == seat {
				cost = 0
			}
			next, _ := s.Map.Routes[id].Other(city)
			if dist[city]+cost >= dist[next] {
				continue
			}
			dist[next] = dist[city] + cost
			if cost == 0 {
				queue = append([]City{next}, queue...)
			} else {
				queue = append(queue, next)
			}
		}
	}

	if dist[to] == math.MaxInt {
		return -1
	}
	return dist[to]
}
