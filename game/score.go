package game

import "tickets/searcher"

// Score is the end-of-game breakdown for one seat.
type Score struct {
	Routes       int // Points for claimed routes
	Tickets      int // Completed tickets minus failed ones
	Completed    int // Number of completed tickets
	Longest      int // Length of the longest continuous route
	LongestBonus bool
	Globetrotter bool
	Total        int
}

// Scores scores every seat on the tickets known to the state.
func (s *GameState) Scores() []Score {
	scores := make([]Score, len(s.Players))
	longest, mostCompleted := 0, 0
	for i, p := range s.Players {
		score := &scores[i]
		for _, id := range p.Routes {
			score.Routes += routePoints[s.Map.Routes[id].Length]
		}
		for _, id := range p.Tickets {
			ticket := s.Map.Tickets[id]
			if s.Map.connected(p.Routes, ticket.From, ticket.To) {
				score.Tickets += ticket.Points
				score.Completed++
			} else {
				score.Tickets -= ticket.Points
			}
		}
		score.Longest = s.Map.longestRoute(p.Routes)
		longest = max(longest, score.Longest)
		mostCompleted = max(mostCompleted, score.Completed)
	}

	// Bonuses go to every tied leader
	for i := range scores {
		score := &scores[i]
		score.Total = score.Routes + score.Tickets
		if longest > 0 && score.Longest == longest {
			score.LongestBonus = true
			score.Total += LongestRouteBonus
		}
		if mostCompleted > 0 && score.Completed == mostCompleted {
			score.Globetrotter = true
			score.Total += GlobetrotterBonus
		}
	}
	return scores
}

// winners returns the seats with the highest total, broken by the most
// completed tickets. Remaining ties share the win.
func (s *GameState) winners() []searcher.Seat {
	scores := s.Scores()
	var winners []searcher.Seat
	for i, score := range scores {
		if len(winners) == 0 {
			winners = append(winners, searcher.Seat(i))
			continue
		}
		best := scores[winners[0]]
		switch {
		case score.Total > best.Total,
			score.Total == best.Total && score.Completed > best.Completed:
			winners = []searcher.Seat{searcher.Seat(i)}
		case score.Total == best.Total && score.Completed == best.Completed:
			winners = append(winners, searcher.Seat(i))
		}
	}
	return winners
}

// connected reports whether routes link from and to. Just BFS
func (m *Map) connected(routes []int, from, to City) bool {
	if from == to {
		return true
	}
	owned := make(map[int]bool, len(routes))
	for _, id := range routes {
		owned[id] = true
	}
	visited := make([]bool, len(m.Cities))
	queue := []City{from}
	visited[from] = true

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, id := range m.RoutesAt(current) {
			if !owned[id] {
				continue
			}
			next, _ := m.Routes[id].Other(current)
			if next == to {
				return true
			}
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return false
}

// longestRoute returns the length of the longest path through routes that
// uses each route at most once. Cities may repeat.
func (m *Map) longestRoute(routes []int) int {
	used := make(map[int]bool, len(routes))
	best := 0

	var walk func(city City, length int)
	walk = func(city City, length int) {
		best = max(best, length)
		for _, id := range routes {
			if used[id] {
				continue
			}
			next, ok := m.Routes[id].Other(city)
			if !ok {
				continue
			}
			used[id] = true
			walk(next, length+m.Routes[id].Length)
			used[id] = false
		}
	}

	for _, id := range routes {
		walk(m.Routes[id].From, 0)
		walk(m.Routes[id].To, 0)
	}
	return best
}
