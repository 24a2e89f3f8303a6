package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateMap(t *testing.T) {
	m := CreateMap()
	s := finishedState(m, Player{}, Player{})

	t.Run("indexing routes by city", func(t *testing.T) {
		for _, route := range m.Routes {
			require.Contains(t, m.RoutesAt(route.From), route.ID)
			require.Contains(t, m.RoutesAt(route.To), route.ID)
			require.Contains(t, routePoints, route.Length, "Route %d should have a scorable length", route.ID)
		}
	})

	t.Run("making every ticket reachable on an empty board", func(t *testing.T) {
		for _, ticket := range m.Tickets {
			require.Positive(t, s.missingRoutes(0, ticket.From, ticket.To), "Ticket %d should be completable", ticket.ID)
		}
	})

	t.Run("fitting four seats' cars", func(t *testing.T) {
		total := 0
		for _, route := range m.Routes {
			total += route.Length
		}
		require.GreaterOrEqual(t, total, MaxSeats*DefaultConfig(MaxSeats).Cars)
	})
}

func TestRouteOther(t *testing.T) {
	r := Route{From: 1, To: 2}

	other, ok := r.Other(1)
	require.True(t, ok)
	require.Equal(t, City(2), other)

	_, ok = r.Other(3)
	require.False(t, ok, "City 3 is not on the route")
}
