package game

type City int

type Route struct {
	ID     int
	From   City
	To     City
	Length int
	Color  Color // Gray if any single color pays
}

// Other returns the far end of the route seen from city.
func (r Route) Other(city City) (City, bool) {
	switch city {
	case r.From:
		return r.To, true
	case r.To:
		return r.From, true
	default:
		return 0, false
	}
}

type Ticket struct {
	ID     int
	From   City
	To     City
	Points int
}

// Map is the static board. It is shared by every state of a game and never
// modified after CreateMap.
type Map struct {
	Cities  []string
	Routes  []Route
	Tickets []Ticket
	byCity  [][]int // Route IDs per city
}

// NewMap creates and returns a new Map instance.
func NewMap(cities []string) *Map {
	return &Map{
		Cities: cities,
		byCity: make([][]int, len(cities)),
	}
}

// AddRoute adds a route between two cities.
func (m *Map) AddRoute(from, to City, length int, color Color) {
	id := len(m.Routes)
	m.Routes = append(m.Routes, Route{ID: id, From: from, To: to, Length: length, Color: color})
	m.byCity[from] = append(m.byCity[from], id)
	m.byCity[to] = append(m.byCity[to], id)
}

func (m *Map) AddTicket(from, to City, points int) {
	m.Tickets = append(m.Tickets, Ticket{ID: len(m.Tickets), From: from, To: to, Points: points})
}

// RoutesAt returns the IDs of every route touching city.
func (m *Map) RoutesAt(city City) []int {
	return m.byCity[city]
}

// initialize the map with cities, routes and destination tickets
func CreateMap() *Map {
	m := NewMap(cityNames)
	for _, r := range routeData {
		m.AddRoute(r.from, r.to, r.length, r.color)
	}
	for _, t := range ticketData {
		m.AddTicket(t.from, t.to, t.points)
	}
	return m
}

// GLOBAL DATA. A small Swiss rail network, sized so that four seats with the
// default car supply can fill it.

const (
	Geneve City = iota
	Lausanne
	Neuchatel
	Fribourg
	Bern
	Sion
	Basel
	Olten
	Luzern
	Zurich
	Schaffhausen
	StGallen
	Chur
	Lugano
	Andermatt
)

var cityNames = []string{
	"Genève", "Lausanne", "Neuchâtel", "Fribourg", "Bern", "Sion", "Basel", "Olten",
	"Luzern", "Zürich", "Schaffhausen", "St. Gallen", "Chur", "Lugano", "Andermatt",
}

var routeData = []struct {
	from, to City
	length   int
	color    Color
}{
	{Geneve, Lausanne, 2, Red},
	{Geneve, Sion, 4, Blue},
	{Lausanne, Neuchatel, 2, Green},
	{Lausanne, Fribourg, 2, Gray},
	{Lausanne, Sion, 3, Yellow},
	{Neuchatel, Bern, 2, Black},
	{Neuchatel, Basel, 4, Gray},
	{Fribourg, Bern, 1, Gray},
	{Bern, Sion, 3, Red},
	{Bern, Olten, 2, Blue},
	{Bern, Luzern, 3, Gray},
	{Basel, Olten, 1, Yellow},
	{Basel, Zurich, 3, Green},
	{Olten, Luzern, 2, Red},
	{Olten, Zurich, 2, Black},
	{Luzern, Zurich, 2, Yellow},
	{Luzern, Andermatt, 3, Green},
	{Zurich, Schaffhausen, 1, Blue},
	{Zurich, StGallen, 3, Red},
	{Schaffhausen, StGallen, 3, Gray},
	{Zurich, Chur, 4, Gray},
	{StGallen, Chur, 3, Black},
	{Chur, Andermatt, 3, Blue},
	{Andermatt, Sion, 4, Black},
	{Andermatt, Lugano, 3, Red},
	{Chur, Lugano, 4, Yellow},
	{Sion, Lugano, 4, Green},
	{Basel, Schaffhausen, 3, Blue},
	{Fribourg, Neuchatel, 1, Yellow},
	{Geneve, Fribourg, 3, Black},
}

var ticketData = []struct {
	from, to City
	points   int
}{
	{Geneve, Bern, 5},
	{Geneve, Basel, 8},
	{Geneve, Zurich, 9},
	{Geneve, StGallen, 12},
	{Geneve, Lugano, 8},
	{Lausanne, Luzern, 6},
	{Neuchatel, Chur, 10},
	{Fribourg, Schaffhausen, 6},
	{Bern, Lugano, 7},
	{Basel, Chur, 7},
	{Basel, Andermatt, 6},
	{Sion, Zurich, 7},
	{Luzern, StGallen, 5},
	{Olten, Lugano, 8},
	{Schaffhausen, Lugano, 9},
	{Neuchatel, Luzern, 5},
	{Lausanne, Chur, 11},
	{StGallen, Andermatt, 6},
	{Basel, Bern, 3},
	{Zurich, Lugano, 8},
}
