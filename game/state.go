package game

import (
	"errors"
	"fmt"
	"math"

	"tickets/determinize"
	"tickets/searcher"

	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
	"lukechampine.com/frand"
)

const (
	MinSeats = 2
	MaxSeats = 4
)

const NoOwner = searcher.NoSeat

var ErrInvalidConfig = errors.New("invalid game config")

// GameState is one position of the game as known to some observer. It is used
// through a pointer but treated as a value: transitions work on a Copy.
//
// Unseen cards (the draw pile and every hidden hand) share the Deck pool, so
// Deck.Len() == DeckSize + the UnknownCards of all seats. Tickets follow the
// same rule with TicketPool and TicketStack.
type GameState struct {
	Map         *Map
	Config      Config
	Players     []Player
	Deck        *determinize.Pool[Color]
	DeckSize    int // Cards in the draw pile
	Discards    Hand
	TicketPool  *determinize.Pool[int]
	TicketStack int             // Tickets in the stack
	Owners      []searcher.Seat // Owner per route ID, NoOwner if unclaimed
	Current     searcher.Seat   // The seat to act
	Mover       searcher.Seat   // The seat whose action produced this state
	Action      Action          // The action that produced this state
	Turn        int
	FinalTurn   bool // The current seat plays the last turn of the game
	Over        bool
	rng         *rand.Rand // Source of authoritative draws, only set on states built by NewGame and Apply
}

// NewGame deals a new game on the built-in map. All information is known to
// the returned state; hand it to seats through ObservedBy. A zero seed deals
// from a random seed.
func NewGame(config Config, seed uint64) (*GameState, error) {
	if seed == 0 {
		seed = frand.Uint64n(math.MaxUint64)
	}
	return newGame(CreateMap(), config, rand.New(rand.NewSource(seed)))
}

func newGame(m *Map, config Config, rng *rand.Rand) (*GameState, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	tickets := make([]int, len(m.Tickets))
	for i := range tickets {
		tickets[i] = i
	}
	s := &GameState{
		Map:        m,
		Config:     config,
		Players:    make([]Player, config.Seats),
		Deck:       newDeck(config),
		TicketPool: determinize.NewPool(tickets...),
		Owners:     make([]searcher.Seat, len(m.Routes)),
		Current:    0,
		Mover:      searcher.NoSeat,
		rng:        rng,
	}
	for i := range s.Owners {
		s.Owners[i] = NoOwner
	}

	// Dealing is resolving what every seat holds from full pools
	for i := range s.Players {
		s.Players[i] = Player{
			UnknownCards:   config.HandSize,
			UnknownPending: config.TicketsDealt,
			MinKeep:        config.OpeningKeep,
			Cars:           config.Cars,
		}
	}
	s.DeckSize = s.Deck.Len() - config.Seats*config.HandSize
	s.TicketStack = s.TicketPool.Len() - config.Seats*config.TicketsDealt
	if s.DeckSize < 0 || s.TicketStack < 0 {
		return nil, fmt.Errorf("%w: not enough cards or tickets to deal %d seats", ErrInvalidConfig, config.Seats)
	}
	if err := s.resolve(rng); err != nil {
		return nil, fmt.Errorf("failed to deal: %w", err)
	}
	return s, nil
}

// Copy returns an independent copy. The copy has no authoritative random
// source, so searching it never consumes the dealer's draws.
func (s *GameState) Copy() *GameState {
	c := *s
	c.rng = nil
	c.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		c.Players[i] = p.copy()
	}
	c.Deck = s.Deck.Clone()
	c.TicketPool = s.TicketPool.Clone()
	c.Owners = slices.Clone(s.Owners)
	return &c
}

// ObservedBy returns the information set of seat: every other seat's cards
// and tickets move back into the unseen pools and are only counted.
func (s *GameState) ObservedBy(seat searcher.Seat) *GameState {
	view := s.Copy()
	for i := range view.Players {
		if searcher.Seat(i) == seat {
			continue
		}
		p := &view.Players[i]

		addHand(view.Deck, p.Hand)
		p.UnknownCards += p.Hand.Total()
		p.Hand = Hand{}

		view.TicketPool.Add(p.Tickets...)
		p.UnknownTickets += len(p.Tickets)
		p.Tickets = nil

		view.TicketPool.Add(p.Pending...)
		p.UnknownPending += len(p.Pending)
		p.Pending = nil
	}
	return view
}

func (s *GameState) LastMover() searcher.Seat {
	return s.Mover
}

func (s *GameState) LastAction() Action {
	return s.Action
}

// LegalSuccessors is empty once the game is over and while the acting seat
// still holds cards or pending tickets nobody has resolved.
func (s *GameState) LegalSuccessors() []searcher.State {
	actions := s.LegalActions()
	successors := make([]searcher.State, len(actions))
	for i, action := range actions {
		successors[i] = s.play(action)
	}
	return successors
}

// RandomSuccessor samples every hidden card and ticket on a copy and then
// plays a uniformly chosen legal action on it.
func (s *GameState) RandomSuccessor() searcher.State {
	successors, err := determinize.ThenBranch(s.Copy(), s.resolvers(nil), randomPlay)
	if err != nil {
		panic(fmt.Errorf("inconsistent hidden information: %w", err))
	}
	return successors[0]
}

// randomPlay plays on g in place. A seat left without any legal action ends
// the game.
func randomPlay(g *GameState) []*GameState {
	actions := g.LegalActions()
	if len(actions) == 0 {
		g.finish()
		return []*GameState{g}
	}
	g.apply(determinize.Choose(nil, actions))
	return []*GameState{g}
}

func (s *GameState) Winners() []searcher.Seat {
	if !s.Over {
		return nil
	}
	return s.winners()
}

// LegalActions returns the actions open to the acting seat, in a fixed order.
func (s *GameState) LegalActions() []Action {
	p := &s.Players[s.Current]
	if s.Over || !p.known() {
		return nil
	}
	if len(p.Pending) > 0 {
		return keepActions(len(p.Pending), min(p.MinKeep, len(p.Pending)))
	}

	actions := s.claimActions()
	if s.DeckSize+s.Discards.Total() > 0 {
		actions = append(actions, Action{Kind: DrawCards})
	}
	if s.TicketStack > 0 {
		actions = append(actions, Action{Kind: DrawTickets})
	}
	return actions
}

// Apply is the authoritative transition. Blind draws are dealt from the
// state's own random source, so Apply is meant for fully known states.
func (s *GameState) Apply(action Action) (*GameState, error) {
	if s.Over {
		return nil, ErrGameOver
	}
	if !slices.Contains(s.LegalActions(), action) {
		return nil, fmt.Errorf("%w: seat %d cannot %s", ErrIllegalAction, s.Current, action)
	}
	next := s.Copy()
	next.rng = s.rng
	next.apply(action)
	if err := next.resolve(next.rng); err != nil {
		return nil, fmt.Errorf("failed to draw: %w", err)
	}
	return next, nil
}

func (s *GameState) play(action Action) *GameState {
	next := s.Copy()
	next.apply(action)
	return next
}

// apply plays action in place. Drawn cards and tickets stay unknown until
// resolved.
func (s *GameState) apply(action Action) {
	seat := s.Current
	p := &s.Players[seat]
	s.Mover, s.Action = seat, action

	switch action.Kind {
	case ClaimRoute:
		route := s.Map.Routes[action.Route]
		paid := p.Hand.payment(action.Color, route.Length)
		p.Hand.remove(paid)
		s.Discards.add(paid)
		p.Cars -= route.Length
		p.Routes = append(p.Routes, route.ID)
		s.Owners[route.ID] = seat
		s.endTurn()
	case DrawCards:
		for i := 0; i < s.Config.CardsDrawn && s.drawCard(p); i++ {
		}
		s.endTurn()
	case DrawTickets:
		n := min(s.Config.TicketsDrawn, s.TicketStack)
		s.TicketStack -= n
		p.UnknownPending += n
		p.MinKeep = 1
	case KeepTickets:
		for i, id := range p.Pending {
			if action.Keep&(1<<i) != 0 {
				p.Tickets = append(p.Tickets, id)
			} else { // Back under the stack
				s.TicketPool.Add(id)
				s.TicketStack++
			}
		}
		p.Pending = nil
		s.endTurn()
	default:
		panic(fmt.Sprintf("unknown action kind %d", action.Kind))
	}
}

// drawCard moves one card off the draw pile into p's unknown cards,
// reshuffling the discards first if the pile is empty.
func (s *GameState) drawCard(p *Player) bool {
	if s.DeckSize == 0 {
		addHand(s.Deck, s.Discards)
		s.DeckSize = s.Discards.Total()
		s.Discards = Hand{}
	}
	if s.DeckSize == 0 {
		return false
	}
	s.DeckSize--
	p.UnknownCards++
	return true
}

func (s *GameState) endTurn() {
	if s.FinalTurn {
		s.finish()
		return
	}
	s.Turn++
	s.Current = (s.Current + 1) % searcher.Seat(len(s.Players))
	if s.Players[s.Current].Cars < s.Config.FinalCars {
		s.FinalTurn = true
	}
	if s.Players[s.Current].known() && len(s.LegalActions()) == 0 {
		s.finish()
	}
}

func (s *GameState) finish() {
	s.Over = true
	// Scoring needs every ticket, so whatever is still hidden gets sampled
	if err := s.resolve(s.rng); err != nil {
		panic(fmt.Errorf("inconsistent hidden information: %w", err))
	}
}

func (s *GameState) String() string {
	return fmt.Sprintf("turn %d, seat %d to act, last %d: %s, over: %t", s.Turn, s.Current, s.Mover, s.Action, s.Over)
}
