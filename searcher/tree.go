package searcher

import (
	"math"
	"time"

	"tickets/experiments/metrics"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const root nodeID = 0

// tree owns every node of one search in an arena. Parent and child links are
// arena indices, so back-navigation never keeps a node alive on its own.
type tree struct {
	nodes             []node
	duration          time.Duration
	simulationTimeout time.Duration
	rng               *rand.Rand
	metrics           metrics.Collector
}

func newTree(initial State, duration, simulationTimeout time.Duration, rng *rand.Rand, collector metrics.Collector) *tree {
	return &tree{
		nodes:             []node{newNode(initial, noParent)},
		duration:          duration,
		simulationTimeout: simulationTimeout,
		rng:               rng,
		metrics:           collector,
	}
}

// Candidate is one immediate successor of the root with its search statistics.
type Candidate struct {
	State  State
	Visits int
	Wins   float64
}

// run performs MCTS iterations until the time budget is used up and returns
// the statistics of the root's children.
func (t *tree) run() ([]Candidate, error) {
	// Add the first set of children so there is always a move to suggest
	t.expand(root)
	if len(t.nodes[root].children) == 0 {
		return nil, ErrNoLegalMoves
	}

	start := time.Now()
	iterations := 0
	for time.Since(start) < t.duration {
		t.iterate()
		iterations++
	}

	log.Debug().
		Int("iterations", iterations).
		Int("nodes", len(t.nodes)).
		Float64("seconds", time.Since(start).Seconds()).
		Msg("tree search complete")

	return t.candidates(), nil
}

func (t *tree) iterate() {
	// Selection and expansion
	id := t.selectNode()

	// Simulation
	winners := t.nodes[id].simulate(t.simulationTimeout)
	if len(winners) == 0 {
		t.metrics.AddTimeout()
	} else {
		t.metrics.AddFullPlayout()
	}

	// Backpropagation
	t.update(id, winners)
	t.metrics.AddEpisode()
}

// expand adds one child per legal successor. A node is expanded at most once.
func (t *tree) expand(id nodeID) {
	if t.nodes[id].expanded {
		panic("tried to expand an expanded node")
	}
	t.nodes[id].expanded = true

	successors := t.nodes[id].state.LegalSuccessors()
	children := make([]nodeID, 0, len(successors))
	for _, successor := range successors {
		children = append(children, nodeID(len(t.nodes)))
		t.nodes = append(t.nodes, newNode(successor, id))
	}
	t.nodes[id].children = children
}

// selectNode descends by UCB1 to a leaf. A leaf visited before is expanded and
// one of its new children is returned instead, unless it has none.
func (t *tree) selectNode() nodeID {
	id := root
	for len(t.nodes[id].children) > 0 {
		id = t.pickChild(id)
	}

	if t.nodes[id].visits == 0 {
		return id
	}

	if !t.nodes[id].expanded {
		t.expand(id)
	}
	children := t.nodes[id].children
	if len(children) == 0 { // Terminal or waiting on hidden information
		return id
	}
	return children[t.rng.Intn(len(children))]
}

func (t *tree) pickChild(id nodeID) nodeID {
	parent := &t.nodes[id]

	var policy *ucb1
	best := noParent
	bestScore := math.Inf(-1)
	for _, childID := range parent.children {
		child := &t.nodes[childID]
		if child.visits == 0 {
			return childID
		}
		if policy == nil {
			p := newUCB1(parent.visits)
			policy = &p
		}
		if score := policy.score(child); score >= bestScore {
			bestScore = score
			best = childID
		}
	}
	return best
}

func (t *tree) update(id nodeID, winners []Seat) {
	// A finished game that the parent's mover did not win means the parent
	// allows an immediate losing reply, so it is never selected again
	if parentID := t.nodes[id].parent; parentID != noParent {
		parent := &t.nodes[parentID]
		result := t.nodes[id].state.Winners()
		if len(result) > 0 && !contains(result, parent.state.LastMover()) {
			parent.markImmediateLoss()
		}
	}

	for cur := id; cur != noParent; cur = t.nodes[cur].parent {
		t.nodes[cur].addResult(winners)
	}
}

func (t *tree) candidates() []Candidate {
	children := t.nodes[root].children
	candidates := make([]Candidate, len(children))
	for i, childID := range children {
		child := &t.nodes[childID]
		candidates[i] = Candidate{
			State:  child.state,
			Visits: child.visits,
			Wins:   child.wins,
		}
	}
	return candidates
}

// robust returns the index of the most visited candidate. Ties keep the first.
func robust(candidates []Candidate) int {
	if len(candidates) == 0 {
		panic("no candidates to choose from")
	}

	best := 0
	for i, candidate := range candidates[1:] {
		if candidate.Visits > candidates[best].Visits {
			best = i + 1
		}
	}
	return best
}

// expectedValue is the candidate's win rate as a percentage of WinCredit.
func (c Candidate) expectedValue() float64 {
	if c.Visits == 0 {
		return 0
	}
	return c.Wins / float64(c.Visits) * WinCredit
}
