package searcher

import (
	"fmt"
	"time"
)

// nodeID addresses a node in the tree's arena.
type nodeID int

const noParent nodeID = -1

type node struct {
	state         State
	parent        nodeID
	children      []nodeID
	expanded      bool
	wins          float64 // Ties split WinCredit, so wins are fractional
	visits        int
	immediateLoss bool
}

func newNode(state State, parent nodeID) node {
	return node{
		state:  state,
		parent: parent,
	}
}

// simulate plays random successors from the node's state until somebody wins.
// It gives up with no winners once timeout has elapsed.
func (n *node) simulate(timeout time.Duration) []Seat {
	state := n.state
	start := time.Now()

	for {
		if winners := state.Winners(); len(winners) > 0 {
			return winners
		}
		if time.Since(start) > timeout {
			return nil // A timeout is a win for nobody
		}
		state = state.RandomSuccessor()
	}
}

func (n *node) addResult(winners []Seat) {
	if contains(winners, n.state.LastMover()) {
		n.wins += WinCredit / float64(len(winners))
	}
	n.visits++
}

func (n *node) markImmediateLoss() {
	n.immediateLoss = true
}

func (n *node) hasImmediateLoss() bool {
	return n.immediateLoss
}

func (n *node) String() string {
	return fmt.Sprintf("node{wins: %.2f, visits: %d, children: %d, immediateLoss: %t}",
		n.wins, n.visits, len(n.children), n.immediateLoss)
}
