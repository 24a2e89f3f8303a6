package searcher

import (
	"math"
	"testing"
	"time"

	"tickets/experiments/metrics"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func newTestTree(state State, duration time.Duration) *tree {
	return newTree(state, duration, time.Second, rand.New(rand.NewSource(1)), metrics.NewDummyCollector())
}

func TestTreeExpand(t *testing.T) {
	t.Run("adding one child per legal successor", func(t *testing.T) {
		a := mockState{mover: 0, winners: []Seat{0}}
		b := mockState{mover: 0, winners: []Seat{1}}
		tr := newTestTree(mockState{mover: 1, successors: []State{a, b}}, time.Second)

		tr.expand(root)

		children := tr.nodes[root].children
		require.Len(t, children, 2, "Root should have a child per successor")
		require.Equal(t, a, tr.nodes[children[0]].state, "Children should keep successor order")
		require.Equal(t, b, tr.nodes[children[1]].state, "Children should keep successor order")
		for _, id := range children {
			require.Equal(t, root, tr.nodes[id].parent, "Children should point back to their parent")
			require.False(t, tr.nodes[id].expanded, "New children should not be expanded")
		}
	})

	t.Run("panicking on a second expansion", func(t *testing.T) {
		tr := newTestTree(mockState{mover: 1, successors: []State{mockState{}}}, time.Second)
		tr.expand(root)

		require.Panics(t, func() {
			tr.expand(root)
		}, "Should panic when expanding an expanded node")
	})

	t.Run("staying childless without successors", func(t *testing.T) {
		tr := newTestTree(mockState{mover: 1}, time.Second)

		tr.expand(root)

		require.Empty(t, tr.nodes[root].children, "A state without successors has no children")
		require.True(t, tr.nodes[root].expanded, "The node should still count as expanded")
		require.Panics(t, func() {
			tr.expand(root)
		}, "Should panic when expanding a childless expanded node")
	})
}

func TestTreePickChild(t *testing.T) {
	setup := func(stats ...[2]float64) *tree {
		successors := make([]State, len(stats))
		for i := range successors {
			successors[i] = mockState{mover: 0}
		}
		tr := newTestTree(mockState{mover: 1, successors: successors}, time.Second)
		tr.expand(root)
		for i, id := range tr.nodes[root].children {
			tr.nodes[id].wins = stats[i][0]
			tr.nodes[id].visits = int(stats[i][1])
			tr.nodes[root].visits += int(stats[i][1])
		}
		return tr
	}

	t.Run("picking the first unvisited child", func(t *testing.T) {
		tr := setup([2]float64{10, 1}, [2]float64{0, 0}, [2]float64{0, 0})

		got := tr.pickChild(root)

		require.Equal(t, tr.nodes[root].children[1], got, "Should pick the first child without visits")
	})

	t.Run("picking the child with max UCB1", func(t *testing.T) {
		tr := setup([2]float64{10, 5}, [2]float64{40, 5}, [2]float64{20, 5})

		got := tr.pickChild(root)

		require.Equal(t, tr.nodes[root].children[1], got, "Should pick the child with max UCB1 score")
	})

	t.Run("keeping the last child on a UCB1 tie", func(t *testing.T) {
		tr := setup([2]float64{20, 5}, [2]float64{20, 5}, [2]float64{0, 5})

		got := tr.pickChild(root)

		require.Equal(t, tr.nodes[root].children[1], got, "Should keep the last child with the max score")
	})

	t.Run("never picking a child flagged as an immediate loss", func(t *testing.T) {
		tr := setup([2]float64{1000, 1}, [2]float64{0, 50})
		flagged := tr.nodes[root].children[0]
		tr.nodes[flagged].markImmediateLoss()

		for i := 0; i < 10; i++ {
			require.NotEqual(t, flagged, tr.pickChild(root), "Should never pick a flagged child")
		}
	})

	t.Run("still picking a child when every child is flagged", func(t *testing.T) {
		tr := setup([2]float64{10, 1}, [2]float64{10, 1})
		for _, id := range tr.nodes[root].children {
			tr.nodes[id].markImmediateLoss()
		}

		got := tr.pickChild(root)

		require.Equal(t, tr.nodes[root].children[1], got, "Should fall back to the last flagged child")
	})
}

func TestTreeSelectNode(t *testing.T) {
	t.Run("simulating an unvisited leaf without expanding it", func(t *testing.T) {
		tr := newTestTree(toyState{mover: 1}, time.Second)
		tr.expand(root)

		got := tr.selectNode()

		require.Equal(t, tr.nodes[root].children[0], got, "Should select the first unvisited child")
		require.False(t, tr.nodes[got].expanded, "Should not expand a leaf visited for the first time")
	})

	t.Run("expanding a visited leaf and picking one of its new children", func(t *testing.T) {
		tr := newTestTree(toyState{mover: 1}, time.Second)
		tr.expand(root)
		tr.nodes[root].visits = 3
		for _, id := range tr.nodes[root].children {
			tr.nodes[id].visits = 1
		}

		got := tr.selectNode()

		parent := tr.nodes[got].parent
		require.NotEqual(t, root, parent, "Should descend below the root's children")
		require.Equal(t, root, tr.nodes[parent].parent, "Should expand a child of the root")
		require.True(t, tr.nodes[parent].expanded, "Should expand the visited leaf")
		require.Contains(t, tr.nodes[parent].children, got, "Should pick a fresh child of the leaf")
	})

	t.Run("returning a visited leaf that has no successors", func(t *testing.T) {
		terminal := mockState{mover: 0, winners: []Seat{0}}
		tr := newTestTree(mockState{mover: 1, successors: []State{terminal}}, time.Second)
		tr.expand(root)
		child := tr.nodes[root].children[0]
		tr.nodes[root].visits = 1
		tr.nodes[child].visits = 1

		got := tr.selectNode()
		again := tr.selectNode()

		require.Equal(t, child, got, "Should simulate on the childless leaf itself")
		require.Equal(t, child, again, "Should not expand the leaf a second time")
	})
}

func TestTreeUpdate(t *testing.T) {
	t.Run("adding the result to the whole path", func(t *testing.T) {
		tr := newTestTree(toyState{mover: 1}, time.Second)
		tr.expand(root)
		child := tr.nodes[root].children[2]
		tr.expand(child)
		grandChild := tr.nodes[child].children[0]

		tr.update(grandChild, []Seat{1})

		require.Equal(t, 1, tr.nodes[grandChild].visits, "Leaf should get a visit")
		require.Equal(t, 1, tr.nodes[child].visits, "Parent should get a visit")
		require.Equal(t, 1, tr.nodes[root].visits, "Root should get a visit")
		require.Equal(t, 10.0, tr.nodes[grandChild].wins, "Leaf mover 1 should get the win")
		require.Equal(t, 0.0, tr.nodes[child].wins, "Parent mover 0 lost")
		require.Equal(t, 10.0, tr.nodes[root].wins, "Root mover 1 should get the win")
		for _, id := range tr.nodes[root].children[:2] {
			require.Equal(t, 0, tr.nodes[id].visits, "Siblings off the path should not change")
		}
	})

	t.Run("flagging a parent whose mover loses to an immediate reply", func(t *testing.T) {
		reply := mockState{mover: 1, winners: []Seat{1}}
		move := mockState{mover: 0, successors: []State{reply}}
		tr := newTestTree(mockState{mover: 1, successors: []State{move}}, time.Second)
		tr.expand(root)
		moveID := tr.nodes[root].children[0]
		tr.expand(moveID)
		replyID := tr.nodes[moveID].children[0]

		tr.update(replyID, []Seat{1})

		require.True(t, tr.nodes[moveID].hasImmediateLoss(), "Move allowing a losing reply should be flagged")
		require.False(t, tr.nodes[root].hasImmediateLoss(), "Only the direct parent should be flagged")
	})

	t.Run("not flagging a parent whose mover shares the win", func(t *testing.T) {
		reply := mockState{mover: 1, winners: []Seat{0, 1}}
		move := mockState{mover: 0, successors: []State{reply}}
		tr := newTestTree(mockState{mover: 1, successors: []State{move}}, time.Second)
		tr.expand(root)
		moveID := tr.nodes[root].children[0]
		tr.expand(moveID)
		replyID := tr.nodes[moveID].children[0]

		tr.update(replyID, []Seat{0, 1})

		require.False(t, tr.nodes[moveID].hasImmediateLoss(), "A shared win is not a loss")
		require.Equal(t, 5.0, tr.nodes[moveID].wins, "Tied winners split the credit")
		require.Equal(t, 5.0, tr.nodes[replyID].wins, "Tied winners split the credit")
	})

	t.Run("not flagging on a timeout from an unfinished state", func(t *testing.T) {
		move := mockState{mover: 0, successors: []State{mockState{mover: 1}}}
		tr := newTestTree(mockState{mover: 1, successors: []State{move}}, time.Second)
		tr.expand(root)
		moveID := tr.nodes[root].children[0]

		tr.update(moveID, nil)

		require.False(t, tr.nodes[root].hasImmediateLoss(), "Unfinished states never flag their parent")
		require.Equal(t, 1, tr.nodes[moveID].visits, "A timeout still counts as a visit")
	})
}

func TestTreeIterate(t *testing.T) {
	t.Run("adding exactly one visit along one root-to-node path", func(t *testing.T) {
		tr := newTestTree(toyState{mover: 1}, time.Second)
		tr.expand(root)

		for i := 0; i < 200; i++ {
			before := make([]int, len(tr.nodes))
			for id := range tr.nodes {
				before[id] = tr.nodes[id].visits
			}

			tr.iterate()

			changed := map[nodeID]bool{}
			for id := range tr.nodes {
				old := 0
				if id < len(before) {
					old = before[id]
				}
				diff := tr.nodes[id].visits - old
				require.Contains(t, []int{0, 1}, diff, "Visits should grow by at most one per iteration")
				if diff == 1 {
					changed[nodeID(id)] = true
				}
			}
			require.True(t, changed[root], "Root should be on every path")

			leaves := 0
			for id := range changed {
				if id != root {
					require.True(t, changed[tr.nodes[id].parent], "Updated nodes should form a path")
				}
				childOnPath := false
				for _, child := range tr.nodes[id].children {
					childOnPath = childOnPath || changed[child]
				}
				if !childOnPath {
					leaves++
				}
			}
			require.Equal(t, 1, leaves, "Updated nodes should form a single path")
		}
	})

	t.Run("keeping wins within credit times visits", func(t *testing.T) {
		tr := newTestTree(toyState{mover: 1}, time.Second)
		tr.expand(root)

		for i := 0; i < 500; i++ {
			tr.iterate()
			for id := range tr.nodes {
				n := &tr.nodes[id]
				require.LessOrEqual(t, n.wins, WinCredit*float64(n.visits)+1e-9, "Wins should never exceed 10 x visits")
			}
		}
	})
}

func TestTreeRun(t *testing.T) {
	t.Run("failing without root successors", func(t *testing.T) {
		tr := newTestTree(mockState{mover: 1}, 10*time.Millisecond)

		_, err := tr.run()

		require.ErrorIs(t, err, ErrNoLegalMoves, "Should fail when there is no move to suggest")
	})

	t.Run("visiting the root once per iteration", func(t *testing.T) {
		tr := newTestTree(toyState{mover: 1}, 20*time.Millisecond)

		candidates, err := tr.run()

		require.NoError(t, err)
		require.Len(t, candidates, 3, "Should report every root successor")
		sum := 0
		for _, candidate := range candidates {
			sum += candidate.Visits
		}
		require.Equal(t, tr.nodes[root].visits, sum, "Every iteration passes through one root child")
	})
}

func TestRobust(t *testing.T) {
	t.Run("choosing the most visited candidate", func(t *testing.T) {
		got := robust([]Candidate{{Visits: 3, Wins: 30}, {Visits: 7}, {Visits: 5}})

		require.Equal(t, 1, got, "Should choose by visits, not by wins")
	})

	t.Run("keeping the first candidate on a tie", func(t *testing.T) {
		got := robust([]Candidate{{Visits: 2}, {Visits: 7}, {Visits: 7}})

		require.Equal(t, 1, got, "Should keep the first of the most visited")
	})

	t.Run("panicking without candidates", func(t *testing.T) {
		require.Panics(t, func() {
			robust(nil)
		}, "Should panic without candidates")
	})
}

func TestCandidateExpectedValue(t *testing.T) {
	require.Equal(t, 0.0, Candidate{}.expectedValue(), "Unvisited candidates have no value")
	require.InDelta(t, 50.0, Candidate{Visits: 4, Wins: 20}.expectedValue(), 1e-9, "Half the credit is 50 percent")
	require.False(t, math.IsNaN(Candidate{Visits: 1}.expectedValue()))
}
