package searcher

import "math"

type ucb1 struct {
	lnN float64
}

func newUCB1(parentVisits int) ucb1 {
	if parentVisits == 0 {
		panic("N cannot be 0")
	}
	return ucb1{lnN: math.Log(float64(parentVisits))}
}

// evaluate scores a visited child. Callers short-circuit unvisited children.
func (u ucb1) evaluate(wins float64, visits int) float64 {
	if visits == 0 {
		panic("n cannot be 0")
	}
	// UCB1 = w/n + C*sqrt(ln(N)/n)
	n := float64(visits)
	return wins/n + C*math.Sqrt(u.lnN/n)
}

// score is -Inf for children that hand an opponent an immediate win.
func (u ucb1) score(n *node) float64 {
	if n.immediateLoss {
		return math.Inf(-1)
	}
	return u.evaluate(n.wins, n.visits)
}
