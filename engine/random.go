package engine

import (
	"fmt"

	"gat/experiments/metrics"
	"gat/game"

	"golang.org/x/exp/rand"
)

// RandomAgent plays a uniformly random legal move. It is the weakest
// possible baseline and useful for smoke-testing game loops.
type RandomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent(seed uint64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) FindMove(pos game.Position) (game.Move, metrics.SearchMetric, error) {
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, metrics.SearchMetric{}, fmt.Errorf("no legal move for %v", pos.Turn())
	}
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{}, nil
}
