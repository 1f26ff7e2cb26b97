package engine

import (
	"time"

	"gat/experiments/metrics"
	"gat/game"

	"github.com/rs/zerolog/log"
)

// Agent produces one move for the side to move. FindMove returns an error
// when no move exists; returning an illegal move forfeits the game.
type Agent interface {
	FindMove(pos game.Position) (game.Move, metrics.SearchMetric, error)
}

// Game-over reasons recorded in Outcome.Reason.
const (
	ReasonCastle        = "castle"
	ReasonGuardCaptured = "guard captured"
	ReasonNoMoves       = "no moves"
	ReasonForfeit       = "forfeit"
	ReasonPlyLimit      = "ply limit"
)

type Engine struct {
	red      Agent
	blue     Agent
	opening  game.Position
	maxPlies int
}

// Outcome is the result of one finished game.
type Outcome struct {
	Winner    game.Color // NoColor on a draw
	Reason    string
	Plies     int
	StartTime time.Time
	EndTime   time.Time
	Moves     []metrics.MoveMetric
}

func LocalEngine(red, blue Agent, opening game.Position, maxPlies int) *Engine {
	if red == nil || blue == nil {
		panic("need an agent for each side")
	}
	if maxPlies <= 0 {
		panic("need a positive ply limit")
	}
	return &Engine{
		red:      red,
		blue:     blue,
		opening:  opening,
		maxPlies: maxPlies,
	}
}

// Run plays the game to its end: a decided position, a side that cannot
// move, an agent forfeit, or the ply limit (a draw).
func (e *Engine) Run() Outcome {
	start := time.Now()
	pos := e.opening
	var record []metrics.MoveMetric

	log.Info().Msgf("%v is starting", pos.Turn())

	plies := 0
	for plies < e.maxPlies {
		if winner, decided := pos.Winner(); decided {
			return e.finish(winner, winReason(pos, winner), plies, start, record)
		}

		mover := pos.Turn()
		agent := e.red
		if mover == game.Blue {
			agent = e.blue
		}

		move, metric, err := agent.FindMove(pos)
		if err != nil {
			if len(pos.LegalMoves()) == 0 {
				return e.finish(mover.Opponent(), ReasonNoMoves, plies, start, record)
			}
			log.Warn().Msgf("%v found no move despite legal options: %v", mover, err)
			return e.finish(mover.Opponent(), ReasonForfeit, plies, start, record)
		}
		next, err := pos.Apply(move)
		if err != nil {
			log.Warn().Msgf("%v played illegal move %v: %v", mover, move, err)
			return e.finish(mover.Opponent(), ReasonForfeit, plies, start, record)
		}

		plies++
		record = append(record, metrics.MoveMetric{
			Step:         plies,
			Player:       mover.String(),
			Move:         move.String(),
			SearchMetric: metric,
		})
		pos = next
	}

	if winner, decided := pos.Winner(); decided {
		return e.finish(winner, winReason(pos, winner), plies, start, record)
	}
	return e.finish(game.NoColor, ReasonPlyLimit, plies, start, record)
}

func (e *Engine) finish(winner game.Color, reason string, plies int, start time.Time, record []metrics.MoveMetric) Outcome {
	log.Info().Msgf("game over after %d plies: winner=%v reason=%s", plies, winner, reason)
	return Outcome{
		Winner:    winner,
		Reason:    reason,
		Plies:     plies,
		StartTime: start,
		EndTime:   time.Now(),
		Moves:     record,
	}
}

// winReason tells a guard capture apart from a castle arrival.
func winReason(pos game.Position, winner game.Color) string {
	if _, alive := pos.GuardSquare(winner.Opponent()); !alive {
		return ReasonGuardCaptured
	}
	return ReasonCastle
}

// GameMetric converts an outcome into the record format of the metrics
// writers.
func (o Outcome) GameMetric() metrics.GameMetric {
	return metrics.GameMetric{
		Winner:    o.Winner.String(),
		Reason:    o.Reason,
		Plies:     o.Plies,
		StartTime: o.StartTime,
		EndTime:   o.EndTime,
		Duration:  o.EndTime.Sub(o.StartTime),
	}
}
