package searcher

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gat/experiments/metrics"
	"gat/game"

	"github.com/rs/zerolog/log"
)

// DefaultMaxDepth bounds iterative deepening when no other limit is given.
const DefaultMaxDepth = 4

var errDeadline = errors.New("search deadline exceeded")

type Option func(s *AlphaBeta)

// AlphaBeta is a depth-limited negamax searcher with alpha-beta pruning,
// iterative deepening and a per-search transposition table. It is
// deterministic: the same position and options always produce the same move.
type AlphaBeta struct {
	maxDepth int
	duration time.Duration
	weights  game.Weights
	metrics  metrics.Collector
	table    map[game.Position]tableEntry
}

// Bound classification for transposition entries.
const (
	boundExact int8 = iota
	boundLower
	boundUpper
)

// tableEntry caches the outcome of searching a position at a given remaining
// depth. Entries are reused only at the exact same depth so a cached value is
// always interchangeable with re-searching the node.
type tableEntry struct {
	depth int
	score float64
	bound int8
}

func WithMaxDepth(depth int) Option {
	return func(s *AlphaBeta) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

// WithDuration sets a soft move budget. The searcher finishes the deepest
// iteration that completed before the deadline.
func WithDuration(duration time.Duration) Option {
	return func(s *AlphaBeta) {
		if duration > 0 {
			s.duration = duration
		}
	}
}

func WithWeights(weights game.Weights) Option {
	return func(s *AlphaBeta) {
		s.weights = weights
	}
}

func WithMetrics() Option {
	return func(s *AlphaBeta) {
		s.metrics = metrics.NewCollector()
	}
}

func NewAlphaBeta(options ...Option) *AlphaBeta {
	s := &AlphaBeta{ // Default values
		maxDepth: DefaultMaxDepth,
		weights:  game.DefaultWeights(),
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Result is the outcome of one move search.
type Result struct {
	BestMove  game.Move // zero when the position offers no move
	Score     float64
	Depth     int  // deepest fully completed iteration
	Truncated bool // the deadline expired before depth 1 completed
}

// FindBestMove runs iterative deepening from depth 1 up to the configured
// maximum, keeping the best move of the deepest completed iteration. Each
// iteration seeds the next one's move ordering with its best move.
func (s *AlphaBeta) FindBestMove(pos game.Position) (Result, metrics.SearchMetric) {
	s.metrics.Start()
	s.table = make(map[game.Position]tableEntry, 1024)

	var deadline time.Time
	if s.duration > 0 {
		deadline = time.Now().Add(s.duration)
	}

	moves := s.orderMoves(pos, pos.LegalMoves())
	if len(moves) == 0 {
		result := Result{Score: game.Evaluate(pos, s.weights)}
		metric := s.metrics.Complete()
		metric.Score = result.Score
		return result, metric
	}

	// Fallback before any iteration completes: the first ordered move.
	result := Result{
		BestMove:  moves[0],
		Score:     game.Evaluate(pos, s.weights),
		Truncated: true,
	}
	for depth := 1; depth <= s.maxDepth; depth++ {
		move, score, err := s.searchRoot(pos, moves, result.BestMove, depth, deadline)
		if err != nil {
			log.Warn().Int("depth", depth).Msgf("search stopped early: %v", err)
			break
		}
		result = Result{BestMove: move, Score: score, Depth: depth}
		s.metrics.SetDepth(depth)
	}

	s.metrics.SetTruncated(result.Truncated)
	metric := s.metrics.Complete()
	metric.Score = result.Score
	return result, metric
}

// FindMove adapts FindBestMove to the engine's agent contract.
func (s *AlphaBeta) FindMove(pos game.Position) (game.Move, metrics.SearchMetric, error) {
	result, metric := s.FindBestMove(pos)
	if result.BestMove.IsZero() {
		return game.Move{}, metric, fmt.Errorf("no legal move for %v", pos.Turn())
	}
	return result.BestMove, metric, nil
}

func (s *AlphaBeta) searchRoot(pos game.Position, moves []game.Move, prior game.Move, depth int, deadline time.Time) (game.Move, float64, error) {
	ordered := moves
	if !prior.IsZero() {
		ordered = priorFirst(moves, prior)
	}

	best := ordered[0]
	bestScore := math.Inf(-1)
	alpha, beta := math.Inf(-1), math.Inf(1)
	for _, m := range ordered {
		next, err := pos.Apply(m)
		if err != nil {
			panic(fmt.Sprintf("generated move %v rejected: %v", m, err))
		}
		score, err := s.negamax(next, depth-1, -beta, -alpha, deadline)
		if err != nil {
			return game.Move{}, 0, err
		}
		score = -score
		// Strictly greater: ties keep the earlier move, so repeated
		// searches pick the same line.
		if score > bestScore {
			best = m
			bestScore = score
		}
		if score > alpha {
			alpha = score
		}
	}
	return best, bestScore, nil
}

func (s *AlphaBeta) negamax(pos game.Position, depth int, alpha, beta float64, deadline time.Time) (float64, error) {
	if !deadline.IsZero() && time.Now().After(deadline) {
		return 0, errDeadline
	}
	s.metrics.AddNode()
	if _, decided := pos.Winner(); decided || depth == 0 {
		return game.Evaluate(pos, s.weights), nil
	}

	if entry, ok := s.table[pos]; ok && entry.depth == depth {
		switch entry.bound {
		case boundExact:
			return entry.score, nil
		case boundLower:
			alpha = math.Max(alpha, entry.score)
		case boundUpper:
			beta = math.Min(beta, entry.score)
		}
		if alpha >= beta {
			return entry.score, nil
		}
	}
	alphaOrig := alpha

	moves := s.orderMoves(pos, pos.LegalMoves())
	if len(moves) == 0 {
		return -game.WinScore, nil // no moves loses
	}

	best := math.Inf(-1)
	for _, m := range moves {
		next, err := pos.Apply(m)
		if err != nil {
			panic(fmt.Sprintf("generated move %v rejected: %v", m, err))
		}
		score, err := s.negamax(next, depth-1, -beta, -alpha, deadline)
		if err != nil {
			return 0, err
		}
		score = -score
		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			s.metrics.AddCutoff()
			break
		}
	}

	bound := boundExact
	switch {
	case best <= alphaOrig:
		bound = boundUpper
	case best >= beta:
		bound = boundLower
	}
	s.table[pos] = tableEntry{depth: depth, score: best, bound: bound}
	return best, nil
}

// orderMoves sorts candidates into guard moves, captures, then quiet moves,
// keeping the generator's order within each class. Guard moves come first
// because they decide games; captures prune better than quiet moves.
func (s *AlphaBeta) orderMoves(pos game.Position, moves []game.Move) []game.Move {
	var guards, captures, quiet []game.Move
	for _, m := range moves {
		switch {
		case pos.At(m.From).Guard:
			guards = append(guards, m)
		case !pos.At(m.To).Empty():
			captures = append(captures, m)
		default:
			quiet = append(quiet, m)
		}
	}
	ordered := make([]game.Move, 0, len(moves))
	ordered = append(ordered, guards...)
	ordered = append(ordered, captures...)
	ordered = append(ordered, quiet...)
	return ordered
}

// priorFirst moves the previous iteration's best move to the front.
func priorFirst(moves []game.Move, prior game.Move) []game.Move {
	ordered := make([]game.Move, 0, len(moves))
	ordered = append(ordered, prior)
	for _, m := range moves {
		if m != prior {
			ordered = append(ordered, m)
		}
	}
	return ordered
}
