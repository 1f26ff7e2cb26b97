package searcher

import (
	"math"
	"testing"
	"time"

	"gat/game"

	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, fen string) game.Position {
	t.Helper()
	pos, err := game.Decode(fen)
	require.NoError(t, err, "decoding %q", fen)
	return pos
}

// minimax is the unpruned reference: alpha-beta must return the same root
// value.
func minimax(pos game.Position, depth int, w game.Weights) float64 {
	if _, decided := pos.Winner(); decided || depth == 0 {
		return game.Evaluate(pos, w)
	}
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return -game.WinScore
	}
	best := math.Inf(-1)
	for _, m := range moves {
		next, err := pos.Apply(m)
		if err != nil {
			panic(err)
		}
		if score := -minimax(next, depth-1, w); score > best {
			best = score
		}
	}
	return best
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	pos := mustDecode(t, "3RG3/2r14/3r23/1b35/7/3b23/3BG3 r")
	w := game.DefaultWeights()

	for depth := 1; depth <= 3; depth++ {
		s := NewAlphaBeta(WithMaxDepth(depth), WithWeights(w))
		result, _ := s.FindBestMove(pos)
		require.Equal(t, depth, result.Depth)

		wantMove, wantScore := fullWidthDeepening(s, pos, depth, w)
		require.InDelta(t, wantScore, result.Score, 1e-9,
			"pruning must not change the depth-%d root value", depth)
		require.Equal(t, wantMove, result.BestMove,
			"pruning must not change the depth-%d move choice", depth)
	}
}

// fullWidthDeepening mirrors the searcher's iterative deepening and root
// ordering but explores every branch without pruning.
func fullWidthDeepening(s *AlphaBeta, pos game.Position, maxDepth int, w game.Weights) (game.Move, float64) {
	moves := s.orderMoves(pos, pos.LegalMoves())
	best, bestScore := moves[0], game.Evaluate(pos, w)
	for depth := 1; depth <= maxDepth; depth++ {
		ordered := priorFirst(moves, best)
		bestScore = math.Inf(-1)
		for _, m := range ordered {
			next, err := pos.Apply(m)
			if err != nil {
				panic(err)
			}
			if score := -minimax(next, depth-1, w); score > bestScore {
				best, bestScore = m, score
			}
		}
	}
	return best, bestScore
}

func TestAlphaBetaDeterministic(t *testing.T) {
	pos := mustDecode(t, "3RG3/2r14/3r23/1b35/7/3b23/3BG3 b")
	s := NewAlphaBeta(WithMaxDepth(3))

	first, _ := s.FindBestMove(pos)
	for i := 0; i < 3; i++ {
		again, _ := s.FindBestMove(pos)
		require.Equal(t, first, again, "repeated searches must agree")
	}
}

func TestAlphaBetaFindsImmediateWin(t *testing.T) {
	// Red's guard stands next to the blue guard: taking it wins.
	pos := mustDecode(t, "7/7/7/3RGBG2/7/7/7 r")

	s := NewAlphaBeta(WithMaxDepth(2), WithMetrics())
	result, metric := s.FindBestMove(pos)

	require.Equal(t, game.Move{From: game.Sq(3, 3), To: game.Sq(4, 3), Count: 1}, result.BestMove)
	require.Equal(t, float64(game.WinScore), result.Score)
	require.Equal(t, 2, result.Depth, "both iterations complete without a deadline")
	require.False(t, result.Truncated)
	require.Positive(t, metric.Nodes)
}

func TestAlphaBetaWinningCaptureAsBlue(t *testing.T) {
	// Blue to move with the two guards adjacent: taking the red guard wins
	// at once and must outrank every quiet retreat.
	pos := mustDecode(t, "7/7/7/3RGBG2/7/7/7 b")

	s := NewAlphaBeta(WithMaxDepth(2))
	result, _ := s.FindBestMove(pos)

	next, err := pos.Apply(result.BestMove)
	require.NoError(t, err)
	require.Equal(t, game.Sq(3, 3), result.BestMove.To,
		"taking the red guard dominates every other move")
	_, decided := next.Winner()
	require.True(t, decided, "the chosen move ends the game at once")
}

func TestAlphaBetaNoMoves(t *testing.T) {
	s := NewAlphaBeta(WithMaxDepth(2))

	decided := mustDecode(t, "7/7/7/7/7/7/3RG3 b")
	result, _ := s.FindBestMove(decided)
	require.True(t, result.BestMove.IsZero())
	require.Equal(t, float64(-game.WinScore), result.Score)

	_, _, err := s.FindMove(decided)
	require.Error(t, err, "decided positions offer no move to play")

	// Undecided but the blue guard is boxed in: blue has no move and has
	// lost, so the search must return the losing sentinel, not a heuristic
	// sum.
	stalemate := mustDecode(t, "BGr25/r26/7/7/7/7/4RG2 b")
	result, _ = s.FindBestMove(stalemate)
	require.True(t, result.BestMove.IsZero())
	require.Equal(t, float64(-game.WinScore), result.Score,
		"a mover without a legal move has lost")
}

func TestAlphaBetaSeesStalemateAtHorizon(t *testing.T) {
	// Blue's guard and towers are almost locked in the corner; red's
	// A3-tower sliding to A5 takes blue's last move away and wins. The win
	// must be priced correctly even when the locked position sits on the
	// search horizon.
	pos := mustDecode(t, "BGb1r24/b1r25/7/7/r26/7/6RG r")

	s := NewAlphaBeta(WithMaxDepth(1))
	result, _ := s.FindBestMove(pos)

	require.Equal(t, game.Move{From: game.Sq(0, 4), To: game.Sq(0, 2), Count: 2}, result.BestMove,
		"locking blue in outranks every capture and quiet move")
	require.Equal(t, float64(game.WinScore), result.Score)
}

func TestAlphaBetaReusesTranspositions(t *testing.T) {
	pos := mustDecode(t, "3RG3/2r14/3r23/1b35/7/3b23/3BG3 r")

	s := NewAlphaBeta(WithMaxDepth(3))
	result, _ := s.FindBestMove(pos)

	require.False(t, result.BestMove.IsZero())
	require.NotEmpty(t, s.table, "interior nodes are cached during the search")
}

func TestAlphaBetaDeadlineFallback(t *testing.T) {
	pos := game.Opening()

	s := NewAlphaBeta(WithMaxDepth(6), WithDuration(time.Nanosecond), WithMetrics())
	result, metric := s.FindBestMove(pos)

	require.True(t, result.Truncated, "no iteration can finish in a nanosecond")
	require.False(t, result.BestMove.IsZero(), "the fallback move must still be playable")
	_, err := pos.Apply(result.BestMove)
	require.NoError(t, err)
	require.Zero(t, metric.Nodes, "nodes aborted at the deadline are not counted")
}
