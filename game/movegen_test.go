package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLegalMovesOpening(t *testing.T) {
	pos := Opening()
	moves := pos.LegalMoves()
	require.NotEmpty(t, moves, "the opening offers moves")

	for _, m := range moves {
		next, err := pos.Apply(m)
		require.NoError(t, err, "generated move %v must be applicable", m)
		require.NoError(t, next.validate(), "applying %v must keep the position well formed", m)
		require.Equal(t, Blue, next.Turn())
	}
}

func TestLegalMovesDeterministic(t *testing.T) {
	pos := mustDecode(t, "3RG3/2r14/3r23/1b35/7/3b23/3BG3 r")
	require.Equal(t, pos.LegalMoves(), pos.LegalMoves(), "the move order is stable")
}

func TestLegalMovesTowerRange(t *testing.T) {
	// A lone height-3 tower in the middle of an empty board.
	pos := mustDecode(t, "RG6/7/7/3r33/7/7/6BG r")
	moves := pos.LegalMoves()

	expect := func(to Square, count int8) {
		require.Contains(t, moves, Move{From: Sq(3, 3), To: to, Count: count})
	}
	// One piece steps one square, two pieces two, three pieces three.
	expect(Sq(3, 2), 1)
	expect(Sq(3, 1), 2)
	expect(Sq(3, 0), 3)
	expect(Sq(0, 3), 3)
	expect(Sq(6, 3), 3)
	expect(Sq(3, 6), 3)

	require.NotContains(t, moves, Move{From: Sq(3, 3), To: Sq(3, 5), Count: 3},
		"three pieces travel exactly three squares, never fewer")
	require.NotContains(t, moves, Move{From: Sq(3, 3), To: Sq(4, 4), Count: 2},
		"moves never bend")
}

func TestLegalMovesBlockedPath(t *testing.T) {
	// A blue tower sits between the red stack and its long destinations.
	pos := mustDecode(t, "RG6/7/7/1b1r24/7/7/6BG r")
	moves := pos.LegalMoves()

	require.Contains(t, moves, Move{From: Sq(2, 3), To: Sq(1, 3), Count: 1},
		"a single piece may take the adjacent height-1 tower")
	require.NotContains(t, moves, Move{From: Sq(2, 3), To: Sq(0, 3), Count: 2},
		"the occupied square blocks the longer move")
}

func TestLegalMovesCaptureRequiresHeight(t *testing.T) {
	pos := mustDecode(t, "RG6/7/7/1b3r24/7/7/6BG r")
	for _, m := range pos.LegalMoves() {
		require.NotEqual(t, Sq(1, 3), m.To, "nothing red may land on the height-3 stack")
	}

	// A height-3 stack three squares away lands the capture exactly.
	taller := mustDecode(t, "RG6/7/7/1b32r32/7/7/6BG r")
	require.Contains(t, taller.LegalMoves(), Move{From: Sq(4, 3), To: Sq(1, 3), Count: 3})
}

func TestLegalMovesGuardStepsOne(t *testing.T) {
	pos := mustDecode(t, "7/7/7/3RGBG2/7/7/7 r")
	moves := pos.LegalMoves()

	from := Sq(3, 3)
	require.Contains(t, moves, Move{From: from, To: Sq(4, 3), Count: 1},
		"the guard may take the enemy guard")
	require.Contains(t, moves, Move{From: from, To: Sq(2, 3), Count: 1})
	require.Contains(t, moves, Move{From: from, To: Sq(3, 2), Count: 1})
	require.Contains(t, moves, Move{From: from, To: Sq(3, 4), Count: 1})
	require.Len(t, moves, 4, "a lone guard has at most four single steps")
}

func TestLegalMovesEmptyWhenDecided(t *testing.T) {
	pos := mustDecode(t, "7/7/7/7/7/7/3RG3 b")
	winner, decided := pos.Winner()
	require.True(t, decided)
	require.Equal(t, Red, winner)
	require.Empty(t, pos.LegalMoves())
}
