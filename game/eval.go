package game

// WinScore is the terminal sentinel. It is strictly larger than any
// reachable weighted feature sum, so pruning comparisons can never mistake
// a decided game for a merely good position.
const WinScore = 1_000_000

// Evaluate scores a position as a weighted sum of the feature extractors
// below, from the perspective of the side to move (negamax convention:
// positive means the mover is better). Terminal positions saturate to
// ±WinScore: decided games score for the winner, and a mover without a
// legal move has lost.
func Evaluate(p Position, w Weights) float64 {
	if winner, decided := p.Winner(); decided {
		if winner == p.turn {
			return WinScore
		}
		return -WinScore
	}
	if len(p.LegalMoves()) == 0 {
		return -WinScore
	}

	score := 0.0
	score += w[FeatMaterial] * featureMaterial(p)
	score += w[FeatGuardAdvance] * featureGuardAdvance(p)
	score += w[FeatGuardSafety] * featureGuardSafety(p)
	score += w[FeatCenterControl] * featureCenterControl(p)
	score += w[FeatTowerHeight] * featureTowerHeight(p)
	score += w[FeatAggression] * featureAggression(p)
	score += w[FeatMobility] * featureMobility(p)
	score += w[FeatPositioning] * featurePositioning(p)
	score += w[FeatTempo] * featureTempo(p)
	return score
}

// Each feature extractor is a pure function of the position, relative to
// the side to move. Values stay within single digits of magnitude so the
// weighted sum is bounded well below WinScore for any sane weight vector.

func pieceCount(p Position, c Color) float64 {
	count := 0.0
	for sq := Square(0); sq < NumSquares; sq++ {
		cell := p.cells[sq]
		if cell.Owner == c {
			count += float64(cell.Height)
		}
	}
	return count
}

// featureMaterial is the raw piece-count difference; guards count as one.
func featureMaterial(p Position) float64 {
	return pieceCount(p, p.turn) - pieceCount(p, p.turn.Opponent())
}

func guardDistance(p Position, c Color) float64 {
	sq, ok := p.GuardSquare(c)
	if !ok {
		return float64(2 * BoardSize) // unreachable in non-terminal positions
	}
	goal := castle(c.Opponent())
	return float64(abs(sq.File()-goal.File()) + abs(sq.Row()-goal.Row()))
}

// featureGuardAdvance rewards the guard closing in on the opponent's
// castle, relative to the enemy guard's progress.
func featureGuardAdvance(p Position) float64 {
	return guardDistance(p, p.turn.Opponent()) - guardDistance(p, p.turn)
}

func guardOnEdge(p Position, c Color) float64 {
	sq, ok := p.GuardSquare(c)
	if !ok {
		return 0
	}
	f, r := sq.File(), sq.Row()
	if f == 0 || f == BoardSize-1 || r == 0 || r == BoardSize-1 {
		return 1
	}
	return 0
}

// featureGuardSafety penalizes an exposed guard on the board edge.
func featureGuardSafety(p Position) float64 {
	return 0.5 * (guardOnEdge(p, p.turn.Opponent()) - guardOnEdge(p, p.turn))
}

// centerSquares is the 3x3 block around D4, the same region for both
// sides.
var centerSquares = []Square{
	Sq(2, 2), Sq(3, 2), Sq(4, 2),
	Sq(2, 3), Sq(3, 3), Sq(4, 3),
	Sq(2, 4), Sq(3, 4), Sq(4, 4),
}

func centerPresence(p Position, c Color) float64 {
	v := 0.0
	if sq, ok := p.GuardSquare(c); ok {
		centerDist := float64(abs(sq.File()-3) + abs(sq.Row()-3))
		v += max(0, 3-centerDist)
	}
	for _, sq := range centerSquares {
		if p.cells[sq].Owner == c {
			v++
		}
	}
	return v
}

func featureCenterControl(p Position) float64 {
	return centerPresence(p, p.turn) - centerPresence(p, p.turn.Opponent())
}

func tallTowers(p Position, c Color) float64 {
	v := 0.0
	for sq := Square(0); sq < NumSquares; sq++ {
		cell := p.cells[sq]
		if cell.Owner == c && !cell.Guard && cell.Height >= 3 {
			v += float64(cell.Height)
		}
	}
	return v
}

func featureTowerHeight(p Position) float64 {
	return tallTowers(p, p.turn) - tallTowers(p, p.turn.Opponent())
}

// featureAggression counts the mover's low towers within striking range of
// the enemy guard (Manhattan distance at most height+1). A cheap threat
// estimate, not a legality check.
func featureAggression(p Position) float64 {
	guard, ok := p.GuardSquare(p.turn.Opponent())
	if !ok {
		return 0
	}
	threats := 0.0
	for sq := Square(0); sq < NumSquares; sq++ {
		cell := p.cells[sq]
		if cell.Owner != p.turn || cell.Guard || cell.Height > 3 {
			continue
		}
		dist := abs(sq.File()-guard.File()) + abs(sq.Row()-guard.Row())
		if dist <= int(cell.Height)+1 {
			threats++
		}
	}
	return threats
}

// featureMobility estimates move options from low-tower heights without
// generating moves.
func featureMobility(p Position) float64 {
	return lowTowerWeight(p, p.turn) - lowTowerWeight(p, p.turn.Opponent())
}

func lowTowerWeight(p Position, c Color) float64 {
	v := 0.0
	for sq := Square(0); sq < NumSquares; sq++ {
		cell := p.cells[sq]
		if cell.Owner == c && !cell.Guard && cell.Height <= 3 {
			v += float64(cell.Height)
		}
	}
	return v
}

// featurePositioning counts low towers advanced into the opponent's half.
func featurePositioning(p Position) float64 {
	return advancedTowers(p, p.turn) - advancedTowers(p, p.turn.Opponent())
}

func advancedTowers(p Position, c Color) float64 {
	v := 0.0
	for sq := Square(0); sq < NumSquares; sq++ {
		cell := p.cells[sq]
		if cell.Owner != c || cell.Guard || cell.Height > 2 {
			continue
		}
		if c == Red && sq.Row() >= 4 {
			v++
		}
		if c == Blue && sq.Row() <= 2 {
			v++
		}
	}
	return v
}

// featureTempo is a crude activity measure favoring the mover's piece
// count.
func featureTempo(p Position) float64 {
	return 2*pieceCount(p, p.turn) - pieceCount(p, p.turn.Opponent())
}
