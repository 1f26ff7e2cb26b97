package game

var directions = [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// LegalMoves enumerates every legal move for the side to move. The order
// is deterministic (squares ascending, direction, then piece count), which
// the searcher relies on for reproducible tie-breaking. The result is
// empty exactly when the position is over for the mover: the game is
// decided, or no piece can move.
func (p Position) LegalMoves() []Move {
	if _, decided := p.Winner(); decided {
		return nil
	}

	var moves []Move
	for sq := Square(0); sq < NumSquares; sq++ {
		cell := p.cells[sq]
		if cell.Empty() || cell.Owner != p.turn {
			continue
		}
		maxCount := cell.Height
		if cell.Guard {
			maxCount = 1
		}
		for _, dir := range directions {
			for count := int8(1); count <= maxCount; count++ {
				to, ok := p.target(sq, dir, int(count))
				if !ok {
					break // blocked or off the board; longer moves share the path
				}
				m := Move{From: sq, To: to, Count: count}
				if p.destinationLegal(cell, m) {
					moves = append(moves, m)
				}
				if !p.cells[to].Empty() {
					break // the destination blocks any longer move this way
				}
			}
		}
	}
	return moves
}

// target walks count squares from sq in dir, requiring empty squares in
// between.
func (p Position) target(sq Square, dir [2]int, count int) (Square, bool) {
	file, row := sq.File(), sq.Row()
	for i := 1; i <= count; i++ {
		file += dir[0]
		row += dir[1]
		if file < 0 || file >= BoardSize || row < 0 || row >= BoardSize {
			return 0, false
		}
		if i < count && !p.cells[Sq(file, row)].Empty() {
			return 0, false
		}
	}
	return Sq(file, row), true
}

func (p Position) destinationLegal(from Cell, m Move) bool {
	to := p.cells[m.To]
	switch {
	case to.Empty():
		return true
	case to.Owner == from.Owner:
		return !from.Guard && !to.Guard && to.Height+m.Count <= MaxHeight
	default:
		return m.Count >= to.defenderHeight()
	}
}
