package game

import (
	"errors"
	"fmt"
)

const (
	// BoardSize is the edge length of the square board.
	BoardSize = 7
	// NumSquares is the total number of cells.
	NumSquares = BoardSize * BoardSize
	// MaxHeight is the tallest legal tower; the text notation cannot
	// express anything taller.
	MaxHeight = 7
	// TowersPerSide is the number of tower pieces each side starts with.
	// Stacking and captures never increase it.
	TowersPerSide = 7
)

// openingFEN is the standard starting position: seven height-1 towers and
// the guard on the back ranks of each side.
const openingFEN = "r1r11RG1r1r1/2r11r12/3r13/7/3b13/2b11b12/b1b11BG1b1b1 r"

var (
	ErrMalformedPosition = errors.New("malformed position")
	ErrIllegalMove       = errors.New("illegal move")
)

// Color identifies a side. Red moves towards rank 1, Blue towards rank 7.
type Color int8

const (
	NoColor Color = iota
	Red
	Blue
)

func (c Color) Opponent() Color {
	switch c {
	case Red:
		return Blue
	case Blue:
		return Red
	}
	return NoColor
}

func (c Color) String() string {
	switch c {
	case Red:
		return "Red"
	case Blue:
		return "Blue"
	}
	return "None"
}

// Square indexes a cell in row-major order from A7 (top-left of the text
// encoding) to G1.
type Square int8

// Sq builds a square from a file (0=A..6=G) and a row (0=rank 7..6=rank 1).
func Sq(file, row int) Square {
	return Square(row*BoardSize + file)
}

func (s Square) File() int { return int(s) % BoardSize }
func (s Square) Row() int  { return int(s) / BoardSize }

func (s Square) String() string {
	return fmt.Sprintf("%c%d", 'A'+s.File(), BoardSize-s.Row())
}

// castle returns a side's home square; reaching the opponent's castle with
// the guard wins the game.
func castle(c Color) Square {
	if c == Red {
		return Sq(3, 0) // D7
	}
	return Sq(3, 6) // D1
}

// Cell is one board cell: empty, a guard, or a tower stack.
type Cell struct {
	Owner  Color
	Height int8 // 0 when empty, 1 for a guard
	Guard  bool
}

func (c Cell) Empty() bool { return c.Owner == NoColor }

// defenderHeight is the stack height a capture must match or exceed.
// Guards defend with height 1.
func (c Cell) defenderHeight() int8 {
	if c.Guard {
		return 1
	}
	return c.Height
}

// Position is a complete snapshot of the board plus the side to move.
// It has value semantics: Apply and all other operations leave the
// receiver untouched, so positions may be shared freely across searches.
type Position struct {
	cells [NumSquares]Cell
	turn  Color
}

// Opening returns the standard starting position.
func Opening() Position {
	pos, err := Decode(openingFEN)
	if err != nil {
		panic(err)
	}
	return pos
}

func (p Position) Turn() Color { return p.turn }

// At returns the cell at sq.
func (p Position) At(sq Square) Cell { return p.cells[sq] }

// GuardSquare locates a side's guard. ok is false once the guard has been
// captured.
func (p Position) GuardSquare(c Color) (Square, bool) {
	for sq := Square(0); sq < NumSquares; sq++ {
		cell := p.cells[sq]
		if cell.Guard && cell.Owner == c {
			return sq, true
		}
	}
	return 0, false
}

// Winner reports the decided result, if any: a guard standing on the
// opponent's castle, or an opponent guard that no longer exists.
func (p Position) Winner() (Color, bool) {
	for _, c := range []Color{Red, Blue} {
		sq, alive := p.GuardSquare(c)
		if !alive {
			return c.Opponent(), true
		}
		if sq == castle(c.Opponent()) {
			return c, true
		}
	}
	return NoColor, false
}

// IsTerminal reports whether the side to move has no continuation: the
// game is decided or no legal move exists (which loses).
func (p Position) IsTerminal() bool {
	if _, decided := p.Winner(); decided {
		return true
	}
	return len(p.LegalMoves()) == 0
}

// validate enforces the structural invariant: per side at most one guard
// and at most TowersPerSide tower pieces, all heights within range, and a
// valid side to move.
func (p Position) validate() error {
	if p.turn != Red && p.turn != Blue {
		return fmt.Errorf("%w: invalid side to move", ErrMalformedPosition)
	}
	guards := map[Color]int{}
	pieces := map[Color]int8{}
	for sq := Square(0); sq < NumSquares; sq++ {
		cell := p.cells[sq]
		if cell.Empty() {
			if cell.Height != 0 || cell.Guard {
				return fmt.Errorf("%w: occupied cell without owner at %v", ErrMalformedPosition, sq)
			}
			continue
		}
		if cell.Owner != Red && cell.Owner != Blue {
			return fmt.Errorf("%w: invalid occupant at %v", ErrMalformedPosition, sq)
		}
		if cell.Guard {
			if cell.Height != 1 {
				return fmt.Errorf("%w: guard with height %d at %v", ErrMalformedPosition, cell.Height, sq)
			}
			guards[cell.Owner]++
		} else {
			if cell.Height < 1 || cell.Height > MaxHeight {
				return fmt.Errorf("%w: tower height %d at %v", ErrMalformedPosition, cell.Height, sq)
			}
			pieces[cell.Owner] += cell.Height
		}
	}
	for _, c := range []Color{Red, Blue} {
		if guards[c] > 1 {
			return fmt.Errorf("%w: %v has %d guards", ErrMalformedPosition, c, guards[c])
		}
		if pieces[c] > TowersPerSide {
			return fmt.Errorf("%w: %v has %d tower pieces", ErrMalformedPosition, c, pieces[c])
		}
	}
	return nil
}

// Apply plays a move and returns the resulting position. The move is
// re-checked against this position's rules, so a move generated for a
// different position is rejected rather than corrupting the board.
func (p Position) Apply(m Move) (Position, error) {
	if err := p.checkLegal(m); err != nil {
		return Position{}, err
	}

	next := p
	from := next.cells[m.From]
	to := next.cells[m.To]

	// Lift the moving pieces off the origin.
	if from.Guard || from.Height == m.Count {
		next.cells[m.From] = Cell{}
	} else {
		next.cells[m.From] = Cell{Owner: from.Owner, Height: from.Height - m.Count}
	}

	switch {
	case to.Empty():
		next.cells[m.To] = Cell{Owner: from.Owner, Height: m.Count, Guard: from.Guard}
	case to.Owner == from.Owner:
		// Stack on an own tower.
		next.cells[m.To] = Cell{Owner: from.Owner, Height: to.Height + m.Count}
	default:
		// Capture: the defending stack leaves the board entirely.
		next.cells[m.To] = Cell{Owner: from.Owner, Height: m.Count, Guard: from.Guard}
	}

	next.turn = p.turn.Opponent()
	return next, nil
}

// checkLegal verifies m against the movement rules without enumerating
// every legal move.
func (p Position) checkLegal(m Move) error {
	if _, decided := p.Winner(); decided {
		return fmt.Errorf("%w: game already decided", ErrIllegalMove)
	}
	if m.From < 0 || m.From >= NumSquares || m.To < 0 || m.To >= NumSquares {
		return fmt.Errorf("%w: square off the board", ErrIllegalMove)
	}
	from := p.cells[m.From]
	if from.Empty() || from.Owner != p.turn {
		return fmt.Errorf("%w: no %v piece on %v", ErrIllegalMove, p.turn, m.From)
	}
	if m.Count < 1 || m.Count > from.Height {
		return fmt.Errorf("%w: cannot move %d pieces from %v", ErrIllegalMove, m.Count, m.From)
	}
	if from.Guard && m.Count != 1 {
		return fmt.Errorf("%w: guard moves a single piece", ErrIllegalMove)
	}

	df := m.To.File() - m.From.File()
	dr := m.To.Row() - m.From.Row()
	if (df != 0) == (dr != 0) {
		return fmt.Errorf("%w: move %v is not a straight orthogonal line", ErrIllegalMove, m)
	}
	dist := abs(df) + abs(dr)
	if dist != int(m.Count) {
		return fmt.Errorf("%w: %d pieces must move exactly %d squares", ErrIllegalMove, m.Count, m.Count)
	}
	stepFile, stepRow := sign(df), sign(dr)
	for i := 1; i < dist; i++ {
		between := Sq(m.From.File()+stepFile*i, m.From.Row()+stepRow*i)
		if !p.cells[between].Empty() {
			return fmt.Errorf("%w: path through %v is blocked", ErrIllegalMove, between)
		}
	}

	to := p.cells[m.To]
	switch {
	case to.Empty():
		return nil
	case to.Owner == from.Owner:
		if to.Guard || from.Guard {
			return fmt.Errorf("%w: guards do not stack", ErrIllegalMove)
		}
		if to.Height+m.Count > MaxHeight {
			return fmt.Errorf("%w: stack on %v would exceed height %d", ErrIllegalMove, m.To, MaxHeight)
		}
		return nil
	default:
		if m.Count < to.defenderHeight() {
			return fmt.Errorf("%w: %d pieces cannot capture a stack of %d", ErrIllegalMove, m.Count, to.defenderHeight())
		}
		return nil
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
