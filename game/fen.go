package game

import (
	"fmt"
	"strings"
)

// Decode parses the board notation: rank rows from rank 7 down, separated
// by '/'; digits are empty runs, r<h>/b<h> towers, RG/BG guards; then a
// space and the side to move ('r' or 'b').
//
//	r1r11RG1r1r1/2r11r12/3r13/7/3b13/2b11b12/b1b11BG1b1b1 r
func Decode(s string) (Position, error) {
	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) != 2 {
		return Position{}, fmt.Errorf("%w: want board and side to move, got %q", ErrMalformedPosition, s)
	}

	var pos Position
	switch parts[1] {
	case "r":
		pos.turn = Red
	case "b":
		pos.turn = Blue
	default:
		return Position{}, fmt.Errorf("%w: side to move %q", ErrMalformedPosition, parts[1])
	}

	rows := strings.Split(parts[0], "/")
	if len(rows) != BoardSize {
		return Position{}, fmt.Errorf("%w: %d rows", ErrMalformedPosition, len(rows))
	}
	for row, text := range rows {
		file := 0
		for i := 0; i < len(text); {
			if file >= BoardSize {
				return Position{}, fmt.Errorf("%w: row %d overflows", ErrMalformedPosition, row)
			}
			switch {
			case strings.HasPrefix(text[i:], "RG"), strings.HasPrefix(text[i:], "BG"):
				owner := Red
				if text[i] == 'B' {
					owner = Blue
				}
				pos.cells[Sq(file, row)] = Cell{Owner: owner, Height: 1, Guard: true}
				i += 2
				file++
			case text[i] == 'r' || text[i] == 'b':
				if i+1 >= len(text) || text[i+1] < '1' || text[i+1] > '7' {
					return Position{}, fmt.Errorf("%w: tower without height in row %d", ErrMalformedPosition, row)
				}
				owner := Red
				if text[i] == 'b' {
					owner = Blue
				}
				pos.cells[Sq(file, row)] = Cell{Owner: owner, Height: int8(text[i+1] - '0')}
				i += 2
				file++
			case text[i] >= '1' && text[i] <= '7':
				file += int(text[i] - '0')
				i++
			default:
				return Position{}, fmt.Errorf("%w: token %q in row %d", ErrMalformedPosition, text[i], row)
			}
		}
		if file != BoardSize {
			return Position{}, fmt.Errorf("%w: row %d covers %d cells", ErrMalformedPosition, row, file)
		}
	}

	if err := pos.validate(); err != nil {
		return Position{}, err
	}
	return pos, nil
}

// Encode renders the notation parsed by Decode; Decode(Encode(p)) == p.
func (p Position) Encode() string {
	var b strings.Builder
	for row := 0; row < BoardSize; row++ {
		if row > 0 {
			b.WriteByte('/')
		}
		empty := 0
		for file := 0; file < BoardSize; file++ {
			cell := p.cells[Sq(file, row)]
			if cell.Empty() {
				empty++
				continue
			}
			if empty > 0 {
				fmt.Fprintf(&b, "%d", empty)
				empty = 0
			}
			switch {
			case cell.Guard && cell.Owner == Red:
				b.WriteString("RG")
			case cell.Guard:
				b.WriteString("BG")
			case cell.Owner == Red:
				fmt.Fprintf(&b, "r%d", cell.Height)
			default:
				fmt.Fprintf(&b, "b%d", cell.Height)
			}
		}
		if empty > 0 {
			fmt.Fprintf(&b, "%d", empty)
		}
	}
	if p.turn == Blue {
		b.WriteString(" b")
	} else {
		b.WriteString(" r")
	}
	return b.String()
}
