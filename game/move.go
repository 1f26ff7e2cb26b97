package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Move carries a single transition: Count pieces travel from From to To.
// Guards always move with Count 1. The zero Move means "no move".
type Move struct {
	From  Square
	To    Square
	Count int8
}

func (m Move) IsZero() bool { return m == Move{} }

// String renders the wire notation used by the match server, e.g. "D7-D6-1".
func (m Move) String() string {
	return fmt.Sprintf("%v-%v-%d", m.From, m.To, m.Count)
}

// ParseMove parses the "D7-D6-1" notation.
func ParseMove(s string) (Move, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return Move{}, fmt.Errorf("%w: move %q", ErrIllegalMove, s)
	}
	from, err := parseSquare(parts[0])
	if err != nil {
		return Move{}, err
	}
	to, err := parseSquare(parts[1])
	if err != nil {
		return Move{}, err
	}
	count, err := strconv.Atoi(parts[2])
	if err != nil || count < 1 || count > MaxHeight {
		return Move{}, fmt.Errorf("%w: piece count %q", ErrIllegalMove, parts[2])
	}
	return Move{From: from, To: to, Count: int8(count)}, nil
}

func parseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("%w: square %q", ErrIllegalMove, s)
	}
	file := int(s[0] - 'A')
	rank := int(s[1] - '0')
	if file < 0 || file >= BoardSize || rank < 1 || rank > BoardSize {
		return 0, fmt.Errorf("%w: square %q", ErrIllegalMove, s)
	}
	return Sq(file, BoardSize-rank), nil
}
