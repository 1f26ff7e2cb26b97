package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeOpening(t *testing.T) {
	pos, err := Decode("r1r11RG1r1r1/2r11r12/3r13/7/3b13/2b11b12/b1b11BG1b1b1 r")
	require.NoError(t, err)

	require.Equal(t, Red, pos.Turn(), "Red moves first in the standard opening")

	redGuard, ok := pos.GuardSquare(Red)
	require.True(t, ok)
	require.Equal(t, Sq(3, 0), redGuard, "Red guard starts on D7")

	blueGuard, ok := pos.GuardSquare(Blue)
	require.True(t, ok)
	require.Equal(t, Sq(3, 6), blueGuard, "Blue guard starts on D1")

	require.Equal(t, Cell{Owner: Red, Height: 1}, pos.At(Sq(0, 0)), "A7 holds a red height-1 tower")
	require.Equal(t, Cell{Owner: Blue, Height: 1}, pos.At(Sq(3, 4)), "D3 holds a blue height-1 tower")
	require.True(t, pos.At(Sq(3, 3)).Empty(), "D4 starts empty")
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	fens := []string{
		"r1r11RG1r1r1/2r11r12/3r13/7/3b13/2b11b12/b1b11BG1b1b1 r",
		"3RG3/2r14/3r23/1b35/7/3b23/3BG3 r",
		"RG6/7/7/1b1r24/7/7/6BG b",
		"7/7/7/3RGBG2/7/7/7 r",
		"7/7/7/7/7/3RG3/2BG4 b",
	}
	for _, fen := range fens {
		pos, err := Decode(fen)
		require.NoError(t, err, "decoding %q", fen)
		require.Equal(t, fen, pos.Encode(), "round trip must reproduce the input")

		again, err := Decode(pos.Encode())
		require.NoError(t, err)
		require.Equal(t, pos, again, "decode(encode(p)) must equal p")
	}
}

func TestDecodeMalformed(t *testing.T) {
	cases := map[string]string{
		"missing side to move":  "7/7/7/7/7/7/7",
		"bad side to move":      "7/7/7/7/7/7/7 x",
		"too few rows":          "7/7/7/7/7/7 r",
		"row too wide":          "8/7/7/7/7/7/7 r",
		"row too narrow":        "6/7/7/7/7/7/7 r",
		"tower without height":  "r/7/7/7/7/7/7 r",
		"unknown token":         "q7/7/7/7/7/7/7 r",
		"two guards one side":   "RG1RG4/7/7/7/7/7/3BG3 r",
		"too many tower pieces": "r7r75/7/7/7/7/7/3BG3 r",
	}
	for name, fen := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(fen)
			require.ErrorIs(t, err, ErrMalformedPosition, "decoding %q", fen)
		})
	}
}

func TestParseMoveRoundTrip(t *testing.T) {
	m := Move{From: Sq(3, 0), To: Sq(3, 1), Count: 1}
	require.Equal(t, "D7-D6-1", m.String())

	parsed, err := ParseMove("D7-D6-1")
	require.NoError(t, err)
	require.Equal(t, m, parsed)

	for _, bad := range []string{"", "D7-D6", "H7-D6-1", "D8-D6-1", "D7-D6-0", "D7-D6-9"} {
		_, err := ParseMove(bad)
		require.Error(t, err, "parsing %q should fail", bad)
	}
}
