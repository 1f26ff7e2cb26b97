package gameserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"gat/game"
	"gat/searcher"

	"github.com/rs/zerolog/log"
)

// State is the match server's view of the running game.
type State struct {
	Board         string `json:"board"`
	Turn          string `json:"turn"` // "r" or "b"
	BothConnected bool   `json:"bothConnected"`
	Time          int    `json:"time"` // remaining budget in milliseconds
	End           bool   `json:"end"`
}

type moveRequest struct {
	Move string `json:"move"`
}

// Client plays one side of a game hosted by a match server. It polls the
// server for the game state and answers with a move whenever it is this
// side's turn. Each move gets a fresh search whose time budget is a slice of
// the remaining clock the server reports.
type Client struct {
	serverURL string
	player    game.Color
	weights   game.Weights
	maxDepth  int
	http      *http.Client
	pollEvery time.Duration
}

func NewClient(serverURL string, player game.Color, weights game.Weights, maxDepth int) *Client {
	if player != game.Red && player != game.Blue {
		panic("client must play Red or Blue")
	}
	if maxDepth <= 0 {
		maxDepth = searcher.DefaultMaxDepth
	}
	return &Client{
		serverURL: serverURL,
		player:    player,
		weights:   weights,
		maxDepth:  maxDepth,
		http:      &http.Client{Timeout: 10 * time.Second},
		pollEvery: 100 * time.Millisecond,
	}
}

// Play polls until the server reports the game over, answering every turn
// of the client's side. Transient server errors are retried on the next
// poll; an unplayable position ends the session with an error.
func (c *Client) Play(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.pollEvery):
		}

		state, err := c.fetchState(ctx)
		if err != nil {
			log.Warn().Msgf("failed to fetch game state: %v", err)
			continue
		}
		if state.End {
			log.Info().Msgf("%v: server reports game over", c.player)
			return nil
		}
		if !state.BothConnected || state.Turn != colorToken(c.player) {
			continue
		}

		pos, err := game.Decode(state.Board + " " + state.Turn)
		if err != nil {
			return fmt.Errorf("server sent unplayable position: %w", err)
		}
		move, metric, err := c.newSearch(pos, state).FindMove(pos)
		if err != nil {
			return fmt.Errorf("no move to play: %w", err)
		}
		log.Info().
			Int("depth", metric.Depth).
			Int("nodes", metric.Nodes).
			Msgf("%v plays %v (%dms left)", c.player, move, state.Time)

		if err := c.sendMove(ctx, move); err != nil {
			log.Warn().Msgf("failed to send move %v: %v", move, err)
		}
	}
}

func (c *Client) fetchState(ctx context.Context) (State, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serverURL+"/state", nil)
	if err != nil {
		return State{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return State{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return State{}, fmt.Errorf("server returned %s", resp.Status)
	}
	var state State
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return State{}, fmt.Errorf("failed to decode state: %w", err)
	}
	return state, nil
}

func (c *Client) sendMove(ctx context.Context, move game.Move) error {
	data, err := json.Marshal(moveRequest{Move: move.String()})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/move", bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return nil
}

func (c *Client) newSearch(pos game.Position, state State) *searcher.AlphaBeta {
	options := []searcher.Option{
		searcher.WithMaxDepth(c.maxDepth),
		searcher.WithWeights(c.weights),
		searcher.WithMetrics(),
	}
	if budget := moveBudget(pos, state.Time); budget > 0 {
		options = append(options, searcher.WithDuration(budget))
	}
	return searcher.NewAlphaBeta(options...)
}

// moveBudget allots a slice of the server's remaining clock, spending a
// larger share per move as the board empties out and games tend to be
// decided by a single deep line.
func moveBudget(pos game.Position, remainingMillis int) time.Duration {
	if remainingMillis <= 0 {
		return 0
	}
	remaining := time.Duration(remainingMillis) * time.Millisecond

	pieces := 0
	for sq := game.Square(0); sq < game.NumSquares; sq++ {
		pieces += int(pos.At(sq).Height)
	}
	switch {
	case pieces > 10: // opening and early middlegame
		return remaining / 20
	case pieces > 5: // late middlegame
		return remaining / 12
	default: // endgame
		return remaining / 6
	}
}

func colorToken(c game.Color) string {
	if c == game.Red {
		return "r"
	}
	return "b"
}
