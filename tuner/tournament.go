package tuner

import (
	"fmt"
	"time"

	"gat/engine"
	"gat/game"
	"gat/searcher"

	"golang.org/x/sync/errgroup"
)

// GameRecord is one tournament game from the candidate's perspective.
type GameRecord struct {
	Opening        string
	CandidateColor game.Color
	Winner         game.Color // NoColor on a draw
	Reason         string
	Plies          int
}

// TournamentOutcome aggregates a candidate's games against the baseline.
type TournamentOutcome struct {
	Wins   int
	Losses int
	Draws  int
	Games  []GameRecord
}

// Score is the candidate's win rate with draws counted as half a win.
func (o TournamentOutcome) Score() float64 {
	total := o.Wins + o.Losses + o.Draws
	if total == 0 {
		return 0
	}
	return (float64(o.Wins) + 0.5*float64(o.Draws)) / float64(total)
}

// Tournament plays a fixed slate of games between two weight vectors,
// cycling through the opening book and alternating colors. Games run in
// parallel; both searchers are deterministic, so the slate's result does
// not depend on scheduling.
type Tournament struct {
	games       int
	maxPlies    int
	depth       int
	moveBudget  time.Duration
	concurrency int
	openings    []game.Position
	fens        []string
}

func NewTournament(cfg Config) (*Tournament, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	openings := make([]game.Position, len(cfg.Openings))
	for i, fen := range cfg.Openings {
		pos, err := game.Decode(fen)
		if err != nil {
			return nil, fmt.Errorf("opening %d: %w", i, err)
		}
		openings[i] = pos
	}
	return &Tournament{
		games:       cfg.GamesPerEval,
		maxPlies:    cfg.MaxPlies,
		depth:       cfg.SearchDepth,
		moveBudget:  time.Duration(cfg.MoveBudget),
		concurrency: cfg.Concurrency,
		openings:    openings,
		fens:        cfg.Openings,
	}, nil
}

// Run plays the slate of candidate versus baseline. Game i uses opening
// (i/2) mod len(book); the candidate takes Red in even games and Blue in
// odd ones, so each opening is played from both sides.
func (t *Tournament) Run(candidate, baseline game.Weights) (TournamentOutcome, error) {
	records := make([]GameRecord, t.games)

	var group errgroup.Group
	group.SetLimit(t.concurrency)
	for i := 0; i < t.games; i++ {
		i := i
		group.Go(func() error {
			records[i] = t.play(i, candidate, baseline)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return TournamentOutcome{}, err
	}

	outcome := TournamentOutcome{Games: records}
	for _, record := range records {
		switch record.Winner {
		case record.CandidateColor:
			outcome.Wins++
		case game.NoColor:
			outcome.Draws++
		default:
			outcome.Losses++
		}
	}
	return outcome, nil
}

func (t *Tournament) play(index int, candidate, baseline game.Weights) GameRecord {
	opening := t.openings[(index/2)%len(t.openings)]
	fen := t.fens[(index/2)%len(t.fens)]

	candidateColor := game.Red
	if index%2 == 1 {
		candidateColor = game.Blue
	}

	red, blue := t.newSearcher(candidate), t.newSearcher(baseline)
	if candidateColor == game.Blue {
		red, blue = t.newSearcher(baseline), t.newSearcher(candidate)
	}

	outcome := engine.LocalEngine(red, blue, opening, t.maxPlies).Run()
	return GameRecord{
		Opening:        fen,
		CandidateColor: candidateColor,
		Winner:         outcome.Winner,
		Reason:         outcome.Reason,
		Plies:          outcome.Plies,
	}
}

func (t *Tournament) newSearcher(weights game.Weights) *searcher.AlphaBeta {
	options := []searcher.Option{
		searcher.WithMaxDepth(t.depth),
		searcher.WithWeights(weights),
	}
	if t.moveBudget > 0 {
		options = append(options, searcher.WithDuration(t.moveBudget))
	}
	return searcher.NewAlphaBeta(options...)
}
