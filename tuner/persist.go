package tuner

import (
	"encoding/json"
	"fmt"
	"os"

	"gat/game"
)

// SaveWeights writes a weight vector as a JSON list in feature order.
func SaveWeights(path string, w game.Weights) error {
	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("failed to encode weights: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write weights: %w", err)
	}
	return nil
}

// LoadWeights reads a weight vector saved by SaveWeights.
func LoadWeights(path string) (game.Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return game.Weights{}, fmt.Errorf("failed to read weights: %w", err)
	}
	var w game.Weights
	if err := json.Unmarshal(data, &w); err != nil {
		return game.Weights{}, fmt.Errorf("failed to decode weights: %w", err)
	}
	return w, nil
}
