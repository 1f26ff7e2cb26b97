package game

// Feature indices into a Weights vector. The order is fixed: persisted
// weight files are plain ordered lists.
const (
	FeatMaterial = iota
	FeatGuardAdvance
	FeatGuardSafety
	FeatCenterControl
	FeatTowerHeight
	FeatAggression
	FeatMobility
	FeatPositioning
	FeatTempo

	NumFeatures
)

var featureNames = [NumFeatures]string{
	"material",
	"guard_advance",
	"guard_safety",
	"center_control",
	"tower_height",
	"aggression",
	"mobility",
	"positioning",
	"tempo",
}

// Weights is the tunable coefficient vector of the evaluation function.
// It is a plain value: assignment copies, so two engines can never alias
// each other's weights.
type Weights [NumFeatures]float64

// FeatureName returns the stable name of a feature index.
func FeatureName(i int) string { return featureNames[i] }

// DefaultWeights is the hand-picked baseline the tuner starts from.
func DefaultWeights() Weights {
	return Weights{
		FeatMaterial:      80,
		FeatGuardAdvance:  40,
		FeatGuardSafety:   200,
		FeatCenterControl: 25,
		FeatTowerHeight:   20,
		FeatAggression:    50,
		FeatMobility:      10,
		FeatPositioning:   10,
		FeatTempo:         20,
	}
}
