package models

// NeighborEdge is a precomputed relation between two items. The overall
// score and the three sub-scores come from the offline pipeline and live
// in [0,1]; the user sub-score is derived per session at read time.
type NeighborEdge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Score  float64 `json:"score"`
	SText  float64 `json:"S_text"`
	SDate  float64 `json:"S_date"`
	SPlace float64 `json:"S_place"`
}

// SubScores bundles the four similarity factors fed to the score composer.
// A missing factor is simply zero.
type SubScores struct {
	Text  float64 `json:"S_text"`
	Date  float64 `json:"S_date"`
	Place float64 `json:"S_place"`
	User  float64 `json:"S_user"`
}

// Weights are the raw (non-normalized) factor weights for the composite
// good-neighbor score. The composer normalizes them to sum to one.
type Weights struct {
	Text  float64 `json:"text"`
	Date  float64 `json:"date"`
	Place float64 `json:"place"`
	User  float64 `json:"user"`
}

// DefaultWeights are the pipeline's published factor weights.
func DefaultWeights() Weights {
	return Weights{Text: 0.5, Date: 0.2, Place: 0.2, User: 0.1}
}

// Other returns the endpoint of e that is not id, and false when id is
// not an endpoint at all.
func (e *NeighborEdge) Other(id string) (string, bool) {
	switch id {
	case e.Source:
		return e.Target, true
	case e.Target:
		return e.Source, true
	default:
		return "", false
	}
}
