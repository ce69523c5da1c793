package similarity

import "github.com/goodneighborlab/goodneighbor/internal/models"

// NormalizeWeights scales the raw weights to sum to one. A zero (or
// negative) sum yields all-zero weights, which composes to G = 0.
func NormalizeWeights(w models.Weights) models.Weights {
	sum := w.Text + w.Date + w.Place + w.User
	if sum <= 0 {
		return models.Weights{}
	}

	return models.Weights{
		Text:  w.Text / sum,
		Date:  w.Date / sum,
		Place: w.Place / sum,
		User:  w.User / sum,
	}
}

// Compose computes the good-neighbor index
//
//	G = w_text·S_text + w_date·S_date + w_place·S_place + w_user·S_user
//
// with weights normalized to sum to one. Missing sub-scores are zero by
// construction of SubScores. The result is clamped to [0,1]: the
// normalized dot product can land a rounding error past 1 (four float
// divisions rarely sum to exactly one).
func Compose(s models.SubScores, w models.Weights) float64 {
	n := NormalizeWeights(w)

	g := n.Text*s.Text + n.Date*s.Date + n.Place*s.Place + n.User*s.User
	if g < 0 {
		return 0
	}
	if g > 1 {
		return 1
	}

	return g
}

// ComposeEdge recomposes an edge's score under the given weights, looking
// up S_user for the edge's canonical pair in the derived user map. An
// absent pair contributes zero.
func ComposeEdge(e models.NeighborEdge, w models.Weights, user map[PairKey]float64) float64 {
	return Compose(models.SubScores{
		Text:  e.SText,
		Date:  e.SDate,
		Place: e.SPlace,
		User:  user[NewPairKey(e.Source, e.Target)],
	}, w)
}
