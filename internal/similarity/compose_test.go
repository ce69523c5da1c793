package similarity

import (
	"math"
	"testing"

	"github.com/goodneighborlab/goodneighbor/internal/models"
)

func TestNormalizeWeights_SumsToOne(t *testing.T) {
	tests := []struct {
		name string
		w    models.Weights
	}{
		{name: "defaults", w: models.DefaultWeights()},
		{name: "uniform", w: models.Weights{Text: 1, Date: 1, Place: 1, User: 1}},
		{name: "skewed", w: models.Weights{Text: 10, Date: 0.1, Place: 3, User: 0}},
		{name: "single", w: models.Weights{User: 7}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n := NormalizeWeights(tc.w)
			sum := n.Text + n.Date + n.Place + n.User

			if math.Abs(sum-1) > 1e-9 {
				t.Errorf("normalized sum = %v, want 1", sum)
			}
		})
	}
}

func TestNormalizeWeights_ZeroSum(t *testing.T) {
	n := NormalizeWeights(models.Weights{})
	if n != (models.Weights{}) {
		t.Errorf("zero-sum weights normalized to %+v, want all zero", n)
	}
}

func TestCompose_Bounds(t *testing.T) {
	subs := []models.SubScores{
		{},
		{Text: 1, Date: 1, Place: 1, User: 1},
		{Text: 0.3, Date: 0.9, Place: 0.1, User: 0.5},
	}
	weights := []models.Weights{
		models.DefaultWeights(),
		{Text: 2, Date: 5},
		{},
	}

	for _, s := range subs {
		for _, w := range weights {
			g := Compose(s, w)
			if g < 0 || g > 1 {
				t.Errorf("Compose(%+v, %+v) = %v out of [0,1]", s, w, g)
			}
		}
	}
}

func TestCompose_ZeroWeightsYieldZero(t *testing.T) {
	g := Compose(models.SubScores{Text: 1, Date: 1, Place: 1, User: 1}, models.Weights{})
	if g != 0 {
		t.Errorf("G = %v, want 0 for zero-sum weights", g)
	}
}

func TestCompose_WeightedSum(t *testing.T) {
	s := models.SubScores{Text: 1, Date: 0, Place: 0, User: 0.5}
	w := models.Weights{Text: 0.5, Date: 0.2, Place: 0.2, User: 0.1}

	want := 0.5*1 + 0.1*0.5
	if got := Compose(s, w); math.Abs(got-want) > 1e-9 {
		t.Errorf("G = %v, want %v", got, want)
	}
}

func TestComposeEdge_LooksUpUserScore(t *testing.T) {
	e := models.NeighborEdge{Source: "B", Target: "A", SText: 0.4}
	user := map[PairKey]float64{NewPairKey("A", "B"): 1}

	w := models.Weights{Text: 0.5, User: 0.5}

	want := 0.5*0.4 + 0.5*1
	if got := ComposeEdge(e, w, user); math.Abs(got-want) > 1e-9 {
		t.Errorf("G = %v, want %v", got, want)
	}

	// Absent pair contributes zero, not an error.
	if got := ComposeEdge(e, w, map[PairKey]float64{}); math.Abs(got-0.2) > 1e-9 {
		t.Errorf("G = %v, want 0.2 for missing S_user", got)
	}
}
