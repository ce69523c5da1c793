package dataset

import (
	"encoding/json"

	"github.com/goodneighborlab/goodneighbor/internal/models"
)

// rawEdge decodes one edge record from any of the accepted input shapes.
// The offline pipeline writes the composite score under "G" in its edge
// rows and under "score" in its neighbor map; both are honored.
type rawEdge struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	A      string   `json:"a"`
	B      string   `json:"b"`
	ID     string   `json:"id"`
	Score  *float64 `json:"score"`
	G      *float64 `json:"G"`
	SText  float64  `json:"S_text"`
	SDate  float64  `json:"S_date"`
	SPlace float64  `json:"S_place"`
}

func (r *rawEdge) toEdge() models.NeighborEdge {
	e := models.NeighborEdge{
		Source: r.Source,
		Target: r.Target,
		SText:  r.SText,
		SDate:  r.SDate,
		SPlace: r.SPlace,
	}

	// The {pairs:[{a,b,score}]} shape names its endpoints a/b.
	if e.Source == "" && e.Target == "" {
		e.Source, e.Target = r.A, r.B
	}

	switch {
	case r.Score != nil:
		e.Score = *r.Score
	case r.G != nil:
		e.Score = *r.G
	}

	return e
}

// NormalizeEdges converts any accepted neighbor input shape into a flat
// edge list:
//
//   - a flat array of {source,target,score[,S_text,S_date,S_place]}
//   - {pairs:[{a,b,score}]}
//   - {graph:{edges:[...]}}
//   - a per-item neighbor map {"<id>":[{id,score,...}, ...]}
//
// Anything else yields an empty list; malformed input never errors.
// Directional duplicates are collapsed to one edge per unordered pair,
// first record wins.
func NormalizeEdges(raw json.RawMessage) []models.NeighborEdge {
	if len(raw) == 0 {
		return nil
	}

	var flat []rawEdge
	if err := json.Unmarshal(raw, &flat); err == nil {
		return dedupe(convert(flat))
	}

	var wrapped struct {
		Pairs []rawEdge `json:"pairs"`
		Graph *struct {
			Edges []rawEdge `json:"edges"`
		} `json:"graph"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		if len(wrapped.Pairs) > 0 {
			return dedupe(convert(wrapped.Pairs))
		}

		if wrapped.Graph != nil && len(wrapped.Graph.Edges) > 0 {
			return dedupe(convert(wrapped.Graph.Edges))
		}
	}

	var keyed map[string][]rawEdge
	if err := json.Unmarshal(raw, &keyed); err == nil {
		var edges []models.NeighborEdge
		for source, neighbors := range keyed {
			for i := range neighbors {
				e := neighbors[i].toEdge()
				e.Source = source
				e.Target = neighbors[i].ID

				edges = append(edges, e)
			}
		}

		return dedupe(edges)
	}

	return nil
}

func convert(raws []rawEdge) []models.NeighborEdge {
	edges := make([]models.NeighborEdge, 0, len(raws))
	for i := range raws {
		edges = append(edges, raws[i].toEdge())
	}

	return edges
}

// dedupe collapses directional duplicates to one record per unordered
// pair and drops edges with a missing endpoint.
func dedupe(edges []models.NeighborEdge) []models.NeighborEdge {
	seen := make(map[[2]string]bool, len(edges))
	out := edges[:0]

	for _, e := range edges {
		if e.Source == "" || e.Target == "" || e.Source == e.Target {
			continue
		}

		key := pairKey(e.Source, e.Target)
		if seen[key] {
			continue
		}
		seen[key] = true

		out = append(out, e)
	}

	return out
}

func pairKey(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}

	return [2]string{a, b}
}
