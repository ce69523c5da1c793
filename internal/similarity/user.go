package similarity

import "github.com/goodneighborlab/goodneighbor/internal/models"

// Co-occurrence parameters. Co-view evidence only counts inside a
// fixed look-ahead window over the chronological view order; bookmarks
// pair without a window. The two families blend 0.4/0.6, so scores stay
// in [0,1] by construction.
const (
	CoViewWindow     = 5
	coViewWeight     = 0.4
	coBookmarkWeight = 0.6
)

// DeriveUser recomputes the pairwise S_user map from the interaction
// record. The result is a fresh map keyed by canonical pair; callers
// must not cache it across interaction changes.
//
// Cost is O(V·W + B²) for V distinct viewed items, window W, and B
// bookmarks, all bounded by one human session.
func DeriveUser(rec *models.InteractionRecord) map[PairKey]float64 {
	if rec == nil {
		return map[PairKey]float64{}
	}

	coView := countCoViews(rec)
	coBookmark := countCoBookmarks(rec)

	scores := make(map[PairKey]float64, len(coView)+len(coBookmark))

	viewMax := maxCount(coView)
	for k, c := range coView {
		scores[k] += coViewWeight * float64(c) / viewMax
	}

	bookmarkMax := maxCount(coBookmark)
	for k, c := range coBookmark {
		scores[k] += coBookmarkWeight * float64(c) / bookmarkMax
	}

	return scores
}

// countCoViews counts ordered pairs (i, j) with j within the look-ahead
// window after i in the recency order, keyed by canonical pair. The
// window of W covers positions i+1 through i+W-1; the item W positions
// ahead is outside it.
func countCoViews(rec *models.InteractionRecord) map[PairKey]int {
	order := rec.ViewedByRecency()
	counts := map[PairKey]int{}

	for i := 0; i < len(order); i++ {
		for j := i + 1; j < i+CoViewWindow && j < len(order); j++ {
			counts[NewPairKey(order[i], order[j])]++
		}
	}

	return counts
}

// countCoBookmarks counts every unordered pair among the bookmark set.
func countCoBookmarks(rec *models.InteractionRecord) map[PairKey]int {
	counts := map[PairKey]int{}

	for i := 0; i < len(rec.Bookmarks); i++ {
		for j := i + 1; j < len(rec.Bookmarks); j++ {
			if rec.Bookmarks[i] == rec.Bookmarks[j] {
				continue
			}

			counts[NewPairKey(rec.Bookmarks[i], rec.Bookmarks[j])]++
		}
	}

	return counts
}

// maxCount returns the family maximum as a divisor, treating an empty
// family as 1 so normalization never divides by zero.
func maxCount(counts map[PairKey]int) float64 {
	max := 0
	for _, c := range counts {
		if c > max {
			max = c
		}
	}

	if max == 0 {
		return 1
	}

	return float64(max)
}
