package tmdb

import (
	"slices"
	"strings"

	"github.com/hbollon/go-edlib"
)

// RankByTitle returns movies ordered by title similarity to query, best
// match first. The input slice is not modified and ties keep API order.
func RankByTitle(query string, movies []Movie) []Movie {
	q := strings.ToLower(strings.TrimSpace(query))
	ranked := slices.Clone(movies)
	if q == "" || len(ranked) < 2 {
		return ranked
	}

	scores := make(map[int64]float32, len(ranked))
	for _, m := range ranked {
		scores[m.ID] = titleScore(q, m)
	}

	slices.SortStableFunc(ranked, func(a, b Movie) int {
		sa, sb := scores[a.ID], scores[b.ID]
		switch {
		case sa > sb:
			return -1
		case sa < sb:
			return 1
		default:
			return 0
		}
	})
	return ranked
}

// titleScore is the better of the localized and original title similarity.
func titleScore(query string, m Movie) float32 {
	best := edlib.JaroWinklerSimilarity(query, strings.ToLower(m.Title))
	if m.OriginalTitle != "" && m.OriginalTitle != m.Title {
		if s := edlib.JaroWinklerSimilarity(query, strings.ToLower(m.OriginalTitle)); s > best {
			best = s
		}
	}
	return best
}
