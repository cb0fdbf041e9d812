package match

import "sort"

// DefaultMaxSuggestions caps the number of "did you mean" candidates.
const DefaultMaxSuggestions = 3

// Suggest returns the known words closest to word by edit distance, best
// first. Only candidates within a third of the longer word's length (at least
// one edit) are returned. Ties go to the more similar, then the smaller word.
func Suggest(word string, known []string, limit int) []string {
	if limit <= 0 {
		limit = DefaultMaxSuggestions
	}

	type scored struct {
		word string
		dist int
		sim  float64
	}

	w := NormalizeKeyword(word)

	var hits []scored

	for _, k := range known {
		nk := NormalizeKeyword(k)

		d := Levenshtein(w, nk)
		if d == 0 {
			continue
		}

		if d <= max(1, max(len(w), len(nk))/3) {
			hits = append(hits, scored{word: k, dist: d, sim: Similarity(w, nk)})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}

		if hits[i].sim != hits[j].sim {
			return hits[i].sim > hits[j].sim
		}

		return hits[i].word < hits[j].word
	})

	out := make([]string, 0, min(limit, len(hits)))
	for i := 0; i < len(hits) && i < limit; i++ {
		out = append(out, hits[i].word)
	}

	return out
}
