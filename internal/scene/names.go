package scene

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/tatianab/escape-room/internal/models"
)

// NameMatcher targets an interactable by a typed name, tolerating typos.
type NameMatcher struct{}

// Match returns the object best matching query. Exact names and aliases win,
// then substring matches, then the closest edit distance within a limit that
// scales with the candidate length.
func (NameMatcher) Match(query string, objects []*models.Interactable) (models.Handle, bool) {
	q := normalise(query)
	if q == "" {
		return "", false
	}

	var (
		containsHit models.Handle
		containsLen int
		fuzzyHit    models.Handle
		fuzzyDist   = -1
	)
	for _, obj := range objects {
		for _, cand := range candidates(obj) {
			if cand == q {
				return obj.Handle, true
			}
			if len(q) >= 3 && (strings.Contains(q, cand) || strings.Contains(cand, q)) {
				if len(cand) > containsLen {
					containsHit, containsLen = obj.Handle, len(cand)
				}
				continue
			}
			dist := levenshtein.ComputeDistance(q, cand)
			if dist > distanceLimit(len(cand)) {
				continue
			}
			if fuzzyDist < 0 || dist < fuzzyDist {
				fuzzyHit, fuzzyDist = obj.Handle, dist
			}
		}
	}
	if containsLen > 0 {
		return containsHit, true
	}
	if fuzzyDist >= 0 {
		return fuzzyHit, true
	}
	return "", false
}

func candidates(obj *models.Interactable) []string {
	out := make([]string, 0, len(obj.Aliases)+2)
	for _, s := range append([]string{obj.Name, string(obj.Handle)}, obj.Aliases...) {
		if n := normalise(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func normalise(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	s = strings.TrimPrefix(s, "the ")
	return strings.Join(strings.Fields(s), " ")
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
