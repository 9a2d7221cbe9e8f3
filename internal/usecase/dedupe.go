package usecase

import (
	"strings"

	"github.com/daniel-soulful/giftly-new/internal/domain"
)

// Dedupe collapses candidates that represent the same underlying item.
// Key is the id when non-empty, else the lowercased name. Order is stable:
// the first occurrence wins. Candidates with no usable key are dropped.
func Dedupe(candidates []domain.Candidate) []domain.Candidate {
	seen := make(map[string]bool, len(candidates))
	out := make([]domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		key := c.ID
		if key == "" {
			key = strings.ToLower(c.Name)
		}
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

// Exclude drops candidates whose id is in the suppression set,
// e.g. items a user was already shown.
func Exclude(candidates []domain.Candidate, ids []string) []domain.Candidate {
	if len(ids) == 0 {
		return candidates
	}
	excluded := make(map[string]bool, len(ids))
	for _, id := range ids {
		excluded[id] = true
	}
	out := make([]domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if !excluded[c.ID] {
			out = append(out, c)
		}
	}
	return out
}
