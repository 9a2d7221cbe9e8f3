package usecase

import (
	"math"
	"sort"

	"github.com/daniel-soulful/giftly-new/internal/domain"
)

// defaultWindowRatios is the progressive relaxation sequence: each ratio r
// defines the price window [floor(budget*r), floor(budget)], tried from the
// most restrictive down. Exact 90-100%-of-budget matches are rare against
// live inventory, so the sequence trades strict positioning for a near
// guarantee of a non-empty result that never exceeds the budget.
var defaultWindowRatios = []float64{0.95, 0.90, 0.85, 0.80, 0.75, 0.70}

// SelectorConfig holds tuning parameters for the budget selector
type SelectorConfig struct {
	WindowRatios []float64
}

// BudgetSelector picks up to N candidates via progressively relaxed price
// windows while never exceeding the budget ceiling.
type BudgetSelector struct {
	ratios []float64
}

// NewBudgetSelector creates a selector with the given relaxation ratios.
// Ratios are sorted descending so tier ordering stays strict-to-relaxed
// regardless of configuration order.
func NewBudgetSelector(config SelectorConfig) *BudgetSelector {
	ratios := config.WindowRatios
	if len(ratios) == 0 {
		ratios = defaultWindowRatios
	}
	sorted := append([]float64(nil), ratios...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	return &BudgetSelector{ratios: sorted}
}

// Select returns up to need candidates respecting the budget ceiling.
// Each relaxation tier filters candidates into its price window, applies the
// persona filter, ranks hits by closeness to budget, and unions them with the
// picks accumulated so far (earlier, more restrictive tiers keep precedence).
// When budget is zero the windowing is skipped entirely and selection
// degrades to the persona-filtered pool in original order.
func (s *BudgetSelector) Select(candidates []domain.Candidate, req *domain.SelectionRequest, need int) []domain.Candidate {
	if need <= 0 || len(candidates) == 0 {
		return nil
	}

	budget := req.Budget
	if budget <= 0 {
		pool := ApplyPersonaFilter(candidates, req)
		return top(pool, need)
	}

	var out []domain.Candidate
	for _, ratio := range s.ratios {
		min := int(math.Floor(float64(budget) * ratio))
		hits := filterPriceWindow(candidates, min, budget)
		hits = ApplyPersonaFilter(hits, req)
		hits = rankByCloseness(hits, budget)
		out = mergeUnique(out, hits)
		if len(out) >= need {
			return top(out, need)
		}
	}

	// Widest tier: anything at or under budget
	hits := filterPriceWindow(candidates, 0, budget)
	hits = ApplyPersonaFilter(hits, req)
	hits = rankByCloseness(hits, budget)
	out = mergeUnique(out, hits)
	return top(out, need)
}

// RankByCloseness orders candidates by ascending |budget - price|, ties
// broken by first-seen order. With no budget the order is unchanged.
func RankByCloseness(candidates []domain.Candidate, budget int) []domain.Candidate {
	return rankByCloseness(candidates, budget)
}

func rankByCloseness(candidates []domain.Candidate, budget int) []domain.Candidate {
	if budget <= 0 {
		return candidates
	}
	ranked := append([]domain.Candidate(nil), candidates...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return distance(budget, ranked[i].Price) < distance(budget, ranked[j].Price)
	})
	return ranked
}

// UnderBudget returns the candidates priced at or under the budget.
// A zero budget is unconstrained and returns the pool unchanged.
func UnderBudget(candidates []domain.Candidate, budget int) []domain.Candidate {
	if budget <= 0 {
		return candidates
	}
	return filterPriceWindow(candidates, 0, budget)
}

func filterPriceWindow(candidates []domain.Candidate, min, max int) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Price >= min && c.Price <= max {
			out = append(out, c)
		}
	}
	return out
}

// mergeUnique returns a new ordered union of the two lists, deduplicated by
// id with earlier entries keeping precedence.
func mergeUnique(head, tail []domain.Candidate) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(head)+len(tail))
	seen := make(map[string]bool, len(head)+len(tail))
	for _, list := range [][]domain.Candidate{head, tail} {
		for _, c := range list {
			if seen[c.ID] {
				continue
			}
			seen[c.ID] = true
			out = append(out, c)
		}
	}
	return out
}

func top(candidates []domain.Candidate, n int) []domain.Candidate {
	if len(candidates) <= n {
		return candidates
	}
	return candidates[:n]
}

func distance(budget, price int) int {
	d := budget - price
	if d < 0 {
		return -d
	}
	return d
}
