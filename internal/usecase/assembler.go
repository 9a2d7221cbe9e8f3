package usecase

import (
	"fmt"
	"strings"

	"github.com/daniel-soulful/giftly-new/internal/domain"
)

// Assembler guarantees the output invariants regardless of upstream partial
// failure: bounded count, duplicate-free ids, non-empty descriptions, and
// budget safety. It runs unconditionally, even when every upstream stage
// degraded to empty.
type Assembler struct {
	currency string
}

// NewAssembler creates an assembler that formats prices with the given
// currency label (defaults to NOK).
func NewAssembler(currency string) *Assembler {
	if currency == "" {
		currency = "NOK"
	}
	return &Assembler{currency: currency}
}

// Assemble merges the primary-source picks first, then appends secondary
// picks only for slots not yet filled, skipping ids already present. Every
// returned candidate gets a non-empty description and respects the budget
// ceiling. Order established upstream is preserved.
func (a *Assembler) Assemble(primary, secondary []domain.Candidate, req *domain.SelectionRequest, need int) []domain.Candidate {
	merged := mergeUnique(primary, secondary)

	out := make([]domain.Candidate, 0, need)
	for _, c := range merged {
		if req.Budget > 0 && c.Price > req.Budget {
			continue
		}
		c = c.Clone()
		if strings.TrimSpace(c.Description) == "" {
			c.Description = a.FallbackDescription(c, req)
		}
		out = append(out, c)
		if len(out) >= need {
			break
		}
	}
	return out
}

// FallbackDescription synthesizes a deterministic description from the
// candidate's name, merchant, rounded price, and the request notes.
func (a *Assembler) FallbackDescription(c domain.Candidate, req *domain.SelectionRequest) string {
	var bits []string
	name := c.Name
	if name == "" {
		name = "Gift item"
	}
	bits = append(bits, name)
	if c.MerchantName != "" {
		bits = append(bits, fmt.Sprintf("from %s", c.MerchantName))
	}
	if c.Price > 0 {
		bits = append(bits, fmt.Sprintf("around %d %s", c.Price, a.currency))
	}
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		bits = append(bits, fmt.Sprintf("Relevant for: %s", notes))
	}
	return strings.Join(bits, ". ")
}
