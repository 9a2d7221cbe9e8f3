package usecase

import (
	"sort"
	"strings"

	"github.com/daniel-soulful/giftly-new/internal/domain"
)

// Scoring bonuses
const (
	merchantMatchBonus = 40.0 // Merchant appears in the local retailer list
	localTLDBonus      = 10.0 // Merchant name carries the local TLD hint
	kidKeywordBonus    = 30.0 // Notes or tags carry child/toy keywords
	closenessBonusMax  = 20.0 // Max contribution of budget closeness
)

// bucketBaseBonus scales the persona-fit bonus per child bucket,
// larger for younger recipients.
var bucketBaseBonus = map[AgeBucket]float64{
	BucketInfant:     20.0,
	BucketToddler:    18.0,
	BucketYoungChild: 15.0,
	BucketPreTeen:    12.0,
}

// kidScoreKeywords signal child/toy fit in notes and tags
var kidScoreKeywords = []string{"barn", "kid", "kids", "lego", "leke", "toy", "baby"}

// defaultLocalMerchants is the curated list of known Norwegian retailers.
// Product-specific tuning data, overridable through configuration.
var defaultLocalMerchants = []string{
	"clas ohlson", "elkjøp", "elkjop", "power", "komplett", "xxl", "outnorth",
	"jollyroom", "lekia", "princess", "kid interiør", "kid interior", "stormberg",
	"obs", "coop", "nille", "platekompaniet",
}

// ScorerConfig holds tuning parameters for the quality/locale scorer
type ScorerConfig struct {
	LocalMerchants []string
	LocalTLD       string
}

// Scorer ranks candidates by a purely additive heuristic: locale/merchant
// affinity, persona fit, and closeness to budget. No learning involved.
type Scorer struct {
	merchants []string
	localTLD  string
}

// NewScorer creates a scorer with the given merchant list and TLD hint
func NewScorer(config ScorerConfig) *Scorer {
	merchants := config.LocalMerchants
	if len(merchants) == 0 {
		merchants = defaultLocalMerchants
	}
	lowered := make([]string, len(merchants))
	for i, m := range merchants {
		lowered[i] = strings.ToLower(m)
	}
	tld := config.LocalTLD
	if tld == "" {
		tld = ".no"
	}
	return &Scorer{merchants: lowered, localTLD: tld}
}

// Score computes the heuristic quality score for one candidate.
// Higher is better.
func (s *Scorer) Score(c domain.Candidate, req *domain.SelectionRequest) float64 {
	return s.merchantScore(c.MerchantName) +
		s.personaScore(c, req) +
		closenessScore(c.Price, req.Budget)
}

// Rank orders candidates by descending score, ties broken by first-seen order
func (s *Scorer) Rank(candidates []domain.Candidate, req *domain.SelectionRequest) []domain.Candidate {
	ranked := append([]domain.Candidate(nil), candidates...)
	scores := make([]float64, len(ranked))
	for i, c := range ranked {
		scores[i] = s.Score(c, req)
	}
	indices := make([]int, len(ranked))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return scores[indices[a]] > scores[indices[b]]
	})
	out := make([]domain.Candidate, len(ranked))
	for i, idx := range indices {
		out[i] = ranked[idx]
	}
	return out
}

// merchantScore awards a fixed bonus for known local retailers plus a
// smaller one when the name carries the local TLD hint.
func (s *Scorer) merchantScore(merchantName string) float64 {
	if merchantName == "" {
		return 0
	}
	m := strings.ToLower(merchantName)
	score := 0.0
	for _, known := range s.merchants {
		if strings.Contains(m, known) {
			score += merchantMatchBonus
			break
		}
	}
	if strings.Contains(m, s.localTLD) {
		score += localTLDBonus
	}
	return score
}

// personaScore awards a bucket-scaled bonus for child recipients, boosted
// when notes or tags carry child/toy keywords. Child recipients always get
// at least the bucket base so young ages nudge kid items upward.
func (s *Scorer) personaScore(c domain.Candidate, req *domain.SelectionRequest) float64 {
	bucket := BucketForAge(req.Age)
	base, ok := bucketBaseBonus[bucket]
	if !ok {
		return 0
	}
	haystack := strings.ToLower(req.Notes + " " + strings.Join(c.Tags, " "))
	for _, kw := range kidScoreKeywords {
		if strings.Contains(haystack, kw) {
			return base + kidKeywordBonus
		}
	}
	return base
}

// closenessScore contributes up to closenessBonusMax, linearly decaying with
// the relative distance between price and budget. Zero when either is unset.
func closenessScore(price, budget int) float64 {
	if budget <= 0 || price <= 0 {
		return 0
	}
	d := float64(distance(budget, price)) / float64(budget)
	score := closenessBonusMax - d*closenessBonusMax
	if score < 0 {
		return 0
	}
	return score
}
