package usecase

import (
	"strings"

	"github.com/daniel-soulful/giftly-new/internal/domain"
)

// AgeBucket is a coarse age category used for soft persona filtering
type AgeBucket string

const (
	BucketUnknown    AgeBucket = "unknown"
	BucketInfant     AgeBucket = "infant"
	BucketToddler    AgeBucket = "toddler"
	BucketYoungChild AgeBucket = "young-child"
	BucketPreTeen    AgeBucket = "pre-teen"
	BucketTeen       AgeBucket = "teen"
	BucketYoungAdult AgeBucket = "young-adult"
	BucketAdult      AgeBucket = "adult"
)

// bucketTagKeywords maps each non-adult bucket to tag keywords that indicate
// a fitting item. A candidate matches when any tag contains any keyword.
var bucketTagKeywords = map[AgeBucket][]string{
	BucketInfant:     {"baby", "kids", "toy", "leke"},
	BucketToddler:    {"kids", "toy", "family", "leke"},
	BucketYoungChild: {"kids", "toy", "family", "lego", "game"},
	BucketPreTeen:    {"kids", "toy", "family", "lego", "game", "gadget"},
	BucketTeen:       {"teen", "gadget", "outdoor", "music", "lego", "gaming"},
}

// kidTagKeywords mark items the adult buckets exclude
var kidTagKeywords = []string{"kids", "baby", "toddler"}

// interestVocabulary maps interest keys to the notes keywords (with Norwegian
// synonyms) that signal them. The interest key doubles as the candidate tag
// to match against.
var interestVocabulary = map[string][]string{
	"coffee":  {"coffee", "kaffe", "espresso"},
	"outdoor": {"outdoor", "hytte", "tur", "fjell", "friluft"},
	"lego":    {"lego"},
	"music":   {"music", "musikk"},
	"gaming":  {"gaming", "spill", "playstation", "nintendo"},
	"books":   {"book", "books", "bok", "lesing"},
}

// BucketForAge maps an age to its bucket. Ages at or below zero carry no
// persona signal and map to BucketUnknown.
func BucketForAge(age int) AgeBucket {
	switch {
	case age <= 0:
		return BucketUnknown
	case age <= 2:
		return BucketInfant
	case age <= 6:
		return BucketToddler
	case age <= 9:
		return BucketYoungChild
	case age <= 12:
		return BucketPreTeen
	case age <= 17:
		return BucketTeen
	case age <= 25:
		return BucketYoungAdult
	default:
		return BucketAdult
	}
}

// IsChildBucket reports whether the bucket covers ages 12 and under
func IsChildBucket(b AgeBucket) bool {
	switch b {
	case BucketInfant, BucketToddler, BucketYoungChild, BucketPreTeen:
		return true
	}
	return false
}

// ApplyPersonaFilter applies the soft age and notes-interest filters.
// Both filters are preferences, never hard requirements: whenever a filter
// would empty the pool it reverts to the pre-filter pool. Gender is a soft
// signal only and deliberately filters nothing here.
func ApplyPersonaFilter(pool []domain.Candidate, req *domain.SelectionRequest) []domain.Candidate {
	pool = applyAgeFilter(pool, BucketForAge(req.Age))

	if interests := DetectInterests(req.Notes); len(interests) > 0 {
		pool = applyIfNonEmpty(pool, func(c domain.Candidate) bool {
			return tagsMatchAny(c, interests)
		})
	}

	return pool
}

// applyAgeFilter narrows the pool to candidates fitting the age bucket.
// Non-adult buckets select matching kid/teen items; the adult buckets
// instead exclude kid-tagged items.
func applyAgeFilter(pool []domain.Candidate, bucket AgeBucket) []domain.Candidate {
	switch bucket {
	case BucketUnknown:
		return pool
	case BucketYoungAdult, BucketAdult:
		return applyIfNonEmpty(pool, func(c domain.Candidate) bool {
			return !tagsMatchAny(c, kidTagKeywords)
		})
	default:
		keywords := bucketTagKeywords[bucket]
		return applyIfNonEmpty(pool, func(c domain.Candidate) bool {
			return tagsMatchAny(c, keywords)
		})
	}
}

// applyIfNonEmpty filters the pool by the predicate, reverting to the
// original pool when the result would be empty.
func applyIfNonEmpty(pool []domain.Candidate, keep func(domain.Candidate) bool) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(pool))
	for _, c := range pool {
		if keep(c) {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return pool
	}
	return out
}

// DetectInterests scans free-text notes for the fixed interest vocabulary
// and returns the matched interest keys in stable order.
func DetectInterests(notes string) []string {
	n := strings.ToLower(notes)
	if strings.TrimSpace(n) == "" {
		return nil
	}
	var interests []string
	for _, interest := range interestOrder {
		for _, kw := range interestVocabulary[interest] {
			if strings.Contains(n, kw) {
				interests = append(interests, interest)
				break
			}
		}
	}
	return interests
}

// interestOrder keeps interest detection deterministic (map iteration is not)
var interestOrder = []string{"coffee", "outdoor", "lego", "music", "gaming", "books"}

// tagsMatchAny reports whether any candidate tag contains any keyword
func tagsMatchAny(c domain.Candidate, keywords []string) bool {
	for _, tag := range c.Tags {
		for _, kw := range keywords {
			if strings.Contains(tag, kw) {
				return true
			}
		}
	}
	return false
}
