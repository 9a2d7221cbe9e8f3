package domain

// Source identifies where a candidate was acquired from
type Source string

const (
	SourceLive    Source = "live"
	SourceCatalog Source = "catalog"
)

// RawRecord is a provider-shaped product record before normalization.
// Field names vary per provider (SerpAPI shopping results, catalog rows),
// so records travel as loose maps until the normalizer maps them into
// the canonical Candidate shape.
type RawRecord map[string]any

// Spec is a single key/value product attribute (e.g. "Color": "Red")
type Spec struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Candidate is a normalized, potentially recommendable product.
// Candidates are built fresh per request and never mutated after scoring;
// stages that enrich a candidate work on a copy.
type Candidate struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        int      `json:"price_nok"` // whole NOK, must be > 0 to be eligible
	ImageURL     string   `json:"image_url"`
	Images       []string `json:"images,omitempty"`
	MerchantName string   `json:"merchant_name,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	ExternalURL  string   `json:"external_url,omitempty"` // set when fulfilled off-platform
	Specs        []Spec   `json:"specs,omitempty"`
	Source       Source   `json:"-"`
}

// Clone returns a copy of the candidate with its own slice headers,
// so downstream enrichment cannot alias the original.
func (c Candidate) Clone() Candidate {
	out := c
	out.Images = append([]string(nil), c.Images...)
	out.Tags = append([]string(nil), c.Tags...)
	out.Specs = append([]Spec(nil), c.Specs...)
	return out
}

// HasTag reports whether the candidate carries the given lowercase tag
func (c Candidate) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SelectionRequest is the recipient profile plus constraints for one lookup
type SelectionRequest struct {
	Age        int      `json:"age"`
	Gender     string   `json:"gender,omitempty"` // soft signal only, never a hard filter
	Budget     int      `json:"budget"`           // whole NOK, 0 means unconstrained
	Notes      string   `json:"notes,omitempty"`
	ExcludeIDs []string `json:"excludeIds,omitempty"`
}

// SelectionResult is the ordered, budget-safe outcome of a selection
type SelectionResult struct {
	Ideas []Candidate `json:"ideas"`
	Trace *Trace      `json:"debug,omitempty"`
}

// Trace records per-stage counters for a single request. Populated always,
// surfaced to clients only on demand.
type Trace struct {
	LiveTotal       int  `json:"live_total"`
	LiveEligible    int  `json:"live_eligible"`
	LiveDeduped     int  `json:"live_deduped"`
	LiveSelected    int  `json:"live_selected"`
	CatalogTotal    int  `json:"catalog_total,omitempty"`
	CatalogEligible int  `json:"catalog_eligible,omitempty"`
	CatalogSelected int  `json:"catalog_selected,omitempty"`
	Padded          int  `json:"padded,omitempty"`
	RerankUsed      bool `json:"rerank_used"`
}

// PersonaQuery carries the persona signals a live search provider may use
// to shape its query. The provider decides which signals it honors.
type PersonaQuery struct {
	Age    int
	Gender string
	Budget int
	Notes  string
}

// RerankPick is one entry of a reranker response: a shortlist id plus an
// optional tailored description.
type RerankPick struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}
