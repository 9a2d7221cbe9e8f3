package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/daniel-soulful/giftly-new/internal/domain"
)

// IdeasServiceConfig holds configuration for the ideas service
type IdeasServiceConfig struct {
	Need               int
	ShortlistFactor    int
	SearchTimeout      time.Duration
	RerankTimeout      time.Duration
	Currency           string
	WindowRatios       []float64
	LocalMerchants     []string
	EnableDebugLogging bool
}

// IdeasService runs the candidate selection and ranking pipeline:
// live search -> normalize -> dedupe -> budget selection -> catalog fallback
// -> scoring -> optional semantic rerank -> assembly. Each request is
// independent and stateless; the service holds no mutable state.
type IdeasService struct {
	search   domain.SearchProvider
	catalog  domain.CatalogStore
	reranker domain.Reranker // nil when unconfigured

	selector  *BudgetSelector
	scorer    *Scorer
	assembler *Assembler

	need            int
	shortlistFactor int
	searchTimeout   time.Duration
	rerankTimeout   time.Duration
	debug           bool
}

// NewIdeasService creates the service with its collaborators. The reranker
// may be nil, in which case the rerank stage is skipped entirely.
func NewIdeasService(
	search domain.SearchProvider,
	catalog domain.CatalogStore,
	reranker domain.Reranker,
	config IdeasServiceConfig,
) *IdeasService {
	need := config.Need
	if need <= 0 {
		need = 3
	}
	factor := config.ShortlistFactor
	if factor <= 0 {
		factor = 2
	}
	searchTimeout := config.SearchTimeout
	if searchTimeout <= 0 {
		searchTimeout = 12 * time.Second
	}
	rerankTimeout := config.RerankTimeout
	if rerankTimeout <= 0 {
		rerankTimeout = 20 * time.Second
	}

	return &IdeasService{
		search:          search,
		catalog:         catalog,
		reranker:        reranker,
		selector:        NewBudgetSelector(SelectorConfig{WindowRatios: config.WindowRatios}),
		scorer:          NewScorer(ScorerConfig{LocalMerchants: config.LocalMerchants}),
		assembler:       NewAssembler(config.Currency),
		need:            need,
		shortlistFactor: factor,
		searchTimeout:   searchTimeout,
		rerankTimeout:   rerankTimeout,
		debug:           config.EnableDebugLogging,
	}
}

// GetIdeas returns up to N budget-safe gift candidates for the request.
// Idempotent and side-effect free. Live search and rerank failures are
// recovered locally as empty contributions; only an unreadable catalog
// propagates as an error.
func (s *IdeasService) GetIdeas(ctx context.Context, req *domain.SelectionRequest) (*domain.SelectionResult, error) {
	if req == nil || req.Age < 0 || req.Budget < 0 {
		return nil, domain.ErrInvalidRequest
	}

	trace := &domain.Trace{}
	shortlistCap := s.need * s.shortlistFactor

	live := s.acquireLive(ctx, req, trace)
	primary := s.selector.Select(live, req, shortlistCap)
	trace.LiveSelected = len(primary)

	var secondary []domain.Candidate
	if len(primary) < s.need {
		catalogPool, err := s.acquireCatalog(ctx, req, trace)
		if err != nil {
			return nil, err
		}
		secondary = s.selector.Select(catalogPool, req, s.need)
		trace.CatalogSelected = len(secondary)
	}

	// If both sources together still come up short, pad from the budget-safe
	// live pool ranked by closeness. Never above budget.
	if len(mergeUnique(primary, secondary)) < s.need && len(live) > 0 {
		pad := rankByCloseness(UnderBudget(live, req.Budget), req.Budget)
		before := len(primary)
		primary = top(mergeUnique(primary, pad), shortlistCap)
		trace.Padded = len(primary) - before
	}

	primary = s.scorer.Rank(primary, req)
	secondary = s.scorer.Rank(secondary, req)
	shortlist := top(mergeUnique(primary, secondary), shortlistCap)

	if reranked, ok := s.applyRerank(ctx, shortlist, req); ok {
		trace.RerankUsed = true
		return &domain.SelectionResult{
			Ideas: s.assembler.Assemble(reranked, nil, req, s.need),
			Trace: trace,
		}, nil
	}

	return &domain.SelectionResult{
		Ideas: s.assembler.Assemble(primary, secondary, req, s.need),
		Trace: trace,
	}, nil
}

// acquireLive queries the live search provider with a timeout and runs the
// acquired records through normalization, the eligibility gate, dedup, and
// the exclusion list. Any provider failure degrades to an empty pool.
func (s *IdeasService) acquireLive(ctx context.Context, req *domain.SelectionRequest, trace *domain.Trace) []domain.Candidate {
	searchCtx, cancel := context.WithTimeout(ctx, s.searchTimeout)
	defer cancel()

	raws, err := s.search.Search(searchCtx, domain.PersonaQuery{
		Age:    req.Age,
		Gender: req.Gender,
		Budget: req.Budget,
		Notes:  req.Notes,
	})
	if err != nil {
		log.Printf("[IDEAS] live search failed, continuing without: %v", err)
		return nil
	}
	trace.LiveTotal = len(raws)

	pool := NormalizeAll(raws, domain.SourceLive)
	trace.LiveEligible = len(pool)

	pool = Dedupe(pool)
	trace.LiveDeduped = len(pool)

	pool = Exclude(pool, req.ExcludeIDs)
	if s.debug {
		log.Printf("[IDEAS] live pool: %d raw, %d eligible, %d after dedupe/exclude",
			trace.LiveTotal, trace.LiveEligible, len(pool))
	}
	return pool
}

// acquireCatalog reads the local fallback catalog. Unlike the live source,
// an unreadable catalog is a configuration-level failure and propagates.
func (s *IdeasService) acquireCatalog(ctx context.Context, req *domain.SelectionRequest, trace *domain.Trace) ([]domain.Candidate, error) {
	raws, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	trace.CatalogTotal = len(raws)

	pool := NormalizeAll(raws, domain.SourceCatalog)
	trace.CatalogEligible = len(pool)

	pool = Dedupe(pool)
	pool = Exclude(pool, req.ExcludeIDs)
	if s.debug {
		log.Printf("[IDEAS] catalog pool: %d rows, %d eligible", trace.CatalogTotal, len(pool))
	}
	return pool, nil
}

// applyRerank asks the semantic reranker to refine the shortlist. The stage
// is skipped when unconfigured or the shortlist is empty, and any failure or
// invalid response leaves the pre-rerank order standing.
func (s *IdeasService) applyRerank(ctx context.Context, shortlist []domain.Candidate, req *domain.SelectionRequest) ([]domain.Candidate, bool) {
	if s.reranker == nil || len(shortlist) == 0 {
		return nil, false
	}

	rerankCtx, cancel := context.WithTimeout(ctx, s.rerankTimeout)
	defer cancel()

	picks, err := s.reranker.Rerank(rerankCtx, shortlist, req)
	if err != nil {
		log.Printf("[IDEAS] rerank failed, keeping scored order: %v", err)
		return nil, false
	}

	reranked, err := ApplyRerank(shortlist, picks, s.need)
	if err != nil {
		log.Printf("[IDEAS] rerank rejected, keeping scored order: %v", err)
		return nil, false
	}
	return reranked, true
}

// ApplyRerank validates an untrusted reranker response against the shortlist
// and materializes the picked candidates. Any empty response, unknown id, or
// duplicate pick rejects the whole result so the reranker can only refine,
// never degrade availability. Picked descriptions replace the candidate's
// own only when non-empty.
func ApplyRerank(shortlist []domain.Candidate, picks []domain.RerankPick, need int) ([]domain.Candidate, error) {
	if len(picks) == 0 {
		return nil, fmt.Errorf("%w: no picks", domain.ErrRerankRejected)
	}
	if len(picks) > need {
		picks = picks[:need]
	}

	byID := make(map[string]domain.Candidate, len(shortlist))
	for _, c := range shortlist {
		byID[c.ID] = c
	}

	seen := make(map[string]bool, len(picks))
	out := make([]domain.Candidate, 0, len(picks))
	for _, pick := range picks {
		base, ok := byID[pick.ID]
		if !ok {
			return nil, fmt.Errorf("%w: unknown id %q", domain.ErrRerankRejected, pick.ID)
		}
		if seen[pick.ID] {
			return nil, fmt.Errorf("%w: duplicate id %q", domain.ErrRerankRejected, pick.ID)
		}
		seen[pick.ID] = true

		c := base.Clone()
		if desc := strings.TrimSpace(pick.Description); desc != "" {
			c.Description = desc
		}
		out = append(out, c)
	}
	return out, nil
}
