package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/daniel-soulful/giftly-new/internal/domain"
	"golang.org/x/time/rate"
)

// Config holds SerpAPI client configuration
type Config struct {
	APIKey   string
	BaseURL  string
	Country  string // gl parameter
	Language string // hl parameter
	PageSize int
	Timeout  time.Duration
}

// Client handles communication with the SerpAPI Google Shopping engine.
// It performs a single attempt per request with a timeout guard; failures
// are recovered upstream as an empty contribution, so retrying here would
// only stretch request latency.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	country     string
	language    string
	pageSize    int
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new SerpAPI client
func NewClient(config Config) *Client {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://serpapi.com"
	}
	country := config.Country
	if country == "" {
		country = "no"
	}
	language := config.Language
	if language == "" {
		language = "no"
	}
	pageSize := config.PageSize
	if pageSize <= 0 {
		pageSize = 30
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 12 * time.Second
	}

	// SerpAPI plans are metered per month; a small steady limit with a burst
	// keeps a busy instance from draining the quota in one spike.
	limiter := rate.NewLimiter(rate.Limit(1), 5)

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		apiKey:      config.APIKey,
		baseURL:     baseURL,
		country:     country,
		language:    language,
		pageSize:    pageSize,
		rateLimiter: limiter,
	}
}

// SetDebug enables verbose request/response logging
func (c *Client) SetDebug(enabled bool) {
	c.debug = enabled
}

// searchResponse is the subset of a SerpAPI payload the engine consumes.
// Result entries stay as raw records; the normalizer owns field resolution.
type searchResponse struct {
	ShoppingResults []domain.RawRecord `json:"shopping_results"`
	OrganicResults  []domain.RawRecord `json:"organic_results"`
}

// Search runs a Google Shopping query shaped by the persona. With no API key
// configured the provider contributes nothing and returns an empty result.
func (c *Client) Search(ctx context.Context, query domain.PersonaQuery) ([]domain.RawRecord, error) {
	if c.apiKey == "" {
		return nil, nil
	}

	q := buildQuery(query)
	params := url.Values{}
	params.Add("engine", "google_shopping")
	params.Add("q", q)
	params.Add("gl", c.country)
	params.Add("hl", c.language)
	params.Add("num", strconv.Itoa(c.pageSize))
	params.Add("api_key", c.apiKey)

	reqURL := fmt.Sprintf("%s/search.json?%s", c.baseURL, params.Encode())
	if c.debug {
		log.Printf("[SERPAPI] query: %q", q)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "giftly/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		if c.debug {
			log.Printf("[SERPAPI] status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("%w: status %d", domain.ErrSearchUnavailable, resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchUnavailable, err)
	}

	records := make([]domain.RawRecord, 0, len(parsed.ShoppingResults)+len(parsed.OrganicResults))
	records = append(records, parsed.ShoppingResults...)
	records = append(records, parsed.OrganicResults...)

	if c.debug {
		log.Printf("[SERPAPI] %d records for query %q", len(records), q)
	}
	return records, nil
}

// buildQuery composes the Norwegian shopping query from persona signals:
// free-text notes, a child/teen age term, an optional gender token, and the
// "gave" (gift) anchor.
func buildQuery(query domain.PersonaQuery) string {
	var parts []string
	if notes := strings.TrimSpace(query.Notes); notes != "" {
		parts = append(parts, notes)
	}
	switch {
	case query.Age > 0 && query.Age <= 12:
		parts = append(parts, "barn")
	case query.Age > 12 && query.Age <= 17:
		parts = append(parts, "ungdom")
	}
	gender := strings.ToLower(strings.TrimSpace(query.Gender))
	if gender == "male" || gender == "female" {
		parts = append(parts, gender)
	}
	parts = append(parts, "gave")
	return strings.Join(parts, " ")
}
