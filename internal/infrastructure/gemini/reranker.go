package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/daniel-soulful/giftly-new/internal/domain"
)

const defaultModel = "gemini-1.5-flash"

// rerankPrompt frames the model as a gift curator. The response contract is
// strict JSON; anything else is rejected downstream.
const rerankPrompt = `You are a careful gift curator. Pick the %d best gifts given AGE, GENDER, NOTES, and BUDGET.
Rules:
- Never exceed the budget.
- Prefer items near 90-100%% of budget; lower is ok if quality/fit is good.
- Avoid duplicates.
- Only use ids from the candidate list.
- For each pick, write a concise 1-2 sentence description tailored to the person.
Respond with JSON: {"picks": [{"id": "...", "description": "..."}]}

%s`

// Config holds Gemini reranker configuration
type Config struct {
	APIKey string
	Model  string
}

// Reranker asks Gemini to pick and describe the best gifts from a shortlist.
// It is an untrusted transformer: callers validate every pick and fall back
// to their own ordering on any failure.
type Reranker struct {
	client *genai.Client
	model  string
}

// NewReranker creates a Gemini-backed reranker
func NewReranker(ctx context.Context, config Config) (*Reranker, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	model := config.Model
	if model == "" {
		model = defaultModel
	}
	return &Reranker{client: client, model: model}, nil
}

// rerankPayload is the request context serialized into the prompt
type rerankPayload struct {
	Age        int               `json:"age"`
	Gender     string            `json:"gender"`
	Budget     int               `json:"budget"`
	Notes      string            `json:"notes"`
	Candidates []rerankCandidate `json:"candidates"`
}

type rerankCandidate struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PriceNOK     int    `json:"price_nok"`
	MerchantName string `json:"merchant_name"`
	Description  string `json:"description"`
	Tags         string `json:"tags"`
}

type rerankResponse struct {
	Picks []domain.RerankPick `json:"picks"`
}

// Rerank asks the model for an ordered subset of the shortlist. The returned
// picks are unvalidated; the selection pipeline checks them against its
// shortlist and discards the whole result on any mismatch.
func (r *Reranker) Rerank(ctx context.Context, shortlist []domain.Candidate, req *domain.SelectionRequest) ([]domain.RerankPick, error) {
	payload := rerankPayload{
		Age:    req.Age,
		Gender: req.Gender,
		Budget: req.Budget,
		Notes:  req.Notes,
	}
	for _, c := range shortlist {
		payload.Candidates = append(payload.Candidates, rerankCandidate{
			ID:           c.ID,
			Name:         c.Name,
			PriceNOK:     c.Price,
			MerchantName: c.MerchantName,
			Description:  c.Description,
			Tags:         strings.Join(c.Tags, ","),
		})
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRerankUnavailable, err)
	}

	model := r.client.GenerativeModel(r.model)
	model.SetTemperature(0.2)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(fmt.Sprintf(rerankPrompt, 3, string(encoded))))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRerankUnavailable, err)
	}

	text, err := extractText(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRerankUnavailable, err)
	}

	var parsed rerankResponse
	if err := json.Unmarshal([]byte(cleanJSONBlock(text)), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRerankRejected, err)
	}
	return parsed.Picks, nil
}

// Close releases resources held by the underlying client
func (r *Reranker) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// extractText pulls the text parts out of a Gemini response
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}
	var parts []string
	for _, part := range content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}

// cleanJSONBlock removes markdown code fences some models wrap JSON in
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
