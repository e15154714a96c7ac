// File: services/intelligence/geminiClient.go
package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"oneq/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiExtractor implements chat.Extractor on top of the Gemini API.
type GeminiExtractor struct {
	model *genai.GenerativeModel
}

func NewGeminiExtractor(apiKey string) (*GeminiExtractor, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("models/gemini-1.5-flash")
	model.ResponseMIMEType = "application/json"
	return &GeminiExtractor{model: model}, nil
}

// Extract asks Gemini to pull structured print-request fields out of the
// latest utterance, given the conversation so far. Only the structured
// result is used; any conversational text is discarded.
func (g *GeminiExtractor) Extract(ctx context.Context, history []models.SessionTurn, utterance string) (models.PartialPrintRequest, error) {
	prompt := buildExtractionPrompt(history, utterance)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return models.PartialPrintRequest{}, fmt.Errorf("gemini extract error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return models.PartialPrintRequest{}, fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return parseExtraction(sb.String())
}

func buildExtractionPrompt(history []models.SessionTurn, utterance string) string {
	var sb strings.Builder
	sb.WriteString(`You extract print order details from a customer message.
Return ONLY a JSON object with these keys, omitting any the message does not state:
  "category": one of "business-card", "poster", "banner", "large-banner", "brochure", "sticker"
  "quantity": the number of copies, e.g. "100"
  "due_days": days until the deadline, e.g. "7"
  "budget": a budget amount or range, e.g. "50000-100000"
  "region": the customer's area
  "options": an object of option name to chosen value, using option names
             paper, printing, finishing, coating, size, stand, processing, folding, type

Conversation so far:
`)
	for _, turn := range history {
		sb.WriteString("customer: ")
		sb.WriteString(turn.Utterance)
		sb.WriteString("\n")
	}
	sb.WriteString("\nLatest message:\n")
	sb.WriteString(utterance)
	return sb.String()
}

// rawExtraction tolerates Gemini returning either strings or numbers for
// the numeric fields.
type rawExtraction struct {
	Category string            `json:"category"`
	Quantity any               `json:"quantity"`
	DueDays  any               `json:"due_days"`
	Budget   any               `json:"budget"`
	Region   string            `json:"region"`
	Options  map[string]string `json:"options"`
}

func parseExtraction(text string) (models.PartialPrintRequest, error) {
	cleaned := stripCodeFence(text)

	var raw rawExtraction
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return models.PartialPrintRequest{}, fmt.Errorf("unparsable extraction %q: %w", cleaned, err)
	}

	var out models.PartialPrintRequest
	if cat, ok := CanonicalCategory(raw.Category); ok {
		out.Category = &cat
	}
	out.Quantity = ParseQuantity(asString(raw.Quantity))
	out.DueDays = ParseDueDays(asString(raw.DueDays))
	out.Budget = ParseBudget(asString(raw.Budget))
	out.Region = strings.TrimSpace(raw.Region)
	if len(raw.Options) > 0 {
		out.Options = make(map[string]string, len(raw.Options))
		for k, v := range raw.Options {
			k, v = strings.TrimSpace(k), strings.TrimSpace(v)
			if k != "" && v != "" {
				out.Options[k] = v
			}
		}
	}
	return out, nil
}

func stripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%.0f", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
