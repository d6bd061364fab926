package classifier

import (
	"context"
	"fmt"
	"strings"

	"spendscope/internal/logging"
	"spendscope/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient implements AIClient against the Google Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger logging.Logger
}

// NewGeminiClient creates a Gemini-backed AIClient. The model name defaults
// to gemini-1.5-flash when empty.
func NewGeminiClient(ctx context.Context, apiKey, model string, logger logging.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is not set")
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{
		client: client,
		model:  client.GenerativeModel(model),
		logger: logger,
	}, nil
}

// CategorizeTransaction prompts Gemini to choose one category name from the
// provided list for the given transaction.
func (c *GeminiClient) CategorizeTransaction(ctx context.Context, tx models.Transaction, categories []string) (string, error) {
	prompt := fmt.Sprintf(
		"You are a financial transaction classifier.\n"+
			"Transaction description: %s\n"+
			"Amount: %s\n"+
			"Date: %s\n\n"+
			"Choose the single best matching category from this list: %s\n"+
			"Respond with exactly one line in the form:\nCategory: <name>",
		tx.Description,
		tx.Amount.String(),
		tx.Date.Format("2006-01-02"),
		strings.Join(categories, ", "),
	)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini API")
	}

	text := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	category := extractCategoryFromResponse(text)
	if category == "" {
		return "", fmt.Errorf("could not parse category from Gemini response")
	}

	c.logger.WithFields(
		logging.Field{Key: "description", Value: tx.Description},
		logging.Field{Key: logging.FieldCategory, Value: category},
	).Debug("Gemini classified transaction")
	return category, nil
}

// Close releases the underlying API client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// extractCategoryFromResponse pulls the category name out of a
// "Category: <name>" response line. Bare single-line answers are accepted
// too.
func extractCategoryFromResponse(response string) string {
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if after, ok := strings.CutPrefix(line, "Category:"); ok {
			return strings.ToLower(strings.TrimSpace(after))
		}
	}
	trimmed := strings.TrimSpace(response)
	if trimmed != "" && !strings.ContainsAny(trimmed, "\n") {
		return strings.ToLower(trimmed)
	}
	return ""
}
