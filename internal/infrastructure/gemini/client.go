package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(apiKey string) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-pro")
	model.SetTemperature(0.7)

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) Close() {
	c.client.Close()
}

// SuggestBio generates three candidate descriptions for a matrimonial
// profile.
func (c *GeminiClient) SuggestBio(ctx context.Context, fullName, occupation, workLocation string, interests []string) ([]string, error) {
	prompt := fmt.Sprintf(`
		Write profile descriptions for a matrimonial site.
		Name: %s
		Occupation: %s
		Location: %s
		Interests: %v

		Task: Create 3 distinct, warm, first-person descriptions of 2-3 sentences each.
		Tone: sincere, family-oriented, no cliches.
		Output: JSON array of strings. Example: ["I am...", "As a..."]
	`, fullName, occupation, workLocation, interests)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	responseText := strings.TrimSpace(sb.String())
	// Clean up markdown code blocks if present
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")

	var suggestions []string
	if err := json.Unmarshal([]byte(responseText), &suggestions); err != nil {
		// Fallback if JSON parsing fails - keep non-empty plain lines
		for _, line := range strings.Split(responseText, "\n") {
			line = strings.TrimSpace(line)
			if line != "" && !strings.HasPrefix(line, "[") && !strings.HasSuffix(line, "]") {
				suggestions = append(suggestions, line)
			}
		}
		if len(suggestions) == 0 {
			return nil, fmt.Errorf("failed to parse bio suggestions: %w", err)
		}
	}

	return suggestions, nil
}
