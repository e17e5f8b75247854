// Package openai provides a Suggester implementation using OpenAI.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/parcelworks/nameguard/internal/infrastructure/config"
)

const suggestPrompt = `You are a naming assistant for residential real-estate developments. A proposed property name was rejected. Propose replacement names that:
- keep the tone and setting of the original name where possible
- avoid profanity, slang and culturally insensitive words entirely
- are short (at most four words) and sound like real development names

Return ONLY a valid JSON array of name strings, no other text.

Example:
Input name: "Ghetto Gardens" (rejected: contains a profane term)
Output: ["Garden Terrace", "Greenway Gardens", "Harmony Gardens"]`

// maxSuggestions caps the list returned to callers.
const maxSuggestions = 5

// Suggester implements the Suggester interface using OpenAI.
type Suggester struct {
	client *openai.Client
	model  string
}

// NewSuggester creates a new OpenAI suggester.
func NewSuggester(cfg config.SuggesterConfig) (*Suggester, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	client := openai.NewClient(cfg.APIKey)

	model := "gpt-4o-mini"
	if cfg.Model != "" {
		model = cfg.Model
	}

	return &Suggester{
		client: client,
		model:  model,
	}, nil
}

// Suggest returns alternative names for a rejected candidate.
func (s *Suggester) Suggest(ctx context.Context, name string, issues []string) ([]string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: suggestPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildUserMessage(name, issues),
			},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("calling OpenAI: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("no response from OpenAI")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)

	var suggestions []string
	if err := json.Unmarshal([]byte(content), &suggestions); err != nil {
		return nil, fmt.Errorf("parsing suggestions JSON: %w (response: %s)", err, content)
	}

	cleaned := make([]string, 0, len(suggestions))
	for _, sug := range suggestions {
		sug = strings.TrimSpace(sug)
		if sug == "" {
			continue
		}
		cleaned = append(cleaned, sug)
		if len(cleaned) == maxSuggestions {
			break
		}
	}

	return cleaned, nil
}

// buildUserMessage formats the rejected name and its issues for the model.
func buildUserMessage(name string, issues []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Input name: %q\n", name)
	b.WriteString("Rejection reasons:\n")
	for _, issue := range issues {
		fmt.Fprintf(&b, "- %s\n", issue)
	}
	return b.String()
}

// cleanJSONResponse removes markdown code blocks if present.
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}

	return strings.TrimSpace(content)
}
