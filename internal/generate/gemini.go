// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/podcast-engine/pkg/types"
)

// geminiAPIBase is the Gemini generateContent endpoint base. Package-level
// var for test substitution.
var geminiAPIBase = "https://generativelanguage.googleapis.com/v1beta/models"

// GeminiBackend calls the Gemini API for the three transformation
// sub-stages. Every call requests a JSON response constrained by a
// response schema, so the provider returns the exact shape the stage
// expects. Generative calls are never retried.
type GeminiBackend struct {
	Config   types.GenerationConfig
	Personas []string
	Client   *http.Client
}

// geminiRequest is the request body for the generateContent API.
type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	ResponseMIMEType string         `json:"responseMimeType"`
	ResponseSchema   map[string]any `json:"responseSchema"`
}

// geminiResponse is the response body from the generateContent API.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Response schemas for the structured stages, in the Gemini
// OpenAPI-subset form.
var (
	translationSchema = map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"title":    map[string]any{"type": "STRING"},
			"abstract": map[string]any{"type": "STRING"},
		},
		"required": []string{"title", "abstract"},
	}

	insightSchema = map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"innovation": map[string]any{"type": "STRING"},
			"method":     map[string]any{"type": "STRING"},
			"result":     map[string]any{"type": "STRING"},
		},
		"required": []string{"innovation", "method", "result"},
	}

	dialogueSchema = map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"show_title": map[string]any{"type": "STRING"},
			"turns": map[string]any{
				"type": "ARRAY",
				"items": map[string]any{
					"type": "OBJECT",
					"properties": map[string]any{
						"speaker": map[string]any{"type": "STRING"},
						"text":    map[string]any{"type": "STRING"},
					},
					"required": []string{"speaker", "text"},
				},
			},
		},
		"required": []string{"show_title", "turns"},
	}
)

// Translate renders the translation prompt and returns the raw response.
func (g *GeminiBackend) Translate(ctx context.Context, c types.PaperCandidate) (TranslationResponse, error) {
	prompt, err := renderTranslationPrompt(g.Config, c)
	if err != nil {
		return TranslationResponse{}, fmt.Errorf("rendering prompt: %w", err)
	}
	var resp TranslationResponse
	if err := g.generateJSON(ctx, prompt, translationSchema, &resp); err != nil {
		return TranslationResponse{}, err
	}
	return resp, nil
}

// ExtractInsight renders the insight prompt and returns the raw response.
func (g *GeminiBackend) ExtractInsight(ctx context.Context, c types.PaperCandidate, tr types.Translation) (InsightResponse, error) {
	prompt, err := renderInsightPrompt(g.Config, c, tr)
	if err != nil {
		return InsightResponse{}, fmt.Errorf("rendering prompt: %w", err)
	}
	var resp InsightResponse
	if err := g.generateJSON(ctx, prompt, insightSchema, &resp); err != nil {
		return InsightResponse{}, err
	}
	return resp, nil
}

// ComposeDialogue renders the dialogue prompt and returns the raw response.
func (g *GeminiBackend) ComposeDialogue(ctx context.Context, c types.PaperCandidate, tr types.Translation, in types.Insight) (DialogueResponse, error) {
	prompt, err := renderDialoguePrompt(g.Config, g.Personas, tr, in)
	if err != nil {
		return DialogueResponse{}, fmt.Errorf("rendering prompt: %w", err)
	}
	var resp DialogueResponse
	if err := g.generateJSON(ctx, prompt, dialogueSchema, &resp); err != nil {
		return DialogueResponse{}, err
	}
	return resp, nil
}

// generateJSON performs one schema-constrained generateContent call and
// unmarshals the returned JSON text into out.
func (g *GeminiBackend) generateJSON(ctx context.Context, prompt string, schema map[string]any, out any) error {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent", geminiAPIBase, g.Config.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.Config.APIKey)

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("calling Gemini API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("Gemini API returned %d: %s", resp.StatusCode, string(body))
	}

	var gResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gResp); err != nil {
		return fmt.Errorf("decoding Gemini response: %w", err)
	}

	for _, cand := range gResp.Candidates {
		for _, part := range cand.Content.Parts {
			if part.Text == "" {
				continue
			}
			if err := json.Unmarshal([]byte(part.Text), out); err != nil {
				return fmt.Errorf("parsing AI response JSON: %w", err)
			}
			return nil
		}
	}

	return fmt.Errorf("Gemini API returned empty content")
}
