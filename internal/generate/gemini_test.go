// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/podcast-engine/pkg/types"
)

func testGenerationConfig() types.GenerationConfig {
	return types.GenerationConfig{
		AIConfig: types.AIConfig{Model: "gemini-2.5-pro", APIKey: "test-key"},
		Language: "Traditional Chinese",
		ShowName: "學術新知解密",
	}
}

// geminiJSONResponse wraps a payload the way the generateContent API
// returns structured output: as JSON text inside the first part.
func geminiJSONResponse(t *testing.T, payload any) []byte {
	t.Helper()
	text, err := json.Marshal(payload)
	require.NoError(t, err)
	body, err := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": string(text)}}}},
		},
	})
	require.NoError(t, err)
	return body
}

func TestGeminiTranslate(t *testing.T) {
	var gotPath, gotKey string
	var gotReq geminiRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write(geminiJSONResponse(t, TranslationResponse{Title: "標題", Abstract: "摘要"}))
	}))
	defer server.Close()

	oldBase := geminiAPIBase
	geminiAPIBase = server.URL
	defer func() { geminiAPIBase = oldBase }()

	backend := &GeminiBackend{Config: testGenerationConfig(), Personas: testPersonas}
	resp, err := backend.Translate(context.Background(), testCandidate())
	require.NoError(t, err)

	assert.Equal(t, "標題", resp.Title)
	assert.Equal(t, "摘要", resp.Abstract)
	assert.Equal(t, "/gemini-2.5-pro:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "application/json", gotReq.GenerationConfig.ResponseMIMEType)
	assert.NotNil(t, gotReq.GenerationConfig.ResponseSchema)
	require.Len(t, gotReq.Contents, 1)
	assert.Contains(t, gotReq.Contents[0].Parts[0].Text, "A Paper")
}

func TestGeminiComposeDialoguePromptNamesPersonas(t *testing.T) {
	var prompt string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		prompt = req.Contents[0].Parts[0].Text
		w.Write(geminiJSONResponse(t, DialogueResponse{
			ShowTitle: "學術新知解密：測試",
			Turns: []DialogueResponseTurn{
				{Speaker: "Alex", Text: "哈囉"},
				{Speaker: "Blair", Text: "你好"},
			},
		}))
	}))
	defer server.Close()

	oldBase := geminiAPIBase
	geminiAPIBase = server.URL
	defer func() { geminiAPIBase = oldBase }()

	backend := &GeminiBackend{Config: testGenerationConfig(), Personas: testPersonas}
	resp, err := backend.ComposeDialogue(context.Background(),
		testCandidate(),
		types.Translation{Title: "標題", Abstract: "摘要"},
		types.Insight{Innovation: "a", Method: "b", Result: "c"})
	require.NoError(t, err)

	assert.Len(t, resp.Turns, 2)
	assert.Contains(t, prompt, "Alex")
	assert.Contains(t, prompt, "Blair")
	assert.Contains(t, prompt, "學術新知解密")
}

func TestGeminiErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	oldBase := geminiAPIBase
	geminiAPIBase = server.URL
	defer func() { geminiAPIBase = oldBase }()

	backend := &GeminiBackend{Config: testGenerationConfig(), Personas: testPersonas}
	_, err := backend.Translate(context.Background(), testCandidate())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestGeminiEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	oldBase := geminiAPIBase
	geminiAPIBase = server.URL
	defer func() { geminiAPIBase = oldBase }()

	backend := &GeminiBackend{Config: testGenerationConfig(), Personas: testPersonas}
	_, err := backend.ExtractInsight(context.Background(), testCandidate(), types.Translation{Title: "t", Abstract: "a"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty content")
}
