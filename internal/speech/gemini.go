// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/podcast-engine/pkg/types"
)

// geminiTTSAPIBase is the Gemini TTS endpoint base. Package-level var
// for test substitution.
var geminiTTSAPIBase = "https://generativelanguage.googleapis.com/v1beta/models"

// GeminiBackend synthesizes speech through the Gemini TTS API. Each
// call requests an audio-only response with one prebuilt voice and
// returns the decoded PCM bytes.
type GeminiBackend struct {
	Config types.SpeechConfig
	Client *http.Client
}

type ttsRequest struct {
	Contents         []ttsContent        `json:"contents"`
	GenerationConfig ttsGenerationConfig `json:"generationConfig"`
}

type ttsContent struct {
	Parts []ttsTextPart `json:"parts"`
}

type ttsTextPart struct {
	Text string `json:"text"`
}

type ttsGenerationConfig struct {
	ResponseModalities []string        `json:"responseModalities"`
	SpeechConfig       ttsSpeechConfig `json:"speechConfig"`
}

type ttsSpeechConfig struct {
	VoiceConfig ttsVoiceConfig `json:"voiceConfig"`
}

type ttsVoiceConfig struct {
	PrebuiltVoiceConfig ttsPrebuiltVoice `json:"prebuiltVoiceConfig"`
}

type ttsPrebuiltVoice struct {
	VoiceName string `json:"voiceName"`
}

type ttsResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				InlineData struct {
					MIMEType string `json:"mimeType"`
					Data     string `json:"data"`
				} `json:"inlineData"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// SpeakTurn synthesizes one utterance with the given prebuilt voice and
// returns raw PCM. TTS calls are never retried.
func (g *GeminiBackend) SpeakTurn(ctx context.Context, voice, text string) ([]byte, error) {
	reqBody := ttsRequest{
		Contents: []ttsContent{
			{Parts: []ttsTextPart{{Text: text}}},
		},
		GenerationConfig: ttsGenerationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: ttsSpeechConfig{
				VoiceConfig: ttsVoiceConfig{
					PrebuiltVoiceConfig: ttsPrebuiltVoice{VoiceName: voice},
				},
			},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent", geminiTTSAPIBase, g.Config.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.Config.APIKey)

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling Gemini TTS API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Gemini TTS API returned %d: %s", resp.StatusCode, string(body))
	}

	var tResp ttsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tResp); err != nil {
		return nil, fmt.Errorf("decoding Gemini TTS response: %w", err)
	}

	for _, cand := range tResp.Candidates {
		for _, part := range cand.Content.Parts {
			if part.InlineData.Data == "" {
				continue
			}
			pcm, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("decoding audio payload: %w", err)
			}
			return pcm, nil
		}
	}

	return nil, fmt.Errorf("Gemini TTS API returned no audio")
}
