// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"

	"github.com/pdiddy/podcast-engine/pkg/types"
)

// Backend abstracts the generative AI API so tests can supply a mock.
// Each method covers one transformation sub-stage and returns the
// provider's raw response; the Transformer validates every response
// before anything downstream consumes it.
type Backend interface {
	Translate(ctx context.Context, c types.PaperCandidate) (TranslationResponse, error)
	ExtractInsight(ctx context.Context, c types.PaperCandidate, tr types.Translation) (InsightResponse, error)
	ComposeDialogue(ctx context.Context, c types.PaperCandidate, tr types.Translation, in types.Insight) (DialogueResponse, error)
}

// TranslationResponse is the raw translation-stage response.
type TranslationResponse struct {
	Title    string `json:"title"`
	Abstract string `json:"abstract"`
}

// InsightResponse is the raw insight-stage response.
type InsightResponse struct {
	Innovation string `json:"innovation"`
	Method     string `json:"method"`
	Result     string `json:"result"`
}

// DialogueResponse is the raw dialogue-stage response.
type DialogueResponse struct {
	ShowTitle string                 `json:"show_title"`
	Turns     []DialogueResponseTurn `json:"turns"`
}

// DialogueResponseTurn is a single turn as returned by the provider.
type DialogueResponseTurn struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}
