// Package generate transforms a paper candidate into a localized episode
// draft through three AI sub-stages run in strict sequence: translation,
// insight extraction, and dialogue scripting. Each stage's validated
// output feeds the next; any stage failure abandons the candidate, and
// no stage is retried.
package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/podcast-engine/pkg/types"
)

// Stage identifies a transformation sub-stage in errors and logs.
type Stage string

const (
	StageTranslation Stage = "translation"
	StageInsight     Stage = "insight"
	StageDialogue    Stage = "dialogue"
)

// SchemaError reports an AI response that failed validation against the
// stage's expected shape. A malformed response is rejected outright;
// silently defaulting a missing field would corrupt the downstream
// script and the persisted record.
type SchemaError struct {
	Stage  Stage
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s response failed validation: %s", e.Stage, e.Reason)
}

// ErrEmptyScript marks a dialogue response with no usable conversation.
// A script needs at least two turns to be an episode.
var ErrEmptyScript = errors.New("dialogue script is empty or single-turn")

// Draft is the in-memory artifact produced for one candidate: the
// validated output of all three sub-stages, ready for synthesis.
type Draft struct {
	Candidate   types.PaperCandidate
	Translation types.Translation
	Insight     types.Insight
	Script      types.DialogueScript
}

// Transformer runs the three-stage content transformation for one
// candidate at a time.
type Transformer struct {
	backend  Backend
	personas []string
}

// NewTransformer wires a backend and the configured persona roles. The
// persona set is the contract with the synthesizer: scripts may only
// reference these names.
func NewTransformer(backend Backend, personas []string) *Transformer {
	return &Transformer{backend: backend, personas: personas}
}

// Transform runs translation, insight extraction, and dialogue scripting
// in sequence and returns the validated draft.
func (t *Transformer) Transform(ctx context.Context, c types.PaperCandidate) (*Draft, error) {
	tr, err := t.translate(ctx, c)
	if err != nil {
		return nil, err
	}

	in, err := t.extractInsight(ctx, c, tr)
	if err != nil {
		return nil, err
	}

	script, err := t.composeDialogue(ctx, c, tr, in)
	if err != nil {
		return nil, err
	}

	return &Draft{
		Candidate:   c,
		Translation: tr,
		Insight:     in,
		Script:      script,
	}, nil
}

func (t *Transformer) translate(ctx context.Context, c types.PaperCandidate) (types.Translation, error) {
	resp, err := t.backend.Translate(ctx, c)
	if err != nil {
		return types.Translation{}, fmt.Errorf("translation: %w", err)
	}

	if strings.TrimSpace(resp.Title) == "" {
		return types.Translation{}, &SchemaError{Stage: StageTranslation, Reason: "empty title"}
	}
	if strings.TrimSpace(resp.Abstract) == "" {
		return types.Translation{}, &SchemaError{Stage: StageTranslation, Reason: "empty abstract"}
	}

	return types.Translation{
		Title:    strings.TrimSpace(resp.Title),
		Abstract: strings.TrimSpace(resp.Abstract),
	}, nil
}

func (t *Transformer) extractInsight(ctx context.Context, c types.PaperCandidate, tr types.Translation) (types.Insight, error) {
	resp, err := t.backend.ExtractInsight(ctx, c, tr)
	if err != nil {
		return types.Insight{}, fmt.Errorf("insight extraction: %w", err)
	}

	for field, value := range map[string]string{
		"innovation": resp.Innovation,
		"method":     resp.Method,
		"result":     resp.Result,
	} {
		if strings.TrimSpace(value) == "" {
			return types.Insight{}, &SchemaError{Stage: StageInsight, Reason: "missing field " + field}
		}
	}

	return types.Insight{
		Innovation: strings.TrimSpace(resp.Innovation),
		Method:     strings.TrimSpace(resp.Method),
		Result:     strings.TrimSpace(resp.Result),
	}, nil
}

func (t *Transformer) composeDialogue(ctx context.Context, c types.PaperCandidate, tr types.Translation, in types.Insight) (types.DialogueScript, error) {
	resp, err := t.backend.ComposeDialogue(ctx, c, tr, in)
	if err != nil {
		return types.DialogueScript{}, fmt.Errorf("dialogue scripting: %w", err)
	}

	if len(resp.Turns) < 2 {
		return types.DialogueScript{}, ErrEmptyScript
	}

	allowed := make(map[string]bool, len(t.personas))
	for _, p := range t.personas {
		allowed[p] = false
	}

	script := types.DialogueScript{ShowTitle: strings.TrimSpace(resp.ShowTitle)}
	if script.ShowTitle == "" {
		script.ShowTitle = tr.Title
	}

	for i, turn := range resp.Turns {
		speaker := strings.TrimSpace(turn.Speaker)
		if _, ok := allowed[speaker]; !ok {
			return types.DialogueScript{}, &SchemaError{
				Stage:  StageDialogue,
				Reason: fmt.Sprintf("turn %d names unconfigured persona %q", i, speaker),
			}
		}
		if strings.TrimSpace(turn.Text) == "" {
			return types.DialogueScript{}, &SchemaError{
				Stage:  StageDialogue,
				Reason: fmt.Sprintf("turn %d has empty text", i),
			}
		}
		allowed[speaker] = true
		script.Turns = append(script.Turns, types.DialogueTurn{
			Persona: speaker,
			Text:    strings.TrimSpace(turn.Text),
		})
	}

	for persona, spoke := range allowed {
		if !spoke {
			return types.DialogueScript{}, &SchemaError{
				Stage:  StageDialogue,
				Reason: fmt.Sprintf("persona %q never speaks", persona),
			}
		}
	}

	return script, nil
}
