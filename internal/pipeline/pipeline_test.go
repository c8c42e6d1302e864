// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/podcast-engine/internal/generate"
	"github.com/pdiddy/podcast-engine/internal/publish"
	"github.com/pdiddy/podcast-engine/internal/source"
	"github.com/pdiddy/podcast-engine/internal/speech"
	"github.com/pdiddy/podcast-engine/internal/store"
	"github.com/pdiddy/podcast-engine/pkg/types"
)

// --- mocks ---

type mockSource struct {
	candidates []types.PaperCandidate
	err        error
}

func (m *mockSource) Fetch(_ context.Context) ([]types.PaperCandidate, error) {
	return m.candidates, m.err
}

type mockGate struct {
	existing map[string]bool
	err      error
	checked  []string
}

func (m *mockGate) Exists(_ context.Context, arxivID string) (bool, error) {
	m.checked = append(m.checked, arxivID)
	if m.err != nil {
		return false, m.err
	}
	return m.existing[arxivID], nil
}

// mockTransformer stamps the candidate ID into the script's show title
// so downstream mocks can tell candidates apart.
type mockTransformer struct {
	failFor map[string]error
	calls   []string
}

func (m *mockTransformer) Transform(_ context.Context, c types.PaperCandidate) (*generate.Draft, error) {
	m.calls = append(m.calls, c.ArxivID)
	if err := m.failFor[c.ArxivID]; err != nil {
		return nil, err
	}
	return &generate.Draft{
		Candidate:   c,
		Translation: types.Translation{Title: "題-" + c.ArxivID, Abstract: "摘"},
		Insight:     types.Insight{Innovation: "新", Method: "法", Result: "果"},
		Script: types.DialogueScript{
			ShowTitle: "ep-" + c.ArxivID,
			Turns: []types.DialogueTurn{
				{Persona: "Alex", Text: "一"},
				{Persona: "Blair", Text: "二"},
				{Persona: "Alex", Text: "三"},
			},
		},
	}, nil
}

type mockSynthesizer struct {
	failFor map[string]error // keyed by script show title
	calls   []string
}

func (m *mockSynthesizer) Synthesize(_ context.Context, script types.DialogueScript) (*speech.Audio, error) {
	m.calls = append(m.calls, script.ShowTitle)
	if err := m.failFor[script.ShowTitle]; err != nil {
		return nil, err
	}
	return &speech.Audio{WAV: []byte("RIFFfake"), DurationSeconds: 300}, nil
}

type mockPublisher struct {
	published []string
	err       error
	afterPub  func() // runs after each successful publish
}

func (m *mockPublisher) Publish(_ context.Context, draft *generate.Draft, _ *speech.Audio) (*publish.Result, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.published = append(m.published, draft.Candidate.ArxivID)
	if m.afterPub != nil {
		m.afterPub()
	}
	return &publish.Result{
		ScriptURL: "https://cdn.example.com/" + draft.Candidate.ArxivID + ".txt",
		AudioURL:  "https://cdn.example.com/" + draft.Candidate.ArxivID + ".wav",
	}, nil
}

func candidates(ids ...string) []types.PaperCandidate {
	out := make([]types.PaperCandidate, len(ids))
	for i, id := range ids {
		out[i] = types.PaperCandidate{ArxivID: id, Title: "Paper " + id, Category: "cs.AI"}
	}
	return out
}

func testDeps(ids ...string) (Deps, *mockGate, *mockTransformer, *mockSynthesizer, *mockPublisher) {
	gate := &mockGate{existing: map[string]bool{}}
	transformer := &mockTransformer{failFor: map[string]error{}}
	synthesizer := &mockSynthesizer{failFor: map[string]error{}}
	publisher := &mockPublisher{}
	deps := Deps{
		Source:      &mockSource{candidates: candidates(ids...)},
		Gate:        gate,
		Transformer: transformer,
		Synthesizer: synthesizer,
		Publisher:   publisher,
	}
	return deps, gate, transformer, synthesizer, publisher
}

// --- tests ---

// Three candidates: one new and healthy, one already processed, one
// whose synthesis fails on the last of its three turns. The run
// publishes the first, skips the second without any AI work, and
// isolates the third's failure.
func TestRunMixedBatch(t *testing.T) {
	deps, gate, transformer, synthesizer, publisher := testDeps("2301.00001", "2301.00002", "2301.00003")
	gate.existing["2301.00002"] = true
	synthesizer.failFor["ep-2301.00003"] = &speech.SynthesisError{Turn: 2, Err: errors.New("tts outage")}

	var buf bytes.Buffer
	summary, err := Run(context.Background(), deps, types.RunConfig{}, &buf)
	require.NoError(t, err)

	assert.Equal(t, Summary{Published: 1, Duplicates: 1, Failed: 1}, summary)
	assert.Equal(t, 3, summary.Total())

	// The duplicate consumed zero AI work, and the failed candidate
	// never reached the publisher.
	assert.Equal(t, []string{"2301.00001", "2301.00003"}, transformer.calls)
	assert.Equal(t, []string{"2301.00001"}, publisher.published)

	out := buf.String()
	assert.Contains(t, out, "published 2301.00001")
	assert.Contains(t, out, "skipped  2301.00002")
	assert.Contains(t, out, "failed  2301.00003")
	assert.Contains(t, out, "turn 2")
}

func TestRunFailureIsolation(t *testing.T) {
	deps, _, transformer, _, publisher := testDeps("2301.00001", "2301.00002", "2301.00003")
	transformer.failFor["2301.00002"] = &generate.SchemaError{Stage: generate.StageInsight, Reason: "missing field method"}

	var buf bytes.Buffer
	summary, err := Run(context.Background(), deps, types.RunConfig{}, &buf)
	require.NoError(t, err)

	assert.Equal(t, Summary{Published: 2, Failed: 1}, summary)
	assert.Equal(t, []string{"2301.00001", "2301.00003"}, publisher.published)
}

func TestRunSourceFailureAborts(t *testing.T) {
	deps, _, transformer, _, _ := testDeps()
	deps.Source = &mockSource{err: fmt.Errorf("%w: status 500", source.ErrUnavailable)}

	var buf bytes.Buffer
	_, err := Run(context.Background(), deps, types.RunConfig{}, &buf)

	require.Error(t, err)
	assert.ErrorIs(t, err, source.ErrUnavailable)
	assert.Empty(t, transformer.calls)
}

func TestRunGateFailureSkipsCandidate(t *testing.T) {
	deps, gate, transformer, _, _ := testDeps("2301.00001", "2301.00002")
	gate.err = fmt.Errorf("%w: disk error", store.ErrUnavailable)

	var buf bytes.Buffer
	summary, err := Run(context.Background(), deps, types.RunConfig{}, &buf)
	require.NoError(t, err)

	// No candidate was processed without a dedup answer, but the run
	// itself completed.
	assert.Empty(t, transformer.calls)
	assert.Equal(t, Summary{Failed: 2}, summary)
	assert.Contains(t, buf.String(), "dedup check")
}

func TestRunDefersOnExpiredBudget(t *testing.T) {
	deps, _, _, _, publisher := testDeps("2301.00001", "2301.00002", "2301.00003")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// The budget runs out while the first candidate is in flight; it
	// completes, the rest are deferred.
	publisher.afterPub = cancel

	var buf bytes.Buffer
	summary, err := Run(ctx, deps, types.RunConfig{}, &buf)
	require.NoError(t, err)

	assert.Equal(t, Summary{Published: 1, Deferred: 2}, summary)
	assert.Contains(t, buf.String(), "deferring 2 candidates")
}

func TestRunEpisodeCap(t *testing.T) {
	deps, _, _, _, publisher := testDeps("2301.00001", "2301.00002", "2301.00003")

	var buf bytes.Buffer
	summary, err := Run(context.Background(), deps, types.RunConfig{MaxEpisodes: 1}, &buf)
	require.NoError(t, err)

	assert.Equal(t, Summary{Published: 1, Deferred: 2}, summary)
	assert.Equal(t, []string{"2301.00001"}, publisher.published)
}

func TestRunPublisherDuplicateCountsAsDuplicate(t *testing.T) {
	deps, _, _, _, _ := testDeps("2301.00001")
	deps.Publisher = &duplicatePublisher{}

	var buf bytes.Buffer
	summary, err := Run(context.Background(), deps, types.RunConfig{}, &buf)
	require.NoError(t, err)

	assert.Equal(t, Summary{Duplicates: 1}, summary)
}

type duplicatePublisher struct{}

func (*duplicatePublisher) Publish(_ context.Context, _ *generate.Draft, _ *speech.Audio) (*publish.Result, error) {
	return &publish.Result{AlreadyProcessed: true}, nil
}
