// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates one scheduled run: fetch candidates,
// skip the already-processed, and take each survivor through
// transformation, synthesis, and publishing. Candidates are processed
// sequentially; one paper's failure never takes down the run.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/pdiddy/podcast-engine/internal/generate"
	"github.com/pdiddy/podcast-engine/internal/publish"
	"github.com/pdiddy/podcast-engine/internal/speech"
	"github.com/pdiddy/podcast-engine/pkg/types"
)

// Source discovers paper candidates.
type Source interface {
	Fetch(ctx context.Context) ([]types.PaperCandidate, error)
}

// Gate answers whether a paper already has an episode.
type Gate interface {
	Exists(ctx context.Context, arxivID string) (bool, error)
}

// Transformer produces the episode draft for a candidate.
type Transformer interface {
	Transform(ctx context.Context, c types.PaperCandidate) (*generate.Draft, error)
}

// Synthesizer produces the episode audio for a script.
type Synthesizer interface {
	Synthesize(ctx context.Context, script types.DialogueScript) (*speech.Audio, error)
}

// Publisher uploads artifacts and records the episode.
type Publisher interface {
	Publish(ctx context.Context, draft *generate.Draft, audio *speech.Audio) (*publish.Result, error)
}

// Deps bundles the stages the orchestrator drives. Each field is an
// interface so tests can wire mocks.
type Deps struct {
	Source      Source
	Gate        Gate
	Transformer Transformer
	Synthesizer Synthesizer
	Publisher   Publisher
}

// Summary holds counts from one pipeline run.
type Summary struct {
	Published  int
	Duplicates int
	Failed     int
	Deferred   int
}

// Total returns the number of candidates seen.
func (s Summary) Total() int {
	return s.Published + s.Duplicates + s.Failed + s.Deferred
}

// Run executes one pipeline pass. Per-candidate outcomes are written to
// w as they happen. The returned error is non-nil only for run-scoped
// failures (the candidate source being unreachable); candidate failures
// are counted and logged but never abort the run.
func Run(ctx context.Context, deps Deps, cfg types.RunConfig, w io.Writer) (Summary, error) {
	runID := uuid.NewString()
	fmt.Fprintf(w, "run %s starting\n", runID)

	candidates, err := deps.Source.Fetch(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("fetching candidates: %w", err)
	}
	fmt.Fprintf(w, "found %d candidates\n", len(candidates))

	var summary Summary
	for i, c := range candidates {
		// Budget and cap checks happen only between candidates: a paper
		// already in flight runs to completion.
		if ctx.Err() != nil {
			deferred := len(candidates) - i
			fmt.Fprintf(w, "time budget exhausted, deferring %d candidates\n", deferred)
			summary.Deferred += deferred
			break
		}
		if cfg.MaxEpisodes > 0 && summary.Published >= cfg.MaxEpisodes {
			deferred := len(candidates) - i
			fmt.Fprintf(w, "episode cap reached, deferring %d candidates\n", deferred)
			summary.Deferred += deferred
			break
		}

		outcome, err := processCandidate(ctx, deps, c)
		switch outcome {
		case outcomePublished:
			fmt.Fprintf(w, "published %s\n", c.ArxivID)
			summary.Published++
		case outcomeDuplicate:
			fmt.Fprintf(w, "skipped  %s: already processed\n", c.ArxivID)
			summary.Duplicates++
		case outcomeFailed:
			fmt.Fprintf(w, "failed  %s: %v\n", c.ArxivID, err)
			summary.Failed++
		}
	}

	fmt.Fprintf(w, "\npublished: %d, duplicates: %d, failed: %d, deferred: %d\n",
		summary.Published, summary.Duplicates, summary.Failed, summary.Deferred)

	return summary, nil
}

type outcome int

const (
	outcomePublished outcome = iota
	outcomeDuplicate
	outcomeFailed
)

// processCandidate takes one candidate through the full stage sequence
// and classifies the result.
func processCandidate(ctx context.Context, deps Deps, c types.PaperCandidate) (outcome, error) {
	exists, err := deps.Gate.Exists(ctx, c.ArxivID)
	if err != nil {
		// An unanswered dedup check skips the candidate. Assuming "new"
		// here would risk duplicate processing and duplicate AI spend.
		return outcomeFailed, fmt.Errorf("dedup check: %w", err)
	}
	if exists {
		return outcomeDuplicate, nil
	}

	draft, err := deps.Transformer.Transform(ctx, c)
	if err != nil {
		return outcomeFailed, err
	}

	audio, err := deps.Synthesizer.Synthesize(ctx, draft.Script)
	if err != nil {
		return outcomeFailed, err
	}

	result, err := deps.Publisher.Publish(ctx, draft, audio)
	if err != nil {
		return outcomeFailed, err
	}
	if result.AlreadyProcessed {
		return outcomeDuplicate, nil
	}

	return outcomePublished, nil
}
