// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package publish uploads a finished episode's artifacts to object
// storage and records it in the episode database. The record is written
// only after both uploads succeed, so a row always points at objects
// that exist. An orphaned object without a row is recoverable (the next
// upload of that key overwrites it); a row pointing at nothing is not.
package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/podcast-engine/internal/generate"
	"github.com/pdiddy/podcast-engine/internal/speech"
	"github.com/pdiddy/podcast-engine/internal/store"
	"github.com/pdiddy/podcast-engine/pkg/types"
)

// ObjectStore is the storage surface the publisher needs.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
	PublicURL(key string) string
}

// Recorder is the database surface the publisher needs.
type Recorder interface {
	Insert(ctx context.Context, ep types.Episode) error
}

// Result describes a completed publish.
type Result struct {
	// ScriptURL and AudioURL are the public URLs of the uploaded objects.
	ScriptURL string
	AudioURL  string

	// AlreadyProcessed is true when the record insert found an existing
	// row for the paper. The uploads overwrote identical keys, so the
	// outcome is benign.
	AlreadyProcessed bool
}

// Publisher writes episode artifacts to storage and the episode record
// to the database.
type Publisher struct {
	objects ObjectStore
	records Recorder
	prefix  string
	saveDir string
}

// New wires a publisher. prefix is prepended to every object key.
// saveDir, when non-empty, also writes artifacts to a local directory.
func New(objects ObjectStore, records Recorder, cfg types.StorageConfig, saveDir string) *Publisher {
	return &Publisher{
		objects: objects,
		records: records,
		prefix:  cfg.Prefix,
		saveDir: saveDir,
	}
}

// scriptKey and audioKey derive deterministic object keys from the
// arXiv ID. Reprocessing the same paper targets the same keys.
func (p *Publisher) scriptKey(arxivID string) string { return p.prefix + arxivID + ".txt" }
func (p *Publisher) audioKey(arxivID string) string  { return p.prefix + arxivID + ".wav" }

// Publish uploads the script and audio, then inserts the episode row.
func (p *Publisher) Publish(ctx context.Context, draft *generate.Draft, audio *speech.Audio) (*Result, error) {
	arxivID := draft.Candidate.ArxivID
	scriptText := draft.Script.Render()

	scriptKey := p.scriptKey(arxivID)
	if err := p.objects.Put(ctx, scriptKey, bytes.NewReader([]byte(scriptText)), "text/plain; charset=utf-8"); err != nil {
		return nil, fmt.Errorf("uploading script: %w", err)
	}

	audioKey := p.audioKey(arxivID)
	if err := p.objects.Put(ctx, audioKey, bytes.NewReader(audio.WAV), "audio/wav"); err != nil {
		return nil, fmt.Errorf("uploading audio: %w", err)
	}

	result := &Result{
		ScriptURL: p.objects.PublicURL(scriptKey),
		AudioURL:  p.objects.PublicURL(audioKey),
	}

	ep := types.Episode{
		ArxivID:         arxivID,
		Title:           draft.Translation.Title,
		OriginalTitle:   draft.Candidate.Title,
		Abstract:        draft.Translation.Abstract,
		Authors:         draft.Candidate.Authors,
		Category:        draft.Candidate.Category,
		Innovation:      draft.Insight.Innovation,
		Method:          draft.Insight.Method,
		Result:          draft.Insight.Result,
		Script:          scriptText,
		AbsURL:          draft.Candidate.AbsURL,
		PDFURL:          draft.Candidate.PDFURL,
		ScriptURL:       result.ScriptURL,
		AudioURL:        result.AudioURL,
		DurationSeconds: audio.DurationSeconds,
		Published:       draft.Candidate.Published,
		ProcessedAt:     time.Now().UTC(),
	}

	if err := p.records.Insert(ctx, ep); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			result.AlreadyProcessed = true
			return result, nil
		}
		return nil, fmt.Errorf("recording episode: %w", err)
	}

	if p.saveDir != "" {
		p.saveLocal(ep, audio)
	}

	return result, nil
}
