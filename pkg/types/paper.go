// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// PaperCandidate holds the metadata of a paper discovered on arXiv that
// has not yet been confirmed processed. Candidates are immutable values
// produced by the source; the version suffix is stripped from the ID so
// it stays stable across arXiv revisions.
type PaperCandidate struct {
	// ArxivID is the bare arXiv identifier (e.g. "2301.07041").
	ArxivID string `json:"arxiv_id" yaml:"arxiv_id"`

	// Title is the paper title as published.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper abstract as published.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Category is the primary arXiv category (e.g. "cs.AI").
	Category string `json:"category" yaml:"category"`

	// AbsURL is the canonical abstract page URL.
	AbsURL string `json:"abs_url" yaml:"abs_url"`

	// PDFURL is the direct PDF link.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`

	// Published is the submission timestamp reported by arXiv.
	Published time.Time `json:"published" yaml:"published"`
}

// Episode is the persisted record of one fully processed paper. A paper
// yields at most one Episode across all runs; the store enforces this
// with a uniqueness constraint on ArxivID. Episodes are insert-only.
type Episode struct {
	// ArxivID is the paper identifier, unique across all episodes.
	ArxivID string `json:"arxiv_id" yaml:"arxiv_id"`

	// Title is the localized episode title.
	Title string `json:"title" yaml:"title"`

	// OriginalTitle is the paper title as published.
	OriginalTitle string `json:"original_title" yaml:"original_title"`

	// Abstract is the localized abstract.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Category is the primary arXiv category.
	Category string `json:"category" yaml:"category"`

	// Innovation summarizes the paper's core contribution.
	Innovation string `json:"innovation" yaml:"innovation"`

	// Method summarizes the research method.
	Method string `json:"method" yaml:"method"`

	// Result summarizes the main findings.
	Result string `json:"result" yaml:"result"`

	// Script is the full dialogue script text rendered for the episode.
	Script string `json:"script" yaml:"script"`

	// AbsURL and PDFURL point back at the source paper.
	AbsURL string `json:"abs_url" yaml:"abs_url"`
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`

	// ScriptURL and AudioURL point at the published storage objects.
	ScriptURL string `json:"script_url" yaml:"script_url"`
	AudioURL  string `json:"audio_url" yaml:"audio_url"`

	// DurationSeconds is the length of the merged audio track.
	DurationSeconds int `json:"duration_seconds" yaml:"duration_seconds"`

	// Published is the paper's submission timestamp.
	Published time.Time `json:"published" yaml:"published"`

	// ProcessedAt is when the episode record was written.
	ProcessedAt time.Time `json:"processed_at" yaml:"processed_at"`
}
