// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source discovers newly published papers on arXiv and turns
// them into pipeline candidates.
package source

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/podcast-engine/internal/httputil"
	"github.com/pdiddy/podcast-engine/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// ErrUnavailable marks a transient source failure. It is fatal to the
// whole run: without candidates there is nothing to process.
var ErrUnavailable = errors.New("arxiv source unavailable")

const defaultMaxResults = 5

// Client queries the arXiv API for the most recently submitted papers.
type Client struct {
	HTTP *http.Client
}

// Fetch returns up to cfg.MaxResults candidates matching cfg.Query,
// most recent first. The query itself is idempotent, so HTTP 429/503
// responses are retried with bounded backoff; any final failure wraps
// ErrUnavailable.
func (c *Client) Fetch(ctx context.Context, cfg types.SourceConfig) ([]types.PaperCandidate, error) {
	if strings.TrimSpace(cfg.Query) == "" {
		return nil, fmt.Errorf("empty arXiv query")
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	q := url.Values{}
	q.Set("search_query", cfg.Query)
	q.Set("start", "0")
	q.Set("max_results", strconv.Itoa(maxResults))
	q.Set("sortBy", "submittedDate")
	q.Set("sortOrder", "descending")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, arxivAPIBase+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	client := c.HTTP
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 3)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: arXiv API returned HTTP %d", ErrUnavailable, resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("%w: parsing arXiv response: %v", ErrUnavailable, err)
	}

	var candidates []types.PaperCandidate
	for _, entry := range feed.Entries {
		arxivID := extractArxivID(entry.ID)
		if arxivID == "" {
			continue
		}

		cand := types.PaperCandidate{
			ArxivID:  arxivID,
			Title:    collapseWhitespace(entry.Title),
			Abstract: collapseWhitespace(entry.Summary),
			Category: entry.PrimaryCategory.Term,
			AbsURL:   entry.ID,
		}

		for _, a := range entry.Authors {
			cand.Authors = append(cand.Authors, strings.TrimSpace(a.Name))
		}

		for _, l := range entry.Links {
			if l.Title == "pdf" || strings.Contains(l.Href, "/pdf/") {
				cand.PDFURL = l.Href
			}
		}
		if cand.PDFURL == "" {
			cand.PDFURL = "https://arxiv.org/pdf/" + arxivID
		}

		if t, parseErr := time.Parse(time.RFC3339, entry.Published); parseErr == nil {
			cand.Published = t
		}

		candidates = append(candidates, cand)
	}
	return candidates, nil
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID              string        `xml:"id"`
	Title           string        `xml:"title"`
	Summary         string        `xml:"summary"`
	Published       string        `xml:"published"`
	Authors         []arxivAuthor `xml:"author"`
	Links           []arxivLink   `xml:"link"`
	PrimaryCategory arxivCategory `xml:"primary_category"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

type arxivLink struct {
	Href  string `xml:"href,attr"`
	Rel   string `xml:"rel,attr"`
	Title string `xml:"title,attr"`
}

type arxivCategory struct {
	Term string `xml:"term,attr"`
}

// extractArxivID pulls the arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041").
func extractArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := idURL[idx+len(prefix):]

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}

// collapseWhitespace trims and folds the newline-wrapped text arXiv
// emits inside titles and abstracts into single-spaced prose.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
