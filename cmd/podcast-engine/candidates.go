// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/podcast-engine/internal/source"
	"github.com/pdiddy/podcast-engine/internal/store"
)

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "Show the current arXiv candidates and their processing status",
	Long: `Candidates fetches the papers the next run would consider and marks
each as new or already processed. Useful for checking the query and the
dedup state without spending any AI budget.`,
	RunE: runCandidates,
}

func init() {
	candidatesCmd.Flags().Bool("json", false, "output candidates as JSON")

	rootCmd.AddCommand(candidatesCmd)
}

// candidateStatus pairs a discovered paper with its dedup answer.
type candidateStatus struct {
	ArxivID   string `json:"arxiv_id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	Published string `json:"published"`
	Processed bool   `json:"processed"`
}

func runCandidates(cmd *cobra.Command, args []string) error {
	cfg, err := loadPipelineConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()

	client := &source.Client{HTTP: &http.Client{Timeout: cfg.Source.Timeout}}
	candidates, err := client.Fetch(ctx, cfg.Source)
	if err != nil {
		return err
	}

	episodes, err := store.Open(cfg.Store)
	if err != nil {
		return fmt.Errorf("opening episode store: %w", err)
	}
	defer episodes.Close()

	statuses := make([]candidateStatus, len(candidates))
	for i, c := range candidates {
		processed, err := episodes.Exists(ctx, c.ArxivID)
		if err != nil {
			return err
		}
		statuses[i] = candidateStatus{
			ArxivID:   c.ArxivID,
			Title:     c.Title,
			Category:  c.Category,
			Published: c.Published.Format("2006-01-02"),
			Processed: processed,
		}
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(statuses)
	}

	fmt.Fprintf(os.Stdout, "%-14s  %-8s  %-10s  %-9s  %s\n",
		"ArxivID", "Category", "Published", "Status", "Title")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for _, s := range statuses {
		status := "new"
		if s.Processed {
			status = "processed"
		}
		title := s.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-14s  %-8s  %-10s  %-9s  %s\n",
			s.ArxivID, s.Category, s.Published, status, title)
	}

	fmt.Fprintf(os.Stdout, "\n%d candidates\n", len(statuses))
	return nil
}
