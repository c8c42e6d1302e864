// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/podcast-engine/internal/store"
)

var episodesCmd = &cobra.Command{
	Use:   "episodes",
	Short: "Browse and export published episodes",
	Long: `Episodes reads the episode database. Use subcommands to list the
published episodes or export the full catalog.`,
}

// --- list subcommand ---

var episodesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List published episodes, newest first",
	RunE:  runEpisodesList,
}

func runEpisodesList(cmd *cobra.Command, args []string) error {
	cfg, err := loadPipelineConfig()
	if err != nil {
		return err
	}

	s, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	episodes, err := s.List(context.Background())
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(episodes)
	}

	if len(episodes) == 0 {
		fmt.Println("No episodes published yet.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-14s  %-10s  %-8s  %s\n",
		"ArxivID", "Processed", "Duration", "Title")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))

	for _, ep := range episodes {
		title := ep.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-14s  %-10s  %5dm%02ds  %s\n",
			ep.ArxivID, ep.ProcessedAt.Format("2006-01-02"),
			ep.DurationSeconds/60, ep.DurationSeconds%60, title)
	}

	fmt.Fprintf(os.Stdout, "\n%d episodes\n", len(episodes))
	return nil
}

// --- export subcommand ---

var episodesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the episode catalog to YAML or JSON",
	RunE:  runEpisodesExport,
}

func runEpisodesExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadPipelineConfig()
	if err != nil {
		return err
	}

	s, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	switch format {
	case "yaml", "":
		if out == "" {
			out = "episodes.yaml"
		}
		if err := s.ExportYAML(context.Background(), out); err != nil {
			return err
		}
	case "json":
		if out == "" {
			out = "episodes.json"
		}
		if err := s.ExportJSON(context.Background(), out); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	fmt.Printf("Exported to %s\n", out)
	return nil
}

func init() {
	episodesListCmd.Flags().Bool("json", false, "output episodes as JSON")

	episodesExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	episodesExportCmd.Flags().String("out", "", "output file (default episodes.yaml or episodes.json)")

	episodesCmd.AddCommand(episodesListCmd)
	episodesCmd.AddCommand(episodesExportCmd)

	rootCmd.AddCommand(episodesCmd)
}
