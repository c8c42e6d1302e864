// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/podcast-engine/internal/generate"
	"github.com/pdiddy/podcast-engine/internal/objstore"
	"github.com/pdiddy/podcast-engine/internal/pipeline"
	"github.com/pdiddy/podcast-engine/internal/publish"
	"github.com/pdiddy/podcast-engine/internal/source"
	"github.com/pdiddy/podcast-engine/internal/speech"
	"github.com/pdiddy/podcast-engine/internal/store"
	"github.com/pdiddy/podcast-engine/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one full discover-transform-publish pipeline pass",
	Long: `Run fetches the most recently submitted papers for the configured
query, skips the already-processed ones, and takes each new paper
through translation, insight extraction, dialogue scripting, speech
synthesis, and publishing.

Individual paper failures are logged and do not fail the run; the
command exits non-zero only when the run itself cannot proceed (arXiv
or the episode database unreachable).`,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().Duration("time-budget", 0, "wall-clock budget for the run (default 25m)")
	runCmd.Flags().Int("max-episodes", 0, "stop after this many published episodes (0 = no cap)")
	runCmd.Flags().String("save-dir", "", "also save episode artifacts to this local directory")

	rootCmd.AddCommand(runCmd)
}

// fetchAdapter binds the source client to its configuration so the
// orchestrator sees a parameterless Fetch.
type fetchAdapter struct {
	client *source.Client
	cfg    types.SourceConfig
}

func (f *fetchAdapter) Fetch(ctx context.Context) ([]types.PaperCandidate, error) {
	return f.client.Fetch(ctx, f.cfg)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := loadPipelineConfig()
	if err != nil {
		return err
	}

	if budget, _ := cmd.Flags().GetDuration("time-budget"); budget > 0 {
		cfg.Run.TimeBudget = budget
	}
	if maxEpisodes, _ := cmd.Flags().GetInt("max-episodes"); maxEpisodes > 0 {
		cfg.Run.MaxEpisodes = maxEpisodes
	}
	if dir, _ := cmd.Flags().GetString("save-dir"); dir != "" {
		cfg.Run.SaveDir = dir
	}

	if cfg.Generation.APIKey == "" {
		return fmt.Errorf("no Gemini API key: add .secrets/gemini-api-key or set generation.api_key")
	}
	if cfg.Storage.Bucket == "" {
		return fmt.Errorf("no storage bucket configured: set storage.bucket")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Run.TimeBudget)
	defer cancel()

	episodes, err := store.Open(cfg.Store)
	if err != nil {
		return fmt.Errorf("opening episode store: %w", err)
	}
	defer episodes.Close()

	objects, err := objstore.New(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	personas := personaNames(cfg.Speech.Personas)

	deps := pipeline.Deps{
		Source: &fetchAdapter{
			client: &source.Client{HTTP: &http.Client{Timeout: cfg.Source.Timeout}},
			cfg:    cfg.Source,
		},
		Gate: episodes,
		Transformer: generate.NewTransformer(
			&generate.GeminiBackend{Config: cfg.Generation, Personas: personas},
			personas,
		),
		Synthesizer: speech.NewSynthesizer(&speech.GeminiBackend{Config: cfg.Speech}, cfg.Speech),
		Publisher:   publish.New(objects, episodes, cfg.Storage, cfg.Run.SaveDir),
	}

	_, err = pipeline.Run(ctx, deps, cfg.Run, os.Stdout)
	return err
}
