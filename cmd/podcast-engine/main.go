// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the podcast-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/podcast-engine/internal/secrets"
	"github.com/pdiddy/podcast-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback if non-empty, otherwise the loaded
// secret value for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the podcast-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "podcast-engine",
	Short: "Scheduled pipeline turning new arXiv papers into podcast episodes",
	Long: `podcast-engine discovers newly submitted arXiv papers, translates and
distills them with a generative AI provider, scripts a two-host dialogue,
synthesizes multi-speaker audio, and publishes the episode to object
storage with a relational record.

Run the full pipeline with "run", inspect discovery with "candidates",
and browse published episodes with "episodes".`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./podcast-engine.yaml or ~/.config/podcast-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("podcast-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "podcast-engine"))
		}
	}

	viper.SetEnvPrefix("PODCAST_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadPipelineConfig unmarshals the viper config and fills defaults.
// The defaults give a working pipeline with nothing but a Gemini key
// and an S3 bucket configured.
func loadPipelineConfig() (types.PipelineConfig, error) {
	var cfg types.PipelineConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing configuration: %w", err)
	}

	if cfg.Source.Query == "" {
		cfg.Source.Query = "cat:cs.AI"
	}
	if cfg.Source.MaxResults == 0 {
		cfg.Source.MaxResults = 5
	}
	if cfg.Source.Timeout == 0 {
		cfg.Source.Timeout = 30 * time.Second
	}
	if cfg.Source.UserAgent == "" {
		cfg.Source.UserAgent = "podcast-engine/" + version
	}

	if cfg.Generation.Model == "" {
		cfg.Generation.Model = "gemini-2.5-pro"
	}
	if cfg.Generation.Language == "" {
		cfg.Generation.Language = "Traditional Chinese"
	}
	if cfg.Generation.ShowName == "" {
		cfg.Generation.ShowName = "學術新知解密"
	}
	cfg.Generation.APIKey = secretDefault(secrets.GeminiAPIKey, cfg.Generation.APIKey)

	if cfg.Speech.Model == "" {
		cfg.Speech.Model = "gemini-2.5-pro-preview-tts"
	}
	if len(cfg.Speech.Personas) == 0 {
		cfg.Speech.Personas = []types.PersonaVoice{
			{Name: "林冠傑", Voice: "Charon"},
			{Name: "林欣潔", Voice: "Zephyr"},
		}
	}
	cfg.Speech.APIKey = secretDefault(secrets.GeminiAPIKey, cfg.Speech.APIKey)

	if cfg.Store.DBPath == "" {
		cfg.Store.DBPath = filepath.Join("data", "episodes.db")
	}

	if cfg.Run.TimeBudget == 0 {
		cfg.Run.TimeBudget = 25 * time.Minute
	}

	return cfg, nil
}

// personaNames extracts the configured speaker role names in order.
func personaNames(personas []types.PersonaVoice) []string {
	names := make([]string, len(personas))
	for i, p := range personas {
		names[i] = p.Name
	}
	return names
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
