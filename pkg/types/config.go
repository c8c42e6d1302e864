package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "podcast-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SourceConfig holds settings for the arXiv candidate source.
type SourceConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Query is the arXiv search query (e.g. "cat:cs.AI").
	Query string `json:"query" yaml:"query" mapstructure:"query"`

	// MaxResults bounds the number of candidates fetched per run (default 5).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// AIConfig holds shared settings for stages that call the Gemini API.
type AIConfig struct {
	// Model is the Gemini model identifier (e.g. "gemini-2.5-pro").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey is the authentication key for the Gemini API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`
}

// GenerationConfig holds settings for the content transformation stage.
type GenerationConfig struct {
	AIConfig `yaml:",inline" mapstructure:",squash"`

	// Language is the target language for translation and scripting
	// (default "Traditional Chinese").
	Language string `json:"language" yaml:"language" mapstructure:"language"`

	// ShowName is the podcast show name woven into the script prompt.
	ShowName string `json:"show_name" yaml:"show_name" mapstructure:"show_name"`
}

// PersonaVoice binds a configured speaker role to a provider voice.
type PersonaVoice struct {
	// Name is the persona role name used in dialogue scripts.
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// Voice is the prebuilt provider voice (e.g. "Charon", "Zephyr").
	Voice string `json:"voice" yaml:"voice" mapstructure:"voice"`
}

// SpeechConfig holds settings for the speech synthesis stage.
type SpeechConfig struct {
	AIConfig `yaml:",inline" mapstructure:",squash"`

	// Personas is the finite set of speaker roles for the show. Scripts
	// may only reference these names; synthesis maps them to voices.
	Personas []PersonaVoice `json:"personas" yaml:"personas" mapstructure:"personas"`

	// SampleRate is the PCM sample rate the provider emits (default 24000).
	SampleRate int `json:"sample_rate" yaml:"sample_rate" mapstructure:"sample_rate"`
}

// StorageConfig holds settings for the object storage target.
type StorageConfig struct {
	// Bucket is the S3 bucket for published artifacts.
	Bucket string `json:"bucket" yaml:"bucket" mapstructure:"bucket"`

	// Prefix is prepended to every object key (e.g. "episodes/").
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty" mapstructure:"prefix"`

	// Region selects the AWS region; empty falls back to the default chain.
	Region string `json:"region,omitempty" yaml:"region,omitempty" mapstructure:"region"`

	// PublicBaseURL overrides the derived public URL base for
	// S3-compatible providers (e.g. "https://cdn.example.com").
	PublicBaseURL string `json:"public_base_url,omitempty" yaml:"public_base_url,omitempty" mapstructure:"public_base_url"`
}

// StoreConfig holds settings for the episode database.
type StoreConfig struct {
	// DBPath is the SQLite database file (default "data/episodes.db").
	DBPath string `json:"db_path" yaml:"db_path" mapstructure:"db_path"`
}

// RunConfig holds settings for a single pipeline run.
type RunConfig struct {
	// TimeBudget is the wall-clock ceiling for the run. The orchestrator
	// stops pulling candidates once it is exhausted (default 25m).
	TimeBudget time.Duration `json:"time_budget" yaml:"time_budget" mapstructure:"time_budget"`

	// MaxEpisodes caps successful publishes per run so a scheduled run
	// stays inside its slot; 0 means no cap.
	MaxEpisodes int `json:"max_episodes" yaml:"max_episodes" mapstructure:"max_episodes"`

	// SaveDir, when set, also writes script/info/audio to a local
	// directory for debugging.
	SaveDir string `json:"save_dir,omitempty" yaml:"save_dir,omitempty" mapstructure:"save_dir"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Source     SourceConfig     `json:"source" yaml:"source" mapstructure:"source"`
	Generation GenerationConfig `json:"generation" yaml:"generation" mapstructure:"generation"`
	Speech     SpeechConfig     `json:"speech" yaml:"speech" mapstructure:"speech"`
	Storage    StorageConfig    `json:"storage" yaml:"storage" mapstructure:"storage"`
	Store      StoreConfig      `json:"store" yaml:"store" mapstructure:"store"`
	Run        RunConfig        `json:"run" yaml:"run" mapstructure:"run"`
}
