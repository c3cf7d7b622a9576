package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "blog-engine/0.1"). Per prd001-fetch R5.1.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the paper source stage.
// Per prd001-fetch R1.2, R5.1-R5.3.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of candidate papers to return (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// DaysBack is the recent-search window in days (default 7).
	DaysBack int `json:"days_back" yaml:"days_back"`

	// Query is the default free-text search query for the daily run.
	Query string `json:"query" yaml:"query"`

	// SeedFile optionally overrides the built-in classic paper list with a
	// YAML seed file.
	SeedFile string `json:"seed_file,omitempty" yaml:"seed_file,omitempty"`
}

// AIConfig holds shared settings for stages that call the text-generation API.
type AIConfig struct {
	// Model is the model identifier (e.g. "gpt-5-nano").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for rate-limited or
	// failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// GenerationConfig holds settings for the article generation stage.
// Per prd003-generation R5.1-R5.3.
type GenerationConfig struct {
	AIConfig   `yaml:",inline"`
	HTTPConfig `yaml:",inline"`

	// ArticlesDir is the directory for individual article JSON files
	// (e.g. "generated_content/articles").
	ArticlesDir string `json:"articles_dir" yaml:"articles_dir"`
}

// CorpusConfig holds settings for corpus integration and the corpus index.
// Per prd005-corpus R5.1-R5.2.
type CorpusConfig struct {
	// DataDir is the base directory for corpus data (contains articles.json
	// and index/).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations for the daily pipeline.
type PipelineConfig struct {
	Fetch      FetchConfig      `json:"fetch" yaml:"fetch"`
	Generation GenerationConfig `json:"generation" yaml:"generation"`
	Corpus     CorpusConfig     `json:"corpus" yaml:"corpus"`

	// DailyLimit caps the number of new articles per daily run (default 2).
	DailyLimit int `json:"daily_limit" yaml:"daily_limit"`
}
