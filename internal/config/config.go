// Package config loads driver configuration from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Lexicon locates the root list, the suffix list and an optional snapshot.
type Lexicon struct {
	WordsPath    string `yaml:"words" env:"STEMMER_WORDS" env-default:"words.txt"`
	SuffixesPath string `yaml:"suffixes" env:"STEMMER_SUFFIXES" env-default:"suffix.txt"`
	// SnapshotPath, when set, is tried before the text lists.
	SnapshotPath string `yaml:"snapshot" env:"STEMMER_SNAPSHOT"`
}

// Stemmer holds stemming and normalization settings.
type Stemmer struct {
	Parallelism         int  `yaml:"parallelism" env:"STEMMER_PARALLELISM" env-default:"1"`
	BatchSize           int  `yaml:"batch_size" env:"STEMMER_BATCH_SIZE" env-default:"256"`
	LegacyFilter        bool `yaml:"legacy_filter" env:"STEMMER_LEGACY_FILTER" env-default:"false"`
	RecursiveConversion bool `yaml:"recursive_conversion" env:"STEMMER_RECURSIVE_CONVERSION" env-default:"false"`
	WarmUp              bool `yaml:"warm_up" env:"STEMMER_WARM_UP" env-default:"false"`
}

// HTTPServer holds listener and request limits for cmd/server.
type HTTPServer struct {
	Address        string        `yaml:"address" env:"HTTP_SERVER_ADDRESS" env-default:":8080"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"HTTP_SERVER_READ_TIMEOUT" env-default:"30s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"HTTP_SERVER_WRITE_TIMEOUT" env-default:"30s"`
	MaxRequestSize int           `yaml:"max_request_size" env:"HTTP_SERVER_MAX_REQUEST_SIZE" env-default:"10485760"`
	Concurrency    int           `yaml:"concurrency" env:"HTTP_SERVER_CONCURRENCY" env-default:"0"`
	// RateLimit is requests per second across all clients; 0 disables it.
	RateLimit      int           `yaml:"rate_limit" env:"HTTP_SERVER_RATE_LIMIT" env-default:"0"`
}

// Config is the full driver configuration shared by cmd/stem and cmd/server.
type Config struct {
	LogFile    string     `yaml:"log_file" env:"LOG_FILE"`
	LogJSON    bool       `yaml:"log_json" env:"LOG_JSON" env-default:"false"`
	Lexicon    Lexicon    `yaml:"lexicon"`
	Stemmer    Stemmer    `yaml:"stemmer"`
	HTTPServer HTTPServer `yaml:"http_server"`
}

// Load reads the config file at path, then applies environment overrides.
// An empty path reads the environment and defaults only.
func Load(path string) (Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return cfg, fmt.Errorf("read environment: %w", err)
		}
	} else if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.Lexicon.SnapshotPath == "" && (c.Lexicon.WordsPath == "" || c.Lexicon.SuffixesPath == "") {
		return errors.New("lexicon needs either a snapshot or both words and suffixes paths")
	}
	if c.Stemmer.Parallelism < 0 {
		return errors.New("stemmer parallelism must not be negative")
	}
	if c.HTTPServer.RateLimit < 0 {
		return errors.New("http server rate limit must not be negative")
	}
	if c.Stemmer.BatchSize < 0 {
		return errors.New("stemmer batch size must not be negative")
	}
	return nil
}
