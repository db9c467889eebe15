package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	cenv "github.com/caarlos0/env/v11"
)

type Config struct {
	ListenAddr         string
	APIBaseURL         string
	UpstreamBaseURL    string
	UpstreamAPIKey     string
	TranslatorProvider string
	TranslationModel   string
	EmbeddingModel     string
	GoogleCredentials  string
	RequestTimeout     time.Duration
	TranslationTimeout time.Duration
	RetrievalTimeout   time.Duration
	RetrievalTopK      int
	RetrievalThreshold float64
	MaxBodyBytes       int64
	HistoryDBPath      string
	LogLevel           string
}

type envConfig struct {
	ListenAddr                string  `env:"LISTEN_ADDR" envDefault:":8080"`
	APIBaseURL                string  `env:"API_BASE_URL" envDefault:"http://localhost:8080"`
	UpstreamBaseURL           string  `env:"UPSTREAM_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	UpstreamAPIKey            string  `env:"UPSTREAM_API_KEY"`
	TranslatorProvider        string  `env:"TRANSLATOR_PROVIDER" envDefault:"openai"`
	TranslationModel          string  `env:"TRANSLATION_MODEL" envDefault:"meta-llama/llama-4-scout-17b-16e-instruct"`
	EmbeddingModel            string  `env:"EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`
	GoogleCredentials         string  `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	RequestTimeoutSeconds     int     `env:"REQUEST_TIMEOUT_SECONDS" envDefault:"25"`
	TranslationTimeoutSeconds int     `env:"TRANSLATION_TIMEOUT_SECONDS" envDefault:"20"`
	RetrievalTimeoutSeconds   int     `env:"RETRIEVAL_TIMEOUT_SECONDS" envDefault:"10"`
	RetrievalTopK             int     `env:"RETRIEVAL_TOP_K" envDefault:"3"`
	RetrievalThreshold        float64 `env:"RETRIEVAL_THRESHOLD" envDefault:"0.45"`
	MaxBodyBytes              int64   `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	HistoryDBPath             string  `env:"HISTORY_DB_PATH"`
	LogLevel                  string  `env:"LOG_LEVEL" envDefault:"info"`
}

func Load() (Config, error) {
	var raw envConfig
	if err := cenv.Parse(&raw); err != nil {
		return Config{}, err
	}

	cfg := Config{
		ListenAddr:         strings.TrimSpace(raw.ListenAddr),
		APIBaseURL:         strings.TrimRight(strings.TrimSpace(raw.APIBaseURL), "/"),
		UpstreamBaseURL:    strings.TrimRight(strings.TrimSpace(raw.UpstreamBaseURL), "/"),
		UpstreamAPIKey:     strings.TrimSpace(raw.UpstreamAPIKey),
		TranslatorProvider: strings.ToLower(strings.TrimSpace(raw.TranslatorProvider)),
		TranslationModel:   strings.TrimSpace(raw.TranslationModel),
		EmbeddingModel:     strings.TrimSpace(raw.EmbeddingModel),
		GoogleCredentials:  strings.TrimSpace(raw.GoogleCredentials),
		RequestTimeout:     time.Duration(raw.RequestTimeoutSeconds) * time.Second,
		TranslationTimeout: time.Duration(raw.TranslationTimeoutSeconds) * time.Second,
		RetrievalTimeout:   time.Duration(raw.RetrievalTimeoutSeconds) * time.Second,
		RetrievalTopK:      raw.RetrievalTopK,
		RetrievalThreshold: raw.RetrievalThreshold,
		MaxBodyBytes:       raw.MaxBodyBytes,
		HistoryDBPath:      strings.TrimSpace(raw.HistoryDBPath),
		LogLevel:           strings.ToLower(strings.TrimSpace(raw.LogLevel)),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.ListenAddr == "" {
		return errors.New("LISTEN_ADDR must not be empty")
	}
	if c.APIBaseURL == "" {
		return errors.New("API_BASE_URL must not be empty")
	}
	if c.UpstreamBaseURL == "" {
		return errors.New("UPSTREAM_BASE_URL must not be empty")
	}
	switch c.TranslatorProvider {
	case "openai", "google":
	default:
		return fmt.Errorf("TRANSLATOR_PROVIDER must be one of openai, google; got %q", c.TranslatorProvider)
	}
	if c.TranslationModel == "" {
		return errors.New("TRANSLATION_MODEL must not be empty")
	}
	if c.EmbeddingModel == "" {
		return errors.New("EMBEDDING_MODEL must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT_SECONDS must be > 0")
	}
	if c.TranslationTimeout <= 0 {
		return errors.New("TRANSLATION_TIMEOUT_SECONDS must be > 0")
	}
	if c.RetrievalTimeout <= 0 {
		return errors.New("RETRIEVAL_TIMEOUT_SECONDS must be > 0")
	}
	if c.RetrievalTopK <= 0 {
		return errors.New("RETRIEVAL_TOP_K must be > 0")
	}
	if c.RetrievalThreshold < 0 || c.RetrievalThreshold > 1 {
		return errors.New("RETRIEVAL_THRESHOLD must be in [0,1]")
	}
	if c.MaxBodyBytes <= 0 {
		return errors.New("MAX_BODY_BYTES must be > 0")
	}
	return nil
}
