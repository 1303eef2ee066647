package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	EnrichmentProviderLangflow = "langflow"
	EnrichmentProviderOpenAI   = "openai"
)

// DefaultTranslateLanguages are the languages a draft is translated into
// when the request does not name any.
var DefaultTranslateLanguages = []string{"es", "fr", "de", "it", "ja", "ko", "pt", "ru", "zh", "hi"}

type Config struct {
	Port           string
	DatabaseURL    string
	MaxUploadBytes int64

	AWS        AWSConfig
	Transcribe TranscribeConfig
	Poll       PollConfig
	Enrichment EnrichmentConfig
	Translate  TranslateConfig
}

// AWSConfig holds region, credentials and the bucket shared by uploads and
// transcription output.
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	MaxAttempts     int
}

type TranscribeConfig struct {
	LanguageCode   string
	MediaFormat    string
	VocabularyName string
	JobPrefix      string
}

type PollConfig struct {
	MaxAttempts int
	Interval    time.Duration
	MaxInterval time.Duration
	Grace       time.Duration
}

type EnrichmentConfig struct {
	Provider                string
	Instruction             string
	LangflowBaseURL         string
	LangflowToken           string
	LangflowID              string
	LangflowFlowID          string
	LangflowPromptComponent string
	OpenAIKey               string
	OpenAIModel             string
	OpenAIBaseURL           string
}

type TranslateConfig struct {
	SourceLanguage string
	Languages      []string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		AWS: AWSConfig{
			Region:          os.Getenv("AWS_REGION"),
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			Bucket:          os.Getenv("AWS_S3_BUCKET_NAME"),
		},
		Transcribe: TranscribeConfig{
			LanguageCode:   getEnv("TRANSCRIBE_LANGUAGE_CODE", "en-US"),
			MediaFormat:    getEnv("TRANSCRIBE_MEDIA_FORMAT", "mp4"),
			VocabularyName: os.Getenv("CUSTOM_VOCABULARY_NAME"),
			JobPrefix:      getEnv("TRANSCRIBE_JOB_PREFIX", "transcription"),
		},
		Enrichment: EnrichmentConfig{
			Provider:                strings.ToLower(getEnv("ENRICHMENT_PROVIDER", EnrichmentProviderLangflow)),
			Instruction:             os.Getenv("ENRICHMENT_INSTRUCTION"),
			LangflowBaseURL:         getEnv("LANGFLOW_BASE_URL", "https://api.langflow.astra.datastax.com"),
			LangflowToken:           os.Getenv("LANGFLOW_APPLICATION_TOKEN"),
			LangflowID:              os.Getenv("LANGFLOW_ID"),
			LangflowFlowID:          os.Getenv("LANGFLOW_FLOW_ID"),
			LangflowPromptComponent: getEnv("LANGFLOW_PROMPT_COMPONENT", "Prompt-IvFOp"),
			OpenAIKey:               os.Getenv("OPENAI_API_KEY"),
			OpenAIModel:             getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			OpenAIBaseURL:           os.Getenv("OPENAI_BASE_URL"),
		},
		Translate: TranslateConfig{
			SourceLanguage: getEnv("TRANSLATE_SOURCE_LANGUAGE", "en"),
			Languages:      getListEnv("TRANSLATE_LANGUAGES", DefaultTranslateLanguages),
		},
	}

	var err error
	if cfg.AWS.MaxAttempts, err = getIntEnv("AWS_MAX_ATTEMPTS", 3); err != nil {
		return nil, err
	}

	maxUploadMB, err := getIntEnv("MAX_UPLOAD_MB", 100)
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadBytes = int64(maxUploadMB) * 1024 * 1024

	if cfg.Poll.MaxAttempts, err = getIntEnv("POLL_MAX_ATTEMPTS", 60); err != nil {
		return nil, err
	}
	if cfg.Poll.Interval, err = getDurationEnv("POLL_BASE_INTERVAL", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.Poll.MaxInterval, err = getDurationEnv("POLL_MAX_INTERVAL", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.Poll.Grace, err = getDurationEnv("POLL_GRACE_PERIOD", 2*time.Second); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fails fast on missing required settings
func (c *Config) Validate() error {
	var missing []string
	require := func(key, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, key)
		}
	}

	require("AWS_REGION", c.AWS.Region)
	require("AWS_ACCESS_KEY_ID", c.AWS.AccessKeyID)
	require("AWS_SECRET_ACCESS_KEY", c.AWS.SecretAccessKey)
	require("AWS_S3_BUCKET_NAME", c.AWS.Bucket)

	switch c.Enrichment.Provider {
	case EnrichmentProviderLangflow:
		require("LANGFLOW_APPLICATION_TOKEN", c.Enrichment.LangflowToken)
		require("LANGFLOW_ID", c.Enrichment.LangflowID)
		require("LANGFLOW_FLOW_ID", c.Enrichment.LangflowFlowID)
	case EnrichmentProviderOpenAI:
		require("OPENAI_API_KEY", c.Enrichment.OpenAIKey)
	default:
		return fmt.Errorf("unsupported ENRICHMENT_PROVIDER %q. Supported: langflow, openai", c.Enrichment.Provider)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive")
	}
	if c.Poll.MaxAttempts <= 0 {
		return fmt.Errorf("POLL_MAX_ATTEMPTS must be positive")
	}
	if c.Poll.Interval <= 0 || c.Poll.MaxInterval < c.Poll.Interval {
		return fmt.Errorf("POLL_BASE_INTERVAL must be positive and not exceed POLL_MAX_INTERVAL")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getIntEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

func getDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}

func getListEnv(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
