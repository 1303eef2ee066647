package ai

import (
	"fmt"
	"log"
	"strings"

	"github.com/Parag0712/levalsupermind/internal/config"
)

// CreateGenerator creates the enrichment generator selected by configuration
func CreateGenerator(cfg config.EnrichmentConfig) (Generator, error) {
	provider := strings.ToLower(cfg.Provider)
	if provider == "" {
		provider = config.EnrichmentProviderLangflow
		log.Printf("[Enrichment Factory] ENRICHMENT_PROVIDER not set, defaulting to '%s'", provider)
	}

	switch provider {
	case config.EnrichmentProviderLangflow:
		log.Printf("[Enrichment Factory] Creating Langflow generator for flow %s", cfg.LangflowFlowID)
		client := NewLangflowClient(cfg.LangflowBaseURL, cfg.LangflowToken, cfg.LangflowID)
		return NewLangflowGenerator(client, cfg.LangflowFlowID, cfg.LangflowPromptComponent, cfg.Instruction), nil
	case config.EnrichmentProviderOpenAI:
		log.Printf("[Enrichment Factory] Creating OpenAI generator with model %s", cfg.OpenAIModel)
		if cfg.OpenAIBaseURL != "" {
			return NewOpenAIGeneratorWithBaseURL(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.Instruction), nil
		}
		return NewOpenAIGenerator(cfg.OpenAIKey, cfg.OpenAIModel, cfg.Instruction)
	default:
		return nil, fmt.Errorf("unsupported enrichment provider: %s. Supported: langflow, openai", cfg.Provider)
	}
}
