package ai

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Parag0712/levalsupermind/internal/model"
	"github.com/Parag0712/levalsupermind/internal/transcribe"
)

// Generator produces free-form draft text for a transcript
type Generator interface {
	Generate(ctx context.Context, transcript string) (string, error)

	// Name returns the name of the provider (e.g., "langflow", "openai")
	Name() string
}

// Invoker sends transcripts to a Generator and parses the answer into a draft
type Invoker struct {
	generator Generator
}

// NewInvoker creates an invoker over generator.
func NewInvoker(generator Generator) *Invoker {
	return &Invoker{generator: generator}
}

// Enrich returns the blog draft for transcript. Transport failures are
// reported as ErrEnrichmentService and unexpected answers as
// ErrEnrichmentParse.
func (i *Invoker) Enrich(ctx context.Context, transcript string) (*model.EnrichmentDraft, error) {
	startTime := time.Now()

	text, err := i.generator.Generate(ctx, transcript)
	if err != nil {
		log.Printf("[Enrichment] %s generation failed: %v", i.generator.Name(), err)
		if errors.Is(err, ErrMalformedResponse) {
			return nil, enrichmentError(transcribe.ErrEnrichmentParse, "Enrichment service returned an unexpected response", err)
		}
		return nil, enrichmentError(transcribe.ErrEnrichmentService, "Enrichment service request failed", err)
	}

	draft, err := ParseDraft(text, transcript)
	if err != nil {
		log.Printf("[Enrichment] Failed to parse %s output: %v. Raw: %s", i.generator.Name(), err, truncateString(text, 500))
		return nil, enrichmentError(transcribe.ErrEnrichmentParse, "Failed to parse generated blog draft", err)
	}

	log.Printf("[Enrichment] Draft %q with %d keywords generated by %s in %v",
		draft.Title, len(draft.Keywords), i.generator.Name(), time.Since(startTime))
	return draft, nil
}

func enrichmentError(kind error, message string, err error) error {
	return &transcribe.PipelineError{
		Stage:   transcribe.StageEnrichment,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}
