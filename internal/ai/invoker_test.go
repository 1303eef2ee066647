package ai

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Parag0712/levalsupermind/internal/config"
	"github.com/Parag0712/levalsupermind/internal/transcribe"
)

type stubGenerator struct {
	text string
	err  error
}

func (s *stubGenerator) Generate(ctx context.Context, transcript string) (string, error) {
	return s.text, s.err
}

func (s *stubGenerator) Name() string { return "stub" }

func TestInvokerEnrich(t *testing.T) {
	inv := NewInvoker(&stubGenerator{
		text: `{"title": "T", "description": "D", "keyword": "x, y", "metaTitle": "MT", "metaDescription": "MD", "metaTag": "tag"}`,
	})

	draft, err := inv.Enrich(context.Background(), "the transcript")
	if err != nil {
		t.Fatalf("enrich: %v", err)
	}
	if draft.Title != "T" || draft.MetaDescription != "MD" || len(draft.Keywords) != 2 {
		t.Fatalf("unexpected draft %+v", draft)
	}
	if draft.Transcript != "the transcript" {
		t.Fatalf("expected transcript on draft, got %q", draft.Transcript)
	}
}

func TestInvokerServiceFailure(t *testing.T) {
	inv := NewInvoker(&stubGenerator{err: errors.New("connection refused")})

	_, err := inv.Enrich(context.Background(), "t")
	if !errors.Is(err, transcribe.ErrEnrichmentService) {
		t.Fatalf("expected ErrEnrichmentService, got %v", err)
	}
	var pe *transcribe.PipelineError
	if !errors.As(err, &pe) || pe.Stage != transcribe.StageEnrichment {
		t.Fatalf("expected enrichment stage error, got %v", err)
	}
	if transcribe.StatusCode(err) != 500 {
		t.Fatalf("expected 500, got %d", transcribe.StatusCode(err))
	}
}

func TestInvokerMalformedGeneratorResponse(t *testing.T) {
	inv := NewInvoker(&stubGenerator{err: fmt.Errorf("%w: no outputs", ErrMalformedResponse)})

	if _, err := inv.Enrich(context.Background(), "t"); !errors.Is(err, transcribe.ErrEnrichmentParse) {
		t.Fatalf("expected ErrEnrichmentParse, got %v", err)
	}
}

func TestInvokerUnparseableDraft(t *testing.T) {
	inv := NewInvoker(&stubGenerator{text: "Sure! Here is your blog post."})

	_, err := inv.Enrich(context.Background(), "t")
	if !errors.Is(err, transcribe.ErrEnrichmentParse) {
		t.Fatalf("expected ErrEnrichmentParse, got %v", err)
	}
	if errors.Is(err, transcribe.ErrEnrichmentService) {
		t.Fatal("parse failures must not be reported as service failures")
	}
}

func TestCreateGenerator(t *testing.T) {
	gen, err := CreateGenerator(config.EnrichmentConfig{Provider: "langflow", LangflowToken: "t", LangflowFlowID: "f"})
	if err != nil || gen.Name() != "langflow" {
		t.Fatalf("expected langflow generator, got %v, %v", gen, err)
	}

	gen, err = CreateGenerator(config.EnrichmentConfig{Provider: "OpenAI", OpenAIKey: "k"})
	if err != nil || gen.Name() != "openai" {
		t.Fatalf("expected openai generator, got %v, %v", gen, err)
	}

	if _, err := CreateGenerator(config.EnrichmentConfig{Provider: "unknown"}); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
