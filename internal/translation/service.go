package translation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Parag0712/levalsupermind/internal/model"
)

// ErrInvalidRequest is returned when the draft has no title or content
var ErrInvalidRequest = errors.New("title and content are required")

// DefaultConcurrency bounds the number of languages translated at once
const DefaultConcurrency = 4

// Translator translates a single text between two languages
type Translator interface {
	TranslateText(ctx context.Context, text, source, target string) (string, error)
}

// Service translates blog drafts into several languages
type Service struct {
	translator  Translator
	source      string
	languages   []string
	concurrency int
}

// NewService creates a translation service. languages is used when a
// request does not name any.
func NewService(translator Translator, source string, languages []string) *Service {
	if source == "" {
		source = "en"
	}
	return &Service{
		translator:  translator,
		source:      source,
		languages:   languages,
		concurrency: DefaultConcurrency,
	}
}

// Translate renders req in every target language. Results keep the order of
// the target languages; the first failure cancels the rest.
func (s *Service) Translate(ctx context.Context, req model.TranslationRequest) ([]model.Translation, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return nil, ErrInvalidRequest
	}

	targets := req.Languages
	if len(targets) == 0 {
		targets = s.languages
	}

	startTime := time.Now()
	results := make([]model.Translation, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, lang := range targets {
		g.Go(func() error {
			t, err := s.translateOne(gctx, req, lang)
			if err != nil {
				return err
			}
			results[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Printf("[Translate] Translation failed: %v", err)
		return nil, err
	}

	log.Printf("[Translate] Translated draft into %d languages in %v", len(targets), time.Since(startTime))
	return results, nil
}

func (s *Service) translateOne(ctx context.Context, req model.TranslationRequest, lang string) (model.Translation, error) {
	content, err := s.translator.TranslateText(ctx, req.Content, s.source, lang)
	if err != nil {
		return model.Translation{}, fmt.Errorf("failed to translate content to %s: %w", lang, err)
	}
	title, err := s.translator.TranslateText(ctx, req.Title, s.source, lang)
	if err != nil {
		return model.Translation{}, fmt.Errorf("failed to translate title to %s: %w", lang, err)
	}

	t := model.Translation{
		Language:          lang,
		TranslatedTitle:   title,
		TranslatedContent: content,
	}
	if req.MetaDescription != "" {
		meta, err := s.translator.TranslateText(ctx, req.MetaDescription, s.source, lang)
		if err != nil {
			return model.Translation{}, fmt.Errorf("failed to translate meta description to %s: %w", lang, err)
		}
		t.TranslatedMetaDescription = &meta
	}
	return t, nil
}
