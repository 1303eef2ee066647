package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Parag0712/levalsupermind/internal/model"
)

// ErrMalformedResponse is returned when the generative service answered but
// not in the shape the prompt asks for.
var ErrMalformedResponse = errors.New("malformed generative response")

type draftPayload struct {
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Keyword         json.RawMessage `json:"keyword"`
	MetaDescription string          `json:"metaDescription"`
	MetaTitle       string          `json:"metaTitle"`
	MetaTag         string          `json:"metaTag"`
}

// ParseDraft strips a surrounding code fence from text, decodes the JSON
// inside and splits the keyword field into a trimmed list.
func ParseDraft(text, transcript string) (*model.EnrichmentDraft, error) {
	content := extractJSONFromMarkdown(text)
	if content == "" {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedResponse)
	}

	var payload draftPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	// Every field the prompt template asks for is required.
	for _, f := range []struct{ name, value string }{
		{"title", payload.Title},
		{"description", payload.Description},
		{"metaTitle", payload.MetaTitle},
		{"metaDescription", payload.MetaDescription},
		{"metaTag", payload.MetaTag},
	} {
		if strings.TrimSpace(f.value) == "" {
			return nil, fmt.Errorf("%w: missing %s", ErrMalformedResponse, f.name)
		}
	}

	keywords, err := decodeKeywords(payload.Keyword)
	if err != nil {
		return nil, err
	}

	return &model.EnrichmentDraft{
		Title:           strings.TrimSpace(payload.Title),
		Description:     strings.TrimSpace(payload.Description),
		Keywords:        keywords,
		MetaTitle:       strings.TrimSpace(payload.MetaTitle),
		MetaDescription: strings.TrimSpace(payload.MetaDescription),
		MetaTag:         strings.TrimSpace(payload.MetaTag),
		Transcript:      transcript,
	}, nil
}

// decodeKeywords accepts the comma separated string the prompt asks for and
// tolerates a JSON array. At least one keyword is required.
func decodeKeywords(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, fmt.Errorf("%w: missing keyword", ErrMalformedResponse)
	}

	var joined string
	if err := json.Unmarshal(raw, &joined); err == nil {
		if keywords := SplitKeywords(joined); len(keywords) > 0 {
			return keywords, nil
		}
		return nil, fmt.Errorf("%w: keyword is empty", ErrMalformedResponse)
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		if keywords := SplitKeywords(strings.Join(list, ",")); len(keywords) > 0 {
			return keywords, nil
		}
		return nil, fmt.Errorf("%w: keyword is empty", ErrMalformedResponse)
	}

	return nil, fmt.Errorf("%w: keyword must be a string", ErrMalformedResponse)
}

// SplitKeywords splits on commas and trims each entry, dropping empty ones.
func SplitKeywords(s string) []string {
	parts := strings.Split(s, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			keywords = append(keywords, p)
		}
	}
	return keywords
}

// extractJSONFromMarkdown extracts JSON from markdown code blocks
func extractJSONFromMarkdown(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if len(content) >= 4 && strings.EqualFold(content[:4], "json") {
			content = content[4:]
		}
		content = strings.TrimSpace(content)
		content = strings.TrimSuffix(content, "```")
	}

	return strings.TrimSpace(content)
}
