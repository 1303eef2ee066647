package awsclient

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/translate"
)

type translateAPI interface {
	TranslateText(ctx context.Context, params *translate.TranslateTextInput, optFns ...func(*translate.Options)) (*translate.TranslateTextOutput, error)
}

// Translator translates text with Amazon Translate
type Translator struct {
	client translateAPI
}

// NewTranslator wraps a Translate client.
func NewTranslator(client translateAPI) *Translator {
	return &Translator{client: client}
}

// TranslateText translates text from source to target language.
func (t *Translator) TranslateText(ctx context.Context, text, source, target string) (string, error) {
	out, err := t.client.TranslateText(ctx, &translate.TranslateTextInput{
		Text:               aws.String(text),
		SourceLanguageCode: aws.String(source),
		TargetLanguageCode: aws.String(target),
	})
	if err != nil {
		return "", fmt.Errorf("translate %s->%s: %w", source, target, err)
	}
	return aws.ToString(out.TranslatedText), nil
}
