package translate

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/text/language"
	"google.golang.org/api/option"
	translatev2 "google.golang.org/api/translate/v2"
)

// Translator translates one piece of text between the languages it was
// built for.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Google translates through the Cloud Translation v2 API.
type Google struct {
	svc    *translatev2.Service
	source language.Tag
	target language.Tag
}

// NewGoogle creates a Cloud Translation client. An empty apiKey falls back
// to Application Default Credentials.
func NewGoogle(ctx context.Context, apiKey, source, target string) (*Google, error) {
	src, dst, err := parseTags(source, target)
	if err != nil {
		return nil, err
	}

	var opts []option.ClientOption
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	svc, err := translatev2.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create translation client: %w", err)
	}
	return &Google{svc: svc, source: src, target: dst}, nil
}

// Translate returns the translation of text.
func (g *Google) Translate(ctx context.Context, text string) (string, error) {
	resp, err := g.svc.Translations.List([]string{text}, g.target.String()).
		Source(g.source.String()).
		Format("text").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	if len(resp.Translations) == 0 {
		return "", errors.New("translation response was empty")
	}
	return resp.Translations[0].TranslatedText, nil
}

// parseTags validates BCP 47 language codes such as "zh-CN" and "en".
func parseTags(source, target string) (language.Tag, language.Tag, error) {
	src, err := language.Parse(source)
	if err != nil {
		return language.Und, language.Und, fmt.Errorf("invalid source language %q: %w", source, err)
	}
	dst, err := language.Parse(target)
	if err != nil {
		return language.Und, language.Und, fmt.Errorf("invalid target language %q: %w", target, err)
	}
	return src, dst, nil
}
