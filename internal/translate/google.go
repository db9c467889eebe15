package translate

import (
	"context"
	"fmt"

	gtranslate "cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// GoogleProvider translates through the Google Cloud Translation API.
type GoogleProvider struct {
	credentialsFile string
}

func NewGoogleProvider(credentialsFile string) *GoogleProvider {
	return &GoogleProvider{credentialsFile: credentialsFile}
}

func (p *GoogleProvider) Name() string { return "google" }

func (p *GoogleProvider) Translate(ctx context.Context, req Request) (string, error) {
	targetTag, err := language.Parse(req.TargetLang)
	if err != nil {
		return "", fmt.Errorf("invalid target language %q: %w", req.TargetLang, err)
	}
	sourceTag, err := language.Parse(req.SourceLang)
	if err != nil {
		return "", fmt.Errorf("invalid source language %q: %w", req.SourceLang, err)
	}

	var opts []option.ClientOption
	if p.credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(p.credentialsFile))
	}

	client, err := gtranslate.NewClient(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("create translate client: %w", err)
	}
	defer client.Close()

	translations, err := client.Translate(ctx, []string{req.Text}, targetTag, &gtranslate.Options{
		Source: sourceTag,
		Format: gtranslate.Text,
	})
	if err != nil {
		return "", fmt.Errorf("translate: %w", err)
	}
	if len(translations) == 0 {
		return "", fmt.Errorf("no translation returned")
	}
	return translations[0].Text, nil
}
