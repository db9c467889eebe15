// Package translate converts text between the supported languages through a
// pluggable provider.
package translate

import (
	"context"
	"strings"
	"time"

	"bhasharag/internal/lang"
)

type Request struct {
	Text       string
	SourceLang string
	TargetLang string
}

type Provider interface {
	Name() string
	Translate(ctx context.Context, req Request) (string, error)
}

type Service struct {
	provider Provider
	timeout  time.Duration
}

func New(provider Provider, timeout time.Duration) *Service {
	return &Service{provider: provider, timeout: timeout}
}

// Translate returns text converted from src to dst. Identity and unsupported
// pairs pass the input through unchanged.
func (s *Service) Translate(ctx context.Context, text, src, dst string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" || src == dst {
		return text, nil
	}
	if !lang.IsSupported(src) || !lang.IsSupported(dst) {
		return text, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.provider.Translate(ctx, Request{Text: text, SourceLang: src, TargetLang: dst})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
