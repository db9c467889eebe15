// Package pipeline orchestrates the full request flow: detect, normalize,
// translate to English, retrieve context, synthesize an answer and translate
// it to the requested language.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bhasharag/internal/detect"
	"bhasharag/internal/lang"
	"bhasharag/internal/normalize"
	"bhasharag/internal/retrieval"
)

const noResultsAnswer = "I could not find relevant information in the knowledge base."

const answerSnippetLimit = 220

type Detector interface {
	Detect(text string) string
}

type Translator interface {
	Translate(ctx context.Context, text, src, dst string) (string, error)
}

type Retriever interface {
	Search(ctx context.Context, query string) ([]retrieval.Result, error)
}

type Service struct {
	detector   Detector
	translator Translator
	retriever  Retriever
}

type ProcessInput struct {
	Text       string
	TargetLang string
}

type Timings struct {
	Translation time.Duration
	Retrieval   time.Duration
	Total       time.Duration
}

type ProcessResult struct {
	OriginalText string
	// NormalizedText is empty when normalization did not change the input.
	NormalizedText string
	DetectedLang   string
	OutputLang     string
	Retrieved      []retrieval.Result
	TranslatedText string
	Timings        Timings
}

func New(detector Detector, translator Translator, retriever Retriever) *Service {
	return &Service{
		detector:   detector,
		translator: translator,
		retriever:  retriever,
	}
}

func (s *Service) Process(ctx context.Context, in ProcessInput) (ProcessResult, error) {
	started := time.Now()

	text := strings.TrimSpace(in.Text)
	targetLang := strings.ToLower(strings.TrimSpace(in.TargetLang))

	detected := s.detector.Detect(text)
	normalized := text
	switch detected {
	case detect.Hinglish:
		normalized = normalize.Hinglish(text)
		detected = lang.Hindi
	case detect.Tinglish:
		normalized = normalize.Tinglish(text)
		detected = lang.Telugu
	}

	var translationDuration time.Duration

	queryEN := normalized
	if detected != lang.English {
		translationStarted := time.Now()
		translatedQuery, err := s.translator.Translate(ctx, normalized, detected, lang.English)
		translationDuration += time.Since(translationStarted)
		if err != nil {
			return ProcessResult{}, fmt.Errorf("translate query: %w", err)
		}
		queryEN = translatedQuery
	}

	retrievalStarted := time.Now()
	retrieved, err := s.retriever.Search(ctx, queryEN)
	retrievalDuration := time.Since(retrievalStarted)
	if err != nil {
		return ProcessResult{}, fmt.Errorf("retrieve context: %w", err)
	}

	answerEN := synthesizeAnswer(retrieved)

	outputLang := detected
	if lang.IsSupported(targetLang) {
		outputLang = targetLang
	}

	answer := answerEN
	if outputLang != lang.English {
		translationStarted := time.Now()
		answer, err = s.translator.Translate(ctx, answerEN, lang.English, outputLang)
		translationDuration += time.Since(translationStarted)
		if err != nil {
			return ProcessResult{}, fmt.Errorf("translate answer: %w", err)
		}
	}

	result := ProcessResult{
		OriginalText:   text,
		DetectedLang:   detected,
		OutputLang:     outputLang,
		Retrieved:      retrieved,
		TranslatedText: answer,
		Timings: Timings{
			Translation: translationDuration,
			Retrieval:   retrievalDuration,
			Total:       time.Since(started),
		},
	}
	if normalized != text {
		result.NormalizedText = normalized
	}
	return result, nil
}

func synthesizeAnswer(retrieved []retrieval.Result) string {
	if len(retrieved) == 0 {
		return noResultsAnswer
	}
	bullets := make([]string, 0, len(retrieved))
	for _, r := range retrieved {
		bullets = append(bullets, fmt.Sprintf("- (%s/%s) %s", r.Domain, r.Lang, clamp(r.Text, answerSnippetLimit)))
	}
	return "Here is what I found:\n" + strings.Join(bullets, "\n")
}

func clamp(s string, limit int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}
