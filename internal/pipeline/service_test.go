package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"bhasharag/internal/retrieval"
)

type fakeDetector struct{ code string }

func (f fakeDetector) Detect(string) string { return f.code }

type translation struct {
	text, src, dst string
}

type fakeTranslator struct {
	calls []translation
	err   error
}

func (f *fakeTranslator) Translate(_ context.Context, text, src, dst string) (string, error) {
	f.calls = append(f.calls, translation{text, src, dst})
	if f.err != nil {
		return "", f.err
	}
	return "[" + dst + "] " + text, nil
}

type fakeRetriever struct {
	query   string
	results []retrieval.Result
	err     error
}

func (f *fakeRetriever) Search(_ context.Context, query string) ([]retrieval.Result, error) {
	f.query = query
	return f.results, f.err
}

func TestProcessEnglishQueryNoTranslation(t *testing.T) {
	tr := &fakeTranslator{}
	rt := &fakeRetriever{results: []retrieval.Result{
		{Domain: "health", Lang: "en", Score: 0.9, Text: "free screenings"},
	}}
	svc := New(fakeDetector{code: "en"}, tr, rt)

	res, err := svc.Process(context.Background(), ProcessInput{Text: "  health checkup  ", TargetLang: "en"})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if res.OriginalText != "health checkup" {
		t.Fatalf("unexpected original text: %q", res.OriginalText)
	}
	if len(tr.calls) != 0 {
		t.Fatalf("expected no translation calls, got %+v", tr.calls)
	}
	if rt.query != "health checkup" {
		t.Fatalf("unexpected retrieval query: %q", rt.query)
	}
	if res.NormalizedText != "" {
		t.Fatalf("expected empty normalized text, got %q", res.NormalizedText)
	}
	if !strings.HasPrefix(res.TranslatedText, "Here is what I found:") {
		t.Fatalf("unexpected answer: %q", res.TranslatedText)
	}
	if !strings.Contains(res.TranslatedText, "- (health/en) free screenings") {
		t.Fatalf("unexpected answer: %q", res.TranslatedText)
	}
}

func TestProcessHinglishNormalizesAndFoldsToHindi(t *testing.T) {
	tr := &fakeTranslator{}
	rt := &fakeRetriever{}
	svc := New(fakeDetector{code: "hinglish"}, tr, rt)

	res, err := svc.Process(context.Background(), ProcessInput{Text: "mera ghar", TargetLang: ""})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if res.DetectedLang != "hi" {
		t.Fatalf("unexpected detected lang: %q", res.DetectedLang)
	}
	if res.NormalizedText != "मेरा घर" {
		t.Fatalf("unexpected normalized text: %q", res.NormalizedText)
	}
	// Query translated hi -> en, answer translated en -> hi (no valid target
	// requested, so the output language follows detection).
	if len(tr.calls) != 2 {
		t.Fatalf("unexpected translation calls: %+v", tr.calls)
	}
	if tr.calls[0].src != "hi" || tr.calls[0].dst != "en" || tr.calls[0].text != "मेरा घर" {
		t.Fatalf("unexpected query translation: %+v", tr.calls[0])
	}
	if tr.calls[1].src != "en" || tr.calls[1].dst != "hi" {
		t.Fatalf("unexpected answer translation: %+v", tr.calls[1])
	}
	if res.OutputLang != "hi" {
		t.Fatalf("unexpected output lang: %q", res.OutputLang)
	}
}

func TestProcessEmptyRetrievalUsesFixedAnswer(t *testing.T) {
	tr := &fakeTranslator{}
	rt := &fakeRetriever{}
	svc := New(fakeDetector{code: "en"}, tr, rt)

	res, err := svc.Process(context.Background(), ProcessInput{Text: "anything", TargetLang: "en"})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if res.TranslatedText != noResultsAnswer {
		t.Fatalf("unexpected answer: %q", res.TranslatedText)
	}
	if len(res.Retrieved) != 0 {
		t.Fatalf("unexpected retrieved items: %+v", res.Retrieved)
	}
}

func TestProcessTargetLangOverridesDetected(t *testing.T) {
	tr := &fakeTranslator{}
	rt := &fakeRetriever{results: []retrieval.Result{
		{Domain: "health", Lang: "en", Score: 0.8, Text: "free screenings"},
	}}
	svc := New(fakeDetector{code: "en"}, tr, rt)

	res, err := svc.Process(context.Background(), ProcessInput{Text: "health", TargetLang: "te"})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if res.OutputLang != "te" {
		t.Fatalf("unexpected output lang: %q", res.OutputLang)
	}
	if len(tr.calls) != 1 || tr.calls[0].dst != "te" {
		t.Fatalf("unexpected translation calls: %+v", tr.calls)
	}
	if !strings.HasPrefix(res.TranslatedText, "[te] ") {
		t.Fatalf("unexpected answer: %q", res.TranslatedText)
	}
}

func TestProcessUnsupportedTargetFallsBackToDetected(t *testing.T) {
	tr := &fakeTranslator{}
	rt := &fakeRetriever{}
	svc := New(fakeDetector{code: "en"}, tr, rt)

	res, err := svc.Process(context.Background(), ProcessInput{Text: "hello", TargetLang: "fr"})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if res.OutputLang != "en" {
		t.Fatalf("unexpected output lang: %q", res.OutputLang)
	}
}

func TestProcessTranslatorErrorFailsRequest(t *testing.T) {
	tr := &fakeTranslator{err: errors.New("boom")}
	rt := &fakeRetriever{}
	svc := New(fakeDetector{code: "hi"}, tr, rt)

	if _, err := svc.Process(context.Background(), ProcessInput{Text: "नमस्ते", TargetLang: "en"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestProcessRetrieverErrorFailsRequest(t *testing.T) {
	tr := &fakeTranslator{}
	rt := &fakeRetriever{err: errors.New("boom")}
	svc := New(fakeDetector{code: "en"}, tr, rt)

	if _, err := svc.Process(context.Background(), ProcessInput{Text: "hello", TargetLang: "en"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestSynthesizeAnswerClampsLongSnippets(t *testing.T) {
	long := strings.Repeat("x", 300)
	answer := synthesizeAnswer([]retrieval.Result{
		{Domain: "health", Lang: "en", Score: 0.9, Text: long},
	})
	if !strings.Contains(answer, strings.Repeat("x", 220)+"…") {
		t.Fatalf("expected clamped snippet, got %q", answer)
	}
	if strings.Contains(answer, strings.Repeat("x", 221)) {
		t.Fatalf("snippet not clamped: %q", answer)
	}
}
