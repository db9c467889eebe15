package translate

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"bhasharag/internal/upstream/openai"
)

type fakeChatClient struct {
	request openai.ChatCompletionRequest
	resp    openai.ChatCompletionResponse
	err     error
	calls   int
}

func (f *fakeChatClient) ChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.request = req
	f.calls++
	return f.resp, f.err
}

func TestTranslateIdentityPairSkipsProvider(t *testing.T) {
	client := &fakeChatClient{}
	svc := New(NewOpenAIProvider(client, "test-model"), 2*time.Second)

	out, err := svc.Translate(context.Background(), "hello", "en", "en")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if out != "hello" {
		t.Fatalf("unexpected output: %q", out)
	}
	if client.calls != 0 {
		t.Fatalf("provider should not be called, got %d calls", client.calls)
	}
}

func TestTranslateUnsupportedPairPassesThrough(t *testing.T) {
	client := &fakeChatClient{}
	svc := New(NewOpenAIProvider(client, "test-model"), 2*time.Second)

	out, err := svc.Translate(context.Background(), "bonjour", "fr", "en")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if out != "bonjour" || client.calls != 0 {
		t.Fatalf("expected passthrough, got %q after %d calls", out, client.calls)
	}
}

func TestTranslateBuildsPromptWithLanguageNames(t *testing.T) {
	client := &fakeChatClient{resp: openai.ChatCompletionResponse{Content: "\"नमस्ते दुनिया\""}}
	svc := New(NewOpenAIProvider(client, "test-model"), 2*time.Second)

	out, err := svc.Translate(context.Background(), "hello world", "en", "hi")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if out != "नमस्ते दुनिया" {
		t.Fatalf("unexpected output: %q", out)
	}
	if client.request.Model != "test-model" {
		t.Fatalf("unexpected model: %q", client.request.Model)
	}
	if client.request.Temperature != 0 {
		t.Fatalf("unexpected temperature: %v", client.request.Temperature)
	}
	userContent, _ := client.request.Messages[1].Content.(string)
	if !strings.Contains(userContent, "from English to Hindi") {
		t.Fatalf("expected language names in prompt, got %q", userContent)
	}
	if !strings.Contains(userContent, "hello world") {
		t.Fatalf("expected source text in prompt, got %q", userContent)
	}
}

func TestTranslatePropagatesProviderError(t *testing.T) {
	client := &fakeChatClient{err: errors.New("boom")}
	svc := New(NewOpenAIProvider(client, "test-model"), 2*time.Second)

	if _, err := svc.Translate(context.Background(), "hello", "en", "hi"); err == nil {
		t.Fatal("expected error")
	}
}

func TestSanitizeTranslation(t *testing.T) {
	cases := map[string]string{
		"\"quoted\"": "quoted",
		"  padded  ": "padded",
		"":           "",
	}
	for in, want := range cases {
		if got := sanitizeTranslation(in); got != want {
			t.Fatalf("sanitizeTranslation(%q): got %q want %q", in, got, want)
		}
	}
}
