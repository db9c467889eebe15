package webui

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"bhasharag/internal/model"
)

func TestClientProcessPostsJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/process" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Fatalf("unexpected content type: %q", got)
		}
		var req model.ProcessRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Text != "hello" || req.TargetLang != "hi" {
			t.Fatalf("unexpected request: %+v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"detected_language_name":"English","original_text":"hello","translated_text":"x","retrieved_items":[],"metrics":{"latency_ms":12}}`)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, ts.Client())
	resp, err := c.Process(context.Background(), model.ProcessRequest{Text: "hello", TargetLang: "hi"})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if resp.DetectedLanguageName != "English" || resp.Metrics.LatencyMS != 12 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestClientProcessNonOKStatusIsAnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":"internal_error"}}`, http.StatusBadGateway)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, ts.Client())
	if _, err := c.Process(context.Background(), model.ProcessRequest{Text: "hello"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestClientProcessBadJSONIsAnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "not json")
	}))
	defer ts.Close()

	c := NewClient(ts.URL, ts.Client())
	if _, err := c.Process(context.Background(), model.ProcessRequest{Text: "hello"}); err == nil {
		t.Fatal("expected error")
	}
}
