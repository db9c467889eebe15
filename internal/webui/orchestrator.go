// Package webui serves the browser page and renders process results into HTML
// fragments. The orchestrator owns the submit flow: one API call per
// submission, with a sequence number so a stale response never replaces the
// result of a newer one.
package webui

import (
	"context"
	"html/template"
	"log/slog"
	"strings"
	"sync/atomic"

	"bhasharag/internal/model"
)

type APIClient interface {
	Process(ctx context.Context, req model.ProcessRequest) (model.ProcessResponse, error)
}

// View is the rendered outcome of one submission. Both fragments are always
// set together so the display regions are replaced atomically.
type View struct {
	// Skipped is set when the trimmed input was empty and nothing was sent.
	Skipped bool
	// Stale is set when a newer submission started before this one finished;
	// the caller must not display a stale view.
	Stale       bool
	ResultsHTML template.HTML
	MetricsHTML template.HTML
}

type Orchestrator struct {
	client   APIClient
	renderer *Renderer
	logger   *slog.Logger
	seq      atomic.Uint64
}

func NewOrchestrator(client APIClient, renderer *Renderer, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		client:   client,
		renderer: renderer,
		logger:   logger,
	}
}

// Submit runs one submission end to end. Backend and render failures are
// absorbed here: the returned view is either the success view or the fixed
// error view, never an error.
func (o *Orchestrator) Submit(ctx context.Context, text, targetLang string) View {
	text = strings.TrimSpace(text)
	if text == "" {
		return View{Skipped: true}
	}

	seq := o.seq.Add(1)

	resp, err := o.client.Process(ctx, model.ProcessRequest{Text: text, TargetLang: targetLang})
	stale := o.seq.Load() != seq
	if err != nil {
		o.logger.Error("process request failed", "error", err)
		return o.errorView(stale)
	}

	resultsHTML, err := o.renderer.Results(resp)
	if err != nil {
		o.logger.Error("render results failed", "error", err)
		return o.errorView(stale)
	}
	metricsHTML, err := o.renderer.Metrics(resp.Metrics)
	if err != nil {
		o.logger.Error("render metrics failed", "error", err)
		return o.errorView(stale)
	}

	return View{Stale: stale, ResultsHTML: resultsHTML, MetricsHTML: metricsHTML}
}

func (o *Orchestrator) errorView(stale bool) View {
	return View{
		Stale:       stale,
		ResultsHTML: o.renderer.Error(),
		MetricsHTML: o.renderer.MetricsFailed(),
	}
}
