package webui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"

	"bhasharag/internal/model"
)

//go:embed assets
var assetsFS embed.FS

// Stagger between retrieved items; purely presentational.
const itemDelayStep = 80

type resultsView struct {
	DetectedLanguageName string
	OriginalText         string
	NormalizedText       string
	TranslatedText       string
	Items                []itemView
}

type itemView struct {
	Rank   int
	Domain string
	Lang   string
	Score  string
	Text   string
	Delay  string
}

type metricsView struct {
	BLEU                    string
	COMET                   string
	LatencyMS               int64
	NamedEntityPreservation string
	ToxicityLeakage         string
}

type Renderer struct {
	templates *template.Template

	errorHTML         template.HTML
	metricsFailedHTML template.HTML
}

func NewRenderer() (*Renderer, error) {
	templates, err := template.ParseFS(assetsFS, "assets/templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := &Renderer{templates: templates}

	// The error fragments are fixed, so render them once up front.
	errorHTML, err := r.execute("error.tmpl", nil)
	if err != nil {
		return nil, err
	}
	metricsFailedHTML, err := r.execute("metrics_failed.tmpl", nil)
	if err != nil {
		return nil, err
	}
	r.errorHTML = errorHTML
	r.metricsFailedHTML = metricsFailedHTML
	return r, nil
}

// Results renders the success fragment for the results region.
func (r *Renderer) Results(resp model.ProcessResponse) (template.HTML, error) {
	view := resultsView{
		DetectedLanguageName: resp.DetectedLanguageName,
		OriginalText:         resp.OriginalText,
		NormalizedText:       resp.NormalizedText,
		TranslatedText:       resp.TranslatedText,
	}
	for i, item := range resp.RetrievedItems {
		rank := i + 1
		view.Items = append(view.Items, itemView{
			Rank:   rank,
			Domain: item.Domain,
			Lang:   item.Lang,
			Score:  formatScore(item.Score),
			Text:   item.Text,
			Delay:  fmt.Sprintf("%dms", (rank-1)*itemDelayStep),
		})
	}
	return r.execute("results.tmpl", view)
}

// Metrics renders the metrics fragment. All five fields are always shown.
func (r *Renderer) Metrics(m model.Metrics) (template.HTML, error) {
	return r.execute("metrics.tmpl", metricsView{
		BLEU:                    formatNumber(m.BLEU),
		COMET:                   formatNumber(m.COMET),
		LatencyMS:               m.LatencyMS,
		NamedEntityPreservation: formatPercent(m.NamedEntityPreservation),
		ToxicityLeakage:         formatPercent(m.ToxicityLeakage),
	})
}

func (r *Renderer) Error() template.HTML {
	return r.errorHTML
}

func (r *Renderer) MetricsFailed() template.HTML {
	return r.metricsFailedHTML
}

// Page renders the full index page.
func (r *Renderer) Page(data PageData) (template.HTML, error) {
	return r.execute("index.tmpl", data)
}

type PageLanguage struct {
	Code string
	Name string
}

type PageData struct {
	Languages []PageLanguage
}

func (r *Renderer) execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("execute %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

func formatScore(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
