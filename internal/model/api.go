package model

type APIError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type ErrorResponse struct {
	Error     APIError `json:"error"`
	RequestID string   `json:"request_id,omitempty"`
}

type HealthResponse struct {
	OK bool `json:"ok"`
}

type ReadyResponse struct {
	OK          bool   `json:"ok"`
	ServiceName string `json:"service_name,omitempty"`
}

type ProcessRequest struct {
	Text       string `json:"text"`
	TargetLang string `json:"target_lang"`
}

type RetrievedItem struct {
	Domain string  `json:"domain"`
	Lang   string  `json:"lang"`
	Score  float64 `json:"score"`
	Text   string  `json:"text"`
}

type Metrics struct {
	LatencyMS               int64   `json:"latency_ms"`
	DetectedLang            string  `json:"detected_lang"`
	TargetLang              string  `json:"target_lang"`
	NumRetrieved            int     `json:"num_retrieved"`
	BLEU                    float64 `json:"bleu"`
	COMET                   float64 `json:"comet"`
	NamedEntityPreservation float64 `json:"named_entity_preservation"`
	ToxicityLeakage         float64 `json:"toxicity_leakage"`
}

type ProcessResponse struct {
	OriginalText         string          `json:"original_text"`
	DetectedLanguageName string          `json:"detected_language_name"`
	NormalizedText       string          `json:"normalized_text"`
	RetrievedItems       []RetrievedItem `json:"retrieved_items"`
	TranslatedText       string          `json:"translated_text"`
	Metrics              Metrics         `json:"metrics"`
}

type HistoryEntry struct {
	ID             string `json:"id"`
	OriginalText   string `json:"original_text"`
	NormalizedText string `json:"normalized_text,omitempty"`
	DetectedLang   string `json:"detected_lang"`
	TargetLang     string `json:"target_lang"`
	TranslatedText string `json:"translated_text"`
	NumRetrieved   int    `json:"num_retrieved"`
	LatencyMS      int64  `json:"latency_ms"`
	CreatedAt      string `json:"created_at"`
}

type HistoryResponse struct {
	Entries []HistoryEntry `json:"entries"`
}
