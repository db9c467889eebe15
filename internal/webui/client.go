package webui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"bhasharag/internal/model"
)

// Client calls the process API the way the page would: one JSON POST per
// submission against a fixed base origin.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) Process(ctx context.Context, reqPayload model.ProcessRequest) (model.ProcessResponse, error) {
	payload, err := json.Marshal(reqPayload)
	if err != nil {
		return model.ProcessResponse{}, err
	}

	url := c.baseURL + "/api/process"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return model.ProcessResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.ProcessResponse{}, fmt.Errorf("process request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return model.ProcessResponse{}, fmt.Errorf("process request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed model.ProcessResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return model.ProcessResponse{}, fmt.Errorf("decode process response: %w", err)
	}
	return parsed, nil
}
