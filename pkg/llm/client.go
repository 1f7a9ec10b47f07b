package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the external text-generation endpoint. One operation:
// submit a prompt plus an optional JSON-schema hint and a live-web-context
// flag, get back raw text. The caller is responsible for recovering a JSON
// object from the text and for any retry policy.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

type Request struct {
	Prompt     string          `json:"prompt"`
	Model      string          `json:"model"`
	SchemaHint json.RawMessage `json:"schema_hint,omitempty"`
	WebContext bool            `json:"web_context"`
}

type response struct {
	Text string `json:"text"`
}

func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		http:    &http.Client{Timeout: timeout},
	}
}

// Generate submits the prompt and returns the raw generated text.
func (c *Client) Generate(ctx context.Context, prompt string, schemaHint json.RawMessage, webContext bool) (string, error) {
	body, err := json.Marshal(Request{
		Prompt:     prompt,
		Model:      c.model,
		SchemaHint: schemaHint,
		WebContext: webContext,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("text generation call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("text generation call: status %d: %s", resp.StatusCode, raw)
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return out.Text, nil
}
