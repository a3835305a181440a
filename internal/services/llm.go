package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// GenerationParams are the sampling knobs sent with an inference request.
type GenerationParams struct {
	MaxTokens    int
	Temperature  float64
	TopP         float64
	WaitForModel bool
}

// ParamsForIntent returns the tuned sampling parameters for a generation
// intent. Extraction runs near-deterministic; infographics get more freedom.
func ParamsForIntent(intent GenerationIntent) GenerationParams {
	switch intent {
	case IntentExtraction:
		return GenerationParams{MaxTokens: 1000, Temperature: 0.1, TopP: 0.9, WaitForModel: true}
	case IntentInfographic:
		return GenerationParams{MaxTokens: 1000, Temperature: 0.7, TopP: 0.95, WaitForModel: true}
	default:
		return GenerationParams{MaxTokens: 1000, Temperature: 0.3, TopP: 0.95, WaitForModel: true}
	}
}

// ModelInvocationError reports a failed model call. Callers use it to decide
// whether fallback data should be served instead of surfacing the error.
type ModelInvocationError struct {
	StatusCode int
	Message    string
}

func (e *ModelInvocationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("model invocation failed (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("model invocation failed: %s", e.Message)
}

// LLMClient calls a hosted text-generation endpoint. A buffered channel
// bounds concurrent in-flight requests.
type LLMClient struct {
	httpClient *http.Client
	apiURL     string
	apiToken   string
	rateChan   chan struct{}
}

func NewLLMClient(apiURL, apiToken string, maxConcurrent int) *LLMClient {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	// No client-level timeout: cold models can block for tens of seconds and
	// the wait is acceptable. Callers bound the call through ctx.
	return &LLMClient{
		httpClient: &http.Client{},
		apiURL:     apiURL,
		apiToken:   apiToken,
		rateChan:   make(chan struct{}, maxConcurrent),
	}
}

type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
	Options    inferenceOptions    `json:"options"`
}

type inferenceParameters struct {
	MaxNewTokens int     `json:"max_new_tokens"`
	Temperature  float64 `json:"temperature"`
	TopP         float64 `json:"top_p"`
}

type inferenceOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

// Generate sends the prompt to the inference endpoint and returns the raw
// generated text. It makes no attempt to clean or parse the output; that is
// the normalizer's job.
func (c *LLMClient) Generate(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	select {
	case c.rateChan <- struct{}{}:
		defer func() { <-c.rateChan }()
	case <-ctx.Done():
		return "", ctx.Err()
	}

	payload, err := json.Marshal(inferenceRequest{
		Inputs: prompt,
		Parameters: inferenceParameters{
			MaxNewTokens: params.MaxTokens,
			Temperature:  params.Temperature,
			TopP:         params.TopP,
		},
		Options: inferenceOptions{WaitForModel: params.WaitForModel},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create inference request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &ModelInvocationError{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ModelInvocationError{StatusCode: resp.StatusCode, Message: "failed to read response body"}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &ModelInvocationError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	text, err := decodeGeneratedText(body)
	if err != nil {
		return "", &ModelInvocationError{StatusCode: resp.StatusCode, Message: err.Error()}
	}
	return text, nil
}

// decodeGeneratedText tolerates the three response shapes hosted inference
// providers return: a flat {"generated_text": ...} object, an array of such
// objects, and the nested candidates/content/parts shape.
func decodeGeneratedText(body []byte) (string, error) {
	var flat struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(body, &flat); err == nil && flat.GeneratedText != "" {
		return flat.GeneratedText, nil
	}

	var list []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(body, &list); err == nil && len(list) > 0 && list[0].GeneratedText != "" {
		return list[0].GeneratedText, nil
	}

	var nested struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &nested); err == nil && len(nested.Candidates) > 0 {
		for _, part := range nested.Candidates[0].Content.Parts {
			if part.Text != "" {
				return part.Text, nil
			}
		}
	}

	return "", fmt.Errorf("unrecognized response shape: %s", truncateContent(string(body), 200))
}
