package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HuggingFaceAdapter implements ports.LLMService against the Hugging Face
// inference router, which speaks the OpenAI chat completions protocol.
type HuggingFaceAdapter struct {
	baseURL   string
	token     string
	model     string
	maxTokens int
	client    *http.Client
}

// NewHuggingFaceAdapter creates a chat-completions adapter.
// token is the HF API token; an empty model falls back to Mistral-7B.
func NewHuggingFaceAdapter(baseURL, token, model string, maxTokens int) *HuggingFaceAdapter {
	if baseURL == "" {
		baseURL = "https://router.huggingface.co/v1"
	}
	if model == "" {
		model = "mistralai/Mistral-7B-Instruct-v0.2"
	}
	if maxTokens <= 0 {
		maxTokens = 300
	}
	return &HuggingFaceAdapter{
		baseURL:   baseURL,
		token:     token,
		model:     model,
		maxTokens: maxTokens,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// chatMessage is one turn of a chat completion conversation.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionRequest is the OpenAI-compatible chat request format.
type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

// chatCompletionResponse is the OpenAI-compatible chat response format.
type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate produces a completion for the prompt. Temperature is pinned to
// zero so grounded answers stay deterministic.
func (a *HuggingFaceAdapter) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := chatCompletionRequest{
		Model:       a.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   a.maxTokens,
		Temperature: 0,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.baseURL+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling Hugging Face: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Hugging Face returned status %d", resp.StatusCode)
	}

	var chatResp chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("Hugging Face returned no choices")
	}

	return chatResp.Choices[0].Message.Content, nil
}
