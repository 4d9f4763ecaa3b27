package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/pkoukk/tiktoken-go"
)

type GenerateRequest struct {
	Model  string `json:"model"`
	System string `json:"system"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type GenerateResponse struct {
	Response string `json:"response"`
}

// OllamaAgent talks to an Ollama-compatible generate endpoint.
type OllamaAgent struct {
	apiURL string
	model  string
	client *http.Client
}

func NewOllamaAgent() *OllamaAgent {
	return &OllamaAgent{
		apiURL: os.Getenv("LLM_URL"),
		model:  os.Getenv("LLM_MODEL"),
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

func (a *OllamaAgent) Generate(prompt string) (string, error) {
	start := time.Now()
	defer func() {
		log.Printf("LLM answer took %v", time.Since(start))
	}()

	reqBody, err := json.Marshal(GenerateRequest{
		Model:  a.model,
		System: "You are an expert assistant that analyzes information from multiple documents.",
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	if count, err := CountTokens(prompt); err == nil {
		log.Printf("prompt size: %d tokens, %d bytes", count, len(reqBody))
	}

	resp, err := a.client.Post(a.apiURL, "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to call LLM: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read LLM response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("LLM API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var genResp GenerateResponse
	if err := json.Unmarshal(body, &genResp); err == nil && genResp.Response != "" {
		return genResp.Response, nil
	}

	// Streamed responses arrive as concatenated JSON objects.
	var output string
	decoder := json.NewDecoder(bytes.NewReader(body))
	for decoder.More() {
		var chunk GenerateResponse
		if err := decoder.Decode(&chunk); err != nil {
			break
		}
		output += chunk.Response
	}
	if output == "" {
		return "", fmt.Errorf("LLM returned an empty response")
	}
	return output, nil
}

// CountTokens reports the token footprint of a prompt for logging and
// budget checks.
func CountTokens(text string) (int, error) {
	enc, err := tiktoken.EncodingForModel("gpt-3.5-turbo")
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, nil, nil)), nil
}
