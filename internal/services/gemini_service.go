package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

var ErrLLMClient = errors.New("llm client error")

// GeminiService is the hosted-LLM gateway. Any failure is reported as
// ErrLLMClient so the chat advisor can drop to its rule-based fallback.
type GeminiService struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewGeminiService(apiKey, model, baseURL string, timeout time.Duration) *GeminiService {
	return &GeminiService{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (s *GeminiService) Generate(prompt string) (string, error) {
	if s == nil || s.apiKey == "" {
		return "", ErrLLMClient
	}

	body := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}
	b, _ := json.Marshal(body)

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", s.baseURL, s.model, s.apiKey)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", ErrLLMClient
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[gemini][generate][err] transport: %v", err)
		return "", ErrLLMClient
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[gemini][generate][err] read body: %v", err)
		return "", ErrLLMClient
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("[gemini][generate][err] status=%d body=%.200s", resp.StatusCode, raw)
		return "", ErrLLMClient
	}

	var out geminiResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Printf("[gemini][generate][err] decode: %v", err)
		return "", ErrLLMClient
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		log.Printf("[gemini][generate][err] empty candidates")
		return "", ErrLLMClient
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
