package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"time"
)

var (
	ErrModelUnavailable = errors.New("classifier unavailable")
	ErrInvalidImage     = errors.New("invalid image")
)

// Prediction is the classifier gateway result enriched with the
// human-readable fields the clients expect.
type Prediction struct {
	Label      string  `json:"predicted_label"`
	Disease    string  `json:"predicted_disease"`
	Confidence float64 `json:"confidence"`
}

// ClassifierService talks to the model server over HTTP. The handle is
// constructed once at startup and shared read-only across requests.
type ClassifierService struct {
	url    string
	client *http.Client
}

func NewClassifierService(url string, timeout time.Duration) *ClassifierService {
	return &ClassifierService{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Predict uploads the image bytes and returns the top label with its
// confidence. Transport failures map to ErrModelUnavailable; uploads that
// are not images are rejected before any network call.
func (s *ClassifierService) Predict(image []byte, filename string) (*Prediction, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: empty upload", ErrInvalidImage)
	}
	contentType := http.DetectContentType(image)
	switch contentType {
	case "image/jpeg", "image/png", "image/webp", "image/bmp":
	default:
		return nil, fmt.Errorf("%w: unsupported content type %s", ErrInvalidImage, contentType)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return nil, fmt.Errorf("classifier request: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("classifier request: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("classifier request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.url, &body)
	if err != nil {
		return nil, fmt.Errorf("classifier request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[classifier][predict][err] transport: %v", err)
		return nil, ErrModelUnavailable
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[classifier][predict][err] read body: %v", err)
		return nil, ErrModelUnavailable
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("[classifier][predict][err] status=%d body=%s", resp.StatusCode, raw)
		return nil, ErrModelUnavailable
	}

	var out struct {
		Label      string  `json:"label"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Printf("[classifier][predict][err] decode: %v", err)
		return nil, ErrModelUnavailable
	}

	log.Printf("[classifier][predict] label=%s confidence=%.4f", out.Label, out.Confidence)
	return &Prediction{Label: out.Label, Confidence: out.Confidence}, nil
}
