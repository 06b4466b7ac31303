package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimal valid JPEG header so content-type sniffing passes
var jpegBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 64)...)

func TestPredictSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, _, err := r.FormFile("image")
		require.NoError(t, err)

		json.NewEncoder(w).Encode(map[string]any{
			"label":      "mel",
			"confidence": 0.9312,
		})
	}))
	defer srv.Close()

	svc := NewClassifierService(srv.URL, 2*time.Second)
	pred, err := svc.Predict(jpegBytes, "lesion.jpg")
	require.NoError(t, err)
	assert.Equal(t, "mel", pred.Label)
	assert.InDelta(t, 0.9312, pred.Confidence, 1e-9)
}

func TestPredictRejectsNonImage(t *testing.T) {
	svc := NewClassifierService("http://unused.invalid", time.Second)

	_, err := svc.Predict([]byte("this is plain text, not an image"), "notes.txt")
	assert.True(t, errors.Is(err, ErrInvalidImage))

	_, err = svc.Predict(nil, "empty.jpg")
	assert.True(t, errors.Is(err, ErrInvalidImage))
}

func TestPredictModelUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewClassifierService(srv.URL, 2*time.Second)
	_, err := svc.Predict(jpegBytes, "lesion.jpg")
	assert.True(t, errors.Is(err, ErrModelUnavailable))
}

func TestPredictTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // refuse connections

	svc := NewClassifierService(srv.URL, time.Second)
	_, err := svc.Predict(jpegBytes, "lesion.jpg")
	assert.True(t, errors.Is(err, ErrModelUnavailable))
}

func TestPredictBadResponseBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	svc := NewClassifierService(srv.URL, time.Second)
	_, err := svc.Predict(jpegBytes, "lesion.jpg")
	assert.True(t, errors.Is(err, ErrModelUnavailable))
}
