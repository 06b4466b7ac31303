package services

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasSuffix(r.URL.Path, ":generateContent"))
		require.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"stay calm"}]}}]}`))
	}))
	defer srv.Close()

	svc := NewGeminiService("test-key", "models/gemini-flash-latest", srv.URL, 2*time.Second)
	text, err := svc.Generate("hello")
	require.NoError(t, err)
	assert.Equal(t, "stay calm", text)
}

func TestGeminiGenerateWithoutKey(t *testing.T) {
	svc := NewGeminiService("", "models/gemini-flash-latest", "http://unused.invalid", time.Second)
	_, err := svc.Generate("hello")
	assert.True(t, errors.Is(err, ErrLLMClient))
}

func TestGeminiGenerateErrors(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"upstream error": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota", http.StatusTooManyRequests)
		},
		"empty candidates": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates":[]}`))
		},
		"bad json": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`nope`))
		},
	}

	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(handler)
			defer srv.Close()

			svc := NewGeminiService("k", "m", srv.URL, time.Second)
			_, err := svc.Generate("hello")
			assert.True(t, errors.Is(err, ErrLLMClient))
		})
	}
}
