package tesseract

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ptrevisan/gestionale-trasporti/internal/core/domain"
)

func TestRecognizeSendsItalianLanguageAndParsesStdout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tesseract" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if opts := r.FormValue("options"); !strings.Contains(opts, `"ita"`) {
			t.Fatalf("expected ita language option, got %q", opts)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]string{"stdout": " DDT n. 42 \n"},
		})
	}))
	defer server.Close()

	client := New(server.URL, nil)
	text, err := client.Recognize(context.Background(), []byte{0xFF, 0xD8}, "image/jpeg")
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if text != "DDT n. 42" {
		t.Fatalf("text = %q", text)
	}
}

func TestRecognizeWrapsBackendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "engine crashed", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL, nil)
	_, err := client.Recognize(context.Background(), []byte{0x89}, "image/png")
	if !domain.IsKind(err, domain.ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
}
