package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wahlandcase/attuned.changelog/internal/generate"
)

func newServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestGenerate(t *testing.T) {
	server := newServer(t, http.StatusOK, `{"choices":[{"index":0,"message":{"role":"assistant","content":"v1.2 released\n\n- Search"}}]}`)
	g := New("test-key", server.URL+"/v1", "test-model")

	draft, err := g.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if draft.Title != "v1.2 released" || draft.Body != "- Search" {
		t.Errorf("draft = %+v", draft)
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		status  int
		body    string
		wantErr error
	}{
		{name: "missing key", key: "", wantErr: generate.ErrMissingCredential},
		{name: "rejected key", key: "test-key", status: http.StatusUnauthorized, body: `{"error":{"message":"bad key","type":"invalid_request_error"}}`, wantErr: generate.ErrCredentialRejected},
		{name: "empty reply", key: "test-key", status: http.StatusOK, body: `{"choices":[]}`, wantErr: generate.ErrEmptyResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := "http://127.0.0.1:0/v1"
			if tt.status != 0 {
				url = newServer(t, tt.status, tt.body).URL + "/v1"
			}
			_, err := New(tt.key, url, "m").Generate(context.Background(), "p")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestServerErrorIsNotCredential(t *testing.T) {
	server := newServer(t, http.StatusInternalServerError, `{"error":{"message":"down","type":"server_error"}}`)
	_, err := New("test-key", server.URL+"/v1", "m").Generate(context.Background(), "p")
	if err == nil {
		t.Fatal("want error")
	}
	if generate.IsCredentialError(err) {
		t.Errorf("500 classified as credential error: %v", err)
	}
}
