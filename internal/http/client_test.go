package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Get(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("tile bytes"))
	}))
	defer server.Close()

	client := NewClient("")
	body, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(body) != "tile bytes" {
		t.Errorf("body = %q, want %q", body, "tile bytes")
	}
	if gotUA != DefaultUserAgent {
		t.Errorf("User-Agent = %q, want %q", gotUA, DefaultUserAgent)
	}
}

func TestClient_GetNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient("test-agent")
	if _, err := client.Get(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestClient_GetString(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	client := NewClient("")
	html, err := client.GetString(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("GetString failed: %v", err)
	}
	if html != "<html></html>" {
		t.Errorf("html = %q", html)
	}
}
