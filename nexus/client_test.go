package nexus

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(""); err == nil {
		t.Error("NewClient() error = nil, want error for missing API key")
	}
}

func TestGetMod(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("apikey") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Path != "/games/marvelrivals/mods/42.json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"mod_id":42,"name":"Cool Skin","version":"2.1","available":true}`))
	}))
	defer server.Close()

	client, err := NewClient("test-key")
	if err != nil {
		t.Fatal(err)
	}
	client.BaseURL = server.URL

	mod, err := client.GetMod(42)
	if err != nil {
		t.Fatalf("GetMod() error = %v", err)
	}
	if mod.Name != "Cool Skin" || mod.Version != "2.1" {
		t.Errorf("GetMod() = %+v", mod)
	}
}

func TestGetModHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	client, err := NewClient("test-key")
	if err != nil {
		t.Fatal(err)
	}
	client.BaseURL = server.URL

	if _, err := client.GetMod(7); err == nil {
		t.Error("GetMod() error = nil, want error for 404")
	}
}
