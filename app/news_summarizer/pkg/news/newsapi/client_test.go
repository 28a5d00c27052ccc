package newsapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/logger"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/news"
)

func init() {
	logger.Discard()
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/everything" {
			t.Errorf("path = %s, want /everything", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "Tesla" {
			t.Errorf("q = %q, want Tesla", got)
		}
		if got := r.Header.Get("X-Api-Key"); got != "key" {
			t.Errorf("X-Api-Key = %q", got)
		}
		w.Write([]byte(`{"status":"ok","totalResults":2,"articles":[
			{"source":{"id":null,"name":"Reuters"},"title":"Tesla recalls cars","description":"Tesla is recalling vehicles.","url":"https://example.com/1","publishedAt":"2024-03-01T10:00:00Z"},
			{"source":{"name":"Blog"},"title":"","description":null,"url":"https://example.com/2","publishedAt":"bad"}
		]}`))
	}))
	defer srv.Close()

	got, err := NewClient("key", srv.URL, "").Fetch(context.Background(), "Tesla")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Title != "Tesla recalls cars" || got[0].Summary != "Tesla is recalling vehicles." || got[0].Source != "Reuters" {
		t.Errorf("unexpected first article %+v", got[0])
	}
	if got[0].PublishedAt.IsZero() {
		t.Error("expected PublishedAt to be parsed")
	}
	if got[1].Summary != "" || !got[1].PublishedAt.IsZero() {
		t.Errorf("unexpected second article %+v", got[1])
	}
	if got[1].DisplayTitle() != "No title" {
		t.Errorf("DisplayTitle() = %q", got[1].DisplayTitle())
	}
}

func TestFetchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status":"error","code":"apiKeyInvalid"}`))
	}))
	defer srv.Close()

	_, err := NewClient("bad", srv.URL, "en").Fetch(context.Background(), "Tesla")
	var se *news.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Code != http.StatusUnauthorized || se.Provider != "newsapi" {
		t.Errorf("unexpected StatusError %+v", se)
	}
}

func TestFetchNotOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","code":"rateLimited","message":"slow down"}`))
	}))
	defer srv.Close()

	if _, err := NewClient("k", srv.URL, "").Fetch(context.Background(), "Tesla"); err == nil {
		t.Fatal("expected error for non-ok status")
	}
}
