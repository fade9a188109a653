package scrape

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rmansour/kashef/internal/cache"
	"github.com/rmansour/kashef/internal/util"
)

func TestFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); !strings.HasPrefix(ua, "Kashef/") {
			t.Errorf("unexpected User-Agent: %q", ua)
		}
		if lang := r.Header.Get("Accept-Language"); !strings.HasPrefix(lang, "ar") {
			t.Errorf("unexpected Accept-Language: %q", lang)
		}
		fmt.Fprint(w, "<html><body>ok</body></html>")
	}))
	defer server.Close()

	f := NewFetcher(5*time.Second, "Kashef/0.2 (+https://github.com/rmansour/kashef)", 1<<20, "", "")

	body, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if !strings.Contains(body, "ok") {
		t.Errorf("unexpected body: %q", body)
	}
}

func TestFetcher_Fetch_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	f := NewFetcher(5*time.Second, "Kashef/0.2", 1<<20, "", "")

	_, err := f.Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error should carry the status code: %v", err)
	}
}

func TestFetcher_Fetch_BodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, strings.Repeat("x", 1000))
	}))
	defer server.Close()

	f := NewFetcher(5*time.Second, "Kashef/0.2", 100, "", "")

	body, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(body) != 100 {
		t.Errorf("expected body truncated to 100 bytes, got %d", len(body))
	}
}

func TestFetcher_Fetch_CacheHit(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		fmt.Fprint(w, "cached page")
	}))
	defer server.Close()

	f := NewFetcher(5*time.Second, "Kashef/0.2", 1<<20, "", "").
		WithCache(cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	for i := 0; i < 3; i++ {
		body, err := f.Fetch(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("fetch %d failed: %v", i+1, err)
		}
		if body != "cached page" {
			t.Errorf("fetch %d: unexpected body %q", i+1, body)
		}
	}

	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("expected 1 origin request, got %d", n)
	}
}

func TestFetcher_Fetch_RobotsDisallowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			fmt.Fprint(w, "User-agent: *\nDisallow: /private/\n")
			return
		}
		fmt.Fprint(w, "content")
	}))
	defer server.Close()

	f := NewFetcher(5*time.Second, "Kashef/0.2", 1<<20, "", "").
		WithRobots(util.NewRobotsChecker("Kashef/0.2", 5*time.Second))

	if _, err := f.Fetch(context.Background(), server.URL+"/public/page"); err != nil {
		t.Errorf("allowed path should fetch: %v", err)
	}

	_, err := f.Fetch(context.Background(), server.URL+"/private/page")
	if !errors.Is(err, ErrRobotsDisallowed) {
		t.Errorf("expected ErrRobotsDisallowed, got %v", err)
	}
}
