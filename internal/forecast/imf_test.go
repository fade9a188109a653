package forecast

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

const imfPayload = `{
	"values": {
		"PCPIPCH": {
			"EGY": {
				"2018": 20.9,
				"2019": 13.9,
				"2020": 5.7,
				"2021": 5.2,
				"2022": 8.5,
				"2023": 24.0
			}
		}
	}
}`

func TestIMFClient_FetchInflation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/PCPIPCH/EGY" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		fmt.Fprint(w, imfPayload)
	}))
	defer server.Close()

	client := NewIMFClient(5 * time.Second).WithBaseURL(server.URL)

	points, err := client.FetchInflation(context.Background(), "PCPIPCH", "EGY", 2020)
	if err != nil {
		t.Fatalf("FetchInflation failed: %v", err)
	}

	if len(points) != 4 {
		t.Fatalf("expected 4 points from 2020, got %d: %v", len(points), points)
	}
	if points[0].Year != 2020 || points[0].Value != 5.7 {
		t.Errorf("first point = %+v, want {2020 5.7}", points[0])
	}
	if points[3].Year != 2023 || points[3].Value != 24.0 {
		t.Errorf("last point = %+v, want {2023 24}", points[3])
	}
	for i := 1; i < len(points); i++ {
		if points[i].Year <= points[i-1].Year {
			t.Errorf("points not sorted at index %d", i)
		}
	}
}

func TestIMFClient_FetchInflation_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, imfPayload)
	}))
	defer server.Close()

	client := NewIMFClient(5 * time.Second).WithBaseURL(server.URL)

	points, err := client.FetchInflation(context.Background(), "PCPIPCH", "EGY", 2020)
	if err != nil {
		t.Fatalf("FetchInflation should retry past 503s: %v", err)
	}
	if len(points) == 0 {
		t.Fatal("no points after retry")
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Errorf("expected 3 attempts, got %d", n)
	}
}

func TestIMFClient_FetchInflation_ClientErrorNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "no such indicator", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewIMFClient(5 * time.Second).WithBaseURL(server.URL)

	if _, err := client.FetchInflation(context.Background(), "BOGUS", "EGY", 2020); err == nil {
		t.Fatal("expected error for 404 response")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("404 should not be retried, got %d attempts", n)
	}
}

func TestIMFClient_FetchInflation_MissingSeries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"values": {"PCPIPCH": {}}}`)
	}))
	defer server.Close()

	client := NewIMFClient(5 * time.Second).WithBaseURL(server.URL)

	_, err := client.FetchInflation(context.Background(), "PCPIPCH", "EGY", 2020)
	if err == nil {
		t.Fatal("expected error when the country series is absent")
	}
}

func TestIMFClient_FetchInflation_NoDataFromYear(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"values": {"PCPIPCH": {"EGY": {"2018": 20.9}}}}`)
	}))
	defer server.Close()

	client := NewIMFClient(5 * time.Second).WithBaseURL(server.URL)

	_, err := client.FetchInflation(context.Background(), "PCPIPCH", "EGY", 2020)
	if err == nil {
		t.Fatal("expected error when all observations predate fromYear")
	}
}
