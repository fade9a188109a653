package scrape

import (
	"reflect"
	"testing"
)

func TestDateFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "full date path",
			url:  "https://www.dailynewsegypt.com/2025/12/08/egypt-inflation-eases/",
			want: "2025-12-08",
		},
		{
			name: "single digit month and day",
			url:  "https://example.com/2024/3/7/article/",
			want: "2024-03-07",
		},
		{
			name: "no date in path",
			url:  "https://www.almasryalyoum.com/news/details/3344556",
			want: "",
		},
		{
			name: "numbers without slashes not matched",
			url:  "https://example.com/story-2024-03-07",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dateFromURL(tt.url); got != tt.want {
				t.Errorf("dateFromURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestAbsoluteURL(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{"/story/2025/1/1/x/100", "https://www.youm7.com/story/2025/1/1/x/100"},
		{"https://other.example.com/page", "https://other.example.com/page"},
		{"http://insecure.example.com/page", "http://insecure.example.com/page"},
	}

	for _, tt := range tests {
		if got := absoluteURL("https://www.youm7.com", tt.href); got != tt.want {
			t.Errorf("absoluteURL(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}

func TestDedupeRefs(t *testing.T) {
	refs := []Ref{
		{URL: "https://a.example/1", Title: "first"},
		{URL: "https://a.example/2", Title: "second"},
		{URL: "https://a.example/1", Title: "first again"},
	}

	want := []Ref{
		{URL: "https://a.example/1", Title: "first"},
		{URL: "https://a.example/2", Title: "second"},
	}

	if got := dedupeRefs(refs); !reflect.DeepEqual(got, want) {
		t.Errorf("dedupeRefs() = %v, want %v", got, want)
	}
}

func TestNewSource(t *testing.T) {
	tests := []struct {
		name     string
		wantName string
		wantErr  bool
	}{
		{name: "youm7", wantName: "youm7"},
		{name: "almasry", wantName: "almasry_alyoum"},
		{name: "almasry_alyoum", wantName: "almasry_alyoum"},
		{name: "dailynews", wantName: "dailynews_egypt"},
		{name: "DailyNews", wantName: "dailynews_egypt"},
		{name: "reuters", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, err := NewSource(tt.name, "inflation")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error for unknown source")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSource(%q) failed: %v", tt.name, err)
			}
			if source.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", source.Name(), tt.wantName)
			}
		})
	}
}
