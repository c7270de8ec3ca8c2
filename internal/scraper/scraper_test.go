package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pfrederiksen/closest-arcade/internal/arcade"
)

var observer = arcade.NewObserver(36.1627, -86.7816, "Nashville, TN")

func TestFetchListing(t *testing.T) {
	page := loadFixture(t, "locator_coordinates.html")

	tests := []struct {
		name        string
		body        string
		statusCode  int
		wantErr     error
		wantRecords int
	}{
		{
			name:        "successful fetch",
			body:        page,
			statusCode:  http.StatusOK,
			wantRecords: 3,
		},
		{
			name:       "HTTP error",
			statusCode: http.StatusNotFound,
			wantErr:    ErrSourceFetch,
		},
		{
			name:       "server error",
			body:       page,
			statusCode: http.StatusInternalServerError,
			wantErr:    ErrSourceFetch,
		},
		{
			name:       "empty page",
			body:       `<html><body><p>No arcades</p></body></html>`,
			statusCode: http.StatusOK,
			wantErr:    ErrEmptySource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requests := 0
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requests++
				if userAgent := r.Header.Get("User-Agent"); !strings.Contains(userAgent, "closest-arcade") {
					t.Errorf("User-Agent = %q, should contain 'closest-arcade'", userAgent)
				}
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			s := New(Options{URL: server.URL + "/arcades.php"})
			listing, err := s.FetchListing(context.Background(), observer)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("FetchListing() error = %v, want %v", err, tt.wantErr)
				}
			} else {
				if err != nil {
					t.Fatalf("FetchListing() unexpected error: %v", err)
				}
				if len(listing.Records) != tt.wantRecords {
					t.Errorf("FetchListing() returned %d records, want %d", len(listing.Records), tt.wantRecords)
				}
				if !strings.HasPrefix(listing.Records[0].SourceURL, server.URL+"/arcades.php?") {
					t.Errorf("SourceURL = %q", listing.Records[0].SourceURL)
				}
			}

			if requests != 1 {
				t.Errorf("server received %d requests, want exactly 1", requests)
			}
		})
	}
}

func TestFetchListing_QueryParameters(t *testing.T) {
	var query map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = map[string]string{}
		for k := range r.URL.Query() {
			query[k] = r.URL.Query().Get(k)
		}
		w.Write([]byte(`<ul><li><span class="shop-field">A</span><span class="shop-field">1 St</span><a href="/s?sid=1&amp;p=@36,-86">x</a></li></ul>`))
	}))
	defer server.Close()

	s := New(Options{URL: server.URL + "/arcades.php?lang=en", Region: "TN", Radius: "25"})
	if _, err := s.FetchListing(context.Background(), observer); err != nil {
		t.Fatalf("FetchListing() error: %v", err)
	}

	want := map[string]string{
		"lat":    "36.1627",
		"lon":    "-86.7816",
		"region": "TN",
		"radius": "25",
		"lang":   "en",
	}
	for k, v := range want {
		if query[k] != v {
			t.Errorf("query %s = %q, want %q", k, query[k], v)
		}
	}
}

func TestFetchListing_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	s := New(Options{URL: url})
	_, err := s.FetchListing(context.Background(), observer)
	if !errors.Is(err, ErrSourceFetch) {
		t.Errorf("FetchListing() error = %v, want ErrSourceFetch", err)
	}
}

func TestNew(t *testing.T) {
	s := New(Options{URL: "https://locator.test/"})

	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.client == nil {
		t.Error("scraper client is nil")
	}
	if s.client.GetClient().Timeout != Timeout {
		t.Errorf("client timeout = %v, want %v", s.client.GetClient().Timeout, Timeout)
	}
	if s.extractor == nil {
		t.Error("scraper extractor is nil")
	}
}
