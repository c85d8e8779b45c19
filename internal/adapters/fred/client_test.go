package fred

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/apetrov/econ-tracker/internal/adapters/config"
	"github.com/apetrov/econ-tracker/pkg/logger"
)

func init() {
	// The client logs skipped observations
	_ = logger.Init("error", "")
}

func testClient(baseURL string) *Client {
	return NewClient(&config.FredConfig{
		BaseURL:        baseURL,
		APIKey:         "test-key",
		RequestTimeout: 5 * time.Second,
	})
}

func TestFetchObservations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("series_id"); got != "UNRATE" {
			t.Errorf("series_id = %q, want UNRATE", got)
		}
		if got := r.URL.Query().Get("api_key"); got != "test-key" {
			t.Errorf("api_key = %q, want test-key", got)
		}
		if got := r.URL.Query().Get("observation_start"); got != "1980-01-01" {
			t.Errorf("observation_start = %q, want 1980-01-01", got)
		}
		if got := r.URL.Query().Get("file_type"); got != "json" {
			t.Errorf("file_type = %q, want json", got)
		}

		fmt.Fprint(w, `{"observations":[
			{"date":"2024-01-01","value":"3.7"},
			{"date":"2024-02-01","value":"."},
			{"date":"not-a-date","value":"3.8"},
			{"date":"2024-03-01","value":"3.9"}
		]}`)
	}))
	defer srv.Close()

	client := testClient(srv.URL)

	observations, err := client.FetchObservations(context.Background(), "UNRATE", "1980-01-01")
	if err != nil {
		t.Fatalf("FetchObservations failed: %v", err)
	}

	// The "." placeholder and the malformed date are skipped
	if len(observations) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(observations))
	}

	if observations[0].Value.String() != "3.7" {
		t.Errorf("first value = %s, want 3.7", observations[0].Value.String())
	}
	wantDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !observations[0].Date.Equal(wantDate) {
		t.Errorf("first date = %v, want %v", observations[0].Date, wantDate)
	}
	if observations[1].Value.String() != "3.9" {
		t.Errorf("second value = %s, want 3.9", observations[1].Value.String())
	}
}

func TestFetchObservationsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error_message":"Bad Request"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	client := testClient(srv.URL)

	_, err := client.FetchObservations(context.Background(), "UNRATE", "1980-01-01")
	if err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestFetchObservationsContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	client := testClient(srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchObservations(ctx, "UNRATE", "1980-01-01")
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
