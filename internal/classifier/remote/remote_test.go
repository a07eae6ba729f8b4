package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

// labelServer classifies any text containing "yes" as 1.
func labelServer(t *testing.T, requests *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/classify" {
			t.Errorf("path = %s", r.URL.Path)
		}
		*requests++
		var in struct {
			Texts []string `json:"texts"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Fatalf("decode: %v", err)
		}
		labels := make([]int, len(in.Texts))
		for i, s := range in.Texts {
			if s == "yes" {
				labels[i] = 1
			}
		}
		_ = json.NewEncoder(w).Encode(map[string][]int{"labels": labels})
	}))
}

func TestClassifyBatchesAndOrder(t *testing.T) {
	var requests int
	srv := labelServer(t, &requests)
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL, BatchSize: 2})
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	labels, err := c.Classify(context.Background(), []string{"no", "yes", "no", "yes", "yes"})
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if want := []int{0, 1, 0, 1, 1}; !reflect.DeepEqual(labels, want) {
		t.Fatalf("labels = %v, want %v", labels, want)
	}
	if requests != 3 {
		t.Fatalf("requests = %d, want 3 batches of size <= 2", requests)
	}
}

func TestClassifyRejectsLabelCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string][]int{"labels": {1}})
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	if _, err := c.Classify(context.Background(), []string{"a", "b"}); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestClassifyClientErrorNotRetried(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	if _, err := c.Classify(context.Background(), []string{"a"}); err == nil {
		t.Fatal("expected error on 4xx")
	}
	if requests != 1 {
		t.Fatalf("requests = %d, want no retries on client error", requests)
	}
}

func TestNewClientRequiresConfiguredKey(t *testing.T) {
	t.Setenv("PDFACTIVITY_TEST_KEY", "")
	if _, err := NewClient(Config{BaseURL: "http://localhost", APIKeyEnv: "PDFACTIVITY_TEST_KEY"}); err == nil {
		t.Fatal("expected error for named but unset key env")
	}
}

func TestClassifyCancelledContext(t *testing.T) {
	var requests int
	srv := labelServer(t, &requests)
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Classify(ctx, []string{"a"}); err == nil {
		t.Fatal("expected context error")
	}
}
