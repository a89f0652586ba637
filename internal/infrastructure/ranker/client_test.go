package ranker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRankJobs_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/recommendations/jobs" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.WorkerProfile.Skills == "" {
			t.Errorf("skills missing from payload")
		}
		_ = json.NewEncoder(w).Encode(Response{RankedJobIDs: []string{"a", "b"}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil)
	resp, err := c.RankJobs(context.Background(), Request{
		WorkerProfile: WorkerProfilePayload{Skills: "plumbing"},
		JobPostings:   []JobPayload{{ID: "a", RequiredSkills: "plumbing"}},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(resp.RankedJobIDs) != 2 {
		t.Fatalf("expected 2 ids, got %d", len(resp.RankedJobIDs))
	}
}

func TestRankJobs_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil)
	_, err := c.RankJobs(context.Background(), Request{})
	if err == nil {
		t.Fatalf("expected error on 503")
	}
	if !strings.Contains(err.Error(), "status=503") {
		t.Fatalf("error should carry the status code, got %v", err)
	}
}

func TestRankJobs_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil)
	if _, err := c.RankJobs(context.Background(), Request{}); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestRankJobs_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(Response{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 20*time.Millisecond, nil)
	if _, err := c.RankJobs(context.Background(), Request{}); err == nil {
		t.Fatalf("expected timeout error")
	}
}

func TestNewClient_EmptyBaseURL(t *testing.T) {
	if c := NewClient("  ", time.Second, nil); c != nil {
		t.Fatalf("empty base URL must yield a nil client")
	}
}
