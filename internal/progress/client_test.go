package progress

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSubmitAttempt(t *testing.T) {
	var gotPath, gotAuth string
	var gotAttempt Attempt
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotAttempt); err != nil {
			t.Errorf("decode attempt: %v", err)
		}
		_ = json.NewEncoder(w).Encode(Aggregate{
			TotalLessonsCompleted: 12,
			TotalTypingSeconds:    4000,
			AverageWPM:            52,
			AverageAccuracy:       93,
			Level:                 4,
			XP:                    1100,
		})
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "secret")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	agg, err := client.SubmitAttempt(context.Background(), "alice", Attempt{LessonID: 3, WPM: 48, Accuracy: 92, DurationSeconds: 75})
	if err != nil {
		t.Fatalf("submit attempt: %v", err)
	}
	if gotPath != "/users/alice/attempts" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotAttempt.LessonID != 3 || gotAttempt.WPM != 48 {
		t.Fatalf("unexpected attempt payload: %+v", gotAttempt)
	}
	if agg.TotalLessonsCompleted != 12 || agg.AverageWPM != 52 {
		t.Fatalf("unexpected aggregate: %+v", agg)
	}
}

func TestSubmitAttemptRetriesTransientFailures(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(Aggregate{TotalLessonsCompleted: 1})
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	agg, err := client.SubmitAttempt(context.Background(), "bob", Attempt{LessonID: 1})
	if err != nil {
		t.Fatalf("submit attempt: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
	if agg.TotalLessonsCompleted != 1 {
		t.Fatalf("unexpected aggregate: %+v", agg)
	}
}

func TestSubmitAttemptDoesNotRetryClientErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "bad")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.SubmitAttempt(context.Background(), "bob", Attempt{}); err == nil {
		t.Fatalf("expected error for 401 response")
	}
	if calls != 1 {
		t.Fatalf("client errors must not retry, got %d calls", calls)
	}
}

func TestNewClientValidatesURL(t *testing.T) {
	if _, err := NewClient("", ""); err == nil {
		t.Fatalf("expected error for empty url")
	}
}
