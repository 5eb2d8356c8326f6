package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

var testLabels = []string{"toxic", "severe_toxic", "obscene", "threat", "insult", "identity_hate"}

func TestHTTPClassifySuccess(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body["text"] != "hello" {
			t.Errorf("text = %q, want hello", body["text"])
		}

		json.NewEncoder(w).Encode(map[string]float64{
			"toxic":  0.8,
			"insult": 0.3,
		})
	}))
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL, "secret", time.Second, testLabels)
	defer c.Close()

	scores, err := c.Classify(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if scores["toxic"] != 0.8 || scores["insult"] != 0.3 {
		t.Fatalf("scores = %v", scores)
	}
	// Labels the service omitted default to 0 instead of failing the call.
	if len(scores) != len(testLabels) {
		t.Fatalf("scores has %d labels, want %d", len(scores), len(testLabels))
	}
	if v, ok := scores["threat"]; !ok || v != 0 {
		t.Fatalf("missing label threat = %v (present %v), want 0", v, ok)
	}
}

func TestHTTPClassifyProtocolErrorNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte("this is not json"))
	}))
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL, "", time.Second, testLabels)
	defer c.Close()

	_, err := c.Classify(context.Background(), "hello")
	if !errors.Is(err, ErrProtocol) {
		t.Fatalf("err = %v, want ErrProtocol", err)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("calls = %d, want 1: malformed responses must not be retried", n)
	}
}

func TestHTTPClassifyRetriesOnceOnServerError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(map[string]float64{"toxic": 0.2})
	}))
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL, "", time.Second, testLabels)
	defer c.Close()

	scores, err := c.Classify(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Classify after one retry: %v", err)
	}
	if scores["toxic"] != 0.2 {
		t.Fatalf("scores = %v", scores)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("calls = %d, want 2", n)
	}
}

func TestHTTPClassifyGivesUpAfterSingleRetry(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL, "", time.Second, testLabels)
	defer c.Close()

	_, err := c.Classify(context.Background(), "hello")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("calls = %d, want exactly 2 (one retry)", n)
	}
}

func TestHTTPClassifyClientErrorIsProtocolError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"unsupported language"}`))
	}))
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL, "", time.Second, testLabels)
	defer c.Close()

	if _, err := c.Classify(context.Background(), "hello"); !errors.Is(err, ErrProtocol) {
		t.Fatalf("err = %v, want ErrProtocol", err)
	}
}

func TestHTTPClassifyTimesOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		json.NewEncoder(w).Encode(map[string]float64{})
	}))
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL, "", 30*time.Millisecond, testLabels)
	defer c.Close()

	start := time.Now()
	_, err := c.Classify(context.Background(), "hello")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable on timeout", err)
	}
	// Two bounded attempts plus backoff, never the server's full delay per
	// attempt without a ceiling.
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("call was not time-bounded: %v", elapsed)
	}
}
