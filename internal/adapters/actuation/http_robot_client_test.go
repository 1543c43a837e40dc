package actuation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"routine-planner-service/internal/domain"
)

func TestRobotClientMove(t *testing.T) {
	var got moveRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robot/move" {
			t.Errorf("path = %s, want /robot/move", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := NewRobotClient(srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	samples := []domain.MotionSample{
		{Index: 0, Position: domain.Point{X: 10, Y: 20}, TimeS: 0.5, StepS: 0.5},
		{Index: 1, Position: domain.Point{X: 20, Y: 40}, TimeS: 1.0, StepS: 0.5},
	}
	if err := client.Move(context.Background(), samples); err != nil {
		t.Fatalf("move: %v", err)
	}

	if len(got.Waypoints) != 2 {
		t.Fatalf("got %d waypoints, want 2", len(got.Waypoints))
	}
	if got.Waypoints[1] != (waypointPayload{ID: 1, X: 20, Y: 40, T: 1.0, Dt: 0.5}) {
		t.Fatalf("waypoint[1] = %+v", got.Waypoints[1])
	}
}

func TestRobotClientTurn(t *testing.T) {
	var got turnRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robot/turn" {
			t.Errorf("path = %s, want /robot/turn", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
	}))
	defer srv.Close()

	client, err := NewRobotClient(srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	samples := []domain.TurnSample{{Index: 0, AngleDeg: -45.5, TimeS: 3, StepS: 3}}
	if err := client.Turn(context.Background(), samples); err != nil {
		t.Fatalf("turn: %v", err)
	}

	if len(got.TurnRefs) != 1 || got.TurnRefs[0].Yaw != -45.5 {
		t.Fatalf("turn refs = %+v", got.TurnRefs)
	}
}

func TestRobotClientRetriesTransientFailures(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := NewRobotClient(srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if err := client.Move(context.Background(), nil); err != nil {
		t.Fatalf("move should succeed after retries: %v", err)
	}
	if n := attempts.Load(); n != 3 {
		t.Fatalf("attempts = %d, want 3", n)
	}
}

func TestRobotClientDoesNotRetryClientErrors(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		http.Error(w, "bad profile", http.StatusBadRequest)
	}))
	defer srv.Close()

	client, err := NewRobotClient(srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if err := client.Move(context.Background(), nil); err == nil {
		t.Fatal("expected error for a 400 response")
	}
	if n := attempts.Load(); n != 1 {
		t.Fatalf("attempts = %d, want 1 (no retry on 4xx)", n)
	}
}

func TestRobotClientRespectsContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, err := NewRobotClient(srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	if err := client.Move(ctx, nil); err == nil {
		t.Fatal("expected error when context expires during backoff")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("call did not respect context deadline, took %v", elapsed)
	}
}
