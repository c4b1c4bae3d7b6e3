package metrics

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRecorderCounters(t *testing.T) {
	r := NewRecorder()

	r.RecordFetch("nba", 120*time.Millisecond, nil)
	r.RecordFetch("nba", 80*time.Millisecond, errors.New("boom"))
	r.RecordDroppedRecord("nba")
	r.RecordPollCycle(time.Second, nil)
	r.RecordFrame(5 * time.Millisecond)
	r.RecordFrame(5 * time.Millisecond)

	snap := r.LeagueSnapshot("nba")
	if snap.Fetches != 2 {
		t.Fatalf("expected 2 fetches, got %d", snap.Fetches)
	}
	if snap.Errors != 1 {
		t.Fatalf("expected 1 error, got %d", snap.Errors)
	}
	if snap.RecordsDropped != 1 {
		t.Fatalf("expected 1 dropped record, got %d", snap.RecordsDropped)
	}
	if snap.LastLatency != 80*time.Millisecond {
		t.Fatalf("expected last latency 80ms, got %s", snap.LastLatency)
	}

	if got := r.PollCycles(); got != 1 {
		t.Fatalf("expected 1 poll cycle, got %d", got)
	}
	if got := r.Frames(); got != 2 {
		t.Fatalf("expected 2 frames, got %d", got)
	}
}

func TestRecorderUnknownLeague(t *testing.T) {
	r := NewRecorder()
	if snap := r.LeagueSnapshot("wnba"); snap != (Snapshot{}) {
		t.Fatalf("expected zero snapshot, got %+v", snap)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var r *Recorder
	r.RecordFetch("nba", time.Millisecond, nil)
	r.RecordDroppedRecord("nba")
	r.RecordPollCycle(time.Millisecond, nil)
	r.RecordFrame(time.Millisecond)
	if r.PollCycles() != 0 || r.Frames() != 0 {
		t.Fatal("expected zero counters on nil recorder")
	}
}

func TestSetupDisabled(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{Enabled: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec == nil {
		t.Fatal("expected a usable recorder when telemetry is disabled")
	}
	if handler != nil {
		t.Fatal("expected no HTTP handler when telemetry is disabled")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected no-op shutdown, got %v", err)
	}
}

func TestSetupEnabled(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{Enabled: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			t.Fatalf("shutdown: %v", err)
		}
	}()
	if handler == nil {
		t.Fatal("expected a Prometheus handler")
	}
	rec.RecordFetch("nba", time.Millisecond, nil)
	if got := rec.LeagueSnapshot("nba").Fetches; got != 1 {
		t.Fatalf("expected mirrored recorder to still count, got %d", got)
	}
}
