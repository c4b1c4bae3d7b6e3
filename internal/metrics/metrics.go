package metrics

import (
	"sync"
	"time"
)

type leagueStats struct {
	fetches        int
	errors         int
	recordsDropped int
	lastLatency    time.Duration
}

// Recorder captures lightweight, in-memory metrics about fetch cycles and
// rendering. It mirrors everything into OpenTelemetry instruments when
// telemetry is enabled, and stays usable as a plain counter bag when not.
type Recorder struct {
	mu     sync.Mutex
	stats  map[string]*leagueStats
	cycles int
	frames int
	otel   *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*leagueStats),
		otel:  otel,
	}
}

// RecordFetch counts one upstream fetch for a league and its outcome.
func (r *Recorder) RecordFetch(league string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	stats := r.ensureStats(league)
	r.mu.Lock()
	stats.fetches++
	stats.lastLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordFetch(league, duration, err)
	}
}

// RecordDroppedRecord counts a malformed game record skipped during
// extraction.
func (r *Recorder) RecordDroppedRecord(league string) {
	if r == nil {
		return
	}
	stats := r.ensureStats(league)
	r.mu.Lock()
	stats.recordsDropped++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordDroppedRecord(league)
	}
}

// RecordPollCycle counts one full poll cycle across all leagues.
func (r *Recorder) RecordPollCycle(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.cycles++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordPollCycle(duration, err)
	}
}

// RecordFrame counts one rendered frame.
func (r *Recorder) RecordFrame(duration time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.frames++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordFrame(duration)
	}
}

// Snapshot is a copy of the counters for one league.
type Snapshot struct {
	Fetches        int
	Errors         int
	RecordsDropped int
	LastLatency    time.Duration
}

// LeagueSnapshot returns a copy of the current stats for a league.
func (r *Recorder) LeagueSnapshot(league string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stats, ok := r.stats[league]
	if !ok {
		return Snapshot{}
	}
	return Snapshot{
		Fetches:        stats.fetches,
		Errors:         stats.errors,
		RecordsDropped: stats.recordsDropped,
		LastLatency:    stats.lastLatency,
	}
}

// PollCycles returns the number of completed poll cycles.
func (r *Recorder) PollCycles() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cycles
}

// Frames returns the number of rendered frames.
func (r *Recorder) Frames() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func (r *Recorder) ensureStats(league string) *leagueStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats, ok := r.stats[league]
	if !ok {
		stats = &leagueStats{}
		r.stats[league] = stats
	}
	return stats
}
