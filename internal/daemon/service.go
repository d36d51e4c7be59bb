// Package daemon provides the long-running background projection poller.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"horaboard/internal/api"
	"horaboard/internal/model"
	"horaboard/internal/store"
)

// Config controls the daemon runtime behavior.
type Config struct {
	ServerURL    string
	CachePath    string
	UseCache     bool
	Interval     time.Duration
	Addr         string
	EventsBuffer int
}

// Snapshot is a compact projection state for status/event payloads.
type Snapshot struct {
	At              time.Time `json:"at"`
	PeriodStart     string    `json:"period_start"`
	PeriodEnd       string    `json:"period_end"`
	WorkedHours     float64   `json:"worked_hours"`
	AdjustedHours   float64   `json:"adjusted_hours"`
	Balance         float64   `json:"balance"`
	AvailableHours  float64   `json:"available_hours"`
	PercentElapsed  float64   `json:"percent_elapsed"`
	GoalStatus      string    `json:"goal_status,omitempty"`
	ProjectedAtEnd  float64   `json:"projected_balance_at_end"`
	HasGoal         bool      `json:"has_goal"`
	WeekCount       int       `json:"week_count"`
	PeriodAvailable bool      `json:"period_available"`
}

// Delta captures snapshot deltas between polls.
type Delta struct {
	WorkedHours   float64 `json:"worked_hours"`
	AdjustedHours float64 `json:"adjusted_hours"`
	Balance       float64 `json:"balance"`
}

func (d Delta) isZero() bool {
	return d.WorkedHours == 0 &&
		d.AdjustedHours == 0 &&
		d.Balance == 0
}

// Event is emitted whenever the projection snapshot updates.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	ServerURL       string    `json:"server_url"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg    Config
	client *api.Client

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service with the provided config.
func New(cfg Config) *Service {
	if cfg.Interval < 5*time.Second {
		cfg.Interval = 60 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8791"
	}

	return &Service{
		cfg:       cfg,
		client:    api.NewClient(cfg.ServerURL),
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("daemon: invalid server url %q", s.cfg.ServerURL)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce(ctx)
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) pollOnce(ctx context.Context) {
	now := time.Now()
	proj, err := s.client.FetchProjection(ctx, "")
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = now
		s.pollCount++
		s.mu.Unlock()
		log.Printf("horaboard daemon poll error: %v", err)
		return
	}

	if s.cfg.UseCache && proj != nil {
		s.mirrorToCache(*proj, now)
	}

	snap := snapshotFromProjection(proj, now)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      "snapshot",
			Timestamp: now,
			Snapshot:  snap,
			Delta:     Delta{},
		}
		publish = true
	} else {
		delta := diffSnapshots(prev, snap)
		if !delta.isZero() {
			s.nextEventID++
			ev = Event{
				ID:        s.nextEventID,
				Type:      "hours_delta",
				Timestamp: now,
				Snapshot:  snap,
				Delta:     delta,
			}
			publish = true
		}
	}
	s.mu.Unlock()

	if publish {
		s.publishEvent(ev)
	}
}

func (s *Service) mirrorToCache(p model.Projection, at time.Time) {
	path := s.cfg.CachePath
	if path == "" {
		path = store.DefaultPath()
	}
	cache, err := store.Open(path)
	if err != nil {
		log.Printf("horaboard daemon cache open: %v", err)
		return
	}
	defer func() { _ = cache.Close() }()
	if err := cache.SaveProjection(p, at); err != nil {
		log.Printf("horaboard daemon cache save: %v", err)
	}
}

func snapshotFromProjection(p *model.Projection, at time.Time) Snapshot {
	snap := Snapshot{At: at}
	if p == nil {
		return snap
	}
	snap.PeriodAvailable = true
	snap.PeriodStart = p.Period.Start.String()
	snap.PeriodEnd = p.Period.End.String()
	snap.WorkedHours = p.Totals.TotalWorked
	snap.AdjustedHours = p.Totals.TotalAdjusted
	snap.Balance = p.Totals.Balance
	snap.AvailableHours = p.Totals.AvailableHoursInPeriod
	snap.PercentElapsed = p.Progress.PercentageElapsed
	snap.WeekCount = len(p.Weeks)
	if p.Goal != nil {
		snap.HasGoal = true
		snap.GoalStatus = string(p.Goal.Status)
		snap.ProjectedAtEnd = p.Goal.ProjectedBalanceAtEnd
	}
	return snap
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		WorkedHours:   curr.WorkedHours - prev.WorkedHours,
		AdjustedHours: curr.AdjustedHours - prev.AdjustedHours,
		Balance:       curr.Balance - prev.Balance,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		ServerURL:       s.cfg.ServerURL,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      "snapshot",
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
