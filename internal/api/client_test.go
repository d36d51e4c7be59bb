package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"horaboard/internal/model"
)

// stubBackend is a minimal in-memory projection backend for client tests.
type stubBackend struct {
	mu      sync.Mutex
	nextID  int64
	entries []model.HourEntry
	config  *model.SystemConfig

	projectionBody string // raw body for the projection endpoint; "" means 204
}

func (s *stubBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/dashboard/projection", func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		body := s.projectionBody
		s.mu.Unlock()
		if body == "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})

	mux.HandleFunc("POST /api/v1/entries", func(w http.ResponseWriter, r *http.Request) {
		var in model.NewHourEntry
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		date, err := model.ParseDate(in.EntryDate)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		s.nextID++
		created := model.HourEntry{
			ID:          s.nextID,
			EntryDate:   date,
			Hours:       in.Hours,
			Description: in.Description,
		}
		s.entries = append(s.entries, created)
		s.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(created)
	})

	mux.HandleFunc("GET /api/v1/entries", func(w http.ResponseWriter, r *http.Request) {
		start, end := r.URL.Query().Get("start"), r.URL.Query().Get("end")
		s.mu.Lock()
		var out []model.HourEntry
		for _, e := range s.entries {
			d := e.EntryDate.String()
			if (start == "" || d >= start) && (end == "" || d <= end) {
				out = append(out, e)
			}
		}
		s.mu.Unlock()
		_ = json.NewEncoder(w).Encode(out)
	})

	mux.HandleFunc("GET /api/v1/entries/paged", func(w http.ResponseWriter, r *http.Request) {
		size, _ := strconv.Atoi(r.URL.Query().Get("size"))
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if size <= 0 {
			size = 10
		}
		s.mu.Lock()
		total := len(s.entries)
		lo, hi := page*size, (page+1)*size
		if lo > total {
			lo = total
		}
		if hi > total {
			hi = total
		}
		pg := model.EntryPage{
			Content:       s.entries[lo:hi],
			TotalElements: int64(total),
			TotalPages:    (total + size - 1) / size,
			Number:        page,
			Size:          size,
		}
		s.mu.Unlock()
		_ = json.NewEncoder(w).Encode(pg)
	})

	mux.HandleFunc("DELETE /api/v1/entries/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, e := range s.entries {
			if e.ID == id {
				s.entries = append(s.entries[:i], s.entries[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	})

	mux.HandleFunc("GET /api/v1/system-config", func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		cfg := s.config
		s.mu.Unlock()
		if cfg == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_ = json.NewEncoder(w).Encode(cfg)
	})

	mux.HandleFunc("PUT /api/v1/system-config", func(w http.ResponseWriter, r *http.Request) {
		var cfg model.SystemConfig
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		s.config = &cfg
		s.mu.Unlock()
		_ = json.NewEncoder(w).Encode(cfg)
	})

	return mux
}

func newTestClient(t *testing.T, backend *stubBackend) *Client {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL)
	if c == nil {
		t.Fatalf("NewClient(%q) returned nil", srv.URL)
	}
	return c
}

func TestNewClientRejectsBadURLs(t *testing.T) {
	for _, u := range []string{"", "   ", "ftp://example.com", "not a url\x7f"} {
		if c := NewClient(u); c != nil {
			t.Fatalf("NewClient(%q) = %v, want nil", u, c)
		}
	}
	if c := NewClient("http://localhost:8080/"); c == nil {
		t.Fatal("NewClient rejected a valid URL")
	}
}

func TestFetchProjectionEmptyStateIsNotAnError(t *testing.T) {
	c := newTestClient(t, &stubBackend{})

	p, err := c.FetchProjection(context.Background(), "")
	if err != nil {
		t.Fatalf("FetchProjection on 204: %v", err)
	}
	if p != nil {
		t.Fatalf("FetchProjection on 204 = %+v, want nil", p)
	}
}

func TestFetchProjectionNullBodyIsEmptyState(t *testing.T) {
	c := newTestClient(t, &stubBackend{projectionBody: "null"})

	p, err := c.FetchProjection(context.Background(), "2024-03-15")
	if err != nil {
		t.Fatalf("FetchProjection on null body: %v", err)
	}
	if p != nil {
		t.Fatalf("FetchProjection on null body = %+v, want nil", p)
	}
}

func TestFetchProjectionDecodesSnapshot(t *testing.T) {
	body := `{
		"period": {"start": "2024-03-01", "end": "2024-03-31", "totalDays": 31},
		"totals": {"totalWorked": 50, "totalAdjusted": 10, "balance": -34.08,
			"fullMonthMaxHours": 744, "availableHoursInPeriod": 94.08},
		"progress": {"daysElapsed": 12, "totalDays": 31, "percentageElapsed": 0.387},
		"weeks": [{"weekStart": "2024-03-04", "weekEnd": "2024-03-10",
			"totalWorked": 30, "totalAdjusted": 0, "balance": -10,
			"workingDaysCount": 5, "hoursAvailable": 40, "baseWeeklyHours": 40,
			"totalSegmentHours": 168,
			"days": [{"date": "2024-03-04", "weekday": "Mon", "dayOfMonth": 4, "past": true}]}],
		"goalProjection": {"currentRatePerDay": 4.2, "projectedBalanceAtEnd": -3.5,
			"targetHours": 160, "goalStatus": "EM_RISCO"}
	}`
	c := newTestClient(t, &stubBackend{projectionBody: body})

	p, err := c.FetchProjection(context.Background(), "")
	if err != nil {
		t.Fatalf("FetchProjection: %v", err)
	}
	if p == nil {
		t.Fatal("FetchProjection returned nil for a populated body")
	}
	if p.Period.Start.String() != "2024-03-01" || p.Period.TotalDays != 31 {
		t.Fatalf("period decoded wrong: %+v", p.Period)
	}
	if len(p.Weeks) != 1 || p.Weeks[0].TotalSegmentHours != 168 {
		t.Fatalf("weeks decoded wrong: %+v", p.Weeks)
	}
	if len(p.Weeks[0].Days) != 1 || !p.Weeks[0].Days[0].Past {
		t.Fatalf("days decoded wrong: %+v", p.Weeks[0].Days)
	}
	if p.Goal == nil || p.Goal.Status != model.GoalAtRisk {
		t.Fatalf("goal decoded wrong: %+v", p.Goal)
	}
	if p.Goal.Status.Label() != "at risk" {
		t.Fatalf("goal label = %q, want %q", p.Goal.Status.Label(), "at risk")
	}
}

func TestCreateThenListRoundTrip(t *testing.T) {
	c := newTestClient(t, &stubBackend{})
	ctx := context.Background()

	created, err := c.CreateEntry(ctx, model.NewHourEntry{
		EntryDate:   "2024-03-01",
		Hours:       8,
		Description: "sprint work",
	})
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("created entry has no id")
	}

	listed, err := c.ListEntries(ctx, "2024-03-01", "2024-03-01")
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("listed %d entries, want 1", len(listed))
	}
	got := listed[0]
	if got.ID != created.ID || got.EntryDate.String() != "2024-03-01" ||
		got.Hours != 8 || got.Description != "sprint work" {
		t.Fatalf("round trip changed the entry: %+v", got)
	}
}

func TestCreateEntryValidatesBeforeSubmitting(t *testing.T) {
	// No server at all: validation must fail before any request is made.
	c := NewClient("http://127.0.0.1:1")

	cases := []model.NewHourEntry{
		{EntryDate: "", Hours: 8},
		{EntryDate: "03/01/2024", Hours: 8},
		{EntryDate: "2024-03-01", Hours: 0},
		{EntryDate: "2024-03-01", Hours: -2},
		{EntryDate: "2024-03-01", Hours: 7.25},
	}
	for _, in := range cases {
		if _, err := c.CreateEntry(context.Background(), in); err == nil {
			t.Fatalf("CreateEntry(%+v) succeeded, want validation error", in)
		} else if errors.Is(err, ErrUnavailable) {
			t.Fatalf("CreateEntry(%+v) hit the network before validating", in)
		}
	}

	// Half-hour steps are accepted shapes (the request itself may still fail).
	if err := (model.NewHourEntry{EntryDate: "2024-03-01", Hours: 7.5}).Validate(); err != nil {
		t.Fatalf("Validate(7.5h) = %v, want nil", err)
	}
}

func TestListEntriesRejectsInvertedRange(t *testing.T) {
	c := newTestClient(t, &stubBackend{})
	if _, err := c.ListEntries(context.Background(), "2024-03-10", "2024-03-01"); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("ListEntries inverted range error = %v, want ErrInvalidRange", err)
	}
}

func TestListEntriesPaged(t *testing.T) {
	backend := &stubBackend{}
	c := newTestClient(t, backend)
	ctx := context.Background()

	for day := 1; day <= 5; day++ {
		date := "2024-03-0" + strconv.Itoa(day)
		if _, err := c.CreateEntry(ctx, model.NewHourEntry{EntryDate: date, Hours: 4}); err != nil {
			t.Fatalf("CreateEntry day %d: %v", day, err)
		}
	}

	pg, err := c.ListEntriesPaged(ctx, "2024-03-01", "2024-03-31", 1, 2)
	if err != nil {
		t.Fatalf("ListEntriesPaged: %v", err)
	}
	if pg.TotalElements != 5 || pg.TotalPages != 3 || pg.Number != 1 || pg.Size != 2 {
		t.Fatalf("page envelope = %+v", pg)
	}
	if len(pg.Content) != 2 {
		t.Fatalf("page content length = %d, want 2", len(pg.Content))
	}
}

func TestDeleteEntry(t *testing.T) {
	c := newTestClient(t, &stubBackend{})
	ctx := context.Background()

	created, err := c.CreateEntry(ctx, model.NewHourEntry{EntryDate: "2024-03-01", Hours: 8})
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	if err := c.DeleteEntry(ctx, created.ID); err != nil {
		t.Fatalf("DeleteEntry: %v", err)
	}

	// Deleting again surfaces as a generic status error, same as any failure.
	err = c.DeleteEntry(ctx, created.ID)
	if err == nil {
		t.Fatal("DeleteEntry of removed id succeeded, want error")
	}
	if !strings.Contains(err.Error(), "status 404") {
		t.Fatalf("DeleteEntry error = %v, want generic status error", err)
	}
}

func TestSystemConfigRoundTrip(t *testing.T) {
	c := newTestClient(t, &stubBackend{})
	ctx := context.Background()

	cfg, err := c.FetchSystemConfig(ctx)
	if err != nil {
		t.Fatalf("FetchSystemConfig empty: %v", err)
	}
	if cfg != nil {
		t.Fatalf("FetchSystemConfig empty = %+v, want nil", cfg)
	}

	saved, err := c.SaveSystemConfig(ctx, model.SystemConfig{
		ClosureStartDay:     26,
		ClosureEndDay:       25,
		ExpectedWeeklyHours: 40,
	})
	if err != nil {
		t.Fatalf("SaveSystemConfig: %v", err)
	}
	if saved.ExpectedWeeklyHours != 40 {
		t.Fatalf("saved config = %+v", saved)
	}

	cfg, err = c.FetchSystemConfig(ctx)
	if err != nil {
		t.Fatalf("FetchSystemConfig after save: %v", err)
	}
	if cfg == nil || cfg.ClosureStartDay != 26 || cfg.ClosureEndDay != 25 {
		t.Fatalf("fetched config = %+v", cfg)
	}
}

func TestSaveSystemConfigValidates(t *testing.T) {
	c := newTestClient(t, &stubBackend{})
	bad := []model.SystemConfig{
		{ClosureStartDay: 0, ClosureEndDay: 25, ExpectedWeeklyHours: 40},
		{ClosureStartDay: 1, ClosureEndDay: 32, ExpectedWeeklyHours: 40},
		{ClosureStartDay: 1, ClosureEndDay: 28, ExpectedWeeklyHours: 200},
	}
	for _, cfg := range bad {
		if _, err := c.SaveSystemConfig(context.Background(), cfg); err == nil {
			t.Fatalf("SaveSystemConfig(%+v) succeeded, want validation error", cfg)
		}
	}
}

func TestUnreachableBackendIsErrUnavailable(t *testing.T) {
	// Port 1 is never listening.
	c := NewClient("http://127.0.0.1:1")
	_, err := c.FetchProjection(context.Background(), "")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable", err)
	}
}
