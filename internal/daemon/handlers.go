package daemon

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/theirongolddev/budgetburn/internal/engine"
	"github.com/theirongolddev/budgetburn/internal/model"
	"github.com/theirongolddev/budgetburn/internal/pipeline"
)

type apiError struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, apiError{Error: err.Error()})
}

// load reads the current snapshot, writing a 500 on failure.
func (s *Service) load(w http.ResponseWriter) (model.Snapshot, bool) {
	snap, err := s.src.LoadSnapshot()
	if err != nil {
		s.log.Error("loading snapshot", "error", err)
		writeError(w, http.StatusInternalServerError, fmt.Errorf("loading state: %w", err))
		return model.Snapshot{}, false
	}
	return snap, true
}

func (s *Service) monthParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	month := r.URL.Query().Get("month")
	if month == "" {
		return s.month(), true
	}
	if _, err := pipeline.ParseMonth(month); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return "", false
	}
	return month, true
}

func extraParam(w http.ResponseWriter, r *http.Request, fallback float64) (float64, bool) {
	raw := r.URL.Query().Get("extra")
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || engine.Finite(v) != v {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid extra %q: want a non-negative number", raw))
		return 0, false
	}
	return v, true
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleIncome(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.load(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Profile   model.IncomeProfile   `json:"profile"`
		Breakdown model.IncomeBreakdown `json:"breakdown"`
	}{snap.Income, engine.NormalizeIncome(snap.Income)})
}

func (s *Service) handleBudget(w http.ResponseWriter, r *http.Request) {
	month, ok := s.monthParam(w, r)
	if !ok {
		return
	}
	snap, ok := s.load(w)
	if !ok {
		return
	}
	report := engine.AnalyzeBudget(snap.Expenses, pipeline.FilterByMonth(snap.Transactions, month))
	writeJSON(w, http.StatusOK, struct {
		Month string `json:"month"`
		model.BudgetReport
	}{month, report})
}

func (s *Service) handlePayoff(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.load(w)
	if !ok {
		return
	}
	strategy := snap.Payoff.Strategy
	if raw := r.URL.Query().Get("strategy"); raw != "" {
		parsed, err := pipeline.ParseStrategy(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		strategy = parsed
	}
	extra, ok := extraParam(w, r, snap.Payoff.ExtraPayment)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, engine.SimulatePayoff(snap.Debts, strategy, extra))
}

func (s *Service) handleCompare(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.load(w)
	if !ok {
		return
	}
	extra, ok := extraParam(w, r, snap.Payoff.ExtraPayment)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, engine.ComparePayoff(snap.Debts, extra))
}

func (s *Service) handleOverview(w http.ResponseWriter, r *http.Request) {
	month, ok := s.monthParam(w, r)
	if !ok {
		return
	}
	snap, ok := s.load(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, pipeline.Overview(snap, month))
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

	// Send current summary immediately.
	current := Event{
		Type:      "snapshot",
		Timestamp: s.cfg.Now(),
		Summary:   s.snapshotStatus().Summary,
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

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps the event stream working through the logging wrapper.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (s *Service) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		level := slog.LevelInfo
		if rec.status >= 500 {
			level = slog.LevelError
		} else if rec.status >= 400 {
			level = slog.LevelWarn
		}
		s.log.Log(r.Context(), level, "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
