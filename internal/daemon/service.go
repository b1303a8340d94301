// Package daemon serves planner analyses over a local JSON API and streams
// overview changes to subscribers.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/theirongolddev/budgetburn/internal/engine"
	"github.com/theirongolddev/budgetburn/internal/model"
	"github.com/theirongolddev/budgetburn/internal/pipeline"
)

// SnapshotSource provides the current planner state. It is read on every
// request and every poll.
type SnapshotSource interface {
	LoadSnapshot() (model.Snapshot, error)
}

// Config controls the daemon runtime behavior.
type Config struct {
	Addr         string
	Interval     time.Duration
	EventsBuffer int
	Logger       *slog.Logger
	Now          func() time.Time
}

// Summary is a compact overview state for status and event payloads.
type Summary struct {
	At            time.Time `json:"at"`
	Month         string    `json:"month"`
	MonthlyNet    float64   `json:"monthly_net"`
	TotalPlanned  float64   `json:"total_planned"`
	TotalActual   float64   `json:"total_actual"`
	CashFlow      float64   `json:"cash_flow"`
	Alerts        int       `json:"alerts"`
	DebtBalance   float64   `json:"debt_balance"`
	PayoffMonths  *int      `json:"payoff_months"`
	PayoffOutcome string    `json:"payoff_outcome"`
	TotalInterest float64   `json:"total_interest"`
	Transactions  int       `json:"transactions"`
}

// Delta captures summary changes between polls.
type Delta struct {
	MonthlyNet   float64 `json:"monthly_net"`
	TotalPlanned float64 `json:"total_planned"`
	TotalActual  float64 `json:"total_actual"`
	Alerts       int     `json:"alerts"`
	DebtBalance  float64 `json:"debt_balance"`
	PayoffMonths int     `json:"payoff_months"`
	Transactions int     `json:"transactions"`
}

func (d Delta) isZero() bool {
	return d.MonthlyNet == 0 &&
		d.TotalPlanned == 0 &&
		d.TotalActual == 0 &&
		d.Alerts == 0 &&
		d.DebtBalance == 0 &&
		d.PayoffMonths == 0 &&
		d.Transactions == 0
}

// Event is emitted whenever the overview summary changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Summary   Summary   `json:"summary"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	Summary         Summary   `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg Config
	src SnapshotSource
	log *slog.Logger

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSummary  bool
	summary     Summary
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service reading state from src.
func New(cfg Config, src SnapshotSource) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 10 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8788"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Service{
		cfg:       cfg,
		src:       src,
		log:       cfg.Logger.With("component", "daemon"),
		startedAt: cfg.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler returns the HTTP routes served by Run.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /v1/status", s.handleStatus)
	mux.HandleFunc("GET /v1/events", s.handleEvents)
	mux.HandleFunc("GET /v1/stream", s.handleStream)
	mux.HandleFunc("GET /v1/income", s.handleIncome)
	mux.HandleFunc("GET /v1/budget", s.handleBudget)
	mux.HandleFunc("GET /v1/payoff", s.handlePayoff)
	mux.HandleFunc("GET /v1/payoff/compare", s.handleCompare)
	mux.HandleFunc("GET /v1/overview", s.handleOverview)
	return s.logRequests(mux)
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Info("listening", "addr", s.cfg.Addr, "interval", s.cfg.Interval)

	// Seed initial summary so status is useful immediately.
	s.pollOnce()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce()
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) month() string {
	return pipeline.CurrentMonth(s.cfg.Now())
}

func (s *Service) pollOnce() {
	snap, err := s.src.LoadSnapshot()
	now := s.cfg.Now()
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = now
		s.pollCount++
		s.mu.Unlock()
		s.log.Error("poll failed", "error", err)
		return
	}

	sum := summarize(snap, pipeline.Overview(snap, s.month()), now)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.summary
	prevExists := s.hasSummary

	s.hasSummary = true
	s.summary = sum
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      "snapshot",
			Timestamp: now,
			Summary:   sum,
		}
		publish = true
	} else {
		delta := diffSummaries(prev, sum)
		if !delta.isZero() || prev.Month != sum.Month {
			s.nextEventID++
			ev = Event{
				ID:        s.nextEventID,
				Type:      "overview_delta",
				Timestamp: now,
				Summary:   sum,
				Delta:     delta,
			}
			publish = true
		}
	}
	s.mu.Unlock()

	if publish {
		s.log.Debug("published event", "id", ev.ID, "type", ev.Type)
		s.publishEvent(ev)
	}
}

func summarize(snap model.Snapshot, ov model.Overview, at time.Time) Summary {
	var balance float64
	for _, d := range snap.Debts {
		balance += d.Balance
	}
	return Summary{
		At:            at,
		Month:         ov.Month,
		MonthlyNet:    ov.Income.MonthlyNet,
		TotalPlanned:  ov.Budget.TotalPlanned,
		TotalActual:   ov.Budget.TotalActual,
		CashFlow:      ov.CashFlow,
		Alerts:        len(ov.Budget.Alerts),
		PayoffMonths:  ov.Payoff.Months,
		PayoffOutcome: string(ov.Payoff.Outcome),
		TotalInterest: ov.Payoff.TotalInterest,
		DebtBalance:   engine.Round2(balance),
		Transactions:  len(snap.Transactions),
	}
}

func monthsOrZero(m *int) int {
	if m == nil {
		return 0
	}
	return *m
}

func diffSummaries(prev, curr Summary) Delta {
	return Delta{
		MonthlyNet:   curr.MonthlyNet - prev.MonthlyNet,
		TotalPlanned: curr.TotalPlanned - prev.TotalPlanned,
		TotalActual:  curr.TotalActual - prev.TotalActual,
		Alerts:       curr.Alerts - prev.Alerts,
		DebtBalance:  curr.DebtBalance - prev.DebtBalance,
		PayoffMonths: monthsOrZero(curr.PayoffMonths) - monthsOrZero(prev.PayoffMonths),
		Transactions: curr.Transactions - prev.Transactions,
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
		Summary:         s.summary,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}
