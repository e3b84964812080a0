// Package api serves the computed result table to downstream reporting
// consumers.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mkersting/aftermath/internal/api/response"
	"github.com/mkersting/aftermath/internal/core"
	"github.com/mkersting/aftermath/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server exposes a computed result table over HTTP. The table is
// immutable, so every handler is a read of prebuilt data.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux

	table    *core.Table
	horizons []int
	runID    string
}

// Config holds server configuration
type Config struct {
	Host        string
	Port        int
	MetricsPath string
}

// NewServer creates a new HTTP server over a computed table.
func NewServer(cfg Config, table *core.Table, horizons []int, runID string, reg *metrics.Registry, logger *zap.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		logger:   logger,
		mux:      mux,
		table:    table,
		horizons: horizons,
		runID:    runID,
	}

	mux.HandleFunc("/api/v1/results", s.handleResults)
	mux.HandleFunc("/api/v1/events", s.handleEvents)
	mux.HandleFunc("/api/health", s.handleHealth)

	var handler http.Handler = mux
	if reg != nil {
		metricsPath := cfg.MetricsPath
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
		mux.Handle(metricsPath, promhttp.HandlerFor(reg.Registry, promhttp.HandlerOpts{}))
		handler = metrics.HTTPMiddleware(reg)(mux)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// resultsPayload is the wire form of the table.
type resultsPayload struct {
	RunID    string       `json:"run_id"`
	Horizons []int        `json:"horizon_years"`
	Rows     []resultRow  `json:"rows"`
	Skipped  []skippedRow `json:"skipped"`
}

type resultRow struct {
	Event      string       `json:"event"`
	EventDate  string       `json:"event_date"`
	EntryDate  string       `json:"entry_date"`
	EntryPrice float64      `json:"entry_price"`
	Horizons   []horizonRow `json:"horizons"`
}

type horizonRow struct {
	Years     int      `json:"years"`
	Available bool     `json:"available"`
	ExitDate  string   `json:"exit_date,omitempty"`
	ExitPrice *float64 `json:"exit_price,omitempty"`
	CAGR      *float64 `json:"cagr_pct,omitempty"`
}

type skippedRow struct {
	Event     string `json:"event"`
	EventDate string `json:"event_date"`
	Reason    string `json:"reason"`
}

type eventRow struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	payload := resultsPayload{
		RunID:    s.runID,
		Horizons: s.horizons,
		Rows:     make([]resultRow, 0, len(s.table.Rows)),
		Skipped:  make([]skippedRow, 0, len(s.table.Skipped)),
	}

	for _, row := range s.table.Rows {
		out := resultRow{
			Event:      row.Event.Name,
			EventDate:  row.Event.Date.Format("2006-01-02"),
			EntryDate:  row.EntryDate.Format("2006-01-02"),
			EntryPrice: row.EntryPrice,
		}
		for _, res := range row.Horizons {
			h := horizonRow{Years: res.Years, Available: res.Available}
			if res.Available {
				h.ExitDate = res.ExitDate.Format("2006-01-02")
				exitPrice := res.ExitPrice
				cagr := res.CAGR
				h.ExitPrice = &exitPrice
				h.CAGR = &cagr
			}
			out.Horizons = append(out.Horizons, h)
		}
		payload.Rows = append(payload.Rows, out)
	}

	for _, sk := range s.table.Skipped {
		payload.Skipped = append(payload.Skipped, skippedRow{
			Event:     sk.Event.Name,
			EventDate: sk.Event.Date.Format("2006-01-02"),
			Reason:    sk.Reason,
		})
	}

	response.JSON(w, http.StatusOK, payload)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	events := make([]eventRow, 0, len(s.table.Rows)+len(s.table.Skipped))
	for _, row := range s.table.Rows {
		events = append(events, eventRow{Name: row.Event.Name, Date: row.Event.Date.Format("2006-01-02")})
	}
	for _, sk := range s.table.Skipped {
		events = append(events, eventRow{Name: sk.Event.Name, Date: sk.Event.Date.Format("2006-01-02")})
	}

	response.JSON(w, http.StatusOK, events)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
