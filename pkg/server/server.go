package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yurifrl/paydown/pkg/config"
	"github.com/yurifrl/paydown/pkg/csv"
	"github.com/yurifrl/paydown/pkg/history"
	"github.com/yurifrl/paydown/pkg/tracker"
)

// Server exposes the tracker over HTTP for the presentation layer.
type Server struct {
	config  *config.Config
	logger  *log.Logger
	mux     *http.ServeMux
	tracker *tracker.Tracker
}

// New creates a new HTTP server
func New(config *config.Config, logger *log.Logger, tracker *tracker.Tracker) *Server {
	return &Server{
		config:  config,
		logger:  logger,
		mux:     http.NewServeMux(),
		tracker: tracker,
	}
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	return http.ListenAndServe(addr, s.Handler())
}

// Handler returns the routed handler, for embedding and tests.
func (s *Server) Handler() http.Handler {
	s.setupRoutes()
	return s.mux
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/accounts", s.withLogging(s.handleAccounts))
	s.mux.HandleFunc("/api/accounts/", s.withLogging(s.handleAccount))
	s.mux.HandleFunc("/api/transfers", s.withLogging(s.handleTransfer))
}

// PaymentRow is a simplified payment record for JSON responses.
type PaymentRow struct {
	Date    string  `json:"date"`
	Amount  float64 `json:"amount"`
	Cleared string  `json:"cleared"`
	Memo    string  `json:"memo"`
	Blank   bool    `json:"blank"`
}

func rows(records []history.PaymentRecord) []PaymentRow {
	out := make([]PaymentRow, len(records))
	for i, r := range records {
		out[i] = PaymentRow{
			Date:    r.Date().Format("2006-01-02"),
			Amount:  r.Amount(),
			Cleared: r.Cleared().String(),
			Memo:    r.Memo(),
			Blank:   r.Blank(),
		}
	}
	return out
}

func reportBody(report *tracker.Report) map[string]interface{} {
	body := map[string]interface{}{
		"status":  "success",
		"account": report.Name,
		"today":   report.Today.Format("2006-01-02"),
		"state":   report.State,
		"verdict": report.Status.String(),
		"history": rows(report.History),
	}
	if report.Projected {
		body["finish_date"] = report.FinishDate.Format("2006-01-02")
		body["payments_left"] = report.PaymentsLeft
	} else {
		body["finish_date"] = "not applicable"
	}
	return body
}

func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	if err := s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "success",
		"accounts": s.config.Names(),
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

// handleAccount routes /api/accounts/{name}[/history|/payments|/skip].
func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/accounts/")
	name, action, _ := strings.Cut(rest, "/")
	if name == "" {
		s.respondError(w, r, http.StatusBadRequest, "account name required", nil)
		return
	}

	switch action {
	case "":
		s.handleReport(w, r, name)
	case "history":
		s.handleHistory(w, r, name)
	case "payments":
		s.handlePayment(w, r, name)
	case "skip":
		s.handleSkip(w, r, name)
	default:
		s.respondError(w, r, http.StatusNotFound, "unknown action", nil)
	}
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request, name string) {
	if r.Method != http.MethodGet {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	report, err := s.tracker.Evaluate(name)
	if err != nil {
		s.respondError(w, r, s.statusFor(name), "evaluation failed", err)
		return
	}

	if err := s.writeJSON(w, http.StatusOK, reportBody(report)); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request, name string) {
	if r.Method != http.MethodGet {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	report, err := s.tracker.Evaluate(name)
	if err != nil {
		s.respondError(w, r, s.statusFor(name), "evaluation failed", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s-history.csv\"", name))
	if _, err := w.Write(csv.Create(report.History, nil)); err != nil {
		s.logger.Warn("failed to write csv response", "err", err)
	}
}

func (s *Server) handlePayment(w http.ResponseWriter, r *http.Request, name string) {
	if r.Method != http.MethodPost {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	var body struct {
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := s.tracker.RecordPayment(name, body.Amount); err != nil {
		s.respondError(w, r, http.StatusBadGateway, "failed to record payment", err)
		return
	}
	if err := s.writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

func (s *Server) handleSkip(w http.ResponseWriter, r *http.Request, name string) {
	if r.Method != http.MethodPost {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if strings.TrimSpace(body.Reason) == "" {
		s.respondError(w, r, http.StatusBadRequest, "reason required", nil)
		return
	}

	if err := s.tracker.RecordBlank(name, body.Reason); err != nil {
		s.respondError(w, r, http.StatusBadGateway, "failed to record blank payment", err)
		return
	}
	if err := s.writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	var body struct {
		From   string  `json:"from"`
		To     string  `json:"to"`
		Amount float64 `json:"amount"`
		Memo   string  `json:"memo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := s.tracker.RecordTransfer(body.From, body.To, body.Amount, body.Memo); err != nil {
		s.respondError(w, r, http.StatusBadGateway, "failed to record transfer", err)
		return
	}
	if err := s.writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

// statusFor distinguishes a missing account (client error) from an
// upstream ledger failure.
func (s *Server) statusFor(name string) int {
	if _, err := s.config.Account(name); err != nil {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

// --- helpers ---

// writeJSON encodes v as JSON with the given status and writes headers.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// respondError logs the error and returns a minimal JSON error body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		s.logger.Warn("request error", "status", status, "msg", message, "err", err, "method", r.Method, "path", r.URL.Path)
	} else {
		s.logger.Warn("request error", "status", status, "msg", message, "method", r.Method, "path", r.URL.Path)
	}
	_ = s.writeJSON(w, status, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// withLogging wraps a handler to log requests and recover panics.
func (s *Server) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.logger.Debug("http request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", "panic", rec, "method", r.Method, "path", r.URL.Path)
				s.respondError(w, r, http.StatusInternalServerError, "internal server error", fmt.Errorf("panic: %v", rec))
			}
			s.logger.Debug("http request done", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
		}()
		next(w, r)
	}
}
