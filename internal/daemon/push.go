package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/karimwahba/groclist/internal/config"
	"github.com/karimwahba/groclist/internal/logging"
	"github.com/karimwahba/groclist/internal/model"
	"github.com/karimwahba/groclist/internal/notify"
)

// PushMessage is the payload accepted on the push endpoint. It mirrors the
// data a channel receives: a title, a body, and an optional item id for the
// deep link.
type PushMessage struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	ItemID int64  `json:"itemId,omitempty"`
}

// PushServer exposes the daemon's local HTTP surface: inbound push messages
// plus health and metrics endpoints. It binds to loopback only.
type PushServer struct {
	server     *http.Server
	dispatcher *notify.Dispatcher
	metrics    *Metrics
	health     *HealthChecker
}

// NewPushServer creates a push server on the configured listen address.
func NewPushServer(dispatcher *notify.Dispatcher, metrics *Metrics, health *HealthChecker) *PushServer {
	s := &PushServer{
		dispatcher: dispatcher,
		metrics:    metrics,
		health:     health,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/push", s.handlePush)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/metrics", s.handleMetrics)

	s.server = &http.Server{
		Addr:              config.Global.Push.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// Start begins serving in the background.
func (s *PushServer) Start() {
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("push server failed", logging.KeyError, err, "addr", s.server.Addr)
		}
	}()
	logging.Info("push server listening", "addr", s.server.Addr)
}

// Stop shuts the server down gracefully.
func (s *PushServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Addr returns the listen address.
func (s *PushServer) Addr() string {
	return s.server.Addr
}

// handlePush accepts a push message and fans it out to enabled channels.
func (s *PushServer) handlePush(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var msg PushMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		http.Error(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}
	if msg.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	if s.metrics != nil {
		s.metrics.RecordPushReceived()
	}

	notification := model.NewNotification(model.NotifyPush, msg.Title, msg.Body)
	if msg.ItemID != 0 {
		notification.WithItem(msg.ItemID)
	}

	results := s.dispatcher.SendNotification(r.Context(), notification)

	delivered := 0
	for _, result := range results {
		if result.Success {
			delivered++
		}
	}

	logging.Info("push message dispatched",
		"title", msg.Title,
		logging.KeyItemID, msg.ItemID,
		"delivered", delivered,
		logging.KeyCount, len(results))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":    "accepted",
		"channels":  len(results),
		"delivered": delivered,
	})
}

// handleHealth serves the health check endpoint.
func (s *PushServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	data, err := s.health.JSON()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// handleMetrics serves the metrics endpoint.
func (s *PushServer) handleMetrics(w http.ResponseWriter, r *http.Request) {
	data, err := s.metrics.JSON()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}
