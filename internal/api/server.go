// Package api exposes the demo client's view layer over HTTP: composing
// surfaces, thread timelines, the notification slot and the admin log
// viewer.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/textsense/textsense-client/internal/adminlog"
	"github.com/textsense/textsense-client/internal/config"
	"github.com/textsense/textsense-client/internal/models"
	"github.com/textsense/textsense-client/internal/notifications"
	"github.com/textsense/textsense-client/internal/submission"
	"github.com/textsense/textsense-client/internal/threads"
)

// Server wires the core components behind HTTP handlers. Each known thread
// gets its own submission controller, so two threads' composers never share
// in-flight state.
type Server struct {
	config      *config.Config
	store       threads.StoreInterface
	controllers map[string]*submission.Controller
	notifier    notifications.CenterInterface
	logs        adminlog.CacheInterface
	metrics     *submission.Metrics
}

// NewServer creates the API server and one controller per seeded thread.
func NewServer(cfg *config.Config, store threads.StoreInterface, controllers map[string]*submission.Controller,
	notifier notifications.CenterInterface, logs adminlog.CacheInterface, metrics *submission.Metrics) *Server {
	return &Server{
		config:      cfg,
		store:       store,
		controllers: controllers,
		notifier:    notifier,
		logs:        logs,
		metrics:     metrics,
	}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", s.healthHandler).Methods("GET")
	router.HandleFunc("/metrics", s.metricsHandler).Methods("GET")

	router.HandleFunc("/api/threads", s.listThreadsHandler).Methods("GET")
	router.HandleFunc("/api/threads/{id}/messages", s.listMessagesHandler).Methods("GET")
	router.HandleFunc("/api/threads/{id}/messages", s.postMessageHandler).Methods("POST")
	router.HandleFunc("/api/threads/{id}/select", s.selectThreadHandler).Methods("POST")

	router.HandleFunc("/api/notifications", s.getNotificationHandler).Methods("GET")
	router.HandleFunc("/api/notifications", s.dismissNotificationHandler).Methods("DELETE")

	router.HandleFunc("/api/admin/logs", s.adminLogsHandler).Methods("GET")

	return router
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) metricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(s.metrics.GetMetrics()))
}

func (s *Server) listThreadsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"threads":  s.store.Threads(),
		"selected": s.store.Selected().ID,
	})
}

func (s *Server) listMessagesHandler(w http.ResponseWriter, r *http.Request) {
	threadID := mux.Vars(r)["id"]

	entries, err := s.store.Entries(threadID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"thread_id": threadID,
		"entries":   entries,
	})
}

type postMessageRequest struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

func (s *Server) postMessageHandler(w http.ResponseWriter, r *http.Request) {
	threadID := mux.Vars(r)["id"]

	controller, ok := s.controllers[threadID]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown thread "+threadID)
		return
	}

	var req postMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	author := req.Author
	if author == "" {
		author = s.config.DefaultAuthor
	}

	result := controller.TrySubmit(r.Context(), req.Text, author)

	switch result.Outcome {
	case submission.OutcomeDroppedEmpty:
		writeError(w, http.StatusBadRequest, "text must not be empty")
	case submission.OutcomeDroppedBusy:
		writeError(w, http.StatusConflict, "a submission is already in flight for this thread")
	case submission.OutcomeFailed:
		writeError(w, http.StatusInternalServerError, "failed to apply moderation verdict")
	default:
		writeJSON(w, http.StatusOK, result)
	}
}

func (s *Server) selectThreadHandler(w http.ResponseWriter, r *http.Request) {
	threadID := mux.Vars(r)["id"]

	if err := s.store.Select(threadID); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"selected": threadID})
}

func (s *Server) getNotificationHandler(w http.ResponseWriter, r *http.Request) {
	notification, ok := s.notifier.Current()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, notification)
}

func (s *Server) dismissNotificationHandler(w http.ResponseWriter, r *http.Request) {
	s.notifier.Dismiss()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) adminLogsHandler(w http.ResponseWriter, r *http.Request) {
	entries, count, err := s.logs.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	if entries == nil {
		entries = []models.AdminLogEntry{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"n":       count,
		"results": entries,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
