// Package health probes the moderation backend's /health endpoint on a
// schedule and surfaces reachability changes to the user.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/textsense/textsense-client/internal/config"
	"github.com/textsense/textsense-client/internal/models"
	"github.com/textsense/textsense-client/internal/notifications"
)

// Service periodically checks the moderation backend and emits a
// notification when reachability changes: an error notice when the backend
// goes away, an info notice when it comes back.
type Service struct {
	config   *config.Config
	client   *resty.Client
	notifier notifications.CenterInterface
	cron     *cron.Cron

	mu      sync.Mutex
	healthy *bool // nil until the first probe completes
}

type healthResponse struct {
	OK              bool `json:"ok"`
	GroqConfigured  bool `json:"groq_configured"`
	MongoConfigured bool `json:"mongo_configured"`
	MockMode        bool `json:"mock_mode"`
}

// NewService creates a new health probe service
func NewService(cfg *config.Config, notifier notifications.CenterInterface) *Service {
	return &Service{
		config: cfg,
		client: resty.New().
			SetTimeout(10 * time.Second).
			SetHeader("User-Agent", "TextSense-Client/1.0"),
		notifier: notifier,
		cron:     cron.New(cron.WithSeconds()),
	}
}

// Start begins the scheduled probes
func (s *Service) Start() error {
	_, err := s.cron.AddFunc(s.config.HealthCheckSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		s.Probe(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule health check: %w", err)
	}

	s.cron.Start()
	logrus.Infof("Health probe scheduled (%s)", s.config.HealthCheckSchedule)
	return nil
}

// Stop halts the scheduler
func (s *Service) Stop() {
	s.cron.Stop()
	logrus.Info("Health probe stopped")
}

// Probe runs one health check against the backend and records the outcome.
// It returns whether the backend was reachable and reporting ok.
func (s *Service) Probe(ctx context.Context) bool {
	healthy := s.check(ctx)
	s.transition(healthy)
	return healthy
}

func (s *Service) check(ctx context.Context) bool {
	resp, err := s.client.R().
		SetContext(ctx).
		Get(s.config.ModerationURL + "/health")

	if err != nil {
		logrus.Warnf("Health probe failed: %v", err)
		return false
	}

	if resp.StatusCode() != 200 {
		logrus.Warnf("Health endpoint returned status %d", resp.StatusCode())
		return false
	}

	var result healthResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		logrus.Warnf("Failed to parse health response: %v", err)
		return false
	}

	logrus.Debugf("Health probe ok (mock_mode=%v)", result.MockMode)
	return result.OK
}

// transition compares against the previous probe and notifies only on
// changes, so a persistently down backend does not re-emit every cycle.
func (s *Service) transition(healthy bool) {
	s.mu.Lock()
	previous := s.healthy
	s.healthy = &healthy
	s.mu.Unlock()

	if previous != nil && *previous == healthy {
		return
	}

	if healthy {
		logrus.Info("Moderation backend is reachable")
		if previous != nil {
			s.notifier.Emit("Moderation service is back online", models.SeverityInfo)
		}
	} else {
		logrus.Warn("Moderation backend is unreachable; submissions will be held for review")
		s.notifier.Emit("Moderation service unreachable - new messages will be held for review", models.SeverityError)
	}
}

// Healthy reports the last probe outcome; false until a probe has run.
func (s *Service) Healthy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.healthy != nil && *s.healthy
}
