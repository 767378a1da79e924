package submission

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/textsense/textsense-client/internal/models"
)

// Metrics counts submission outcomes across all surfaces. One instance is
// shared by every controller in the process.
type Metrics struct {
	mu sync.RWMutex

	data metricsData
}

type metricsData struct {
	TotalSubmissions int            `json:"total_submissions"`
	VerdictBreakdown map[string]int `json:"verdict_breakdown"`
	Dropped          int            `json:"dropped"`
	Failures         int            `json:"failures"`
	LastSubmission   time.Time      `json:"last_submission"`
}

// NewMetrics creates an empty metrics holder.
func NewMetrics() *Metrics {
	return &Metrics{
		data: metricsData{
			VerdictBreakdown: make(map[string]int),
		},
	}
}

func (m *Metrics) recordVerdict(action models.VerdictAction) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data.TotalSubmissions++
	m.data.VerdictBreakdown[string(action)]++
	m.data.LastSubmission = time.Now().UTC()
}

func (m *Metrics) recordDropped() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data.Dropped++
}

func (m *Metrics) recordFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data.Failures++
}

// GetMetrics returns current metrics as JSON
func (m *Metrics) GetMetrics() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, _ := json.MarshalIndent(m.data, "", "  ")
	return string(data)
}
