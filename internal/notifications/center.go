package notifications

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/textsense/textsense-client/internal/models"
)

// Center holds at most one active notification. Emitting replaces the
// current notice immediately and restarts the auto-dismiss timer; last
// emit wins. At most one timer is live at a time.
type Center struct {
	mu      sync.Mutex
	ttl     time.Duration
	current *models.Notification
	timer   *time.Timer
	gen     uint64
}

// Ensure Center implements CenterInterface
var _ CenterInterface = (*Center)(nil)

// NewCenter creates a notification center with the given auto-dismiss
// duration.
func NewCenter(ttl time.Duration) *Center {
	return &Center{ttl: ttl}
}

// Emit replaces any displayed notification with a new one and (re)starts
// the auto-dismiss timer. A pending timer for the previous notification is
// cancelled first so a stale fire can never clear the newer notice.
func (c *Center) Emit(message string, severity models.Severity) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}

	c.gen++
	gen := c.gen
	c.current = &models.Notification{
		Message:   message,
		Severity:  severity,
		CreatedAt: time.Now().UTC(),
	}
	c.timer = time.AfterFunc(c.ttl, func() {
		c.expire(gen)
	})

	logrus.Debugf("Notification emitted (severity=%s): %s", severity, message)
}

// Dismiss clears the current notification and cancels its timer. A no-op
// when nothing is shown.
func (c *Center) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clearLocked()
}

// Current returns the active notification, if any.
func (c *Center) Current() (models.Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return models.Notification{}, false
	}
	return *c.current, true
}

// expire is the timer callback. The generation check makes a fire that
// lost the race with Stop harmless: it only clears the notification it
// was armed for.
func (c *Center) expire(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		return
	}
	c.clearLocked()
}

func (c *Center) clearLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.current = nil
	c.gen++
}
