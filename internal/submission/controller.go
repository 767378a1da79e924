package submission

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/textsense/textsense-client/internal/models"
	"github.com/textsense/textsense-client/internal/moderation"
	"github.com/textsense/textsense-client/internal/notifications"
	"github.com/textsense/textsense-client/internal/threads"
)

// State is the controller's submission phase. A surface is reusable
// indefinitely: every submission ends back in StateIdle.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
)

// Outcome summarizes how one TrySubmit call resolved.
type Outcome string

const (
	// OutcomeAccepted means an entry was appended; the caller clears its draft.
	OutcomeAccepted Outcome = "accepted"
	// OutcomeBlocked means moderation rejected the text; the caller keeps the
	// draft so the user can edit it.
	OutcomeBlocked Outcome = "blocked"
	// OutcomeDroppedEmpty and OutcomeDroppedBusy are silent no-ops: nothing
	// observable changed.
	OutcomeDroppedEmpty Outcome = "dropped_empty"
	OutcomeDroppedBusy  Outcome = "dropped_busy"
	// OutcomeFailed covers an internal fault after a verdict was obtained.
	// The draft is kept and a generic failure notice is shown.
	OutcomeFailed Outcome = "failed"
)

// Result is returned to the composing surface so it knows whether to clear
// the draft and what entry, if any, was created.
type Result struct {
	Outcome Outcome        `json:"outcome"`
	Verdict models.Verdict `json:"verdict,omitempty"`
	Entry   *models.Entry  `json:"entry,omitempty"`
}

// Controller drives one composing surface: capture input, invoke the
// moderation gate, apply the verdict to the thread store, notify. At most
// one submission is in flight per surface; concurrent calls are dropped,
// not queued.
type Controller struct {
	threadID string
	surface  models.Surface
	gate     moderation.GateInterface
	store    threads.StoreInterface
	notifier notifications.CenterInterface
	metrics  *Metrics

	mu    sync.Mutex
	state State
}

// NewController creates a controller for one surface, bound to the thread
// the surface composes into.
func NewController(threadID string, surface models.Surface, gate moderation.GateInterface,
	store threads.StoreInterface, notifier notifications.CenterInterface, metrics *Metrics) *Controller {
	return &Controller{
		threadID: threadID,
		surface:  surface,
		gate:     gate,
		store:    store,
		notifier: notifier,
		metrics:  metrics,
		state:    StateIdle,
	}
}

// State reports the current phase so the caller can disable the send
// affordance while a submission is in flight.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// TrySubmit runs one submission through the gate and applies the verdict.
// Empty-after-trim input and calls made while a submission is already in
// flight are silently dropped. The gate call is the only suspension point;
// everything else is synchronous in-memory state.
func (c *Controller) TrySubmit(ctx context.Context, rawText, author string) Result {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return Result{Outcome: OutcomeDroppedEmpty}
	}

	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		logrus.Debugf("Dropping re-entrant submission on thread %s", c.threadID)
		c.metrics.recordDropped()
		return Result{Outcome: OutcomeDroppedBusy}
	}
	c.state = StateSubmitting
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.state = StateIdle
		c.mu.Unlock()
	}()

	verdict := c.gate.Submit(ctx, text, c.surface)
	return c.resolve(verdict, text, author)
}

func (c *Controller) resolve(verdict models.Verdict, text, author string) Result {
	c.metrics.recordVerdict(verdict.Action)

	switch verdict.Action {
	case models.ActionBlock:
		message := "Message blocked by moderation"
		if verdict.Reason != "" {
			message += ": " + verdict.Reason
		}
		c.notifier.Emit(message, models.SeverityError)
		logrus.Infof("Submission blocked on thread %s (reason=%s)", c.threadID, verdict.Reason)
		return Result{Outcome: OutcomeBlocked, Verdict: verdict}

	case models.ActionReview:
		entry, err := c.store.Append(c.threadID, author, text, models.StatusPendingReview)
		if err != nil {
			return c.fail(verdict, err)
		}
		c.notifier.Emit("Message sent - held for review", models.SeverityInfo)
		return Result{Outcome: OutcomeAccepted, Verdict: verdict, Entry: &entry}

	default: // models.ActionAllow
		entry, err := c.store.Append(c.threadID, author, text, models.StatusConfirmed)
		if err != nil {
			return c.fail(verdict, err)
		}
		return Result{Outcome: OutcomeAccepted, Verdict: verdict, Entry: &entry}
	}
}

// fail handles an internal fault after a verdict came back. The surface
// still returns to idle via the deferred reset in TrySubmit; it is never
// left stuck in submitting.
func (c *Controller) fail(verdict models.Verdict, err error) Result {
	logrus.Errorf("Failed to apply verdict on thread %s: %v", c.threadID, err)
	c.metrics.recordFailure()
	c.notifier.Emit("Something went wrong - please try again", models.SeverityError)
	return Result{Outcome: OutcomeFailed, Verdict: verdict}
}
