package models

import "time"

// EntryStatus tracks whether a thread entry has been confirmed by moderation
// or is still awaiting review. An entry never moves back from confirmed.
type EntryStatus string

const (
	StatusConfirmed     EntryStatus = "confirmed"
	StatusPendingReview EntryStatus = "pending_review"
)

// Entry is a single message or comment inside a thread. Text is immutable
// once the entry exists; only Status may change (pending_review -> confirmed).
type Entry struct {
	ID          int64       `json:"id"`
	ThreadID    string      `json:"thread_id"`
	AuthorLabel string      `json:"author"`
	Text        string      `json:"text"`
	Status      EntryStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Thread is one post's comment list or one chat conversation.
type Thread struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Surface Surface `json:"surface"`
}

// Surface identifies the kind of composing UI a submission originates from.
// The moderation backend receives it as the request "mode".
type Surface string

const (
	SurfaceComment Surface = "comment"
	SurfaceChat    Surface = "chat"
)

// VerdictAction is the closed set of moderation outcomes. Anything the
// backend returns outside this set is normalized to ActionReview.
type VerdictAction string

const (
	ActionAllow  VerdictAction = "allow"
	ActionReview VerdictAction = "review"
	ActionBlock  VerdictAction = "block"
)

// ParseAction maps a raw action string to a VerdictAction, defaulting to
// review for unrecognized values so an unknown outcome never slips through
// as an allow.
func ParseAction(raw string) VerdictAction {
	switch VerdictAction(raw) {
	case ActionAllow, ActionReview, ActionBlock:
		return VerdictAction(raw)
	default:
		return ActionReview
	}
}

// Verdict is the moderation backend's classification of one submission.
// Reason, Score and MatchedSeed are diagnostics, opaque to the client
// beyond display.
type Verdict struct {
	Action      VerdictAction `json:"action"`
	Reason      string        `json:"reason,omitempty"`
	Score       float64       `json:"score,omitempty"`
	MatchedSeed string        `json:"matched_seed,omitempty"`
}

// Severity classifies a transient user-facing notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is one transient notice shown to the user. Exactly one is
// active at a time; a newer emit replaces an older one.
type Notification struct {
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminLogEntry is one moderation-flagged record fetched from the backend's
// admin log. Immutable once fetched.
type AdminLogEntry struct {
	Timestamp   int64   `json:"ts"`
	Raw         string  `json:"raw"`
	Action      string  `json:"action"`
	Reason      string  `json:"reason,omitempty"`
	MatchedSeed string  `json:"matched_seed,omitempty"`
	Score       float64 `json:"score,omitempty"`
}
