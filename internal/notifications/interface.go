package notifications

import "github.com/textsense/textsense-client/internal/models"

// CenterInterface defines the contract for emitting transient user-facing
// notices. It is injected into any component that needs to notify, keeping
// emission decoupled from rendering.
type CenterInterface interface {
	Emit(message string, severity models.Severity)
	Dismiss()
	Current() (models.Notification, bool)
}
