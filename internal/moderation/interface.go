package moderation

import (
	"context"

	"github.com/textsense/textsense-client/internal/models"
)

// GateInterface defines the contract for the moderation gate. Submit never
// fails from the caller's point of view: transport problems come back as a
// review verdict carrying a diagnostic reason.
type GateInterface interface {
	Submit(ctx context.Context, text string, surface models.Surface) models.Verdict
}
