package threads

import "github.com/textsense/textsense-client/internal/models"

// StoreInterface defines the contract for per-thread entry storage. Entry
// sequences are append-only snapshots: a slice returned by Entries is never
// mutated by a later Append.
type StoreInterface interface {
	Threads() []models.Thread
	Thread(threadID string) (models.Thread, error)
	Select(threadID string) error
	Selected() models.Thread
	Append(threadID, author, text string, status models.EntryStatus) (models.Entry, error)
	Entries(threadID string) ([]models.Entry, error)
	Confirm(threadID string, entryID int64) error
}
