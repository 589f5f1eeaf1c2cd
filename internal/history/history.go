package history

import (
	"errors"
	"time"

	historyDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/history"
)

// Entry is one append-only audit record of an asset lifecycle transition.
type Entry struct {
	ID         int64     `json:"id"`
	AssetID    int64     `json:"asset_id"`
	UserID     int64     `json:"user_id"`
	ActionType string    `json:"action_type"`
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
}

var ErrNotFound = errors.New("history entry not found")

func ToDataModel(e *Entry) *historyDatamodel.HistoryEntry {
	return &historyDatamodel.HistoryEntry{
		ID:         e.ID,
		AssetID:    e.AssetID,
		UserID:     e.UserID,
		ActionType: e.ActionType,
		Note:       e.Note,
		OccurredAt: e.OccurredAt,
		CreatedAt:  e.CreatedAt,
	}
}

func FromDataModel(e *historyDatamodel.HistoryEntry) *Entry {
	return &Entry{
		ID:         e.ID,
		AssetID:    e.AssetID,
		UserID:     e.UserID,
		ActionType: e.ActionType,
		Note:       e.Note,
		OccurredAt: e.OccurredAt,
		CreatedAt:  e.CreatedAt,
	}
}

func FromDataModelSlice(entries []*historyDatamodel.HistoryEntry) []*Entry {
	result := make([]*Entry, len(entries))
	for i, e := range entries {
		result[i] = FromDataModel(e)
	}
	return result
}
