package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeAssetAssigned        = "asset.assigned"
	EventTypeAssetReturned        = "asset.returned"
	EventTypeAssetRequested       = "asset.requested"
	EventTypeRequestRejected      = "asset.request_rejected"
	EventTypeMaintenanceRequested = "maintenance.requested"
	EventTypeMaintenanceScheduled = "maintenance.scheduled"
	EventTypeMaintenanceCompleted = "maintenance.completed"
	EventTypeAssetUnassigned      = "asset.unassigned"
)

// AssetEvent is the shape every lifecycle event shares: which asset moved,
// who triggered the transition, and the label the history ledger records.
type AssetEvent struct {
	BaseEvent
	AssetID int64  `json:"asset_id"`
	UserID  int64  `json:"user_id"`
	Action  string `json:"action"`
	Note    string `json:"note,omitempty"`
}

func newAssetEvent(eventType string, assetID, userID int64, action, note string) *AssetEvent {
	return &AssetEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"asset_id": assetID,
				"user_id":  userID,
				"action":   action,
				"note":     note,
			},
		},
		AssetID: assetID,
		UserID:  userID,
		Action:  action,
		Note:    note,
	}
}

func NewAssetAssignedEvent(assetID, userID int64, note string) *AssetEvent {
	return newAssetEvent(EventTypeAssetAssigned, assetID, userID, "Assigned", note)
}

func NewAssetReturnedEvent(assetID, userID int64, reason string) *AssetEvent {
	return newAssetEvent(EventTypeAssetReturned, assetID, userID, "Returned", reason)
}

func NewAssetRequestedEvent(assetID, userID int64, reason string) *AssetEvent {
	return newAssetEvent(EventTypeAssetRequested, assetID, userID, "Asset Requested", reason)
}

func NewRequestRejectedEvent(assetID, userID int64, note string) *AssetEvent {
	return newAssetEvent(EventTypeRequestRejected, assetID, userID, "Request Rejected", note)
}

func NewMaintenanceRequestedEvent(assetID, userID int64, task string) *AssetEvent {
	return newAssetEvent(EventTypeMaintenanceRequested, assetID, userID, "Maintenance Requested", task)
}

func NewMaintenanceScheduledEvent(assetID, userID int64) *AssetEvent {
	return newAssetEvent(EventTypeMaintenanceScheduled, assetID, userID, "Maintenance Scheduled", "")
}

func NewMaintenanceCompletedEvent(assetID, userID int64) *AssetEvent {
	return newAssetEvent(EventTypeMaintenanceCompleted, assetID, userID, "Maintenance Completed", "")
}

func NewAssetUnassignedEvent(assetID, userID int64, note string) *AssetEvent {
	return newAssetEvent(EventTypeAssetUnassigned, assetID, userID, "Unassigned", note)
}
