package maintenance

import (
	"errors"
	"time"

	maintenanceDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/maintenance"
)

type MaintenanceRequest struct {
	ID          int64      `json:"id"`
	AssetID     int64      `json:"asset_id"`
	RequestedBy int64      `json:"requested_by"`
	Task        string     `json:"task"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requested_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

const (
	StatusPending   = "pending"
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
)

func (m *MaintenanceRequest) IsOpen() bool {
	return m.Status == StatusPending || m.Status == StatusScheduled
}

var (
	ErrNotFound         = errors.New("maintenance request not found")
	ErrInvalidStatus    = errors.New("invalid maintenance status")
	ErrAlreadyCompleted = errors.New("maintenance request already completed")
	ErrAssetNotFound    = errors.New("asset not found")
	ErrAssetUnavailable = errors.New("asset cannot enter maintenance")
)

func ToDataModel(m *MaintenanceRequest) *maintenanceDatamodel.MaintenanceRequest {
	return &maintenanceDatamodel.MaintenanceRequest{
		ID:          m.ID,
		AssetID:     m.AssetID,
		RequestedBy: m.RequestedBy,
		Task:        m.Task,
		Status:      m.Status,
		RequestedAt: m.RequestedAt,
		CompletedAt: m.CompletedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func FromDataModel(m *maintenanceDatamodel.MaintenanceRequest) *MaintenanceRequest {
	return &MaintenanceRequest{
		ID:          m.ID,
		AssetID:     m.AssetID,
		RequestedBy: m.RequestedBy,
		Task:        m.Task,
		Status:      m.Status,
		RequestedAt: m.RequestedAt,
		CompletedAt: m.CompletedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func FromDataModelSlice(requests []*maintenanceDatamodel.MaintenanceRequest) []*MaintenanceRequest {
	result := make([]*MaintenanceRequest, len(requests))
	for i, m := range requests {
		result[i] = FromDataModel(m)
	}
	return result
}
