package request

import "time"

// AssetRequest is immutable once resolved; only the status column ever
// changes, and only through a conditional update from "pending".
type AssetRequest struct {
	ID          int64      `gorm:"primaryKey"`
	AssetID     int64      `gorm:"column:asset_id;not null"`
	RequestedBy int64      `gorm:"column:requested_by;not null"`
	Reason      string     `gorm:"column:reason"`
	Status      string     `gorm:"column:status;default:pending;not null"`
	RequestedAt time.Time  `gorm:"column:requested_at;default:now()"`
	ResolvedAt  *time.Time `gorm:"column:resolved_at"`
	ResolvedBy  *int64     `gorm:"column:resolved_by"`
	CreatedAt   time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;default:now()"`
}

func (AssetRequest) TableName() string {
	return "asset_requests"
}
