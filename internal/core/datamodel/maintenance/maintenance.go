package maintenance

import "time"

type MaintenanceRequest struct {
	ID          int64      `gorm:"primaryKey"`
	AssetID     int64      `gorm:"column:asset_id;not null"`
	RequestedBy int64      `gorm:"column:requested_by;not null"`
	Task        string     `gorm:"column:task;not null"`
	Status      string     `gorm:"column:status;default:pending;not null"`
	RequestedAt time.Time  `gorm:"column:requested_at;default:now()"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;default:now()"`
}

func (MaintenanceRequest) TableName() string {
	return "maintenance_requests"
}
