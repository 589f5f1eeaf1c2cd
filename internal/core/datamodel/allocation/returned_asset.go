package allocation

import "time"

// ReturnedAsset records a return event. Rows are written once and never
// updated or deleted.
type ReturnedAsset struct {
	ID         int64     `gorm:"primaryKey"`
	AssetID    int64     `gorm:"column:asset_id;not null"`
	ReturnedBy int64     `gorm:"column:returned_by;not null"`
	Reason     string    `gorm:"column:reason"`
	Notes      string    `gorm:"column:notes"`
	ReturnedAt time.Time `gorm:"column:returned_at;default:now()"`
	CreatedAt  time.Time `gorm:"column:created_at;default:now()"`
}

func (ReturnedAsset) TableName() string {
	return "returned_assets"
}
