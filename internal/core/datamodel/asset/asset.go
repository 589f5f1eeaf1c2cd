package asset

import "time"

// Asset is the persistence model for a trackable company asset. The
// assigned_to column is set if and only if status is "assigned"; the
// repositories enforce the pairing with conditional updates.
type Asset struct {
	ID           int64      `gorm:"primaryKey"`
	AssetTag     string     `gorm:"column:asset_tag;uniqueIndex;not null"`
	Name         string     `gorm:"column:name;not null"`
	Manufacturer string     `gorm:"column:manufacturer"`
	Category     string     `gorm:"column:category"`
	Location     string     `gorm:"column:location"`
	Status       string     `gorm:"column:status;default:available;not null"`
	AssignedTo   *int64     `gorm:"column:assigned_to"`
	AssignedDate *time.Time `gorm:"column:assigned_date"`
	CreatedAt    time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;default:now()"`
}

func (Asset) TableName() string {
	return "assets"
}
