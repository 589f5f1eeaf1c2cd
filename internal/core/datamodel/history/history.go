package history

import "time"

// HistoryEntry is append-only: the repository exposes no update or delete.
type HistoryEntry struct {
	ID         int64     `gorm:"primaryKey"`
	AssetID    int64     `gorm:"column:asset_id;not null"`
	UserID     int64     `gorm:"column:user_id;not null"`
	ActionType string    `gorm:"column:action_type;not null"`
	Note       string    `gorm:"column:note"`
	OccurredAt time.Time `gorm:"column:occurred_at;default:now()"`
	CreatedAt  time.Time `gorm:"column:created_at;default:now()"`
}

func (HistoryEntry) TableName() string {
	return "asset_history"
}
