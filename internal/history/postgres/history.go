package postgres

import (
	historyDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/history"
	"github.com/frahmantamala/asset-management/internal/history"
	"gorm.io/gorm"
)

// HistoryRepository implements the history.Repository interface using GORM.
type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Append(e *history.Entry) error {
	dm := history.ToDataModel(e)
	if err := r.db.Create(dm).Error; err != nil {
		return err
	}
	e.ID = dm.ID
	e.CreatedAt = dm.CreatedAt
	return nil
}

func (r *HistoryRepository) GetAll(limit, offset int) ([]*history.Entry, error) {
	var dms []*historyDatamodel.HistoryEntry
	err := r.db.Order("occurred_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return history.FromDataModelSlice(dms), nil
}

func (r *HistoryRepository) GetByAsset(assetID int64, limit, offset int) ([]*history.Entry, error) {
	var dms []*historyDatamodel.HistoryEntry
	err := r.db.Where("asset_id = ?", assetID).
		Order("occurred_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return history.FromDataModelSlice(dms), nil
}
