package postgres

import (
	"errors"
	"time"

	"github.com/frahmantamala/asset-management/internal/allocation"
	"github.com/frahmantamala/asset-management/internal/asset"
	assetPostgres "github.com/frahmantamala/asset-management/internal/asset/postgres"
	allocationDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/allocation"
	assetDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/asset"
	"gorm.io/gorm"
)

const (
	statusAvailable = "available"
	statusAssigned  = "assigned"
)

// AllocationRepository implements the allocation.Repository interface using
// GORM. Both workflow writes are conditional updates so a stale read can
// never overwrite a concurrent transition.
type AllocationRepository struct {
	db *gorm.DB
}

func NewAllocationRepository(db *gorm.DB) *AllocationRepository {
	return &AllocationRepository{db: db}
}

// AssignAsset flips the asset from available to assigned through the shared
// conditional transition. A state conflict means the asset was taken by a
// concurrent caller or is in the shop; either way it is not available.
func (r *AllocationRepository) AssignAsset(assetID, userID int64, date time.Time) error {
	err := assetPostgres.MarkAssigned(r.db, assetID, userID, date)
	if errors.Is(err, asset.ErrNotFound) {
		return allocation.ErrAssetNotFound
	}
	var conflict *asset.TransitionError
	if errors.As(err, &conflict) {
		return allocation.ErrNotAvailable
	}
	return err
}

// ReturnAsset reverts the assignment and records the return event in one
// transaction. The conditional update keys on assigned_to, so only the
// current holder can return the asset.
func (r *AllocationRepository) ReturnAsset(assetID, callerID int64, reason, notes string) (*allocation.ReturnedAsset, error) {
	now := time.Now()
	dm := &allocationDatamodel.ReturnedAsset{
		AssetID:    assetID,
		ReturnedBy: callerID,
		Reason:     reason,
		Notes:      notes,
		ReturnedAt: now,
		CreatedAt:  now,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&assetDatamodel.Asset{}).
			Where("id = ? AND status = ? AND assigned_to = ?", assetID, statusAssigned, callerID).
			Updates(map[string]interface{}{
				"status":        statusAvailable,
				"assigned_to":   nil,
				"assigned_date": nil,
				"updated_at":    now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&assetDatamodel.Asset{}).Where("id = ?", assetID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return allocation.ErrAssetNotFound
			}
			return allocation.ErrNotAssignedToCaller
		}

		return tx.Create(dm).Error
	})
	if err != nil {
		return nil, err
	}

	return allocation.FromDataModel(dm), nil
}

func (r *AllocationRepository) ListReturns(limit, offset int) ([]*allocation.ReturnedAsset, error) {
	var dms []*allocationDatamodel.ReturnedAsset
	err := r.db.Order("returned_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return allocation.FromDataModelSlice(dms), nil
}
