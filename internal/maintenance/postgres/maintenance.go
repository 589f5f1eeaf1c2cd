package postgres

import (
	"errors"
	"time"

	"github.com/frahmantamala/asset-management/internal/asset"
	assetPostgres "github.com/frahmantamala/asset-management/internal/asset/postgres"
	maintenanceDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/maintenance"
	"github.com/frahmantamala/asset-management/internal/maintenance"
	"gorm.io/gorm"
)

// MaintenanceRepository implements the maintenance.Repository interface using
// GORM. Submit and Complete both touch the asset row, so each runs inside a
// transaction with a conditional asset update.
type MaintenanceRepository struct {
	db *gorm.DB
}

func NewMaintenanceRepository(db *gorm.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

// Submit creates the maintenance request and pulls the asset out of service.
// The asset can come from available or assigned; an assigned asset loses its
// assignment here. A retired asset never enters maintenance.
func (r *MaintenanceRepository) Submit(m *maintenance.MaintenanceRequest) error {
	dm := maintenance.ToDataModel(m)

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := assetPostgres.MarkUnderMaintenance(tx, m.AssetID); err != nil {
			if err := r.submitConflict(err); err != nil {
				return err
			}
		}

		return tx.Create(dm).Error
	})
	if err != nil {
		return err
	}

	m.ID = dm.ID
	return nil
}

// submitConflict is only consulted after a failed transition. An asset
// already under maintenance accepts a second report without
// re-transitioning.
func (r *MaintenanceRepository) submitConflict(err error) error {
	if errors.Is(err, asset.ErrNotFound) {
		return maintenance.ErrAssetNotFound
	}
	var conflict *asset.TransitionError
	if errors.As(err, &conflict) {
		if conflict.Status == asset.StatusUnderMaintenance {
			return nil
		}
		return maintenance.ErrAssetUnavailable
	}
	return err
}

// Schedule moves a pending request to scheduled. The asset stays put.
func (r *MaintenanceRepository) Schedule(id int64) (*maintenance.MaintenanceRequest, error) {
	res := r.db.Model(&maintenanceDatamodel.MaintenanceRequest{}).
		Where("id = ? AND status = ?", id, maintenance.StatusPending).
		Updates(map[string]interface{}{
			"status":     maintenance.StatusScheduled,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, r.transitionConflict(id)
	}
	return r.GetByID(id)
}

// Complete resolves an open request and releases the asset. The asset update
// is conditional on under_maintenance; if another request on the same asset
// already released it, the request still completes.
func (r *MaintenanceRepository) Complete(id int64) (*maintenance.MaintenanceRequest, error) {
	now := time.Now()

	var assetID int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var dm maintenanceDatamodel.MaintenanceRequest
		if err := tx.First(&dm, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return maintenance.ErrNotFound
			}
			return err
		}
		assetID = dm.AssetID

		res := tx.Model(&maintenanceDatamodel.MaintenanceRequest{}).
			Where("id = ? AND status IN ?", id, []string{maintenance.StatusPending, maintenance.StatusScheduled}).
			Updates(map[string]interface{}{
				"status":       maintenance.StatusCompleted,
				"completed_at": now,
				"updated_at":   now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return maintenance.ErrAlreadyCompleted
		}

		if err := assetPostgres.MarkAvailableFromMaintenance(tx, assetID); err != nil {
			var conflict *asset.TransitionError
			if errors.As(err, &conflict) {
				// another request on the same asset already released it
				return nil
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

func (r *MaintenanceRepository) transitionConflict(id int64) error {
	var dm maintenanceDatamodel.MaintenanceRequest
	if err := r.db.First(&dm, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return maintenance.ErrNotFound
		}
		return err
	}
	if dm.Status == maintenance.StatusCompleted {
		return maintenance.ErrAlreadyCompleted
	}
	return maintenance.ErrInvalidStatus
}

func (r *MaintenanceRepository) GetByID(id int64) (*maintenance.MaintenanceRequest, error) {
	var dm maintenanceDatamodel.MaintenanceRequest
	if err := r.db.First(&dm, id).Error; err != nil {
		return nil, err
	}
	return maintenance.FromDataModel(&dm), nil
}

func (r *MaintenanceRepository) GetAll(limit, offset int) ([]*maintenance.MaintenanceRequest, error) {
	var dms []*maintenanceDatamodel.MaintenanceRequest
	err := r.db.Order("requested_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return maintenance.FromDataModelSlice(dms), nil
}

func (r *MaintenanceRepository) GetByRequester(userID int64, limit, offset int) ([]*maintenance.MaintenanceRequest, error) {
	var dms []*maintenanceDatamodel.MaintenanceRequest
	err := r.db.Where("requested_by = ?", userID).
		Order("requested_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return maintenance.FromDataModelSlice(dms), nil
}
