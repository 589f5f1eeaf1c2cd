package postgres

import (
	"time"

	"github.com/frahmantamala/asset-management/internal/asset"
	assetDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/asset"
	"gorm.io/gorm"
)

// AssetRepository implements the asset.Repository interface using GORM.
type AssetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

func (r *AssetRepository) Create(a *asset.Asset) error {
	dm := asset.ToDataModel(a)
	if err := r.db.Create(dm).Error; err != nil {
		return err
	}
	a.ID = dm.ID
	a.CreatedAt = dm.CreatedAt
	a.UpdatedAt = dm.UpdatedAt
	return nil
}

func (r *AssetRepository) GetByID(id int64) (*asset.Asset, error) {
	var dm assetDatamodel.Asset
	err := r.db.Where("id = ?", id).First(&dm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, asset.ErrNotFound
		}
		return nil, err
	}
	return asset.FromDataModel(&dm), nil
}

func (r *AssetRepository) GetByTag(tag string) (*asset.Asset, error) {
	var dm assetDatamodel.Asset
	err := r.db.Where("asset_tag = ?", tag).First(&dm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, asset.ErrNotFound
		}
		return nil, err
	}
	return asset.FromDataModel(&dm), nil
}

func (r *AssetRepository) GetAll(limit, offset int, status asset.Status) ([]*asset.Asset, error) {
	var dms []*assetDatamodel.Asset
	q := r.db.Order("created_at DESC").Limit(limit).Offset(offset)
	if status != "" {
		q = q.Where("status = ?", string(status))
	}
	if err := q.Find(&dms).Error; err != nil {
		return nil, err
	}
	return asset.FromDataModelSlice(dms), nil
}

// Update persists descriptive fields. Status and assignment columns are only
// touched by the conditional transition helpers below.
func (r *AssetRepository) Update(a *asset.Asset) error {
	return r.db.Model(&assetDatamodel.Asset{}).
		Where("id = ?", a.ID).
		Updates(map[string]interface{}{
			"name":         a.Name,
			"manufacturer": a.Manufacturer,
			"category":     a.Category,
			"location":     a.Location,
			"updated_at":   time.Now(),
		}).Error
}

// The lifecycle transitions live here as package-level helpers so every
// workflow repository runs the same conditional update, inside its own
// transaction. Each helper mutates the row only when it is still in the
// expected state; zero rows affected resolves to asset.ErrNotFound or a
// *asset.TransitionError carrying the state that won.

// MarkAssigned moves an asset from available to assigned in a single
// conditional update. Zero rows affected means the asset either does not
// exist or lost the race to another caller.
func MarkAssigned(db *gorm.DB, assetID, userID int64, date time.Time) error {
	res := db.Model(&assetDatamodel.Asset{}).
		Where("id = ? AND status = ?", assetID, string(asset.StatusAvailable)).
		Updates(map[string]interface{}{
			"status":        string(asset.StatusAssigned),
			"assigned_to":   userID,
			"assigned_date": date,
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return transitionConflict(db, assetID)
	}
	return nil
}

// MarkUnderMaintenance transitions the asset into maintenance and clears the
// assignment so assigned_to stays paired with the assigned status.
func MarkUnderMaintenance(db *gorm.DB, assetID int64) error {
	res := db.Model(&assetDatamodel.Asset{}).
		Where("id = ? AND status IN ?", assetID, []string{
			string(asset.StatusAvailable),
			string(asset.StatusAssigned),
		}).
		Updates(map[string]interface{}{
			"status":        string(asset.StatusUnderMaintenance),
			"assigned_to":   nil,
			"assigned_date": nil,
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return transitionConflict(db, assetID)
	}
	return nil
}

// MarkAvailableFromMaintenance releases an asset back to available once its
// maintenance is done.
func MarkAvailableFromMaintenance(db *gorm.DB, assetID int64) error {
	res := db.Model(&assetDatamodel.Asset{}).
		Where("id = ? AND status = ?", assetID, string(asset.StatusUnderMaintenance)).
		Updates(map[string]interface{}{
			"status":     string(asset.StatusAvailable),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return transitionConflict(db, assetID)
	}
	return nil
}

// transitionConflict disambiguates a failed conditional update: a missing row
// is a not-found, an existing row reports the state that failed the
// precondition.
func transitionConflict(db *gorm.DB, assetID int64) error {
	var dm assetDatamodel.Asset
	if err := db.Where("id = ?", assetID).First(&dm).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return asset.ErrNotFound
		}
		return err
	}
	return &asset.TransitionError{AssetID: assetID, Status: asset.Status(dm.Status)}
}
