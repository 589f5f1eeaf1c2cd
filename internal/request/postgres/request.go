package postgres

import (
	"errors"
	"time"

	"github.com/frahmantamala/asset-management/internal/asset"
	assetPostgres "github.com/frahmantamala/asset-management/internal/asset/postgres"
	requestDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/request"
	"github.com/frahmantamala/asset-management/internal/request"
	"gorm.io/gorm"
)

// RequestRepository implements the request.Repository interface using GORM.
type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Create(req *request.AssetRequest) error {
	dm := request.ToDataModel(req)
	if err := r.db.Create(dm).Error; err != nil {
		return err
	}
	req.ID = dm.ID
	req.CreatedAt = dm.CreatedAt
	req.UpdatedAt = dm.UpdatedAt
	return nil
}

func (r *RequestRepository) GetByID(id int64) (*request.AssetRequest, error) {
	var dm requestDatamodel.AssetRequest
	err := r.db.Where("id = ?", id).First(&dm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, request.ErrNotFound
		}
		return nil, err
	}
	return request.FromDataModel(&dm), nil
}

func (r *RequestRepository) GetAll(limit, offset int) ([]*request.AssetRequest, error) {
	var dms []*requestDatamodel.AssetRequest
	err := r.db.Order("requested_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return request.FromDataModelSlice(dms), nil
}

func (r *RequestRepository) GetByRequester(userID int64, limit, offset int) ([]*request.AssetRequest, error) {
	var dms []*requestDatamodel.AssetRequest
	err := r.db.Where("requested_by = ?", userID).
		Order("requested_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return request.FromDataModelSlice(dms), nil
}

// Approve resolves a pending request and assigns the asset to the requester
// in one transaction. If the asset is no longer available the whole
// transaction rolls back: the request stays pending and the asset keeps its
// current state.
func (r *RequestRepository) Approve(requestID, adminID int64) (*request.AssetRequest, error) {
	var dm requestDatamodel.AssetRequest
	now := time.Now()

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", requestID).First(&dm).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return request.ErrNotFound
			}
			return err
		}

		res := tx.Model(&requestDatamodel.AssetRequest{}).
			Where("id = ? AND status = ?", requestID, request.StatusPending).
			Updates(map[string]interface{}{
				"status":      request.StatusApproved,
				"resolved_at": now,
				"resolved_by": adminID,
				"updated_at":  now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return request.ErrAlreadyResolved
		}

		if err := assetPostgres.MarkAssigned(tx, dm.AssetID, dm.RequestedBy, now); err != nil {
			return r.approveConflict(err)
		}

		dm.Status = request.StatusApproved
		dm.ResolvedAt = &now
		dm.ResolvedBy = &adminID
		dm.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	return request.FromDataModel(&dm), nil
}

// approveConflict translates a failed assignment into the request module's
// vocabulary; the rollback around it keeps the request pending.
func (r *RequestRepository) approveConflict(err error) error {
	if errors.Is(err, asset.ErrNotFound) {
		return request.ErrAssetNotFound
	}
	var conflict *asset.TransitionError
	if errors.As(err, &conflict) {
		if conflict.Status == asset.StatusAssigned {
			return request.ErrAlreadyAssigned
		}
		return request.ErrNotAvailable
	}
	return err
}

// Reject flips a pending request to rejected. No asset mutation.
func (r *RequestRepository) Reject(requestID, adminID int64) (*request.AssetRequest, error) {
	var dm requestDatamodel.AssetRequest
	now := time.Now()

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", requestID).First(&dm).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return request.ErrNotFound
			}
			return err
		}

		res := tx.Model(&requestDatamodel.AssetRequest{}).
			Where("id = ? AND status = ?", requestID, request.StatusPending).
			Updates(map[string]interface{}{
				"status":      request.StatusRejected,
				"resolved_at": now,
				"resolved_by": adminID,
				"updated_at":  now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return request.ErrAlreadyResolved
		}

		dm.Status = request.StatusRejected
		dm.ResolvedAt = &now
		dm.ResolvedBy = &adminID
		dm.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	return request.FromDataModel(&dm), nil
}
