package allocation

import (
	"errors"
	"time"

	allocationDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/allocation"
)

// ReturnedAsset is the immutable record of a return event.
type ReturnedAsset struct {
	ID         int64     `json:"id"`
	AssetID    int64     `json:"asset_id"`
	ReturnedBy int64     `json:"returned_by"`
	Reason     string    `json:"reason,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	ReturnedAt time.Time `json:"returned_at"`
	CreatedAt  time.Time `json:"created_at"`
}

var (
	ErrAssetNotFound       = errors.New("asset not found")
	ErrNotAvailable        = errors.New("asset is not available")
	ErrNotAssignedToCaller = errors.New("asset is not assigned to the requesting user")
	ErrUserNotFound        = errors.New("user not found")
	ErrUserInactive        = errors.New("user is inactive")
)

func ToDataModel(r *ReturnedAsset) *allocationDatamodel.ReturnedAsset {
	return &allocationDatamodel.ReturnedAsset{
		ID:         r.ID,
		AssetID:    r.AssetID,
		ReturnedBy: r.ReturnedBy,
		Reason:     r.Reason,
		Notes:      r.Notes,
		ReturnedAt: r.ReturnedAt,
		CreatedAt:  r.CreatedAt,
	}
}

func FromDataModel(r *allocationDatamodel.ReturnedAsset) *ReturnedAsset {
	return &ReturnedAsset{
		ID:         r.ID,
		AssetID:    r.AssetID,
		ReturnedBy: r.ReturnedBy,
		Reason:     r.Reason,
		Notes:      r.Notes,
		ReturnedAt: r.ReturnedAt,
		CreatedAt:  r.CreatedAt,
	}
}

func FromDataModelSlice(returns []*allocationDatamodel.ReturnedAsset) []*ReturnedAsset {
	result := make([]*ReturnedAsset, len(returns))
	for i, r := range returns {
		result[i] = FromDataModel(r)
	}
	return result
}
