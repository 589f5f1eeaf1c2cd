package request

import (
	"errors"
	"time"

	requestDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/request"
)

type AssetRequest struct {
	ID          int64      `json:"id"`
	AssetID     int64      `json:"asset_id"`
	RequestedBy int64      `json:"requested_by"`
	Reason      string     `json:"reason,omitempty"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requested_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy  *int64     `json:"resolved_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// IsPending reports whether the request can still be resolved. Resolution is
// one-way: an approved or rejected request never changes again.
func (r *AssetRequest) IsPending() bool {
	return r.Status == StatusPending
}

var (
	ErrNotFound        = errors.New("asset request not found")
	ErrAlreadyResolved = errors.New("asset request already resolved")
	ErrAlreadyAssigned = errors.New("asset is already assigned")
	ErrAssetNotFound   = errors.New("asset not found")
	ErrNotAvailable    = errors.New("asset is not available")
	ErrInvalidDecision = errors.New("decision must be approved or rejected")
)

func ToDataModel(r *AssetRequest) *requestDatamodel.AssetRequest {
	return &requestDatamodel.AssetRequest{
		ID:          r.ID,
		AssetID:     r.AssetID,
		RequestedBy: r.RequestedBy,
		Reason:      r.Reason,
		Status:      r.Status,
		RequestedAt: r.RequestedAt,
		ResolvedAt:  r.ResolvedAt,
		ResolvedBy:  r.ResolvedBy,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func FromDataModel(r *requestDatamodel.AssetRequest) *AssetRequest {
	return &AssetRequest{
		ID:          r.ID,
		AssetID:     r.AssetID,
		RequestedBy: r.RequestedBy,
		Reason:      r.Reason,
		Status:      r.Status,
		RequestedAt: r.RequestedAt,
		ResolvedAt:  r.ResolvedAt,
		ResolvedBy:  r.ResolvedBy,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func FromDataModelSlice(requests []*requestDatamodel.AssetRequest) []*AssetRequest {
	result := make([]*AssetRequest, len(requests))
	for i, r := range requests {
		result[i] = FromDataModel(r)
	}
	return result
}
