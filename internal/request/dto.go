package request

import (
	errors "github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/core/common/validation"
)

// SubmitRequestDTO is the payload for an employee asking for an asset.
type SubmitRequestDTO struct {
	AssetID int64  `json:"asset_id"`
	Reason  string `json:"reason"`
}

func (dto SubmitRequestDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("asset_id", dto.AssetID).Required()
	v.Field("reason", dto.Reason).Required().MaxLength(500)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// ResolveRequestDTO carries the admin decision on a pending request.
type ResolveRequestDTO struct {
	Decision string `json:"decision"`
	Note     string `json:"note,omitempty"`
}

func (dto ResolveRequestDTO) Validate() error {
	if dto.Decision != StatusApproved && dto.Decision != StatusRejected {
		return errors.NewValidationFieldError("decision",
			"decision must be either 'approved' or 'rejected'",
			errors.ErrCodeInvalidStatus)
	}
	return nil
}
