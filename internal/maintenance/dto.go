package maintenance

import (
	errors "github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/core/common/validation"
)

// SubmitMaintenanceDTO reports an asset as needing maintenance.
type SubmitMaintenanceDTO struct {
	AssetID int64  `json:"asset_id"`
	Task    string `json:"task"`
}

func (dto SubmitMaintenanceDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("asset_id", dto.AssetID).Required()
	v.Field("task", dto.Task).Required().MaxLength(1000)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// UpdateStatusDTO moves a maintenance request forward. Only scheduled and
// completed are accepted; anything else is rejected before any lookup.
type UpdateStatusDTO struct {
	Status string `json:"status"`
}

func (dto UpdateStatusDTO) Validate() error {
	if dto.Status != StatusScheduled && dto.Status != StatusCompleted {
		return errors.NewValidationFieldError("status",
			"status must be either 'scheduled' or 'completed'",
			errors.ErrCodeInvalidStatus)
	}
	return nil
}
