package asset

import (
	errors "github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/core/common/validation"
)

// CreateAssetDTO is the request payload for registering a new asset.
type CreateAssetDTO struct {
	AssetTag     string `json:"asset_tag"`
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer,omitempty"`
	Category     string `json:"category,omitempty"`
	Location     string `json:"location,omitempty"`
}

func (dto CreateAssetDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("asset_tag", dto.AssetTag).Required().MinLength(2).MaxLength(64)
	v.Field("name", dto.Name).Required().MaxLength(255)
	v.Field("category", dto.Category).MaxLength(100)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// UpdateAssetDTO updates descriptive fields only. Lifecycle status is owned
// by the workflows and cannot be set through this payload.
type UpdateAssetDTO struct {
	Name         *string `json:"name,omitempty"`
	Manufacturer *string `json:"manufacturer,omitempty"`
	Category     *string `json:"category,omitempty"`
	Location     *string `json:"location,omitempty"`
}

func (dto UpdateAssetDTO) Validate() error {
	if dto.Name != nil && *dto.Name == "" {
		return errors.NewValidationFieldError("name", "name cannot be empty", errors.ErrCodeValidationFailed)
	}
	if dto.Name != nil && len(*dto.Name) > 255 {
		return errors.NewValidationFieldError("name", "name must not exceed 255 characters", errors.ErrCodeValidationFailed)
	}
	return nil
}
