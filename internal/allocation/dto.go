package allocation

import (
	"time"

	"github.com/frahmantamala/asset-management/internal/core/common/validation"
)

// AssignAssetDTO is the request payload for assigning an asset to a user.
type AssignAssetDTO struct {
	UserID       int64      `json:"user_id"`
	AssignedDate *time.Time `json:"assigned_date,omitempty"`
	Note         string     `json:"note,omitempty"`
}

func (dto AssignAssetDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("user_id", dto.UserID).Required()
	v.Field("note", dto.Note).MaxLength(500)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// ReturnAssetDTO is the request payload for returning an assigned asset.
type ReturnAssetDTO struct {
	Reason string `json:"reason"`
	Notes  string `json:"notes,omitempty"`
}

func (dto ReturnAssetDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("reason", dto.Reason).Required().MaxLength(255)
	v.Field("notes", dto.Notes).MaxLength(1000)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
