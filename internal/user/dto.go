package user

import (
	errors "github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/core/common/validation"
)

// CreateUserDTO is the request payload for registering a new user.
type CreateUserDTO struct {
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Password    string   `json:"password"`
	Department  string   `json:"department,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

func (dto CreateUserDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("email", dto.Email).Required().MaxLength(255)
	v.Field("name", dto.Name).Required().MaxLength(255)
	v.Field("password", dto.Password).Required().MinLength(8)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// UpdateUserDTO updates profile fields. Email and password stay out of this
// payload; password changes go through a dedicated flow.
type UpdateUserDTO struct {
	Name       *string `json:"name,omitempty"`
	Department *string `json:"department,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

func (dto UpdateUserDTO) Validate() error {
	if dto.Name != nil && *dto.Name == "" {
		return errors.NewValidationFieldError("name", "name cannot be empty", errors.ErrCodeValidationFailed)
	}
	if dto.Name != nil && len(*dto.Name) > 255 {
		return errors.NewValidationFieldError("name", "name must not exceed 255 characters", errors.ErrCodeValidationFailed)
	}
	return nil
}

// GrantPermissionsDTO replaces the user's permission grants.
type GrantPermissionsDTO struct {
	Permissions []string `json:"permissions"`
}

func (dto GrantPermissionsDTO) Validate() error {
	if len(dto.Permissions) == 0 {
		return errors.NewValidationFieldError("permissions", "permissions cannot be empty", errors.ErrCodeValidationFailed)
	}
	return nil
}
