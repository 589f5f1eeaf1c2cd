package asset

import (
	"errors"
	"fmt"
	"time"

	assetDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/asset"
)

// Status is the asset lifecycle state. Transitions happen only through the
// conditional repository updates, so an illegal transition is a conflict
// error at the database row, never a silent overwrite.
type Status string

const (
	StatusAvailable        Status = "available"
	StatusAssigned         Status = "assigned"
	StatusUnderMaintenance Status = "under_maintenance"

	// StatusRetired is representable but no workflow currently sets it.
	StatusRetired Status = "retired"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusAssigned, StatusUnderMaintenance, StatusRetired:
		return true
	}
	return false
}

type Asset struct {
	ID           int64      `json:"id"`
	AssetTag     string     `json:"asset_tag"`
	Name         string     `json:"name"`
	Manufacturer string     `json:"manufacturer,omitempty"`
	Category     string     `json:"category,omitempty"`
	Location     string     `json:"location,omitempty"`
	Status       Status     `json:"status"`
	AssignedTo   *int64     `json:"assigned_to,omitempty"`
	AssignedDate *time.Time `json:"assigned_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (a *Asset) CanBeAssigned() bool {
	return a.Status == StatusAvailable
}

func (a *Asset) CanEnterMaintenance() bool {
	return a.Status == StatusAvailable || a.Status == StatusAssigned
}

func (a *Asset) IsAssignedTo(userID int64) bool {
	return a.Status == StatusAssigned && a.AssignedTo != nil && *a.AssignedTo == userID
}

var (
	ErrNotFound      = errors.New("asset not found")
	ErrTagTaken      = errors.New("asset tag already in use")
	ErrInvalidStatus = errors.New("unknown asset status")
)

// TransitionError reports a conditional status update that matched a row but
// changed nothing: the asset exists and Status is the state that failed the
// precondition. Workflow packages translate it into their own conflict
// errors.
type TransitionError struct {
	AssetID int64
	Status  Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("asset %d is %s", e.AssetID, e.Status)
}

func ToDataModel(a *Asset) *assetDatamodel.Asset {
	return &assetDatamodel.Asset{
		ID:           a.ID,
		AssetTag:     a.AssetTag,
		Name:         a.Name,
		Manufacturer: a.Manufacturer,
		Category:     a.Category,
		Location:     a.Location,
		Status:       string(a.Status),
		AssignedTo:   a.AssignedTo,
		AssignedDate: a.AssignedDate,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func FromDataModel(a *assetDatamodel.Asset) *Asset {
	return &Asset{
		ID:           a.ID,
		AssetTag:     a.AssetTag,
		Name:         a.Name,
		Manufacturer: a.Manufacturer,
		Category:     a.Category,
		Location:     a.Location,
		Status:       Status(a.Status),
		AssignedTo:   a.AssignedTo,
		AssignedDate: a.AssignedDate,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func FromDataModelSlice(assets []*assetDatamodel.Asset) []*Asset {
	result := make([]*Asset, len(assets))
	for i, a := range assets {
		result[i] = FromDataModel(a)
	}
	return result
}
