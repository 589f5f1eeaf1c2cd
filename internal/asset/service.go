package asset

import (
	"log/slog"
	"time"
)

// Repository defines the data access methods for the asset registry. Status
// and assignment columns are owned by the workflow repositories, which share
// the conditional transition helpers in the postgres package; the registry
// only reads them.
type Repository interface {
	Create(a *Asset) error
	GetByID(id int64) (*Asset, error)
	GetByTag(tag string) (*Asset, error)
	GetAll(limit, offset int, status Status) ([]*Asset, error)
	Update(a *Asset) error
}

// Service handles asset registry business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateAsset registers a new asset. The asset tag must be globally unique;
// the tag is checked up front and the unique index backs the check up.
func (s *Service) CreateAsset(dto CreateAssetDTO) (*Asset, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("asset validation failed", "error", err, "asset_tag", dto.AssetTag)
		return nil, err
	}

	if existing, err := s.repo.GetByTag(dto.AssetTag); err == nil && existing != nil {
		s.logger.Warn("asset tag already in use", "asset_tag", dto.AssetTag)
		return nil, ErrTagTaken
	}

	now := time.Now()
	a := &Asset{
		AssetTag:     dto.AssetTag,
		Name:         dto.Name,
		Manufacturer: dto.Manufacturer,
		Category:     dto.Category,
		Location:     dto.Location,
		Status:       StatusAvailable,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(a); err != nil {
		s.logger.Error("failed to create asset", "error", err, "asset_tag", dto.AssetTag)
		return nil, err
	}

	s.logger.Info("asset created",
		"asset_id", a.ID,
		"asset_tag", a.AssetTag,
		"status", a.Status)

	return a, nil
}

func (s *Service) GetAsset(id int64) (*Asset, error) {
	a, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get asset", "error", err, "asset_id", id)
		return nil, ErrNotFound
	}
	return a, nil
}

// ListAssets returns a page of assets, optionally filtered by status. An
// unknown status value is a validation error, not an empty page, so a typo'd
// filter does not look like an empty registry.
func (s *Service) ListAssets(limit, offset int, status string) ([]*Asset, error) {
	filter := Status(status)
	if status != "" && !filter.Valid() {
		s.logger.Warn("rejected unknown status filter", "status", status)
		return nil, ErrInvalidStatus
	}

	assets, err := s.repo.GetAll(limit, offset, filter)
	if err != nil {
		s.logger.Error("failed to list assets", "error", err)
		return nil, err
	}
	return assets, nil
}

// UpdateAsset changes descriptive fields. Status and assignment are owned by
// the allocation, request, and maintenance workflows.
func (s *Service) UpdateAsset(id int64, dto UpdateAssetDTO) (*Asset, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("asset not found for update", "error", err, "asset_id", id)
		return nil, ErrNotFound
	}

	if dto.Name != nil {
		a.Name = *dto.Name
	}
	if dto.Manufacturer != nil {
		a.Manufacturer = *dto.Manufacturer
	}
	if dto.Category != nil {
		a.Category = *dto.Category
	}
	if dto.Location != nil {
		a.Location = *dto.Location
	}
	a.UpdatedAt = time.Now()

	if err := s.repo.Update(a); err != nil {
		s.logger.Error("failed to update asset", "error", err, "asset_id", id)
		return nil, err
	}

	s.logger.Info("asset updated", "asset_id", id, "asset_tag", a.AssetTag)
	return a, nil
}
