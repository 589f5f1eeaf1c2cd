package user

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/asset-management/internal/core/events"
)

// Repository defines the data access methods for users and their permission
// grants. Create and Delete are multi-table writes and run transactionally.
type Repository interface {
	Create(u *User, permissions []string) error
	GetByID(userID int64) (*User, error)
	GetByEmail(email string) (*User, error)
	GetAll(limit, offset int) ([]*User, error)
	Update(u *User) error
	GetPermissions(userID int64) ([]string, error)
	SetPermissions(userID int64, permissions []string, grantedBy int64) error
	Delete(userID int64) (releasedAssetIDs []int64, err error)
}

// PasswordHasher hashes plaintext passwords for storage.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// Publisher pushes lifecycle events toward the history ledger.
type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo   Repository
	hasher PasswordHasher
	bus    Publisher
	logger *slog.Logger
}

func NewService(repo Repository, hasher PasswordHasher, bus Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		bus:    bus,
		logger: logger,
	}
}

// Create registers a new user with an optional initial permission set.
func (s *Service) Create(ctx context.Context, dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("user validation failed", "error", err)
		return nil, err
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err == nil && existing != nil {
		s.logger.Warn("email already registered", "email", dto.Email)
		return nil, ErrEmailTaken
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, err
	}

	now := time.Now()
	u := &User{
		Email:        dto.Email,
		Name:         dto.Name,
		PasswordHash: hash,
		Department:   dto.Department,
		IsActive:     true,
		Permissions:  dto.Permissions,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(u, dto.Permissions); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, err
	}

	s.logger.Info("user created", "user_id", u.ID, "email", u.Email)
	return u, nil
}

// GetByID loads the user together with its permission names.
func (s *Service) GetByID(userID int64) (*User, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	perms, err := s.repo.GetPermissions(userID)
	if err != nil {
		s.logger.Error("failed to get user permissions", "error", err, "user_id", userID)
		return nil, err
	}
	u.Permissions = perms

	return u, nil
}

func (s *Service) List(limit, offset int) ([]*User, error) {
	users, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}

// Update applies profile changes to an existing user.
func (s *Service) Update(userID int64, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("user update validation failed", "error", err, "user_id", userID)
		return nil, err
	}

	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	if dto.Name != nil {
		u.Name = *dto.Name
	}
	if dto.Department != nil {
		u.Department = *dto.Department
	}
	if dto.IsActive != nil {
		u.IsActive = *dto.IsActive
	}
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("user updated", "user_id", userID)
	return u, nil
}

// GrantPermissions replaces the user's permission grants.
func (s *Service) GrantPermissions(userID, grantedBy int64, dto GrantPermissionsDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	if _, err := s.repo.GetByID(userID); err != nil {
		return ErrNotFound
	}

	if err := s.repo.SetPermissions(userID, dto.Permissions, grantedBy); err != nil {
		s.logger.Error("failed to set permissions", "error", err, "user_id", userID)
		return err
	}

	s.logger.Info("permissions granted", "user_id", userID, "granted_by", grantedBy, "permissions", dto.Permissions)
	return nil
}

// Delete removes a user. Assets still assigned to the user are released back
// to available in the same transaction, and an unassignment event is emitted
// for each released asset.
func (s *Service) Delete(ctx context.Context, userID, adminID int64) error {
	releasedAssets, err := s.repo.Delete(userID)
	if err != nil {
		s.logger.Warn("user deletion failed", "error", err, "user_id", userID)
		return err
	}

	s.logger.Info("user deleted", "user_id", userID, "admin_id", adminID, "released_assets", len(releasedAssets))

	for _, assetID := range releasedAssets {
		if err := s.bus.Publish(ctx, events.NewAssetUnassignedEvent(assetID, userID, "holder removed")); err != nil {
			s.logger.Error("failed to publish unassignment event", "error", err, "asset_id", assetID)
		}
	}

	return nil
}
