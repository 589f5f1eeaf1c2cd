package allocation

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/asset-management/internal/core/events"
	"github.com/frahmantamala/asset-management/internal/user"
)

// Repository defines the data access methods for the allocation workflow.
// AssignAsset and ReturnAsset are atomic: the status check and the write
// happen in one conditional update (plus, for returns, the returned-asset
// insert in the same transaction), so two racing callers cannot both win.
type Repository interface {
	AssignAsset(assetID, userID int64, date time.Time) error
	ReturnAsset(assetID, callerID int64, reason, notes string) (*ReturnedAsset, error)
	ListReturns(limit, offset int) ([]*ReturnedAsset, error)
}

// UserDirectory is the slice of the user module the workflow needs.
type UserDirectory interface {
	GetByID(userID int64) (*user.User, error)
}

// Publisher pushes lifecycle events toward the history ledger.
type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service handles assign/return business logic.
type Service struct {
	repo   Repository
	users  UserDirectory
	bus    Publisher
	logger *slog.Logger
}

func NewService(repo Repository, users UserDirectory, bus Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		bus:    bus,
		logger: logger,
	}
}

// Assign binds an available asset to a user. A non-available asset is a
// conflict, reported without mutating anything.
func (s *Service) Assign(ctx context.Context, assetID int64, dto AssignAssetDTO) error {
	if err := dto.Validate(); err != nil {
		s.logger.Error("assign validation failed", "error", err, "asset_id", assetID)
		return err
	}

	assignee, err := s.users.GetByID(dto.UserID)
	if err != nil {
		s.logger.Warn("assign target user not found", "user_id", dto.UserID, "asset_id", assetID)
		return ErrUserNotFound
	}
	if !assignee.IsActive {
		s.logger.Warn("assign target user inactive", "user_id", dto.UserID, "asset_id", assetID)
		return ErrUserInactive
	}

	date := time.Now()
	if dto.AssignedDate != nil {
		date = *dto.AssignedDate
	}

	if err := s.repo.AssignAsset(assetID, dto.UserID, date); err != nil {
		s.logger.Warn("asset assignment rejected",
			"error", err,
			"asset_id", assetID,
			"user_id", dto.UserID)
		return err
	}

	s.logger.Info("asset assigned",
		"asset_id", assetID,
		"user_id", dto.UserID,
		"assigned_date", date)

	if err := s.bus.Publish(ctx, events.NewAssetAssignedEvent(assetID, dto.UserID, dto.Note)); err != nil {
		s.logger.Error("failed to publish assignment event", "error", err, "asset_id", assetID)
	}

	return nil
}

// Return reverses an assignment. Only the current assignee can return the
// asset; anyone else gets a conflict and the asset is untouched.
func (s *Service) Return(ctx context.Context, assetID, callerID int64, dto ReturnAssetDTO) (*ReturnedAsset, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("return validation failed", "error", err, "asset_id", assetID)
		return nil, err
	}

	returned, err := s.repo.ReturnAsset(assetID, callerID, dto.Reason, dto.Notes)
	if err != nil {
		s.logger.Warn("asset return rejected",
			"error", err,
			"asset_id", assetID,
			"caller_id", callerID)
		return nil, err
	}

	s.logger.Info("asset returned",
		"asset_id", assetID,
		"returned_by", callerID,
		"reason", dto.Reason)

	if err := s.bus.Publish(ctx, events.NewAssetReturnedEvent(assetID, callerID, dto.Reason)); err != nil {
		s.logger.Error("failed to publish return event", "error", err, "asset_id", assetID)
	}

	return returned, nil
}

func (s *Service) ListReturns(limit, offset int) ([]*ReturnedAsset, error) {
	returns, err := s.repo.ListReturns(limit, offset)
	if err != nil {
		s.logger.Error("failed to list returns", "error", err)
		return nil, err
	}
	return returns, nil
}
