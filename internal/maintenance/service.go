package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/asset-management/internal/core/events"
)

// Repository defines the data access methods for maintenance requests.
// Submit creates the request and moves the asset into maintenance in one
// transaction; Complete resolves the request and releases the asset the same
// way.
type Repository interface {
	Submit(m *MaintenanceRequest) error
	Schedule(id int64) (*MaintenanceRequest, error)
	Complete(id int64) (*MaintenanceRequest, error)
	GetByID(id int64) (*MaintenanceRequest, error)
	GetAll(limit, offset int) ([]*MaintenanceRequest, error)
	GetByRequester(userID int64, limit, offset int) ([]*MaintenanceRequest, error)
}

// Publisher pushes lifecycle events toward the history ledger.
type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service handles the maintenance workflow.
type Service struct {
	repo   Repository
	bus    Publisher
	logger *slog.Logger
}

func NewService(repo Repository, bus Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// Submit reports an asset for maintenance. The asset goes under maintenance
// immediately, without an approval gate; any existing assignment is cleared
// so the assignment invariant keeps holding while the asset is in the shop.
func (s *Service) Submit(ctx context.Context, userID int64, dto SubmitMaintenanceDTO) (*MaintenanceRequest, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("maintenance validation failed", "error", err, "user_id", userID)
		return nil, err
	}

	now := time.Now()
	m := &MaintenanceRequest{
		AssetID:     dto.AssetID,
		RequestedBy: userID,
		Task:        dto.Task,
		Status:      StatusPending,
		RequestedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Submit(m); err != nil {
		s.logger.Warn("maintenance request rejected",
			"error", err,
			"asset_id", dto.AssetID,
			"user_id", userID)
		return nil, err
	}

	s.logger.Info("maintenance request submitted",
		"request_id", m.ID,
		"asset_id", dto.AssetID,
		"user_id", userID)

	if err := s.bus.Publish(ctx, events.NewMaintenanceRequestedEvent(dto.AssetID, userID, dto.Task)); err != nil {
		s.logger.Error("failed to publish maintenance event", "error", err, "request_id", m.ID)
	}

	return m, nil
}

// UpdateStatus moves a maintenance request to scheduled or completed.
// Completion releases the asset back to available.
func (s *Service) UpdateStatus(ctx context.Context, requestID, adminID int64, dto UpdateStatusDTO) (*MaintenanceRequest, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("maintenance status validation failed", "error", err, "request_id", requestID)
		return nil, err
	}

	switch dto.Status {
	case StatusScheduled:
		m, err := s.repo.Schedule(requestID)
		if err != nil {
			s.logger.Warn("maintenance scheduling failed",
				"error", err,
				"request_id", requestID,
				"admin_id", adminID)
			return nil, err
		}

		s.logger.Info("maintenance scheduled", "request_id", requestID, "asset_id", m.AssetID, "admin_id", adminID)

		if err := s.bus.Publish(ctx, events.NewMaintenanceScheduledEvent(m.AssetID, adminID)); err != nil {
			s.logger.Error("failed to publish scheduling event", "error", err, "request_id", requestID)
		}
		return m, nil

	case StatusCompleted:
		m, err := s.repo.Complete(requestID)
		if err != nil {
			s.logger.Warn("maintenance completion failed",
				"error", err,
				"request_id", requestID,
				"admin_id", adminID)
			return nil, err
		}

		s.logger.Info("maintenance completed", "request_id", requestID, "asset_id", m.AssetID, "admin_id", adminID)

		if err := s.bus.Publish(ctx, events.NewMaintenanceCompletedEvent(m.AssetID, adminID)); err != nil {
			s.logger.Error("failed to publish completion event", "error", err, "request_id", requestID)
		}
		return m, nil
	}

	return nil, ErrInvalidStatus
}

func (s *Service) GetRequest(id int64) (*MaintenanceRequest, error) {
	m, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get maintenance request", "error", err, "request_id", id)
		return nil, ErrNotFound
	}
	return m, nil
}

func (s *Service) ListAll(limit, offset int) ([]*MaintenanceRequest, error) {
	requests, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list maintenance requests", "error", err)
		return nil, err
	}
	return requests, nil
}

func (s *Service) ListByRequester(userID int64, limit, offset int) ([]*MaintenanceRequest, error) {
	requests, err := s.repo.GetByRequester(userID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list user maintenance requests", "error", err, "user_id", userID)
		return nil, err
	}
	return requests, nil
}
