package request

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/asset-management/internal/core/events"
)

// Repository defines the data access methods for asset requests. Approve and
// Reject are atomic: the pending check, the resolution, and (for approvals)
// the asset assignment run in a single transaction, and a failure anywhere
// leaves both the request and the asset untouched.
type Repository interface {
	Create(r *AssetRequest) error
	GetByID(id int64) (*AssetRequest, error)
	GetAll(limit, offset int) ([]*AssetRequest, error)
	GetByRequester(userID int64, limit, offset int) ([]*AssetRequest, error)
	Approve(requestID, adminID int64) (*AssetRequest, error)
	Reject(requestID, adminID int64) (*AssetRequest, error)
}

// Publisher pushes lifecycle events toward the history ledger.
type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service handles the request/approval workflow.
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

// Submit records a new asset request. There is deliberately no precondition
// on the asset's state; availability is checked at approval time.
func (s *Service) Submit(ctx context.Context, userID int64, dto SubmitRequestDTO) (*AssetRequest, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("request validation failed", "error", err, "user_id", userID)
		return nil, err
	}

	now := time.Now()
	req := &AssetRequest{
		AssetID:     dto.AssetID,
		RequestedBy: userID,
		Reason:      dto.Reason,
		Status:      StatusPending,
		RequestedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(req); err != nil {
		s.logger.Error("failed to create asset request", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("asset request submitted",
		"request_id", req.ID,
		"asset_id", dto.AssetID,
		"user_id", userID)

	if err := s.bus.Publish(ctx, events.NewAssetRequestedEvent(dto.AssetID, userID, dto.Reason)); err != nil {
		s.logger.Error("failed to publish request event", "error", err, "request_id", req.ID)
	}

	return req, nil
}

// Resolve applies an admin decision to a pending request. Approval assigns
// the asset to the original requester using the same conditional update as a
// direct assignment; if the asset was taken in the meantime the request
// stays pending and the asset keeps its current holder.
func (s *Service) Resolve(ctx context.Context, requestID, adminID int64, dto ResolveRequestDTO) (*AssetRequest, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("resolve validation failed", "error", err, "request_id", requestID)
		return nil, err
	}

	switch dto.Decision {
	case StatusApproved:
		req, err := s.repo.Approve(requestID, adminID)
		if err != nil {
			s.logger.Warn("request approval rejected",
				"error", err,
				"request_id", requestID,
				"admin_id", adminID)
			return nil, err
		}

		s.logger.Info("asset request approved",
			"request_id", requestID,
			"asset_id", req.AssetID,
			"assignee", req.RequestedBy,
			"admin_id", adminID)

		if err := s.bus.Publish(ctx, events.NewAssetAssignedEvent(req.AssetID, req.RequestedBy, dto.Note)); err != nil {
			s.logger.Error("failed to publish assignment event", "error", err, "request_id", requestID)
		}
		return req, nil

	case StatusRejected:
		req, err := s.repo.Reject(requestID, adminID)
		if err != nil {
			s.logger.Warn("request rejection failed",
				"error", err,
				"request_id", requestID,
				"admin_id", adminID)
			return nil, err
		}

		s.logger.Info("asset request rejected",
			"request_id", requestID,
			"asset_id", req.AssetID,
			"admin_id", adminID)

		if err := s.bus.Publish(ctx, events.NewRequestRejectedEvent(req.AssetID, req.RequestedBy, dto.Note)); err != nil {
			s.logger.Error("failed to publish rejection event", "error", err, "request_id", requestID)
		}
		return req, nil
	}

	return nil, ErrInvalidDecision
}

func (s *Service) GetRequest(id int64) (*AssetRequest, error) {
	req, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get asset request", "error", err, "request_id", id)
		return nil, ErrNotFound
	}
	return req, nil
}

func (s *Service) ListAll(limit, offset int) ([]*AssetRequest, error) {
	requests, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list asset requests", "error", err)
		return nil, err
	}
	return requests, nil
}

func (s *Service) ListByRequester(userID int64, limit, offset int) ([]*AssetRequest, error) {
	requests, err := s.repo.GetByRequester(userID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list user requests", "error", err, "user_id", userID)
		return nil, err
	}
	return requests, nil
}
