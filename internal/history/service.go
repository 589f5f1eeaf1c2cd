package history

import (
	"log/slog"
	"time"
)

// Repository is append-and-read only. There is deliberately no update or
// delete: the ledger is an audit trail.
type Repository interface {
	Append(e *Entry) error
	GetAll(limit, offset int) ([]*Entry, error)
	GetByAsset(assetID int64, limit, offset int) ([]*Entry, error)
}

// Service exposes ledger queries and the best-effort append used by the
// event subscriber. An append failure is logged and swallowed: history is
// advisory, never the system of record for current asset state.
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

// Record appends a ledger entry. The returned error is for the caller's
// logging only; workflows never roll back on it.
func (s *Service) Record(assetID, userID int64, actionType, note string, occurredAt time.Time) error {
	e := &Entry{
		AssetID:    assetID,
		UserID:     userID,
		ActionType: actionType,
		Note:       note,
		OccurredAt: occurredAt,
		CreatedAt:  time.Now(),
	}

	if err := s.repo.Append(e); err != nil {
		s.logger.Error("failed to append history entry",
			"error", err,
			"asset_id", assetID,
			"action_type", actionType)
		return err
	}

	return nil
}

func (s *Service) ListAll(limit, offset int) ([]*Entry, error) {
	entries, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list history", "error", err)
		return nil, err
	}
	return entries, nil
}

func (s *Service) ListByAsset(assetID int64, limit, offset int) ([]*Entry, error) {
	entries, err := s.repo.GetByAsset(assetID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list asset history", "error", err, "asset_id", assetID)
		return nil, err
	}
	return entries, nil
}
