package maintenance_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/asset-management/internal/core/events"
	"github.com/frahmantamala/asset-management/internal/maintenance"
)

func TestMaintenance(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Maintenance Module Suite")
}

// mockMaintenanceRepository mirrors the real repository's transactional
// behavior: submitting pulls the asset into maintenance, completion releases
// it back to available.
type mockMaintenanceRepository struct {
	requests    map[int64]*maintenance.MaintenanceRequest
	assetStatus map[int64]string
	nextID      int64
}

func newMockMaintenanceRepository() *mockMaintenanceRepository {
	return &mockMaintenanceRepository{
		requests:    make(map[int64]*maintenance.MaintenanceRequest),
		assetStatus: make(map[int64]string),
		nextID:      1,
	}
}

func (m *mockMaintenanceRepository) Submit(req *maintenance.MaintenanceRequest) error {
	status, exists := m.assetStatus[req.AssetID]
	if !exists {
		return maintenance.ErrAssetNotFound
	}
	switch status {
	case "available", "assigned":
		m.assetStatus[req.AssetID] = "under_maintenance"
	case "under_maintenance":
		// request still recorded, asset already in the shop
	default:
		return maintenance.ErrAssetUnavailable
	}
	req.ID = m.nextID
	m.nextID++
	m.requests[req.ID] = req
	return nil
}

func (m *mockMaintenanceRepository) Schedule(id int64) (*maintenance.MaintenanceRequest, error) {
	req, exists := m.requests[id]
	if !exists {
		return nil, maintenance.ErrNotFound
	}
	if req.Status == maintenance.StatusCompleted {
		return nil, maintenance.ErrAlreadyCompleted
	}
	if req.Status != maintenance.StatusPending {
		return nil, maintenance.ErrInvalidStatus
	}
	req.Status = maintenance.StatusScheduled
	return req, nil
}

func (m *mockMaintenanceRepository) Complete(id int64) (*maintenance.MaintenanceRequest, error) {
	req, exists := m.requests[id]
	if !exists {
		return nil, maintenance.ErrNotFound
	}
	if req.Status == maintenance.StatusCompleted {
		return nil, maintenance.ErrAlreadyCompleted
	}
	now := time.Now()
	req.Status = maintenance.StatusCompleted
	req.CompletedAt = &now
	if m.assetStatus[req.AssetID] == "under_maintenance" {
		m.assetStatus[req.AssetID] = "available"
	}
	return req, nil
}

func (m *mockMaintenanceRepository) GetByID(id int64) (*maintenance.MaintenanceRequest, error) {
	req, exists := m.requests[id]
	if !exists {
		return nil, maintenance.ErrNotFound
	}
	return req, nil
}

func (m *mockMaintenanceRepository) GetAll(limit, offset int) ([]*maintenance.MaintenanceRequest, error) {
	var out []*maintenance.MaintenanceRequest
	for i := int64(1); i < m.nextID; i++ {
		if r, ok := m.requests[i]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockMaintenanceRepository) GetByRequester(userID int64, limit, offset int) ([]*maintenance.MaintenanceRequest, error) {
	var out []*maintenance.MaintenanceRequest
	for i := int64(1); i < m.nextID; i++ {
		if r, ok := m.requests[i]; ok && r.RequestedBy == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type recordingBus struct {
	published []events.Event
}

func (b *recordingBus) Publish(ctx context.Context, event events.Event) error {
	b.published = append(b.published, event)
	return nil
}

var _ = Describe("Maintenance Service", func() {
	var (
		service  *maintenance.Service
		mockRepo *mockMaintenanceRepository
		bus      *recordingBus
		ctx      context.Context
	)

	BeforeEach(func() {
		mockRepo = newMockMaintenanceRepository()
		bus = &recordingBus{}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = maintenance.NewService(mockRepo, bus, logger)
		ctx = context.Background()
	})

	Describe("Submit", func() {
		It("pulls an available asset straight into maintenance", func() {
			mockRepo.assetStatus[1] = "available"

			req, err := service.Submit(ctx, 7, maintenance.SubmitMaintenanceDTO{AssetID: 1, Task: "screen flickers"})

			Expect(err).NotTo(HaveOccurred())
			Expect(req.Status).To(Equal(maintenance.StatusPending))
			Expect(mockRepo.assetStatus[1]).To(Equal("under_maintenance"))
			Expect(bus.published).To(HaveLen(1))
			Expect(bus.published[0].EventType()).To(Equal(events.EventTypeMaintenanceRequested))
		})

		It("pulls an assigned asset into maintenance too", func() {
			mockRepo.assetStatus[1] = "assigned"

			_, err := service.Submit(ctx, 7, maintenance.SubmitMaintenanceDTO{AssetID: 1, Task: "keyboard broken"})

			Expect(err).NotTo(HaveOccurred())
			Expect(mockRepo.assetStatus[1]).To(Equal("under_maintenance"))
		})

		It("accepts a second report for an asset already in the shop", func() {
			mockRepo.assetStatus[1] = "available"
			_, err := service.Submit(ctx, 7, maintenance.SubmitMaintenanceDTO{AssetID: 1, Task: "first"})
			Expect(err).NotTo(HaveOccurred())

			second, err := service.Submit(ctx, 9, maintenance.SubmitMaintenanceDTO{AssetID: 1, Task: "second"})
			Expect(err).NotTo(HaveOccurred())
			Expect(second.ID).NotTo(BeZero())
		})

		It("reports a missing asset", func() {
			_, err := service.Submit(ctx, 7, maintenance.SubmitMaintenanceDTO{AssetID: 42, Task: "ghost"})
			Expect(err).To(Equal(maintenance.ErrAssetNotFound))
			Expect(bus.published).To(BeEmpty())
		})

		It("requires a task description", func() {
			mockRepo.assetStatus[1] = "available"
			_, err := service.Submit(ctx, 7, maintenance.SubmitMaintenanceDTO{AssetID: 1})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("UpdateStatus", func() {
		var req *maintenance.MaintenanceRequest

		BeforeEach(func() {
			mockRepo.assetStatus[1] = "available"
			var err error
			req, err = service.Submit(ctx, 7, maintenance.SubmitMaintenanceDTO{AssetID: 1, Task: "battery swap"})
			Expect(err).NotTo(HaveOccurred())
			bus.published = nil
		})

		It("schedules a pending request", func() {
			updated, err := service.UpdateStatus(ctx, req.ID, 1, maintenance.UpdateStatusDTO{Status: "scheduled"})

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(maintenance.StatusScheduled))
			Expect(mockRepo.assetStatus[1]).To(Equal("under_maintenance"))
			Expect(bus.published).To(HaveLen(1))
			Expect(bus.published[0].EventType()).To(Equal(events.EventTypeMaintenanceScheduled))
		})

		It("completion releases the asset back to available", func() {
			updated, err := service.UpdateStatus(ctx, req.ID, 1, maintenance.UpdateStatusDTO{Status: "completed"})

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(maintenance.StatusCompleted))
			Expect(updated.CompletedAt).NotTo(BeNil())
			Expect(mockRepo.assetStatus[1]).To(Equal("available"))
			Expect(bus.published[0].EventType()).To(Equal(events.EventTypeMaintenanceCompleted))
		})

		It("completes straight from pending, skipping scheduled", func() {
			updated, err := service.UpdateStatus(ctx, req.ID, 1, maintenance.UpdateStatusDTO{Status: "completed"})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(maintenance.StatusCompleted))
		})

		It("refuses to touch a completed request", func() {
			_, err := service.UpdateStatus(ctx, req.ID, 1, maintenance.UpdateStatusDTO{Status: "completed"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.UpdateStatus(ctx, req.ID, 1, maintenance.UpdateStatusDTO{Status: "scheduled"})
			Expect(err).To(Equal(maintenance.ErrAlreadyCompleted))
		})

		It("rejects an unknown status value before any lookup", func() {
			_, err := service.UpdateStatus(ctx, req.ID, 1, maintenance.UpdateStatusDTO{Status: "pending"})
			Expect(err).To(HaveOccurred())
			Expect(bus.published).To(BeEmpty())
		})

		It("reports a missing request", func() {
			_, err := service.UpdateStatus(ctx, 42, 1, maintenance.UpdateStatusDTO{Status: "scheduled"})
			Expect(err).To(Equal(maintenance.ErrNotFound))
		})
	})

	Describe("Listing", func() {
		It("separates a requester's view from the full list", func() {
			mockRepo.assetStatus[1] = "available"
			mockRepo.assetStatus[2] = "available"
			_, err := service.Submit(ctx, 7, maintenance.SubmitMaintenanceDTO{AssetID: 1, Task: "a"})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Submit(ctx, 9, maintenance.SubmitMaintenanceDTO{AssetID: 2, Task: "b"})
			Expect(err).NotTo(HaveOccurred())

			all, err := service.ListAll(20, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(2))

			mine, err := service.ListByRequester(7, 20, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(mine).To(HaveLen(1))
		})
	})
})
