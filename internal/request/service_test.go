package request_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/asset-management/internal/core/events"
	"github.com/frahmantamala/asset-management/internal/request"
)

func TestRequest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Request Module Suite")
}

// Mock repository for testing
type mockRequestRepository struct {
	requests    map[int64]*request.AssetRequest
	assetStatus map[int64]string
	nextID      int64
}

func newMockRequestRepository() *mockRequestRepository {
	return &mockRequestRepository{
		requests:    make(map[int64]*request.AssetRequest),
		assetStatus: make(map[int64]string),
		nextID:      1,
	}
}

func (m *mockRequestRepository) Create(r *request.AssetRequest) error {
	r.ID = m.nextID
	m.nextID++
	m.requests[r.ID] = r
	return nil
}

func (m *mockRequestRepository) GetByID(id int64) (*request.AssetRequest, error) {
	r, exists := m.requests[id]
	if !exists {
		return nil, request.ErrNotFound
	}
	return r, nil
}

func (m *mockRequestRepository) GetAll(limit, offset int) ([]*request.AssetRequest, error) {
	var out []*request.AssetRequest
	for i := int64(1); i < m.nextID; i++ {
		if r, ok := m.requests[i]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRequestRepository) GetByRequester(userID int64, limit, offset int) ([]*request.AssetRequest, error) {
	var out []*request.AssetRequest
	for i := int64(1); i < m.nextID; i++ {
		if r, ok := m.requests[i]; ok && r.RequestedBy == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRequestRepository) Approve(requestID, adminID int64) (*request.AssetRequest, error) {
	r, exists := m.requests[requestID]
	if !exists {
		return nil, request.ErrNotFound
	}
	if !r.IsPending() {
		return nil, request.ErrAlreadyResolved
	}
	if m.assetStatus[r.AssetID] != "available" {
		return nil, request.ErrAlreadyAssigned
	}
	now := time.Now()
	r.Status = request.StatusApproved
	r.ResolvedAt = &now
	r.ResolvedBy = &adminID
	m.assetStatus[r.AssetID] = "assigned"
	return r, nil
}

func (m *mockRequestRepository) Reject(requestID, adminID int64) (*request.AssetRequest, error) {
	r, exists := m.requests[requestID]
	if !exists {
		return nil, request.ErrNotFound
	}
	if !r.IsPending() {
		return nil, request.ErrAlreadyResolved
	}
	now := time.Now()
	r.Status = request.StatusRejected
	r.ResolvedAt = &now
	r.ResolvedBy = &adminID
	return r, nil
}

type recordingBus struct {
	published []events.Event
}

func (b *recordingBus) Publish(ctx context.Context, event events.Event) error {
	b.published = append(b.published, event)
	return nil
}

var _ = Describe("Request Service", func() {
	var (
		service  *request.Service
		mockRepo *mockRequestRepository
		bus      *recordingBus
		ctx      context.Context
	)

	BeforeEach(func() {
		mockRepo = newMockRequestRepository()
		bus = &recordingBus{}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = request.NewService(mockRepo, bus, logger)
		ctx = context.Background()
	})

	Describe("Submit", func() {
		It("creates a pending request and publishes the event", func() {
			req, err := service.Submit(ctx, 7, request.SubmitRequestDTO{AssetID: 1, Reason: "new hire"})

			Expect(err).NotTo(HaveOccurred())
			Expect(req.Status).To(Equal(request.StatusPending))
			Expect(req.RequestedBy).To(Equal(int64(7)))
			Expect(bus.published).To(HaveLen(1))
			Expect(bus.published[0].EventType()).To(Equal(events.EventTypeAssetRequested))
		})

		It("accepts a request for a busy asset; availability is checked at approval", func() {
			mockRepo.assetStatus[1] = "assigned"

			req, err := service.Submit(ctx, 7, request.SubmitRequestDTO{AssetID: 1, Reason: "queueing"})
			Expect(err).NotTo(HaveOccurred())
			Expect(req.Status).To(Equal(request.StatusPending))
		})

		It("requires a reason", func() {
			_, err := service.Submit(ctx, 7, request.SubmitRequestDTO{AssetID: 1})
			Expect(err).To(HaveOccurred())
			Expect(bus.published).To(BeEmpty())
		})

		It("requires an asset", func() {
			_, err := service.Submit(ctx, 7, request.SubmitRequestDTO{Reason: "no asset"})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Resolve", func() {
		var pending *request.AssetRequest

		BeforeEach(func() {
			mockRepo.assetStatus[1] = "available"
			var err error
			pending, err = service.Submit(ctx, 7, request.SubmitRequestDTO{AssetID: 1, Reason: "need it"})
			Expect(err).NotTo(HaveOccurred())
			bus.published = nil
		})

		It("approval assigns the asset to the requester", func() {
			resolved, err := service.Resolve(ctx, pending.ID, 1, request.ResolveRequestDTO{Decision: "approved"})

			Expect(err).NotTo(HaveOccurred())
			Expect(resolved.Status).To(Equal(request.StatusApproved))
			Expect(mockRepo.assetStatus[1]).To(Equal("assigned"))
			Expect(bus.published).To(HaveLen(1))
			Expect(bus.published[0].EventType()).To(Equal(events.EventTypeAssetAssigned))
		})

		It("rejection leaves the asset alone", func() {
			resolved, err := service.Resolve(ctx, pending.ID, 1, request.ResolveRequestDTO{Decision: "rejected", Note: "budget"})

			Expect(err).NotTo(HaveOccurred())
			Expect(resolved.Status).To(Equal(request.StatusRejected))
			Expect(mockRepo.assetStatus[1]).To(Equal("available"))
			Expect(bus.published).To(HaveLen(1))
			Expect(bus.published[0].EventType()).To(Equal(events.EventTypeRequestRejected))
		})

		It("reports a conflict when the asset was taken before approval", func() {
			mockRepo.assetStatus[1] = "assigned"

			_, err := service.Resolve(ctx, pending.ID, 1, request.ResolveRequestDTO{Decision: "approved"})

			Expect(err).To(Equal(request.ErrAlreadyAssigned))
			Expect(mockRepo.requests[pending.ID].Status).To(Equal(request.StatusPending))
			Expect(bus.published).To(BeEmpty())
		})

		It("refuses to resolve twice", func() {
			_, err := service.Resolve(ctx, pending.ID, 1, request.ResolveRequestDTO{Decision: "rejected"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Resolve(ctx, pending.ID, 2, request.ResolveRequestDTO{Decision: "approved"})
			Expect(err).To(Equal(request.ErrAlreadyResolved))
		})

		It("rejects an unknown decision", func() {
			_, err := service.Resolve(ctx, pending.ID, 1, request.ResolveRequestDTO{Decision: "maybe"})
			Expect(err).To(HaveOccurred())
		})

		It("reports a missing request", func() {
			_, err := service.Resolve(ctx, 42, 1, request.ResolveRequestDTO{Decision: "approved"})
			Expect(err).To(Equal(request.ErrNotFound))
		})
	})

	Describe("Listing", func() {
		It("separates a requester's view from the full list", func() {
			_, err := service.Submit(ctx, 7, request.SubmitRequestDTO{AssetID: 1, Reason: "a"})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Submit(ctx, 9, request.SubmitRequestDTO{AssetID: 2, Reason: "b"})
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
