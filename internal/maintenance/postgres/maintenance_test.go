package postgres_test

import (
	"testing"
	"time"

	"github.com/frahmantamala/asset-management/internal/maintenance"
	maintenancePostgres "github.com/frahmantamala/asset-management/internal/maintenance/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMaintenancePostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Maintenance Postgres Suite")
}

// SQLite-compatible models for testing
type SQLiteAsset struct {
	ID           int64      `gorm:"primaryKey"`
	AssetTag     string     `gorm:"column:asset_tag;uniqueIndex;not null"`
	Name         string     `gorm:"column:name;not null"`
	Status       string     `gorm:"column:status;not null"`
	AssignedTo   *int64     `gorm:"column:assigned_to"`
	AssignedDate *time.Time `gorm:"column:assigned_date"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (SQLiteAsset) TableName() string {
	return "assets"
}

type SQLiteMaintenanceRequest struct {
	ID          int64      `gorm:"primaryKey"`
	AssetID     int64      `gorm:"column:asset_id;not null"`
	RequestedBy int64      `gorm:"column:requested_by;not null"`
	Task        string     `gorm:"column:task;not null"`
	Status      string     `gorm:"column:status;not null"`
	RequestedAt time.Time  `gorm:"column:requested_at"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (SQLiteMaintenanceRequest) TableName() string {
	return "maintenance_requests"
}

var _ = Describe("Maintenance PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo *maintenancePostgres.MaintenanceRepository
	)

	seedAsset := func(tag, status string, assignedTo *int64) int64 {
		a := &SQLiteAsset{AssetTag: tag, Name: tag, Status: status, AssignedTo: assignedTo}
		Expect(db.Create(a).Error).NotTo(HaveOccurred())
		return a.ID
	}

	submit := func(assetID, userID int64, task string) *maintenance.MaintenanceRequest {
		now := time.Now()
		m := &maintenance.MaintenanceRequest{
			AssetID:     assetID,
			RequestedBy: userID,
			Task:        task,
			Status:      maintenance.StatusPending,
			RequestedAt: now,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		Expect(repo.Submit(m)).To(Succeed())
		return m
	}

	loadAsset := func(id int64) *SQLiteAsset {
		var a SQLiteAsset
		Expect(db.First(&a, id).Error).NotTo(HaveOccurred())
		return &a
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteAsset{}, &SQLiteMaintenanceRequest{})
		Expect(err).NotTo(HaveOccurred())

		repo = maintenancePostgres.NewMaintenanceRepository(db)
	})

	Describe("Submit", func() {
		It("moves an available asset under maintenance with the request", func() {
			assetID := seedAsset("LT-0001", "available", nil)

			m := submit(assetID, 7, "fan noise")
			Expect(m.ID).NotTo(BeZero())

			a := loadAsset(assetID)
			Expect(a.Status).To(Equal("under_maintenance"))
		})

		It("clears the assignment when the asset was assigned", func() {
			holder := int64(3)
			assetID := seedAsset("LT-0001", "assigned", &holder)

			submit(assetID, 3, "keyboard broken")

			a := loadAsset(assetID)
			Expect(a.Status).To(Equal("under_maintenance"))
			Expect(a.AssignedTo).To(BeNil())
			Expect(a.AssignedDate).To(BeNil())
		})

		It("still records a second report for an asset already in the shop", func() {
			assetID := seedAsset("LT-0001", "available", nil)
			submit(assetID, 7, "first report")
			submit(assetID, 9, "second report")

			var count int64
			Expect(db.Model(&SQLiteMaintenanceRequest{}).Where("asset_id = ?", assetID).Count(&count).Error).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(2)))
		})

		It("rejects a missing asset without writing anything", func() {
			m := &maintenance.MaintenanceRequest{AssetID: 42, RequestedBy: 7, Task: "ghost", Status: maintenance.StatusPending}

			err := repo.Submit(m)
			Expect(err).To(Equal(maintenance.ErrAssetNotFound))

			var count int64
			Expect(db.Model(&SQLiteMaintenanceRequest{}).Count(&count).Error).NotTo(HaveOccurred())
			Expect(count).To(BeZero())
		})
	})

	Describe("Schedule", func() {
		It("moves a pending request to scheduled", func() {
			assetID := seedAsset("LT-0001", "available", nil)
			m := submit(assetID, 7, "thermal paste")

			scheduled, err := repo.Schedule(m.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(scheduled.Status).To(Equal(maintenance.StatusScheduled))
		})

		It("refuses to schedule a completed request", func() {
			assetID := seedAsset("LT-0001", "available", nil)
			m := submit(assetID, 7, "thermal paste")
			_, err := repo.Complete(m.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = repo.Schedule(m.ID)
			Expect(err).To(Equal(maintenance.ErrAlreadyCompleted))
		})

		It("reports a missing request", func() {
			_, err := repo.Schedule(42)
			Expect(err).To(Equal(maintenance.ErrNotFound))
		})
	})

	Describe("Complete", func() {
		It("resolves the request and releases the asset", func() {
			assetID := seedAsset("LT-0001", "available", nil)
			m := submit(assetID, 7, "screen swap")

			completed, err := repo.Complete(m.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(completed.Status).To(Equal(maintenance.StatusCompleted))
			Expect(completed.CompletedAt).NotTo(BeNil())

			a := loadAsset(assetID)
			Expect(a.Status).To(Equal("available"))
		})

		It("completes a scheduled request", func() {
			assetID := seedAsset("LT-0001", "available", nil)
			m := submit(assetID, 7, "screen swap")
			_, err := repo.Schedule(m.ID)
			Expect(err).NotTo(HaveOccurred())

			completed, err := repo.Complete(m.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(completed.Status).To(Equal(maintenance.StatusCompleted))
		})

		It("tolerates the asset having been released by another request", func() {
			assetID := seedAsset("LT-0001", "available", nil)
			first := submit(assetID, 7, "first")
			second := submit(assetID, 9, "second")

			_, err := repo.Complete(first.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loadAsset(assetID).Status).To(Equal("available"))

			completed, err := repo.Complete(second.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(completed.Status).To(Equal(maintenance.StatusCompleted))
		})

		It("refuses to complete twice", func() {
			assetID := seedAsset("LT-0001", "available", nil)
			m := submit(assetID, 7, "once")
			_, err := repo.Complete(m.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = repo.Complete(m.ID)
			Expect(err).To(Equal(maintenance.ErrAlreadyCompleted))
		})
	})

	Describe("Listing", func() {
		It("pages requests newest first and filters by requester", func() {
			assetID := seedAsset("LT-0001", "available", nil)
			submit(assetID, 7, "a")
			submit(assetID, 7, "b")
			submit(assetID, 9, "c")

			all, err := repo.GetAll(10, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(3))
			Expect(all[0].ID).To(BeNumerically(">", all[1].ID))

			mine, err := repo.GetByRequester(7, 10, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(mine).To(HaveLen(2))
		})
	})
})
