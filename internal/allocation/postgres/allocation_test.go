package postgres_test

import (
	"testing"
	"time"

	"github.com/frahmantamala/asset-management/internal/allocation"
	allocationPostgres "github.com/frahmantamala/asset-management/internal/allocation/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestAllocationPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Allocation Postgres Suite")
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

type SQLiteReturnedAsset struct {
	ID         int64     `gorm:"primaryKey"`
	AssetID    int64     `gorm:"column:asset_id;not null"`
	ReturnedBy int64     `gorm:"column:returned_by;not null"`
	Reason     string    `gorm:"column:reason"`
	Notes      string    `gorm:"column:notes"`
	ReturnedAt time.Time `gorm:"column:returned_at"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (SQLiteReturnedAsset) TableName() string {
	return "returned_assets"
}

var _ = Describe("Allocation PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo *allocationPostgres.AllocationRepository
	)

	seedAsset := func(tag, status string, assignedTo *int64) int64 {
		a := &SQLiteAsset{
			AssetTag:   tag,
			Name:       tag,
			Status:     status,
			AssignedTo: assignedTo,
		}
		Expect(db.Create(a).Error).NotTo(HaveOccurred())
		return a.ID
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

		err = db.AutoMigrate(&SQLiteAsset{}, &SQLiteReturnedAsset{})
		Expect(err).NotTo(HaveOccurred())

		repo = allocationPostgres.NewAllocationRepository(db)
	})

	Describe("AssignAsset", func() {
		It("assigns an available asset", func() {
			id := seedAsset("LT-0001", "available", nil)

			err := repo.AssignAsset(id, 7, time.Now())
			Expect(err).NotTo(HaveOccurred())

			a := loadAsset(id)
			Expect(a.Status).To(Equal("assigned"))
			Expect(a.AssignedTo).NotTo(BeNil())
			Expect(*a.AssignedTo).To(Equal(int64(7)))
			Expect(a.AssignedDate).NotTo(BeNil())
		})

		It("reports a conflict when the asset is already assigned", func() {
			holder := int64(3)
			id := seedAsset("LT-0001", "assigned", &holder)

			err := repo.AssignAsset(id, 7, time.Now())
			Expect(err).To(Equal(allocation.ErrNotAvailable))

			a := loadAsset(id)
			Expect(*a.AssignedTo).To(Equal(int64(3)))
		})

		It("reports a conflict when the asset is under maintenance", func() {
			id := seedAsset("LT-0001", "under_maintenance", nil)

			err := repo.AssignAsset(id, 7, time.Now())
			Expect(err).To(Equal(allocation.ErrNotAvailable))
		})

		It("reports a missing asset", func() {
			err := repo.AssignAsset(42, 7, time.Now())
			Expect(err).To(Equal(allocation.ErrAssetNotFound))
		})

		It("lets only the first of two back-to-back assigns win", func() {
			id := seedAsset("LT-0001", "available", nil)

			Expect(repo.AssignAsset(id, 7, time.Now())).To(Succeed())
			err := repo.AssignAsset(id, 8, time.Now())

			Expect(err).To(Equal(allocation.ErrNotAvailable))
			a := loadAsset(id)
			Expect(*a.AssignedTo).To(Equal(int64(7)))
		})
	})

	Describe("ReturnAsset", func() {
		It("frees the asset and writes the return record", func() {
			holder := int64(7)
			id := seedAsset("LT-0001", "assigned", &holder)

			returned, err := repo.ReturnAsset(id, 7, "project ended", "minor scratches")
			Expect(err).NotTo(HaveOccurred())
			Expect(returned.ID).NotTo(BeZero())
			Expect(returned.AssetID).To(Equal(id))
			Expect(returned.ReturnedBy).To(Equal(int64(7)))

			a := loadAsset(id)
			Expect(a.Status).To(Equal("available"))
			Expect(a.AssignedTo).To(BeNil())
			Expect(a.AssignedDate).To(BeNil())

			var count int64
			Expect(db.Model(&SQLiteReturnedAsset{}).Count(&count).Error).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(1)))
		})

		It("rejects a return by someone who does not hold the asset", func() {
			holder := int64(7)
			id := seedAsset("LT-0001", "assigned", &holder)

			_, err := repo.ReturnAsset(id, 9, "not mine", "")
			Expect(err).To(Equal(allocation.ErrNotAssignedToCaller))

			// nothing written, asset untouched
			a := loadAsset(id)
			Expect(a.Status).To(Equal("assigned"))
			var count int64
			Expect(db.Model(&SQLiteReturnedAsset{}).Count(&count).Error).NotTo(HaveOccurred())
			Expect(count).To(BeZero())
		})

		It("rejects a return of an unassigned asset", func() {
			id := seedAsset("LT-0001", "available", nil)

			_, err := repo.ReturnAsset(id, 7, "stale client", "")
			Expect(err).To(Equal(allocation.ErrNotAssignedToCaller))
		})

		It("reports a missing asset", func() {
			_, err := repo.ReturnAsset(42, 7, "gone", "")
			Expect(err).To(Equal(allocation.ErrAssetNotFound))
		})
	})

	Describe("ListReturns", func() {
		It("orders return records newest first", func() {
			for _, tag := range []string{"LT-0001", "LT-0002"} {
				holder := int64(7)
				id := seedAsset(tag, "assigned", &holder)
				_, err := repo.ReturnAsset(id, 7, "cycle", "")
				Expect(err).NotTo(HaveOccurred())
			}

			returns, err := repo.ListReturns(10, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(returns).To(HaveLen(2))
			Expect(returns[0].ID).To(BeNumerically(">", returns[1].ID))
		})
	})
})
