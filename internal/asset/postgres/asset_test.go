package postgres_test

import (
	"errors"
	"testing"
	"time"

	"github.com/frahmantamala/asset-management/internal/asset"
	assetPostgres "github.com/frahmantamala/asset-management/internal/asset/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestAssetPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Asset Postgres Suite")
}

// SQLiteAsset is a SQLite-compatible model for testing
type SQLiteAsset struct {
	ID           int64      `gorm:"primaryKey"`
	AssetTag     string     `gorm:"column:asset_tag;uniqueIndex;not null"`
	Name         string     `gorm:"column:name;not null"`
	Manufacturer string     `gorm:"column:manufacturer"`
	Category     string     `gorm:"column:category"`
	Location     string     `gorm:"column:location"`
	Status       string     `gorm:"column:status;not null"`
	AssignedTo   *int64     `gorm:"column:assigned_to"`
	AssignedDate *time.Time `gorm:"column:assigned_date"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (SQLiteAsset) TableName() string {
	return "assets"
}

var _ = Describe("Asset PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo *assetPostgres.AssetRepository
	)

	create := func(tag string) *asset.Asset {
		now := time.Now()
		a := &asset.Asset{
			AssetTag:  tag,
			Name:      tag,
			Status:    asset.StatusAvailable,
			CreatedAt: now,
			UpdatedAt: now,
		}
		Expect(repo.Create(a)).To(Succeed())
		return a
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteAsset{})
		Expect(err).NotTo(HaveOccurred())

		repo = assetPostgres.NewAssetRepository(db)
	})

	Describe("Create and lookup", func() {
		It("round-trips an asset by id and tag", func() {
			created := create("LT-0001")
			Expect(created.ID).NotTo(BeZero())

			byID, err := repo.GetByID(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(byID.AssetTag).To(Equal("LT-0001"))

			byTag, err := repo.GetByTag("LT-0001")
			Expect(err).NotTo(HaveOccurred())
			Expect(byTag.ID).To(Equal(created.ID))
		})

		It("enforces tag uniqueness", func() {
			create("LT-0001")
			dup := &asset.Asset{AssetTag: "LT-0001", Name: "dup", Status: asset.StatusAvailable}
			Expect(repo.Create(dup)).NotTo(Succeed())
		})

		It("reports missing assets", func() {
			_, err := repo.GetByID(42)
			Expect(err).To(Equal(asset.ErrNotFound))

			_, err = repo.GetByTag("NOPE")
			Expect(err).To(Equal(asset.ErrNotFound))
		})
	})

	Describe("GetAll", func() {
		It("filters by status", func() {
			create("LT-0001")
			b := create("LT-0002")
			Expect(assetPostgres.MarkAssigned(db, b.ID, 7, time.Now())).To(Succeed())

			available, err := repo.GetAll(10, 0, asset.StatusAvailable)
			Expect(err).NotTo(HaveOccurred())
			Expect(available).To(HaveLen(1))
			Expect(available[0].AssetTag).To(Equal("LT-0001"))

			all, err := repo.GetAll(10, 0, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(2))
		})
	})

	Describe("Update", func() {
		It("changes descriptive fields but never lifecycle columns", func() {
			a := create("LT-0001")
			Expect(assetPostgres.MarkAssigned(db, a.ID, 7, time.Now())).To(Succeed())

			a.Name = "Renamed"
			a.Location = "Bandung Office"
			Expect(repo.Update(a)).To(Succeed())

			reloaded, err := repo.GetByID(a.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(reloaded.Name).To(Equal("Renamed"))
			Expect(reloaded.Status).To(Equal(asset.StatusAssigned))
			Expect(reloaded.AssignedTo).NotTo(BeNil())
		})
	})

	// The transition helpers back every workflow repository, so their
	// conflict reporting is pinned down here once.
	Describe("Conditional transitions", func() {
		It("assigns only from available", func() {
			a := create("LT-0001")

			Expect(assetPostgres.MarkAssigned(db, a.ID, 7, time.Now())).To(Succeed())

			err := assetPostgres.MarkAssigned(db, a.ID, 8, time.Now())
			var conflict *asset.TransitionError
			Expect(errors.As(err, &conflict)).To(BeTrue())
			Expect(conflict.Status).To(Equal(asset.StatusAssigned))

			reloaded, _ := repo.GetByID(a.ID)
			Expect(*reloaded.AssignedTo).To(Equal(int64(7)))
		})

		It("pulls an assigned asset into maintenance and clears the holder", func() {
			a := create("LT-0001")
			Expect(assetPostgres.MarkAssigned(db, a.ID, 7, time.Now())).To(Succeed())

			Expect(assetPostgres.MarkUnderMaintenance(db, a.ID)).To(Succeed())

			reloaded, _ := repo.GetByID(a.ID)
			Expect(reloaded.Status).To(Equal(asset.StatusUnderMaintenance))
			Expect(reloaded.AssignedTo).To(BeNil())
			Expect(reloaded.AssignedDate).To(BeNil())
		})

		It("reports the shop status for an asset already in maintenance", func() {
			a := create("LT-0001")
			Expect(assetPostgres.MarkUnderMaintenance(db, a.ID)).To(Succeed())

			err := assetPostgres.MarkUnderMaintenance(db, a.ID)
			var conflict *asset.TransitionError
			Expect(errors.As(err, &conflict)).To(BeTrue())
			Expect(conflict.Status).To(Equal(asset.StatusUnderMaintenance))
		})

		It("releases only from under maintenance", func() {
			a := create("LT-0001")

			err := assetPostgres.MarkAvailableFromMaintenance(db, a.ID)
			var conflict *asset.TransitionError
			Expect(errors.As(err, &conflict)).To(BeTrue())
			Expect(conflict.Status).To(Equal(asset.StatusAvailable))

			Expect(assetPostgres.MarkUnderMaintenance(db, a.ID)).To(Succeed())
			Expect(assetPostgres.MarkAvailableFromMaintenance(db, a.ID)).To(Succeed())

			reloaded, _ := repo.GetByID(a.ID)
			Expect(reloaded.Status).To(Equal(asset.StatusAvailable))
		})

		It("distinguishes missing assets from state conflicts", func() {
			Expect(assetPostgres.MarkAssigned(db, 42, 7, time.Now())).To(Equal(asset.ErrNotFound))
			Expect(assetPostgres.MarkUnderMaintenance(db, 42)).To(Equal(asset.ErrNotFound))
			Expect(assetPostgres.MarkAvailableFromMaintenance(db, 42)).To(Equal(asset.ErrNotFound))
		})
	})
})
