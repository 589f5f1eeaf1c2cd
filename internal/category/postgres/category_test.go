package postgres_test

import (
	"testing"
	"time"

	"github.com/frahmantamala/asset-management/internal/category"
	categoryPostgres "github.com/frahmantamala/asset-management/internal/category/postgres"
	categoryDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/category"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestCategoryPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Category Postgres Suite")
}

// SQLiteCategory is a SQLite-compatible model for testing
type SQLiteCategory struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;uniqueIndex;not null"`
	Description string    `gorm:"column:description"`
	IsActive    bool      `gorm:"column:is_active;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (SQLiteCategory) TableName() string {
	return "asset_categories"
}

var _ = Describe("Category PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo category.RepositoryAPI
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteCategory{})
		Expect(err).NotTo(HaveOccurred())

		repo = categoryPostgres.NewCategoryRepository(db)
	})

	Describe("Create", func() {
		It("should create a new category successfully", func() {
			cat := &categoryDatamodel.AssetCategory{
				Name:        "laptop",
				Description: "Portable computers",
				IsActive:    true,
			}

			err := repo.Create(cat)
			Expect(err).NotTo(HaveOccurred())
			Expect(cat.ID).To(BeNumerically(">", 0))
			Expect(cat.CreatedAt).NotTo(BeZero())
		})

		It("should fail to create duplicate category", func() {
			cat1 := &categoryDatamodel.AssetCategory{
				Name:        "laptop",
				Description: "Portable computers",
				IsActive:    true,
			}

			err := repo.Create(cat1)
			Expect(err).NotTo(HaveOccurred())

			cat2 := &categoryDatamodel.AssetCategory{
				Name:        "laptop",
				Description: "Duplicate category",
				IsActive:    true,
			}

			err = repo.Create(cat2)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("GetAll", func() {
		BeforeEach(func() {
			activeCategories := []*categoryDatamodel.AssetCategory{
				{
					Name:        "laptop",
					Description: "Portable computers",
					IsActive:    true,
				},
				{
					Name:        "monitor",
					Description: "External displays",
					IsActive:    true,
				},
			}

			for _, cat := range activeCategories {
				err := repo.Create(cat)
				Expect(err).NotTo(HaveOccurred())
			}

			inactiveCategory := &categoryDatamodel.AssetCategory{
				Name:        "fax",
				Description: "Fax machines",
				IsActive:    true,
			}
			err := repo.Create(inactiveCategory)
			Expect(err).NotTo(HaveOccurred())

			inactiveCategory.IsActive = false
			err = repo.Update(inactiveCategory)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should retrieve all categories ordered by name", func() {
			categories, err := repo.GetAll()
			Expect(err).NotTo(HaveOccurred())
			Expect(categories).To(HaveLen(3))

			Expect(categories[0].Name).To(Equal("fax"))
			Expect(categories[1].Name).To(Equal("laptop"))
			Expect(categories[2].Name).To(Equal("monitor"))
		})

		It("should include both active and inactive categories", func() {
			categories, err := repo.GetAll()
			Expect(err).NotTo(HaveOccurred())

			activeCount := 0
			inactiveCount := 0
			for _, cat := range categories {
				if cat.IsActive {
					activeCount++
				} else {
					inactiveCount++
				}
			}

			Expect(activeCount).To(Equal(2))
			Expect(inactiveCount).To(Equal(1))
		})
	})

	Describe("GetByName", func() {
		BeforeEach(func() {
			cat := &categoryDatamodel.AssetCategory{
				Name:        "laptop",
				Description: "Portable computers",
				IsActive:    true,
			}
			err := repo.Create(cat)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should retrieve category by name successfully", func() {
			result, err := repo.GetByName("laptop")
			Expect(err).NotTo(HaveOccurred())
			Expect(result).NotTo(BeNil())
			Expect(result.Name).To(Equal("laptop"))
			Expect(result.Description).To(Equal("Portable computers"))
			Expect(result.IsActive).To(BeTrue())
		})

		It("should return nil for non-existent category", func() {
			result, err := repo.GetByName("nonexistent")
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(BeNil())
		})

		It("should be case sensitive", func() {
			result, err := repo.GetByName("LAPTOP")
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(BeNil())
		})
	})

	Describe("Delete", func() {
		var testCategory *categoryDatamodel.AssetCategory

		BeforeEach(func() {
			testCategory = &categoryDatamodel.AssetCategory{
				Name:        "laptop",
				Description: "Portable computers",
				IsActive:    true,
			}
			err := repo.Create(testCategory)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should soft delete category by setting is_active to false", func() {
			err := repo.Delete(testCategory.ID)
			Expect(err).NotTo(HaveOccurred())

			result, err := repo.GetByName("laptop")
			Expect(err).NotTo(HaveOccurred())
			Expect(result).NotTo(BeNil())
			Expect(result.IsActive).To(BeFalse())
		})

		It("should handle non-existent ID gracefully", func() {
			err := repo.Delete(999)
			Expect(err).NotTo(HaveOccurred())

			result, err := repo.GetByName("laptop")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.IsActive).To(BeTrue())
		})
	})
})
