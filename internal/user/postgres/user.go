package postgres

import (
	"errors"
	"time"

	assetDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/asset"
	userDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/user"
	"github.com/frahmantamala/asset-management/internal/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the user and its initial permission grants in one
// transaction. Unknown permission names are ignored rather than failing the
// whole registration.
func (r *UserRepository) Create(u *user.User, permissions []string) error {
	dm := user.ToDataModel(u)

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(dm).Error; err != nil {
			return err
		}
		return grantPermissions(tx, dm.ID, permissions, nil)
	})
	if err != nil {
		return err
	}

	u.ID = dm.ID
	return nil
}

func grantPermissions(tx *gorm.DB, userID int64, permissions []string, grantedBy *int64) error {
	if len(permissions) == 0 {
		return nil
	}

	var perms []userDatamodel.Permission
	if err := tx.Where("name IN ?", permissions).Find(&perms).Error; err != nil {
		return err
	}

	now := time.Now()
	for _, p := range perms {
		grant := userDatamodel.UserPermission{
			UserID:       userID,
			PermissionID: p.ID,
			GrantedBy:    grantedBy,
			CreatedAt:    now,
		}
		if err := tx.Create(&grant).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *UserRepository) GetByID(userID int64) (*user.User, error) {
	var dm userDatamodel.User
	if err := r.db.First(&dm, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&dm), nil
}

func (r *UserRepository) GetByEmail(email string) (*user.User, error) {
	var dm userDatamodel.User
	if err := r.db.Where("email = ?", email).First(&dm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&dm), nil
}

func (r *UserRepository) GetAll(limit, offset int) ([]*user.User, error) {
	var dms []*userDatamodel.User
	err := r.db.Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return user.FromDataModelSlice(dms), nil
}

func (r *UserRepository) Update(u *user.User) error {
	dm := user.ToDataModel(u)
	res := r.db.Model(&userDatamodel.User{}).
		Where("id = ?", dm.ID).
		Updates(map[string]interface{}{
			"name":       dm.Name,
			"department": dm.Department,
			"is_active":  dm.IsActive,
			"updated_at": dm.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *UserRepository) GetPermissions(userID int64) ([]string, error) {
	var names []string
	err := r.db.Model(&userDatamodel.Permission{}).
		Select("permissions.name").
		Joins("JOIN user_permissions ON user_permissions.permission_id = permissions.id").
		Where("user_permissions.user_id = ?", userID).
		Scan(&names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// SetPermissions replaces the user's grants wholesale.
func (r *UserRepository) SetPermissions(userID int64, permissions []string, grantedBy int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&userDatamodel.UserPermission{}).Error; err != nil {
			return err
		}
		return grantPermissions(tx, userID, permissions, &grantedBy)
	})
}

// Delete removes the user, its grants, and releases any assets still
// assigned to it, all in one transaction. The released asset IDs are
// returned so the caller can emit history events.
func (r *UserRepository) Delete(userID int64) ([]int64, error) {
	var releasedAssets []int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&userDatamodel.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return user.ErrNotFound
		}

		if err := tx.Model(&assetDatamodel.Asset{}).
			Where("assigned_to = ?", userID).
			Pluck("id", &releasedAssets).Error; err != nil {
			return err
		}

		if len(releasedAssets) > 0 {
			if err := tx.Model(&assetDatamodel.Asset{}).
				Where("assigned_to = ?", userID).
				Updates(map[string]interface{}{
					"status":        "available",
					"assigned_to":   nil,
					"assigned_date": nil,
					"updated_at":    time.Now(),
				}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&userDatamodel.UserPermission{}).Error; err != nil {
			return err
		}

		return tx.Delete(&userDatamodel.User{}, userID).Error
	})
	if err != nil {
		return nil, err
	}

	return releasedAssets, nil
}
