package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		conn, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer conn.Close()

		db, err := initGorm(conn)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			clearSeedData(db)
		}

		seedPermissions(db)
		seedUsers(db)
		seedCategories(db)
		seedAssets(db)
	},
}

func clearSeedData(db *gorm.DB) {
	tables := []string{
		"asset_history",
		"returned_assets",
		"maintenance_requests",
		"asset_requests",
		"assets",
		"asset_categories",
		"user_permissions",
		"permissions",
		"users",
	}
	for _, t := range tables {
		if err := db.Exec("DELETE FROM " + t).Error; err != nil {
			log.Fatalf("failed to clear %s: %v", t, err)
		}
	}
	fmt.Println("Cleared existing data")
}

func seedPermissions(db *gorm.DB) {
	permissions := []struct {
		Name string
		Desc string
	}{
		{"admin", "full administrator"},
		{"manage_assets", "Can register, update, and assign assets"},
		{"manage_users", "Can manage user accounts and grants"},
		{"resolve_requests", "Can approve or reject asset requests"},
		{"manage_maintenance", "Can schedule and complete maintenance"},
		{"request_assets", "Can request assets and report issues"},
	}

	for _, p := range permissions {
		var pid int64
		row := db.Raw("SELECT id FROM permissions WHERE name = ?", p.Name).Row()
		if err := row.Scan(&pid); err != nil {
			if err := db.Exec("INSERT INTO permissions (name, description, created_at) VALUES (?, ?, now())", p.Name, p.Desc).Error; err != nil {
				log.Fatalf("failed to insert permission %s: %v", p.Name, err)
			}
			fmt.Println("Seeded permission:", p.Name)
		}
	}
}

func seedUsers(db *gorm.DB) {
	password := "password"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	users := []struct {
		Email       string
		Name        string
		Department  string
		Permissions []string
	}{
		{"admin@mail.com", "Site Admin", "IT", []string{"admin", "manage_assets", "manage_users", "resolve_requests", "manage_maintenance", "request_assets"}},
		{"itops@mail.com", "Ops Manager", "IT", []string{"manage_assets", "resolve_requests", "manage_maintenance", "request_assets"}},
		{"dina@mail.com", "Dina", "Finance", []string{"request_assets"}},
	}

	for _, u := range users {
		var uid int64
		row := db.Raw("SELECT id FROM users WHERE email = ?", u.Email).Row()
		if err := row.Scan(&uid); err != nil {
			if err := db.Exec("INSERT INTO users (email, name, password_hash, department, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, true, now(), now())", u.Email, u.Name, string(hash), u.Department).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			if err := db.Raw("SELECT id FROM users WHERE email = ?", u.Email).Row().Scan(&uid); err != nil {
				log.Fatalf("failed to read back user %s: %v", u.Email, err)
			}
			fmt.Println("Seeded user:", u.Email)
		} else {
			fmt.Println("user already exists; will ensure permissions:", u.Email)
		}

		for _, perm := range u.Permissions {
			var pid int64
			if err := db.Raw("SELECT id FROM permissions WHERE name = ?", perm).Row().Scan(&pid); err != nil {
				continue
			}
			var exists int
			row := db.Raw("SELECT 1 FROM user_permissions WHERE user_id = ? AND permission_id = ?", uid, pid).Row()
			if err := row.Scan(&exists); err != nil {
				if err := db.Exec("INSERT INTO user_permissions (user_id, permission_id, created_at) VALUES (?, ?, now())", uid, pid).Error; err != nil {
					log.Fatalf("failed to grant %s to %s: %v", perm, u.Email, err)
				}
			}
		}
	}
}

func seedCategories(db *gorm.DB) {
	categories := []struct {
		Name string
		Desc string
	}{
		{"laptop", "Portable computers"},
		{"monitor", "External displays"},
		{"phone", "Company phones"},
		{"peripheral", "Keyboards, mice, docks"},
		{"networking", "Switches, routers, access points"},
		{"furniture", "Desks and chairs"},
	}

	for _, c := range categories {
		var id int64
		row := db.Raw("SELECT id FROM asset_categories WHERE name = ?", c.Name).Row()
		if err := row.Scan(&id); err != nil {
			if err := db.Exec("INSERT INTO asset_categories (name, description, is_active, created_at, updated_at) VALUES (?, ?, true, now(), now())", c.Name, c.Desc).Error; err != nil {
				log.Fatalf("failed to insert category %s: %v", c.Name, err)
			}
			fmt.Println("Seeded category:", c.Name)
		}
	}
}

func seedAssets(db *gorm.DB) {
	assets := []struct {
		Tag          string
		Name         string
		Manufacturer string
		Category     string
		Location     string
	}{
		{"LT-0001", "ThinkPad X1 Carbon", "Lenovo", "laptop", "Jakarta HQ"},
		{"LT-0002", "MacBook Pro 14", "Apple", "laptop", "Jakarta HQ"},
		{"MN-0001", "UltraSharp U2723QE", "Dell", "monitor", "Jakarta HQ"},
		{"MN-0002", "UltraSharp U2723QE", "Dell", "monitor", "Bandung Office"},
		{"PH-0001", "Pixel 8", "Google", "phone", "Jakarta HQ"},
		{"PR-0001", "MX Keys", "Logitech", "peripheral", "Storage Room"},
	}

	for _, a := range assets {
		var id int64
		row := db.Raw("SELECT id FROM assets WHERE asset_tag = ?", a.Tag).Row()
		if err := row.Scan(&id); err != nil {
			if err := db.Exec("INSERT INTO assets (asset_tag, name, manufacturer, category, location, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, 'available', now(), now())", a.Tag, a.Name, a.Manufacturer, a.Category, a.Location).Error; err != nil {
				log.Fatalf("failed to insert asset %s: %v", a.Tag, err)
			}
			fmt.Println("Seeded asset:", a.Tag)
		}
	}
}
