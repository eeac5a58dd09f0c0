package database

import (
	"fmt"
	"log/slog"

	"comichub/internal/api/models"
	"comichub/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func ConnectDB(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{}
	if cfg.IsProduction() {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Warn)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access database handle: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := seedPermissions(db); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to seed permissions: %w", err)
	}

	logger.Info("Connected to the database successfully")
	return db, nil
}

func runMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Permission{},
		&models.PermissionGroup{},
		&models.PermissionRelationship{},
		&models.User{},
		&models.RefreshToken{},
		&models.Resource{},
		&models.ComicTag{},
		&models.Comic{},
		&models.ComicBookTag{},
		&models.ComicChapter{},
	)
}

// seedPermissions installs the permission catalog and the two built-in
// groups. Safe to run on every start: rows are looked up by name first.
func seedPermissions(db *gorm.DB) error {
	allPerms := []string{
		models.PermUpdateProfile,
		models.PermCreateComic,
		models.PermUpdateComic,
		models.PermDeleteComic,
		models.PermCreateChapter,
		models.PermUpdateChapter,
		models.PermCreateTag,
		models.PermCreateResource,
	}

	userPerms := []string{
		models.PermUpdateProfile,
		models.PermCreateComic,
		models.PermUpdateComic,
		models.PermCreateChapter,
		models.PermUpdateChapter,
		models.PermCreateResource,
	}

	return db.Transaction(func(tx *gorm.DB) error {
		byName := make(map[string]models.Permission, len(allPerms))
		for _, name := range allPerms {
			var p models.Permission
			if err := tx.Where("name = ?", name).FirstOrCreate(&p, models.Permission{Name: name}).Error; err != nil {
				return fmt.Errorf("seed permission %s: %w", name, err)
			}
			byName[name] = p
		}

		groups := map[string][]string{
			models.GroupAdmin: allPerms,
			models.GroupUser:  userPerms,
		}
		for groupName, permNames := range groups {
			var g models.PermissionGroup
			if err := tx.Where("name = ?", groupName).FirstOrCreate(&g, models.PermissionGroup{Name: groupName}).Error; err != nil {
				return fmt.Errorf("seed group %s: %w", groupName, err)
			}
			perms := make([]models.Permission, 0, len(permNames))
			for _, name := range permNames {
				perms = append(perms, byName[name])
			}
			if err := tx.Model(&g).Association("Permissions").Replace(&perms); err != nil {
				return fmt.Errorf("seed group permissions %s: %w", groupName, err)
			}
		}
		return nil
	})
}
