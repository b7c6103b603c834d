package db

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"catalog-studio/config"
)

// CatalogDB holds the structured project record store.
var CatalogDB *gorm.DB

// BlobDB holds the binary image blob store. It is a separate database
// file from CatalogDB; there is no transaction spanning both.
var BlobDB *gorm.DB

// ImageBlob is a row of the blob store: one binary image keyed by its
// generated id.
type ImageBlob struct {
	ID          string `gorm:"primaryKey"`
	Data        []byte
	ContentType string
	CreatedAt   time.Time
}

// ProjectRecord is the single row of the catalog store. Data is the
// full ProjectData document serialized as JSON and written as one unit.
type ProjectRecord struct {
	ID        uint `gorm:"primaryKey"`
	Data      []byte
	UpdatedAt time.Time
}

// InitDB opens both stores and runs their migrations.
func InitDB(cfg *config.Config) error {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	var err error
	CatalogDB, err = gorm.Open(sqlite.Open(cfg.CatalogDBPath()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to open catalog store: %w", err)
	}
	if err := CatalogDB.AutoMigrate(&ProjectRecord{}); err != nil {
		return fmt.Errorf("failed to migrate catalog store: %w", err)
	}

	BlobDB, err = gorm.Open(sqlite.Open(cfg.BlobDBPath()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to open blob store: %w", err)
	}
	if err := BlobDB.AutoMigrate(&ImageBlob{}); err != nil {
		return fmt.Errorf("failed to migrate blob store: %w", err)
	}

	log.Info().
		Str("catalog", cfg.CatalogDBPath()).
		Str("blobs", cfg.BlobDBPath()).
		Msg("✓ Local stores opened")
	return nil
}

// CloseDB closes both stores.
func CloseDB() error {
	for _, conn := range []*gorm.DB{CatalogDB, BlobDB} {
		if conn == nil {
			continue
		}
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.Close(); err != nil {
			return err
		}
	}
	return nil
}
