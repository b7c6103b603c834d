package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"catalog-studio/apperr"
	"catalog-studio/db"
	"catalog-studio/models"
)

// projectRecordID is the key of the singleton catalog record.
const projectRecordID = 1

// ProjectRepository persists the whole ProjectData document as a single
// record. Implements ProjectRepositoryInterface.
type ProjectRepository struct {
	conn *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository over the given
// store.
func NewProjectRepository(conn *gorm.DB) *ProjectRepository {
	return &ProjectRepository{conn: conn}
}

// Ensure ProjectRepository implements ProjectRepositoryInterface
var _ ProjectRepositoryInterface = (*ProjectRepository)(nil)

// Load reads the catalog document, or (nil, nil) when none was saved
// yet.
func (r *ProjectRepository) Load(ctx context.Context) (*models.ProjectData, error) {
	var row db.ProjectRecord
	err := r.conn.WithContext(ctx).First(&row, "id = ?", projectRecordID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeStorage, err, "failed to load project record")
	}

	var data models.ProjectData
	if err := json.Unmarshal(row.Data, &data); err != nil {
		return nil, apperr.Wrap(apperr.CodeStorage, err, "failed to decode project record")
	}
	return &data, nil
}

// Save writes the catalog document as one unit, replacing any previous
// record.
func (r *ProjectRepository) Save(ctx context.Context, data *models.ProjectData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return apperr.Wrap(apperr.CodeStorage, err, "failed to encode project record")
	}

	row := db.ProjectRecord{
		ID:        projectRecordID,
		Data:      payload,
		UpdatedAt: time.Now(),
	}
	err = r.conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&row).Error
	if err != nil {
		return apperr.Wrap(apperr.CodeStorage, err, "failed to save project record")
	}
	return nil
}
