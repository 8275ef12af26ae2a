package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alfredoptarigan/resume-ranker/internal/models"
)

type CriteriaRepository interface {
	// Find returns ErrNotFound when no criteria were stored for jd.
	Find(ctx context.Context, jd string) (*models.CriteriaSet, error)
	// Save replaces any stored criteria for set.JDName.
	Save(ctx context.Context, set *models.CriteriaSet) error
}

type criteriaRepository struct {
	db *gorm.DB
}

func (c *criteriaRepository) Find(ctx context.Context, jd string) (*models.CriteriaSet, error) {
	var set models.CriteriaSet
	if err := c.db.WithContext(ctx).Where("file_name = ?", jd).First(&set).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("criteria for %s: %w", jd, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find criteria for %s: %w", jd, err)
	}

	return &set, nil
}

func (c *criteriaRepository) Save(ctx context.Context, set *models.CriteriaSet) error {
	err := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "file_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"criteria", "analyzed_at"}),
	}).Create(set).Error
	if err != nil {
		return fmt.Errorf("failed to save criteria for %s: %w", set.JDName, err)
	}

	return nil
}

func NewCriteriaRepository(db *gorm.DB) CriteriaRepository {
	return &criteriaRepository{db: db}
}
