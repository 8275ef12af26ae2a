package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"alfredoptarigan/resume-ranker/internal/models"
)

type CandidateRepository interface {
	Candidate(ctx context.Context, resume string) (*models.CandidateInfo, error)
	CandidateNames(ctx context.Context) (map[string]string, error)
}

type candidateRepository struct {
	db *gorm.DB
}

func (c *candidateRepository) Candidate(ctx context.Context, resume string) (*models.CandidateInfo, error) {
	var info models.CandidateInfo
	if err := c.db.WithContext(ctx).Where("file_name = ?", resume).First(&info).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("candidate for %s: %w", resume, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find candidate for %s: %w", resume, err)
	}

	return &info, nil
}

func (c *candidateRepository) CandidateNames(ctx context.Context) (map[string]string, error) {
	var rows []models.CandidateInfo
	if err := c.db.WithContext(ctx).Select("file_name", "candidate_name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load candidate index: %w", err)
	}

	names := make(map[string]string, len(rows))
	for _, row := range rows {
		names[row.ResumeName] = row.CandidateName
	}

	return names, nil
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}
