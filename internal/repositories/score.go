package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alfredoptarigan/resume-ranker/internal/models"
)

// ScoreFilter selects records conjunctively. Empty fields match anything.
type ScoreFilter struct {
	ResumeName string
	JDName     string
}

type ScoreRepository interface {
	Upsert(ctx context.Context, record *models.ScoreRecord) error
	Query(ctx context.Context, filter ScoreFilter) ([]models.ScoreRecord, error)
	BulkClear(ctx context.Context, resumes []string) (int64, error)
}

type scoreRepository struct {
	db *gorm.DB
}

// Upsert implements ScoreRepository. The previous row for the pair is removed
// and the new one appended, so replaced records move to the end of Query
// order. The candidate index is written in the same transaction.
func (s *scoreRepository) Upsert(ctx context.Context, record *models.ScoreRecord) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("resume_name = ? AND jd_name = ?", record.ResumeName, record.JDName).
			Delete(&models.ScoreRecord{}).Error; err != nil {
			return err
		}

		record.ID = 0
		if err := tx.Create(record).Error; err != nil {
			return err
		}

		candidate := models.CandidateInfo{
			ResumeName:    record.ResumeName,
			CandidateName: record.CandidateName,
			Skills:        record.Scores,
			AnalyzedAt:    record.ScoredAt,
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "file_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"candidate_name", "skills", "analyzed_at"}),
		}).Create(&candidate).Error
	})
	if err != nil {
		return fmt.Errorf("failed to upsert score %s/%s: %w", record.ResumeName, record.JDName, err)
	}

	return nil
}

// Query implements ScoreRepository. Rows come back in insertion order.
func (s *scoreRepository) Query(ctx context.Context, filter ScoreFilter) ([]models.ScoreRecord, error) {
	query := s.db.WithContext(ctx).Model(&models.ScoreRecord{})
	if filter.ResumeName != "" {
		query = query.Where("resume_name = ?", filter.ResumeName)
	}
	if filter.JDName != "" {
		query = query.Where("jd_name = ?", filter.JDName)
	}

	var records []models.ScoreRecord
	if err := query.Order("id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}

	return records, nil
}

// BulkClear implements ScoreRepository.
func (s *scoreRepository) BulkClear(ctx context.Context, resumes []string) (int64, error) {
	if len(resumes) == 0 {
		return 0, nil
	}

	result := s.db.WithContext(ctx).Where("resume_name IN ?", resumes).Delete(&models.ScoreRecord{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clear scores: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func NewScoreRepository(db *gorm.DB) ScoreRepository {
	return &scoreRepository{db: db}
}
