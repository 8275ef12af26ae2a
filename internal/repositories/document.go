package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"alfredoptarigan/resume-ranker/internal/models"
)

type DocumentRepository interface {
	Put(ctx context.Context, kind models.DocKind, name, content string) (*models.Document, error)
	Get(ctx context.Context, kind models.DocKind, name string) (*models.Document, error)
	List(ctx context.Context, kind models.DocKind) ([]string, error)
}

type documentRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// Put implements DocumentRepository. An existing document keeps its position
// in List but has its content and timestamp replaced.
func (d *documentRepository) Put(ctx context.Context, kind models.DocKind, name, content string) (*models.Document, error) {
	doc := models.Document{Name: name, Content: content, ExtractedAt: d.now()}

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Document
		err := tx.Table(kind.Table()).Where("file_name = ?", name).First(&existing).Error
		switch {
		case err == nil:
			doc.Seq = existing.Seq
			return tx.Table(kind.Table()).Where("file_name = ?", name).
				Updates(map[string]any{"content": doc.Content, "extracted_at": doc.ExtractedAt}).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			var maxSeq int64
			if err := tx.Table(kind.Table()).Select("COALESCE(MAX(seq), 0)").Row().Scan(&maxSeq); err != nil {
				return err
			}
			doc.Seq = maxSeq + 1
			return tx.Table(kind.Table()).Create(&doc).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store %s %s: %w", kind, name, err)
	}

	return &doc, nil
}

// Get implements DocumentRepository.
func (d *documentRepository) Get(ctx context.Context, kind models.DocKind, name string) (*models.Document, error) {
	var doc models.Document
	if err := d.db.WithContext(ctx).Table(kind.Table()).Where("file_name = ?", name).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s %s: %w", kind, name, ErrNotFound)
		}

		return nil, fmt.Errorf("failed to find %s %s: %w", kind, name, err)
	}

	return &doc, nil
}

// List implements DocumentRepository.
func (d *documentRepository) List(ctx context.Context, kind models.DocKind) ([]string, error) {
	var names []string
	if err := d.db.WithContext(ctx).Table(kind.Table()).Order("seq ASC").Pluck("file_name", &names).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s documents: %w", kind, err)
	}

	return names, nil
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db, now: time.Now}
}
