package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/resume-ranker/internal/logger"
	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/repositories"
)

// CriteriaExtractor derives the scoring rubric of a JD and caches it in the
// criteria repository. A stored set is reused until ExtractCriteria replaces it.
type CriteriaExtractor struct {
	docs      repositories.DocumentRepository
	criteria  repositories.CriteriaRepository
	generator TextGenerator
	prompts   *PromptBuilder
	log       *zap.Logger
	now       func() time.Time
}

func NewCriteriaExtractor(
	docs repositories.DocumentRepository,
	criteria repositories.CriteriaRepository,
	generator TextGenerator,
	log *zap.Logger,
) *CriteriaExtractor {
	return &CriteriaExtractor{
		docs:      docs,
		criteria:  criteria,
		generator: generator,
		prompts:   NewPromptBuilder(),
		log:       logger.OrNop(log),
		now:       time.Now,
	}
}

// GetCriteria returns the stored criteria for jd, extracting them on a miss.
// An empty result without error means the model reply could not be used.
func (e *CriteriaExtractor) GetCriteria(ctx context.Context, jd string) ([]string, error) {
	set, err := e.criteria.Find(ctx, jd)
	switch {
	case err == nil:
		return set.List()
	case errors.Is(err, repositories.ErrNotFound):
		return e.ExtractCriteria(ctx, jd)
	default:
		return nil, err
	}
}

// ExtractCriteria always asks the model and overwrites the stored set on success.
func (e *CriteriaExtractor) ExtractCriteria(ctx context.Context, jd string) ([]string, error) {
	doc, err := e.docs.Get(ctx, models.KindJD, jd)
	if err != nil {
		return nil, err
	}

	log := e.log.With(logger.PairFields("", jd)...)

	reply, err := e.generator.GenerateText(ctx, e.prompts.BuildCriteriaPrompt(doc.Content))
	if err != nil {
		return nil, fmt.Errorf("extract criteria for %s: %w", jd, err)
	}

	var payload struct {
		Criteria []string `json:"criteria"`
	}
	if err := decodeReply(reply, &payload); err != nil {
		log.Warn("criteria reply rejected", zap.Error(err))
		return []string{}, nil
	}

	criteria := normalizeCriteria(payload.Criteria)
	if len(criteria) == 0 {
		log.Warn("criteria reply held no criteria")
		return []string{}, nil
	}

	set, err := models.NewCriteriaSet(jd, criteria, e.now())
	if err != nil {
		return nil, err
	}
	if err := e.criteria.Save(ctx, set); err != nil {
		return nil, err
	}

	log.Info("criteria extracted", zap.Int("count", len(criteria)))

	return criteria, nil
}

// normalizeCriteria trims entries and drops blanks and repeats, keeping order.
func normalizeCriteria(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, c := range raw {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
