package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/resume-ranker/internal/logger"
	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/repositories"
)

const (
	MinScore = 0
	MaxScore = 5

	// UnknownCandidate stands in for a name the model did not give.
	UnknownCandidate = "Unknown"
)

// ScoreResult is a persisted score for one (resume, jd) pair. Scores holds
// exactly one entry per criterion and Total is their sum.
type ScoreResult struct {
	Resume        string
	JD            string
	CandidateName string
	Criteria      []string
	Scores        map[string]int
	Total         int
	// Degenerate is set when the model reply could not be decoded.
	Degenerate bool
	ScoredAt   time.Time
}

type ResumeScorer struct {
	docs      repositories.DocumentRepository
	scores    repositories.ScoreRepository
	criteria  *CriteriaExtractor
	generator TextGenerator
	prompts   *PromptBuilder
	log       *zap.Logger
	now       func() time.Time
}

func NewResumeScorer(
	docs repositories.DocumentRepository,
	scores repositories.ScoreRepository,
	criteria *CriteriaExtractor,
	generator TextGenerator,
	log *zap.Logger,
) *ResumeScorer {
	return &ResumeScorer{
		docs:      docs,
		scores:    scores,
		criteria:  criteria,
		generator: generator,
		prompts:   NewPromptBuilder(),
		log:       logger.OrNop(log),
		now:       time.Now,
	}
}

// Score resolves the JD's criteria and scores resume against them.
func (s *ResumeScorer) Score(ctx context.Context, resume, jd string) (*ScoreResult, error) {
	criteria, err := s.criteria.GetCriteria(ctx, jd)
	if err != nil {
		return nil, err
	}

	return s.ScoreWithCriteria(ctx, resume, jd, criteria)
}

// ScoreWithCriteria scores resume against an already resolved criteria list
// and upserts the result. Nothing is written when criteria is empty or the
// resume is missing.
func (s *ResumeScorer) ScoreWithCriteria(ctx context.Context, resume, jd string, criteria []string) (*ScoreResult, error) {
	if len(criteria) == 0 {
		return nil, fmt.Errorf("%s: %w", jd, ErrNoCriteria)
	}

	doc, err := s.docs.Get(ctx, models.KindResume, resume)
	if err != nil {
		return nil, err
	}

	log := s.log.With(logger.PairFields(resume, jd)...)

	reply, err := s.generator.GenerateText(ctx, s.prompts.BuildScoringPrompt(doc.Content, criteria))
	if err != nil {
		return nil, fmt.Errorf("score %s against %s: %w", resume, jd, err)
	}

	result := &ScoreResult{Resume: resume, JD: jd, Criteria: criteria, ScoredAt: s.now()}

	var payload struct {
		CandidateName any            `json:"candidate_name"`
		Scores        map[string]any `json:"scores"`
		TotalScore    any            `json:"total_score"`
	}
	if err := decodeReply(reply, &payload); err != nil {
		log.Warn("score reply rejected, storing zero scores", zap.Error(err))
		result.Degenerate = true
		result.CandidateName = UnknownCandidate
		result.Scores = NormalizeScores(criteria, nil)
	} else {
		result.CandidateName = coerceName(payload.CandidateName)
		if result.CandidateName == "" {
			result.CandidateName = UnknownCandidate
		}
		result.Scores = NormalizeScores(criteria, payload.Scores)
	}
	result.Total = SumScores(result.Scores)

	record := &models.ScoreRecord{
		ResumeName:    resume,
		JDName:        jd,
		TotalScore:    result.Total,
		ScoredAt:      result.ScoredAt,
		CandidateName: result.CandidateName,
	}
	if err := record.SetScores(result.Scores); err != nil {
		return nil, err
	}
	if err := s.scores.Upsert(ctx, record); err != nil {
		return nil, err
	}

	log.Info("resume scored",
		zap.String("candidate", result.CandidateName),
		zap.Int("total", result.Total),
		zap.Bool("degenerate", result.Degenerate),
	)

	return result, nil
}

// NormalizeScores builds a score map with exactly one entry per criterion.
// Keys are matched exactly, then ignoring case and surrounding space. Unknown
// keys are dropped and missing criteria score 0.
func NormalizeScores(criteria []string, raw map[string]any) map[string]int {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	folded := make(map[string]any, len(raw))
	for _, k := range keys {
		key := strings.ToLower(strings.TrimSpace(k))
		if _, dup := folded[key]; !dup {
			folded[key] = raw[k]
		}
	}

	scores := make(map[string]int, len(criteria))
	for _, c := range criteria {
		if v, ok := raw[c]; ok {
			scores[c] = coerceScore(v)
			continue
		}
		if v, ok := folded[strings.ToLower(strings.TrimSpace(c))]; ok {
			scores[c] = coerceScore(v)
			continue
		}
		scores[c] = 0
	}

	return scores
}

func SumScores(scores map[string]int) int {
	total := 0
	for _, v := range scores {
		total += v
	}
	return total
}
