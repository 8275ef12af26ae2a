package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/resume-ranker/internal/logger"
	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/repositories"
)

// ItemResult is the outcome of scoring one pair inside a batch.
type ItemResult struct {
	Resume string
	JD     string
	Result *ScoreResult
	Err    error
}

// UploadOutcome reports a resume upload: per-pair scores and the report.
type UploadOutcome struct {
	Items      []ItemResult
	ReportPath string
	ReportErr  error
}

// Pipeline runs one request at a time against the shared store. Every
// exported method holds the pipeline lock for its whole duration.
type Pipeline struct {
	mu sync.Mutex

	docs       repositories.DocumentRepository
	scores     repositories.ScoreRepository
	criteria   *CriteriaExtractor
	scorer     *ResumeScorer
	aggregator *Aggregator
	exporter   *Exporter
	reportsDir string
	log        *zap.Logger
	now        func() time.Time
}

type PipelineDeps struct {
	Documents  repositories.DocumentRepository
	Criteria   repositories.CriteriaRepository
	Scores     repositories.ScoreRepository
	Candidates repositories.CandidateRepository
	Generator  TextGenerator
	ReportsDir string
	Log        *zap.Logger
}

func NewPipeline(deps PipelineDeps) *Pipeline {
	log := logger.OrNop(deps.Log)
	extractor := NewCriteriaExtractor(deps.Documents, deps.Criteria, deps.Generator, log)

	return &Pipeline{
		docs:       deps.Documents,
		scores:     deps.Scores,
		criteria:   extractor,
		scorer:     NewResumeScorer(deps.Documents, deps.Scores, extractor, deps.Generator, log),
		aggregator: NewAggregator(deps.Scores, deps.Candidates),
		exporter:   NewExporter(deps.Scores, deps.Candidates, deps.ReportsDir, log),
		reportsDir: deps.ReportsDir,
		log:        log,
		now:        time.Now,
	}
}

// IngestJD stores a JD and extracts a fresh criteria set for it.
func (p *Pipeline) IngestJD(ctx context.Context, name, content string) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.docs.Put(ctx, models.KindJD, name, content); err != nil {
		return nil, err
	}
	p.log.Info("jd stored", logger.DocumentFields(string(models.KindJD), name)...)

	return p.criteria.ExtractCriteria(ctx, name)
}

func (p *Pipeline) IngestResume(ctx context.Context, name, content string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.docs.Put(ctx, models.KindResume, name, content); err != nil {
		return err
	}
	p.log.Info("resume stored", logger.DocumentFields(string(models.KindResume), name)...)

	return nil
}

// Criteria returns the JD's criteria, re-extracting them when refresh is set.
func (p *Pipeline) Criteria(ctx context.Context, jd string, refresh bool) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if refresh {
		return p.criteria.ExtractCriteria(ctx, jd)
	}
	return p.criteria.GetCriteria(ctx, jd)
}

func (p *Pipeline) ScorePair(ctx context.Context, resume, jd string) (*ScoreResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.scorer.Score(ctx, resume, jd)
}

// ScoreBatch scores every resume against every JD. Empty lists mean all
// stored documents of that kind. Criteria are resolved once per JD and one
// pair failing does not stop the rest.
func (p *Pipeline) ScoreBatch(ctx context.Context, resumes, jds []string) ([]ItemResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.scoreBatch(ctx, resumes, jds)
}

func (p *Pipeline) scoreBatch(ctx context.Context, resumes, jds []string) ([]ItemResult, error) {
	var err error
	if len(jds) == 0 {
		if jds, err = p.docs.List(ctx, models.KindJD); err != nil {
			return nil, err
		}
	}
	if len(resumes) == 0 {
		if resumes, err = p.docs.List(ctx, models.KindResume); err != nil {
			return nil, err
		}
	}

	results := make([]ItemResult, 0, len(resumes)*len(jds))
	for _, jd := range jds {
		criteria, cerr := p.criteria.GetCriteria(ctx, jd)
		if cerr == nil && len(criteria) == 0 {
			cerr = fmt.Errorf("%s: %w", jd, ErrNoCriteria)
		}

		for _, resume := range resumes {
			if err := ctx.Err(); err != nil {
				return results, err
			}

			item := ItemResult{Resume: resume, JD: jd, Err: cerr}
			if cerr == nil {
				item.Result, item.Err = p.scorer.ScoreWithCriteria(ctx, resume, jd, criteria)
			}
			if item.Err != nil {
				p.log.Warn("pair not scored", append(logger.PairFields(resume, jd), zap.Error(item.Err))...)
			}
			results = append(results, item)
		}
	}

	return results, nil
}

// RescoreResumes drops the resumes' previous scores and scores them against
// every stored JD.
func (p *Pipeline) RescoreResumes(ctx context.Context, resumes []string) ([]ItemResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.rescore(ctx, resumes)
}

func (p *Pipeline) rescore(ctx context.Context, resumes []string) ([]ItemResult, error) {
	if len(resumes) == 0 {
		return nil, nil
	}

	cleared, err := p.scores.BulkClear(ctx, resumes)
	if err != nil {
		return nil, err
	}
	p.log.Info("previous scores cleared", zap.Int64("records", cleared), zap.Int("resumes", len(resumes)))

	return p.scoreBatch(ctx, resumes, nil)
}

// ProcessResumeUpload rescores freshly uploaded resumes and exports their
// scores into a report named after them.
func (p *Pipeline) ProcessResumeUpload(ctx context.Context, resumes []string) (*UploadOutcome, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	items, err := p.rescore(ctx, resumes)
	if err != nil {
		return nil, err
	}

	outcome := &UploadOutcome{Items: items}
	outcome.ReportPath, outcome.ReportErr = p.exporter.Export(ctx, ExportFilter{
		Resumes:    resumes,
		OutputPath: p.uploadReportPath(resumes),
	})
	if outcome.ReportErr != nil && !errors.Is(outcome.ReportErr, ErrExportEmpty) {
		p.log.Error("upload report failed", zap.Error(outcome.ReportErr))
	}

	return outcome, nil
}

func (p *Pipeline) uploadReportPath(resumes []string) string {
	const maxNames = 3

	parts := make([]string, 0, maxNames)
	for i, r := range resumes {
		if i == maxNames {
			break
		}
		parts = append(parts, SheetName(filepath.Base(r)))
	}
	label := strings.ReplaceAll(strings.Join(parts, "_"), " ", "_")

	return filepath.Join(p.reportsDir, fmt.Sprintf("scores_%s_%s.xlsx", label, p.now().Format("20060102_150405")))
}

func (p *Pipeline) Rank(ctx context.Context, jd string) (*Table, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.aggregator.Rank(ctx, jd)
}

func (p *Pipeline) Scores(ctx context.Context, filter repositories.ScoreFilter) ([]models.ScoreRecord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.scores.Query(ctx, filter)
}

func (p *Pipeline) Export(ctx context.Context, filter ExportFilter) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.exporter.Export(ctx, filter)
}
