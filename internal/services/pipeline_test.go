package services

import (
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/repositories"
)

func newTestPipeline(t *testing.T, env *testEnv) *Pipeline {
	t.Helper()
	p := NewPipeline(PipelineDeps{
		Documents:  env.docs,
		Criteria:   env.criteria,
		Scores:     env.scores,
		Candidates: env.candidates,
		Generator:  env.gen,
		ReportsDir: t.TempDir(),
	})
	p.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return p
}

func TestScoreBatchReportsPerItem(t *testing.T) {
	env := mlEngEnv(t)
	p := newTestPipeline(t, env)

	// the second JD yields no criteria, so its pairs fail without a model call
	env.put(t, models.KindJD, "empty_jd", "nothing")
	if _, err := p.IngestJD(env.ctx, "ml_eng", "Machine learning engineer. Python and SQL required."); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	env.gen.criteriaReply = "no json here"

	results, err := p.ScoreBatch(env.ctx, []string{"alice", "missing"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}

	byPair := map[string]ItemResult{}
	for _, r := range results {
		byPair[r.Resume+"/"+r.JD] = r
	}
	if r := byPair["alice/ml_eng"]; r.Err != nil || r.Result.Total != 7 {
		t.Fatalf("unexpected alice result %+v", r)
	}
	if r := byPair["missing/ml_eng"]; !errors.Is(r.Err, repositories.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", r.Err)
	}
	for _, resume := range []string{"alice", "missing"} {
		if r := byPair[resume+"/empty_jd"]; !errors.Is(r.Err, ErrNoCriteria) {
			t.Fatalf("expected ErrNoCriteria for %s, got %v", resume, r.Err)
		}
	}
}

func TestScoreBatchResolvesCriteriaOncePerJD(t *testing.T) {
	env := mlEngEnv(t)
	p := newTestPipeline(t, env)

	results, err := p.ScoreBatch(env.ctx, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if env.gen.criteriaCalls != 1 {
		t.Fatalf("expected one criteria call, got %d", env.gen.criteriaCalls)
	}
}

func TestProcessResumeUpload(t *testing.T) {
	env := mlEngEnv(t)
	p := newTestPipeline(t, env)

	if _, err := p.ScoreBatch(env.ctx, nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	env.gen.scoreReplies["Alice Adams"] = `{"candidate_name": "Alice Adams", "scores": {"Python": 5, "SQL": 5}}`
	outcome, err := p.ProcessResumeUpload(env.ctx, []string{"alice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcome.Items) != 1 || outcome.Items[0].Result.Total != 10 {
		t.Fatalf("unexpected items %+v", outcome.Items)
	}
	if outcome.ReportErr != nil {
		t.Fatalf("unexpected report error: %v", outcome.ReportErr)
	}
	if !strings.HasSuffix(outcome.ReportPath, "scores_alice_20240102_030405.xlsx") {
		t.Fatalf("unexpected report path %s", outcome.ReportPath)
	}
	if _, err := os.Stat(outcome.ReportPath); err != nil {
		t.Fatalf("expected report on disk: %v", err)
	}

	records := env.records(t)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[1].ResumeName != "alice" || records[1].TotalScore != 10 {
		t.Fatalf("expected alice rescored last, got %+v", records[1])
	}
}

func TestPipelineSerializesCalls(t *testing.T) {
	env := mlEngEnv(t)
	p := newTestPipeline(t, env)

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.ScorePair(env.ctx, "alice", "ml_eng")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if records := env.records(t); len(records) != 1 {
		t.Fatalf("expected a single record, got %d", len(records))
	}
}
