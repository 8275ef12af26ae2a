package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/repositories"
	"alfredoptarigan/resume-ranker/internal/testutil"
)

// stubGenerator answers criteria prompts with criteriaReply and scoring
// prompts with the entry of scoreReplies whose key appears in the prompt.
type stubGenerator struct {
	criteriaReply string
	scoreReplies  map[string]string
	err           error

	criteriaCalls int
	scoreCalls    int
	prompts       []string
}

func (s *stubGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}

	if strings.Contains(prompt, "preparing a scoring rubric") {
		s.criteriaCalls++
		return s.criteriaReply, nil
	}

	s.scoreCalls++
	for key, reply := range s.scoreReplies {
		if strings.Contains(prompt, key) {
			return reply, nil
		}
	}
	return "no idea", nil
}

type testEnv struct {
	ctx        context.Context
	docs       repositories.DocumentRepository
	criteria   repositories.CriteriaRepository
	scores     repositories.ScoreRepository
	candidates repositories.CandidateRepository
	gen        *stubGenerator
	extractor  *CriteriaExtractor
	scorer     *ResumeScorer
}

func newTestEnv(t *testing.T, gen *stubGenerator) *testEnv {
	t.Helper()

	db := testutil.DB(t)
	env := &testEnv{
		ctx:        context.Background(),
		docs:       repositories.NewDocumentRepository(db),
		criteria:   repositories.NewCriteriaRepository(db),
		scores:     repositories.NewScoreRepository(db),
		candidates: repositories.NewCandidateRepository(db),
		gen:        gen,
	}
	env.extractor = NewCriteriaExtractor(env.docs, env.criteria, gen, zap.NewNop())
	env.scorer = NewResumeScorer(env.docs, env.scores, env.extractor, gen, zap.NewNop())

	return env
}

func (e *testEnv) put(t *testing.T, kind models.DocKind, name, content string) {
	t.Helper()
	if _, err := e.docs.Put(e.ctx, kind, name, content); err != nil {
		t.Fatalf("put %s %s: %v", kind, name, err)
	}
}

func (e *testEnv) records(t *testing.T) []models.ScoreRecord {
	t.Helper()
	records, err := e.scores.Query(e.ctx, repositories.ScoreFilter{})
	if err != nil {
		t.Fatalf("query scores: %v", err)
	}
	return records
}

// mlEngEnv is the two-criteria job with alice and bob uploaded.
func mlEngEnv(t *testing.T) *testEnv {
	t.Helper()

	env := newTestEnv(t, &stubGenerator{
		criteriaReply: "```json\n{\"criteria\": [\"Python\", \"SQL\"]}\n```",
		scoreReplies: map[string]string{
			"Alice Adams": `Here you go: {"candidate_name": "Alice Adams", "scores": {"Python": 4, "SQL": 3}, "total_score": 99}`,
			"Bob Brown":   `{"candidate_name": "Bob Brown", "scores": {"python": 2}, "total_score": 2}`,
		},
	})
	env.put(t, models.KindJD, "ml_eng", "Machine learning engineer. Python and SQL required.")
	env.put(t, models.KindResume, "alice", "Alice Adams. Python, SQL, pandas.")
	env.put(t, models.KindResume, "bob", "Bob Brown. Some Python.")

	return env
}

func assertErrorIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("expected %v, got %v", target, err)
	}
}
