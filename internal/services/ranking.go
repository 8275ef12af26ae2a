package services

import (
	"context"
	"sort"

	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/repositories"
)

const (
	ColumnResume    = "Resume"
	ColumnCandidate = "Candidate"
	ColumnTotal     = "Total"
	ColumnJD        = "JD"
)

type RankRow struct {
	Resume    string
	Candidate string
	Total     int
	Scores    map[string]int
}

// Table is a ranked view of score records: Resume, Candidate, Total and then
// one column per criterion in lexicographic order.
type Table struct {
	Criteria []string
	Rows     []RankRow
}

func (t *Table) Columns() []string {
	cols := make([]string, 0, 3+len(t.Criteria))
	cols = append(cols, ColumnResume, ColumnCandidate, ColumnTotal)
	return append(cols, t.Criteria...)
}

// Values renders row i in column order. Missing criteria render as 0.
func (t *Table) Values(i int) []any {
	row := t.Rows[i]
	values := make([]any, 0, 3+len(t.Criteria))
	values = append(values, row.Resume, row.Candidate, row.Total)
	for _, c := range t.Criteria {
		values = append(values, row.Scores[c])
	}
	return values
}

type Aggregator struct {
	scores     repositories.ScoreRepository
	candidates repositories.CandidateRepository
}

func NewAggregator(scores repositories.ScoreRepository, candidates repositories.CandidateRepository) *Aggregator {
	return &Aggregator{scores: scores, candidates: candidates}
}

// Rank builds the ranked table for jd, or across every JD when jd is empty.
func (a *Aggregator) Rank(ctx context.Context, jd string) (*Table, error) {
	records, err := a.scores.Query(ctx, repositories.ScoreFilter{JDName: jd})
	if err != nil {
		return nil, err
	}
	names, err := a.candidates.CandidateNames(ctx)
	if err != nil {
		return nil, err
	}

	return BuildTable(records, names)
}

// BuildTable ranks records by total, highest first. Ties keep record order.
func BuildTable(records []models.ScoreRecord, names map[string]string) (*Table, error) {
	table := &Table{Rows: make([]RankRow, 0, len(records))}
	seen := map[string]struct{}{}

	for i := range records {
		scores, err := records[i].ScoreMap()
		if err != nil {
			return nil, err
		}
		for c := range scores {
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				table.Criteria = append(table.Criteria, c)
			}
		}

		candidate := names[records[i].ResumeName]
		if candidate == "" {
			candidate = UnknownCandidate
		}
		table.Rows = append(table.Rows, RankRow{
			Resume:    records[i].ResumeName,
			Candidate: candidate,
			Total:     records[i].TotalScore,
			Scores:    scores,
		})
	}

	sort.Strings(table.Criteria)
	sort.SliceStable(table.Rows, func(i, j int) bool {
		return table.Rows[i].Total > table.Rows[j].Total
	})

	return table, nil
}
