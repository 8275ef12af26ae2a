package services

import (
	"reflect"
	"testing"

	"alfredoptarigan/resume-ranker/internal/models"
)

func scoreRecord(t *testing.T, resume, jd string, scores map[string]int) models.ScoreRecord {
	t.Helper()
	rec := models.ScoreRecord{ResumeName: resume, JDName: jd, TotalScore: SumScores(scores)}
	if err := rec.SetScores(scores); err != nil {
		t.Fatalf("set scores: %v", err)
	}
	return rec
}

func TestBuildTable(t *testing.T) {
	records := []models.ScoreRecord{
		scoreRecord(t, "carol", "ml_eng", map[string]int{"SQL": 2}),
		scoreRecord(t, "alice", "ml_eng", map[string]int{"Python": 4, "SQL": 3}),
		scoreRecord(t, "dave", "ml_eng", map[string]int{"Python": 2}),
	}
	names := map[string]string{"alice": "Alice Adams"}

	table, err := BuildTable(records, names)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantCols := []string{"Resume", "Candidate", "Total", "Python", "SQL"}
	if !reflect.DeepEqual(table.Columns(), wantCols) {
		t.Fatalf("expected columns %v, got %v", wantCols, table.Columns())
	}

	// carol and dave tie on 2 and keep store order
	order := []string{table.Rows[0].Resume, table.Rows[1].Resume, table.Rows[2].Resume}
	if !reflect.DeepEqual(order, []string{"alice", "carol", "dave"}) {
		t.Fatalf("unexpected order %v", order)
	}

	if got := table.Values(1); !reflect.DeepEqual(got, []any{"carol", UnknownCandidate, 2, 0, 2}) {
		t.Fatalf("unexpected carol row %v", got)
	}
	if got := table.Values(0); !reflect.DeepEqual(got, []any{"alice", "Alice Adams", 7, 4, 3}) {
		t.Fatalf("unexpected alice row %v", got)
	}
}

func TestBuildTableEmpty(t *testing.T) {
	table, err := BuildTable(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Rows) != 0 || len(table.Columns()) != 3 {
		t.Fatalf("unexpected table %+v", table)
	}
}
