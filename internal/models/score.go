package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

type CriteriaSet struct {
	JDName     string         `gorm:"column:file_name;type:text;primaryKey" json:"jd"`
	Criteria   datatypes.JSON `json:"criteria"`
	AnalyzedAt time.Time      `json:"analyzed_at"`
}

func (CriteriaSet) TableName() string {
	return "jd_analysis"
}

func (c *CriteriaSet) List() ([]string, error) {
	var out []string
	if len(c.Criteria) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(c.Criteria, &out); err != nil {
		return nil, fmt.Errorf("decode criteria for %s: %w", c.JDName, err)
	}
	return out, nil
}

func NewCriteriaSet(jd string, criteria []string, at time.Time) (*CriteriaSet, error) {
	if criteria == nil {
		criteria = []string{}
	}
	raw, err := json.Marshal(criteria)
	if err != nil {
		return nil, fmt.Errorf("encode criteria for %s: %w", jd, err)
	}
	return &CriteriaSet{JDName: jd, Criteria: datatypes.JSON(raw), AnalyzedAt: at}, nil
}

// ScoreRecord is one scored (resume, jd) pair. CandidateName is not a column
// here; the score repository writes it to the candidate index.
type ScoreRecord struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"-"`
	ResumeName    string         `gorm:"type:text;not null;uniqueIndex:idx_scores_pair" json:"resume_name"`
	JDName        string         `gorm:"type:text;not null;uniqueIndex:idx_scores_pair" json:"jd_name"`
	Scores        datatypes.JSON `json:"scores"`
	TotalScore    int            `json:"total_score"`
	ScoredAt      time.Time      `json:"scored_at"`
	CandidateName string         `gorm:"-" json:"candidate_name,omitempty"`
}

func (ScoreRecord) TableName() string {
	return "scores"
}

func (r *ScoreRecord) ScoreMap() (map[string]int, error) {
	out := map[string]int{}
	if len(r.Scores) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(r.Scores, &out); err != nil {
		return nil, fmt.Errorf("decode scores for %s/%s: %w", r.ResumeName, r.JDName, err)
	}
	return out, nil
}

func (r *ScoreRecord) SetScores(scores map[string]int) error {
	if scores == nil {
		scores = map[string]int{}
	}
	raw, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("encode scores for %s/%s: %w", r.ResumeName, r.JDName, err)
	}
	r.Scores = datatypes.JSON(raw)
	return nil
}

// CandidateInfo is the candidate index: last known name per resume.
type CandidateInfo struct {
	ResumeName    string         `gorm:"column:file_name;type:text;primaryKey" json:"resume_name"`
	CandidateName string         `gorm:"type:text" json:"candidate_name"`
	Skills        datatypes.JSON `json:"skills"`
	AnalyzedAt    time.Time      `json:"analyzed_at"`
}

func (CandidateInfo) TableName() string {
	return "resume_analysis"
}
