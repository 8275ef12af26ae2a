package models

import (
	"fmt"
	"strings"
	"time"
)

type DocKind string

const (
	KindJD     DocKind = "jd"
	KindResume DocKind = "resume"
)

const (
	TableRawJD     = "raw_jd"
	TableRawResume = "raw_resume"
)

// ParseKind accepts "jd" or "resume" in any case.
func ParseKind(s string) (DocKind, error) {
	switch DocKind(strings.ToLower(strings.TrimSpace(s))) {
	case KindJD:
		return KindJD, nil
	case KindResume:
		return KindResume, nil
	}
	return "", fmt.Errorf("unknown document kind %q", s)
}

// Table is the namespace a kind of document is stored in.
func (k DocKind) Table() string {
	if k == KindJD {
		return TableRawJD
	}
	return TableRawResume
}

// Document is extracted text keyed by its file name. JDs and resumes share
// the shape but live in separate tables, selected with DocKind.Table.
type Document struct {
	Name        string    `gorm:"column:file_name;type:text;primaryKey" json:"file_name"`
	Content     string    `gorm:"type:text" json:"content"`
	ExtractedAt time.Time `json:"extracted_at"`
	// Seq keeps upload order for listing.
	Seq int64 `json:"-"`
}
