package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-ranker/internal/logger"
	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/repositories"
)

const (
	SummarySheet = "Summary"

	maxSheetName = 31
	defaultSheet = "Sheet1"
)

// ExportFilter narrows an export. Empty sets select everything.
type ExportFilter struct {
	JDs        []string
	Resumes    []string
	OutputPath string
}

type Exporter struct {
	scores     repositories.ScoreRepository
	candidates repositories.CandidateRepository
	reportsDir string
	log        *zap.Logger
	now        func() time.Time
}

func NewExporter(scores repositories.ScoreRepository, candidates repositories.CandidateRepository, reportsDir string, log *zap.Logger) *Exporter {
	return &Exporter{
		scores:     scores,
		candidates: candidates,
		reportsDir: reportsDir,
		log:        logger.OrNop(log),
		now:        time.Now,
	}
}

// DefaultPath is where an export lands when no path is given.
func (e *Exporter) DefaultPath() string {
	return filepath.Join(e.reportsDir, fmt.Sprintf("resume_scores_%s.xlsx", e.now().Format("20060102_150405")))
}

// Export writes one sheet per JD plus a Summary sheet and returns the file
// path. ErrExportEmpty is returned, and no file written, when nothing matches.
func (e *Exporter) Export(ctx context.Context, filter ExportFilter) (string, error) {
	records, err := e.scores.Query(ctx, repositories.ScoreFilter{})
	if err != nil {
		return "", err
	}
	records = filterRecords(records, filter)
	if len(records) == 0 {
		return "", ErrExportEmpty
	}

	names, err := e.candidates.CandidateNames(ctx)
	if err != nil {
		return "", err
	}

	byJD := map[string][]models.ScoreRecord{}
	var jds []string
	for _, r := range records {
		if _, ok := byJD[r.JDName]; !ok {
			jds = append(jds, r.JDName)
		}
		byJD[r.JDName] = append(byJD[r.JDName], r)
	}
	sort.Strings(jds)

	f := excelize.NewFile()
	defer f.Close()

	used := map[string]struct{}{strings.ToLower(SummarySheet): {}}
	for i, jd := range jds {
		table, err := BuildTable(byJD[jd], names)
		if err != nil {
			return "", err
		}

		sheet := uniqueSheetName(SheetName(jd), used)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet); err != nil {
				return "", fmt.Errorf("failed to name sheet %q: %w", sheet, err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return "", fmt.Errorf("failed to create sheet %q: %w", sheet, err)
		}

		if err := writeTable(f, sheet, table); err != nil {
			return "", err
		}
	}

	if err := writeSummary(f, records, names); err != nil {
		return "", err
	}

	path := filter.OutputPath
	if path == "" {
		path = e.DefaultPath()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}

	e.log.Info("report exported",
		zap.String("path", path),
		zap.Int("records", len(records)),
		zap.Int("sheets", len(jds)+1),
	)

	return path, nil
}

func filterRecords(records []models.ScoreRecord, filter ExportFilter) []models.ScoreRecord {
	jds := toSet(filter.JDs)
	resumes := toSet(filter.Resumes)

	out := records[:0:0]
	for _, r := range records {
		if len(jds) > 0 {
			if _, ok := jds[r.JDName]; !ok {
				continue
			}
		}
		if len(resumes) > 0 {
			if _, ok := resumes[r.ResumeName]; !ok {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

func writeTable(f *excelize.File, sheet string, table *Table) error {
	if err := setRow(f, sheet, 1, toAny(table.Columns())); err != nil {
		return err
	}
	for i := range table.Rows {
		if err := setRow(f, sheet, i+2, table.Values(i)); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(f *excelize.File, records []models.ScoreRecord, names map[string]string) error {
	rows := make([]models.ScoreRecord, len(records))
	copy(rows, records)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].JDName != rows[j].JDName {
			return rows[i].JDName < rows[j].JDName
		}
		return rows[i].TotalScore > rows[j].TotalScore
	})

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := setRow(f, SummarySheet, 1, []any{ColumnJD, ColumnResume, ColumnCandidate, ColumnTotal}); err != nil {
		return err
	}
	for i, r := range rows {
		candidate := names[r.ResumeName]
		if candidate == "" {
			candidate = UnknownCandidate
		}
		if err := setRow(f, SummarySheet, i+2, []any{r.JDName, r.ResumeName, candidate, r.TotalScore}); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
	}
	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

var sheetNameReplacer = strings.NewReplacer(
	":", "_", `\`, "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_",
)

// SheetName derives a worksheet name from a JD id: the extension is dropped,
// names over 31 characters keep 28 and gain "...", and characters Excel
// rejects become "_".
func SheetName(jd string) string {
	name := strings.TrimSuffix(jd, filepath.Ext(jd))
	if utf8.RuneCountInString(name) > maxSheetName {
		name = string([]rune(name)[:maxSheetName-3]) + "..."
	}
	name = sheetNameReplacer.Replace(name)
	name = strings.Trim(name, "'")
	if strings.TrimSpace(name) == "" {
		name = "JD"
	}
	return name
}

// uniqueSheetName suffixes name with " (n)" until it is unused. Excel compares
// sheet names case-insensitively.
func uniqueSheetName(name string, used map[string]struct{}) string {
	candidate := name
	for n := 2; ; n++ {
		if _, taken := used[strings.ToLower(candidate)]; !taken {
			break
		}
		suffix := fmt.Sprintf(" (%d)", n)
		base := []rune(name)
		if keep := maxSheetName - len(suffix); len(base) > keep {
			base = base[:keep]
		}
		candidate = string(base) + suffix
	}
	used[strings.ToLower(candidate)] = struct{}{}
	return candidate
}
