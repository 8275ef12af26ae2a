package models

type UploadResponse struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	FileType     string `json:"file_type"`
	Characters   int    `json:"characters"`
}

type UploadError struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

type ScoreRequest struct {
	ResumeID string `json:"resume_id"`
	JDID     string `json:"jd_id"`
}

type ExportRequest struct {
	JDIDs      []string `json:"jd_ids"`
	ResumeIDs  []string `json:"resume_ids"`
	OutputPath string   `json:"output_path"`
}

type ExportResponse struct {
	Path  string `json:"path,omitempty"`
	Error string `json:"error,omitempty"`
}

type CriteriaResponse struct {
	JD       string   `json:"jd"`
	Criteria []string `json:"criteria"`
}

type ItemResponse struct {
	Resume        string         `json:"resume"`
	JD            string         `json:"jd"`
	CandidateName string         `json:"candidate_name,omitempty"`
	Scores        map[string]int `json:"scores,omitempty"`
	Total         int            `json:"total"`
	Error         string         `json:"error,omitempty"`
}

type RankResponse struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}
