package services

import (
	"encoding/json"
	"fmt"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildCriteriaPrompt asks for the scoring rubric of a job description.
func (pb *PromptBuilder) BuildCriteriaPrompt(jobDescription string) string {
	return fmt.Sprintf(`You are an expert technical recruiter preparing a scoring rubric.

Extract the key criteria from the job description below. Criteria should cover
required skills, qualifications, experience and certifications. Keep each
criterion short (a few words) and do not repeat criteria.

JOB DESCRIPTION:
%s

Return your response as a JSON object with a single key "criteria" holding an
array of strings:
{
  "criteria": ["criterion 1", "criterion 2", "criterion 3"]
}`, jobDescription)
}

// BuildScoringPrompt asks for a per-criterion score of a resume plus the
// candidate's name.
func (pb *PromptBuilder) BuildScoringPrompt(resumeText string, criteria []string) string {
	list, err := json.MarshalIndent(criteria, "", "  ")
	if err != nil {
		list = []byte("[]")
	}

	return fmt.Sprintf(`You are an expert HR recruiter scoring a resume against job criteria.

For each criterion assign an integer score from %d to %d:
0 = Not mentioned or not relevant
1 = Barely mentioned
2 = Somewhat relevant
3 = Relevant
4 = Very relevant
5 = Perfectly matches

Also extract the candidate's full name from the resume.

RESUME:
%s

CRITERIA:
%s

Return your response in the following JSON format, using the criteria exactly
as written above as keys:
{
  "candidate_name": "Full Name",
  "scores": {
    "criterion 1": <score>,
    "criterion 2": <score>
  },
  "total_score": <sum of all scores>
}

Make sure to include a score for each criterion listed above.`, MinScore, MaxScore, resumeText, string(list))
}
