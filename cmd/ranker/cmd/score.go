package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-ranker/internal/services"
)

var scoreFlags struct {
	all     bool
	jds     []string
	resumes []string
	output  string
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score resumes against job descriptions and export the result",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := validateSelection(scoreFlags.all, scoreFlags.jds, scoreFlags.resumes); err != nil {
			return err
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		results, err := a.Pipeline.ScoreBatch(cmd.Context(), scoreFlags.resumes, scoreFlags.jds)
		if err != nil {
			return err
		}
		printResults(cmd.OutOrStdout(), results)

		path, err := a.Pipeline.Export(cmd.Context(), services.ExportFilter{
			JDs:        scoreFlags.jds,
			Resumes:    scoreFlags.resumes,
			OutputPath: scoreFlags.output,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", path)

		return nil
	},
}

func validateSelection(all bool, jds, resumes []string) error {
	if all && (len(jds) > 0 || len(resumes) > 0) {
		return errors.New("--all cannot be combined with --jd or --resume")
	}
	if !all && len(jds) == 0 && len(resumes) == 0 {
		return errors.New("use --all or select pairs with --jd and/or --resume")
	}
	return nil
}

func printResults(w io.Writer, results []services.ItemResult) {
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%s x %s: %v\n", r.Resume, r.JD, r.Err)
			continue
		}
		fmt.Fprintf(w, "%s x %s: %s total=%d\n", r.Resume, r.JD, r.Result.CandidateName, r.Result.Total)
	}
}

func init() {
	scoreCmd.Flags().BoolVar(&scoreFlags.all, "all", false, "score every resume against every job description")
	scoreCmd.Flags().StringSliceVar(&scoreFlags.jds, "jd", nil, "job description to score against (repeatable)")
	scoreCmd.Flags().StringSliceVar(&scoreFlags.resumes, "resume", nil, "resume to score (repeatable)")
	scoreCmd.Flags().StringVarP(&scoreFlags.output, "output", "o", "", "report path (default reports/resume_scores_<timestamp>.xlsx)")
	rootCmd.AddCommand(scoreCmd)
}
