package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-ranker/internal/services"
)

var exportFlags struct {
	all     bool
	jds     []string
	resumes []string
	output  string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored scores to an xlsx report",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if exportFlags.all && (len(exportFlags.jds) > 0 || len(exportFlags.resumes) > 0) {
			return errors.New("--all cannot be combined with --jd or --resume")
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		path, err := a.Pipeline.Export(cmd.Context(), services.ExportFilter{
			JDs:        exportFlags.jds,
			Resumes:    exportFlags.resumes,
			OutputPath: exportFlags.output,
		})
		if errors.Is(err, services.ErrExportEmpty) {
			fmt.Fprintln(cmd.OutOrStdout(), "no scores match, nothing exported")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", path)
		return nil
	},
}

func init() {
	exportCmd.Flags().BoolVar(&exportFlags.all, "all", false, "export every stored score")
	exportCmd.Flags().StringSliceVar(&exportFlags.jds, "jd", nil, "job description to include (repeatable)")
	exportCmd.Flags().StringSliceVar(&exportFlags.resumes, "resume", nil, "resume to include (repeatable)")
	exportCmd.Flags().StringVarP(&exportFlags.output, "output", "o", "", "report path (default reports/resume_scores_<timestamp>.xlsx)")
	rootCmd.AddCommand(exportCmd)
}
