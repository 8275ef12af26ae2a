package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-ranker/internal/models"
)

var ingestKind string

var ingestCmd = &cobra.Command{
	Use:   "ingest FILE...",
	Short: "Extract text from JD or resume files and store it",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := models.ParseKind(ingestKind)
		if err != nil {
			return err
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		out := cmd.OutOrStdout()
		failed := 0
		for _, path := range args {
			name := filepath.Base(path)
			content, err := a.Extractor.Extract(path)
			if err != nil {
				failed++
				fmt.Fprintf(out, "%s: %v\n", name, err)
				continue
			}

			if kind == models.KindJD {
				criteria, err := a.Pipeline.IngestJD(cmd.Context(), name, content)
				if err != nil {
					failed++
					fmt.Fprintf(out, "%s: %v\n", name, err)
					continue
				}
				fmt.Fprintf(out, "%s: %d criteria [%s]\n", name, len(criteria), strings.Join(criteria, ", "))
				continue
			}

			if err := a.Pipeline.IngestResume(cmd.Context(), name, content); err != nil {
				failed++
				fmt.Fprintf(out, "%s: %v\n", name, err)
				continue
			}
			fmt.Fprintf(out, "%s: stored (%d characters)\n", name, len(content))
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, len(args))
		}
		return nil
	},
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestKind, "kind", "k", "", "document kind: jd or resume")
	_ = ingestCmd.MarkFlagRequired("kind")
	rootCmd.AddCommand(ingestCmd)
}
