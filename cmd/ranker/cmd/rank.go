package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-ranker/internal/services"
)

var rankJD string

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Print resumes ranked by total score",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		table, err := a.Pipeline.Rank(cmd.Context(), rankJD)
		if err != nil {
			return err
		}

		return printTable(cmd.OutOrStdout(), table)
	},
}

func printTable(w io.Writer, table *services.Table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(table.Columns(), "\t"))
	for i := range table.Rows {
		cells := make([]string, 0, len(table.Columns()))
		for _, v := range table.Values(i) {
			cells = append(cells, fmt.Sprint(v))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func init() {
	rankCmd.Flags().StringVar(&rankJD, "jd", "", "limit the ranking to one job description")
	rootCmd.AddCommand(rankCmd)
}
