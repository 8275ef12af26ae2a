package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"alfredoptarigan/resume-ranker/internal/app"
)

const appName = "ranker"

var (
	cfgFile string

	rootCmd = &cobra.Command{
		Use:           appName,
		Short:         "ranker scores resumes against job descriptions and exports ranked reports",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a YAML config file")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	_ = viper.BindPFlag("log.debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("log.json", rootCmd.PersistentFlags().Lookup("json"))
}

func newApp(cmd *cobra.Command) (*app.App, error) {
	return app.New(cmd.Context(), viper.GetViper(), cfgFile)
}
