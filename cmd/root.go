// Package cmd holds the fintrack command line: the HTTP server and a
// terminal dashboard report.
package cmd

import (
	"os"

	"fintrack/config"
	"fintrack/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger for commands
	Log = logrus.StandardLogger()

	cfg        *config.Config
	configFile string

	rootCmd = &cobra.Command{
		Use:          "fintrack",
		Short:        "Personal finance tracking with budgets and dashboards",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.LoadConfig(configFile)
			if err != nil {
				return err
			}
			Log = logging.Setup(cfg.Log)
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "external config file (optional)")
	rootCmd.AddCommand(serveCmd, reportCmd, versionCmd)
}

// Version build version
var Version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("fintrack v" + Version)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		Log.WithError(err).Error("command failed")
		os.Exit(1)
	}
}
