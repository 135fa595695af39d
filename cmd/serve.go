package cmd

import (
	"strings"

	"fintrack/config"
	"fintrack/database"
	"fintrack/middleware"
	"fintrack/router"

	"github.com/spf13/cobra"
)

var port string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if port != "" {
			if !strings.HasPrefix(port, ":") {
				port = ":" + port
			}
			cfg.Server.Port = port
		}
		config.PrintConfig()

		if err := database.Init(cfg, Log); err != nil {
			return err
		}
		middleware.InitJWT(cfg)

		r := router.SetupRouter(cfg, Log)
		Log.WithField("port", cfg.Server.Port).Infof("fintrack listening, swagger at http://localhost%s/swagger/index.html", cfg.Server.Port)
		return r.Run(cfg.Server.Port)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "listen port, e.g. 8080 or :8080")
}
