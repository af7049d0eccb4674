package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"cancerdetect/internal/app"
	"cancerdetect/internal/logger"
	"cancerdetect/internal/plugin"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web dashboard",
		Long: "Serve the browser dashboard. An unreadable plugin directory shows\n" +
			"\"Could not load cancer types.\" instead of stopping the server (warn-and-continue).",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := flags.loadConfig()
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			log, err := logger.NewLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Close()

			core, err := app.NewCore(cfg, log, plugin.PolicyWarnAndContinue)
			if err != nil {
				return err
			}
			defer core.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return app.NewApp(core).Run(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "HTTP port (or PORT env)")
	return cmd
}
