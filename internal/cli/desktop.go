package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"cancerdetect/internal/app"
	"cancerdetect/internal/plugin"
	"cancerdetect/internal/tui"
)

func newDesktopCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "desktop",
		Short: "Open the terminal detection window",
		Long: "Open the interactive detection window. The plugin directory is read once at startup;\n" +
			"if it cannot be read the window does not open (fail-fast).",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := flags.loadConfig()
			log, err := quietLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Close()

			core, err := app.NewCore(cfg, log, plugin.PolicyFailFast)
			if err != nil {
				return err
			}
			defer core.Close()

			listing, err := core.Registry.List()
			if err != nil {
				return fmt.Errorf("cannot start: %w", err)
			}
			log.Info("Desktop window started with %d plugins", len(listing.Names))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return tui.Run(ctx, core.Dispatcher, listing)
		},
	}
}
