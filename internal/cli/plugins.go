package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"cancerdetect/internal/app"
	"cancerdetect/internal/plugin"
)

func newPluginsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "plugins",
		Short: "List the available cancer types",
		Args:  cobra.NoArgs,
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
				return err
			}

			p := newPrinter(cmd, flags.json)
			if p.json {
				return p.JSON(listing)
			}
			if listing.Warning != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), listing.Warning)
			}
			for _, name := range listing.Names {
				p.Human("%s", name)
			}
			return nil
		},
	}
}
