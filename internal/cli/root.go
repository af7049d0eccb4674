package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cancerdetect/internal/config"
	"cancerdetect/internal/logger"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Global flag values shared across all commands. Empty values keep the environment configuration.
type globalFlags struct {
	pluginDir    string
	pluginSuffix string
	policy       string
	logDir       string
	historyDB    string
	json         bool
}

// NewRootCmd creates the top-level cobra command with global flags.
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "cancerdetect",
		Short: "Run cancer type detection plugins on medical images",
		Long: "cancerdetect discovers detection plugins in a directory and runs the chosen one on an image,\n" +
			"from a web dashboard, a terminal window or a single command.\n\n" +
			"Configuration comes from the environment (and .env): PORT, PASSWORD, PLUGIN_DIR, PLUGIN_SUFFIX,\n" +
			"PLUGIN_DIR_POLICY, MAX_UPLOAD_MB, SESSION_TTL, STATIC_DIR, LOG_DIR, HISTORY_DB.\n" +
			"Flags override the environment.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.pluginDir, "plugin-dir", "", "plugin directory (or PLUGIN_DIR env)")
	pf.StringVar(&flags.pluginSuffix, "plugin-suffix", "", "plugin file suffix (or PLUGIN_SUFFIX env)")
	pf.StringVar(&flags.policy, "policy", "", "unreadable plugin directory policy: fail-fast or warn-and-continue (or PLUGIN_DIR_POLICY env)")
	pf.StringVar(&flags.logDir, "log-dir", "", "log directory (or LOG_DIR env)")
	pf.StringVar(&flags.historyDB, "history-db", "", "SQLite detection history file, empty disables history (or HISTORY_DB env)")
	pf.BoolVar(&flags.json, "json", false, "output results as JSON")

	root.AddCommand(newServeCmd(flags))
	root.AddCommand(newDesktopCmd(flags))
	root.AddCommand(newPluginsCmd(flags))
	root.AddCommand(newDetectCmd(flags))
	root.AddCommand(newHistoryCmd(flags))

	return root
}

// Execute runs the root command and exits with the correct code:
// 2 for a failed detection, 1 for anything else.
func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if IsDetectionError(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies the global flags on top.
func (f *globalFlags) loadConfig() *config.Config {
	cfg := config.Load()
	if f.pluginDir != "" {
		cfg.PluginDirectory = f.pluginDir
	}
	if f.pluginSuffix != "" {
		cfg.PluginSuffix = f.pluginSuffix
	}
	if f.policy != "" {
		cfg.PluginPolicy = f.policy
	}
	if f.logDir != "" {
		cfg.LogDirectory = f.logDir
	}
	if f.historyDB != "" {
		cfg.HistoryDatabase = f.historyDB
	}
	return cfg
}

// quietLogger logs to the level files only, keeping the terminal for command output.
func quietLogger(cfg *config.Config) (*logger.Logger, error) {
	log, err := logger.NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	log.DisableConsole()
	return log, nil
}
