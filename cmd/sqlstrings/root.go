package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pthm/sqlstrings"
	"github.com/pthm/sqlstrings/internal/cli"
)

// app holds state shared by every command of one CLI invocation.
type app struct {
	// Set during PersistentPreRunE
	cfg        *cli.Config
	configPath string
	log        zerolog.Logger

	// Persistent flags
	cfgFile string
	verbose int
	quiet   bool
}

// Command group IDs
const (
	groupRender  = "render"
	groupUtility = "utility"
)

func newRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:   "sqlstrings",
		Short: "Composable SQL templates",
		Long: `sqlstrings - Composable SQL templates

Render SQL templates into parameterized statements with ordered bindings,
or into a single statement with every value escaped inline.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip config loading for help/completion/version commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
				return nil
			}

			var err error
			a.cfg, a.configPath, err = cli.LoadConfig(a.cfgFile)
			if err != nil {
				return cli.ConfigError("loading configuration", err)
			}

			a.log = cli.NewLogger(a.cfg.Log, a.verbose, a.quiet, cmd.ErrOrStderr())
			sqlstrings.SetLogger(a.log)
			a.log.Debug().Str("config", a.configPath).Msg("configuration loaded")

			return nil
		},
		SilenceUsage:  true, // Don't show usage on errors
		SilenceErrors: true, // We handle errors ourselves
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: auto-discover sqlstrings.yaml)")
	rootCmd.PersistentFlags().CountVarP(&a.verbose, "verbose", "v", "increase verbosity (can be repeated)")
	rootCmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")

	rootCmd.AddGroup(
		&cobra.Group{ID: groupRender, Title: "Rendering:"},
		&cobra.Group{ID: groupUtility, Title: "Utility:"},
	)

	renderCmd := newRenderCmd(a)
	escapeCmd := newEscapeCmd(a)
	renderCmd.GroupID = groupRender
	escapeCmd.GroupID = groupRender
	rootCmd.AddCommand(renderCmd, escapeCmd)

	configCmd := newConfigCmd(a)
	versionCmd := newVersionCmd()
	configCmd.GroupID = groupUtility
	versionCmd.GroupID = groupUtility
	rootCmd.AddCommand(configCmd, versionCmd)

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		cli.ExitWithError(err)
	}
}

// resolveString returns the first non-empty string from the provided values.
// Used to implement precedence: flag > config > default.
func resolveString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// resolveBool returns the flag value when the flag was set on the command
// line, and the configured value otherwise.
func resolveBool(cmd *cobra.Command, name string, flagValue, configValue bool) bool {
	if cmd.Flags().Changed(name) {
		return flagValue
	}
	return configValue
}
