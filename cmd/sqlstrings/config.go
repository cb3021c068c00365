package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/pthm/sqlstrings/internal/cli"
)

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	var showSource bool
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Long:  `Show the effective configuration after merging defaults, config file, and environment variables.`,
		Example: `  # Show effective configuration
  sqlstrings config show

  # Show configuration with source file path
  sqlstrings config show --source`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if showSource {
				if a.configPath != "" {
					fmt.Fprintf(w, "Config file: %s\n\n", a.configPath)
				} else {
					fmt.Fprintln(w, "Config file: (none, using defaults)")
					fmt.Fprintln(w)
				}
			}

			d, err := a.cfg.ResolvedDialect()
			if err != nil {
				return cli.ConfigError("resolving dialect", err)
			}
			a.log.Debug().Stringer("dialect", d).Msg("showing configuration")

			out, err := yaml.Marshal(a.cfg)
			if err != nil {
				return cli.GeneralError("encoding configuration", err)
			}
			_, err = fmt.Fprint(w, string(out))
			return err
		},
	}
	showCmd.Flags().BoolVar(&showSource, "source", false, "show config file source")

	configCmd.AddCommand(showCmd)
	return configCmd
}
