package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pthm/sqlstrings/internal/cli"
	"github.com/pthm/sqlstrings/pkg/dialect"
)

func newEscapeCmd(a *app) *cobra.Command {
	var (
		ident       bool
		dialectName string
		timezone    string
	)

	cmd := &cobra.Command{
		Use:   "escape <value>",
		Short: "Escape a single value or identifier",
		Long: `Escape a single value as a SQL literal, or a name as an identifier.

Values are parsed as YAML, so 42 is a number and '42' a string.`,
		Example: `  # Escape a string literal for PostgreSQL
  sqlstrings escape "o'brien" --dialect postgres

  # Escape a dotted identifier for MySQL
  sqlstrings escape --ident users.name --dialect mysql`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dialect.Lookup(resolveString(dialectName, a.cfg.Dialect))
			if err != nil {
				return cli.ConfigError("resolving dialect", err)
			}

			if ident {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), d.EscapeID(args[0]))
				return err
			}

			v, err := cli.ParseValue(args[0])
			if err != nil {
				return cli.InputError("parsing value", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), d.Escape(v, resolveString(timezone, a.cfg.Timezone)))
			return err
		},
	}

	cmd.Flags().BoolVar(&ident, "ident", false, "escape the value as an identifier")
	cmd.Flags().StringVarP(&dialectName, "dialect", "d", "", "SQL dialect (default from config)")
	cmd.Flags().StringVar(&timezone, "timezone", "", "timezone for date literals")

	return cmd
}
