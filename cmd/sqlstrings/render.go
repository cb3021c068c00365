package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/pthm/sqlstrings"
	"github.com/pthm/sqlstrings/internal/cli"
	"github.com/pthm/sqlstrings/pkg/dialect"
)

type renderFlags struct {
	args     []string
	inline   bool
	dialect  string
	timezone string
	method   string
	output   string
}

// renderOutput is the json and yaml shape of a rendered statement.
type renderOutput struct {
	SQL      string `json:"sql"`
	Bindings []any  `json:"bindings"`
	Method   string `json:"method"`
	Dialect  string `json:"dialect"`
}

func newRenderCmd(a *app) *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a SQL template",
		Long: `Render a SQL template read from a file, or from stdin when no file is given.

Every %v in the template is replaced by the next --arg value. Use %% for a
literal percent sign. Values are parsed as YAML and bound as parameters unless
prefixed:

  ident:NAME     identifier, e.g. ident:users.name
  raw:TEXT       raw SQL, never escaped
  cols:[a, b]    list of identifiers
  list:[1, 2]    list of parameters`,
		Example: `  # Parameterized statement for PostgreSQL
  echo 'SELECT * FROM %v WHERE id IN (%v)' | \
    sqlstrings render -a ident:users -a 'list:[1, 2, 3]' --dialect postgres

  # Inline every value
  sqlstrings render query.sql -a alice --inline

  # Machine-readable output
  sqlstrings render query.sql -a 42 -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, a, &f, args)
		},
	}

	cmd.Flags().StringArrayVarP(&f.args, "arg", "a", nil, "template value, in order (repeatable)")
	cmd.Flags().BoolVar(&f.inline, "inline", false, "inline escaped values instead of binding them")
	cmd.Flags().StringVarP(&f.dialect, "dialect", "d", "", "SQL dialect (default from config)")
	cmd.Flags().StringVar(&f.timezone, "timezone", "", "timezone for date literals: local, Z or an offset such as +02:00")
	cmd.Flags().StringVar(&f.method, "method", "", "method reported on the result")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output format: text, json or yaml")

	return cmd
}

func runRender(cmd *cobra.Command, a *app, f *renderFlags, args []string) error {
	text, err := readTemplate(cmd, args)
	if err != nil {
		return err
	}

	values, err := cli.ParseArgs(f.args)
	if err != nil {
		return cli.InputError("parsing arguments", err)
	}

	d, err := dialect.Lookup(resolveString(f.dialect, a.cfg.Dialect))
	if err != nil {
		return cli.ConfigError("resolving dialect", err)
	}

	output := resolveString(f.output, a.cfg.Output)
	switch output {
	case cli.OutputText, cli.OutputJSON, cli.OutputYAML:
	default:
		return cli.InputError(fmt.Sprintf("unknown output format %q", output), nil)
	}

	opts := a.cfg.RenderOptions()
	opts.Inline = resolveBool(cmd, "inline", f.inline, a.cfg.Inline)
	opts.Timezone = resolveString(f.timezone, a.cfg.Timezone)
	opts.Method = resolveString(f.method, a.cfg.Method)

	tmpl, err := sqlstrings.Sqlf(text, values...)
	if err != nil {
		return cli.TemplateError("building template", err)
	}

	a.log.Debug().
		Str("dialect", d.Name).
		Bool("inline", opts.Inline).
		Int("values", len(values)).
		Msg("rendering template")

	res, err := d.Render(tmpl, opts)
	if err != nil {
		return cli.TemplateError("rendering template", err)
	}

	return writeResult(cmd.OutOrStdout(), output, d, opts.Timezone, res)
}

// readTemplate reads the template from the file named in args, or from stdin.
func readTemplate(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", cli.InputError("reading template from stdin", err)
		}
		return string(b), nil
	}

	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", cli.InputError("reading template", err)
	}
	return string(b), nil
}

func writeResult(w io.Writer, output string, d *dialect.Dialect, timezone string, res sqlstrings.Result) error {
	out := renderOutput{
		SQL:      res.SQL,
		Bindings: res.Bindings,
		Method:   res.Method,
		Dialect:  d.Name,
	}
	if out.Bindings == nil {
		out.Bindings = []any{}
	}

	switch output {
	case cli.OutputJSON:
		b, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return cli.GeneralError("encoding result", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err

	case cli.OutputYAML:
		b, err := yaml.Marshal(out)
		if err != nil {
			return cli.GeneralError("encoding result", err)
		}
		_, err = w.Write(b)
		return err
	}

	if _, err := fmt.Fprintln(w, res.SQL); err != nil {
		return err
	}
	for i, b := range res.Bindings {
		if _, err := fmt.Fprintf(w, "-- %d: %s\n", i+1, d.Escape(b, timezone)); err != nil {
			return err
		}
	}
	return nil
}
