package units

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smartcontractkit/measurement-framework/measure"
	"github.com/smartcontractkit/measurement-framework/pkg/commands/flags"
	"github.com/smartcontractkit/measurement-framework/pkg/commands/text"
)

var (
	parseShort = "Parse a measurement written as text"

	parseLong = text.LongDesc(`
		Parses text of the form "<number> <unit>" into a measurement and prints its
		measure, unit and standard value.

		The measure is guessed from the unit unless --measure names one.
	`)

	parseExample = text.Examples(`
		# Parse a distance
		measurectl parse "2.5 mi"

		# Parse a speed and print the stored form as JSON
		measurectl parse "65 mi/hr" --format json

		# Parse a temperature, rejecting any other measure
		measurectl parse "21 c" --measure Temperature
	`)
)

type parseFlags struct {
	text     string
	measures []string
	format   string
}

func newParseCmd(cfg Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "parse <text>",
		Short:   parseShort,
		Long:    parseLong,
		Example: parseExample,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := parseFlags{
				text:     strings.Join(args, " "),
				measures: flags.MustStringSlice(cmd.Flags().GetStringSlice("measure")),
				format:   flags.MustString(cmd.Flags().GetString("format")),
			}

			return runParse(cmd, cfg, f)
		},
	}

	flags.Measure(cmd)
	flags.Format(cmd)

	return cmd
}

func runParse(cmd *cobra.Command, cfg Config, f parseFlags) error {
	v, err := parse(cfg.Registry, f.text, f.measures)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if f.format == flags.FormatJSON {
		b, err := json.MarshalIndent(v.Parts(), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))

		return err
	}

	_, err = fmt.Fprintf(out, "%s: %s (%s %s)\n",
		v.Measure().Name(), display(v), strconv.FormatFloat(v.Standard(), 'f', -1, 64), displayUnit(v.Measure().StandardUnit()))

	return err
}

// parse tries each named measure in turn, or guesses across the registry when none is named.
func parse(reg *measure.Registry, s string, names []string) (measure.Value, error) {
	if len(names) == 0 {
		return reg.Parse(s)
	}

	var lastErr error
	for _, name := range names {
		v, err := reg.ParseIn(name, s)
		if err == nil {
			return v, nil
		}
		lastErr = err
	}

	return measure.Value{}, lastErr
}
