package units

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smartcontractkit/measurement-framework/measure"
	"github.com/smartcontractkit/measurement-framework/pkg/commands/flags"
	"github.com/smartcontractkit/measurement-framework/pkg/commands/text"
)

var (
	convertShort = "Convert a measurement to another unit"

	convertLong = text.LongDesc(`
		Converts a value given in one unit into another unit of the same measure.

		The measure is guessed from the source unit, trying the built-in measures in
		registration order. Use --measure to restrict the guess when a unit belongs to
		more than one measure. Compound units are written with a slash, e.g. mi/hr.
	`)

	convertExample = text.Examples(`
		# Convert a mile to kilometres
		measurectl convert 1 mi km

		# Convert a speed
		measurectl convert 65 mi/hr km/hr

		# Convert within a custom measure loaded from a definition file
		measurectl convert 2 versta m --measure ImperialRussian
	`)
)

type convertFlags struct {
	value    float64
	from     string
	to       string
	measures []string
}

func newConvertCmd(cfg Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "convert <value> <from> <to>",
		Short:   convertShort,
		Long:    convertLong,
		Example: convertExample,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[0], err)
			}
			f := convertFlags{
				value:    v,
				from:     compound(args[1]),
				to:       compound(args[2]),
				measures: flags.MustStringSlice(cmd.Flags().GetStringSlice("measure")),
			}

			return runConvert(cmd, cfg, f)
		},
	}

	flags.Measure(cmd)

	return cmd
}

func runConvert(cmd *cobra.Command, cfg Config, f convertFlags) error {
	v, err := cfg.Registry.Guess(f.value, f.from, f.measures...)
	if err != nil {
		return err
	}
	converted, err := v.WithUnit(f.to)
	if err != nil {
		return fmt.Errorf("cannot convert %s to %s: %w", v, f.to, err)
	}
	cfg.Logger.Debugw("Converted measurement", "measure", v.Measure().Name(), "from", v.String(), "to", converted.String())

	fmt.Fprintln(cmd.OutOrStdout(), display(converted))

	return nil
}

// compound rewrites a slash separated unit into the registry key form, e.g. mi/hr to mi__hr.
func compound(unit string) string {
	return strings.ReplaceAll(unit, "/", measure.CompoundSeparator)
}

// displayUnit is the inverse of compound.
func displayUnit(unit string) string {
	return strings.ReplaceAll(unit, measure.CompoundSeparator, "/")
}

func display(q fmt.Stringer) string {
	return displayUnit(q.String())
}
