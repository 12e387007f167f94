package units

import (
	"encoding/json"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/smartcontractkit/measurement-framework/pkg/commands/flags"
	"github.com/smartcontractkit/measurement-framework/pkg/commands/text"
)

var (
	unitsShort = "List measures and their units"

	unitsLong = text.LongDesc(`
		Without arguments, lists every registered measure with its standard unit.
		With a measure name, lists the unit choices of that measure: the key accepted by
		the other commands and its display label.
	`)

	unitsExample = text.Examples(`
		# List the registered measures
		measurectl units

		# List the units of Distance
		measurectl units Distance

		# List every unit choice grouped by measure as JSON
		measurectl units --all --format json
	`)
)

type unitsFlags struct {
	measure string
	all     bool
	format  string
}

func newUnitsCmd(cfg Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "units [measure]",
		Short:   unitsShort,
		Long:    unitsLong,
		Example: unitsExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			f := unitsFlags{
				all:    all,
				format: flags.MustString(cmd.Flags().GetString("format")),
			}
			if len(args) == 1 {
				f.measure = args[0]
			}

			return runUnits(cmd, cfg, f)
		},
	}

	flags.Format(cmd)
	cmd.Flags().BoolP("all", "a", false, "List the unit choices of every simple measure, keyed Measure.unit")

	return cmd
}

func runUnits(cmd *cobra.Command, cfg Config, f unitsFlags) error {
	switch {
	case f.all:
		groups := cfg.Registry.UnitChoices(true)
		var rows [][]string
		for _, g := range groups {
			for _, c := range g.Choices {
				rows = append(rows, []string{c.Key, c.Label})
			}
		}

		return write(cmd, f.format, groups, []string{"Unit", "Label"}, rows)
	case f.measure != "":
		choices, err := cfg.Registry.Choices(f.measure)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(choices))
		for _, c := range choices {
			rows = append(rows, []string{c.Key, c.Label})
		}

		return write(cmd, f.format, choices, []string{"Unit", "Label"}, rows)
	default:
		type summary struct {
			Name     string `json:"name"`
			Standard string `json:"standard"`
		}
		var (
			measures []summary
			rows     [][]string
		)
		for _, name := range cfg.Registry.Names() {
			m, err := cfg.Registry.Lookup(name)
			if err != nil {
				return err
			}
			s := summary{Name: name, Standard: displayUnit(m.StandardUnit())}
			measures = append(measures, s)
			rows = append(rows, []string{s.Name, s.Standard})
		}

		return write(cmd, f.format, measures, []string{"Measure", "Standard"}, rows)
	}
}

// write prints v as indented JSON, or rows as a table.
func write(cmd *cobra.Command, format string, v any, header []string, rows [][]string) error {
	if format == flags.FormatJSON {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))

		return err
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetAutoWrapText(false)
	table.SetHeader(header)
	table.AppendBulk(rows)
	table.Render()

	return nil
}
