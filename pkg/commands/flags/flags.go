// Package flags provides reusable flag helpers for CLI commands.
//
// This package should only contain common flags that can be used by multiple commands
// to ensure unified naming and consistent behavior across the CLI.
// Command-specific flags should be defined locally in the command file.
package flags

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Output formats accepted by the --format flag.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// MustString returns the string value, ignoring the error.
// Safe to use with registered flags where GetString cannot fail.
func MustString(s string, _ error) string { return s }

// MustStringSlice returns the string slice value, ignoring the error.
func MustStringSlice(s []string, _ error) []string { return s }

// Measure adds the --measure/-m flag restricting a command to the named measures. The flag can be
// repeated or given a comma separated list.
//
// Usage:
//
//	flags.Measure(cmd)
//	// later in RunE:
//	names, _ := cmd.Flags().GetStringSlice("measure")
func Measure(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("measure", "m", nil, "Only consider these measures, e.g. Distance")
}

// Format adds the --format/-f flag selecting text or json output (default: text).
// Retrieve the value with cmd.Flags().GetString("format").
func Format(cmd *cobra.Command) {
	cmd.Flags().VarP(newEnum(FormatText, FormatText, FormatJSON), "format", "f", "Output format (text or json)")
}

// Store adds the persistent --driver, --dsn and --table flags naming the measurement store.
// Defaults come from the loaded configuration.
func Store(cmd *cobra.Command, driver, dsn, table string) {
	cmd.PersistentFlags().String("driver", driver, "Store driver: postgres, ramsql or json")
	cmd.PersistentFlags().String("dsn", dsn, "Store data source name, or the file path for the json driver")
	cmd.PersistentFlags().String("table", table, "Store table name")
}

// enum is a string flag value limited to a set of choices.
type enum struct {
	value   string
	allowed []string
}

var _ pflag.Value = &enum{}

func newEnum(def string, allowed ...string) *enum {
	return &enum{value: def, allowed: allowed}
}

func (e *enum) String() string { return e.value }

func (e *enum) Set(v string) error {
	if !slices.Contains(e.allowed, v) {
		return fmt.Errorf("must be one of %s", strings.Join(e.allowed, ", "))
	}
	e.value = v

	return nil
}

func (e *enum) Type() string { return "string" }
