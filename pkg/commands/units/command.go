// Package units provides CLI commands which convert, parse and list measurement units.
package units

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smartcontractkit/measurement-framework/measure"
	"github.com/smartcontractkit/measurement-framework/pkg/logger"
)

// Config holds the configuration for the unit commands.
type Config struct {
	// Logger is the logger to use for command output. Required.
	Logger logger.Logger

	// Registry resolves measures and units. Required.
	Registry *measure.Registry
}

// Validate checks that all required configuration fields are set.
func (c Config) Validate() error {
	var missing []string

	if c.Logger == nil {
		missing = append(missing, "Logger")
	}
	if c.Registry == nil {
		missing = append(missing, "Registry")
	}

	if len(missing) > 0 {
		return errors.New("units.Config: missing required fields: " + strings.Join(missing, ", "))
	}

	return nil
}

// NewCommands creates the convert, parse and units commands. They are meant to be added to the
// root command directly.
func NewCommands(cfg Config) ([]*cobra.Command, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return []*cobra.Command{
		newConvertCmd(cfg),
		newParseCmd(cfg),
		newUnitsCmd(cfg),
	}, nil
}
