package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/davidvella/dayroll/config"
	"github.com/davidvella/dayroll/internal/table"
)

const (
	flagConfig      = "config"
	flagFile        = "file"
	flagTimeColumn  = "time-column"
	flagValueColumn = "value-column"
	flagGroupColumn = "group-column"
)

func NewRootCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "dayroll",
		Short: "Rolling aggregations over start of day windows",
		Long: "dayroll reads a CSV table and computes rolling window bounds or aggregates.\n" +
			"By default each row's window starts at the beginning of the day containing\n" +
			"the row's timestamp minus --offset.",
		SilenceUsage: true,
	}

	flags := command.PersistentFlags()
	flags.String(flagConfig, "", "Path to a YAML config file")
	flags.StringP(flagFile, "f", "-", "CSV input file, - for stdin")
	flags.String(flagTimeColumn, table.DefaultColumns.Time, "Name of the timestamp column")
	flags.String(flagValueColumn, table.DefaultColumns.Value, "Name of the value column")
	flags.String(flagGroupColumn, "", "Optional column to group rows by")
	config.RegisterFlags(flags)

	command.AddCommand(NewBoundsCommand())
	command.AddCommand(NewRollCommand())
	return command
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// loadInput reads the configuration and the CSV table named by the flags.
func loadInput(cmd *cobra.Command) (*config.Config, *table.Table, error) {
	flags := cmd.Flags()

	configPath, _ := flags.GetString(flagConfig)
	conf, err := config.Load(configPath, flags)
	if err != nil {
		return nil, nil, err
	}

	cols := table.Columns{}
	cols.Time, _ = flags.GetString(flagTimeColumn)
	cols.Value, _ = flags.GetString(flagValueColumn)
	cols.Group, _ = flags.GetString(flagGroupColumn)

	file, _ := flags.GetString(flagFile)
	var in io.Reader = cmd.InOrStdin()
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	tbl, err := table.Read(in, cols)
	if err != nil {
		return nil, nil, err
	}
	return conf, tbl, nil
}
