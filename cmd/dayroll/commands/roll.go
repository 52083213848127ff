package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/davidvella/dayroll/monitoring"
	"github.com/davidvella/dayroll/rolling"
)

func NewRollCommand() *cobra.Command {
	var (
		agg    string
		output string
	)

	command := &cobra.Command{
		Use:   "roll",
		Short: "Append a rolling aggregate column to the input",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := monitoring.NewLogger().Named("roll")
			reducer, ok := rolling.ReducerByName(agg)
			if !ok {
				return fmt.Errorf("unknown aggregation %q, want one of sum, mean, count, min or max", agg)
			}

			conf, tbl, err := loadInput(cmd)
			if err != nil {
				return err
			}
			log = log.With("strategy", conf.Strategy, "aggregation", agg)
			ctx := monitoring.WithLogger(cmd.Context(), log)

			r, err := conf.Rolling()
			if err != nil {
				return err
			}

			var result []float64
			if tbl.Keys != nil {
				result, err = r.GroupBy(ctx, tbl.Keys, tbl.Timestamps, tbl.Values, reducer)
			} else {
				result, err = r.Apply(ctx, tbl.Timestamps, tbl.Values, reducer)
			}
			if err != nil {
				log.Errorw("Failed to roll", "error", err)
				return err
			}

			if output == "" {
				output = agg
			}
			out := tablewriter.NewWriter(cmd.OutOrStdout())
			out.SetHeader(append(append([]string{}, tbl.Header...), output))
			for i, row := range tbl.Rows {
				out.Append(append(append([]string{}, row...), formatFloat(result[i])))
			}
			out.Render()
			return nil
		},
	}

	command.Flags().StringVarP(&agg, "agg", "a", "sum", "Aggregation: sum, mean, count, min or max")
	command.Flags().StringVarP(&output, "output-column", "o", "", "Name of the result column, defaults to the aggregation")
	return command
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatTime(ns int64) string {
	return time.Unix(0, ns).UTC().Format("2006-01-02 15:04:05")
}
