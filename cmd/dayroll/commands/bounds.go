package commands

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/davidvella/dayroll/monitoring"
)

func NewBoundsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bounds",
		Short: "Print the window bounds of every row",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := monitoring.NewLogger().Named("bounds")
			conf, tbl, err := loadInput(cmd)
			if err != nil {
				return err
			}
			log.Debugw("Computing bounds", "strategy", conf.Strategy, "rows", tbl.Len())

			r, err := conf.Rolling()
			if err != nil {
				return err
			}
			if tbl.Keys != nil {
				log.Infow("Group column is ignored when printing bounds")
			}
			b, err := r.Bounds(tbl.Timestamps)
			if err != nil {
				log.Errorw("Failed to compute bounds", "error", err)
				return err
			}

			out := tablewriter.NewWriter(cmd.OutOrStdout())
			out.SetHeader([]string{"row", "timestamp", "start", "end", "size"})
			for i := range b.Len() {
				out.Append([]string{
					strconv.Itoa(i),
					formatTime(tbl.Timestamps[i]),
					strconv.Itoa(b.Start[i]),
					strconv.Itoa(b.End[i]),
					strconv.Itoa(b.Size(i)),
				})
			}
			out.Render()
			return nil
		},
	}
}
