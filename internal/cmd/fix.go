package cmd

import (
	"github.com/spf13/cobra"

	"github.com/quillworks/controlsheet/pkg/logging"
)

var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Normalize dates, statuses, and UTM links in the calendar",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}
		ctx, cancel := runContext(cmd)
		defer cancel()

		res, err := p.Fix(ctx)
		if err != nil {
			return err
		}
		logging.Info().
			Str("table", string(res.Table)).
			Int("rows", res.Rows).
			Int("changed", res.Changed).
			Bool("wrote", res.Wrote).
			Msg("fix complete")
		return nil
	},
}
