package cmd

import (
	"github.com/spf13/cobra"

	"github.com/quillworks/controlsheet/pkg/logging"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Draft calendar rows from collected quotes",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}
		ctx, cancel := runContext(cmd)
		defer cancel()

		res, err := p.Schedule(ctx)
		if err != nil {
			return err
		}
		logging.Info().
			Int("scheduled", res.Scheduled).
			Int("marked", res.Marked).
			Msg("schedule complete")
		return nil
	},
}
