package cmd

import (
	"github.com/spf13/cobra"

	"github.com/quillworks/controlsheet/pkg/logging"
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Extract quote candidates from the source text into the backlog",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}
		ctx, cancel := runContext(cmd)
		defer cancel()

		res, err := p.Mine(ctx)
		if err != nil {
			return err
		}
		if res.Skipped {
			logging.Warn().Str("reason", res.Reason).Msg("mining skipped")
			return nil
		}
		logging.Info().Int("appended", res.Appended).Msg("mining complete")
		return nil
	},
}
