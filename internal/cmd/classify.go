package cmd

import (
	"github.com/spf13/cobra"

	"github.com/quillworks/controlsheet/pkg/logging"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Fill in derived fields for new backlog quotes and mark them collected",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}
		ctx, cancel := runContext(cmd)
		defer cancel()

		res, err := p.Classify(ctx)
		if err != nil {
			return err
		}
		logging.Info().
			Int("rows", res.Rows).
			Int("classified", res.Changed).
			Msg("classify complete")
		return nil
	},
}
