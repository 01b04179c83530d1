package cmd

import (
	"github.com/spf13/cobra"

	"github.com/quillworks/controlsheet/pkg/logging"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Summarize this week's calendar into the Analytics table",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}
		ctx, cancel := runContext(cmd)
		defer cancel()

		summary, err := p.Analyze(ctx)
		if err != nil {
			return err
		}
		logging.Info().
			Int("total_posts", summary.TotalPosts).
			Int("week_posts", summary.WeekPosts).
			Int("platforms", len(summary.ByPlatform)).
			Msg("analyze complete")
		return nil
	},
}
