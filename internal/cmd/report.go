package cmd

import (
	"github.com/spf13/cobra"

	"github.com/quillworks/controlsheet/pkg/logging"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Append a weekly status row to the Reports table",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}
		ctx, cancel := runContext(cmd)
		defer cancel()

		weekly, err := p.Report(ctx)
		if err != nil {
			return err
		}
		logging.Info().
			Str("week_start", weekly.WeekStart.Format("2006-01-02")).
			Int("quotes_collected", weekly.QuotesCollected).
			Int("cal_total", weekly.CalTotal).
			Msg("report complete")
		return nil
	},
}
