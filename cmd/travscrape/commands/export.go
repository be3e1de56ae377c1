package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/padraicbc/travscrape/config"
	"github.com/padraicbc/travscrape/db"
	"github.com/padraicbc/travscrape/export"
	"github.com/padraicbc/travscrape/logger"
	"github.com/padraicbc/travscrape/parse"
)

var exportFlags struct {
	date  int
	track string
	out   string
}

func init() {
	exportCmd.Flags().IntVar(&exportFlags.date, "date", 0, "race day as YYYYMMDD (required)")
	exportCmd.Flags().StringVar(&exportFlags.track, "track", "", "track code or name (required)")
	exportCmd.Flags().StringVar(&exportFlags.out, "out", "", "output .xlsx path (default <track>_<date>.xlsx)")
	_ = exportCmd.MarkFlagRequired("date")
	_ = exportCmd.MarkFlagRequired("track")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export --date YYYYMMDD --track CODE [--out file.xlsx]",
	Short: "Exports one race day's stored results to a spreadsheet.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadScraper()
		log, flush := logger.Global("travscrape", cfg.Debug)
		defer flush()

		track := exportFlags.track
		if len([]rune(track)) > 2 {
			track = parse.TrackCode(track)
		}
		out := exportFlags.out
		if out == "" {
			out = fmt.Sprintf("%s_%d.xlsx", track, exportFlags.date)
		}

		bdb := db.Setup(cfg.PostgresDSN(), cfg.Debug)
		defer bdb.Close()

		rows, err := db.NewStore(bdb, log).Results(cmd.Context(), exportFlags.date, track)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return fmt.Errorf("no results for %s %d", track, exportFlags.date)
		}
		if err := export.Results(rows, out); err != nil {
			return err
		}
		log.Info("exported", zap.String("path", out), zap.Int("rows", len(rows)))
		return nil
	},
}
