package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"cancerdetect/internal/app"
	"cancerdetect/internal/dto"
	"cancerdetect/internal/model"
	"cancerdetect/internal/plugin"
)

// ErrHistoryDisabled is returned by the history command when no database is configured.
var ErrHistoryDisabled = errors.New("detection history is disabled, set HISTORY_DB or --history-db")

func newHistoryCmd(flags *globalFlags) *cobra.Command {
	var (
		limit     int
		sessionID string
		clearAll  bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear the recorded detections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := flags.loadConfig()
			if cfg.HistoryDatabase == "" {
				return ErrHistoryDisabled
			}
			log, err := quietLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Close()

			core, err := app.NewCore(cfg, log, plugin.PolicyWarnAndContinue)
			if err != nil {
				return err
			}
			defer core.Close()

			p := newPrinter(cmd, flags.json)

			if clearAll {
				if sessionID != "" {
					err = core.History.DeleteBySession(sessionID)
				} else {
					err = core.History.DeleteAll()
				}
				if err != nil {
					return err
				}
				p.Human("History cleared")
				return nil
			}

			var detections []model.Detection
			if sessionID != "" {
				detections, err = core.History.GetBySession(sessionID, limit)
			} else {
				detections, err = core.History.GetRecent(limit)
			}
			if err != nil {
				return err
			}

			if p.json {
				return p.JSON(dto.HistoryData{Detections: detections, Length: len(detections), Limit: limit})
			}
			for _, d := range detections {
				p.Human("%s  %-8s  %-12s  %-10s  %s  %s",
					d.CreatedAt.Format("2006-01-02 15:04:05"), shortID(d.SessionID), d.Plugin, d.Outcome, d.ImageName, d.Message)
			}
			total, err := core.History.Count()
			if err == nil {
				p.Human("%d shown, %d recorded", len(detections), total)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of detections to show")
	cmd.Flags().StringVar(&sessionID, "session", "", "only this session")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "delete the shown detections instead of listing them")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
