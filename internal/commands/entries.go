package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/imgrooty/roi-calculator/pkg/calculator"
	"github.com/imgrooty/roi-calculator/pkg/logging"
	"github.com/imgrooty/roi-calculator/pkg/recorder"
)

func newEntriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "entries",
		Aliases: []string{"ls"},
		Short:   "List entries kept by a local recorder",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, map[string]string{"recorder.kind": "recorder"})
			if err != nil {
				return err
			}
			rec, err := recorder.New(cfg.RecorderBackend(), logging.NopLogger{}, nil)
			if err != nil {
				return err
			}
			defer rec.Close()

			limit, _ := cmd.Flags().GetInt("limit")
			stored, err := recorder.Entries(cmd.Context(), rec, limit)
			if errors.Is(err, recorder.ErrNotListable) {
				return fmt.Errorf("the %s recorder keeps no entries; use journal, sqlite or tee", cfg.Recorder.Kind)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(stored)
			}

			if len(stored) == 0 {
				fmt.Fprintln(out, "No entries recorded yet.")
				return nil
			}

			fmt.Fprintf(out, "%-20s %-30s %12s %12s %12s\n", "RECORDED", "EMAIL", "REVENUE", "COST", "ROI")
			fmt.Fprintln(out, strings.Repeat("-", 90))
			for _, s := range stored {
				email := s.Email
				if len(email) > 28 {
					email = email[:25] + "..."
				}
				roi := calculator.FormatCurrency(s.ROI)
				if s.ROI < 0 {
					roi = red(fmt.Sprintf("%12s", roi))
				} else {
					roi = green(fmt.Sprintf("%12s", roi))
				}
				fmt.Fprintf(out, "%-20s %-30s %12s %12s %s\n",
					s.RecordedAt.Local().Format("2006-01-02 15:04:05"),
					email,
					calculator.FormatCurrency(s.Revenue),
					calculator.FormatCurrency(s.Cost),
					roi)
			}
			return nil
		},
	}
	cmd.Flags().IntP("limit", "n", 20, "number of entries to show, newest first (0 for all)")
	cmd.Flags().Bool("json", false, "print entries as JSON")
	cmd.Flags().String("recorder", "", "recorder kind: journal, sqlite or tee")
	return cmd
}
