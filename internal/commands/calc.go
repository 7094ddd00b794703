package commands

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/imgrooty/roi-calculator/internal/tui"
	"github.com/imgrooty/roi-calculator/internal/website"
	"github.com/imgrooty/roi-calculator/pkg/logging"
	"github.com/imgrooty/roi-calculator/pkg/recorder"
)

func newCalcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Run the calculator wizard in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, map[string]string{"recorder.kind": "recorder"})
			if err != nil {
				return err
			}

			// Log lines would tear the full-screen view.
			rec, err := recorder.New(cfg.RecorderBackend(), logging.NopLogger{}, nil)
			if err != nil {
				return err
			}
			defer rec.Close()

			var opts []tea.ProgramOption
			if alt, _ := cmd.Flags().GetBool("alt-screen"); alt {
				opts = append(opts, tea.WithAltScreen())
			}

			session, err := tui.Run(cmd.Context(), rec, website.ThemeOrDefault(cfg.Theme), opts...)
			out := cmd.OutOrStdout()
			switch {
			case errors.Is(err, tui.ErrCancelled):
				printWarn(out, "Calculation cancelled.")
				return nil
			case err != nil:
				return err
			}
			if session.Step().Terminal() {
				printResult(out, session.Result())
				printOK(out, "Entry for %s recorded.", session.Data().Email)
			}
			return nil
		},
	}
	cmd.Flags().String("recorder", "", "recorder kind: simulated, http, journal, sqlite, tee")
	cmd.Flags().Bool("alt-screen", true, "use the terminal's alternate screen")
	return cmd
}
