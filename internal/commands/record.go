package commands

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/imgrooty/roi-calculator/pkg/calculator"
	"github.com/imgrooty/roi-calculator/pkg/recorder"
)

// ErrRejected is returned when record is given values the wizard refuses.
var ErrRejected = errors.New("entry rejected")

func newRecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Calculate an ROI and record it without the wizard",
		Example: `  roicalc record --revenue 5000 --cost 3000 --email ada@example.com
  roicalc record --revenue 5000 --cost 3000 --email ada@example.com --recorder journal`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, map[string]string{
				"recorder.kind": "recorder",
				"recorder.url":  "recorder-url",
			})
			if err != nil {
				return err
			}
			log, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			rec, err := recorder.New(cfg.RecorderBackend(), log, nil)
			if err != nil {
				return err
			}
			defer rec.Close()

			revenue, _ := cmd.Flags().GetString("revenue")
			cost, _ := cmd.Flags().GetString("cost")
			email, _ := cmd.Flags().GetString("email")
			if strict, _ := cmd.Flags().GetBool("strict"); strict {
				if err := checkAmounts(map[string]string{"revenue": revenue, "cost": cost}); err != nil {
					return err
				}
			}

			session := calculator.NewSession()
			steps := []struct {
				field calculator.Field
				value string
			}{
				{calculator.FieldRevenue, revenue},
				{calculator.FieldCost, cost},
				{calculator.FieldEmail, email},
			}
			for _, s := range steps {
				if err := session.UpdateField(s.field, s.value); err != nil {
					return err
				}
				if s.field != calculator.FieldEmail && !session.Advance() {
					return rejected(cmd, session)
				}
			}

			out := cmd.OutOrStdout()
			err = session.Submit(cmd.Context(), rec)
			var terr *calculator.TransportError
			switch {
			case errors.As(err, &terr):
				printWarn(out, "%s", calculator.SubmitErrorMessage)
				return terr
			case err != nil:
				return rejected(cmd, session)
			}

			printResult(out, session.Result())
			printOK(out, "Recorded with the %s recorder.", cyan(cfg.Recorder.Kind))
			return nil
		},
	}
	cmd.Flags().String("revenue", "", "monthly revenue")
	cmd.Flags().String("cost", "", "monthly cost")
	cmd.Flags().Bool("strict", false, "reject amounts that are not plain numbers instead of reading their numeric prefix")
	cmd.Flags().String("email", "", "contact email")
	cmd.Flags().String("recorder", "", "recorder kind: simulated, http, journal, sqlite, tee")
	cmd.Flags().String("recorder-url", "", "endpoint for the http recorder")
	_ = cmd.MarkFlagRequired("revenue")
	_ = cmd.MarkFlagRequired("cost")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func rejected(cmd *cobra.Command, session *calculator.Session) error {
	errs := session.Errors()
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		printWarn(cmd.ErrOrStderr(), "%s: %s", bold(f), errs[f])
	}
	return fmt.Errorf("%w: %d invalid field(s)", ErrRejected, len(fields))
}

func checkAmounts(flags map[string]string) error {
	names := make([]string, 0, len(flags))
	for name := range flags {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := calculator.ParseAmountStrict(flags[name]); err != nil {
			return fmt.Errorf("%w: --%s %q: %v", ErrRejected, name, flags[name], err)
		}
	}
	return nil
}
