package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zpnr/internal/pnr"
)

// errCheckFailed makes check exit non-zero after printing every result.
var errCheckFailed = errors.New("one or more numbers failed the check")

func newCheckCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check <number>...",
		Short: "Verify the format and Luhn check digit of existing numbers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := a.opts.Now()
			w := cmd.OutOrStdout()

			results := make([]pnr.Parsed, 0, len(args))
			failed := false
			for _, arg := range args {
				p, err := pnr.Parse(arg, now)
				if err != nil {
					// keep going so every argument gets a verdict
					p = pnr.Parsed{Input: arg}
				}
				if !p.Valid {
					failed = true
				}
				results = append(results, p)
			}

			if asJSON {
				if err := printJSON(w, results); err != nil {
					return err
				}
			} else {
				styled := isTerminal(w)
				for _, p := range results {
					printCheck(w, p, styled)
				}
			}

			if failed {
				return errCheckFailed
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printCheck(w io.Writer, p pnr.Parsed, styled bool) {
	verdict := "valid"
	if !p.Valid {
		verdict = "invalid"
	}
	if styled {
		if p.Valid {
			verdict = zstyle.StatusOK.Render(verdict)
		} else {
			verdict = zstyle.StatusErr.Render(verdict)
		}
	}

	line := fmt.Sprintf("%-13s %s", p.Input, verdict)
	switch {
	case p.Digits == "":
		line += "  not a ten digit number"
	case p.Kind == pnr.KindPersonnummer:
		line += fmt.Sprintf("  %s %s %s", p.Kind, p.Gender, p.BirthDate.Format(time.DateOnly))
	case p.Kind != "":
		line += "  " + string(p.Kind)
	}
	fmt.Fprintln(w, line)
}
