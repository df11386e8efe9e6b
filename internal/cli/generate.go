package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/zarlcorp/zpnr/internal/pnr"
	"github.com/zarlcorp/zpnr/internal/record"
	"github.com/zarlcorp/zpnr/internal/store"
)

// outputFlags are shared by every generating command.
type outputFlags struct {
	count int
	json  bool
	yaml  bool
	save  bool
	label string
}

func addOutputFlags(cmd *cobra.Command, f *outputFlags) {
	registerOutputFlags(cmd.Flags(), f)
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")
}

func registerOutputFlags(fs *pflag.FlagSet, f *outputFlags) {
	fs.IntVarP(&f.count, "count", "n", 1, "how many numbers to generate")
	fs.BoolVar(&f.json, "json", false, "print JSON")
	fs.BoolVar(&f.yaml, "yaml", false, "print YAML")
	fs.BoolVar(&f.save, "save", false, "save to the encrypted store")
	fs.StringVar(&f.label, "label", "", "label for saved numbers")
}

func newSSNCmd(a *app) *cobra.Command {
	var out outputFlags
	var minAge, maxAge int
	var gender, corporateType string

	cmd := &cobra.Command{
		Use:   "ssn",
		Short: "Generate a personnummer, or an organisationsnummer with --corporate-type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := a.cfg.Request()
			fs := cmd.Flags()
			if fs.Changed("min-age") {
				req.MinAge = minAge
			}
			if fs.Changed("max-age") {
				req.MaxAge = maxAge
			}
			if fs.Changed("gender") {
				req.Gender = pnr.Gender(gender)
			}
			if fs.Changed("corporate-type") {
				req.CorporateType = corporateType
			}

			return a.emit(cmd, out, func() (pnr.Number, error) {
				return a.gen.Generate(req)
			})
		},
	}

	fs := cmd.Flags()
	fs.IntVar(&minAge, "min-age", 0, "minimum age in years (default from config, 18)")
	fs.IntVar(&maxAge, "max-age", 0, "maximum age in years (default from config, 90)")
	fs.StringVar(&gender, "gender", "", "F or M; random when unset")
	fs.StringVar(&corporateType, "corporate-type", "", "generate an organisationsnummer of this type (1-3, 5-9)")
	addOutputFlags(cmd, &out)
	return cmd
}

func newOrgCmd(a *app) *cobra.Command {
	var out outputFlags
	var corporateType string

	cmd := &cobra.Command{
		Use:   "org",
		Short: "Generate an organisationsnummer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ct := a.cfg.CorporateType
			if cmd.Flags().Changed("type") {
				ct = corporateType
			}
			return a.emit(cmd, out, func() (pnr.Number, error) {
				return a.gen.Organisationsnummer(ct)
			})
		},
	}

	cmd.Flags().StringVarP(&corporateType, "type", "t", "", "corporate type (1-3, 5-9); random when unset")
	addOutputFlags(cmd, &out)
	return cmd
}

func newVATCmd(a *app) *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "vat",
		Short: "Generate a Swedish VAT id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.emit(cmd, out, func() (pnr.Number, error) {
				return a.gen.VAT(), nil
			})
		},
	}

	addOutputFlags(cmd, &out)
	return cmd
}

// emit generates out.count numbers, prints them and optionally saves them.
// Nothing is printed if any generation fails or, with --save, if the store
// cannot be opened.
func (a *app) emit(cmd *cobra.Command, out outputFlags, next func() (pnr.Number, error)) error {
	if out.count < 1 {
		return errors.New("--count must be at least 1")
	}
	if out.label != "" && !out.save {
		return errors.New("--label requires --save")
	}

	var s *store.Store
	if out.save {
		var err error
		if s, err = a.openStore(); err != nil {
			return err
		}
		defer s.Close()
	}

	nums := make([]pnr.Number, 0, out.count)
	for range out.count {
		n, err := next()
		if err != nil {
			return err
		}
		a.log.Debug("generated", "kind", n.Kind, "value", n.Value)
		nums = append(nums, n)
	}

	if err := printNumbers(cmd.OutOrStdout(), out, nums); err != nil {
		return err
	}

	if s == nil {
		return nil
	}
	return a.saveNumbers(cmd.ErrOrStderr(), s, nums, out.label)
}

func printNumbers(w io.Writer, out outputFlags, nums []pnr.Number) error {
	var v any = nums
	if len(nums) == 1 {
		v = nums[0]
	}

	switch {
	case out.json:
		return printJSON(w, v)
	case out.yaml:
		return printYAML(w, v)
	}

	for _, n := range nums {
		fmt.Fprintln(w, n.Value)
	}
	return nil
}

func (a *app) saveNumbers(w io.Writer, s *store.Store, nums []pnr.Number, label string) error {
	now := a.opts.Now()
	for _, n := range nums {
		r := record.New(n, label, now)
		if err := s.Save(r); err != nil {
			return err
		}
		a.log.Debug("saved", "id", r.ID, "kind", r.Kind)
	}

	fmt.Fprintf(w, "saved %d\n", len(nums))
	return nil
}
