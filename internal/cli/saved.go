package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var asJSON, asYAML bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved numbers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			recs, err := s.List()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch {
			case asJSON:
				return printJSON(w, recs)
			case asYAML:
				return printYAML(w, recs)
			}

			if len(recs) == 0 {
				fmt.Fprintln(w, "no saved numbers")
				return nil
			}

			header := fmt.Sprintf("  %-8s  %-19s  %-14s  %-14s  %-10s  %s", "ID", "KIND", "NUMBER", "DETAIL", "CREATED", "LABEL")
			if isTerminal(w) {
				header = lipgloss.NewStyle().Bold(true).Render(header)
			}
			fmt.Fprintln(w, header)

			for _, r := range recs {
				fmt.Fprintf(w, "  %-8s  %-19s  %-14s  %-14s  %-10s  %s\n",
					r.ShortID(),
					r.Kind,
					r.Value,
					r.Detail(),
					r.CreatedAt.Format("2006-01-02"),
					r.Label,
				)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print YAML")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")
	return cmd
}

func newForgetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "forget <id>",
		Short: "Delete a saved number by id or unique id prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			r, err := s.Delete(args[0])
			if err != nil {
				return fmt.Errorf("forget: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s %s\n", r.ShortID(), r.Value)
			return nil
		},
	}
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "zpnr %s\n", a.opts.Version)
			return nil
		},
	}
}
