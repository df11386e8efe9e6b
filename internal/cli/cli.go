// Package cli implements zpnr's command-line subcommands.
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"syscall"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"
	"github.com/zarlcorp/core/pkg/zcrypto"
	"github.com/zarlcorp/zpnr/internal/config"
	"github.com/zarlcorp/zpnr/internal/pnr"
	"github.com/zarlcorp/zpnr/internal/store"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Options wires the command tree to its collaborators. Zero fields fall
// back to the process environment and terminal.
type Options struct {
	Version string
	DataDir string

	// ConfigPath is the default for --config.
	ConfigPath string
	Env        envconfig.Lookuper

	// Password reads the master password. firstRun asks for a new one.
	Password func(firstRun bool) ([]byte, error)

	Now              func() time.Time
	GeneratorOptions []pnr.Option

	// Interactive runs when zpnr is invoked without a subcommand. When nil
	// the root command prints its help.
	Interactive func(ctx context.Context, gen *pnr.Generator, req pnr.Request, dataDir string) error
}

// app is the state shared by all subcommands once config is loaded.
type app struct {
	opts       Options
	configPath string

	cfg *config.Config
	log *slog.Logger
	gen *pnr.Generator
}

// New builds the zpnr command tree.
func New(opts Options) *cobra.Command {
	if opts.DataDir == "" {
		opts.DataDir = DataDir()
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = config.DefaultPath()
	}
	if opts.Env == nil {
		opts.Env = envconfig.OsLookuper()
	}
	if opts.Password == nil {
		opts.Password = terminalPassword
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	a := &app{opts: opts}

	root := &cobra.Command{
		Use:           "zpnr",
		Short:         "Generate synthetic Swedish personnummer, organisationsnummer and VAT ids",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Interactive == nil {
				return cmd.Help()
			}
			a.log.Debug("starting tui", "data_dir", opts.DataDir)
			return opts.Interactive(cmd.Context(), a.gen, a.cfg.Request(), opts.DataDir)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", opts.ConfigPath, "config file")

	root.AddCommand(
		newSSNCmd(a),
		newOrgCmd(a),
		newVATCmd(a),
		newCheckCmd(a),
		newListCmd(a),
		newForgetCmd(a),
		newVersionCmd(a),
	)
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.LoadWith(a.configPath, a.opts.Env)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = cfg.NewLogger(cmd.ErrOrStderr())
	opts := append([]pnr.Option{pnr.WithClock(a.opts.Now)}, a.opts.GeneratorOptions...)
	a.gen = pnr.New(opts...)
	return nil
}

// openStore prompts for the master password and opens the store.
func (a *app) openStore() (*store.Store, error) {
	dir := a.opts.DataDir
	firstRun := store.IsFirstRun(dir)

	pass, err := a.opts.Password(firstRun)
	if err != nil {
		return nil, err
	}

	s, err := store.OpenDir(dir, pass)
	if err != nil {
		a.log.Error("open store", "dir", dir, "err", err)
		return nil, err
	}
	return s, nil
}

// DataDir returns the default data directory for zpnr.
func DataDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d + "/zpnr"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zpnr"
	}
	return home + "/.local/share/zpnr"
}

// ReadPassword prompts for a password on w and reads it without echo.
func ReadPassword(prompt string, w io.Writer) ([]byte, error) {
	fmt.Fprint(w, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(w)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return b, nil
}

// ReadNewPassword prompts for a new password with confirmation.
func ReadNewPassword(w io.Writer) ([]byte, error) {
	pass, err := ReadPassword("master password: ", w)
	if err != nil {
		return nil, err
	}
	confirm, err := ReadPassword("confirm password: ", w)
	if err != nil {
		zcrypto.Erase(pass)
		return nil, err
	}
	return confirmPassword(pass, confirm)
}

// confirmPassword returns pass if confirm matches it. confirm is always
// erased; pass is erased too when they differ.
func confirmPassword(pass, confirm []byte) ([]byte, error) {
	defer zcrypto.Erase(confirm)

	if !bytes.Equal(pass, confirm) {
		zcrypto.Erase(pass)
		return nil, errors.New("passwords do not match")
	}
	return pass, nil
}

func terminalPassword(firstRun bool) ([]byte, error) {
	if firstRun {
		return ReadNewPassword(os.Stderr)
	}
	return ReadPassword("master password: ", os.Stderr)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func printYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
