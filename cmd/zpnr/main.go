package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zapp"
	"github.com/zarlcorp/zpnr/internal/cli"
	"github.com/zarlcorp/zpnr/internal/pnr"
	"github.com/zarlcorp/zpnr/internal/store"
	"github.com/zarlcorp/zpnr/internal/tui"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	app := zapp.New(zapp.WithName("zpnr"))

	ctx, cancel := zapp.SignalContext(context.Background())
	defer cancel()

	root := cli.New(cli.Options{
		Version:     version,
		Interactive: runTUI,
	})
	root.SetArgs(args)

	code := 0
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "zpnr: %v\n", err)
		code = 1
	}

	if err := app.Close(); err != nil {
		slog.Error("shutdown", "err", err)
		return 1
	}
	return code
}

func runTUI(_ context.Context, gen *pnr.Generator, req pnr.Request, dataDir string) error {
	m := tui.New(version, dataDir, gen, req, store.IsFirstRun(dataDir))
	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	if fm, ok := finalModel.(tui.Model); ok {
		fm.Close()
	}

	return nil
}
