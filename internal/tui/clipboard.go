package tui

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// copyToClipboard copies text to the system clipboard.
func copyToClipboard(text string) error {
	name, args, err := clipboardCommand()
	if err != nil {
		return err
	}

	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}

	return nil
}

// clipboardCommand picks the copy tool for the current platform.
func clipboardCommand() (string, []string, error) {
	switch runtime.GOOS {
	case "darwin":
		return "pbcopy", nil, nil
	case "linux":
		if os.Getenv("WAYLAND_DISPLAY") != "" {
			if _, err := exec.LookPath("wl-copy"); err == nil {
				return "wl-copy", nil, nil
			}
		}
		if _, err := exec.LookPath("xclip"); err == nil {
			return "xclip", []string{"-selection", "clipboard"}, nil
		}
		if _, err := exec.LookPath("xsel"); err == nil {
			return "xsel", []string{"--clipboard", "--input"}, nil
		}
		return "", nil, fmt.Errorf("no clipboard tool: install wl-clipboard, xclip or xsel")
	case "windows":
		return "clip", nil, nil
	}
	return "", nil, fmt.Errorf("clipboard not supported on %s", runtime.GOOS)
}
