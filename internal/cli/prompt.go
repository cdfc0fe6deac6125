package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// Interactive reports whether stdin and stdout are both terminals.
func Interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

// NeedsOverwriteConfirmation reports whether path is an existing, non-empty
// regular file.
func NeedsOverwriteConfirmation(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Size() > 0
}

// ConfirmOverwrite asks whether an existing output file may be replaced.
func ConfirmOverwrite(path string) (bool, error) {
	overwrite := false
	err := huh.NewConfirm().
		Title(fmt.Sprintf("%s already exists. Overwrite it?", path)).
		Affirmative("Overwrite").
		Negative("Cancel").
		Value(&overwrite).
		Run()
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	return overwrite, nil
}
