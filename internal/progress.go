package internal

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	progressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)

	progressDoneStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42")).
				Bold(true)

	progressFailStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196")).
				Bold(true)
)

// ProgressStep represents a single step in a multi-step process.
type ProgressStep struct {
	Message string
	Fn      func() error
}

// RunSteps runs steps in order, printing styled status lines when stderr
// is a terminal and plain log lines otherwise. The first failing step
// aborts the run.
func RunSteps(steps []ProgressStep) error {
	tty := isTerminal(os.Stderr)

	for _, step := range steps {
		if tty {
			fmt.Fprintln(os.Stderr, progressStyle.Render("• "+step.Message))
		} else {
			LogInfo("%s", step.Message)
		}

		if err := step.Fn(); err != nil {
			if tty {
				fmt.Fprintln(os.Stderr, progressFailStyle.Render("✗ "+step.Message))
			}
			return fmt.Errorf("%s: %w", step.Message, err)
		}

		if tty {
			fmt.Fprintln(os.Stderr, progressDoneStyle.Render("✓ "+step.Message))
		}
	}

	return nil
}

// isTerminal checks whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
