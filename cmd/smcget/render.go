// ABOUTME: Terminal output rendering: lipgloss styles and glamour markdown
// ABOUTME: Styling resolves from the color mode, --plain, and TTY detection

package main

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
)

type renderer struct {
	styled bool
}

func newRenderer(colorMode string, plain bool) *renderer {
	var styled bool
	switch {
	case plain || colorMode == "never":
		styled = false
	case colorMode == "always":
		styled = true
	default:
		styled = term.IsTerminal(int(os.Stdout.Fd()))
	}
	return &renderer{styled: styled}
}

func (r *renderer) title(s string) string {
	if !r.styled {
		return s
	}
	return titleStyle.Render(s)
}

func (r *renderer) faint(s string) string {
	if !r.styled {
		return s
	}
	return faintStyle.Render(s)
}

// markdown renders a package description for the terminal; without styling
// it passes the text through untouched.
func (r *renderer) markdown(s string) string {
	if !r.styled {
		return s
	}
	out, err := glamour.Render(s, "auto")
	if err != nil {
		return s
	}
	return strings.TrimRight(out, "\n") + "\n"
}
