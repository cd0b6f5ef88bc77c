// ABOUTME: Terminal progress display for package transfer and decompression
// ABOUTME: Bubble Tea model fed by ProgressFunc callbacks, with a plain fallback

package progress

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smcget/smcget/internal/log"
	"github.com/smcget/smcget/internal/repo"
)

// Msg carries one progress callback invocation into the model.
type Msg struct {
	Overall     float64
	Unit        string
	UnitPercent float64
}

// DoneMsg signals that the operation driving the display has finished.
type DoneMsg struct {
	Err error
}

// Model renders an overall progress bar plus the unit currently in flight.
type Model struct {
	bar     progress.Model
	overall float64
	unit    string
	unitPct float64
}

// New returns a model ready to receive Msg updates.
func New() Model {
	return Model{bar: progress.New(progress.WithDefaultGradient())}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case Msg:
		m.overall = msg.Overall
		m.unit = msg.Unit
		m.unitPct = msg.UnitPercent
		return m, nil
	case DoneMsg:
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.bar.Width = min(msg.Width-24, 60)
		return m, nil
	}
	// Installs run to completion; key presses are not cancellation.
	return m, nil
}

func (m Model) View() string {
	if m.unit == "" {
		return ""
	}
	return fmt.Sprintf("%s %5.1f%%  %s (%.0f%%)\n", m.bar.ViewAs(m.overall/100), m.overall, m.unit, m.unitPct)
}

// Run executes fn while rendering its progress reports. The callback handed
// to fn is safe to invoke from fn's goroutine only; it carries no
// backpressure and never affects fn's control flow.
func Run(fn func(report repo.ProgressFunc) error) error {
	p := tea.NewProgram(New())

	errCh := make(chan error, 1)
	go func() {
		err := fn(func(overall float64, unit string, unitPct float64) {
			p.Send(Msg{Overall: overall, Unit: unit, UnitPercent: unitPct})
		})
		p.Send(DoneMsg{Err: err})
		errCh <- err
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("progress display: %w", err)
	}
	return <-errCh
}

// RunPlain executes fn logging unit transitions instead of drawing, for
// non-terminal output.
func RunPlain(fn func(report repo.ProgressFunc) error) error {
	var last string
	return fn(func(overall float64, unit string, _ float64) {
		if unit != last {
			log.Info("%3.0f%% %s", overall, unit)
			last = unit
		}
	})
}
