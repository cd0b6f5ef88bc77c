// ABOUTME: Tests for the progress model and the plain fallback runner
// ABOUTME: Drives Update directly; no terminal program is started

package progress

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smcget/smcget/internal/log"
	"github.com/smcget/smcget/internal/repo"
)

func TestModelRendersProgress(t *testing.T) {
	t.Parallel()

	m := New()
	updated, _ := m.Update(Msg{Overall: 50, Unit: "music/tune.ogg", UnitPercent: 25})

	view := updated.(Model).View()
	if !strings.Contains(view, "music/tune.ogg") {
		t.Errorf("view = %q; want to contain the unit name", view)
	}
	if !strings.Contains(view, "50.0") {
		t.Errorf("view = %q; want to contain the overall percent", view)
	}
}

func TestModelEmptyBeforeFirstReport(t *testing.T) {
	t.Parallel()

	if view := New().View(); view != "" {
		t.Errorf("view = %q; want empty before the first report", view)
	}
}

func TestModelQuitsOnDone(t *testing.T) {
	t.Parallel()

	_, cmd := New().Update(DoneMsg{})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("cmd() = %T; want tea.QuitMsg", cmd())
	}
}

func TestRunPlainLogsUnitTransitions(t *testing.T) {
	var buf bytes.Buffer
	prev := log.SetOutput(&buf)
	defer log.SetOutput(prev)

	err := RunPlain(func(report repo.ProgressFunc) error {
		report(10, "levels/a.smclvl", 50)
		report(20, "levels/a.smclvl", 100)
		report(60, "music/b.ogg", 10)
		return nil
	})
	if err != nil {
		t.Fatalf("RunPlain: %v", err)
	}

	out := buf.String()
	if got := strings.Count(out, "levels/a.smclvl"); got != 1 {
		t.Errorf("unit logged %d times; want once per transition:\n%s", got, out)
	}
	if !strings.Contains(out, "music/b.ogg") {
		t.Errorf("output = %q; want the second unit logged", out)
	}
}

func TestRunPlainPropagatesError(t *testing.T) {
	t.Parallel()

	want := errors.New("transfer failed")
	err := RunPlain(func(report repo.ProgressFunc) error { return want })
	if !errors.Is(err, want) {
		t.Errorf("err = %v; want %v", err, want)
	}
}
