package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Tracker reports audit step execution to the user.
type Tracker interface {
	// Step is called before each validation step runs. index is 1-based
	// within the module's total steps.
	Step(module, step string, index, total int)

	// Done stops the tracker and clears any transient output.
	Done()
}

// NewTracker returns an animated tracker on a TTY and a line-based one in
// headless mode. Output goes to w.
func NewTracker(hm *HeadlessManager, w io.Writer) Tracker {
	if hm.IsHeadless() {
		return &headlessTracker{w: w}
	}
	return newInteractiveTracker(w)
}

// --- headlessTracker ---

// headlessTracker prints one log line per step.
type headlessTracker struct {
	w io.Writer
}

func (t *headlessTracker) Step(module, step string, index, total int) {
	fmt.Fprintf(t.w, "[%s %d/%d] %s\n", module, index, total, step)
}

func (t *headlessTracker) Done() {}

// --- interactiveTracker ---

// trackerStepMsg updates the displayed module/step.
type trackerStepMsg struct {
	module, step string
	index, total int
}

// trackerDoneMsg stops the tracker.
type trackerDoneMsg struct{}

// trackerModel is the bubbletea Model showing a spinner, a per-module
// progress bar, and the current step name.
type trackerModel struct {
	spinner spinner.Model
	bar     progress.Model
	module  string
	step    string
	index   int
	total   int
	done    bool
}

func newTrackerModel() trackerModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#C45A3C", Dark: "#DA7756"})
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(30),
	)
	return trackerModel{spinner: s, bar: bar}
}

func (m trackerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m trackerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case trackerStepMsg:
		m.module = msg.module
		m.step = msg.step
		m.index = msg.index
		m.total = msg.total
		return m, nil
	case trackerDoneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case progress.FrameMsg:
		pm, cmd := m.bar.Update(msg)
		m.bar = pm.(progress.Model)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m trackerModel) View() string {
	if m.done || m.total == 0 {
		return ""
	}
	pct := float64(m.index) / float64(m.total)
	return fmt.Sprintf("%s %s %s [%d/%d] %s\n",
		m.spinner.View(), m.module, m.bar.ViewAs(pct), m.index, m.total, m.step)
}

// interactiveTracker drives the bubbletea program. The program's goroutine
// lives until Done sends the quit message.
type interactiveTracker struct {
	program *tea.Program
	once    sync.Once
}

func newInteractiveTracker(w io.Writer) *interactiveTracker {
	p := tea.NewProgram(newTrackerModel(), tea.WithOutput(w))
	t := &interactiveTracker{program: p}

	go func() {
		_, _ = p.Run()
	}()

	return t
}

func (t *interactiveTracker) Step(module, step string, index, total int) {
	t.program.Send(trackerStepMsg{module: module, step: step, index: index, total: total})
}

func (t *interactiveTracker) Done() {
	t.once.Do(func() {
		t.program.Send(trackerDoneMsg{})
		t.program.Wait()
	})
}
