package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/cloudahk-cli/internal/domain"
	"github.com/bnema/cloudahk-cli/internal/ports"
)

type replyDeliveredMsg struct{}

type runsFinishedMsg struct {
	err error
}

// runProgressModel shows how many of the expected replies arrived while
// snippets run on the backends.
type runProgressModel struct {
	spinner   spinner.Model
	label     string
	expected  int
	delivered int
	started   time.Time
	call      tea.Cmd
	err       error
	done      bool
}

func newRunProgressModel(label string, expected int, call tea.Cmd) runProgressModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return runProgressModel{
		spinner:  s,
		label:    label,
		expected: expected,
		started:  time.Now(),
		call:     call,
	}
}

func (m runProgressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.call)
}

func (m runProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case replyDeliveredMsg:
		m.delivered++
		return m, nil
	case runsFinishedMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m runProgressModel) View() string {
	if m.done {
		return ""
	}

	elapsed := time.Since(m.started).Round(100 * time.Millisecond)
	if m.expected > 1 {
		return fmt.Sprintf("%s %s %d/%d (%s)", m.spinner.View(), m.label, m.delivered, m.expected, elapsed)
	}
	return fmt.Sprintf("%s %s (%s)", m.spinner.View(), m.label, elapsed)
}

// deliveryReporter counts replies for the progress view.
type deliveryReporter struct {
	ports.Replier
	delivered func()
}

func (r deliveryReporter) Reply(ctx context.Context, reply domain.Reply) error {
	err := r.Replier.Reply(ctx, reply)
	r.delivered()
	return err
}

// runWithProgress shows label on output until call returns. call wraps its
// replier with the given func so each delivered reply advances the count.
func runWithProgress(ctx context.Context, output io.Writer, label string, expected int, call func(context.Context, func(ports.Replier) ports.Replier) error) error {
	var p *tea.Program
	track := func(replier ports.Replier) ports.Replier {
		return deliveryReporter{Replier: replier, delivered: func() { p.Send(replyDeliveredMsg{}) }}
	}
	callCmd := func() tea.Msg {
		return runsFinishedMsg{err: call(ctx, track)}
	}

	p = tea.NewProgram(
		newRunProgressModel(label, expected, callCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(runProgressModel)
	if !ok {
		return fmt.Errorf("unexpected final progress model type %T", finalModel)
	}

	return result.err
}
