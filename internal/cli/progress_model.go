package cli

import (
	"context"
	"io"

	"github.com/alexanderramin/liftplan/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

var cancelKeys = key.NewBinding(key.WithKeys("ctrl+c", "esc"))

type workDoneMsg[T any] struct {
	result T
	err    error
}

// progressModel shows a spinner while one blocking call runs. Ctrl+C or Esc
// cancels the call's context.
type progressModel[T any] struct {
	spinner  spinner.Model
	message  string
	cancel   context.CancelFunc
	done     bool
	canceled bool
	result   T
	err      error
}

func newProgressModel[T any](message string, cancel context.CancelFunc) progressModel[T] {
	return progressModel[T]{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(formatter.StylePurple),
		),
		message: message,
		cancel:  cancel,
	}
}

func (m progressModel[T]) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m progressModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workDoneMsg[T]:
		m.done = true
		m.result, m.err = msg.result, msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		if key.Matches(msg, cancelKeys) {
			m.canceled = true
			m.err = context.Canceled
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m progressModel[T]) View() string {
	if m.done || m.canceled {
		return ""
	}
	return "  " + m.spinner.View() + " " + formatter.Dim(m.message) + "\n"
}

// runWithProgress runs fn while a spinner renders to out. The spinner program
// quits as soon as fn returns or the user cancels.
func runWithProgress[T any](ctx context.Context, out io.Writer, message string, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newProgressModel[T](message, cancel), tea.WithOutput(out))
	go func() {
		result, err := fn(ctx)
		p.Send(workDoneMsg[T]{result: result, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		var zero T
		return zero, err
	}
	m := final.(progressModel[T])
	return m.result, m.err
}
