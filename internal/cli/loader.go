package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pulseforge/pulseforge/internal/cli/formatter"
)

// loader tracks one in-flight page fetch and renders its spinner.
type loader struct {
	loading bool
	err     error
	spin    spinner.Model
}

func newLoader() loader {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	return loader{spin: s}
}

// start marks the page loading and runs load next to the spinner.
func (l *loader) start(load tea.Cmd) tea.Cmd {
	l.loading = true
	l.err = nil
	return tea.Batch(l.spin.Tick, load)
}

func (l *loader) done(err error) {
	l.loading = false
	l.err = err
}

func (l *loader) update(msg tea.Msg) tea.Cmd {
	if !l.loading {
		return nil
	}
	if _, ok := msg.(spinner.TickMsg); !ok {
		return nil
	}
	var cmd tea.Cmd
	l.spin, cmd = l.spin.Update(msg)
	return cmd
}

// render returns the spinner, the error line, or body().
func (l *loader) render(body func() string) string {
	switch {
	case l.loading:
		return l.spin.View() + " Loading..."
	case l.err != nil:
		return formatter.ErrorLine(l.err)
	}
	return body()
}

// fetch wraps fn as a tea.Cmd with a bounded context.
func fetch[T any](fn func(ctx context.Context) (T, error), wrap func(T, error) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), tuiCallTimeout)
		defer cancel()
		v, err := fn(ctx)
		return wrap(v, err)
	}
}

// tuiCallTimeout bounds a whole page load. The api client applies its own
// per-request timeout inside it.
var tuiCallTimeout = 2 * time.Minute
