package formatter

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// lineSpinner uses the same frames as the TUI loader.
var lineSpinner = spinner.Dot

// Spinner animates a one-line "Loading..." indicator on a terminal.
type Spinner struct {
	mu      sync.Mutex
	out     io.Writer
	message string
	stop    chan struct{}
	done    chan struct{}
	started bool
}

func NewSpinner(out io.Writer, message string) *Spinner {
	if message == "" {
		message = "Loading..."
	}
	return &Spinner{
		out:     out,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(lineSpinner.FPS)
		defer ticker.Stop()

		for i := 0; ; i++ {
			frame := lineSpinner.Frames[i%len(lineSpinner.Frames)]
			fmt.Fprintf(s.out, "\r%s %s", StyleHeader.Render(frame), s.message)
			select {
			case <-s.stop:
				fmt.Fprint(s.out, "\r\033[K")
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop clears the spinner line. It is safe to call more than once.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	select {
	case <-s.stop:
		return
	default:
		close(s.stop)
	}
	<-s.done
}

// StartSpinner starts a spinner on stderr and returns its stop func.
func StartSpinner(message string) func() {
	s := NewSpinner(os.Stderr, message)
	s.Start()
	return s.Stop
}
