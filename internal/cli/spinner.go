package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner shows a progress line with the elapsed time while a solve or render
// runs. It stops on Stop or when its context is done.
type Spinner struct {
	w       io.Writer
	parent  context.Context
	message string
	ctx     context.Context
	cancel  context.CancelFunc
	started time.Time
	stopped chan struct{}
	once    sync.Once
	running bool
	width   int
}

// newSpinner creates a spinner writing to stderr.
func newSpinner(ctx context.Context, message string) *Spinner {
	return newSpinnerTo(ctx, os.Stderr, message)
}

func newSpinnerTo(ctx context.Context, w io.Writer, message string) *Spinner {
	spinCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:       w,
		parent:  ctx,
		message: message,
		ctx:     spinCtx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

// Start begins the animation. The first frame is drawn after one interval,
// so fast solves print nothing.
func (s *Spinner) Start() {
	s.started = time.Now()
	s.running = true
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clear()
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

func (s *Spinner) draw(frame string) {
	elapsed := time.Since(s.started).Round(100 * time.Millisecond)
	line := fmt.Sprintf("%s %s", styleIconSpinner.Render(frame), StyleDim.Render(fmt.Sprintf("%s %s", s.message, elapsed)))
	s.width = max(s.width, len(line))
	fmt.Fprintf(s.w, "\r%s", line)
}

// clear blanks the line only if something was drawn.
func (s *Spinner) clear() {
	if s.width == 0 {
		return
	}
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
}

// Stop ends the animation and returns the time since Start. It is safe to call
// more than once, or without Start.
func (s *Spinner) Stop() time.Duration {
	s.once.Do(func() {
		s.cancel()
		if s.running {
			<-s.stopped
		}
	})
	return time.Since(s.started)
}

// Cancelled reports whether the parent context ended, which also stops the
// spinner.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}
