package progress

import (
	"fmt"
	"io"
	"sync"
	"time"
)

type ProgressTracker struct {
	out       io.Writer
	total     int
	current   int
	message   string
	mu        sync.Mutex
	startTime time.Time
	done      chan struct{}
	finished  chan struct{}
}

// NewProgress starts rendering a spinner to out. A total of zero renders a
// plain counter.
func NewProgress(out io.Writer, total int, message string) *ProgressTracker {
	p := &ProgressTracker{
		out:       out,
		total:     total,
		message:   message,
		startTime: time.Now(),
		done:      make(chan struct{}),
		finished:  make(chan struct{}),
	}
	go p.render()
	return p
}

func (p *ProgressTracker) render() {
	defer close(p.finished)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	frame := 0

	for {
		select {
		case <-p.done:
			p.mu.Lock()
			elapsed := time.Since(p.startTime)
			fmt.Fprintf(p.out, "\r✓ %s (%d files, %s)          \n",
				p.message, p.current, elapsed.Round(time.Millisecond))
			p.mu.Unlock()
			return

		case <-ticker.C:
			p.mu.Lock()
			if p.total > 0 {
				percent := float64(p.current) / float64(p.total) * 100
				fmt.Fprintf(p.out, "\r%s %s [%d/%d] %.0f%%  ",
					spinner[frame%len(spinner)],
					p.message,
					p.current,
					p.total,
					percent)
			} else {
				fmt.Fprintf(p.out, "\r%s %s [%d files]  ",
					spinner[frame%len(spinner)],
					p.message,
					p.current)
			}
			p.mu.Unlock()
			frame++
		}
	}
}

func (p *ProgressTracker) Increment() {
	p.mu.Lock()
	p.current++
	p.mu.Unlock()
}

func (p *ProgressTracker) SetCurrent(n int) {
	p.mu.Lock()
	p.current = n
	p.mu.Unlock()
}

// Finish prints the summary line and waits for the renderer to stop.
func (p *ProgressTracker) Finish() {
	close(p.done)
	<-p.finished
}
