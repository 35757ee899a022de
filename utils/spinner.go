package utils

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// Spinner initializes the process indicator.
type Spinner struct {
	w        io.Writer
	colored  bool
	message  string
	stopChan chan struct{}
	done     sync.WaitGroup
}

// NewSpinner instantiates a new Spinner writing to w.
func NewSpinner(w io.Writer, colored bool) *Spinner {
	return &Spinner{w: w, colored: colored}
}

// Start starts the process indicator.
func (s *Spinner) Start(message string) {
	s.message = message
	s.stopChan = make(chan struct{})
	s.done.Add(1)

	go func() {
		defer s.done.Done()
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		for {
			for _, r := range `-\|/` {
				fmt.Fprintf(s.w, "\r%s %s", message, Decorate(string(r), SuccessColor, s.colored))
				select {
				case <-s.stopChan:
					fmt.Fprint(s.w, s.blank())
					return
				case <-ticker.C:
				}
			}
		}
	}()
}

// blank erases the spinner line and returns the cursor to its start.
func (s *Spinner) blank() string {
	return "\r" + strings.Repeat(" ", utf8.RuneCountInString(s.message)+2) + "\r"
}

// Stop stops the process indicator and waits for it to clear.
func (s *Spinner) Stop() {
	if s.stopChan == nil {
		return
	}
	close(s.stopChan)
	s.done.Wait()
	s.stopChan = nil
}
