package utils

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{250 * time.Millisecond, "250ms"},
		{3 * time.Second, "3s"},
		{75 * time.Second, "1m:15s"},
		{2*time.Hour + 3*time.Minute + 4*time.Second, "2h:3m:4s"},
		{49*time.Hour + 5*time.Second, "2d:1h:0m:5s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTime(tt.d))
	}
}

func TestDecorate(t *testing.T) {
	assert.Equal(t, "ok", Decorate("ok", SuccessColor, false))
	assert.Equal(t, SuccessColor+"ok"+DefaultColor, Decorate("ok", SuccessColor, true))
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinner(t *testing.T) {
	var out lockedBuffer
	s := NewSpinner(&out, false)
	s.Start("Versioning icons...")
	time.Sleep(150 * time.Millisecond)
	s.Stop()
	s.Stop()

	assert.True(t, strings.HasPrefix(out.String(), "\rVersioning icons... -"))
	assert.True(t, strings.HasSuffix(out.String(), "\r"+strings.Repeat(" ", 21)+"\r"))
}

func TestSpinnerRestart(t *testing.T) {
	var out lockedBuffer
	s := NewSpinner(&out, false)
	s.Start("Working")
	s.Stop()
	out.Write([]byte("line\n"))
	s.Start("Working")
	s.Stop()

	clear := "\r" + strings.Repeat(" ", 9) + "\r"
	assert.Contains(t, out.String(), clear+"line\n\rWorking -")
	assert.True(t, strings.HasSuffix(out.String(), clear))
}
