package main

import (
	"bufio"
	"io"
	"os"
	"time"

	"github.com/sxc-lang/sxc/internal/flushio"
	"golang.org/x/term"
)

// stdioHost adapts the process's stdin/stdout to the sxc.Host interface used
// by svc read/write/sleep. When stdin is a terminal it is switched to raw
// mode for the duration of the run, so svc read sees bytes as they are typed
// rather than after a line is submitted and echoed.
type stdioHost struct {
	in  *bufio.Reader
	out flushio.WriteFlusher

	rawFD    int
	rawState *term.State
}

func newStdioHost(in *os.File, out io.Writer) *stdioHost {
	h := &stdioHost{
		in:  bufio.NewReader(in),
		out: flushio.NewWriteFlusher(out),
	}
	if fd := int(in.Fd()); term.IsTerminal(fd) {
		if state, err := term.MakeRaw(fd); err == nil {
			h.rawFD = fd
			h.rawState = state
		}
	}
	return h
}

// restore undoes any raw-mode switch; safe to call even if none happened.
func (h *stdioHost) restore() {
	if h.rawState != nil {
		term.Restore(h.rawFD, h.rawState)
		h.rawState = nil
	}
}

func (h *stdioHost) flush() error { return h.out.Flush() }

func (h *stdioHost) ReadByte() (byte, error) { return h.in.ReadByte() }

func (h *stdioHost) WriteByte(b byte) error {
	_, err := h.out.Write([]byte{b})
	return err
}

func (h *stdioHost) Sleep(ms int) { time.Sleep(time.Duration(ms) * time.Millisecond) }
