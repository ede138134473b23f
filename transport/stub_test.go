package transport

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"
)

// stubConn serves a canned response and records what happens to it.
type stubConn struct {
	mu sync.Mutex

	response io.Reader
	written  bytes.Buffer
	events   []string

	maxWrite int // Bytes accepted per Write. 0 means unlimited.
	readErr  error
	writeErr error
	closeErr error

	readSizes []int
	deadline  time.Time
	closed    int
}

var _ Conn = (*stubConn)(nil)

func newStubConn(response string) *stubConn {
	return &stubConn{response: bytes.NewReader([]byte(response))}
}

func (s *stubConn) record(event string) {
	if n := len(s.events); n > 0 && s.events[n-1] == event {
		return
	}
	s.events = append(s.events, event)
}

func (s *stubConn) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record("read")
	s.readSizes = append(s.readSizes, len(p))
	if s.readErr != nil {
		return 0, s.readErr
	}
	return s.response.Read(p)
}

func (s *stubConn) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record("write")
	if s.writeErr != nil {
		return 0, s.writeErr
	}
	if s.maxWrite > 0 && len(p) > s.maxWrite {
		p = p[:s.maxWrite]
	}
	return s.written.Write(p)
}

func (s *stubConn) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record("close")
	s.closed++
	return s.closeErr
}

func (s *stubConn) SetReadDeadline(t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deadline = t
	return nil
}

type stubDialer struct {
	conn *stubConn
	err  error

	dialed []string
}

func (d *stubDialer) Dial(_ context.Context, addr string) (Conn, error) {
	d.dialed = append(d.dialed, addr)
	if d.err != nil {
		return nil, d.err
	}
	return d.conn, nil
}
