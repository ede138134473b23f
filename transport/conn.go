package transport

import (
	"context"
	"net"
	"syscall"
	"time"

	"github.com/pkg/errors"
)

// Conn is a byte stream to a server.
// Every round trip owns its Conn exclusively and closes it before returning.
type Conn interface {
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)
	Close() error

	SetReadDeadline(t time.Time) error
}

type ConnDialer interface {
	// Dial connects to addr, given as host:port.
	Dial(ctx context.Context, addr string) (Conn, error)
}

var ErrDial = errors.New("dial failed")

type DialReason uint8

const (
	DialReasonOther DialReason = iota
	DialReasonDNS
	DialReasonRefused
	DialReasonUnreachable
)

func (r DialReason) String() string {
	switch r {
	case DialReasonDNS:
		return "DNS lookup failed"
	case DialReasonRefused:
		return "connection refused"
	case DialReasonUnreachable:
		return "network unreachable"
	}
	return "connection failed"
}

// DialError is returned when a connection can't be established.
// It matches [ErrDial] with errors.Is.
type DialError struct {
	Addr   string
	Reason DialReason
	Err    error
}

func NewDialError(addr string, err error) *DialError {
	return &DialError{Addr: addr, Reason: classifyDialError(err), Err: err}
}

func (e *DialError) Error() string {
	return "dialing " + e.Addr + ": " + e.Reason.String() + ": " + e.Err.Error()
}

func (e *DialError) Unwrap() error        { return e.Err }
func (e *DialError) Cause() error         { return e.Err }
func (e *DialError) Is(target error) bool { return target == ErrDial }

func classifyDialError(err error) DialReason {
	var dnsErr *net.DNSError
	switch {
	case errors.As(err, &dnsErr):
		return DialReasonDNS
	case errors.Is(err, syscall.ECONNREFUSED):
		return DialReasonRefused
	case errors.Is(err, syscall.ENETUNREACH), errors.Is(err, syscall.EHOSTUNREACH):
		return DialReasonUnreachable
	}
	return DialReasonOther
}
