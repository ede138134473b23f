package transport

import (
	"context"
	"io"
	"time"
	"unicode/utf8"

	iolib "httpclient/lib/io"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
)

var ErrInvalidUTF8 = errors.New("response is not valid UTF-8")

// Options are opt-in extensions. The zero value reads until the server
// closes the connection, however long that takes and however much it sends.
type Options struct {
	// ReadTimeout, when > 0, bounds the whole read phase.
	ReadTimeout time.Duration

	// MaxResponseSize, when > 0, caps the number of bytes accepted from the server.
	MaxResponseSize uint

	// ChunkSize sets how many bytes are requested per read.
	// Defaults to [iolib.DefaultChunkSize].
	ChunkSize uint
}

// RoundTripper sends a single request per connection and reads the response until close.
type RoundTripper struct {
	dialer ConnDialer
	clock  clock.Clock
	opts   Options
}

func NewRoundTripper(d ConnDialer, clock clock.Clock, opts Options) *RoundTripper {
	return &RoundTripper{dialer: d, clock: clock, opts: opts}
}

// RoundTrip dials addr, writes request as a whole, and returns everything
// the server sent before closing the connection.
// Canceling ctx closes the connection, which aborts a pending write or read.
// The connection is always closed before returning.
func (rt *RoundTripper) RoundTrip(ctx context.Context, addr string, request []byte) (_ string, err error) {
	conn, err := rt.dialer.Dial(ctx, addr)
	if err != nil {
		if !errors.Is(err, ErrDial) {
			err = NewDialError(addr, err)
		}
		return "", err
	}

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer func() {
		if !stop() {
			// Already closed by cancellation.
			if err == nil {
				err = errors.Wrap(ctx.Err(), "request canceled")
			}
			return
		}
		if cerr := conn.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "closing connection")
		}
	}()

	if _, err := iolib.WriteFull(conn, request); err != nil {
		return "", errors.Wrap(canceledOr(ctx, err), "writing request")
	}

	if rt.opts.ReadTimeout > 0 {
		if err := conn.SetReadDeadline(rt.clock.Now().Add(rt.opts.ReadTimeout)); err != nil {
			return "", errors.Wrap(err, "setting read deadline")
		}
	}

	var r io.Reader = conn
	if rt.opts.MaxResponseSize > 0 {
		r = iolib.LimitReader(conn, rt.opts.MaxResponseSize)
	}

	data, err := iolib.ReadToClose(r, rt.opts.ChunkSize)
	if err != nil {
		return "", errors.Wrap(canceledOr(ctx, err), "reading response")
	}

	if !utf8.Valid(data) {
		return "", ErrInvalidUTF8
	}

	return string(data), nil
}

// canceledOr reports the cancellation of ctx in place of err,
// which is then only a side effect of the connection being closed.
func canceledOr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}
