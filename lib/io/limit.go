package iolib

import (
	"io"

	"github.com/pkg/errors"
)

var ErrReadLimitExceeded = errors.New("read limit exceeded")

// LimitReader creates new [LimitedReader]
func LimitReader(r io.Reader, n uint) io.Reader { return &LimitedReader{R: r, N: n} }

// LimitedReader is uint port of [io.LimitedReader].
// Unlike the stdlib one, it fails with [ErrReadLimitExceeded]
// when the underlying reader still has bytes after N is used up.
type LimitedReader struct {
	R io.Reader // underlying reader
	N uint      // max bytes remaining
}

func (l *LimitedReader) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	if l.N == 0 {
		var probe [1]byte
		n, err := l.R.Read(probe[:])
		if n > 0 {
			return 0, ErrReadLimitExceeded
		}
		return 0, err
	}
	if uint(len(p)) > l.N {
		p = p[:l.N]
	}
	n, err = l.R.Read(p)
	l.N -= uint(n)
	return
}
