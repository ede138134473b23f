package transport

import (
	"context"
	"net"
	"os"
	"syscall"
	"testing"
	"time"

	iolib "httpclient/lib/io"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

const (
	testAddr    = "example.com:80"
	testRequest = "GET / HTTP/1.1\r\nHost: example.com\r\nAccept: */*\r\nConnection: Closed\r\n\r\n"
)

type RoundTripTestSuite struct {
	suite.Suite

	clock *clock.Mock
}

func TestRoundTripTestSuite(t *testing.T) {
	suite.Run(t, new(RoundTripTestSuite))
}

func (s *RoundTripTestSuite) SetupTest() {
	s.clock = clock.NewMock()
}

func (s *RoundTripTestSuite) roundTrip(d *stubDialer, opts Options) (string, error) {
	rt := NewRoundTripper(d, s.clock, opts)
	return rt.RoundTrip(context.Background(), testAddr, []byte(testRequest))
}

func (s *RoundTripTestSuite) TestRoundTrip() {
	response := "HTTP/1.1 200 OK\r\n\r\nhello"
	conn := newStubConn(response)
	conn.maxWrite = 7 // Force short writes.
	d := &stubDialer{conn: conn}

	got, err := s.roundTrip(d, Options{})
	s.Require().NoError(err)

	s.Equal(response, got)
	s.Equal([]string{testAddr}, d.dialed)
	s.Equal(testRequest, conn.written.String())
	s.Equal([]string{"write", "read", "close"}, conn.events, "request must be fully written before reading")
	s.Equal(1, conn.closed)
	s.True(conn.deadline.IsZero(), "no deadline without timeout")
}

func (s *RoundTripTestSuite) TestReadsInChunks() {
	response := "HTTP/1.1 200 OK\r\n\r\n" + string(make([]byte, 3000))
	conn := newStubConn(response)

	got, err := s.roundTrip(&stubDialer{conn: conn}, Options{})
	s.Require().NoError(err)
	s.Len(got, len(response))

	for _, size := range conn.readSizes {
		s.Equal(iolib.DefaultChunkSize, size)
	}
}

func (s *RoundTripTestSuite) TestCustomChunkSize() {
	conn := newStubConn("HTTP/1.1 200 OK\r\n\r\n")

	_, err := s.roundTrip(&stubDialer{conn: conn}, Options{ChunkSize: 4})
	s.Require().NoError(err)

	s.Equal(4, conn.readSizes[0])
}

func (s *RoundTripTestSuite) TestEmptyResponse() {
	conn := newStubConn("")

	got, err := s.roundTrip(&stubDialer{conn: conn}, Options{})
	s.Require().NoError(err)
	s.Empty(got)
	s.Equal(1, conn.closed)
}

func (s *RoundTripTestSuite) TestDialError() {
	refused := &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}
	d := &stubDialer{err: refused}

	_, err := s.roundTrip(d, Options{})
	s.ErrorIs(err, ErrDial)

	var dialErr *DialError
	s.Require().True(errors.As(err, &dialErr))
	s.Equal(DialReasonRefused, dialErr.Reason)
	s.Equal(testAddr, dialErr.Addr)
}

func (s *RoundTripTestSuite) TestDialErrorPassedThrough() {
	original := NewDialError(testAddr, errors.New("boom"))
	d := &stubDialer{err: original}

	_, err := s.roundTrip(d, Options{})
	s.Same(original, err)
}

func (s *RoundTripTestSuite) TestWriteErrorClosesConn() {
	conn := newStubConn("")
	conn.writeErr = syscall.EPIPE

	_, err := s.roundTrip(&stubDialer{conn: conn}, Options{})
	s.ErrorIs(err, syscall.EPIPE)
	s.Equal(1, conn.closed)
	s.NotContains(conn.events, "read")
}

func (s *RoundTripTestSuite) TestReadErrorClosesConn() {
	conn := newStubConn("")
	conn.readErr = syscall.ECONNRESET

	_, err := s.roundTrip(&stubDialer{conn: conn}, Options{})
	s.ErrorIs(err, syscall.ECONNRESET)
	s.Equal(1, conn.closed)
}

func (s *RoundTripTestSuite) TestCloseError() {
	conn := newStubConn("HTTP/1.1 200 OK\r\n\r\n")
	conn.closeErr = errors.New("close failed")

	_, err := s.roundTrip(&stubDialer{conn: conn}, Options{})
	s.ErrorContains(err, "close failed")
}

func (s *RoundTripTestSuite) TestInvalidUTF8() {
	conn := newStubConn("HTTP/1.1 200 OK\r\n\r\n\xff\xfe")

	_, err := s.roundTrip(&stubDialer{conn: conn}, Options{})
	s.ErrorIs(err, ErrInvalidUTF8)
	s.Equal(1, conn.closed)
}

func (s *RoundTripTestSuite) TestReadTimeout() {
	s.clock.Set(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	conn := newStubConn("HTTP/1.1 200 OK\r\n\r\n")

	_, err := s.roundTrip(&stubDialer{conn: conn}, Options{ReadTimeout: 5 * time.Second})
	s.Require().NoError(err)

	s.Equal(s.clock.Now().Add(5*time.Second), conn.deadline)
}

func (s *RoundTripTestSuite) TestMaxResponseSize() {
	response := "HTTP/1.1 200 OK\r\n\r\n0123456789"

	testcases := []struct {
		desc    string
		max     uint
		wantErr error
	}{
		{desc: "fits", max: uint(len(response))},
		{desc: "too large", max: uint(len(response)) - 1, wantErr: iolib.ErrReadLimitExceeded},
	}

	for _, tc := range testcases {
		s.Run(tc.desc, func() {
			conn := newStubConn(response)

			got, err := s.roundTrip(&stubDialer{conn: conn}, Options{MaxResponseSize: tc.max})
			if tc.wantErr != nil {
				s.ErrorIs(err, tc.wantErr)
				s.Equal(1, conn.closed)
				return
			}

			s.NoError(err)
			s.Equal(response, got)
		})
	}
}

func TestClassifyDialError(t *testing.T) {
	testcases := []struct {
		desc     string
		err      error
		expected DialReason
	}{
		{
			desc:     "dns",
			err:      &net.OpError{Op: "dial", Err: &net.DNSError{Err: "no such host", Name: "x.invalid", IsNotFound: true}},
			expected: DialReasonDNS,
		},
		{
			desc:     "refused",
			err:      &net.OpError{Op: "dial", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)},
			expected: DialReasonRefused,
		},
		{
			desc:     "unreachable",
			err:      &net.OpError{Op: "dial", Err: os.NewSyscallError("connect", syscall.ENETUNREACH)},
			expected: DialReasonUnreachable,
		},
		{
			desc:     "other",
			err:      context.Canceled,
			expected: DialReasonOther,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			err := NewDialError(testAddr, tc.err)
			assert.Equal(t, tc.expected, err.Reason)
			assert.ErrorIs(t, err, ErrDial)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}
