// Package tcp dials TCP connections through the operating system's sockets.
package tcp

import (
	"context"
	"net"

	"httpclient/transport"
)

type Dialer struct {
	d net.Dialer
}

var _ transport.ConnDialer = (*Dialer)(nil)

func NewDialer() *Dialer {
	return &Dialer{}
}

func (d *Dialer) Dial(ctx context.Context, addr string) (transport.Conn, error) {
	conn, err := d.d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, transport.NewDialError(addr, err)
	}

	return conn, nil
}
