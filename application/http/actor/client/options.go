package client

import (
	"io"

	"httpclient/transport"
)

type Options struct {
	Transport transport.Options

	// Dump, when set, receives a diagnostic dump of every response that carried data:
	// the raw text, followed by the parsed status code and body.
	Dump io.Writer
}
