package http

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"httpclient/application/util/rule"

	"github.com/pkg/errors"
)

var (
	ErrMalformedRequestLine = errors.New("request line is malformed")
	ErrMalformedFieldLine   = errors.New("field line is malformed")
)

type RequestEncoder struct {
	bw *bufio.Writer
}

func NewRequestEncoder(w io.Writer) *RequestEncoder {
	return &RequestEncoder{bw: bufio.NewWriter(w)}
}

func (re *RequestEncoder) Encode(request Request) error {
	if err := re.encodeRequestLine(request.RequestLine); err != nil {
		return errors.Wrap(err, "encoding request line")
	}

	if err := re.encodeHeaders(request.Headers); err != nil {
		return errors.Wrap(err, "encoding headers")
	}

	if _, err := re.bw.Write(request.Body); err != nil {
		return errors.Wrap(err, "writing request body")
	}

	if err := re.bw.Flush(); err != nil {
		return errors.Wrap(err, "flushing request")
	}

	return nil
}

func (re *RequestEncoder) writeLine(line []byte) error {
	if _, err := re.bw.Write(line); err != nil {
		return errors.Wrap(err, "writing line")
	}

	if _, err := re.bw.Write(rule.CRLF); err != nil {
		return errors.Wrap(err, "writing line terminator")
	}

	return nil
}

func (re *RequestEncoder) encodeRequestLine(reqLine RequestLine) error {
	if !rule.IsValidToken(reqLine.Method) {
		return errors.Wrapf(ErrMalformedRequestLine, "method is not a valid token: %q", reqLine.Method)
	}
	if reqLine.Target == "" || strings.ContainsAny(reqLine.Target, " \t\r\n") {
		return errors.Wrapf(ErrMalformedRequestLine, "invalid request target: %q", reqLine.Target)
	}

	buf := bytes.NewBuffer(nil)

	buf.WriteString(reqLine.Method)
	buf.WriteByte(rule.SP)
	buf.WriteString(reqLine.Target)
	buf.WriteByte(rule.SP)
	buf.Write(reqLine.Version.Text())

	return re.writeLine(buf.Bytes())
}

func (re *RequestEncoder) encodeHeaders(headers []Field) error {
	for _, field := range headers {
		if !rule.IsValidToken(field.Name) || strings.ContainsAny(field.Value, "\r\n") {
			return errors.Wrapf(ErrMalformedFieldLine, "%q", field.Name)
		}
		if err := re.writeLine(field.Text()); err != nil {
			return errors.Wrap(err, "writing field")
		}
	}

	// Write a empty line as all the headers are written.
	if err := re.writeLine(nil); err != nil {
		return errors.Wrap(err, "writing line terminator")
	}

	return nil
}

// EncodeRequest renders request into the bytes sent on the wire.
func EncodeRequest(request Request) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := NewRequestEncoder(buf).Encode(request); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
