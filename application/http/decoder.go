package http

import (
	"strconv"
	"strings"

	"httpclient/application/http/status"
	"httpclient/application/util/rule"

	"github.com/pkg/errors"
)

var (
	ErrMalformedStatusLine  = errors.New("status line is malformed")
	ErrMissingBodySeparator = errors.New("empty line after headers not found")
)

type Response struct {
	StatusCode int
	Body       string

	// Raw is the whole response as received.
	Raw string
}

func (r Response) Status() status.Status {
	s, _ := status.FromCode(r.StatusCode)
	return s
}

// NoDataResponse is what [ParseResponse] yields when nothing was received.
func NoDataResponse() Response {
	return Response{StatusCode: status.NotFound.Code}
}

// ParseResponse splits raw into status code and body.
//
// The status code is the second whitespace-delimited token of the first line.
// The body is everything after the first empty line, including any further CRLFCRLF.
func ParseResponse(raw string) (Response, error) {
	if raw == "" {
		return NoDataResponse(), nil
	}

	line, _, _ := strings.Cut(raw, string(rule.LF))
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return Response{}, errors.Wrapf(ErrMalformedStatusLine, "status code not found: %q", line)
	}

	code, err := strconv.Atoi(tokens[1])
	if err != nil {
		return Response{}, errors.Wrapf(ErrMalformedStatusLine, "status code is not a number: %q", tokens[1])
	}

	_, body, found := strings.Cut(raw, string(rule.HeaderTerminator))
	if !found {
		return Response{}, ErrMissingBodySeparator
	}

	return Response{
		StatusCode: code,
		Body:       body,
		Raw:        raw,
	}, nil
}
