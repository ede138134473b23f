package http

import (
	"strconv"

	"httpclient/application/util/uri"
)

const formContentType = "application/x-www-form-urlencoded"

type RequestLine struct {
	Method  string
	Target  string
	Version Version
}

type Request struct {
	RequestLine
	Headers []Field
	Body    []byte
}

func baseHeaders(host string) []Field {
	return []Field{
		{"Host", host},
		{"Accept", "*/*"},
		// Not "close". Servers close the connection anyway after answering.
		{"Connection", "Closed"},
	}
}

// NewGetRequest creates a GET request for path on host.
func NewGetRequest(path, host string) Request {
	return Request{
		RequestLine: RequestLine{Method: MethodGet, Target: path, Version: Version11},
		Headers:     baseHeaders(host),
	}
}

// NewPostRequest creates a POST request for path on host.
// A non-empty form is sent url-encoded as the body.
func NewPostRequest(path, host string, form uri.Form) Request {
	var body []byte
	if len(form) > 0 {
		body = []byte(form.Encode())
	}

	headers := append(baseHeaders(host), Field{"Content-Length", strconv.Itoa(len(body))})
	if len(form) > 0 {
		headers = append(headers, Field{"Content-Type", formContentType})
	}

	return Request{
		RequestLine: RequestLine{Method: MethodPost, Target: path, Version: Version11},
		Headers:     headers,
		Body:        body,
	}
}
