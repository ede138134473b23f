// Package status holds the status codes a server can answer with, and their reason phrases.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-15
package status

import "strconv"

type Status struct {
	Code         int
	ReasonPhrase string
}

var (
	OK       = Status{200, "OK"}
	NotFound = Status{404, "Not Found"}
)

var reasonPhrases = map[int]string{
	// Informational 1XX
	100: "Continue",
	101: "Switching Protocols",

	// Successful 2XX
	200: "OK",
	201: "Created",
	202: "Accepted",
	203: "Non-Authoritative Information",
	204: "No Content",
	205: "Reset Content",
	206: "Partial Content",

	// Redirection 3xx
	300: "Multiple Choices",
	301: "Moved Permanently",
	302: "Found",
	303: "See Other",
	304: "Not Modified",
	305: "Use Proxy",
	307: "Temporary Redirect",
	308: "Permanent Redirect",

	// Client Error 4xx
	400: "Bad Request",
	401: "Unauthorized",
	402: "Payment Required",
	403: "Forbidden",
	404: "Not Found",
	405: "Method Not Allowed",
	406: "Not Acceptable",
	407: "Proxy Authentication Required",
	408: "Request Timeout",
	409: "Conflict",
	410: "Gone",
	411: "Length Required",
	412: "Precondition Failed",
	413: "Content Too Large",
	414: "URI Too Long",
	415: "Unsupported Media Type",
	416: "Range Not Satisfiable",
	417: "Expectation Failed",
	418: "I'm a teapot",
	421: "Misdirected Request",
	422: "Unprocessable Content",
	426: "Upgrade Required",

	// Server Error 5xx
	500: "Internal Server Error",
	501: "Not Implemented",
	502: "Bad Gateway",
	503: "Service Unavailable",
	504: "Gateway Timeout",
	505: "HTTP Version Not Supported",
}

// FromCode looks up the registered reason phrase of code.
// Unknown codes get an empty phrase and ok=false.
func FromCode(code int) (status Status, ok bool) {
	phrase, ok := reasonPhrases[code]
	return Status{Code: code, ReasonPhrase: phrase}, ok
}

type Class int

const (
	ClassUnknown Class = iota
	ClassInformational
	ClassSuccessful
	ClassRedirection
	ClassClientError
	ClassServerError
)

// Class returns the class of the status, decided by the first digit of its code.
func (s Status) Class() Class {
	if s.Code < 100 || s.Code > 599 {
		return ClassUnknown
	}
	return Class(s.Code / 100)
}

func (s Status) String() string {
	code := strconv.Itoa(s.Code)
	if s.ReasonPhrase == "" {
		return code
	}
	return code + " " + s.ReasonPhrase
}
