// Package http builds HTTP/1.1 requests byte by byte and picks apart the raw responses.
//
// Responses are read until the server closes the connection, so the parser
// only looks for the status line and the empty line ending the header section.
// It doesn't interpret any header.
//
// Reference:
//
// - https://datatracker.ietf.org/doc/html/rfc9110
//
// - https://datatracker.ietf.org/doc/html/rfc9112
package http
