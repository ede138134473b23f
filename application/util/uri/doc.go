// Package uri parses the URIs handed to the client and turns them into
// dialable targets.
//
// Components are kept in their escaped form, as they go on the wire verbatim.
//
// Reference:
//
// - https://datatracker.ietf.org/doc/html/rfc3986
//
// - https://url.spec.whatwg.org/#application/x-www-form-urlencoded
package uri
