package uri

import (
	"net"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrUnsupportedScheme = errors.New("scheme has no default port")
	ErrMissingHost       = errors.New("URI has no host")
)

// Target is what the client needs to reach a resource: where to dial, and what to ask for.
type Target struct {
	Scheme string
	Host   string // Brackets of IP literal are stripped.
	Port   uint16
	Path   string // Includes "?query" if present. Never empty.
}

// Addr returns host:port suitable for dialing.
func (t Target) Addr() string {
	return net.JoinHostPort(t.Host, strconv.FormatUint(uint64(t.Port), 10))
}

// DefaultPort returns the well-known port of scheme, or 0 if there is none.
func DefaultPort(scheme string) uint16 {
	switch scheme {
	case "http":
		return 80
	case "https":
		return 443
	}
	return 0
}

// Decompose parses rawURL into a [Target].
// A missing path becomes "/", and a missing (or zero) port is taken from the scheme.
func Decompose(rawURL string) (Target, error) {
	u, err := Parse(rawURL)
	if err != nil {
		return Target{}, errors.Wrap(err, "parsing URI")
	}

	if u.Authority == nil || u.Authority.Host == "" {
		return Target{}, errors.Wrapf(ErrMissingHost, "%q", rawURL)
	}

	t := Target{
		Scheme: u.Scheme,
		Host:   strings.TrimSuffix(strings.TrimPrefix(u.Authority.Host, "["), "]"),
		Path:   u.Path,
	}

	if t.Path == "" {
		t.Path = "/"
	}
	if u.Query != nil && *u.Query != "" {
		t.Path += "?" + *u.Query
	}

	if u.Authority.Port != nil {
		t.Port = *u.Authority.Port
	}
	if t.Port == 0 {
		t.Port = DefaultPort(u.Scheme)
	}
	if t.Port == 0 {
		return Target{}, errors.Wrapf(ErrUnsupportedScheme, "%q", u.Scheme)
	}

	return t, nil
}
