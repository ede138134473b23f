package uri

import (
	"net/netip"
	"strings"

	"httpclient/application/util/rule"

	"github.com/pkg/errors"
)

func containsCTL(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b < ' ' || b == 0x7f {
			return true
		}
	}
	return false
}

// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-2.2
func isSubDelim(c byte) bool {
	switch c {
	case '!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=':
		return true
	}
	return false
}

// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-2.3
func isUnreserved(c byte) bool {
	if rule.IsAlpha(rune(c)) || rule.IsDigit(rune(c)) {
		return true
	}
	switch c {
	case '-', '.', '_', '~':
		return true
	}
	return false
}

// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-2.1
func isPercentEncoded(s string) bool {
	if len(s) != 3 {
		return false
	}

	return s[0] == '%' &&
		rule.IsHex(rune(s[1])) &&
		rule.IsHex(rune(s[2]))
}

// allOf reports whether every byte of s is either allowed or part of a percent-encoded octet.
func allOf(s string, allowed func(c byte) bool) bool {
	for idx := 0; idx < len(s); idx++ {
		c := s[idx]
		if allowed(c) {
			continue
		}
		if c == '%' && idx+2 < len(s) && isPercentEncoded(s[idx:idx+3]) {
			idx += 2
			continue
		}
		return false
	}

	return true
}

func assertValidScheme(scheme string) error {
	if len(scheme) == 0 {
		return errors.New("scheme is empty")
	}

	if !rule.IsAlpha(rune(scheme[0])) {
		return errors.New("scheme doesn't start with ALPHA")
	}

	for idx := 1; idx < len(scheme); idx++ {
		c := scheme[idx]
		switch {
		case rule.IsAlpha(rune(c)) || rule.IsDigit(rune(c)):
		case c == '+' || c == '-' || c == '.':
		default:
			return errors.New("scheme contains invalid byte")
		}
	}

	return nil
}

func assertValidHost(host string) error {
	if host == "" {
		// Empty value for reg-name is valid.
		// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-3.2.2
		return nil
	}
	if len(host) > 255 {
		return errors.Errorf("host length exceeds limit(255): %d", len(host))
	}

	first, last := 0, len(host)-1
	if host[first] == '[' && host[last] == ']' {
		addr, err := netip.ParseAddr(host[first+1 : last])
		if err != nil || !addr.Is6() {
			return errors.New("host is expected to be IP Literal, but was malformed")
		}
		return nil
	}

	// IPv4 addresses are a subset of reg-name.
	if !allOf(host, func(c byte) bool { return isUnreserved(c) || isSubDelim(c) }) {
		return errors.Errorf("host is not a valid reg-name: %q", host)
	}

	return nil
}

// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-3.2.1
func isValidUserInfo(s string) bool {
	return allOf(s, func(c byte) bool {
		return isUnreserved(c) || isSubDelim(c) || c == ':'
	})
}

// assertValidPath checks only the shape of path against the authority.
// Characters are left to the server to judge.
func assertValidPath(path string, hasAuthority bool, isRelative bool) error {
	if hasAuthority {
		if !(path == "" || path[0] == '/') {
			return errors.New(
				"URI with authority must either be empty or start with '/'",
			)
		}
	} else if strings.HasPrefix(path, "//") {
		return errors.New("URI without authority should not start with '//'")
	}

	first, _, _ := strings.Cut(path, "/")
	if isRelative && strings.ContainsRune(first, ':') {
		return errors.New(
			"relative URI reference's first segment should not contain ':'",
		)
	}

	return nil
}
