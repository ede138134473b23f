package uri

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// NOTE: Components hold text exactly as found in the raw URI.
// Path, query and fragment are passed through without checking their characters.
type URI struct {
	Scheme    string
	Authority *Authority
	Path      string
	Query     *string
	Fragment  *string
}

type Authority struct {
	UserInfo string
	Host     string

	// NOTE: Port can be digits of any length. But practically it is in range of 0 ~ 65535.
	// Reference: datatracker.ietf.org/doc/html/rfc3986#section-3.2.3
	Port *uint16
}

// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-5.3
func (u *URI) String() string {
	b := new(strings.Builder)
	if u.Scheme != "" {
		b.WriteString(u.Scheme)
		b.WriteByte(':')
	}

	if u.Authority != nil {
		b.WriteString("//")
		if u.Authority.UserInfo != "" {
			b.WriteString(u.Authority.UserInfo)
			b.WriteByte('@')
		}
		b.WriteString(u.Authority.Host)
		if u.Authority.Port != nil {
			b.WriteByte(':')
			b.WriteString(strconv.FormatUint(uint64(*u.Authority.Port), 10))
		}
	}

	b.WriteString(u.Path)

	if u.Query != nil {
		b.WriteByte('?')
		b.WriteString(*u.Query)
	}
	if u.Fragment != nil {
		b.WriteByte('#')
		b.WriteString(*u.Fragment)
	}

	return b.String()
}

func Parse(rawURL string) (URI, error) {
	if containsCTL(rawURL) {
		return URI{}, errors.New("URI should not contain CTL bytes")
	}
	if strings.IndexByte(rawURL, ' ') >= 0 {
		return URI{}, errors.New("URI should not contain spaces")
	}

	var uri URI

	scheme, rest, err := cutScheme(rawURL)
	if err != nil {
		return URI{}, errors.Wrap(err, "getting scheme")
	}
	// Scheme is case-insensitive.
	uri.Scheme = strings.ToLower(scheme)

	if strings.HasPrefix(rest, "//") {
		authorityRaw := rest[2:]
		rest = ""
		if i := strings.IndexAny(authorityRaw, "/?#"); i >= 0 {
			authorityRaw, rest = authorityRaw[:i], authorityRaw[i:]
		}

		authority, err := parseAuthority(authorityRaw)
		if err != nil {
			return URI{}, errors.Wrap(err, "parsing authority")
		}
		uri.Authority = &authority
	}

	path, query, frag := splitPathQueryFrag(rest)

	if err := assertValidPath(path, uri.Authority != nil, uri.Scheme == ""); err != nil {
		return URI{}, errors.Wrap(err, "path is not valid")
	}
	uri.Path = path

	if query, found := strings.CutPrefix(query, "?"); found {
		uri.Query = &query
	}

	if frag, found := strings.CutPrefix(frag, "#"); found {
		uri.Fragment = &frag
	}

	return uri, nil
}

// cutScheme cuts scheme from rawURL. If scheme is not valid, it returns an error.
func cutScheme(rawURL string) (scheme, rest string, err error) {
	before, after, found := strings.Cut(rawURL, ":")
	if !found || strings.ContainsAny(before, "/?#") {
		// No scheme: either no colon at all or it belongs to a later component.
		return "", rawURL, nil
	}

	if err := assertValidScheme(before); err != nil {
		return "", "", err
	}

	return before, after, nil
}

func parseAuthority(raw string) (authority Authority, err error) {
	host := raw
	if i := strings.LastIndex(raw, "@"); i >= 0 {
		authority.UserInfo, host = raw[:i], raw[i+1:]
		if !isValidUserInfo(authority.UserInfo) {
			return Authority{}, errors.New("user information is not valid")
		}
	}

	host, portPart, err := getHostPort(host)
	if err != nil {
		return Authority{}, errors.Wrap(err, "parsing host")
	}

	port, hasPort, err := parsePort(portPart)
	if err != nil {
		return Authority{}, errors.Wrap(err, "parsing port")
	}
	if hasPort {
		authority.Port = &port
	}

	// Host is case-insensitive.
	authority.Host = strings.ToLower(host)

	return authority, nil
}

func getHostPort(raw string) (host string, portPart string, err error) {
	if strings.HasPrefix(raw, "[") {
		// This is IP Literal.
		idx := strings.LastIndex(raw, "]")
		if idx < 0 {
			return "", "", errors.New("missing ']' in IP Literal")
		}

		host = raw[:idx+1]
		portPart = raw[idx+1:]
	} else {
		// ipv4 or reg-name.
		host = raw
		if idx := strings.LastIndex(raw, ":"); idx >= 0 {
			host = raw[:idx]
			portPart = raw[idx:]
		}
	}

	if err := assertValidHost(host); err != nil {
		return "", "", errors.Wrap(err, "host is not valid")
	}

	return host, portPart, nil
}

// parsePort parses ":<digits>". An empty port after the colon counts as absent.
func parsePort(s string) (port uint16, hasPort bool, err error) {
	if s == "" {
		return 0, false, nil
	}

	digits, found := strings.CutPrefix(s, ":")
	if !found {
		return 0, false, errors.New("colon delimiter not found on port")
	}
	if digits == "" {
		return 0, false, nil
	}

	n, err := strconv.ParseUint(digits, 10, 16)
	if err != nil {
		return 0, false, errors.Wrapf(err, "port out of range or not a number: %q", digits)
	}

	return uint16(n), true, nil
}

func splitPathQueryFrag(raw string) (path, query, frag string) {
	if idx := strings.IndexByte(raw, '#'); idx >= 0 {
		frag = raw[idx:]
		raw = raw[:idx]
	}

	if idx := strings.IndexByte(raw, '?'); idx >= 0 {
		query = raw[idx:]
		raw = raw[:idx]
	}

	path = raw
	return
}
