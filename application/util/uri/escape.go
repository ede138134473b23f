package uri

import (
	"strings"
)

func hex(c byte) (h [2]byte) {
	const hexSet = "0123456789ABCDEF"
	h[0] = hexSet[c>>4]
	h[1] = hexSet[c&0xF]
	return
}

// QueryEscape escapes s so it can be placed inside a query or a form body.
// Only unreserved bytes are kept as is, and space becomes '+'.
func QueryEscape(s string) string {
	b := new(strings.Builder)
	b.Grow(len(s))

	for idx := 0; idx < len(s); idx++ {
		c := s[idx]
		switch {
		case c == ' ':
			b.WriteByte('+')
		case isUnreserved(c):
			b.WriteByte(c)
		default:
			hex := hex(c)
			b.Write([]byte{'%', hex[0], hex[1]})
		}
	}

	return b.String()
}
