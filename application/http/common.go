package http

import "strconv"

const (
	MethodGet  = "GET"
	MethodPost = "POST"
)

// [Major, Minor]
type Version [2]uint

var Version11 = Version{1, 1}

func (ver Version) Text() []byte {
	b := []byte("HTTP/")
	b = strconv.AppendUint(b, uint64(ver[0]), 10)
	b = append(b, '.')
	b = strconv.AppendUint(b, uint64(ver[1]), 10)
	return b
}

func (ver Version) String() string { return string(ver.Text()) }

type Field struct{ Name, Value string }

func (f Field) Text() []byte {
	return []byte(f.Name + ": " + f.Value)
}
