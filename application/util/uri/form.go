package uri

import (
	"slices"
	"strings"
)

// Param is a single key/value pair of a form.
type Param struct{ Key, Value string }

// Form is an ordered list of params. Encoding keeps the order.
type Form []Param

// FormFromMap builds a Form from m. Since maps are unordered, keys are sorted.
func FormFromMap(m map[string]string) Form {
	f := make(Form, 0, len(m))
	for k, v := range m {
		f = append(f, Param{Key: k, Value: v})
	}
	slices.SortFunc(f, func(a, b Param) int { return strings.Compare(a.Key, b.Key) })
	return f
}

func (f *Form) Add(key, value string) { *f = append(*f, Param{Key: key, Value: value}) }

// Encode encodes the form in application/x-www-form-urlencoded.
//
// Reference: https://url.spec.whatwg.org/#urlencoded-serializing
func (f Form) Encode() string {
	b := new(strings.Builder)
	for idx, p := range f {
		if idx > 0 {
			b.WriteByte('&')
		}
		b.WriteString(QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(QueryEscape(p.Value))
	}
	return b.String()
}
