package deck

import (
	"bytes"
	"encoding/json"
)

// Variables is an insertion-ordered name → scalar value mapping used for
// {{name}} substitution. Values are kept in their textual form.
type Variables struct {
	names  []string
	values map[string]string
}

// Set adds or replaces a variable, preserving first-insertion order.
func (v *Variables) Set(name, value string) {
	if v.values == nil {
		v.values = make(map[string]string)
	}
	if _, ok := v.values[name]; !ok {
		v.names = append(v.names, name)
	}
	v.values[name] = value
}

// Get returns the value for name and whether it is defined.
func (v *Variables) Get(name string) (string, bool) {
	val, ok := v.values[name]
	return val, ok
}

// Names returns the variable names in insertion order.
func (v *Variables) Names() []string {
	out := make([]string, len(v.names))
	copy(out, v.names)
	return out
}

// Len returns the number of defined variables.
func (v *Variables) Len() int {
	return len(v.names)
}

// MarshalJSON implements json.Marshaler, emitting an object whose keys keep
// insertion order.
func (v Variables) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range v.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(v.values[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
