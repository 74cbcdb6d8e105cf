package record

import "fmt"

// Field identifies one of the three details a record holds.
type Field int

// The fields in the order they appear in a record.
const (
	Tech Field = iota
	Fitness
	English
)

// Fields lists every field in record order.
var Fields = [...]Field{Tech, Fitness, English}

// Key returns the stable lowercase key used in JSON and config files.
func (f Field) Key() string {
	switch f {
	case Tech:
		return "tech"
	case Fitness:
		return "fitness"
	case English:
		return "english"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// String implements fmt.Stringer.
func (f Field) String() string {
	return f.Key()
}

// ParseField returns the field for a key such as "tech".
func ParseField(key string) (Field, bool) {
	for _, f := range Fields {
		if f.Key() == key {
			return f, true
		}
	}
	return 0, false
}

// Value is a detail that may be absent from a record.
// The zero value is absent.
type Value struct {
	Text    string
	Present bool
}

// Present returns a Value holding text.
func Present(text string) Value {
	return Value{Text: text, Present: true}
}

// Or returns the text if present, otherwise fallback.
func (v Value) Or(fallback string) string {
	if v.Present {
		return v.Text
	}
	return fallback
}

// Details holds the decoded value of each field.
type Details [len(Fields)]Value

// Get returns the value stored for f.
func (d Details) Get(f Field) Value {
	return d[f]
}

// Set stores text for f.
func (d *Details) Set(f Field, text string) {
	d[f] = Present(text)
}

// Len returns how many fields are present.
func (d Details) Len() int {
	n := 0
	for _, v := range d {
		if v.Present {
			n++
		}
	}
	return n
}

// Map returns the present fields keyed by Field.Key.
func (d Details) Map() map[string]string {
	out := make(map[string]string, len(d))
	for _, f := range Fields {
		if v := d.Get(f); v.Present {
			out[f.Key()] = v.Text
		}
	}
	return out
}
