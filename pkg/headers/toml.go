package headers

import (
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// MarshalTOML writes h in the form [Header.UnmarshalTOML] reads back: a bare
// string for a plain single-column header, an inline table otherwise. Zero
// fields are left out of the table.
func (h Header) MarshalTOML() ([]byte, error) {
	if h.Colspan <= 1 && !h.Collapsible && len(h.Meta) == 0 {
		return []byte(tomlString(h.Label)), nil
	}

	var b strings.Builder
	b.WriteString("{label = ")
	b.WriteString(tomlString(h.Label))
	if h.Colspan > 1 {
		fmt.Fprintf(&b, ", colspan = %d", h.Colspan)
	}
	if h.Collapsible {
		b.WriteString(", collapsible = true")
	}
	if len(h.Meta) > 0 {
		b.WriteString(", meta = ")
		if err := writeTOMLValue(&b, map[string]any(h.Meta)); err != nil {
			return nil, fmt.Errorf("header %q: %w", h.Label, err)
		}
	}
	b.WriteString("}")
	return []byte(b.String()), nil
}

func writeTOMLValue(b *strings.Builder, v any) error {
	switch t := normalizeValue(v).(type) {
	case string:
		b.WriteString(tomlString(t))
	case bool:
		b.WriteString(strconv.FormatBool(t))
	case float32:
		b.WriteString(tomlFloat(float64(t)))
	case float64:
		b.WriteString(tomlFloat(t))
	case map[string]any:
		b.WriteString("{")
		first := true
		for _, k := range slices.Sorted(maps.Keys(t)) {
			if t[k] == nil {
				continue
			}
			if !first {
				b.WriteString(", ")
			}
			first = false
			b.WriteString(tomlKey(k))
			b.WriteString(" = ")
			if err := writeTOMLValue(b, t[k]); err != nil {
				return err
			}
		}
		b.WriteString("}")
	case []any:
		b.WriteString("[")
		for i, e := range t {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := writeTOMLValue(b, e); err != nil {
				return err
			}
		}
		b.WriteString("]")
	default:
		rv := reflect.ValueOf(t)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			b.WriteString(strconv.FormatInt(rv.Int(), 10))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			b.WriteString(strconv.FormatUint(rv.Uint(), 10))
		case reflect.Slice, reflect.Array:
			elems := make([]any, rv.Len())
			for i := range elems {
				elems[i] = rv.Index(i).Interface()
			}
			return writeTOMLValue(b, elems)
		default:
			return fmt.Errorf("meta value of type %T cannot be written as TOML", v)
		}
	}
	return nil
}

func tomlFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func tomlKey(k string) string {
	if k == "" {
		return `""`
	}
	for _, r := range k {
		if !(r == '_' || r == '-' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return tomlString(k)
		}
	}
	return k
}

// tomlString quotes s as a TOML basic string.
func tomlString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04X`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
