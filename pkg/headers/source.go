package headers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
)

// Header is one entry of a source header row.
//
// In JSON, TOML and YAML a header may also be written as a bare string, which
// is shorthand for a single-column header with that label.
type Header struct {
	Label       string   `json:"label" toml:"label" yaml:"label" validate:"max=256"`
	Colspan     int      `json:"colspan,omitempty" toml:"colspan,omitempty" yaml:"colspan,omitempty" validate:"gte=0,lte=4096"`
	Collapsible bool     `json:"collapsible,omitempty" toml:"collapsible,omitempty" yaml:"collapsible,omitempty"`
	Meta        Metadata `json:"meta,omitempty" toml:"meta,omitempty" yaml:"meta,omitempty"`
}

type headerFields Header

// UnmarshalJSON accepts either a header object or a bare label string.
func (h *Header) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		*h = Header{Label: label}
		return nil
	}
	var fields headerFields
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fields); err != nil {
		return fmt.Errorf("header: %w", err)
	}
	*h = Header(fields)
	return nil
}

// UnmarshalTOML accepts either an inline table or a bare label string.
func (h *Header) UnmarshalTOML(v any) error {
	return h.fromAny(v)
}

// UnmarshalYAML accepts either a mapping or a bare label string.
func (h *Header) UnmarshalYAML(unmarshal func(any) error) error {
	var v any
	if err := unmarshal(&v); err != nil {
		return err
	}
	return h.fromAny(v)
}

// fromAny decodes the generic value trees produced by the TOML and YAML decoders.
func (h *Header) fromAny(v any) error {
	switch t := v.(type) {
	case string:
		*h = Header{Label: t}
		return nil
	case map[string]any:
		return h.fromMap(t)
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = val
		}
		return h.fromMap(m)
	default:
		return fmt.Errorf("header: unsupported value of type %T", v)
	}
}

func (h *Header) fromMap(m map[string]any) error {
	out := Header{}
	for key, val := range m {
		switch key {
		case "label":
			s, ok := val.(string)
			if !ok {
				return fmt.Errorf("header: label must be a string, got %T", val)
			}
			out.Label = s
		case "colspan":
			n, ok := toInt(val)
			if !ok {
				return fmt.Errorf("header: colspan must be an integer, got %T", val)
			}
			out.Colspan = n
		case "collapsible":
			b, ok := val.(bool)
			if !ok {
				return fmt.Errorf("header: collapsible must be a boolean, got %T", val)
			}
			out.Collapsible = b
		case "meta":
			meta, err := toMetadata(val)
			if err != nil {
				return err
			}
			out.Meta = meta
		default:
			return fmt.Errorf("header: unknown field %q", key)
		}
	}
	*h = out
	return nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

func toMetadata(v any) (Metadata, error) {
	switch m := normalizeValue(v).(type) {
	case map[string]any:
		return Metadata(m), nil
	default:
		return nil, fmt.Errorf("header: meta must be a table, got %T", v)
	}
}

// normalizeValue copies a decoded value tree, converting the map[any]any
// mappings produced by the YAML decoder into map[string]any at every depth so
// the result encodes as JSON.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeValue(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeValue(val)
		}
		return out
	default:
		return v
	}
}

// span returns the effective colspan of a source header.
func (h Header) span() int {
	if h.Colspan < 1 {
		return 1
	}
	return h.Colspan
}

// Normalize returns a well-formed copy of rows together with the column count.
//
// If columns is zero it is inferred as the widest row. Every header gets a
// positive colspan; headers past the last column are dropped and the last one
// is trimmed to fit; headers crossing the right edge of their parent are
// clipped to it; short rows are padded with blank single-column headers. The
// input is not modified.
func Normalize(rows [][]Header, columns int) ([][]Header, int) {
	if columns <= 0 {
		for _, row := range rows {
			width := 0
			for _, h := range row {
				width += h.span()
			}
			columns = max(columns, width)
		}
	}

	out := make([][]Header, len(rows))
	var parentEnds []int // right edge of the parent span covering each column
	for level, row := range rows {
		normalized := make([]Header, 0, len(row))
		col := 0
		for _, h := range row {
			if col >= columns {
				break
			}
			limit := columns
			if level > 0 {
				limit = parentEnds[col]
			}
			h.Colspan = min(h.span(), limit-col)
			h.Meta = maps.Clone(h.Meta)
			normalized = append(normalized, h)
			col += h.Colspan
		}
		for ; col < columns; col++ {
			normalized = append(normalized, Header{Colspan: 1})
		}

		ends := make([]int, columns)
		col = 0
		for _, h := range normalized {
			for i := col; i < col+h.Colspan; i++ {
				ends[i] = col + h.Colspan
			}
			col += h.Colspan
		}
		parentEnds = ends
		out[level] = normalized
	}
	return out, columns
}
