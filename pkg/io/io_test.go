package io

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/nestedheaders/pkg/errors"
	"github.com/matzehuels/nestedheaders/pkg/headers"
)

const jsonDef = `{
  "columns": 4,
  "rows": [
    [{"label": "Sales", "colspan": 3, "collapsible": true, "meta": {"class": "wide"}}, "Notes"],
    [{"label": "H1", "colspan": 2}, "H2", ""],
    ["Jan", "Feb", "Mar", ""]
  ],
  "hidden": [1],
  "collapsed": [{"level": 0, "column": 0}]
}`

const tomlDef = `
columns = 4
hidden = [1]
rows = [
  [{label = "Sales", colspan = 3, collapsible = true, meta = {class = "wide"}}, "Notes"],
  [{label = "H1", colspan = 2}, "H2", ""],
  ["Jan", "Feb", "Mar", ""],
]

[[collapsed]]
level = 0
column = 0
`

const yamlDef = `
columns: 4
rows:
  - [{label: Sales, colspan: 3, collapsible: true, meta: {class: wide}}, Notes]
  - [{label: H1, colspan: 2}, H2, ""]
  - [Jan, Feb, Mar, ""]
hidden: [1]
collapsed:
  - {level: 0, column: 0}
`

func checkDefinition(t *testing.T, def Definition) {
	t.Helper()
	if def.Columns != 4 {
		t.Errorf("Columns = %d, want 4", def.Columns)
	}
	if len(def.Rows) != 3 {
		t.Fatalf("len(Rows) = %d, want 3", len(def.Rows))
	}
	sales := def.Rows[0][0]
	if sales.Label != "Sales" || sales.Colspan != 3 || !sales.Collapsible {
		t.Errorf("Rows[0][0] = %+v", sales)
	}
	if sales.Meta["class"] != "wide" {
		t.Errorf("Rows[0][0].Meta = %v", sales.Meta)
	}
	if got := def.Rows[0][1]; got.Label != "Notes" || got.Colspan != 0 {
		t.Errorf("bare label decoded as %+v", got)
	}
	if got := def.Rows[2][3]; got.Label != "" {
		t.Errorf("empty label decoded as %+v", got)
	}
	if len(def.Hidden) != 1 || def.Hidden[0] != 1 {
		t.Errorf("Hidden = %v, want [1]", def.Hidden)
	}
	if len(def.Collapsed) != 1 || def.Collapsed[0] != (headers.Position{}) {
		t.Errorf("Collapsed = %v", def.Collapsed)
	}
}

func TestRead(t *testing.T) {
	tests := []struct {
		format string
		input  string
	}{
		{FormatJSON, jsonDef},
		{FormatTOML, tomlDef},
		{FormatYAML, yamlDef},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			def, err := Read(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			checkDefinition(t, def)
		})
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name   string
		format string
		input  string
		code   errors.Code
	}{
		{"malformed json", FormatJSON, `{"rows": [`, errors.ErrCodeInvalidFormat},
		{"malformed toml", FormatTOML, `rows = [`, errors.ErrCodeInvalidFormat},
		{"malformed yaml", FormatYAML, "rows: [\n", errors.ErrCodeInvalidFormat},
		{"unknown header field", FormatJSON, `{"rows": [[{"label": "A", "width": 3}]]}`, errors.ErrCodeInvalidFormat},
		{"negative columns", FormatJSON, `{"columns": -1, "rows": []}`, errors.ErrCodeInvalidInput},
		{"negative colspan", FormatJSON, `{"rows": [[{"label": "A", "colspan": -2}]]}`, errors.ErrCodeInvalidInput},
		{"negative hidden", FormatYAML, "rows: [[A]]\nhidden: [-1]\n", errors.ErrCodeInvalidInput},
		{"negative collapsed", FormatJSON, `{"rows": [["A"]], "collapsed": [{"level": -1, "column": 0}]}`, errors.ErrCodeInvalidInput},
		{"columns above limit", FormatJSON, `{"columns": 1125899906842624, "rows": []}`, errors.ErrCodeInvalidInput},
		{"colspan above limit", FormatJSON, `{"rows": [[{"label": "A", "colspan": 1125899906842624}]]}`, errors.ErrCodeInvalidInput},
		{"too many levels", FormatJSON, `{"rows": [` + strings.Repeat(`["A"],`, 64) + `["A"]]}`, errors.ErrCodeInvalidInput},
		{"long label", FormatJSON, `{"rows": [["` + strings.Repeat("x", 257) + `"]]}`, errors.ErrCodeInvalidInput},
		{"unknown format", "csv", `a,b`, errors.ErrCodeUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), tt.format)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestValidationMessageUsesFieldPath(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"rows": [["A", {"label": "B", "colspan": -1}]]}`))
	if err == nil {
		t.Fatal("expected error")
	}
	if msg := errors.UserMessage(err); !strings.Contains(msg, "rows[0][1].colspan must be at least 0") {
		t.Errorf("message = %q", msg)
	}
}

func TestImportExportRoundTrip(t *testing.T) {
	src, err := ReadJSON(strings.NewReader(jsonDef))
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"def.json", "def.toml", "def.yaml", "def.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := Export(src, path); err != nil {
				t.Fatalf("Export: %v", err)
			}
			def, err := Import(path)
			if err != nil {
				t.Fatalf("Import: %v", err)
			}
			checkDefinition(t, def)
		})
	}
}

func TestImportErrors(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "def.txt")
	if err := os.WriteFile(txt, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"empty path", "", errors.ErrCodeInvalidPath},
		{"missing file", filepath.Join(dir, "missing.json"), errors.ErrCodeFileNotFound},
		{"unknown extension", txt, errors.ErrCodeUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Import(tt.path)
			if !errors.Is(err, tt.code) {
				t.Errorf("Import(%q) error = %v, want code %s", tt.path, err, tt.code)
			}
		})
	}
}

func TestWriteJSONUsesObjectForm(t *testing.T) {
	def := Definition{Rows: [][]headers.Header{{{Label: "A", Colspan: 2}}, {{Label: "a"}, {Label: "b"}}}}

	var buf bytes.Buffer
	if err := WriteJSON(def, &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `"label": "a"`) {
		t.Errorf("expected object form, got:\n%s", out)
	}
	if strings.Contains(out, "hidden") || strings.Contains(out, "columns") {
		t.Errorf("empty fields should be omitted:\n%s", out)
	}
}

func TestDefinitionForest(t *testing.T) {
	def, err := ReadYAML(strings.NewReader(yamlDef))
	if err != nil {
		t.Fatal(err)
	}
	f, err := def.Forest()
	if err != nil {
		t.Fatal(err)
	}
	if f.Columns() != 4 || f.Levels() != 3 {
		t.Errorf("forest is %d columns x %d levels, want 4 x 3", f.Columns(), f.Levels())
	}
}

func TestExampleDefinitions(t *testing.T) {
	var paths []string
	for _, pattern := range []string{"*.json", "*.yaml"} {
		matches, err := filepath.Glob(filepath.Join("..", "..", "examples", pattern))
		if err != nil {
			t.Fatal(err)
		}
		paths = append(paths, matches...)
	}
	if len(paths) == 0 {
		t.Skip("no example definitions")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			def, err := Import(path)
			if err != nil {
				t.Fatalf("Import() error: %v", err)
			}
			if _, err := def.Forest(); err != nil {
				t.Errorf("Forest() error: %v", err)
			}
		})
	}
}

func TestWriteTOMLReadsBack(t *testing.T) {
	def := Definition{
		Rows: [][]headers.Header{
			{
				{Label: `Say "hi"` + "\n", Colspan: 2, Meta: headers.Metadata{
					"style":   map[string]any{"color": "red"},
					"tags":    []any{"a", "b"},
					"weight":  1.0,
					"rank":    2,
					"odd key": true,
					"unset":   nil,
				}},
				{Label: "Notes"},
			},
			{{Label: "Q1"}, {Label: "Q2", Collapsible: true}, {}},
		},
	}

	var buf bytes.Buffer
	if err := WriteTOML(def, &buf); err != nil {
		t.Fatal(err)
	}
	got, err := ReadTOML(&buf)
	if err != nil {
		t.Fatalf("ReadTOML: %v\n%s", err, buf.String())
	}

	first := got.Rows[0][0]
	if first.Label != def.Rows[0][0].Label || first.Colspan != 2 {
		t.Errorf("Rows[0][0] = %+v", first)
	}
	style, ok := first.Meta["style"].(map[string]any)
	if !ok || style["color"] != "red" {
		t.Errorf("style = %#v", first.Meta["style"])
	}
	if tags, ok := first.Meta["tags"].([]any); !ok || len(tags) != 2 || tags[1] != "b" {
		t.Errorf("tags = %#v", first.Meta["tags"])
	}
	if first.Meta["weight"] != 1.0 || first.Meta["rank"] != int64(2) || first.Meta["odd key"] != true {
		t.Errorf("Meta = %#v", first.Meta)
	}
	if _, ok := first.Meta["unset"]; ok {
		t.Error("nil meta values should be dropped")
	}
	if h := got.Rows[0][1]; h.Label != "Notes" || h.Colspan != 0 {
		t.Errorf("Rows[0][1] = %+v", h)
	}
	if h := got.Rows[1][1]; h.Label != "Q2" || !h.Collapsible {
		t.Errorf("Rows[1][1] = %+v", h)
	}
	if len(got.Rows[1]) != 3 || got.Rows[1][2].Label != "" {
		t.Errorf("Rows[1] = %+v", got.Rows[1])
	}
}

func TestReadYAMLNestedMetaEncodesAsJSON(t *testing.T) {
	def, err := ReadYAML(strings.NewReader("rows:\n  - [{label: A, meta: {style: {color: red}, list: [{k: v}]}}]\n"))
	if err != nil {
		t.Fatal(err)
	}
	style, ok := def.Rows[0][0].Meta["style"].(map[string]any)
	if !ok || style["color"] != "red" {
		t.Errorf("style = %#v", def.Rows[0][0].Meta["style"])
	}
	if _, err := json.Marshal(def); err != nil {
		t.Errorf("json.Marshal: %v", err)
	}
}
