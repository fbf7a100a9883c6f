// Package pkg provides the core libraries for nestedheaders.
//
// # Overview
//
// nestedheaders turns a multi-level column header definition into a header
// matrix: one row per header level, one slot per leaf column. Each slot holds
// either the settings of the header that is rendered there (a root cell) or a
// placeholder covered by a header to its left. Hidden leaf columns shrink the
// effective colspan of the headers above them; a header whose first columns
// are hidden moves to its first visible column.
//
// # Architecture
//
// The typical data flow:
//
//	Definition file (JSON, TOML, YAML)
//	         ↓
//	    [io] package (decode + validate)
//	         ↓
//	    [headers] package (forest of header trees)
//	         ↓
//	    [state] package (hidden columns, collapsed headers)
//	         ↓
//	    [matrix] package (header matrix)
//	         ↓
//	    [render] package (text, HTML, XLSX, JSON, DOT, SVG)
//
// # Quick Start
//
//	def, _ := io.Import("headers.yaml")
//	def.Hidden = []int{2}
//
//	f, _ := def.Forest()
//	m, _ := matrix.GenerateStrict(headers.ApplyHidden(f, def.Hidden))
//	fmt.Println(render.HTML(m))
//
// # Main Packages
//
// [tree] - Generic ordered tree with pre-order traversal.
//
// [headers] - Header definitions, the forest builder, node data, the settings
// factory, hiding and collapsing, and structural validation.
//
// [matrix] - The matrix generator. [matrix.Generate] accepts any tree
// representation implementing [matrix.HeaderTree].
//
// [state] - Thread-safe view state over one definition.
//
// [io] - Definition import and export with struct-tag validation.
//
// [render] - Output sinks. [render/nodelink] draws the forest with Graphviz.
//
// [pipeline] - Prepare → generate → render with caching, shared by the CLI
// and the HTTP API.
//
// [cache] - File, Redis and null caches plus key derivation.
//
// [observability] - Hooks for pipeline, cache and HTTP events, with a
// Prometheus implementation.
//
// [errors] - Structured error codes.
//
// # Testing
//
//	go test ./...                # All tests
//	go test ./pkg/matrix/...     # Specific package
package pkg
