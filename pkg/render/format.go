package render

// Output formats.
const (
	FormatText = "text"
	FormatHTML = "html"
	FormatXLSX = "xlsx"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of formats accepted by [Render].
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatHTML: true,
	FormatXLSX: true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

var contentTypes = map[string]string{
	FormatText: "text/plain; charset=utf-8",
	FormatHTML: "text/html; charset=utf-8",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatJSON: "application/json",
	FormatDOT:  "text/vnd.graphviz",
	FormatSVG:  "image/svg+xml",
}

var extensions = map[string]string{
	FormatText: ".txt",
	FormatHTML: ".html",
	FormatXLSX: ".xlsx",
	FormatJSON: ".json",
	FormatDOT:  ".dot",
	FormatSVG:  ".svg",
}

// ContentType returns the MIME type of format, or application/octet-stream.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Extension returns the file extension of format including the dot.
func Extension(format string) string {
	return extensions[format]
}

// IsBinary reports whether format produces non-text output.
func IsBinary(format string) bool {
	return format == FormatXLSX
}
