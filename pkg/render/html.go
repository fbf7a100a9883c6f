package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/matzehuels/nestedheaders/pkg/matrix"
)

// HTML renders m as a table head: one row per level and one th per root cell,
// spanning its visible columns. Placeholders emit nothing.
func HTML(m matrix.Matrix) string {
	var b strings.Builder
	b.WriteString("<table class=\"nested-headers\">\n  <thead>\n")
	for level := range m.Levels() {
		b.WriteString("    <tr>\n")
		for _, cell := range m.Roots(level) {
			attrs := fmt.Sprintf(" data-level=\"%d\" data-column=\"%d\"", cell.HeaderLevel, cell.ColumnIndex)
			if cell.Colspan > 1 {
				attrs += fmt.Sprintf(" colspan=\"%d\"", cell.Colspan)
			}
			if class := htmlClass(cell); class != "" {
				attrs += fmt.Sprintf(" class=\"%s\"", class)
			}

			label := html.EscapeString(cell.Label)
			label = strings.ReplaceAll(label, "\n", "<br>")
			fmt.Fprintf(&b, "      <th%s>%s</th>\n", attrs, label)
		}
		b.WriteString("    </tr>\n")
	}
	b.WriteString("  </thead>\n</table>\n")
	return b.String()
}

func htmlClass(c matrix.Cell) string {
	var classes []string
	if c.Collapsible {
		classes = append(classes, "collapsible")
	}
	if c.IsCollapsed {
		classes = append(classes, "collapsed")
	}
	if class, ok := c.Meta["class"].(string); ok && class != "" {
		classes = append(classes, class)
	}
	return strings.Join(classes, " ")
}
