package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/nestedheaders/pkg/headers"
)

func buildForest(t *testing.T) headers.Forest {
	t.Helper()
	f, err := headers.Build([][]headers.Header{
		{{Label: "Sales", Colspan: 2, Meta: headers.Metadata{"unit": "EUR"}}, {Label: "Notes"}},
		{{Label: "Jan"}, {Label: "Feb"}, {}},
	}, 0)
	if err != nil {
		t.Fatal(err)
	}
	return headers.ApplyHidden(f, []int{2})
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(buildForest(t), Options{})

	for _, want := range []string{
		`"L0C0" [label="Sales"]`,
		`"L1C1" [label="Feb"]`,
		`"L0C0" -> "L1C0";`,
		`"L0C0" -> "L1C1";`,
		`"L0C2" -> "L1C2";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s:\n%s", want, dot)
		}
	}
	if !strings.Contains(dot, `"L0C2" [label="Notes", style="rounded,filled,dashed"`) {
		t.Errorf("hidden header not dashed:\n%s", dot)
	}
	if !strings.HasPrefix(dot, "digraph G {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("malformed DOT:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(buildForest(t), Options{Detailed: true})

	for _, want := range []string{
		`label="Sales\ncolumns: 0-1\nunit: EUR"`,
		`label="Notes\ncolumns: 2-2\nhidden: [2]"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s:\n%s", want, dot)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.00 50.00" xmlns="x"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if out != want {
		t.Errorf("normalizeViewBox = %s, want %s", out, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("svg without viewBox changed: %s", got)
	}
}
