package headers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/nestedheaders/pkg/errors"
	"github.com/matzehuels/nestedheaders/pkg/tree"
)

func h(label string, colspan int) Header { return Header{Label: label, Colspan: colspan} }

func labels(row []Header) []string {
	out := make([]string, len(row))
	for i, x := range row {
		out[i] = x.Label
	}
	return out
}

func spans(row []Header) []int {
	out := make([]int, len(row))
	for i, x := range row {
		out[i] = x.Colspan
	}
	return out
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		rows        [][]Header
		columns     int
		wantColumns int
		wantLabels  [][]string
		wantSpans   [][]int
	}{
		{
			name:        "infers column count",
			rows:        [][]Header{{h("A", 3)}, {h("B", 2), h("C", 0)}},
			wantColumns: 3,
			wantLabels:  [][]string{{"A"}, {"B", "C"}},
			wantSpans:   [][]int{{3}, {2, 1}},
		},
		{
			name:        "pads short rows",
			rows:        [][]Header{{h("A", 2)}, {h("B", 1)}},
			columns:     4,
			wantColumns: 4,
			wantLabels:  [][]string{{"A", "", ""}, {"B", "", "", ""}},
			wantSpans:   [][]int{{2, 1, 1}, {1, 1, 1, 1}},
		},
		{
			name:        "trims overflowing header",
			rows:        [][]Header{{h("A", 5)}},
			columns:     3,
			wantColumns: 3,
			wantLabels:  [][]string{{"A"}},
			wantSpans:   [][]int{{3}},
		},
		{
			name:        "drops headers past the last column",
			rows:        [][]Header{{h("A", 1), h("B", 1), h("C", 1), h("D", 1)}},
			columns:     2,
			wantColumns: 2,
			wantLabels:  [][]string{{"A", "B"}},
			wantSpans:   [][]int{{1, 1}},
		},
		{
			name:        "clips headers crossing the parent edge",
			rows:        [][]Header{{h("A", 2), h("B", 2)}, {h("C", 3), h("D", 1)}},
			wantColumns: 4,
			wantLabels:  [][]string{{"A", "B"}, {"C", "D", ""}},
			wantSpans:   [][]int{{2, 2}, {2, 1, 1}},
		},
		{
			name:        "non-positive colspan becomes one",
			rows:        [][]Header{{h("A", -2), h("B", 0)}},
			wantColumns: 2,
			wantLabels:  [][]string{{"A", "B"}},
			wantSpans:   [][]int{{1, 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, columns := Normalize(tt.rows, tt.columns)
			assert.Equal(t, tt.wantColumns, columns)
			require.Len(t, got, len(tt.wantLabels))
			for level := range got {
				assert.Equal(t, tt.wantLabels[level], labels(got[level]), "labels of level %d", level)
				assert.Equal(t, tt.wantSpans[level], spans(got[level]), "spans of level %d", level)
			}
		})
	}
}

func TestNormalizeDoesNotModifyInput(t *testing.T) {
	rows := [][]Header{{{Label: "A", Colspan: 9, Meta: Metadata{"class": "x"}}}}
	got, _ := Normalize(rows, 2)

	got[0][0].Meta["class"] = "y"
	assert.Equal(t, 9, rows[0][0].Colspan)
	assert.Equal(t, "x", rows[0][0].Meta["class"])
}

func salesForest(t *testing.T) Forest {
	t.Helper()
	f, err := Build([][]Header{
		{{Label: "Sales", Colspan: 3, Collapsible: true}},
		{h("Q1", 2), h("Q2", 1)},
	}, 0)
	require.NoError(t, err)
	return f
}

func TestBuild(t *testing.T) {
	f := salesForest(t)
	require.Len(t, f, 1)
	assert.Equal(t, 3, f.Columns())
	assert.Equal(t, 2, f.Levels())
	assert.Equal(t, 3, f.Len())

	root := f[0].Data
	assert.Equal(t, "Sales", root.Label)
	assert.Equal(t, 0, root.ColumnIndex)
	assert.Equal(t, 3, root.OrigColspan)
	assert.Equal(t, 3, root.Colspan)
	assert.Equal(t, 0, root.HeaderLevel)
	assert.True(t, root.Collapsible)

	children := f[0].Children()
	require.Len(t, children, 2)
	assert.Equal(t, NodeData{Label: "Q1", ColumnIndex: 0, OrigColspan: 2, Colspan: 2, HeaderLevel: 1}, children[0].Data)
	assert.Equal(t, NodeData{Label: "Q2", ColumnIndex: 2, OrigColspan: 1, Colspan: 1, HeaderLevel: 1}, children[1].Data)
	assert.NoError(t, f.Validate())
}

func TestBuildThreeLevels(t *testing.T) {
	f, err := Build([][]Header{
		{h("A", 4)},
		{h("B", 2), h("C", 2)},
		{h("D", 1), h("E", 1), h("F", 1), h("G", 1)},
	}, 0)
	require.NoError(t, err)

	var order []string
	f.WalkDown(func(n *Node) { order = append(order, n.Data.Label) })
	assert.Equal(t, []string{"A", "B", "D", "E", "C", "F", "G"}, order)

	c := f[0].Children()[1]
	assert.Equal(t, []string{"F", "G"}, []string{c.Children()[0].Data.Label, c.Children()[1].Data.Label})
	assert.NoError(t, f.Validate())
}

func TestBuildMultipleRoots(t *testing.T) {
	f, err := Build([][]Header{{h("A", 2), h("B", 1)}, {h("a1", 1), h("a2", 1), h("b1", 1)}}, 0)
	require.NoError(t, err)
	require.Len(t, f, 2)
	assert.Equal(t, 2, f[1].Data.ColumnIndex)
	assert.Equal(t, "b1", f[1].Children()[0].Data.Label)
}

func TestBuildEmpty(t *testing.T) {
	f, err := Build(nil, 0)
	require.NoError(t, err)
	assert.Empty(t, f)
	assert.Equal(t, 0, f.Levels())
}

func TestBuildRejectsControlCharacters(t *testing.T) {
	_, err := Build([][]Header{{h("bad\x01", 1)}}, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidHeader))
}

func TestBuildRejectsOversizedDefinitions(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]Header
		columns int
	}{
		{"explicit columns", [][]Header{{h("A", 1)}}, 1 << 50},
		{"inferred width", [][]Header{{h("A", errors.MaxColumns), h("B", 1)}}, 0},
		{"overflowing colspans", [][]Header{{h("A", int(^uint(0)>>1)), h("B", int(^uint(0)>>1))}}, 0},
		{"too many levels", make([][]Header, errors.MaxLevels+1), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.rows, tt.columns)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
		})
	}
}

func TestBuildAcceptsMaxColumns(t *testing.T) {
	f, err := Build([][]Header{{h("All", errors.MaxColumns)}}, 0)
	require.NoError(t, err)
	assert.Equal(t, errors.MaxColumns, f.Columns())
}

func TestNodeAt(t *testing.T) {
	f := salesForest(t)

	n, ok := f.NodeAt(1, 1)
	require.True(t, ok)
	assert.Equal(t, "Q1", n.Data.Label)

	n, ok = f.NodeAt(0, 2)
	require.True(t, ok)
	assert.Equal(t, "Sales", n.Data.Label)

	_, ok = f.NodeAt(2, 0)
	assert.False(t, ok)
	_, ok = f.NodeAt(0, 3)
	assert.False(t, ok)
}

func TestApplyHidden(t *testing.T) {
	f := salesForest(t)

	hidden := ApplyHidden(f, []int{1, 1, 7})
	sales := hidden[0].Data
	assert.Equal(t, []int{1}, sales.CrossHiddenColumns)
	assert.Equal(t, 2, sales.Colspan)
	assert.False(t, sales.IsHidden)

	q1, q2 := hidden[0].Children()[0].Data, hidden[0].Children()[1].Data
	assert.Equal(t, []int{1}, q1.CrossHiddenColumns)
	assert.Equal(t, 1, q1.Colspan)
	assert.Nil(t, q2.CrossHiddenColumns)
	assert.NoError(t, hidden.Validate())

	assert.Nil(t, f[0].Data.CrossHiddenColumns, "source forest must be untouched")
	assert.Equal(t, 3, f[0].Data.Colspan)
}

func TestApplyHiddenWholeSpan(t *testing.T) {
	f := ApplyHidden(salesForest(t), []int{2})
	q2 := f[0].Children()[1].Data
	assert.True(t, q2.IsHidden)
	assert.Equal(t, 0, q2.Colspan)
	assert.Equal(t, []int{2}, q2.CrossHiddenColumns)

	f = ApplyHidden(f, nil)
	assert.False(t, f[0].Children()[1].Data.IsHidden, "re-applying replaces the hidden set")
}

func TestCollapsedColumns(t *testing.T) {
	f, err := Build([][]Header{
		{{Label: "A", Colspan: 4, Collapsible: true}, {Label: "X", Colspan: 3, Collapsible: true}},
		{h("B", 2), h("C", 2), h("x", 3)},
	}, 0)
	require.NoError(t, err)

	cols, err := CollapsedColumns(f, []Position{{Level: 0, Column: 3}})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, cols)

	cols, err = CollapsedColumns(f, []Position{{Level: 0, Column: 5}, {Level: 0, Column: 0}})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, cols, "X has a single child spanning everything")

	_, err = CollapsedColumns(f, []Position{{Level: 1, Column: 0}})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	_, err = CollapsedColumns(f, []Position{{Level: 4, Column: 0}})
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestCollapsedColumnsLeaf(t *testing.T) {
	f, err := Build([][]Header{{{Label: "Wide", Colspan: 3, Collapsible: true}}}, 0)
	require.NoError(t, err)

	cols, err := CollapsedColumns(f, []Position{{Level: 0, Column: 1}})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, cols)
}

func TestApplyState(t *testing.T) {
	f, err := Build([][]Header{
		{{Label: "A", Colspan: 4, Collapsible: true}},
		{h("B", 2), h("C", 2)},
	}, 0)
	require.NoError(t, err)

	got, err := ApplyState(f, []int{0}, []Position{{Level: 0, Column: 0}})
	require.NoError(t, err)
	require.NoError(t, got.Validate())

	a := got[0].Data
	assert.True(t, a.IsCollapsed)
	assert.Equal(t, []int{0, 2, 3}, a.CrossHiddenColumns)
	assert.Equal(t, 1, a.Colspan)

	b, c := got[0].Children()[0].Data, got[0].Children()[1].Data
	assert.False(t, b.IsCollapsed)
	assert.Equal(t, 1, b.Colspan)
	assert.True(t, c.IsHidden)

	_, err = ApplyState(f, nil, []Position{{Level: 1, Column: 0}})
	assert.Error(t, err)
}

func TestValidateRejectsMalformedForests(t *testing.T) {
	node := func(label string, col, span, level int) NodeData {
		return NodeData{Label: label, ColumnIndex: col, OrigColspan: span, Colspan: span, HeaderLevel: level}
	}

	tests := []struct {
		name  string
		build func() Forest
	}{
		{
			name:  "root below level 0",
			build: func() Forest { return Forest{tree.New(node("A", 0, 1, 1))} },
		},
		{
			name: "gap between roots",
			build: func() Forest {
				return Forest{tree.New(node("A", 0, 1, 0)), tree.New(node("B", 2, 1, 0))}
			},
		},
		{
			name:  "empty span",
			build: func() Forest { return Forest{tree.New(node("A", 0, 0, 0))} },
		},
		{
			name: "children do not cover parent",
			build: func() Forest {
				root := tree.New(node("A", 0, 3, 0))
				root.AddChild(node("B", 0, 2, 1))
				return Forest{root}
			},
		},
		{
			name: "child skips a level",
			build: func() Forest {
				root := tree.New(node("A", 0, 1, 0))
				root.AddChild(node("B", 0, 1, 2))
				return Forest{root}
			},
		},
		{
			name: "overlapping children",
			build: func() Forest {
				root := tree.New(node("A", 0, 2, 0))
				root.AddChild(node("B", 0, 2, 1))
				root.AddChild(node("C", 1, 1, 1))
				return Forest{root}
			},
		},
		{
			name: "hidden column outside span",
			build: func() Forest {
				d := node("A", 0, 2, 0)
				d.CrossHiddenColumns, d.Colspan = []int{5}, 1
				return Forest{tree.New(d)}
			},
		},
		{
			name: "unsorted hidden columns",
			build: func() Forest {
				d := node("A", 0, 3, 0)
				d.CrossHiddenColumns, d.Colspan = []int{2, 1}, 1
				return Forest{tree.New(d)}
			},
		},
		{
			name: "colspan disagrees with hidden columns",
			build: func() Forest {
				d := node("A", 0, 3, 0)
				d.CrossHiddenColumns = []int{1}
				return Forest{tree.New(d)}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build().Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidHeader), "got %v", err)
		})
	}
}

func TestDefaultFactory(t *testing.T) {
	d := NodeData{
		Label: "Q1", ColumnIndex: 4, OrigColspan: 3, Colspan: 2, HeaderLevel: 1,
		CrossHiddenColumns: []int{5}, Collapsible: true, Meta: Metadata{"class": "q"},
	}

	def := DefaultFactory{}.Default(d)
	assert.Equal(t, Settings{
		Label: "Q1", Colspan: 2, OrigColspan: 3, HeaderLevel: 1, ColumnIndex: 4,
		CrossHiddenColumns: []int{5}, Collapsible: true, Meta: Metadata{"class": "q"},
	}, def)

	def.CrossHiddenColumns[0] = 99
	def.Meta["class"] = "changed"
	assert.Equal(t, []int{5}, d.CrossHiddenColumns)
	assert.Equal(t, "q", d.Meta["class"])

	ph := DefaultFactory{}.Placeholder(d)
	assert.Equal(t, Settings{
		Colspan: 1, OrigColspan: 1, HeaderLevel: 1, ColumnIndex: 4,
		IsPlaceholder: true, Meta: Metadata{"class": "q"},
	}, ph)
}

func TestHeaderUnmarshalJSON(t *testing.T) {
	var rows [][]Header
	err := json.Unmarshal([]byte(`[["Sales"], [{"label": "Q1", "colspan": 2, "collapsible": true}, "Q2"]]`), &rows)
	require.NoError(t, err)

	assert.Equal(t, [][]Header{
		{{Label: "Sales"}},
		{{Label: "Q1", Colspan: 2, Collapsible: true}, {Label: "Q2"}},
	}, rows)

	var bad Header
	assert.Error(t, json.Unmarshal([]byte(`42`), &bad))
}

func TestHeaderFromAny(t *testing.T) {
	var got Header
	require.NoError(t, got.UnmarshalTOML(map[string]any{"label": "A", "colspan": int64(2), "meta": map[string]any{"k": "v"}}))
	assert.Equal(t, Header{Label: "A", Colspan: 2, Meta: Metadata{"k": "v"}}, got)

	require.NoError(t, got.UnmarshalTOML("B"))
	assert.Equal(t, Header{Label: "B"}, got)

	err := got.UnmarshalYAML(func(v any) error {
		*(v.(*any)) = map[any]any{"label": "C", "colspan": 3}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, Header{Label: "C", Colspan: 3}, got)

	assert.Error(t, got.UnmarshalTOML(map[string]any{"label": 1}))
	assert.Error(t, got.UnmarshalTOML(map[string]any{"colspan": 1.5}))
	assert.Error(t, got.UnmarshalTOML(map[string]any{"width": 3}))
	assert.Error(t, got.UnmarshalTOML([]any{}))
}

func TestHeaderMarshalTOML(t *testing.T) {
	tests := []struct {
		name   string
		header Header
		want   string
	}{
		{"bare label", Header{Label: "Notes"}, `"Notes"`},
		{"empty label", Header{}, `""`},
		{"colspan one", Header{Label: "A", Colspan: 1}, `"A"`},
		{"escaped label", Header{Label: "a\"b\\c\x01"}, `"a\"b\\c\u0001"`},
		{"spanning", Header{Label: "Sales", Colspan: 3}, `{label = "Sales", colspan = 3}`},
		{"collapsible", Header{Label: "Q1", Collapsible: true}, `{label = "Q1", collapsible = true}`},
		{
			"nested meta",
			Header{Label: "M", Meta: Metadata{"style": map[string]any{"color": "red"}, "n": 2, "x y": []any{1.5, "z"}}},
			`{label = "M", meta = {n = 2, style = {color = "red"}, "x y" = [1.5, "z"]}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.header.MarshalTOML()
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}

	_, err := Header{Label: "bad", Meta: Metadata{"ch": make(chan int)}}.MarshalTOML()
	assert.Error(t, err)
}

func TestHeaderUnmarshalYAMLNestedMeta(t *testing.T) {
	var got Header
	err := got.UnmarshalYAML(func(v any) error {
		*(v.(*any)) = map[any]any{
			"label": "A",
			"meta":  map[any]any{"style": map[any]any{"color": "red"}, "list": []any{map[any]any{1: "one"}}},
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, Metadata{
		"style": map[string]any{"color": "red"},
		"list":  []any{map[string]any{"1": "one"}},
	}, got.Meta)

	_, err = json.Marshal(got)
	assert.NoError(t, err)
}
