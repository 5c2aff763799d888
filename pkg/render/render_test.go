package render

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
)

var sample = grid.Layout{
	{ID: "chart", X: 0, Y: 0, Width: 4, Height: 2},
	{ID: "status", X: 4, Y: 0, Width: 2, Height: 1},
	{ID: "footer", X: 0, Y: 2, Width: 6, Height: 1, Fixed: true},
}

var sampleMetrics = grid.Metrics{ColumnWidth: 86.5, RowHeight: 100, Padding: [2]float64{10, 10}, Columns: 6}

func TestText(t *testing.T) {
	want := `AAAABB
AAAA..
CCCCCC

A  chart   (0,0) 4x2
B  status  (4,0) 2x1
C  footer  (0,2) 6x1 fixed
`
	if got := Text(sample, 6, TextOptions{}); got != want {
		t.Errorf("Text() =\n%s\nwant\n%s", got, want)
	}
}

func TestTextOverlapAndAutoHeight(t *testing.T) {
	l := grid.Layout{
		{ID: "a", X: 0, Y: 0, Width: 2, Height: 1},
		{ID: "b", X: 1, Y: 0, Width: 2, Height: 1},
		{ID: "c", X: 3, Y: 0, Width: 1, AutoHeight: true},
	}
	got := Text(l, 4, TextOptions{})
	lines := strings.Split(got, "\n")
	if lines[0] != "A!BC" {
		t.Errorf("row 0 = %q, want A!BC", lines[0])
	}
	if lines[1] != "...C" {
		t.Errorf("row 1 = %q, want ...C", lines[1])
	}
	if !strings.Contains(got, "(3,0) 1xauto") {
		t.Errorf("legend should mark auto height:\n%s", got)
	}
}

func TestTextEmpty(t *testing.T) {
	if got := Text(nil, 0, TextOptions{}); got != "" {
		t.Errorf("Text(nil) = %q, want empty", got)
	}
}

func TestSVG(t *testing.T) {
	out := string(SVG(sample, sampleMetrics))

	if !strings.HasPrefix(out, "<?xml") || !strings.Contains(out, "<svg") {
		t.Fatalf("not an svg document:\n%s", out)
	}
	if n := strings.Count(out, "<rect"); n != len(sample)+1 {
		t.Errorf("rect count = %d, want %d", n, len(sample)+1)
	}
	if !strings.Contains(out, `id="chart"`) {
		t.Error("widgets should be grouped by id")
	}
	if !strings.Contains(out, "stroke-dasharray") {
		t.Error("fixed widgets should be dashed")
	}
	if !strings.Contains(out, `x="10" y="10" width="376" height="210"`) {
		t.Errorf("chart rectangle missing:\n%s", out)
	}
}

func TestSVGEscapesIDs(t *testing.T) {
	out := string(SVG(grid.Layout{{ID: `a"<b>`, Width: 1, Height: 1}}, sampleMetrics))
	if strings.Contains(out, `a"<b>`) {
		t.Errorf("id not escaped:\n%s", out)
	}
}

func TestToDOT(t *testing.T) {
	l := append(sample.Clone(), grid.Widget{ID: "clash", X: 1, Y: 1, Width: 1, Height: 1})
	dot := ToDOT(l)

	for _, want := range []string{
		`"chart" -> "footer";`,
		`"chart" -> "clash" [dir=none, color=red`,
		`"footer" [label=`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `"status" -> "footer"`) {
		t.Error("status does not touch footer")
	}
}

func TestSupportEdges(t *testing.T) {
	l := grid.Layout{
		{ID: "a", X: 0, Y: 0, Width: 2, Height: 2},
		{ID: "b", X: 1, Y: 2, Width: 2, Height: 1},
		{ID: "c", X: 2, Y: 0, Width: 2, Height: 1},
		{ID: "d", X: 1, Y: 1, Width: 1, Height: 1},
		{ID: "e", X: 4, Y: 3, Width: 1, Height: 1},
	}
	want := []Edge{
		{From: "a", To: "b"},
		{From: "a", To: "d", Clash: true},
		{From: "d", To: "b"},
	}
	got := SupportEdges(l)
	if !slices.Equal(got, want) {
		t.Errorf("SupportEdges() = %+v, want %+v", got, want)
	}
}

func TestFitSVG(t *testing.T) {
	in := []byte(`<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 44.00" width="62" height="44"><g/></svg>`
	if got := string(fitSVG(in)); got != want {
		t.Errorf("fitSVG() = %s", got)
	}
	plain := []byte(`<svg><g/></svg>`)
	if got := fitSVG(plain); !bytes.Equal(got, plain) {
		t.Errorf("fitSVG() without viewBox = %s", got)
	}
}

func TestGraphSVG(t *testing.T) {
	out, err := GraphSVG(sample)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(out, []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0`)) {
		t.Errorf("viewBox not normalized:\n%s", out)
	}
}

func TestRender(t *testing.T) {
	opts := Options{Metrics: sampleMetrics}
	all, err := RenderAll(sample, []string{FormatJSON, FormatYAML, FormatText, FormatDOT}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(all[FormatJSON], []byte(`"widgets"`)) {
		t.Errorf("json = %s", all[FormatJSON])
	}
	if !bytes.HasPrefix(all[FormatYAML], []byte("widgets:")) {
		t.Errorf("yaml = %s", all[FormatYAML])
	}

	if _, err := Render(sample, "png", opts); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("png err = %v", err)
	}
	if err := ValidateFormats([]string{"svg", "TXT"}); err != nil {
		t.Errorf("ValidateFormats: %v", err)
	}
	if err := ValidateFormats([]string{"pdf"}); err == nil {
		t.Error("pdf should be rejected")
	}
}

func TestExtension(t *testing.T) {
	for format, want := range map[string]string{
		FormatSVG:   ".svg",
		FormatText:  ".txt",
		FormatGraph: ".graph.svg",
		FormatYAML:  ".yaml",
	} {
		if got := Extension(format); got != want {
			t.Errorf("Extension(%s) = %s, want %s", format, got, want)
		}
	}
}
