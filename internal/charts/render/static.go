package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/aevon-lab/mediadash/internal/charts"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	imageWidth  = 1024
	imageHeight = 640
	barWidth    = 40
	barSpacing  = 12
)

// PNG draws the spec's primary chart as a raster image.
func PNG(w io.Writer, spec *charts.Spec) error {
	return renderStatic(w, spec, chart.PNG)
}

// SVG draws the spec's primary chart as a vector image.
func SVG(w io.Writer, spec *charts.Spec) error {
	return renderStatic(w, spec, chart.SVG)
}

// renderStatic draws the first pie in the spec, else the first bar chart,
// else a "No data" disc. Text panels and layering have no static rendering.
func renderStatic(w io.Writer, spec *charts.Spec, rp chart.RendererProvider) error {
	title := spec.TitleText()

	if arc := spec.Find(charts.MarkArc); arc != nil {
		values, err := pieValues(arc)
		if err != nil {
			return err
		}
		if len(values) > 0 {
			return pieChart(title, values).Render(rp, w)
		}
	}

	if bar := spec.Find(charts.MarkBar); bar != nil {
		values, err := barValues(bar)
		if err != nil {
			return err
		}
		if len(values) > 0 {
			return barChart(title, bar.TitleText(), values).Render(rp, w)
		}
	}

	return pieChart(title, []chart.Value{{
		Label: "No data",
		Value: 1,
		Style: chart.Style{FillColor: hexColor(charts.Muted)},
	}}).Render(rp, w)
}

func pieChart(title string, values []chart.Value) chart.PieChart {
	return chart.PieChart{
		Title:  title,
		Width:  imageWidth,
		Height: imageHeight,
		Values: values,
	}
}

func barChart(title, panelTitle string, values []chart.Value) chart.BarChart {
	if panelTitle != "" {
		title = fmt.Sprintf("%s: %s", title, panelTitle)
	}
	width := max(imageWidth, len(values)*(barWidth+barSpacing)+200)
	return chart.BarChart{
		Title:      title,
		Width:      width,
		Height:     imageHeight / 2,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{Padding: chart.Box{Top: 60, Left: 20, Right: 20, Bottom: 20}},
		Bars:       values,
	}
}

// pieValues reads the theta and color fields of an arc view. Slices are
// colored from the view's color range, its scheme, or the chart default.
func pieValues(arc *charts.Spec) ([]chart.Value, error) {
	if arc.Encoding == nil || arc.Encoding.Theta == nil {
		return nil, fmt.Errorf("arc view has no theta encoding")
	}
	records, err := arc.Data.Records()
	if err != nil {
		return nil, err
	}

	labelField := ""
	var palette []string
	if c := arc.Encoding.Color; c != nil {
		labelField = c.Field
		palette = paletteOf(c.Scale)
	}

	var values []chart.Value
	for i, r := range records {
		v, ok := number(r[arc.Encoding.Theta.Field])
		if !ok || v <= 0 {
			continue
		}
		value := chart.Value{Label: fmt.Sprint(r[labelField]), Value: v}
		if len(palette) > 0 {
			value.Style = chart.Style{FillColor: hexColor(palette[i%len(palette)])}
		}
		values = append(values, value)
	}
	return values, nil
}

// barValues reads the x and y fields of a bar view. All-zero data yields no
// bars.
func barValues(bar *charts.Spec) ([]chart.Value, error) {
	if bar.Encoding == nil || bar.Encoding.X == nil || bar.Encoding.Y == nil {
		return nil, fmt.Errorf("bar view needs x and y encodings")
	}
	records, err := bar.Data.Records()
	if err != nil {
		return nil, err
	}

	fill := charts.SpotifyGreen
	if bar.Mark.Color != "" {
		fill = bar.Mark.Color
	}

	var values []chart.Value
	nonZero := false
	for _, r := range records {
		v, ok := number(r[bar.Encoding.Y.Field])
		if !ok {
			continue
		}
		nonZero = nonZero || v != 0
		values = append(values, chart.Value{
			Label: fmt.Sprint(r[bar.Encoding.X.Field]),
			Value: v,
			Style: chart.Style{FillColor: hexColor(fill), StrokeColor: hexColor(fill)},
		})
	}
	if !nonZero {
		return nil, nil
	}
	return values, nil
}

func paletteOf(s *charts.Scale) []string {
	if s == nil {
		return nil
	}
	if len(s.Range) > 0 {
		out := make([]string, 0, len(s.Range))
		for _, c := range s.Range {
			if hex, ok := c.(string); ok {
				out = append(out, hex)
			}
		}
		return out
	}
	if s.Scheme == "category10" {
		return charts.Category10
	}
	return nil
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
