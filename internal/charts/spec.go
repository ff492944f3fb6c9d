// Package charts builds Vega-Lite v5 specifications for the dashboards.
package charts

import (
	"encoding/json"
	"fmt"
)

// SchemaURL is the Vega-Lite schema every top-level spec declares.
const SchemaURL = "https://vega.github.io/schema/vega-lite/v5.json"

// Mark types.
const (
	MarkText   = "text"
	MarkArc    = "arc"
	MarkBar    = "bar"
	MarkCircle = "circle"
)

// Encoding field types.
const (
	Quantitative = "quantitative"
	Nominal      = "nominal"
	Ordinal      = "ordinal"
	Temporal     = "temporal"
)

// Hidden encodes as JSON null, which switches off an axis, legend or title.
var Hidden = json.RawMessage("null")

// Spec is a unit, layered or concatenated Vega-Lite view.
type Spec struct {
	Schema      string      `json:"$schema,omitempty"`
	Title       *Title      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Width       int         `json:"width,omitempty"`
	Height      int         `json:"height,omitempty"`
	Padding     interface{} `json:"padding,omitempty"`
	Spacing     int         `json:"spacing,omitempty"`
	Center      bool        `json:"center,omitempty"`
	Data        *Data       `json:"data,omitempty"`
	Mark        *Mark       `json:"mark,omitempty"`
	Encoding    *Encoding   `json:"encoding,omitempty"`
	Layer       []*Spec     `json:"layer,omitempty"`
	HConcat     []*Spec     `json:"hconcat,omitempty"`
	VConcat     []*Spec     `json:"vconcat,omitempty"`
	Config      *Config     `json:"config,omitempty"`
}

// Title is a chart or section heading.
type Title struct {
	Text             string `json:"text"`
	Subtitle         string `json:"subtitle,omitempty"`
	Anchor           string `json:"anchor,omitempty"`
	FontSize         int    `json:"fontSize,omitempty"`
	SubtitleFontSize int    `json:"subtitleFontSize,omitempty"`
}

// Data holds inline records. Values is any JSON array: a slice of structs
// with json tags or of maps.
type Data struct {
	Values interface{} `json:"values"`
}

// Records decodes Values into generic records.
func (d *Data) Records() ([]map[string]interface{}, error) {
	if d == nil || d.Values == nil {
		return nil, nil
	}
	raw, err := json.Marshal(d.Values)
	if err != nil {
		return nil, fmt.Errorf("encode chart data: %w", err)
	}
	var out []map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("chart data is not an array of records: %w", err)
	}
	return out, nil
}

// Mark is the graphical primitive of a unit view.
type Mark struct {
	Type        string  `json:"type"`
	Align       string  `json:"align,omitempty"`
	Baseline    string  `json:"baseline,omitempty"`
	FontSize    int     `json:"fontSize,omitempty"`
	FontWeight  string  `json:"fontWeight,omitempty"`
	Color       string  `json:"color,omitempty"`
	Dy          int     `json:"dy,omitempty"`
	InnerRadius *int    `json:"innerRadius,omitempty"`
	OuterRadius int     `json:"outerRadius,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	Size        int     `json:"size,omitempty"`
}

// Encoding maps data fields to visual channels.
type Encoding struct {
	X       *Channel  `json:"x,omitempty"`
	Y       *Channel  `json:"y,omitempty"`
	Theta   *Channel  `json:"theta,omitempty"`
	Color   *Channel  `json:"color,omitempty"`
	Text    *Channel  `json:"text,omitempty"`
	Tooltip []Channel `json:"tooltip,omitempty"`
}

// Channel binds one field, or a constant value, to a visual channel.
type Channel struct {
	Field  string      `json:"field,omitempty"`
	Type   string      `json:"type,omitempty"`
	Value  interface{} `json:"value,omitempty"`
	Title  interface{} `json:"title,omitempty"`
	Format string      `json:"format,omitempty"`
	Scale  *Scale      `json:"scale,omitempty"`
	Axis   interface{} `json:"axis,omitempty"`
	Legend interface{} `json:"legend,omitempty"`
	Sort   interface{} `json:"sort,omitempty"`
	Stack  interface{} `json:"stack,omitempty"`
}

// Scale configures a channel's scale.
type Scale struct {
	Scheme string        `json:"scheme,omitempty"`
	Range  []interface{} `json:"range,omitempty"`
}

// Axis configures a positional channel's axis.
type Axis struct {
	LabelAngle int `json:"labelAngle"`
}

// Legend configures a color channel's legend.
type Legend struct {
	Orient        string      `json:"orient,omitempty"`
	Direction     string      `json:"direction,omitempty"`
	Columns       int         `json:"columns,omitempty"`
	Title         interface{} `json:"title,omitempty"`
	LabelLimit    int         `json:"labelLimit,omitempty"`
	SymbolSize    int         `json:"symbolSize,omitempty"`
	LabelFontSize int         `json:"labelFontSize,omitempty"`
}

// Padding is per-side padding in pixels.
type Padding struct {
	Left   int `json:"left"`
	Right  int `json:"right"`
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
}

// Config holds top-level styling defaults.
type Config struct {
	View   *ViewConfig   `json:"view,omitempty"`
	Axis   *FontConfig   `json:"axis,omitempty"`
	Legend *LegendConfig `json:"legend,omitempty"`
}

type ViewConfig struct {
	StrokeWidth   float64 `json:"strokeWidth"`
	StrokeOpacity float64 `json:"strokeOpacity"`
}

type FontConfig struct {
	LabelFontSize int `json:"labelFontSize,omitempty"`
	TitleFontSize int `json:"titleFontSize,omitempty"`
}

type LegendConfig struct {
	LabelFontSize int `json:"labelFontSize,omitempty"`
	TitleFontSize int `json:"titleFontSize,omitempty"`
	LabelLimit    int `json:"labelLimit,omitempty"`
}

// Field returns a channel bound to a data field.
func Field(name, typ string) *Channel {
	return &Channel{Field: name, Type: typ}
}

// Value returns a channel bound to a constant.
func Value(v interface{}) *Channel {
	return &Channel{Value: v}
}

// Tip is a tooltip entry.
func Tip(field, typ, title, format string) Channel {
	return Channel{Field: field, Type: typ, Title: title, Format: format}
}

// Walk visits s and every nested view depth-first.
func (s *Spec) Walk(fn func(*Spec)) {
	if s == nil {
		return
	}
	fn(s)
	for _, group := range [][]*Spec{s.Layer, s.HConcat, s.VConcat} {
		for _, child := range group {
			child.Walk(fn)
		}
	}
}

// Find returns the first view, depth-first, drawn with mark type.
func (s *Spec) Find(markType string) *Spec {
	var found *Spec
	s.Walk(func(v *Spec) {
		if found == nil && v.Mark != nil && v.Mark.Type == markType {
			found = v
		}
	})
	return found
}

// TitleText returns the title text, or "" when untitled.
func (s *Spec) TitleText() string {
	if s == nil || s.Title == nil {
		return ""
	}
	return s.Title.Text
}

// MarshalIndent encodes the spec the way exported files are written.
func (s *Spec) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// NoData is a text-mark placeholder shown in place of a chart whose data set
// is empty.
func NoData(title, message string, width, height int) *Spec {
	if message == "" {
		message = "No data"
	}
	s := &Spec{
		Width:  width,
		Height: height,
		Data:   &Data{Values: []map[string]string{{"text": message}}},
		Mark:   &Mark{Type: MarkText, Align: "center", Baseline: "middle", FontSize: 16, Color: Muted},
		Encoding: &Encoding{
			X:    Value(width / 2),
			Y:    Value(height / 2),
			Text: Field("text", Nominal),
		},
	}
	if title != "" {
		s.Title = &Title{Text: title, Anchor: "start", FontSize: 18}
	}
	return s
}

func truncate(s string, n int, ellipsis string) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + ellipsis
}
