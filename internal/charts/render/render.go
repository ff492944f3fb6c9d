// Package render exports chart specifications as JSON, interactive HTML and
// static PNG/SVG images.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aevon-lab/mediadash/internal/charts"
)

//go:embed templates/*
var templates embed.FS

var pageTemplate = template.Must(template.ParseFS(templates, "templates/dashboard.html"))

// Format is an export file type.
type Format string

const (
	FormatJSON Format = "json"
	FormatHTML Format = "html"
	FormatPNG  Format = "png"
	FormatSVG  Format = "svg"
)

// AllFormats is every format in export order.
var AllFormats = []Format{FormatJSON, FormatHTML, FormatPNG, FormatSVG}

// ParseFormat accepts a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllFormats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown chart format %q", s)
}

// JSON writes the spec as indented Vega-Lite JSON.
func JSON(w io.Writer, spec *charts.Spec) error {
	data, err := spec.MarshalIndent()
	if err != nil {
		return fmt.Errorf("encode chart spec: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// HTML writes a standalone page that renders the spec with vega-embed.
func HTML(w io.Writer, spec *charts.Spec) error {
	title := spec.TitleText()
	if title == "" {
		title = "Dashboard"
	}
	return pageTemplate.Execute(w, struct {
		Title string
		Spec  *charts.Spec
	}{Title: title, Spec: spec})
}

// Exporter writes chart files into one directory.
type Exporter struct {
	dir string
}

// NewExporter creates an exporter for dir. The directory is created on first write.
func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir}
}

// Dir returns the output directory.
func (e *Exporter) Dir() string { return e.dir }

// Write renders spec in format to <dir>/<base>.<format> and returns the path.
func (e *Exporter) Write(base string, spec *charts.Spec, format Format) (string, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case FormatJSON:
		err = JSON(&buf, spec)
	case FormatHTML:
		err = HTML(&buf, spec)
	case FormatPNG:
		err = PNG(&buf, spec)
	case FormatSVG:
		err = SVG(&buf, spec)
	default:
		err = fmt.Errorf("unknown chart format %q", format)
	}
	if err != nil {
		return "", fmt.Errorf("render %s.%s: %w", base, format, err)
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create charts directory: %w", err)
	}
	path := filepath.Join(e.dir, base+"."+string(format))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// Export writes spec in every requested format. Every format is attempted;
// the returned error joins the failures.
func (e *Exporter) Export(base string, spec *charts.Spec, formats ...Format) ([]string, error) {
	if len(formats) == 0 {
		formats = AllFormats
	}

	var paths []string
	var errs []error
	for _, f := range formats {
		path, err := e.Write(base, spec, f)
		if err != nil {
			slog.Warn("[Render] Export failed", "file", base, "format", f, "error", err)
			errs = append(errs, err)
			continue
		}
		paths = append(paths, path)
	}

	slog.Debug("[Render] Exported chart", "file", base, "formats", len(paths))
	return paths, errors.Join(errs...)
}
