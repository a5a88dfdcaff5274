package chart

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Renderer turns a composed Model into an artifact at path. Backends
// must not mutate the model.
type Renderer interface {
	Render(m *Model, path string) error
}

// RendererFor picks a backend from the artifact path's extension:
// image formats go through the plot backend, .xlsx through the Excel
// workbook backend.
func RendererFor(path string) (Renderer, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png", ".svg", ".pdf":
		return &plotRenderer{}, nil
	case ".xlsx":
		return &workbookRenderer{}, nil
	default:
		return nil, fmt.Errorf("chart: no renderer for %q (want .png, .svg, .pdf or .xlsx)", ext)
	}
}
