// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// HTML renders pages from the embedded templates. Each page is parsed
// together with the shared layout once, at construction.
type HTML struct {
	pages map[string]*template.Template
}

var _ Renderer = (*HTML)(nil)

/*
NewHTML parses every embedded page.

Returns:
  - *HTML: Ready renderer
  - error: A template failed to parse
*/
func NewHTML() (*HTML, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("view: list templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		if file == layoutFile {
			continue
		}

		name := strings.TrimSuffix(path.Base(file), ".html")
		page, err := template.New(path.Base(layoutFile)).ParseFS(templateFS, layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("view: parse %s: %w", name, err)
		}
		pages[name] = page
	}

	return &HTML{pages: pages}, nil
}

// Render executes the named page inside the layout.
func (renderer *HTML) Render(writer io.Writer, name string, data any) error {
	page, ok := renderer.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}
	return page.Execute(writer, data)
}
