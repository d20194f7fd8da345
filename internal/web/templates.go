package web

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/justestif/go-scenario-recommender/internal/emotion"
)

// Templates manages HTML template rendering.
type Templates struct {
	templates map[string]*template.Template
	partials  map[string]*template.Template
	funcs     template.FuncMap
}

// NewTemplates creates a new template manager by loading templates from the given filesystem.
func NewTemplates(templatesFS fs.FS) (*Templates, error) {
	if templatesFS == nil {
		return nil, fmt.Errorf("templates filesystem is nil")
	}

	t := &Templates{
		templates: make(map[string]*template.Template),
		partials:  make(map[string]*template.Template),
		funcs:     defaultFuncs(),
	}

	if err := t.load(templatesFS); err != nil {
		return nil, err
	}

	return t, nil
}

// Render renders a page template with the given data.
func (t *Templates) Render(w io.Writer, page string, data any) error {
	tmpl, ok := t.templates[page]
	if !ok {
		return fmt.Errorf("template %q not found", page)
	}

	// Execute the "base" template which includes the page content
	return tmpl.ExecuteTemplate(w, "base", data)
}

// RenderPartial renders a partial template (without base layout) with the given data.
func (t *Templates) RenderPartial(w io.Writer, partial string, data any) error {
	tmpl, ok := t.partials[partial]
	if !ok {
		return fmt.Errorf("partial %q not found", partial)
	}
	return tmpl.ExecuteTemplate(w, partial, data)
}

// load parses all templates from the filesystem.
func (t *Templates) load(templatesFS fs.FS) error {
	layouts, err := fs.Glob(templatesFS, "layouts/*.html")
	if err != nil {
		return fmt.Errorf("finding layouts: %w", err)
	}

	partials, err := fs.Glob(templatesFS, "partials/*.html")
	if err != nil {
		return fmt.Errorf("finding partials: %w", err)
	}

	pages, err := fs.Glob(templatesFS, "pages/*.html")
	if err != nil {
		return fmt.Errorf("finding pages: %w", err)
	}
	if len(pages) == 0 {
		return fmt.Errorf("no page templates found")
	}

	// Common files to include with every page
	commonFiles := append(layouts, partials...)

	for _, page := range pages {
		name := templateName(page)
		files := append([]string{page}, commonFiles...)

		tmpl, err := template.New(name).Funcs(t.funcs).ParseFS(templatesFS, files...)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}
		t.templates[name] = tmpl
	}

	// Partials render standalone for fragment responses
	for _, partial := range partials {
		name := templateName(partial)

		tmpl, err := template.New(name).Funcs(t.funcs).ParseFS(templatesFS, partial)
		if err != nil {
			return fmt.Errorf("parsing partial %s: %w", name, err)
		}
		t.partials[name] = tmpl
	}

	return nil
}

func templateName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".html")
}

// defaultFuncs returns the default template functions.
func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		// emotionColor picks a hue for the dominant emotion of a vector.
		// The values are constants, so they are safe to mark as CSS.
		"emotionColor": func(v emotion.Vector) template.CSS {
			switch {
			case v.IsZero():
				return "hsl(258, 90%, 66%)"
			case v.Dominant() == emotion.Happy:
				return "hsl(38, 92%, 55%)"
			case v.Dominant() == emotion.Angry:
				return "hsl(4, 78%, 55%)"
			case v.Dominant() == emotion.Sad:
				return "hsl(220, 70%, 58%)"
			default:
				return "hsl(160, 50%, 45%)"
			}
		},

		// percent formats a 0..1 value as "42%"
		"percent": func(f float64) string {
			return fmt.Sprintf("%.0f%%", f*100)
		},

		// add adds two integers (for 1-based indexing in loops)
		"add": func(a, b int) int {
			return a + b
		},
	}
}

// PageData contains common data passed to all page templates.
type PageData struct {
	Title       string
	Flash       *FlashMessage
	CurrentPath string
}

// FlashMessage represents a temporary notification message.
type FlashMessage struct {
	Type    string // "success", "error", "warning", "info"
	Message string
}

// HomePageData contains data for the home page template.
type HomePageData struct {
	PageData
	Scenarios []ScenarioOption
	Selected  string
	Results   *ResultsData
}

// ScenarioOption is one entry of the scenario selector.
type ScenarioOption struct {
	Key      string
	Name     string
	Selected bool
}

// ResultsData contains a rendered recommendation list.
type ResultsData struct {
	ScenarioName  string
	ScenarioLabel string // First word of the scenario name
	Total         int
	UniqueArtists int
	Fallback      bool
	Songs         []SongData
}

// SongData contains data for a single song in templates.
type SongData struct {
	Title   string
	Artist  string
	URL     string // Spotify link, empty when unresolved
	Emotion emotion.Vector
}
