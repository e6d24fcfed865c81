package report

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	"strings"
	"text/template"

	"portfolio-tracker/internal/models"

	"github.com/charmbracelet/glamour"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/*.md templates/*.html
var templates embed.FS

var dashboardPartials = map[string]string{
	"dashboard_title":       "templates/dashboard_title.md",
	"dashboard_allocation":  "templates/dashboard_allocation.md",
	"dashboard_performance": "templates/dashboard_performance.md",
}

// Renderer turns a dashboard into markdown, an HTML page or terminal output.
// It is safe for concurrent use.
type Renderer struct {
	dashboard *template.Template
	page      *htmltemplate.Template
	markdown  goldmark.Markdown
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	dashboard, err := parseTemplate("dashboard", "templates/dashboard.md", dashboardPartials)
	if err != nil {
		return nil, err
	}

	page, err := htmltemplate.ParseFS(templates, "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("error parsing page template: %w", err)
	}

	return &Renderer{
		dashboard: dashboard,
		page:      page,
		markdown:  goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}, nil
}

func parseTemplate(name, mainFile string, partials map[string]string) (*template.Template, error) {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return nil, fmt.Errorf("error reading main template %q: %w", mainFile, err)
	}

	tmpl, err := template.New(name).Parse(string(mainContent))
	if err != nil {
		return nil, fmt.Errorf("error parsing main template %q: %w", mainFile, err)
	}

	for partial, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return nil, fmt.Errorf("error reading partial template %q: %w", file, err)
		}
		if _, err := tmpl.New(partial).Parse(string(content)); err != nil {
			return nil, fmt.Errorf("error parsing partial template %q for %q: %w", file, partial, err)
		}
	}
	return tmpl, nil
}

// Markdown renders the dashboard as a markdown document.
func (r *Renderer) Markdown(d *models.Dashboard) (string, error) {
	var b strings.Builder
	if err := r.dashboard.ExecuteTemplate(&b, "dashboard", newDashboardView(d)); err != nil {
		return "", fmt.Errorf("error executing dashboard template: %w", err)
	}
	return b.String(), nil
}

// HTML renders the dashboard as a complete HTML page. Raw HTML in the
// markdown is not passed through, so user-entered text is always escaped.
func (r *Renderer) HTML(d *models.Dashboard) (string, error) {
	md, err := r.Markdown(d)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	if err := r.markdown.Convert([]byte(md), &body); err != nil {
		return "", fmt.Errorf("error converting dashboard to HTML: %w", err)
	}

	var page strings.Builder
	err = r.page.Execute(&page, struct {
		Title string
		Body  htmltemplate.HTML
	}{
		Title: fmt.Sprintf("Portfolio Dashboard - User %d", d.UserID),
		Body:  htmltemplate.HTML(body.String()),
	})
	if err != nil {
		return "", fmt.Errorf("error executing page template: %w", err)
	}
	return page.String(), nil
}

// Terminal renders the dashboard for a terminal. style is a glamour standard
// style name ("dark", "light", "notty", ...) or "auto" to detect it.
func (r *Renderer) Terminal(d *models.Dashboard, style string, width int) (string, error) {
	md, err := r.Markdown(d)
	if err != nil {
		return "", err
	}

	styleOption := glamour.WithStandardStyle(style)
	if style == "" || style == "auto" {
		styleOption = glamour.WithAutoStyle()
	}

	term, err := glamour.NewTermRenderer(styleOption, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("error creating terminal renderer: %w", err)
	}

	out, err := term.Render(md)
	if err != nil {
		return "", fmt.Errorf("error rendering dashboard for terminal: %w", err)
	}
	return out, nil
}
