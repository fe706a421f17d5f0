// Package render turns a team dataset into the static directory page.
package render

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"

	"github.com/heartmarshall/teamdex/internal/domain"
)

// DefaultTitle is the page heading used when Options.Title is empty.
const DefaultTitle = "Notre équipe"

//go:embed templates/page.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))

// Options configures the rendered page.
type Options struct {
	Title string
}

type pageData struct {
	Title   string
	Records []cardData
}

type cardData struct {
	Name        string
	Pokemon     string
	Image       string
	Description string
}

// Render writes the page with one card per record. An empty dataset renders
// an empty card grid.
func Render(w io.Writer, dataset domain.Dataset, opts Options) error {
	data := pageData{Title: opts.Title, Records: make([]cardData, 0, len(dataset))}
	if data.Title == "" {
		data.Title = DefaultTitle
	}
	for _, r := range dataset {
		card := cardData{Name: r.Name, Pokemon: r.Pokemon, Description: r.Description}
		if r.Image != nil {
			card.Image = *r.Image
		}
		data.Records = append(data.Records, card)
	}

	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// Page loads the dataset from src and renders it. A source failure is logged
// and the page is rendered with no cards.
func Page(ctx context.Context, w io.Writer, src DataSource, opts Options, log *slog.Logger) (int, error) {
	dataset, err := src.Load(ctx)
	if err != nil {
		log.ErrorContext(ctx, "team data unavailable, rendering empty page",
			slog.String("source", src.String()),
			slog.String("error", err.Error()),
		)
		dataset = domain.Dataset{}
	}

	if err := Render(w, dataset, opts); err != nil {
		return 0, err
	}
	return len(dataset), nil
}
