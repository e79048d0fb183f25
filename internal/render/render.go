// Package render turns categorized collections into the catalog page.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/meur/lookbook/internal/catalog"
)

//go:embed templates/*.html
var templateFS embed.FS

var categoryIcons = map[string]string{
	"Tops":        "👕",
	"Bottoms":     "👖",
	"Outerwear":   "🧥",
	"Knitwear":    "🧶",
	"Footwear":    "👟",
	"Suits":       "🤵",
	"Layering":    "👔",
	"Accessories": "🧢",
	"Other":       "📦",
}

// Section is one category block within a collection view.
type Section struct {
	Category string
	Icon     string
	Items    []catalog.CategorizedItem
}

// CollectionView is one tab on the catalog page. For the season-bearing
// collection there is one view per season, both backed by the same
// collection name.
type CollectionView struct {
	// Name is the collection identifier used by the edit endpoints.
	Name string
	// Title is the tab label ("Summer", "Fall", ...).
	Title string
	// ImagePath is the URL prefix for this collection's page images.
	ImagePath string
	// HasSeasons enables the season button on item cards.
	HasSeasons bool
	Sections   []Section
}

// NewView assembles a view from Categorize output, keeping the configured
// category order and skipping empty buckets.
func NewView(name, title, imagePath string, hasSeasons bool, order []string, categorized map[string][]catalog.CategorizedItem) CollectionView {
	v := CollectionView{
		Name:       name,
		Title:      title,
		ImagePath:  imagePath,
		HasSeasons: hasSeasons,
	}
	seen := map[string]bool{}
	for _, category := range order {
		seen[category] = true
		items := categorized[category]
		if len(items) == 0 {
			continue
		}
		v.Sections = append(v.Sections, Section{Category: category, Icon: categoryIcons[category], Items: items})
	}
	// Defaulted items must render even when the order omits the bucket.
	if !seen[catalog.DefaultCategory] && len(categorized[catalog.DefaultCategory]) > 0 {
		v.Sections = append(v.Sections, Section{
			Category: catalog.DefaultCategory,
			Icon:     categoryIcons[catalog.DefaultCategory],
			Items:    categorized[catalog.DefaultCategory],
		})
	}
	return v
}

// Renderer renders the catalog page from the embedded template.
type Renderer struct {
	tmpl *template.Template
}

func New() (*Renderer, error) {
	tmpl, err := template.New("catalog").Funcs(template.FuncMap{
		"plural": func(n int) string {
			if n == 1 {
				return ""
			}
			return "s"
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Catalog writes the full catalog page for the given views.
func (r *Renderer) Catalog(w io.Writer, views []CollectionView) error {
	return r.tmpl.ExecuteTemplate(w, "index.html", struct {
		Views []CollectionView
	}{Views: views})
}
