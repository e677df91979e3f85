package seo

import (
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/tradelift/seogen/internal/enhance"
	"github.com/tradelift/seogen/internal/model"
)

// PageInput carries everything one page render needs. Service and
// Location are set according to the key's type; Services is the full
// catalog list for location pages; Extra holds writer sections for
// enhanced pages.
type PageInput struct {
	Key      model.PageKey
	Method   model.GenerationMethod
	Business model.Business
	Service  *model.Service
	Location *model.Location
	Services []model.Service
	Extra    *enhance.Sections
}

// Rendered is the content produced for one page before it is packed into
// an artifact.
type Rendered struct {
	Title           string
	MetaDescription string
	H1Heading       string
	ContentHTML     string
	WordCount       int
}

// Renderer turns page inputs into HTML content. All interpolated values
// pass through html/template's contextual escaping, so business and
// catalog fields can never inject markup.
type Renderer struct {
	tmpl *template.Template
	deck *Deck
}

func NewRenderer(deck *Deck) (*Renderer, error) {
	if deck == nil {
		deck = DefaultDeck()
	}
	root := template.New("pages").Funcs(template.FuncMap{
		"lower": strings.ToLower,
	})
	for name, src := range pageTemplates {
		if _, err := root.New(name).Parse(src); err != nil {
			return nil, eris.Wrapf(err, "seo: parse %s template", name)
		}
	}
	return &Renderer{tmpl: root, deck: deck}, nil
}

type templateData struct {
	Business model.Business
	Service  *model.Service
	Location *model.Location
	Services []model.Service
	Deck     *Deck
	Extra    *enhance.Sections
}

// Render produces the content for one page. Errors are per-page: a bad
// input fails this render only and surfaces as a diagnostic upstream.
func (r *Renderer) Render(in PageInput) (*Rendered, error) {
	name, err := r.templateName(in)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	data := templateData{
		Business: in.Business,
		Service:  in.Service,
		Location: in.Location,
		Services: in.Services,
		Deck:     r.deck,
		Extra:    in.Extra,
	}
	if err := r.tmpl.ExecuteTemplate(&sb, name, data); err != nil {
		return nil, eris.Wrapf(err, "seo: execute %s template", name)
	}

	html := sb.String()
	return &Rendered{
		Title:           pageTitle(in),
		MetaDescription: metaDescription(in),
		H1Heading:       h1Heading(in),
		ContentHTML:     html,
		WordCount:       countWords(html),
	}, nil
}

// templateName validates the input against the key type and picks the
// template. Enhanced rendering needs writer sections; without them the
// page falls back to the standard service-location body.
func (r *Renderer) templateName(in PageInput) (string, error) {
	needsService := in.Key.Type != model.PageTypeLocation
	needsLocation := in.Key.Type != model.PageTypeService

	if needsService && in.Service == nil {
		return "", eris.Errorf("seo: render %s page: service %q not in catalog", in.Key.Type, in.Key.ServiceID)
	}
	if needsLocation && in.Location == nil {
		return "", eris.Errorf("seo: render %s page: location %q not in catalog", in.Key.Type, in.Key.LocationID)
	}

	name := string(in.Key.Type)
	if in.Key.Type == model.PageTypeServiceLocation && in.Method == model.MethodEnhanced && in.Extra != nil {
		name = "service_location_enhanced"
	}
	return name, nil
}

func pageTitle(in PageInput) string {
	b := in.Business.Name
	switch in.Key.Type {
	case model.PageTypeService:
		return fmt.Sprintf("%s | %s", in.Service.Name, b)
	case model.PageTypeLocation:
		return fmt.Sprintf("%s in %s, %s", b, in.Location.City, in.Location.State)
	case model.PageTypeServiceLocation:
		return fmt.Sprintf("%s in %s, %s | %s", in.Service.Name, in.Location.City, in.Location.State, b)
	case model.PageTypeEmergency:
		return fmt.Sprintf("24/7 Emergency %s in %s, %s | %s", in.Service.Name, in.Location.City, in.Location.State, b)
	}
	return b
}

func metaDescription(in PageInput) string {
	b := in.Business.Name
	call := "Contact us for a free estimate."
	if in.Business.Phone != "" {
		call = "Call " + in.Business.Phone + " for a free estimate."
	}
	switch in.Key.Type {
	case model.PageTypeService:
		return fmt.Sprintf("Professional %s from %s. Upfront pricing, licensed technicians, and guaranteed workmanship. %s",
			strings.ToLower(in.Service.Name), b, call)
	case model.PageTypeLocation:
		return fmt.Sprintf("%s serves %s, %s with licensed, on-time home services and upfront pricing. %s",
			b, in.Location.City, in.Location.State, call)
	case model.PageTypeServiceLocation:
		return fmt.Sprintf("Need %s in %s, %s? %s offers upfront pricing, licensed technicians, and same-day service. %s",
			strings.ToLower(in.Service.Name), in.Location.City, in.Location.State, b, call)
	case model.PageTypeEmergency:
		return fmt.Sprintf("Emergency %s in %s, %s, around the clock. %s answers 24/7 with live dispatch and flat-rate pricing. %s",
			strings.ToLower(in.Service.Name), in.Location.City, in.Location.State, b, call)
	}
	return ""
}

func h1Heading(in PageInput) string {
	switch in.Key.Type {
	case model.PageTypeService:
		return "Professional " + in.Service.Name + " Services"
	case model.PageTypeLocation:
		return fmt.Sprintf("%s in %s, %s", in.Business.Name, in.Location.City, in.Location.State)
	case model.PageTypeServiceLocation:
		return fmt.Sprintf("%s in %s, %s", in.Service.Name, in.Location.City, in.Location.State)
	case model.PageTypeEmergency:
		return fmt.Sprintf("24/7 Emergency %s in %s", in.Service.Name, in.Location.City)
	}
	return in.Business.Name
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// countWords counts visible words in rendered HTML by stripping tags and
// splitting on whitespace.
func countWords(html string) int {
	text := tagPattern.ReplaceAllString(html, " ")
	return len(strings.Fields(text))
}
