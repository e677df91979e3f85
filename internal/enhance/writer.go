// Package enhance produces the extra content sections that distinguish
// enhanced pages from templated ones: a local-expertise narrative and a
// customer testimonial block. The default writer synthesizes sections
// from a fixed copy deck; the Claude writer generates them per page.
package enhance

import (
	"context"

	"github.com/tradelift/seogen/internal/model"
)

// Request describes the page an enhanced writer produces copy for.
type Request struct {
	Business model.Business
	Service  model.Service
	Location model.Location
}

// Sections is the enhanced page content beyond the standard template.
// Expertise paragraphs are plain text; the renderer handles markup and
// escaping.
type Sections struct {
	Expertise   []string
	Testimonial Testimonial
}

// Testimonial is a customer quote block.
type Testimonial struct {
	Quote  string `yaml:"quote" json:"quote"`
	Author string `yaml:"author" json:"author"`
}

// Writer produces enhanced page sections.
type Writer interface {
	Sections(ctx context.Context, req Request) (*Sections, error)
}
