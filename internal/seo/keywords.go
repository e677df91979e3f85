package seo

import (
	"fmt"
	"strings"

	"github.com/tradelift/seogen/internal/model"
)

// TargetKeywords builds the ordered keyword list for a page. Keywords are
// lowercase search phrases, most specific first; the head term always
// leads so downstream reporting can treat keywords[0] as the page's
// primary query.
func TargetKeywords(key model.PageKey, svc *model.Service, loc *model.Location) []string {
	var s, c, st string
	if svc != nil {
		s = strings.ToLower(svc.Name)
	}
	if loc != nil {
		c = strings.ToLower(loc.City)
		st = strings.ToLower(loc.State)
	}

	switch key.Type {
	case model.PageTypeService:
		return []string{
			s,
			s + " services",
			s + " company",
			s + " near me",
			s + " cost",
		}
	case model.PageTypeLocation:
		return []string{
			"home services " + c,
			fmt.Sprintf("contractor in %s %s", c, st),
			"licensed contractor " + c,
			"home repair " + c,
		}
	case model.PageTypeServiceLocation:
		return []string{
			fmt.Sprintf("%s %s", s, c),
			fmt.Sprintf("%s %s %s", s, c, st),
			fmt.Sprintf("%s in %s", s, c),
			s + " near me",
			fmt.Sprintf("best %s %s", s, c),
		}
	case model.PageTypeEmergency:
		return []string{
			fmt.Sprintf("emergency %s %s", s, c),
			fmt.Sprintf("24 hour %s %s", s, c),
			"emergency " + s + " near me",
			fmt.Sprintf("%s emergency service %s", s, c),
			fmt.Sprintf("weekend %s %s", s, c),
		}
	}
	return nil
}
