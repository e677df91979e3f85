package enhance

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
)

// CopyWriter synthesizes enhanced sections from a fixed copy deck. It is
// deterministic and free of external calls, serving both as the default
// writer when no API key is configured and as the degraded path when the
// LLM writer fails.
type CopyWriter struct {
	expertise    []string
	testimonials []Testimonial
}

func NewCopyWriter(expertise []string, testimonials []Testimonial) *CopyWriter {
	return &CopyWriter{expertise: expertise, testimonials: testimonials}
}

// Sections picks and localizes deck fragments. Selection is keyed on the
// page identity so regenerating a page reproduces its copy exactly while
// neighboring pages rotate through different fragments.
func (w *CopyWriter) Sections(_ context.Context, req Request) (*Sections, error) {
	seed := pageSeed(req)
	svcName := strings.ToLower(req.Service.Name)
	city := req.Location.City

	var paragraphs []string
	for i := 0; i < 3 && i < len(w.expertise); i++ {
		base := w.expertise[(seed+i)%len(w.expertise)]
		paragraphs = append(paragraphs, expertiseLead(seed+i, svcName, city, req.Location.State)+" "+base)
	}
	if len(paragraphs) == 0 {
		paragraphs = []string{fmt.Sprintf(
			"Our %s technicians know %s homes inside and out, from the older housing stock near the city center to newer builds on the edge of town. That local familiarity means faster diagnosis, the right parts on the truck, and work that holds up to local code the first time.",
			svcName, city)}
	}

	testimonial := Testimonial{
		Quote: fmt.Sprintf(
			"The %s crew from %s showed up right on time, walked me through the problem, and had everything working the same day. The price matched the quote to the dollar.",
			svcName, req.Business.Name),
		Author: "Happy Customer, " + city,
	}
	if len(w.testimonials) > 0 {
		seedTest := w.testimonials[seed%len(w.testimonials)]
		testimonial = Testimonial{
			Quote:  seedTest.Quote,
			Author: seedTest.Author + ", " + city,
		}
	}

	return &Sections{Expertise: paragraphs, Testimonial: testimonial}, nil
}

// expertiseLead opens each paragraph with a sentence tying the fragment to
// the page's service and city, cycling through variants for variety.
func expertiseLead(n int, service, city, state string) string {
	switch n % 3 {
	case 0:
		return fmt.Sprintf("Homeowners in %s call us for %s because our crews work these neighborhoods every week.", city, service)
	case 1:
		return fmt.Sprintf("%s, %s has its own mix of housing ages and local code requirements, and our %s work accounts for both.", city, state, service)
	default:
		return fmt.Sprintf("After years of %s jobs across %s, we know exactly which problems show up in local homes and how to fix them for good.", service, city)
	}
}

func pageSeed(req Request) int {
	h := fnv.New32a()
	h.Write([]byte(req.Business.ID))
	h.Write([]byte{'|'})
	h.Write([]byte(req.Service.ID))
	h.Write([]byte{'|'})
	h.Write([]byte(req.Location.ID))
	return int(h.Sum32() & 0x7fffffff)
}
