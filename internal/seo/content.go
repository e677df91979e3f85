package seo

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/tradelift/seogen/internal/enhance"
)

// Deck is the copy pack templates draw from. Fragments are trade-neutral
// so one deck serves plumbing, HVAC, electrical, and roofing businesses
// alike; operators override any section with a YAML content pack.
type Deck struct {
	Benefits       []string              `yaml:"benefits"`
	TrustSignals   []string              `yaml:"trust_signals"`
	ProcessSteps   []string              `yaml:"process_steps"`
	EmergencySteps []string              `yaml:"emergency_steps"`
	Expertise      []string              `yaml:"expertise"`
	Testimonials   []enhance.Testimonial `yaml:"testimonials"`
}

// LoadDeck reads a YAML content pack layered over the default deck: any
// section present in the file replaces the default wholesale, absent
// sections keep the defaults. An empty path returns the default deck.
func LoadDeck(path string) (*Deck, error) {
	deck := DefaultDeck()
	if path == "" {
		return deck, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "seo: read content pack %s", path)
	}
	if err := yaml.Unmarshal(data, deck); err != nil {
		return nil, eris.Wrap(err, "seo: parse content pack")
	}
	return deck, nil
}

// DefaultDeck returns the built-in copy pack.
func DefaultDeck() *Deck {
	return &Deck{
		Benefits: []string{
			"Licensed, bonded, and insured technicians who arrive in a marked truck, introduce themselves at the door, and treat your home like their own from start to finish.",
			"Upfront, flat-rate pricing quoted and approved before any work begins, so the number you sign off on is the number that appears on the invoice.",
			"Fully stocked service vehicles that carry the parts for the most common repairs, which means the large majority of jobs are finished in a single visit.",
			"A workmanship guarantee in writing on every job, backed by a local office with real people you can actually reach when you call.",
			"Background-checked, factory-trained technicians who keep up with current code requirements and manufacturer specifications through ongoing certification.",
			"Clean job sites with floor protection, drop cloths, and a full cleanup before we leave, every single time, no exceptions.",
		},
		TrustSignals: []string{
			"Locally owned and operated, with deep roots in the communities we serve rather than a national call center reading from a script.",
			"Hundreds of five-star reviews from homeowners who keep calling us back year after year and recommending us to their neighbors.",
			"Straightforward warranties on parts and labor, honored promptly and without the runaround.",
			"Respect for your schedule: tight arrival windows, a courtesy call before we knock, and technicians who show up when we say they will.",
			"No commission-chasing upsells. Our technicians are paid to fix problems correctly, not to sell you equipment you do not need.",
		},
		ProcessSteps: []string{
			"Call or book online and tell us what is going on. We ask the right questions up front so the technician arrives prepared for your specific problem.",
			"We confirm your appointment window and send a heads-up when the technician is on the way, so you are never stuck waiting around all day.",
			"Your technician diagnoses the issue, walks you through exactly what they found, and quotes a flat price before any work starts.",
			"Once you approve, we complete the repair or installation with quality parts and test everything thoroughly before calling the job done.",
			"We clean up the work area, review the invoice together line by line, and follow up afterward to make sure everything is still working the way it should.",
		},
		EmergencySteps: []string{
			"Shut off the water, gas, or power to the affected area if you can reach the valve or breaker safely. Every minute matters with an active leak or fault.",
			"Move family members and pets away from the problem area, especially anywhere you smell gas or see standing water near outlets or appliances.",
			"Call us right away at the number above. Our dispatcher will walk you through safe next steps while a technician heads your way.",
			"Take photos if it is safe to do so. They help with diagnosis on arrival and with any insurance claim you need to file later.",
		},
		Expertise: []string{
			"Much of the housing stock in this area went up decades ago, and the systems behind the walls show their age in predictable ways. Original supply lines, undersized panels, and first-generation ductwork were built for a different era of household demand, and they fail under modern loads in patterns we have seen hundreds of times. Knowing which failures are cosmetic and which are the first sign of a larger problem is the difference between a quick fix and a repeat visit, and it comes only from years of working in these exact homes.",
			"Local climate drives a service calendar of its own. Hard seasonal swings stress every mechanical system in a house: pipes and fittings expand and contract, equipment runs at its limits for weeks at a stretch, and small weaknesses that hid all year surface during the first cold snap or heat wave. We schedule and stock for that calendar, which is why our trucks carry the parts that actually fail here and our technicians recognize seasonal failure modes on sight instead of guessing their way through a diagnosis.",
			"Permits and inspections are not paperwork to us, they are part of the job. Local code offices each have their own expectations about what needs a permit, what gets inspected, and how work must be documented, and unpermitted work has a way of surfacing at the worst possible moment, usually during a home sale. We pull the permits, meet the inspectors, and hand you documentation that protects the investment you just made in your home rather than complicating it.",
			"Every neighborhood has its own construction vintage, and each vintage has its own known issues: materials that were standard practice at the time and later recalled, installation shortcuts common to particular builders, and layouts that make certain repairs harder than they look. Working the same streets year after year builds a mental map of what to expect before we open a wall, so diagnosis is faster, estimates are more accurate, and surprises mid-job are rare.",
		},
		Testimonials: []enhance.Testimonial{
			{Quote: "They found the real problem in twenty minutes after another company had guessed wrong twice. Fixed it the same afternoon, and the price matched the quote exactly.", Author: "Maria G."},
			{Quote: "On time, courteous, and the work area was cleaner when they left than when they arrived. The technician explained everything in plain language before starting.", Author: "Dan W."},
			{Quote: "We have used them three times now, once on a weekend emergency. Same professional crew every time, no surprises on the bill, and the repairs have held up.", Author: "Priya S."},
			{Quote: "The estimate was honest, the crew showed up when promised, and they walked us through maintenance steps so we will not be calling them again soon. That kind of honesty is rare.", Author: "James T."},
		},
	}
}
