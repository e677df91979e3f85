package seo

import (
	"hash/fnv"

	"github.com/tradelift/seogen/internal/model"
)

// Decider chooses the generation method for one service-location pair.
// The generator takes this as a function so tests can pin the outcome.
type Decider func(svc model.Service, loc model.Location) model.GenerationMethod

// Policy decides which service-location pages get enhanced generation.
// Eligibility requires the location's search volume to exceed
// MinMonthlySearches; among eligible pairs, a SampleRate fraction is
// selected by a deterministic hash draw, so enhanced spend lands on the
// same pages every regeneration.
type Policy struct {
	BusinessID         string
	MinMonthlySearches int
	SampleRate         float64
}

func NewPolicy(businessID string, minMonthlySearches int, sampleRate float64) *Policy {
	return &Policy{
		BusinessID:         businessID,
		MinMonthlySearches: minMonthlySearches,
		SampleRate:         sampleRate,
	}
}

// Decide implements Decider.
func (p *Policy) Decide(svc model.Service, loc model.Location) model.GenerationMethod {
	if loc.MonthlySearches <= p.MinMonthlySearches {
		return model.MethodTemplate
	}
	if p.draw(svc.ID, loc.ID) < p.SampleRate {
		return model.MethodEnhanced
	}
	return model.MethodTemplate
}

// draw hashes business|service|location into a uniform value in [0, 1).
func (p *Policy) draw(serviceID, locationID string) float64 {
	h := fnv.New64a()
	h.Write([]byte(p.BusinessID))
	h.Write([]byte{'|'})
	h.Write([]byte(serviceID))
	h.Write([]byte{'|'})
	h.Write([]byte(locationID))
	// Top 53 bits keep the full precision of a float64 mantissa.
	return float64(h.Sum64()>>11) / float64(1<<53)
}
