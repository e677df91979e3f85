package seo

// Template sources for each page type. Bodies are HTML fragments; the
// surrounding document shell belongs to whatever site consumes the
// artifacts. Titles, meta descriptions, and H1s are composed in code, not
// here, so the markup stays free of head-element concerns.

const serviceTemplate = `<section class="intro">
  <p>{{.Business.Name}} provides professional {{lower .Service.Name}} for homeowners who want the job done right the first time. Our licensed technicians handle everything from routine maintenance to complete replacements, and every job starts with a clear explanation and a flat, upfront price. No surprises, no pressure, just honest work from a local crew that stands behind it.</p>
  <p>Whether you are dealing with a sudden failure or planning ahead, we bring the same preparation to every call: the right diagnostic tools, a fully stocked truck, and a technician who has seen your problem before. Most {{lower .Service.Name}} jobs are completed the same day they are diagnosed.</p>
</section>
<section class="details">
  <h2>Complete {{.Service.Name}} Solutions</h2>
  <p>Our {{lower .Service.Name}} work covers the full range of what homeowners need: accurate diagnosis, honest repair-versus-replace guidance, quality installations, and the preventive maintenance that keeps small issues from becoming expensive ones. Every technician carries the specialized tools the work demands and follows manufacturer specifications to the letter, so warranties stay intact and the work passes inspection the first time.</p>
  <p>We also take the time to explain what we found and what your options are. You will always know what the problem is, what it will cost to fix, and what happens if you wait, before you commit to anything.</p>
</section>
<section class="benefits">
  <h2>Why Homeowners Choose {{.Business.Name}}</h2>
  <ul>
  {{range .Deck.Benefits}}<li>{{.}}</li>
  {{end}}</ul>
</section>
<section class="process">
  <h2>How Our {{.Service.Name}} Process Works</h2>
  <ol>
  {{range .Deck.ProcessSteps}}<li>{{.}}</li>
  {{end}}</ol>
</section>
<section class="cta">
  <h2>Schedule Your {{.Service.Name}}</h2>
  <p>Ready to get started? {{if .Business.Phone}}Call {{.Business.Name}} at {{.Business.Phone}}{{else}}Contact {{.Business.Name}}{{end}} to book your appointment. We offer convenient scheduling, clear pricing, and a written guarantee on every job we complete.</p>
</section>
`

const locationTemplate = `<section class="intro">
  <p>{{.Business.Name}} proudly serves homeowners throughout {{.Location.City}}, {{.Location.State}} with dependable, professionally delivered home services. Our technicians know {{.Location.City}} neighborhoods street by street, from the established blocks near the center of town to the newer developments on its edges, and that local knowledge shows up in faster arrivals, sharper diagnosis, and repairs suited to the local housing stock.</p>
  <p>When you call, you reach a local team, not a national dispatch center. We schedule around your day, confirm before we arrive, and send technicians who treat your home with respect from the moment they knock. Every job, large or small, gets the same preparation and the same written guarantee.</p>
</section>
<section class="services">
  <h2>Services Available in {{.Location.City}}</h2>
  <p>Every service we offer is available to {{.Location.City}} homeowners, delivered by the same licensed technicians and backed by the same workmanship guarantee:</p>
  <ul>
  {{range .Services}}<li>{{.Name}} in {{$.Location.City}}</li>
  {{end}}</ul>
</section>
<section class="trust">
  <h2>Why {{.Location.City}} Homeowners Trust Us</h2>
  <ul>
  {{range .Deck.TrustSignals}}<li>{{.}}</li>
  {{end}}</ul>
</section>
<section class="local">
  <h2>Your Local Team in {{.Location.City}}, {{.Location.State}}</h2>
  <p>Being local is more than a service area on a map. It means our technicians drive {{.Location.City}} roads every day, know which neighborhoods carry which construction vintages, and stock their trucks for the problems local homes actually have. It also means we answer to the same community we live and work in: our reputation in {{.Location.City}} is built one job, one street, and one referral at a time, and we protect it by doing the work properly even when nobody is checking.</p>
</section>
<section class="cta">
  <h2>Schedule Service in {{.Location.City}}</h2>
  <p>{{if .Business.Phone}}Call {{.Business.Phone}}{{else}}Contact us{{end}} to book service anywhere in {{.Location.City}}, {{.Location.State}}. Same-week appointments are usually available, emergency coverage runs around the clock, and every estimate is free and in writing.</p>
</section>
`

const serviceLocationBody = `<section class="intro">
  <p>Looking for reliable {{lower .Service.Name}} in {{.Location.City}}, {{.Location.State}}? {{.Business.Name}} delivers professional service to {{.Location.City}} homeowners with upfront pricing, licensed technicians, and scheduling that respects your day. We have handled {{lower .Service.Name}} throughout {{.Location.City}} long enough to know exactly what local homes need, and we arrive with the parts and the plan to finish the job in one visit whenever the work allows.</p>
  <p>From the first phone call to the final walkthrough, you will know what is happening, what it costs, and why. That is how we have built our reputation in {{.Location.City}}, and it is how we intend to keep it.</p>
</section>
<section class="local">
  <h2>{{.Service.Name}} Built for {{.Location.City}} Homes</h2>
  <p>{{.Location.City}} homes have their own mix of ages, materials, and construction styles, and {{lower .Service.Name}} that ignores those differences does not last. Our technicians work {{.Location.City}} neighborhoods every week, so they recognize the local failure patterns on sight, carry the parts that local systems actually use, and follow the permit and inspection requirements {{.Location.City}} enforces. The result is work that is done once, done to code, and still holding up years later.</p>
</section>
<section class="problems">
  <h2>Common {{.Service.Name}} Problems We Solve</h2>
  <p>Most of the {{lower .Service.Name}} calls we take in {{.Location.City}} trace back to a familiar set of causes: aging components past their service life, previous work that cut corners, seasonal stress the system was never sized for, and small ignored symptoms that grew into real failures. Whatever the cause, the response is the same: accurate diagnosis first, a flat quote second, and quality repair work third.</p>
</section>
<section class="benefits">
  <h2>Why {{.Location.City}} Homeowners Choose {{.Business.Name}}</h2>
  <ul>
  {{range .Deck.Benefits}}<li>{{.}}</li>
  {{end}}</ul>
</section>
<section class="process">
  <h2>How Our {{.Service.Name}} Process Works</h2>
  <ol>
  {{range .Deck.ProcessSteps}}<li>{{.}}</li>
  {{end}}</ol>
</section>
<section class="trust">
  <h2>A Name {{.Location.City}} Neighbors Recommend</h2>
  <ul>
  {{range .Deck.TrustSignals}}<li>{{.}}</li>
  {{end}}</ul>
</section>
<section class="serving">
  <h2>Serving All of {{.Location.City}}, {{.Location.State}}</h2>
  <p>Our {{lower .Service.Name}} crews cover every part of {{.Location.City}}, with arrival windows we actually hit and a courtesy call when the technician is on the way. Wherever you are in {{.Location.City}}, help is closer than you think.</p>
</section>
<section class="cta">
  <h2>Book {{.Service.Name}} in {{.Location.City}} Today</h2>
  <p>{{if .Business.Phone}}Call {{.Business.Name}} at {{.Business.Phone}}{{else}}Contact {{.Business.Name}}{{end}} for {{lower .Service.Name}} anywhere in {{.Location.City}}, {{.Location.State}}. Free estimates, flat-rate pricing, and a written guarantee on every completed job.</p>
</section>
`

const enhancedExtras = `<section class="expertise">
  <h2>Local {{.Service.Name}} Expertise in {{.Location.City}}</h2>
  {{range .Extra.Expertise}}<p>{{.}}</p>
  {{end}}</section>
<section class="testimonial">
  <h2>What Your Neighbors Say</h2>
  <blockquote>
    <p>{{.Extra.Testimonial.Quote}}</p>
    <cite>{{.Extra.Testimonial.Author}}</cite>
  </blockquote>
</section>
`

const emergencyTemplate = `<div class="emergency-banner">
  <p><strong>{{.Service.Name}} emergency in {{.Location.City}}?</strong> {{.Business.Name}} answers 24 hours a day, 7 days a week, holidays included. {{if .Business.Phone}}Call {{.Business.Phone}} now.{{else}}Contact us now.{{end}}</p>
</div>
<section class="intro">
  <p>When {{lower .Service.Name}} fails at two in the morning, you need more than a voicemail box. {{.Business.Name}} keeps on-call technicians ready around the clock for {{.Location.City}}, {{.Location.State}} emergencies, with trucks stocked for the failures that cannot wait until business hours. You will speak to a real dispatcher, get a realistic arrival estimate, and have a licensed technician at your door fast, because with an active emergency, every minute of delay adds to the damage.</p>
</section>
<section class="steps">
  <h2>What To Do Right Now</h2>
  <ol>
  {{range .Deck.EmergencySteps}}<li>{{.}}</li>
  {{end}}</ol>
</section>
<section class="qualifies">
  <h2>What Counts as a {{.Service.Name}} Emergency</h2>
  <p>If the problem is actively causing damage, creating a safety hazard, or leaving your home without an essential system, it is an emergency and we treat it like one. Burst lines, total system failures in extreme weather, anything you can smell or hear that should not be there: do not wait on any of these. When in doubt, call. Our dispatcher will tell you honestly whether it can safely wait for a standard appointment, and there is no charge for asking.</p>
</section>
<section class="response">
  <h2>Emergency Response in {{.Location.City}}</h2>
  <p>Emergency coverage only matters if the response is actually fast. Our on-call technicians are based in and around {{.Location.City}}, not dispatched from across the region, and the emergency trucks carry the parts that after-hours failures usually need. Emergency work is quoted the same way as daytime work: a flat price approved by you before repairs begin, so a stressful night does not turn into a padded invoice.</p>
</section>
<section class="trust">
  <h2>Why {{.Location.City}} Calls {{.Business.Name}} First</h2>
  <ul>
  {{range .Deck.TrustSignals}}<li>{{.}}</li>
  {{end}}</ul>
</section>
<section class="cta">
  <h2>Get Emergency {{.Service.Name}} Now</h2>
  <p>{{if .Business.Phone}}Call {{.Business.Phone}} immediately{{else}}Contact us immediately{{end}} for emergency {{lower .Service.Name}} in {{.Location.City}}, {{.Location.State}}. Live answer, 24 hours a day, 365 days a year.</p>
</section>
`

// pageTemplates maps template name to source. The enhanced variant is the
// standard service-location body plus the writer-produced sections.
var pageTemplates = map[string]string{
	"service":                   serviceTemplate,
	"location":                  locationTemplate,
	"service_location":          serviceLocationBody,
	"service_location_enhanced": serviceLocationBody + enhancedExtras,
	"emergency":                 emergencyTemplate,
}
