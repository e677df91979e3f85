package model

// SchemaContext is the required @context value for every emitted object.
const SchemaContext = "https://schema.org"

// Schema type names emitted by the structured data builder.
const (
	SchemaTypeService          = "Service"
	SchemaTypeLocalBusiness    = "LocalBusiness"
	SchemaTypeEmergencyService = "EmergencyService"
	SchemaTypeCity             = "City"
	SchemaTypeState            = "State"
	SchemaTypePlace            = "Place"
)

// Schema is a schema.org JSON-LD node. Only @type is always present;
// @context is set on root nodes. Nested nodes reuse the same shape with
// whichever fields their type carries.
type Schema struct {
	Context     string `json:"@context,omitempty"`
	Type        string `json:"@type"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	ServiceType string `json:"serviceType,omitempty"`
	Telephone   string `json:"telephone,omitempty"`
	Email       string `json:"email,omitempty"`
	URL         string `json:"url,omitempty"`
	PriceRange  string `json:"priceRange,omitempty"`

	Address           *PostalAddress `json:"address,omitempty"`
	Provider          *Schema        `json:"provider,omitempty"`
	AreaServed        *Schema        `json:"areaServed,omitempty"`
	ContainedInPlace  *Schema        `json:"containedInPlace,omitempty"`
	AvailableAtOrFrom *Schema        `json:"availableAtOrFrom,omitempty"`

	HoursAvailable []OpeningHoursSpec `json:"hoursAvailable,omitempty"`
}

// PostalAddress is a schema.org PostalAddress node.
type PostalAddress struct {
	Type            string `json:"@type"`
	StreetAddress   string `json:"streetAddress,omitempty"`
	AddressLocality string `json:"addressLocality,omitempty"`
	AddressRegion   string `json:"addressRegion,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
	AddressCountry  string `json:"addressCountry,omitempty"`
}

// OpeningHoursSpec is a schema.org OpeningHoursSpecification node.
type OpeningHoursSpec struct {
	Type      string   `json:"@type"`
	DayOfWeek []string `json:"dayOfWeek"`
	Opens     string   `json:"opens"`
	Closes    string   `json:"closes"`
}

// AllWeek lists the seven schema.org day names in week order.
var AllWeek = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}
