package model

// Business is the contractor business that owns a generated page set.
// Phone and email are first-class fields so downstream widgets never have
// to scrape contact details out of rendered copy.
type Business struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Domain      string `json:"domain,omitempty"`
	Phone       string `json:"phone"`
	Email       string `json:"email,omitempty"`
	Street      string `json:"street,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	ZipCode     string `json:"zip_code,omitempty"`
	Description string `json:"description,omitempty"`
	FoundedYear int    `json:"founded_year,omitempty"`
}

// Service is a trade offering in the business's active catalog.
// Emergency marks the service as eligible for 24/7 dispatch pages.
type Service struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Emergency bool   `json:"emergency,omitempty"`
}

// Location is a served city in the business's active catalog.
// MonthlySearches is the demand estimate driving the generation policy.
type Location struct {
	ID              string `json:"id"`
	City            string `json:"city"`
	State           string `json:"state"`
	MonthlySearches int    `json:"monthly_searches"`
}

// Catalog is an immutable snapshot of the services and locations used for
// one generation run. Generation never reads catalog data from anywhere
// else.
type Catalog struct {
	Services  []Service  `json:"services"`
	Locations []Location `json:"locations"`
}

// EmergencyServices returns the services eligible for emergency pages,
// preserving catalog order.
func (c Catalog) EmergencyServices() []Service {
	var out []Service
	for _, s := range c.Services {
		if s.Emergency {
			out = append(out, s)
		}
	}
	return out
}
