package cost

// Rates holds per-model token pricing (USD per million tokens).
type Rates struct {
	Anthropic map[string]ModelRate `yaml:"anthropic" mapstructure:"anthropic"`
}

// ModelRate holds one model's token pricing.
type ModelRate struct {
	Input  float64 `yaml:"input" mapstructure:"input"`
	Output float64 `yaml:"output" mapstructure:"output"`
}

// Calculator prices enhanced-page generation. Template pages are free by
// construction; every dollar in a deployment comes from writer calls.
type Calculator struct {
	rates     Rates
	avgInput  int
	avgOutput int
}

// NewCalculator creates a Calculator. avgInput/avgOutput are the per-page
// token assumptions used for estimates before any call is made.
func NewCalculator(rates Rates, avgInput, avgOutput int) *Calculator {
	if avgInput <= 0 {
		avgInput = 900
	}
	if avgOutput <= 0 {
		avgOutput = 700
	}
	return &Calculator{rates: rates, avgInput: avgInput, avgOutput: avgOutput}
}

// Claude computes the cost of actual token usage against a model.
// Returns 0 for unknown models.
func (c *Calculator) Claude(model string, input, output int) float64 {
	rate, ok := c.rates.Anthropic[model]
	if !ok {
		return 0
	}
	return (float64(input)/1e6)*rate.Input + (float64(output)/1e6)*rate.Output
}

// EnhancedPage estimates the cost of one enhanced page using the average
// token assumptions.
func (c *Calculator) EnhancedPage(model string) float64 {
	return c.Claude(model, c.avgInput, c.avgOutput)
}

// Deployment estimates the writer spend for a full deployment with the
// given number of enhanced pages.
func (c *Calculator) Deployment(model string, enhancedPages int) float64 {
	if enhancedPages <= 0 {
		return 0
	}
	return float64(enhancedPages) * c.EnhancedPage(model)
}

// DefaultRates returns the default pricing rates.
func DefaultRates() Rates {
	return Rates{
		Anthropic: map[string]ModelRate{
			"claude-haiku-4-5-20251001":  {Input: 0.80, Output: 4.00},
			"claude-sonnet-4-5-20250929": {Input: 3.00, Output: 15.00},
		},
	}
}
