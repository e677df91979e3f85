package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaMarshal_RootKeys(t *testing.T) {
	t.Parallel()

	s := &Schema{
		Context:     SchemaContext,
		Type:        SchemaTypeService,
		Name:        "HVAC Repair in Austin",
		ServiceType: "HVAC Repair",
		Provider: &Schema{
			Type:      SchemaTypeLocalBusiness,
			Name:      "Lone Star Climate Co",
			Telephone: "(512) 555-0142",
		},
	}

	raw, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "https://schema.org", decoded["@context"])
	assert.Equal(t, "Service", decoded["@type"])

	provider, ok := decoded["provider"].(map[string]any)
	require.True(t, ok, "provider should be a nested object")
	assert.Equal(t, "LocalBusiness", provider["@type"])
	// Nested nodes omit @context.
	_, hasContext := provider["@context"]
	assert.False(t, hasContext)
}

func TestSchemaMarshal_OmitsEmpty(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(&Schema{Type: SchemaTypeLocalBusiness, Context: SchemaContext})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Len(t, decoded, 2, "only @context and @type should be present, got %v", decoded)
}

func TestAllWeekCoversSevenDays(t *testing.T) {
	t.Parallel()

	require.Len(t, AllWeek, 7)
	assert.Equal(t, "Monday", AllWeek[0])
	assert.Equal(t, "Sunday", AllWeek[6])
}
