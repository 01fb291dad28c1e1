package mirror

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mritunjay-prog/DeviceProvisioning/core/catalog"
)

func namedAsset(name, assetType string) catalog.Asset {
	return catalog.Asset{
		ID:   catalog.EntityID{EntityType: catalog.EntityTypeAsset, ID: name + "-id"},
		Name: name,
		Type: assetType,
	}
}

func TestProfileMatch(t *testing.T) {
	p := ProfileMatch("CountryProfile", "StateProfile", "WidgetProfile")

	cat, ok := p(namedAsset("UK", "countryprofile"))
	assert.True(t, ok)
	assert.Equal(t, CategoryCountry, cat)

	cat, ok = p(namedAsset("LONDON", "StateProfile"))
	assert.True(t, ok)
	assert.Equal(t, CategoryState, cat)

	// The device profile is a definitive match, not a fall-through: the
	// later heuristics must not get a chance to reinterpret the name.
	cat, ok = p(namedAsset("COUNTRY_SHAPED_WIDGET", "WidgetProfile"))
	assert.True(t, ok)
	assert.Equal(t, CategoryOther, cat)

	_, ok = p(namedAsset("whatever", "SomethingElse"))
	assert.False(t, ok)
}

func TestProfileMatchEmptyNamesNeverMatch(t *testing.T) {
	p := ProfileMatch("", "", "")
	_, ok := p(namedAsset("UK", ""))
	assert.False(t, ok)
}

func TestTypeKeyword(t *testing.T) {
	p := TypeKeyword()

	tests := []struct {
		assetType string
		want      Category
		matched   bool
	}{
		{"Country", CategoryCountry, true},
		{"nation-level", CategoryCountry, true},
		// "territory" is in both keyword lists; countries win.
		{"overseas territory", CategoryCountry, true},
		{"State", CategoryState, true},
		{"Federal Province", CategoryState, true},
		{"administrative district", CategoryState, true},
		{"Widget", CategoryOther, false},
	}
	for _, tc := range tests {
		cat, ok := p(namedAsset("x", tc.assetType))
		assert.Equal(t, tc.matched, ok, tc.assetType)
		if tc.matched {
			assert.Equal(t, tc.want, cat, tc.assetType)
		}
	}
}

func TestNamePattern(t *testing.T) {
	p := NamePattern()

	tests := []struct {
		name    string
		want    Category
		matched bool
	}{
		{"UK", CategoryCountry, true},
		{"USA", CategoryCountry, true},
		{"my-country-root", CategoryCountry, true},
		{"Free State", CategoryState, true},
		{"Western Province", CategoryState, true},
		{"lake region", CategoryState, true},
		{"sensor-1", CategoryOther, false},
	}
	for _, tc := range tests {
		cat, ok := p(namedAsset(tc.name, ""))
		assert.Equal(t, tc.matched, ok, tc.name)
		if tc.matched {
			assert.Equal(t, tc.want, cat, tc.name)
		}
	}
}

func TestClassifyOrdersPredicates(t *testing.T) {
	c := NewClassifier("country", "state", "")

	// Profile match wins even when the name says otherwise.
	assert.Equal(t, CategoryState, c.Classify(namedAsset("UK", "state")))
	// Keyword beats the name heuristic.
	assert.Equal(t, CategoryCountry, c.Classify(namedAsset("Bavaria State", "Nation")))
	// Name is the last resort.
	assert.Equal(t, CategoryCountry, c.Classify(namedAsset("FR", "Widget")))
	// Nothing matched.
	assert.Equal(t, CategoryOther, c.Classify(namedAsset("sensor-1", "Widget")))
}

func TestClassifyTypicalCatalog(t *testing.T) {
	c := NewClassifier("country", "state", "")

	assert.Equal(t, CategoryCountry, c.Classify(namedAsset("UK", "Country")))
	assert.Equal(t, CategoryState, c.Classify(namedAsset("LONDON", "State")))
	assert.Equal(t, CategoryOther, c.Classify(namedAsset("sensor-1", "Widget")))
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "country", CategoryCountry.String())
	assert.Equal(t, "state", CategoryState.String())
	assert.Equal(t, "other", CategoryOther.String())
}
