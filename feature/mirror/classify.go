package mirror

import (
	"strings"

	"github.com/mritunjay-prog/DeviceProvisioning/core/catalog"
)

// Category is the mirror bucket an asset lands in.
type Category int

const (
	// CategoryOther is the fall-through: persisted as a device.
	CategoryOther Category = iota
	// CategoryCountry maps to the country_asset table.
	CategoryCountry
	// CategoryState maps to the state_asset table.
	CategoryState
)

func (c Category) String() string {
	switch c {
	case CategoryCountry:
		return "country"
	case CategoryState:
		return "state"
	default:
		return "other"
	}
}

// Predicate inspects one asset and either assigns a definitive category or
// declines. Predicates are pure; the Classifier composes them in priority
// order and the first match wins.
type Predicate func(asset catalog.Asset) (Category, bool)

// ProfileMatch categorizes by exact (case-insensitive) match of the asset
// type against the configured profile names. An asset typed with the device
// profile is explicitly "other".
func ProfileMatch(countryProfile, stateProfile, deviceProfile string) Predicate {
	country := strings.ToLower(countryProfile)
	state := strings.ToLower(stateProfile)
	device := strings.ToLower(deviceProfile)

	return func(asset catalog.Asset) (Category, bool) {
		switch t := strings.ToLower(asset.Type); {
		case country != "" && t == country:
			return CategoryCountry, true
		case state != "" && t == state:
			return CategoryState, true
		case device != "" && t == device:
			return CategoryOther, true
		default:
			return CategoryOther, false
		}
	}
}

var (
	countryTypeKeywords = []string{"country", "nation", "territory"}
	stateTypeKeywords   = []string{"state", "province", "region", "territory", "district"}
)

// TypeKeyword categorizes by substring match of well-known keywords in the
// asset type. Country keywords take priority, so "territory" reads as a
// country.
func TypeKeyword() Predicate {
	return func(asset catalog.Asset) (Category, bool) {
		t := strings.ToLower(asset.Type)
		for _, kw := range countryTypeKeywords {
			if strings.Contains(t, kw) {
				return CategoryCountry, true
			}
		}
		for _, kw := range stateTypeKeywords {
			if strings.Contains(t, kw) {
				return CategoryState, true
			}
		}
		return CategoryOther, false
	}
}

// NamePattern is the last-resort heuristic on the asset name itself: short
// names (country codes) or COUNTRY/NATION substrings read as countries,
// STATE/PROVINCE/REGION substrings as states.
func NamePattern() Predicate {
	return func(asset catalog.Asset) (Category, bool) {
		name := strings.ToUpper(asset.Name)
		if len(asset.Name) <= 3 || strings.Contains(name, "COUNTRY") || strings.Contains(name, "NATION") {
			return CategoryCountry, true
		}
		if strings.Contains(name, "STATE") || strings.Contains(name, "PROVINCE") || strings.Contains(name, "REGION") {
			return CategoryState, true
		}
		return CategoryOther, false
	}
}

// Classifier dispatches an asset through an ordered predicate list.
type Classifier struct {
	predicates []Predicate
}

// NewClassifier builds the standard chain: exact profile match, then type
// keywords, then name patterns.
func NewClassifier(countryProfile, stateProfile, deviceProfile string) *Classifier {
	return &Classifier{
		predicates: []Predicate{
			ProfileMatch(countryProfile, stateProfile, deviceProfile),
			TypeKeyword(),
			NamePattern(),
		},
	}
}

// Classify returns the category of the first matching predicate, or
// CategoryOther when none match.
func (c *Classifier) Classify(asset catalog.Asset) Category {
	for _, p := range c.predicates {
		if cat, ok := p(asset); ok {
			return cat
		}
	}
	return CategoryOther
}
