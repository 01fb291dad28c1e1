package provision

import (
	"fmt"
	"strings"

	"github.com/mritunjay-prog/DeviceProvisioning/core/catalog"
)

// Params is everything a provisioning run needs, resolved up front from
// configuration and the location lookup.
type Params struct {
	// CountryName is the pre-existing top-level anchor. Never auto-created.
	CountryName string
	// StateName is located or auto-created under the country.
	StateName string
	// DeviceName names the device entity created by this run.
	DeviceName string
	// SerialNumber is reported in the telemetry sample.
	SerialNumber string

	CountryProfileName string
	StateProfileName   string
	DeviceProfileName  string
	// DeviceProfileID is used directly when DeviceProfileName is empty.
	DeviceProfileID string

	Latitude  float64
	Longitude float64
}

// ProfileSet holds the three resolved profile IDs a run depends on.
type ProfileSet struct {
	CountryProfileID string
	StateProfileID   string
	DeviceProfileID  string
}

// Result reports what a completed run converged to.
type Result struct {
	User        *catalog.UserInfo
	Country     catalog.Asset
	State       catalog.Asset
	StateWasNew bool
	Device      catalog.Device
	DeviceToken string
	Telemetry   catalog.TelemetryPayload
}

// ProfileNotFoundError is terminal: creation payloads require profile IDs,
// so the run cannot proceed past an unresolved profile. Available lists the
// profiles of the searched kind as a configuration aid.
type ProfileNotFoundError struct {
	Kind      string
	Name      string
	Available []string
}

func (e *ProfileNotFoundError) Error() string {
	return fmt.Sprintf("%s profile %q not found; available %s profiles: %s",
		e.Kind, e.Name, e.Kind, strings.Join(e.Available, ", "))
}

// CountryNotFoundError is terminal: country assets are stable top-level
// anchors and are never auto-created, so a miss means the configuration or
// the catalog must be fixed first.
type CountryNotFoundError struct {
	Name       string
	Candidates []string
}

func (e *CountryNotFoundError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("country asset %q not found and no similar assets exist; create it in the catalog before provisioning", e.Name)
	}
	return fmt.Sprintf("country asset %q not found; similar assets: %s (create the country in the catalog or fix assets.country_name)",
		e.Name, strings.Join(e.Candidates, ", "))
}
