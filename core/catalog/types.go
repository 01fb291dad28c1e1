package catalog

// Entity type discriminators used by the ThingsBoard REST API.
const (
	EntityTypeAsset         = "ASSET"
	EntityTypeDevice        = "DEVICE"
	EntityTypeAssetProfile  = "ASSET_PROFILE"
	EntityTypeDeviceProfile = "DEVICE_PROFILE"
)

// RelationContains is the only relation type this system manages.
// Hierarchy edges are always (parent) -Contains-> (child).
const RelationContains = "Contains"

// EntityID is the composite identifier ThingsBoard assigns to every entity.
type EntityID struct {
	EntityType string `json:"entityType"`
	ID         string `json:"id"`
}

// Asset is a non-device catalog entity (country and state nodes).
type Asset struct {
	ID   EntityID `json:"id"`
	Name string   `json:"name"`
	Type string   `json:"type"`
}

// Device is a catalog device entity.
type Device struct {
	ID    EntityID `json:"id"`
	Name  string   `json:"name"`
	Type  string   `json:"type"`
	Label string   `json:"label"`
}

// Profile is a named asset or device profile. Only the name and the opaque
// ID matter to this system; the profile body stays on the server.
type Profile struct {
	ID   EntityID `json:"id"`
	Name string   `json:"name"`
}

// Relation is a directed typed edge between two catalog entities.
type Relation struct {
	From      EntityID `json:"from"`
	To        EntityID `json:"to"`
	Type      string   `json:"type"`
	TypeGroup string   `json:"typeGroup"`
}

// Attribute is a single key/value pair from the telemetry attribute store.
// Values are loosely typed on the wire (numbers, strings, booleans).
type Attribute struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// UserInfo is the subset of the whoami response used for diagnostics.
type UserInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// TelemetryPayload is the synthetic reading posted for a freshly
// provisioned device.
type TelemetryPayload struct {
	SerialNumber string  `json:"serialNumber"`
	Country      string  `json:"country"`
	State        string  `json:"state"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Temperature  float64 `json:"temperature"`
}

// NewContainsRelation builds a "Contains" edge in the COMMON type group.
func NewContainsRelation(from, to EntityID) Relation {
	return Relation{
		From:      from,
		To:        to,
		Type:      RelationContains,
		TypeGroup: "COMMON",
	}
}
