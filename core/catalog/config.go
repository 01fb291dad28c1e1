package catalog

// Config holds everything the catalog client needs to talk to ThingsBoard.
// It is assembled once from the application configuration and passed into
// NewClient; the client never reads ambient state.
type Config struct {
	// BaseURL is the ThingsBoard server URL, without a trailing slash.
	BaseURL string
	// JWTToken is the tenant bearer token attached to every API call.
	JWTToken string
	// DeviceEndpoint is the device CRUD path (default "/api/device").
	DeviceEndpoint string
	// TenantDevicesEndpoint is the tenant device listing path
	// (default "/api/tenant/devices").
	TenantDevicesEndpoint string
	// PageSize bounds every listing call. Listings read a single page; the
	// page size must cover the deployment.
	PageSize int
	// TimeoutSeconds is the per-request HTTP timeout.
	TimeoutSeconds int
}
