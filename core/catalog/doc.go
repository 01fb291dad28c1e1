// Package catalog is the typed client for the remote device-management
// platform (ThingsBoard). It exposes the small set of operations the
// provisioner and the mirror need: bounded listings, create calls for
// assets, devices and relations, a relation-existence probe, attribute
// read/write, device credentials, and telemetry ingestion.
//
// # Trust boundaries
//
// Management calls authenticate with the tenant JWT in the X-Authorization
// header. Telemetry ingestion authenticates with the device's own access
// token embedded in the URL path and carries no tenant credential.
//
// # Failure model
//
// Every call is attempted exactly once. Non-2xx responses surface as
// *APIError; 401 and 403 additionally match the ErrUnauthorized and
// ErrPermissionDenied sentinels through errors.Is. There is no retry and
// no rollback: a failed step in a multi-call flow leaves whatever state
// previous calls already created.
//
// # Usage
//
//	client := catalog.NewClient(cfg.Catalog(), log)
//	user, err := client.ValidateToken(ctx)
package catalog
