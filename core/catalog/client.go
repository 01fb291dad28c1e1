package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client defines the typed operations this system performs against the
// remote catalog. All mutating calls change remote state directly; there is
// no transaction or rollback across calls.
type Client interface {
	// Login exchanges username/password for a tenant JWT token.
	Login(ctx context.Context, username, password string) (string, error)
	// ValidateToken calls the whoami endpoint. A non-200 response is an
	// ErrUnauthorized; callers must not proceed past a failed validation.
	ValidateToken(ctx context.Context) (*UserInfo, error)
	// ListAssets returns a single bounded page of all tenant assets.
	ListAssets(ctx context.Context) ([]Asset, error)
	// ListDevices returns a single bounded page of all tenant devices.
	ListDevices(ctx context.Context) ([]Device, error)
	// ListRelations returns a single bounded page of all relations.
	ListRelations(ctx context.Context) ([]Relation, error)
	// ListAssetProfiles returns asset profiles, optionally narrowed by a
	// server-side text search.
	ListAssetProfiles(ctx context.Context, textSearch string) ([]Profile, error)
	// ListDeviceProfiles returns device profiles, optionally narrowed by a
	// server-side text search.
	ListDeviceProfiles(ctx context.Context, textSearch string) ([]Profile, error)
	// CreateAsset creates an asset with the given profile. A 403 surfaces
	// as ErrPermissionDenied and is terminal.
	CreateAsset(ctx context.Context, name, profileID, typeLabel string) (*Asset, error)
	// CreateDevice creates a device with the given device profile.
	CreateDevice(ctx context.Context, name, profileID string) (*Device, error)
	// CreateRelation creates the given edge. The server does not deduplicate.
	CreateRelation(ctx context.Context, rel Relation) error
	// RelationExists probes the relation-info endpoint for a "Contains"
	// edge. HTTP 200 means the edge exists; any other status reads as
	// absent. Only transport failures return an error.
	RelationExists(ctx context.Context, from, to EntityID) (bool, error)
	// SetServerAttributes writes SERVER_SCOPE attributes on an entity.
	SetServerAttributes(ctx context.Context, entityType, entityID string, attrs map[string]any) error
	// GetAttributes reads attributes of the given scope ("SERVER_SCOPE" or
	// "CLIENT_SCOPE") for an entity.
	GetAttributes(ctx context.Context, entityType, entityID, scope string) ([]Attribute, error)
	// GetDeviceCredentials fetches the per-device access token. The token is
	// issued once; re-fetching returns the same value.
	GetDeviceCredentials(ctx context.Context, deviceID string) (string, error)
	// SendTelemetry posts one reading authenticated by the device's own
	// token, not the tenant bearer token.
	SendTelemetry(ctx context.Context, deviceToken string, payload TelemetryPayload) error
}

type restClient struct {
	api    *resty.Client
	ingest *resty.Client
	cfg    Config
	logger *zap.Logger
}

// NewClient creates a catalog client backed by two resty clients: one
// carrying the tenant bearer token for the management API, and a bare one
// for telemetry ingestion, which authenticates by device token in the path.
func NewClient(cfg Config, logger *zap.Logger) Client {
	if cfg.DeviceEndpoint == "" {
		cfg.DeviceEndpoint = "/api/device"
	}
	if cfg.TenantDevicesEndpoint == "" {
		cfg.TenantDevicesEndpoint = "/api/tenant/devices"
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 1000
	}
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	base := strings.TrimSuffix(cfg.BaseURL, "/")

	api := resty.New().
		SetBaseURL(base).
		SetTimeout(time.Duration(timeout) * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Authorization", "Bearer "+cfg.JWTToken)

	ingest := resty.New().
		SetBaseURL(base).
		SetTimeout(time.Duration(timeout) * time.Second).
		SetHeader("Content-Type", "application/json")

	return &restClient{
		api:    api,
		ingest: ingest,
		cfg:    cfg,
		logger: logger,
	}
}

// pageParams are the listing parameters used by every bounded-page call.
func (c *restClient) pageParams() map[string]string {
	return map[string]string{
		"pageSize":     strconv.Itoa(c.cfg.PageSize),
		"page":         "0",
		"sortProperty": "name",
		"sortOrder":    "ASC",
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (c *restClient) Login(ctx context.Context, username, password string) (string, error) {
	var out loginResponse
	resp, err := c.ingest.R().
		SetContext(ctx).
		SetBody(loginRequest{Username: username, Password: password}).
		SetResult(&out).
		Post("/api/auth/login")
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if !resp.IsSuccess() {
		return "", &APIError{Op: "login", StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	if out.Token == "" {
		return "", fmt.Errorf("login: no token in response")
	}
	return out.Token, nil
}

func (c *restClient) ValidateToken(ctx context.Context) (*UserInfo, error) {
	var user UserInfo
	resp, err := c.api.R().
		SetContext(ctx).
		SetResult(&user).
		Get("/api/auth/user")
	if err != nil {
		return nil, fmt.Errorf("validate token: %w", err)
	}
	if resp.StatusCode() != 200 {
		c.logger.Error("token validation failed",
			zap.Int("status", resp.StatusCode()))
		return nil, fmt.Errorf("validate token (status %d): %w", resp.StatusCode(), ErrUnauthorized)
	}
	return &user, nil
}

type assetPage struct {
	Data []Asset `json:"data"`
}

func (c *restClient) ListAssets(ctx context.Context) ([]Asset, error) {
	var page assetPage
	resp, err := c.api.R().
		SetContext(ctx).
		SetQueryParams(c.pageParams()).
		SetResult(&page).
		Get("/api/tenant/assets")
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, &APIError{Op: "list assets", StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	return page.Data, nil
}

type devicePage struct {
	Data []Device `json:"data"`
}

func (c *restClient) ListDevices(ctx context.Context) ([]Device, error) {
	var page devicePage
	resp, err := c.api.R().
		SetContext(ctx).
		SetQueryParams(c.pageParams()).
		SetResult(&page).
		Get(c.cfg.TenantDevicesEndpoint)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, &APIError{Op: "list devices", StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	return page.Data, nil
}

type relationPage struct {
	Data []Relation `json:"data"`
}

func (c *restClient) ListRelations(ctx context.Context) ([]Relation, error) {
	var page relationPage
	resp, err := c.api.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"pageSize": strconv.Itoa(c.cfg.PageSize),
			"page":     "0",
		}).
		SetResult(&page).
		Get("/api/relations")
	if err != nil {
		return nil, fmt.Errorf("list relations: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, &APIError{Op: "list relations", StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	return page.Data, nil
}

type profilePage struct {
	Data []Profile `json:"data"`
}

func (c *restClient) listProfiles(ctx context.Context, path, textSearch string) ([]Profile, error) {
	params := c.pageParams()
	if textSearch != "" {
		params["textSearch"] = textSearch
	}
	var page profilePage
	resp, err := c.api.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&page).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("list profiles %s: %w", path, err)
	}
	if !resp.IsSuccess() {
		return nil, &APIError{Op: "list profiles " + path, StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	return page.Data, nil
}

func (c *restClient) ListAssetProfiles(ctx context.Context, textSearch string) ([]Profile, error) {
	return c.listProfiles(ctx, "/api/assetProfiles", textSearch)
}

func (c *restClient) ListDeviceProfiles(ctx context.Context, textSearch string) ([]Profile, error) {
	return c.listProfiles(ctx, "/api/deviceProfiles", textSearch)
}

type createAssetRequest struct {
	Name           string         `json:"name"`
	Type           string         `json:"type"`
	AssetProfileID EntityID       `json:"assetProfileId"`
	AdditionalInfo map[string]any `json:"additionalInfo"`
}

func (c *restClient) CreateAsset(ctx context.Context, name, profileID, typeLabel string) (*Asset, error) {
	body := createAssetRequest{
		Name: name,
		Type: typeLabel,
		AssetProfileID: EntityID{
			EntityType: EntityTypeAssetProfile,
			ID:         profileID,
		},
		AdditionalInfo: map[string]any{
			"description": fmt.Sprintf("%s asset created by provisioner", typeLabel),
		},
	}
	var asset Asset
	resp, err := c.api.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&asset).
		Post("/api/asset")
	if err != nil {
		return nil, fmt.Errorf("create asset %q: %w", name, err)
	}
	if resp.StatusCode() == 403 {
		c.logger.Error("asset creation forbidden, token lacks tenant admin privileges",
			zap.String("name", name),
			zap.String("response", resp.String()))
		return nil, fmt.Errorf("create asset %q: %w", name, ErrPermissionDenied)
	}
	if !resp.IsSuccess() {
		return nil, &APIError{Op: "create asset " + name, StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	c.logger.Info("created asset",
		zap.String("name", asset.Name),
		zap.String("id", asset.ID.ID))
	return &asset, nil
}

type createDeviceRequest struct {
	Name            string         `json:"name"`
	Label           string         `json:"label"`
	DeviceProfileID EntityID       `json:"deviceProfileId"`
	AdditionalInfo  map[string]any `json:"additionalInfo"`
}

func (c *restClient) CreateDevice(ctx context.Context, name, profileID string) (*Device, error) {
	body := createDeviceRequest{
		Name:  name,
		Label: name,
		DeviceProfileID: EntityID{
			EntityType: EntityTypeDeviceProfile,
			ID:         profileID,
		},
		AdditionalInfo: map[string]any{
			"gateway":               false,
			"overwriteActivityTime": false,
			"description":           "Simulated IoT device",
		},
	}
	var device Device
	resp, err := c.api.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&device).
		Post(c.cfg.DeviceEndpoint)
	if err != nil {
		return nil, fmt.Errorf("create device %q: %w", name, err)
	}
	if !resp.IsSuccess() {
		return nil, &APIError{Op: "create device " + name, StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	c.logger.Info("created device",
		zap.String("name", device.Name),
		zap.String("id", device.ID.ID))
	return &device, nil
}

func (c *restClient) CreateRelation(ctx context.Context, rel Relation) error {
	resp, err := c.api.R().
		SetContext(ctx).
		SetBody(rel).
		Post("/api/relation")
	if err != nil {
		return fmt.Errorf("create relation: %w", err)
	}
	if !resp.IsSuccess() {
		return &APIError{Op: "create relation", StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}

func (c *restClient) RelationExists(ctx context.Context, from, to EntityID) (bool, error) {
	resp, err := c.api.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"fromId":       from.ID,
			"fromType":     from.EntityType,
			"toId":         to.ID,
			"toType":       to.EntityType,
			"relationType": RelationContains,
		}).
		Get("/api/relation/info")
	if err != nil {
		return false, fmt.Errorf("relation exists: %w", err)
	}
	// Any non-200 status reads as absent, including failures unrelated to
	// existence. Accepted simplification of the probe contract.
	return resp.StatusCode() == 200, nil
}

func (c *restClient) SetServerAttributes(ctx context.Context, entityType, entityID string, attrs map[string]any) error {
	path := fmt.Sprintf("/api/plugins/telemetry/%s/%s/attributes/SERVER_SCOPE", entityType, entityID)
	resp, err := c.api.R().
		SetContext(ctx).
		SetBody(attrs).
		Post(path)
	if err != nil {
		return fmt.Errorf("set attributes on %s %s: %w", entityType, entityID, err)
	}
	if !resp.IsSuccess() {
		return &APIError{Op: "set attributes on " + entityType + " " + entityID, StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}

func (c *restClient) GetAttributes(ctx context.Context, entityType, entityID, scope string) ([]Attribute, error) {
	path := fmt.Sprintf("/api/plugins/telemetry/%s/%s/values/attributes/%s", entityType, entityID, scope)
	var attrs []Attribute
	resp, err := c.api.R().
		SetContext(ctx).
		SetResult(&attrs).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("get attributes of %s %s: %w", entityType, entityID, err)
	}
	if !resp.IsSuccess() {
		return nil, &APIError{Op: "get attributes of " + entityType + " " + entityID, StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	return attrs, nil
}

type credentialsResponse struct {
	CredentialsID string `json:"credentialsId"`
}

func (c *restClient) GetDeviceCredentials(ctx context.Context, deviceID string) (string, error) {
	var creds credentialsResponse
	resp, err := c.api.R().
		SetContext(ctx).
		SetResult(&creds).
		Get(c.cfg.DeviceEndpoint + "/" + deviceID + "/credentials")
	if err != nil {
		return "", fmt.Errorf("get device credentials: %w", err)
	}
	if !resp.IsSuccess() {
		return "", &APIError{Op: "get device credentials", StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	return creds.CredentialsID, nil
}

func (c *restClient) SendTelemetry(ctx context.Context, deviceToken string, payload TelemetryPayload) error {
	resp, err := c.ingest.R().
		SetContext(ctx).
		SetBody(payload).
		Post("/api/v1/" + deviceToken + "/telemetry")
	if err != nil {
		return fmt.Errorf("send telemetry: %w", err)
	}
	if !resp.IsSuccess() {
		return &APIError{Op: "send telemetry", StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	c.logger.Info("telemetry sent",
		zap.String("serial_number", payload.SerialNumber),
		zap.Float64("temperature", payload.Temperature))
	return nil
}
