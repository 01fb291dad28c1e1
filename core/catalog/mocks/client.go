package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mritunjay-prog/DeviceProvisioning/core/catalog"
)

// Client is a mock implementation of catalog.Client
type Client struct {
	mock.Mock
}

func (m *Client) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *Client) ValidateToken(ctx context.Context) (*catalog.UserInfo, error) {
	args := m.Called(ctx)
	if user, ok := args.Get(0).(*catalog.UserInfo); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) ListAssets(ctx context.Context) ([]catalog.Asset, error) {
	args := m.Called(ctx)
	if assets, ok := args.Get(0).([]catalog.Asset); ok {
		return assets, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) ListDevices(ctx context.Context) ([]catalog.Device, error) {
	args := m.Called(ctx)
	if devices, ok := args.Get(0).([]catalog.Device); ok {
		return devices, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) ListRelations(ctx context.Context) ([]catalog.Relation, error) {
	args := m.Called(ctx)
	if rels, ok := args.Get(0).([]catalog.Relation); ok {
		return rels, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) ListAssetProfiles(ctx context.Context, textSearch string) ([]catalog.Profile, error) {
	args := m.Called(ctx, textSearch)
	if profiles, ok := args.Get(0).([]catalog.Profile); ok {
		return profiles, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) ListDeviceProfiles(ctx context.Context, textSearch string) ([]catalog.Profile, error) {
	args := m.Called(ctx, textSearch)
	if profiles, ok := args.Get(0).([]catalog.Profile); ok {
		return profiles, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) CreateAsset(ctx context.Context, name, profileID, typeLabel string) (*catalog.Asset, error) {
	args := m.Called(ctx, name, profileID, typeLabel)
	if asset, ok := args.Get(0).(*catalog.Asset); ok {
		return asset, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) CreateDevice(ctx context.Context, name, profileID string) (*catalog.Device, error) {
	args := m.Called(ctx, name, profileID)
	if device, ok := args.Get(0).(*catalog.Device); ok {
		return device, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) CreateRelation(ctx context.Context, rel catalog.Relation) error {
	args := m.Called(ctx, rel)
	return args.Error(0)
}

func (m *Client) RelationExists(ctx context.Context, from, to catalog.EntityID) (bool, error) {
	args := m.Called(ctx, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *Client) SetServerAttributes(ctx context.Context, entityType, entityID string, attrs map[string]any) error {
	args := m.Called(ctx, entityType, entityID, attrs)
	return args.Error(0)
}

func (m *Client) GetAttributes(ctx context.Context, entityType, entityID, scope string) ([]catalog.Attribute, error) {
	args := m.Called(ctx, entityType, entityID, scope)
	if attrs, ok := args.Get(0).([]catalog.Attribute); ok {
		return attrs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) GetDeviceCredentials(ctx context.Context, deviceID string) (string, error) {
	args := m.Called(ctx, deviceID)
	return args.String(0), args.Error(1)
}

func (m *Client) SendTelemetry(ctx context.Context, deviceToken string, payload catalog.TelemetryPayload) error {
	args := m.Called(ctx, deviceToken, payload)
	return args.Error(0)
}
