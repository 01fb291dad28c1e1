package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Config{
		BaseURL:  srv.URL,
		JWTToken: "test-token",
		PageSize: 1000,
	}, zap.NewNop())
	return client, srv
}

func TestValidateToken(t *testing.T) {
	t.Run("valid token", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/auth/user", r.URL.Path)
			assert.Equal(t, "Bearer test-token", r.Header.Get("X-Authorization"))
			_ = json.NewEncoder(w).Encode(UserInfo{FirstName: "Test", LastName: "Admin"})
		})

		user, err := client.ValidateToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Test", user.FirstName)
	})

	t.Run("expired token", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, err := client.ValidateToken(context.Background())
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("unexpected status is still terminal", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := client.ValidateToken(context.Background())
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestListAssets(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tenant/assets", r.URL.Path)
		assert.Equal(t, "1000", r.URL.Query().Get("pageSize"))
		assert.Equal(t, "0", r.URL.Query().Get("page"))
		assert.Equal(t, "name", r.URL.Query().Get("sortProperty"))
		_ = json.NewEncoder(w).Encode(assetPage{Data: []Asset{
			{ID: EntityID{EntityType: EntityTypeAsset, ID: "a1"}, Name: "UK", Type: "Country"},
			{ID: EntityID{EntityType: EntityTypeAsset, ID: "a2"}, Name: "LONDON", Type: "State"},
		}})
	})

	assets, err := client.ListAssets(context.Background())
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, "UK", assets[0].Name)
	assert.Equal(t, "a2", assets[1].ID.ID)
}

func TestCreateAsset(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/asset", r.URL.Path)
			var body createAssetRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "LONDON", body.Name)
			assert.Equal(t, EntityTypeAssetProfile, body.AssetProfileID.EntityType)
			assert.Equal(t, "p-state", body.AssetProfileID.ID)

			_ = json.NewEncoder(w).Encode(Asset{
				ID:   EntityID{EntityType: EntityTypeAsset, ID: "new-id"},
				Name: body.Name,
				Type: body.Type,
			})
		})

		asset, err := client.CreateAsset(context.Background(), "LONDON", "p-state", "StateProfile")
		require.NoError(t, err)
		assert.Equal(t, "new-id", asset.ID.ID)
	})

	t.Run("403 maps to permission denied", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})

		_, err := client.CreateAsset(context.Background(), "LONDON", "p-state", "StateProfile")
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}

func TestCreateDevice(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/device", r.URL.Path)
		var body createDeviceRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, body.Name, body.Label)
		assert.Equal(t, false, body.AdditionalInfo["gateway"])

		_ = json.NewEncoder(w).Encode(Device{
			ID:   EntityID{EntityType: EntityTypeDevice, ID: "d1"},
			Name: body.Name,
		})
	})

	device, err := client.CreateDevice(context.Background(), "sensor-1", "p-dev")
	require.NoError(t, err)
	assert.Equal(t, "d1", device.ID.ID)
}

func TestRelationExists(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   bool
	}{
		{name: "200 means exists", status: http.StatusOK, want: true},
		{name: "404 means absent", status: http.StatusNotFound, want: false},
		{name: "500 also reads as absent", status: http.StatusInternalServerError, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/relation/info", r.URL.Path)
				assert.Equal(t, RelationContains, r.URL.Query().Get("relationType"))
				w.WriteHeader(tt.status)
			})

			from := EntityID{EntityType: EntityTypeAsset, ID: "country"}
			to := EntityID{EntityType: EntityTypeAsset, ID: "state"}
			exists, err := client.RelationExists(context.Background(), from, to)
			require.NoError(t, err)
			assert.Equal(t, tt.want, exists)
		})
	}
}

func TestListAssetProfiles(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/assetProfiles", r.URL.Path)
		assert.Equal(t, "StateProfile", r.URL.Query().Get("textSearch"))
		_ = json.NewEncoder(w).Encode(profilePage{Data: []Profile{
			{ID: EntityID{EntityType: EntityTypeAssetProfile, ID: "p1"}, Name: "StateProfile"},
		}})
	})

	profiles, err := client.ListAssetProfiles(context.Background(), "StateProfile")
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "p1", profiles[0].ID.ID)
}

func TestGetDeviceCredentials(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/device/d1/credentials", r.URL.Path)
		_ = json.NewEncoder(w).Encode(credentialsResponse{CredentialsID: "device-token"})
	})

	token, err := client.GetDeviceCredentials(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, "device-token", token)
}

func TestSendTelemetry(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Telemetry ingestion authenticates by device token only.
		assert.Equal(t, "/api/v1/device-token/telemetry", r.URL.Path)
		assert.Empty(t, r.Header.Get("X-Authorization"))

		var body TelemetryPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "SN12345678", body.SerialNumber)
	})

	err := client.SendTelemetry(context.Background(), "device-token", TelemetryPayload{
		SerialNumber: "SN12345678",
		Country:      "UK",
		State:        "LONDON",
		Temperature:  25.5,
	})
	require.NoError(t, err)
}

func TestSetServerAttributes(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/plugins/telemetry/ASSET/a1/attributes/SERVER_SCOPE", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.InDelta(t, 51.5074, body["latitude"], 0.0001)
	})

	err := client.SetServerAttributes(context.Background(), EntityTypeAsset, "a1", map[string]any{
		"latitude":  51.5074,
		"longitude": -0.1278,
	})
	require.NoError(t, err)
}

func TestGetAttributes(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/plugins/telemetry/DEVICE/d1/values/attributes/SERVER_SCOPE", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]Attribute{
			{Key: "latitude", Value: 19.076},
			{Key: "firmwareVersion", Value: "2.1.0"},
		})
	})

	attrs, err := client.GetAttributes(context.Background(), EntityTypeDevice, "d1", "SERVER_SCOPE")
	require.NoError(t, err)
	require.Len(t, attrs, 2)
	assert.Equal(t, "latitude", attrs[0].Key)
}

func TestLogin(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		var body loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "tenant@example.com", body.Username)
		_ = json.NewEncoder(w).Encode(loginResponse{Token: "fresh-jwt"})
	})

	token, err := client.Login(context.Background(), "tenant@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "fresh-jwt", token)
}
