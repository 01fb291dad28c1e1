package mirror

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mritunjay-prog/DeviceProvisioning/core/catalog"
	"github.com/mritunjay-prog/DeviceProvisioning/core/catalog/mocks"
)

func newFetchService(client *mocks.Client) *Service {
	return NewService(client, nil, NewClassifier("country", "state", ""), zap.NewNop())
}

func catalogUser() *catalog.UserInfo {
	return &catalog.UserInfo{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
}

func TestFetchCategorizesAndLinks(t *testing.T) {
	client := &mocks.Client{}
	uk := namedAsset("UK", "Country")
	london := namedAsset("LONDON", "State")
	widget := namedAsset("sensor-1", "Widget")

	client.On("ValidateToken", mock.Anything).Return(catalogUser(), nil)
	client.On("ListAssets", mock.Anything).Return([]catalog.Asset{uk, london, widget}, nil)
	client.On("ListDevices", mock.Anything).Return([]catalog.Device{
		{ID: catalog.EntityID{EntityType: catalog.EntityTypeDevice, ID: "dev-1"}, Name: "thermo"},
	}, nil)
	client.On("ListRelations", mock.Anything).Return([]catalog.Relation{
		catalog.NewContainsRelation(uk.ID, london.ID),
	}, nil)

	snap, err := newFetchService(client).Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []catalog.Asset{uk}, snap.Countries)
	assert.Equal(t, []catalog.Asset{london}, snap.States)
	assert.Equal(t, []catalog.Asset{widget}, snap.Others)
	assert.Len(t, snap.Devices, 1)
	assert.Equal(t, map[string]string{london.ID.ID: uk.ID.ID}, snap.StateParents)

	summary := snap.Summarize()
	assert.Equal(t, Summary{Countries: 1, States: 1, OtherAssets: 1, Devices: 1, LinkedStates: 1}, summary)
}

func TestFetchIgnoresNonCountryParents(t *testing.T) {
	client := &mocks.Client{}
	uk := namedAsset("UK", "Country")
	london := namedAsset("LONDON", "State")
	manchester := namedAsset("MANCHESTER REGION", "State")

	client.On("ValidateToken", mock.Anything).Return(catalogUser(), nil)
	client.On("ListAssets", mock.Anything).Return([]catalog.Asset{uk, london, manchester}, nil)
	client.On("ListDevices", mock.Anything).Return([]catalog.Device{}, nil)
	// Manchester hangs off another state, not a country: the edge must be
	// dropped so the fallback chain takes over at persist time.
	client.On("ListRelations", mock.Anything).Return([]catalog.Relation{
		catalog.NewContainsRelation(uk.ID, london.ID),
		catalog.NewContainsRelation(london.ID, manchester.ID),
	}, nil)

	snap, err := newFetchService(client).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{london.ID.ID: uk.ID.ID}, snap.StateParents)
	assert.Equal(t, 1, snap.Summarize().UnlinkedStates)
}

func TestFetchSurvivesRelationFailure(t *testing.T) {
	client := &mocks.Client{}
	client.On("ValidateToken", mock.Anything).Return(catalogUser(), nil)
	client.On("ListAssets", mock.Anything).Return([]catalog.Asset{namedAsset("UK", "Country")}, nil)
	client.On("ListDevices", mock.Anything).Return([]catalog.Device{}, nil)
	client.On("ListRelations", mock.Anything).Return(nil, errors.New("relation listing down"))

	snap, err := newFetchService(client).Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.StateParents)
}

func TestFetchFailsWithoutAssets(t *testing.T) {
	client := &mocks.Client{}
	client.On("ValidateToken", mock.Anything).Return(catalogUser(), nil)
	client.On("ListAssets", mock.Anything).Return([]catalog.Asset{}, nil)

	_, err := newFetchService(client).Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to mirror")
	client.AssertNotCalled(t, "ListDevices", mock.Anything)
}

func TestFetchFailsFastOnAuth(t *testing.T) {
	client := &mocks.Client{}
	client.On("ValidateToken", mock.Anything).Return(nil, catalog.ErrUnauthorized)

	_, err := newFetchService(client).Fetch(context.Background())
	require.ErrorIs(t, err, catalog.ErrUnauthorized)
	client.AssertNotCalled(t, "ListAssets", mock.Anything)
}
