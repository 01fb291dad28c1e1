package provision

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"go.uber.org/zap"

	"github.com/mritunjay-prog/DeviceProvisioning/core/catalog"
)

// Service runs the provisioning state machine against the remote catalog:
//
//	ValidateCredential -> ResolveProfiles -> LocateCountry
//	  -> LocateOrCreateState -> EnsureStateLinkedToCountry
//	  -> CreateDevice -> LinkDeviceToState -> IssueCredential -> EmitTelemetry
//
// The run is strictly sequential; the first error aborts it. There is no
// compensation for remote state already created.
type Service struct {
	catalog catalog.Client
	params  Params
	logger  *zap.Logger
}

// NewService creates a provisioning service.
func NewService(client catalog.Client, params Params, logger *zap.Logger) *Service {
	return &Service{
		catalog: client,
		params:  params,
		logger:  logger,
	}
}

// Run executes one provisioning pass. State lookup and linking are
// idempotent; device creation is not, every run creates a new device.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	user, err := s.catalog.ValidateToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("token validation failed, obtain a fresh JWT via the login command: %w", err)
	}
	s.logger.Info("token valid",
		zap.String("user", user.FirstName+" "+user.LastName))

	profiles, err := s.ResolveProfiles(ctx)
	if err != nil {
		return nil, err
	}

	assets, err := s.catalog.ListAssets(ctx)
	if err != nil {
		return nil, err
	}

	country := findAssetByName(assets, s.params.CountryName)
	if country == nil {
		return nil, &CountryNotFoundError{
			Name:       s.params.CountryName,
			Candidates: similarAssets(assets, s.params.CountryName, "COUNTRY", "NATION"),
		}
	}
	s.logger.Info("found country asset",
		zap.String("name", country.Name),
		zap.String("type", country.Type))

	result := &Result{User: user, Country: *country}

	state := findAssetByName(assets, s.params.StateName)
	if state == nil {
		s.logger.Info("state asset missing, creating it",
			zap.String("name", s.params.StateName),
			zap.Strings("similar", similarAssets(assets, s.params.StateName, "STATE", "REGION", "PROVINCE")))

		state, err = s.catalog.CreateAsset(ctx, s.params.StateName, profiles.StateProfileID, s.params.StateProfileName)
		if err != nil {
			return nil, fmt.Errorf("failed to create state asset %q: %w", s.params.StateName, err)
		}
		result.StateWasNew = true

		if err := s.catalog.SetServerAttributes(ctx, catalog.EntityTypeAsset, state.ID.ID, map[string]any{
			"latitude":  s.params.Latitude,
			"longitude": s.params.Longitude,
		}); err != nil {
			return nil, err
		}
	} else {
		s.logger.Info("found state asset",
			zap.String("name", state.Name),
			zap.String("type", state.Type))
	}
	result.State = *state

	if err := s.ensureStateLinked(ctx, country, state); err != nil {
		return nil, err
	}

	device, err := s.catalog.CreateDevice(ctx, s.params.DeviceName, profiles.DeviceProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to create device %q: %w", s.params.DeviceName, err)
	}
	result.Device = *device

	// Device-to-state linking has no existence probe; every run links the
	// freshly created device.
	if err := s.catalog.CreateRelation(ctx, catalog.NewContainsRelation(state.ID, device.ID)); err != nil {
		return nil, err
	}

	token, err := s.catalog.GetDeviceCredentials(ctx, device.ID.ID)
	if err != nil {
		return nil, err
	}
	result.DeviceToken = token

	result.Telemetry = s.buildTelemetry()
	if err := s.catalog.SendTelemetry(ctx, token, result.Telemetry); err != nil {
		return nil, err
	}

	s.logger.Info("device provisioned",
		zap.String("device", device.Name),
		zap.String("state", state.Name),
		zap.String("country", country.Name))
	return result, nil
}

// ensureStateLinked probes for the country->state edge and creates it only
// when absent, so repeated runs never duplicate it.
func (s *Service) ensureStateLinked(ctx context.Context, country, state *catalog.Asset) error {
	exists, err := s.catalog.RelationExists(ctx, country.ID, state.ID)
	if err != nil {
		return err
	}
	if exists {
		s.logger.Info("state already linked to country")
		return nil
	}
	if err := s.catalog.CreateRelation(ctx, catalog.NewContainsRelation(country.ID, state.ID)); err != nil {
		return err
	}
	s.logger.Info("linked state to country",
		zap.String("country", country.Name),
		zap.String("state", state.Name))
	return nil
}

func (s *Service) buildTelemetry() catalog.TelemetryPayload {
	return catalog.TelemetryPayload{
		SerialNumber: s.params.SerialNumber,
		Country:      s.params.CountryName,
		State:        s.params.StateName,
		Latitude:     s.params.Latitude,
		Longitude:    s.params.Longitude,
		Temperature:  math.Round((20+rand.Float64()*20)*100) / 100,
	}
}

// findAssetByName returns the first asset with a case-insensitive exact
// name match, regardless of type.
func findAssetByName(assets []catalog.Asset, name string) *catalog.Asset {
	for i := range assets {
		if strings.EqualFold(assets[i].Name, name) {
			return &assets[i]
		}
	}
	return nil
}

// similarAssets lists assets whose name contains one of the keywords or
// shares the target's first three letters, as a not-found diagnostic.
func similarAssets(assets []catalog.Asset, target string, keywords ...string) []string {
	upper := strings.ToUpper(target)
	prefix := upper
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	keywords = append(keywords, prefix)

	var names []string
	for _, a := range assets {
		nameUpper := strings.ToUpper(a.Name)
		for _, kw := range keywords {
			if kw != "" && strings.Contains(nameUpper, kw) {
				names = append(names, fmt.Sprintf("%s (%s)", a.Name, a.Type))
				break
			}
		}
	}
	return names
}
