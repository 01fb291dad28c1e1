package provision

import (
	"context"
)

// ResolveProfiles performs the three independent profile lookups. Any miss
// is terminal and carries the full profile listing of that kind as a
// diagnostic.
func (s *Service) ResolveProfiles(ctx context.Context) (*ProfileSet, error) {
	countryID, err := s.resolveProfile(ctx, "asset", s.params.CountryProfileName)
	if err != nil {
		return nil, err
	}

	stateID, err := s.resolveProfile(ctx, "asset", s.params.StateProfileName)
	if err != nil {
		return nil, err
	}

	deviceID := s.params.DeviceProfileID
	if s.params.DeviceProfileName != "" {
		deviceID, err = s.resolveProfile(ctx, "device", s.params.DeviceProfileName)
		if err != nil {
			return nil, err
		}
	}

	return &ProfileSet{
		CountryProfileID: countryID,
		StateProfileID:   stateID,
		DeviceProfileID:  deviceID,
	}, nil
}

// resolveProfile searches the profile listing of the given kind for an
// exact, case-sensitive name match.
func (s *Service) resolveProfile(ctx context.Context, kind, name string) (string, error) {
	list := s.catalog.ListAssetProfiles
	if kind == "device" {
		list = s.catalog.ListDeviceProfiles
	}

	profiles, err := list(ctx, name)
	if err != nil {
		return "", err
	}
	for _, p := range profiles {
		if p.Name == name {
			return p.ID.ID, nil
		}
	}

	// Not found: fetch the unfiltered listing for the diagnostic.
	available, listErr := list(ctx, "")
	names := make([]string, 0, len(available))
	if listErr == nil {
		for _, p := range available {
			names = append(names, p.Name)
		}
	}
	return "", &ProfileNotFoundError{Kind: kind, Name: name, Available: names}
}
