package mirror

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mritunjay-prog/DeviceProvisioning/core/catalog"
	"github.com/mritunjay-prog/DeviceProvisioning/feature/mirror/models"
)

const (
	fallbackCountryName = "DEFAULT_COUNTRY"
	fallbackStateName   = "DEFAULT_STATE"

	assetSerialPrefix  = "ASSET_"
	deviceSerialPrefix = "DEV_"
)

// persistPass carries the cross-kind state of one Persist run: the remote
// ID to database ID translation tables and the first persisted row of each
// kind, used as the attachment fallback for orphans.
type persistPass struct {
	// countryIDs maps a country's remote ID to its database row ID.
	countryIDs map[string]uint
	// stateIDs maps a state's remote ID to (state row ID, country row ID).
	stateIDs map[string]stateRow

	firstCountryID uint
	firstState     *stateRow
}

type stateRow struct {
	stateID   uint
	countryID uint
}

// Persist upserts a snapshot into the relational sink. Each kind runs in
// its own transaction; a failed kind rolls back only itself, the pass
// continues with the remaining kinds, and the aggregated error is returned
// at the end.
func (s *Service) Persist(ctx context.Context, snap *Snapshot) error {
	pass := &persistPass{
		countryIDs: make(map[string]uint),
		stateIDs:   make(map[string]stateRow),
	}

	var errs []error
	if err := s.persistCountries(ctx, snap, pass); err != nil {
		s.logger.Error("country persistence failed", zap.Error(err))
		errs = append(errs, fmt.Errorf("countries: %w", err))
	}
	if err := s.persistStates(ctx, snap, pass); err != nil {
		s.logger.Error("state persistence failed", zap.Error(err))
		errs = append(errs, fmt.Errorf("states: %w", err))
	}
	if err := s.persistAssetDevices(ctx, snap, pass); err != nil {
		s.logger.Error("asset-device persistence failed", zap.Error(err))
		errs = append(errs, fmt.Errorf("asset devices: %w", err))
	}
	if err := s.persistDevices(ctx, snap, pass); err != nil {
		s.logger.Error("device persistence failed", zap.Error(err))
		errs = append(errs, fmt.Errorf("devices: %w", err))
	}
	return errors.Join(errs...)
}

func (s *Service) persistCountries(ctx context.Context, snap *Snapshot, pass *persistPass) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, country := range snap.Countries {
			row, err := upsertCountry(tx, country.Name)
			if err != nil {
				return err
			}
			pass.countryIDs[country.ID.ID] = row.CountryID
			if pass.firstCountryID == 0 {
				pass.firstCountryID = row.CountryID
			}
			s.logger.Debug("country mirrored",
				zap.String("name", country.Name),
				zap.Uint("country_id", row.CountryID))
		}
		return nil
	})
}

func (s *Service) persistStates(ctx context.Context, snap *Snapshot, pass *persistPass) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, state := range snap.States {
			countryID, err := s.resolveStateCountry(tx, snap, pass, state)
			if err != nil {
				return err
			}
			row, err := upsertState(tx, state.Name, countryID)
			if err != nil {
				return err
			}
			pass.stateIDs[state.ID.ID] = stateRow{stateID: row.StateID, countryID: countryID}
			if pass.firstState == nil {
				pass.firstState = &stateRow{stateID: row.StateID, countryID: countryID}
			}
			s.logger.Debug("state mirrored",
				zap.String("name", state.Name),
				zap.Uint("state_id", row.StateID),
				zap.Uint("country_id", countryID))
		}
		return nil
	})
}

// resolveStateCountry finds the database country ID for a state: the
// inferred parent when known, otherwise the first persisted country,
// otherwise a created DEFAULT_COUNTRY.
func (s *Service) resolveStateCountry(tx *gorm.DB, snap *Snapshot, pass *persistPass, state catalog.Asset) (uint, error) {
	if parentRemoteID, ok := snap.StateParents[state.ID.ID]; ok {
		if id, known := pass.countryIDs[parentRemoteID]; known {
			return id, nil
		}
	}
	if pass.firstCountryID != 0 {
		s.logger.Warn("state has no resolvable parent, attaching to first country",
			zap.String("state", state.Name))
		return pass.firstCountryID, nil
	}
	row, err := upsertCountry(tx, fallbackCountryName)
	if err != nil {
		return 0, err
	}
	s.logger.Warn("no countries mirrored, created fallback",
		zap.String("state", state.Name),
		zap.String("country", fallbackCountryName))
	pass.firstCountryID = row.CountryID
	return row.CountryID, nil
}

// resolveDeviceState finds the attachment point for a device row: the
// first persisted state, otherwise a created DEFAULT_STATE under the
// fallback country chain.
func (s *Service) resolveDeviceState(tx *gorm.DB, pass *persistPass) (stateRow, error) {
	if pass.firstState != nil {
		return *pass.firstState, nil
	}
	countryID := pass.firstCountryID
	if countryID == 0 {
		country, err := upsertCountry(tx, fallbackCountryName)
		if err != nil {
			return stateRow{}, err
		}
		countryID = country.CountryID
		pass.firstCountryID = countryID
	}
	state, err := upsertState(tx, fallbackStateName, countryID)
	if err != nil {
		return stateRow{}, err
	}
	s.logger.Warn("no states mirrored, created fallback",
		zap.String("state", fallbackStateName))
	pass.firstState = &stateRow{stateID: state.StateID, countryID: countryID}
	return *pass.firstState, nil
}

// persistAssetDevices mirrors uncategorized assets as device rows.
func (s *Service) persistAssetDevices(ctx context.Context, snap *Snapshot, pass *persistPass) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, asset := range snap.Others {
			parent, err := s.resolveDeviceState(tx, pass)
			if err != nil {
				return err
			}
			lat, lon := s.assetCoordinates(ctx, asset.ID.ID)
			serial := assetSerialPrefix + shortID(asset.ID.ID)
			if err := upsertDevice(tx, asset.Name, serial, defaultFirmwareVersion, lat, lon, parent); err != nil {
				return err
			}
			s.logger.Debug("asset mirrored as device",
				zap.String("name", asset.Name),
				zap.String("serial", serial))
		}
		return nil
	})
}

// persistDevices mirrors real catalog devices.
func (s *Service) persistDevices(ctx context.Context, snap *Snapshot, pass *persistPass) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, device := range snap.Devices {
			parent, err := s.resolveDeviceState(tx, pass)
			if err != nil {
				return err
			}
			lat, lon, firmware := s.deviceAttributes(ctx, device.ID.ID)
			serial := device.Label
			if serial == "" {
				serial = deviceSerialPrefix + shortID(device.ID.ID)
			}
			if err := upsertDevice(tx, device.Name, serial, firmware, lat, lon, parent); err != nil {
				return err
			}
			s.logger.Debug("device mirrored",
				zap.String("name", device.Name),
				zap.String("serial", serial))
		}
		return nil
	})
}

func upsertCountry(tx *gorm.DB, name string) (*models.CountryAsset, error) {
	var row models.CountryAsset
	err := tx.Where(&models.CountryAsset{CountryName: name}).
		FirstOrCreate(&row).Error
	if err != nil {
		return nil, fmt.Errorf("upsert country %q: %w", name, err)
	}
	return &row, nil
}

func upsertState(tx *gorm.DB, name string, countryID uint) (*models.StateAsset, error) {
	var row models.StateAsset
	err := tx.Where(&models.StateAsset{StateName: name, CountryID: countryID}).
		FirstOrCreate(&row).Error
	if err != nil {
		return nil, fmt.Errorf("upsert state %q: %w", name, err)
	}
	return &row, nil
}

func upsertDevice(tx *gorm.DB, name, serial, firmware string, lat, lon float64, parent stateRow) error {
	var row models.Device
	err := tx.Where(&models.Device{SerialNumber: serial}).
		Assign(map[string]any{
			"device_name":      name,
			"firmware_version": firmware,
			"location_lat":     lat,
			"location_lon":     lon,
			"state_id":         parent.stateID,
			"country_id":       parent.countryID,
		}).
		FirstOrCreate(&row).Error
	if err != nil {
		return fmt.Errorf("upsert device %q: %w", serial, err)
	}
	return nil
}

// shortID truncates a remote UUID to the serial suffix length.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
