package mirror

import (
	"context"

	"go.uber.org/zap"

	"github.com/mritunjay-prog/DeviceProvisioning/core/catalog"
	"github.com/mritunjay-prog/DeviceProvisioning/core/utils"
)

const defaultFirmwareVersion = "1.0.0"

var firmwareAttributeKeys = map[string]struct{}{
	"firmwareVersion":  {},
	"firmware_version": {},
	"version":          {},
}

// extractCoordinates pulls latitude/longitude out of an attribute listing.
// Nil means the attribute was absent or unparsable.
func extractCoordinates(attrs []catalog.Attribute) (lat, lon *float64) {
	for _, attr := range attrs {
		switch attr.Key {
		case "latitude":
			if v, ok := utils.ToFloat64(attr.Value); ok {
				lat = &v
			}
		case "longitude":
			if v, ok := utils.ToFloat64(attr.Value); ok {
				lon = &v
			}
		}
	}
	return lat, lon
}

func extractFirmware(attrs []catalog.Attribute) (string, bool) {
	for _, attr := range attrs {
		if _, ok := firmwareAttributeKeys[attr.Key]; ok {
			return utils.ToString(attr.Value), true
		}
	}
	return "", false
}

// assetCoordinates fetches SERVER_SCOPE coordinates for an asset.
// Best-effort: any failure or missing field degrades to 0.0/0.0.
func (s *Service) assetCoordinates(ctx context.Context, assetID string) (float64, float64) {
	attrs, err := s.catalog.GetAttributes(ctx, catalog.EntityTypeAsset, assetID, "SERVER_SCOPE")
	if err != nil {
		s.logger.Debug("could not fetch asset attributes", zap.String("asset_id", assetID), zap.Error(err))
		return 0, 0
	}
	lat, lon := extractCoordinates(attrs)
	if lat == nil || lon == nil {
		return 0, 0
	}
	return *lat, *lon
}

// deviceAttributes fetches coordinates and firmware version for a device,
// reading SERVER_SCOPE first and letting CLIENT_SCOPE fill the gaps
// (client-reported firmware wins when present). Best-effort with documented
// defaults.
func (s *Service) deviceAttributes(ctx context.Context, deviceID string) (float64, float64, string) {
	var lat, lon *float64
	firmware := defaultFirmwareVersion

	if attrs, err := s.catalog.GetAttributes(ctx, catalog.EntityTypeDevice, deviceID, "SERVER_SCOPE"); err == nil {
		lat, lon = extractCoordinates(attrs)
		if fw, ok := extractFirmware(attrs); ok {
			firmware = fw
		}
	} else {
		s.logger.Debug("could not fetch device server attributes", zap.String("device_id", deviceID), zap.Error(err))
	}

	if attrs, err := s.catalog.GetAttributes(ctx, catalog.EntityTypeDevice, deviceID, "CLIENT_SCOPE"); err == nil {
		clientLat, clientLon := extractCoordinates(attrs)
		if lat == nil {
			lat = clientLat
		}
		if lon == nil {
			lon = clientLon
		}
		if fw, ok := extractFirmware(attrs); ok {
			firmware = fw
		}
	}

	var outLat, outLon float64
	if lat != nil {
		outLat = *lat
	}
	if lon != nil {
		outLon = *lon
	}
	return outLat, outLon, firmware
}
