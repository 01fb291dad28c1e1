package models

import "time"

// CountryAsset mirrors a country-level catalog asset, unique by name.
type CountryAsset struct {
	CountryID   uint      `gorm:"column:country_id;primaryKey;autoIncrement"`
	CountryName string    `gorm:"column:country_name;size:255;uniqueIndex;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

// TableName overrides the default pluralized name.
func (CountryAsset) TableName() string {
	return "country_asset"
}

// StateAsset mirrors a state-level catalog asset, unique per country.
type StateAsset struct {
	StateID   uint      `gorm:"column:state_id;primaryKey;autoIncrement"`
	StateName string    `gorm:"column:state_name;size:255;not null;uniqueIndex:idx_state_country"`
	CountryID uint      `gorm:"column:country_id;not null;uniqueIndex:idx_state_country"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (StateAsset) TableName() string {
	return "state_asset"
}

// Device mirrors a catalog device (or a device-like asset), unique by
// serial number. Rows are upserted on every mirror pass and never deleted.
type Device struct {
	DeviceID        uint      `gorm:"column:device_id;primaryKey;autoIncrement"`
	DeviceName      string    `gorm:"column:device_name;size:255;not null"`
	SerialNumber    string    `gorm:"column:serial_number;size:255;uniqueIndex;not null"`
	FirmwareVersion string    `gorm:"column:firmware_version;size:64"`
	LocationLat     float64   `gorm:"column:location_lat"`
	LocationLon     float64   `gorm:"column:location_lon"`
	StateID         uint      `gorm:"column:state_id"`
	CountryID       uint      `gorm:"column:country_id"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (Device) TableName() string {
	return "devices"
}
