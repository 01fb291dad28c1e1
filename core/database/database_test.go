package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDSN(t *testing.T) {
	t.Run("without options", func(t *testing.T) {
		dsn := BuildDSN(Config{
			Host:           "db.internal",
			Port:           5433,
			User:           "mirror",
			Password:       "secret",
			DBName:         "catalog_mirror",
			TimeoutSeconds: 10,
		})
		assert.Equal(t,
			"host=db.internal port=5433 user=mirror password=secret dbname=catalog_mirror sslmode=disable connect_timeout=10",
			dsn)
	})

	t.Run("with search_path options", func(t *testing.T) {
		dsn := BuildDSN(Config{
			Host:    "localhost",
			Port:    5432,
			User:    "postgres",
			DBName:  "postgres",
			Options: "-c search_path=provisioning",
		})
		assert.Contains(t, dsn, "options='-c search_path=provisioning'")
		// Zero timeout falls back to the default.
		assert.Contains(t, dsn, "connect_timeout=30")
	})
}

func TestConnect(t *testing.T) {
	t.Run("Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "postgres",
			Password:       "wrongpassword",
			DBName:         "postgres",
			TimeoutSeconds: 1,
		}

		// Connect should fail (timeout or refused); we expect an error.
		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	// A successful connection needs a live database; the error path covers
	// the unit-testable surface.
}
