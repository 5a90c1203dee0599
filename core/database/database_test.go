package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnect(t *testing.T) {
	t.Run("Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Driver:         DriverMySQL,
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "stock",
			TimeoutSeconds: 1,
		}

		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("Unsupported Driver", func(t *testing.T) {
		db, err := Connect(Config{Driver: "oracle"})
		assert.EqualError(t, err, "unsupported database driver: oracle")
		assert.Nil(t, db)
	})

	t.Run("SQLite In Memory", func(t *testing.T) {
		db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
		assert.NoError(t, err)
		assert.NotNil(t, db)
	})
}

func TestPostgresDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: 5432, User: "stock", Password: "s3cret", Name: "stock"}
	assert.Equal(t,
		"host=db port=5432 user=stock password=s3cret dbname=stock sslmode=disable connect_timeout=5 TimeZone=UTC",
		postgresDSN(cfg, 5))

	cfg.Password = "it's here"
	cfg.SSLMode = "require"
	assert.Equal(t,
		`host=db port=5432 user=stock password='it\'s here' dbname=stock sslmode=require connect_timeout=5 TimeZone=UTC`,
		postgresDSN(cfg, 5))

	cfg.Password = ""
	assert.Contains(t, postgresDSN(cfg, 5), "password='' ")
}
