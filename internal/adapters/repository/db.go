package repository

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens (creating if needed) the sqlite database at path and
// migrates the store schemas. Use ":memory:" for an ephemeral database.
func Open(path string, opts ...Option) (*gorm.DB, error) {
	cfg := openConfig{migrate: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrStorage, path, err)
	}
	if cfg.migrate {
		if err := db.AutoMigrate(&scoreRecordRow{}, &criteriaMappingRow{}); err != nil {
			return nil, fmt.Errorf("%w: migrate: %v", ErrStorage, err)
		}
	}
	return db, nil
}

type openConfig struct {
	migrate bool
}

// Option applies a configuration option to Open.
type Option func(*openConfig)

// WithAutoMigrate toggles schema migration on open.
func WithAutoMigrate(enabled bool) Option {
	return func(c *openConfig) {
		c.migrate = enabled
	}
}
