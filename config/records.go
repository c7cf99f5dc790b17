package config

import (
	"fmt"

	"github.com/courierlab/dispatchsim/core/simerr"
)

// Record backends.
const (
	RecordBackendJSONL  = "jsonl"
	RecordBackendSQLite = "sqlite"
)

// RecordsConfig selects where the run's record streams are persisted.
type RecordsConfig struct {
	// Backend is "jsonl" or "sqlite".
	Backend string `json:"backend"`
	// Path is a directory for jsonl or the database file for sqlite.
	Path string `json:"path"`
}

func (c *RecordsConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = RecordBackendJSONL
	}
	if c.Path == "" {
		c.Path = "records"
	}
}

func (c RecordsConfig) Validate() error {
	if c.Backend != RecordBackendJSONL && c.Backend != RecordBackendSQLite {
		return fmt.Errorf("config: unknown records backend %q: %w", c.Backend, simerr.ErrConfiguration)
	}
	if c.Path == "" {
		return fmt.Errorf("config: records path is required: %w", simerr.ErrConfiguration)
	}
	return nil
}
