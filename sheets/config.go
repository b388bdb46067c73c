/*
Package sheets synchronizes a subset of the dashboard state with a
spreadsheet-backed web endpoint (a Google Apps Script web app in the
original deployment).

PURPOSE:
  Pull merges remote values for man-hours, policy image, announcements
  and incidents into the local board; push sends the same subset back,
  authorized by a shared write token. The calendar grid is sync-exempt
  by a field whitelist: it is the safety record of record and must never
  be overwritten by a remote source.

PROTOCOL:
  GET  <endpoint>?action=get                        -> partial JSON fields
  POST <endpoint> {action:"set", token, data:{...}} -> 2xx on success

KEY TYPES IN THIS FILE (config.go):
  - Config:      endpoint / write token / pull interval, persisted
                 separately from the main snapshot
  - ConfigStore: persistence interface for Config

SEE ALSO:
  - client.go:    pull/push operations and the status machine
  - merge.go:     the field-level whitelist applied on pull
  - scheduler.go: the automatic pull interval
*/
package sheets

import (
	"context"
	"os"
	"strconv"
	"strings"
)

const (
	// MinPullIntervalSec is the floor for the automatic pull interval.
	MinPullIntervalSec = 15

	// DefaultPullIntervalSec is used when no interval is configured.
	DefaultPullIntervalSec = 60
)

// Config is the sync endpoint configuration. It is persisted on its own
// (not inside the dashboard snapshot) so exporting/importing dashboard
// data never moves credentials between machines.
type Config struct {
	Endpoint        string `json:"endpoint"`
	WriteToken      string `json:"writeToken,omitempty"`
	PullIntervalSec int    `json:"pullIntervalSec,omitempty"`
}

// Normalized returns a copy with whitespace trimmed and the pull
// interval clamped: zero selects the default, anything below the floor
// becomes the floor.
func (c Config) Normalized() Config {
	out := c
	out.Endpoint = strings.TrimSpace(c.Endpoint)
	out.WriteToken = strings.TrimSpace(c.WriteToken)
	if out.PullIntervalSec == 0 {
		out.PullIntervalSec = DefaultPullIntervalSec
	}
	if out.PullIntervalSec < MinPullIntervalSec {
		out.PullIntervalSec = MinPullIntervalSec
	}
	return out
}

// Configured reports whether an endpoint is set.
func (c Config) Configured() bool {
	return strings.TrimSpace(c.Endpoint) != ""
}

// ConfigStore persists the sync configuration.
type ConfigStore interface {
	// SaveConfig overwrites the stored configuration.
	SaveConfig(ctx context.Context, cfg Config) error

	// LoadConfig returns the stored configuration, or (nil, nil) when
	// none exists.
	LoadConfig(ctx context.Context) (*Config, error)
}

// ConfigFromEnv builds the first-run default configuration from the
// environment, mirroring the build-time variables the kiosk frontend
// used.
//
//	SHEETS_ENDPOINT          endpoint URL
//	SHEETS_WRITE_TOKEN       shared write token
//	SHEETS_PULL_INTERVAL_SEC pull interval in seconds
func ConfigFromEnv() Config {
	cfg := Config{
		Endpoint:   os.Getenv("SHEETS_ENDPOINT"),
		WriteToken: os.Getenv("SHEETS_WRITE_TOKEN"),
	}
	if v, err := strconv.Atoi(os.Getenv("SHEETS_PULL_INTERVAL_SEC")); err == nil {
		cfg.PullIntervalSec = v
	}
	return cfg.Normalized()
}
