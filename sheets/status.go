/*
status.go - Transient sync status

Derived, never persisted. There is no observable "syncing" state: pull
and push are fire-and-forget from the caller's perspective, and the
status only records how the last attempt ended.
*/
package sheets

import "time"

// State summarizes the adapter for the status indicator.
type State string

const (
	// StateDisconnected means no endpoint is configured.
	StateDisconnected State = "disconnected"

	// StateIdle means an endpoint is configured and the last operation
	// (if any) succeeded.
	StateIdle State = "idle"

	// StateError means the last operation failed.
	StateError State = "error"
)

// Status is the transient view of the adapter.
type Status struct {
	Connected       bool       `json:"connected"`
	LastPull        *time.Time `json:"lastPull,omitempty"`
	LastPush        *time.Time `json:"lastPush,omitempty"`
	LastError       string     `json:"lastError,omitempty"`
	RemoteUpdatedAt string     `json:"remoteUpdatedAt,omitempty"`
}

// State derives the coarse machine state given whether an endpoint is
// configured.
func (s Status) State(configured bool) State {
	switch {
	case !configured:
		return StateDisconnected
	case s.LastError != "":
		return StateError
	default:
		return StateIdle
	}
}
