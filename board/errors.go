/*
errors.go - Sentinel errors for the board package

Parse and version failures on snapshot import are deliberately quiet at
the Board level (fail-closed no-op); these sentinels exist so callers
that do want to distinguish the cases (API edge, tests) can use
errors.Is on DecodeSnapshot.
*/
package board

import "errors"

var (
	// ErrSnapshotMalformed is returned when snapshot bytes do not parse
	// as the snapshot JSON shape.
	ErrSnapshotMalformed = errors.New("snapshot malformed")

	// ErrSnapshotVersion is returned when the version field is anything
	// other than the supported version.
	ErrSnapshotVersion = errors.New("unsupported snapshot version")
)
