// Package storage defines the backend interface finished routes are handed
// to, and a factory selecting an implementation from configuration.
package storage

import (
	"github.com/trailsketch/trailsketch/internal/route"
)

// Backend is the interface all storage implementations must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// SaveRoute persists one finished route under the given name.
	SaveRoute(r *route.Result, name string) error
}

// Exportable is an optional interface for storage backends that produce
// files suitable for handing to a map frontend.
type Exportable interface {
	GetExportedFilePath() string
}
