package source

import (
	"context"

	"github.com/parkease/backend/internal/domain/model"
)

// ExternalSource fetches parking data from a third-party provider.
//
// Fetch never returns an error: provider failures are absorbed into an empty
// result so the aggregator stays usable when the provider is down.
type ExternalSource interface {
	Fetch(ctx context.Context) []model.ParkingSpot
}

// StaticCatalog supplies a fixed, in-memory set of known parking locations.
type StaticCatalog interface {
	List() []model.ParkingSpot
	FindByExternalID(externalID string) (*model.ParkingSpot, bool)
}
