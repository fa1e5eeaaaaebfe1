package usecase

import (
	"context"
	"strings"

	"github.com/parkease/backend/internal/domain/model"
	"github.com/parkease/backend/internal/domain/repository"
	"github.com/parkease/backend/internal/domain/source"
	"go.uber.org/zap"
)

// SpotCache caches the external provider's result set between searches. A nil
// cache disables caching; Get returning ok=false means fetch fresh.
type SpotCache interface {
	Get(ctx context.Context) ([]model.ParkingSpot, bool)
	Set(ctx context.Context, spots []model.ParkingSpot)
}

// SearchService aggregates parking spots from the local store, the static
// campus catalog, and the external provider into one canonical result set.
type SearchService struct {
	spotRepo repository.ParkingSpotRepository
	catalog  source.StaticCatalog
	external source.ExternalSource
	cache    SpotCache
	logger   *zap.Logger
}

// NewSearchService creates a new search service. cache may be nil.
func NewSearchService(
	spotRepo repository.ParkingSpotRepository,
	catalog source.StaticCatalog,
	external source.ExternalSource,
	cache SpotCache,
	logger *zap.Logger,
) *SearchService {
	return &SearchService{
		spotRepo: spotRepo,
		catalog:  catalog,
		external: external,
		cache:    cache,
		logger:   logger,
	}
}

// Search merges all three sources, applying the same substring filter to each
// of them. An empty location returns every source unfiltered and ignores the
// radius. Radius is accepted for API compatibility; no geodesic math is done
// with it, string containment stands in for geolocation here.
//
// Results are de-duplicated on (name, address) since a spot imported from the
// external provider may also appear in the catalog. Ordering is unspecified;
// sorting is the client's concern.
func (s *SearchService) Search(ctx context.Context, location string, radiusMiles float64) ([]model.ParkingSpot, error) {
	var local []model.ParkingSpot
	var err error

	if location == "" {
		local, err = s.spotRepo.GetAll(ctx)
	} else {
		local, err = s.spotRepo.SearchByLocation(ctx, location)
	}
	if err != nil {
		return nil, err
	}

	catalogSpots := filterByLocation(s.catalog.List(), location)
	externalSpots := filterByLocation(s.fetchExternal(ctx), location)

	merged := make([]model.ParkingSpot, 0, len(local)+len(catalogSpots)+len(externalSpots))
	merged = append(merged, local...)
	merged = append(merged, catalogSpots...)
	merged = append(merged, externalSpots...)

	results := dedupeSpots(merged)

	s.logger.Debug("Search aggregated",
		zap.String("location", location),
		zap.Float64("radius_miles", radiusMiles),
		zap.Int("local", len(local)),
		zap.Int("catalog", len(catalogSpots)),
		zap.Int("external", len(externalSpots)),
		zap.Int("results", len(results)),
	)

	return results, nil
}

// fetchExternal serves the provider result set from cache when possible.
// Provider failures have already been absorbed into an empty slice by the
// adapter; empty results are not cached so an outage recovers immediately.
func (s *SearchService) fetchExternal(ctx context.Context) []model.ParkingSpot {
	if s.cache != nil {
		if spots, ok := s.cache.Get(ctx); ok {
			return spots
		}
	}

	spots := s.external.Fetch(ctx)

	if s.cache != nil && len(spots) > 0 {
		s.cache.Set(ctx, spots)
	}

	return spots
}

// filterByLocation keeps spots whose city or address contains the location
// substring. Case-sensitive containment, matching the local store query.
func filterByLocation(spots []model.ParkingSpot, location string) []model.ParkingSpot {
	if location == "" {
		return spots
	}

	filtered := make([]model.ParkingSpot, 0, len(spots))
	for _, spot := range spots {
		if strings.Contains(spot.City, location) || strings.Contains(spot.Address, location) {
			filtered = append(filtered, spot)
		}
	}
	return filtered
}

// dedupeSpots drops later duplicates keyed on (name, address). First source
// wins, so a locally imported copy shadows its catalog or provider twin.
func dedupeSpots(spots []model.ParkingSpot) []model.ParkingSpot {
	seen := make(map[[2]string]struct{}, len(spots))
	out := make([]model.ParkingSpot, 0, len(spots))
	for _, spot := range spots {
		key := [2]string{spot.Name, spot.Address}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, spot)
	}
	return out
}
