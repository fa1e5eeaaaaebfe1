package source

import (
	"github.com/parkease/backend/internal/domain/model"
	"github.com/parkease/backend/internal/domain/source"
	"github.com/shopspring/decimal"
)

// UniversityCatalog is the fixed set of University of Tampa parking
// locations. The catalog is built once at construction and never mutated.
type UniversityCatalog struct {
	spots []model.ParkingSpot
}

// NewUniversityCatalog creates the catalog with its hand-curated campus
// locations.
func NewUniversityCatalog() *UniversityCatalog {
	return &UniversityCatalog{
		spots: []model.ParkingSpot{
			catalogSpot("UT1001", "Thomas Parking Garage", "401 W Kennedy Blvd", "2.00", 120, 27.9447, -82.4640, 4.2),
			catalogSpot("UT1002", "West Parking Garage", "318 N North Blvd", "1.50", 85, 27.9465, -82.4655, 3.9),
			catalogSpot("UT1003", "Vaughn Center Parking", "200 N Boulevard", "1.00", 65, 27.9437, -82.4637, 4.5),
			catalogSpot("UT1004", "Plant Hall Visitor Parking", "401 W Kennedy Blvd", "2.50", 40, 27.9444, -82.4648, 4.1),
			catalogSpot("UT1005", "North Parking Lot", "304 N Boulevard", "1.00", 55, 27.9475, -82.4640, 3.8),
		},
	}
}

// List returns every catalog spot. Callers get a fresh slice but share the
// underlying records; treat them as read-only.
func (c *UniversityCatalog) List() []model.ParkingSpot {
	out := make([]model.ParkingSpot, len(c.spots))
	copy(out, c.spots)
	return out
}

// FindByExternalID looks a catalog spot up by its UTxxxx id.
func (c *UniversityCatalog) FindByExternalID(externalID string) (*model.ParkingSpot, bool) {
	for i := range c.spots {
		if c.spots[i].ExternalID != nil && *c.spots[i].ExternalID == externalID {
			spot := c.spots[i]
			return &spot, true
		}
	}
	return nil, false
}

func catalogSpot(externalID, name, address, price string, available int, lat, lon, rating float64) model.ParkingSpot {
	return model.ParkingSpot{
		Name:           name,
		Address:        address,
		City:           "Tampa",
		Price:          decimal.RequireFromString(price),
		AvailableSpots: available,
		Latitude:       &lat,
		Longitude:      &lon,
		Source:         model.SpotSourceStaticCatalog,
		ExternalID:     &externalID,
		Rating:         &rating,
	}
}

var _ source.StaticCatalog = (*UniversityCatalog)(nil)
