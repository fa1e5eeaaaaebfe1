package source

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/parkease/backend/internal/domain/model"
	"github.com/parkease/backend/internal/domain/source"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultTampaEndpoint is the Tampa ArcGIS garages-and-lots feature query.
const DefaultTampaEndpoint = "https://services.arcgis.com/Qmpo5vdPrOQHt7MX/arcgis/rest/services/ParkingGaragesandLots_0/FeatureServer/0/query?where=1%3D1&outFields=*&outSR=4326&f=json"

const (
	defaultAvailableSpots = 50
	defaultRating         = 4.0

	unknownName    = "Unknown Parking"
	unknownAddress = "No address provided"
)

// TampaSource fetches live parking data from the Tampa ArcGIS feature
// service. Any failure degrades to an empty result so a provider outage never
// breaks search.
type TampaSource struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

// NewTampaSource creates a Tampa ArcGIS source. An empty endpoint selects the
// default feature-service query; timeout bounds the whole request.
func NewTampaSource(endpoint string, timeout time.Duration, logger *zap.Logger) *TampaSource {
	if endpoint == "" {
		endpoint = DefaultTampaEndpoint
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &TampaSource{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

type tampaResponse struct {
	Features []tampaFeature `json:"features"`
}

type tampaFeature struct {
	Properties *tampaProperties `json:"properties"`
	Geometry   *tampaGeometry   `json:"geometry"`
}

type tampaProperties struct {
	ObjectID json.Number `json:"OBJECTID"`
	Name     string      `json:"NAME"`
	Address  string      `json:"ADDRESS"`
	Spaces   *int        `json:"SPACES"`
	Rate     string      `json:"RATE"`
	Lat      *float64    `json:"LAT"`
	Lon      *float64    `json:"LON"`
}

type tampaGeometry struct {
	// [longitude, latitude]
	Coordinates []float64 `json:"coordinates"`
}

// Fetch returns the provider's full result set. It never returns an error:
// transport failures, bad payloads, and timeouts all map to an empty slice.
func (s *TampaSource) Fetch(ctx context.Context) []model.ParkingSpot {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		s.logger.Error("Failed to build Tampa parking request", zap.Error(err))
		return nil
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("Tampa parking fetch failed", zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("Tampa parking fetch returned non-OK status",
			zap.Int("status", resp.StatusCode))
		return nil
	}

	var payload tampaResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		s.logger.Warn("Failed to decode Tampa parking response", zap.Error(err))
		return nil
	}

	if len(payload.Features) == 0 {
		return nil
	}

	spots := make([]model.ParkingSpot, 0, len(payload.Features))
	for _, feature := range payload.Features {
		if feature.Properties == nil {
			continue
		}
		spots = append(spots, mapFeature(feature))
	}

	s.logger.Debug("Fetched Tampa parking data", zap.Int("spot_count", len(spots)))
	return spots
}

func mapFeature(feature tampaFeature) model.ParkingSpot {
	props := feature.Properties

	price := parseRate(props.Rate)

	availableSpots := defaultAvailableSpots
	if props.Spaces != nil {
		availableSpots = *props.Spaces
	}

	name := props.Name
	if name == "" {
		name = unknownName
	}
	address := props.Address
	if address == "" {
		address = unknownAddress
	}

	var latitude, longitude *float64
	if feature.Geometry != nil && len(feature.Geometry.Coordinates) >= 2 {
		lon := feature.Geometry.Coordinates[0]
		lat := feature.Geometry.Coordinates[1]
		latitude, longitude = &lat, &lon
	} else {
		// Some features carry discrete LAT/LON fields instead of a geometry.
		latitude, longitude = props.Lat, props.Lon
	}

	externalID := props.ObjectID.String()
	rating := defaultRating

	return model.ParkingSpot{
		Name:           name,
		Address:        address,
		City:           "Tampa",
		Price:          price,
		AvailableSpots: availableSpots,
		Latitude:       latitude,
		Longitude:      longitude,
		Source:         model.SpotSourceExternalAPI,
		ExternalID:     &externalID,
		Rating:         &rating,
	}
}

// parseRate extracts a decimal price from the free-text rate field, e.g.
// "$2.50" or "2.50". Anything unparsable means price 0.
func parseRate(rate string) decimal.Decimal {
	cleaned := strings.TrimSpace(strings.ReplaceAll(rate, "$", ""))
	if cleaned == "" {
		return decimal.Zero
	}

	price, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return price
}

var _ source.ExternalSource = (*TampaSource)(nil)
