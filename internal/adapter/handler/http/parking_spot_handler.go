package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/parkease/backend/internal/domain/model"
	"github.com/parkease/backend/internal/usecase"
	"github.com/parkease/backend/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ParkingSpotHandler struct {
	spots  *usecase.SpotService
	search *usecase.SearchService
	logger *zap.Logger
}

func NewParkingSpotHandler(spots *usecase.SpotService, search *usecase.SearchService, logger *zap.Logger) *ParkingSpotHandler {
	return &ParkingSpotHandler{
		spots:  spots,
		search: search,
		logger: logger,
	}
}

type SpotRequest struct {
	ID             int64    `json:"id,omitempty"`
	Name           string   `json:"name" validate:"required"`
	Address        string   `json:"address" validate:"required"`
	City           string   `json:"city" validate:"required"`
	Price          float64  `json:"price" validate:"gte=0"`
	AvailableSpots int      `json:"available_spots" validate:"gte=0"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	Source         string   `json:"source,omitempty"`
	ExternalID     *string  `json:"external_id,omitempty"`
	Rating         *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
}

type SearchRequest struct {
	Location string `json:"location"`
	Date     string `json:"date"`
	Radius   string `json:"radius"`
}

func (h *ParkingSpotHandler) List(c echo.Context) error {
	spots, err := h.spots.List(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list parking spots", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"message": "Failed to fetch parking spots",
		})
	}

	return c.JSON(http.StatusOK, spots)
}

func (h *ParkingSpotHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid parking spot id"})
	}

	spot, err := h.spots.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "Failed to fetch parking spot")
	}

	return c.JSON(http.StatusOK, spot)
}

// Search runs the aggregated three-source search. The radius arrives as a
// string on the wire and is parsed leniently; a blank radius means zero.
func (h *ParkingSpotHandler) Search(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid search parameters"})
	}

	var radius float64
	if req.Radius != "" {
		parsed, err := strconv.ParseFloat(req.Radius, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid search parameters"})
		}
		radius = parsed
	}

	spots, err := h.search.Search(c.Request().Context(), req.Location, radius)
	if err != nil {
		h.logger.Error("Search failed",
			zap.String("location", req.Location),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"message": "Failed to search parking spots",
		})
	}

	return c.JSON(http.StatusOK, spots)
}

func (h *ParkingSpotHandler) Create(c echo.Context) error {
	var req SpotRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	spot := req.toModel()
	if err := h.spots.Create(c.Request().Context(), spot); err != nil {
		return respondError(c, err, "Failed to create parking spot")
	}

	return c.JSON(http.StatusCreated, spot)
}

func (h *ParkingSpotHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid parking spot id"})
	}

	var req SpotRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	spot := req.toModel()
	if err := h.spots.Update(c.Request().Context(), id, spot); err != nil {
		return respondError(c, err, "Failed to update parking spot")
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *ParkingSpotHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid parking spot id"})
	}

	if err := h.spots.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err, "Failed to delete parking spot")
	}

	return c.NoContent(http.StatusNoContent)
}

// UniversityParking serves the static campus catalog for the map overlay.
func (h *ParkingSpotHandler) UniversityParking(c echo.Context) error {
	return c.JSON(http.StatusOK, h.spots.Catalog())
}

func (r *SpotRequest) toModel() *model.ParkingSpot {
	return &model.ParkingSpot{
		ID:             r.ID,
		Name:           r.Name,
		Address:        r.Address,
		City:           r.City,
		Price:          decimal.NewFromFloat(r.Price),
		AvailableSpots: r.AvailableSpots,
		Latitude:       r.Latitude,
		Longitude:      r.Longitude,
		Source:         model.SpotSource(r.Source),
		ExternalID:     r.ExternalID,
		Rating:         r.Rating,
	}
}

// respondError converts service errors to the appropriate status code,
// keeping internal detail out of the response body.
func respondError(c echo.Context, err error, fallback string) error {
	code := errors.CodeOf(err)
	status := errors.ToHTTPStatus(code)
	if code == errors.ErrInternal {
		return c.JSON(status, echo.Map{"message": fallback})
	}
	return c.JSON(status, echo.Map{"message": err.Error()})
}
