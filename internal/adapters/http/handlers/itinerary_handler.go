package handlers

import (
	"time"

	"trip-planner/internal/adapters/http/middleware"
	"trip-planner/internal/core/services"
	"trip-planner/internal/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ItineraryHandler handles itinerary item and activity endpoints
type ItineraryHandler struct {
	itineraryService *services.ItineraryService
	validate         *validator.Validate
}

// NewItineraryHandler creates a new itinerary handler
func NewItineraryHandler(itineraryService *services.ItineraryService) *ItineraryHandler {
	return &ItineraryHandler{
		itineraryService: itineraryService,
		validate:         validator.New(),
	}
}

// UpdateItineraryItemRequest represents a partial itinerary item update
type UpdateItineraryItemRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	Location    *string `json:"location"`
}

// ActivityRequest represents activity request body
type ActivityRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	Location    string `json:"location"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

// Get gets an itinerary item
// @Summary Get itinerary item
// @Tags Itinerary
// @Produce json
// @Security BearerAuth
// @Param id path int true "Itinerary item ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /itinerary/{id} [get]
func (h *ItineraryHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid itinerary item ID")
	}

	item, err := h.itineraryService.GetByID(c.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Itinerary item retrieved", item.ToResponse())
}

// ListForTrip lists the itinerary items of a trip
// @Summary List trip itinerary
// @Tags Itinerary
// @Produce json
// @Security BearerAuth
// @Param tripId path int true "Trip ID"
// @Success 200 {object} response.Response
// @Router /itinerary/trip/{tripId} [get]
func (h *ItineraryHandler) ListForTrip(c *fiber.Ctx) error {
	tripID, err := parseID(c, "tripId")
	if err != nil {
		return response.BadRequest(c, "Invalid trip ID")
	}

	items, err := h.itineraryService.ListForTrip(c.Context(), middleware.PrincipalFrom(c), tripID)
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Itinerary items retrieved", items)
}

// Update applies a partial update to an itinerary item
// @Summary Update itinerary item
// @Tags Itinerary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Itinerary item ID"
// @Param body body UpdateItineraryItemRequest true "Fields to update"
// @Success 200 {object} response.Response
// @Router /itinerary/{id} [patch]
func (h *ItineraryHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid itinerary item ID")
	}

	var req UpdateItineraryItemRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.UpdateItineraryItemInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
	}
	if req.StartTime != nil {
		t, err := time.Parse(time.RFC3339, *req.StartTime)
		if err != nil {
			return response.BadRequest(c, "Invalid start time")
		}
		input.StartTime = &t
	}
	if req.EndTime != nil {
		t, err := time.Parse(time.RFC3339, *req.EndTime)
		if err != nil {
			return response.BadRequest(c, "Invalid end time")
		}
		input.EndTime = &t
	}

	item, err := h.itineraryService.Update(c.Context(), middleware.PrincipalFrom(c), id, input)
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Itinerary item updated", item.ToResponse())
}

// Delete deletes an itinerary item and its activities
// @Summary Delete itinerary item
// @Tags Itinerary
// @Produce json
// @Security BearerAuth
// @Param id path int true "Itinerary item ID"
// @Success 200 {object} response.Response
// @Router /itinerary/{id} [delete]
func (h *ItineraryHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid itinerary item ID")
	}

	if err := h.itineraryService.Delete(c.Context(), middleware.PrincipalFrom(c), id); err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Itinerary item deleted", nil)
}

// AddActivity adds an activity to an itinerary item
// @Summary Add activity
// @Tags Itinerary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Itinerary item ID"
// @Param body body ActivityRequest true "Activity data"
// @Success 201 {object} response.Response
// @Router /itinerary/{id}/activities [post]
func (h *ItineraryHandler) AddActivity(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid itinerary item ID")
	}

	input, err := h.parseActivity(c)
	if err != nil {
		return handleDomainError(c, err)
	}

	activity, err := h.itineraryService.AddActivity(c.Context(), middleware.PrincipalFrom(c), id, input)
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Created(c, "Activity added", activity)
}

// UpdateActivity updates an activity
// @Summary Update activity
// @Tags Itinerary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param activityId path int true "Activity ID"
// @Param body body ActivityRequest true "Activity data"
// @Success 200 {object} response.Response
// @Router /itinerary/activities/{activityId} [put]
func (h *ItineraryHandler) UpdateActivity(c *fiber.Ctx) error {
	activityID, err := parseID(c, "activityId")
	if err != nil {
		return response.BadRequest(c, "Invalid activity ID")
	}

	input, err := h.parseActivity(c)
	if err != nil {
		return handleDomainError(c, err)
	}

	activity, err := h.itineraryService.UpdateActivity(c.Context(), middleware.PrincipalFrom(c), activityID, input)
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Activity updated", activity)
}

// DeleteActivity deletes an activity
// @Summary Delete activity
// @Tags Itinerary
// @Produce json
// @Security BearerAuth
// @Param activityId path int true "Activity ID"
// @Success 200 {object} response.Response
// @Router /itinerary/activities/{activityId} [delete]
func (h *ItineraryHandler) DeleteActivity(c *fiber.Ctx) error {
	activityID, err := parseID(c, "activityId")
	if err != nil {
		return response.BadRequest(c, "Invalid activity ID")
	}

	if err := h.itineraryService.DeleteActivity(c.Context(), middleware.PrincipalFrom(c), activityID); err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Activity deleted", nil)
}

func (h *ItineraryHandler) parseActivity(c *fiber.Ctx) (*services.ActivityInput, error) {
	var req ActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid activity data")
	}

	// Activity times are times of day, HH:MM
	for _, v := range []string{req.StartTime, req.EndTime} {
		if v == "" {
			continue
		}
		if _, err := time.Parse("15:04", v); err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid activity time")
		}
	}

	return &services.ActivityInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}, nil
}
