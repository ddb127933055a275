package handlers

import (
	"strconv"
	"strings"
	"time"

	"trip-planner/internal/adapters/http/middleware"
	"trip-planner/internal/adapters/persistence/models"
	"trip-planner/internal/core/services"
	"trip-planner/internal/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

// TripHandler handles trip endpoints
type TripHandler struct {
	tripService *services.TripService
	fileService *services.FileService
	validate    *validator.Validate
}

// NewTripHandler creates a new trip handler
func NewTripHandler(tripService *services.TripService, fileService *services.FileService) *TripHandler {
	return &TripHandler{
		tripService: tripService,
		fileService: fileService,
		validate:    validator.New(),
	}
}

// TripRequest represents trip creation/update request body
type TripRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	StartDate   string `json:"start_date" validate:"required"`
	EndDate     string `json:"end_date" validate:"required"`
}

// ItineraryItemRequest represents itinerary item request body
type ItineraryItemRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	StartTime   string `json:"start_time" validate:"required"`
	EndTime     string `json:"end_time" validate:"required"`
	Location    string `json:"location"`
}

// List lists all trips
// @Summary List trips
// @Tags Trips
// @Produce json
// @Success 200 {object} response.Response
// @Router /trips [get]
func (h *TripHandler) List(c *fiber.Ctx) error {
	trips, err := h.tripService.List(c.Context())
	if err != nil {
		return handleDomainError(c, err)
	}

	responses := make([]*models.TripResponse, len(trips))
	for i, trip := range trips {
		responses[i] = trip.ToResponse()
	}
	return response.Success(c, "Trips retrieved", responses)
}

// Get gets a trip by ID
// @Summary Get trip
// @Tags Trips
// @Produce json
// @Param id path int true "Trip ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /trips/{id} [get]
func (h *TripHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid trip ID")
	}

	trip, err := h.tripService.GetByID(c.Context(), id)
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Trip retrieved", trip.ToResponse())
}

// MyTrips lists the trips the caller owns or collaborates on
// @Summary List my trips
// @Tags Trips
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /trips/my-trips [get]
func (h *TripHandler) MyTrips(c *fiber.Ctx) error {
	trips, err := h.tripService.ListForPrincipal(c.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Trips retrieved", trips)
}

// Details returns the full trip graph
// @Summary Get trip details
// @Tags Trips
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /trips/{id}/details [get]
func (h *TripHandler) Details(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid trip ID")
	}

	trip, err := h.tripService.GetDetails(c.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Trip retrieved", trip)
}

// Create creates a trip. Accepts JSON, or multipart form data with an
// optional image file under the "image" field.
// @Summary Create trip
// @Tags Trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body TripRequest true "Trip data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /trips [post]
func (h *TripHandler) Create(c *fiber.Ctx) error {
	input, err := h.parseTripInput(c)
	if err != nil {
		return handleDomainError(c, err)
	}

	trip, err := h.tripService.Create(c.Context(), middleware.PrincipalFrom(c), input)
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Created(c, "Trip created", trip.ToResponse())
}

// Update updates a trip
// @Summary Update trip
// @Tags Trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Param body body TripRequest true "Trip data"
// @Success 200 {object} response.Response
// @Router /trips/{id} [put]
func (h *TripHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid trip ID")
	}

	input, err := h.parseTripInput(c)
	if err != nil {
		return handleDomainError(c, err)
	}

	trip, err := h.tripService.Update(c.Context(), middleware.PrincipalFrom(c), id, input)
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Trip updated", trip.ToResponse())
}

// Delete deletes a trip
// @Summary Delete trip
// @Tags Trips
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Success 200 {object} response.Response
// @Router /trips/{id} [delete]
func (h *TripHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid trip ID")
	}

	if err := h.tripService.Delete(c.Context(), middleware.PrincipalFrom(c), id); err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Trip deleted", nil)
}

// AddItineraryItem adds an itinerary item to a trip
// @Summary Add itinerary item
// @Tags Trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Param body body ItineraryItemRequest true "Itinerary item data"
// @Success 201 {object} response.Response
// @Router /trips/{id}/itinerary [post]
func (h *TripHandler) AddItineraryItem(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid trip ID")
	}

	var req ItineraryItemRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return response.BadRequest(c, "Invalid itinerary item data")
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return response.BadRequest(c, "Invalid start time")
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return response.BadRequest(c, "Invalid end time")
	}

	input := &services.ItineraryItemInput{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   startTime,
		EndTime:     endTime,
		Location:    req.Location,
	}

	item, err := h.tripService.AddItineraryItem(c.Context(), middleware.PrincipalFrom(c), id, input)
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Created(c, "Itinerary item added", item.ToResponse())
}

// Itinerary lists itinerary items across the caller's trips
// @Summary List my itinerary items
// @Tags Trips
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /trips/itinerary [get]
func (h *TripHandler) Itinerary(c *fiber.Ctx) error {
	items, err := h.tripService.ListItineraryItems(c.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Itinerary items retrieved", items)
}

// Activities lists activities across the caller's trips
// @Summary List my activities
// @Tags Trips
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /trips/activities [get]
func (h *TripHandler) Activities(c *fiber.Ctx) error {
	activities, err := h.tripService.ListActivities(c.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Activities retrieved", activities)
}

// Dashboard aggregates the caller's trips, itinerary, and activities
// @Summary Dashboard
// @Tags Trips
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /trips/dashboard [get]
func (h *TripHandler) Dashboard(c *fiber.Ctx) error {
	dashboard, err := h.tripService.Dashboard(c.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Dashboard retrieved", dashboard)
}

// AddCollaborator adds a collaborator to a trip
// @Summary Add collaborator
// @Tags Trips
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Param userId path int true "User ID"
// @Success 200 {object} response.Response
// @Router /trips/{id}/collaborators/{userId} [post]
func (h *TripHandler) AddCollaborator(c *fiber.Ctx) error {
	tripID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid trip ID")
	}
	userID, err := parseID(c, "userId")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	if err := h.tripService.AddCollaborator(c.Context(), middleware.PrincipalFrom(c), tripID, userID); err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Collaborator added", nil)
}

// RemoveCollaborator removes a collaborator from a trip
// @Summary Remove collaborator
// @Tags Trips
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Param userId path int true "User ID"
// @Success 200 {object} response.Response
// @Router /trips/{id}/collaborators/{userId} [delete]
func (h *TripHandler) RemoveCollaborator(c *fiber.Ctx) error {
	tripID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid trip ID")
	}
	userID, err := parseID(c, "userId")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	if err := h.tripService.RemoveCollaborator(c.Context(), middleware.PrincipalFrom(c), tripID, userID); err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Collaborator removed", nil)
}

// Image serves a stored trip image
// @Summary Get trip image
// @Tags Trips
// @Produce octet-stream
// @Param filename path string true "Image filename"
// @Success 200
// @Failure 404 {object} response.Response
// @Router /trips/images/{filename} [get]
func (h *TripHandler) Image(c *fiber.Ctx) error {
	path, err := h.fileService.Path(c.Params("filename"))
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.SendFile(path)
}

// parseTripInput reads a trip payload from JSON or multipart form data.
// Multipart requests may carry an image file under "image".
func (h *TripHandler) parseTripInput(c *fiber.Ctx) (*services.CreateTripInput, error) {
	var req TripRequest

	contentType := c.Get(fiber.HeaderContentType)
	multipart := strings.HasPrefix(contentType, fiber.MIMEMultipartForm)
	if multipart {
		req = TripRequest{
			Title:       c.FormValue("title"),
			Description: c.FormValue("description"),
			StartDate:   c.FormValue("start_date"),
			EndDate:     c.FormValue("end_date"),
		}
	} else if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.validate.Struct(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid trip data")
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid start date")
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid end date")
	}
	if endDate.Before(startDate) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "End date must not precede start date")
	}

	input := &services.CreateTripInput{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
	}

	if multipart {
		if header, err := c.FormFile("image"); err == nil {
			filename, err := h.fileService.SaveImage(header)
			if err != nil {
				return nil, err
			}
			input.ImageURL = filename
		}
	}

	return input, nil
}

func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.ErrBadRequest
	}
	return uint(id), nil
}
